// file: internal/server/middleware/basicauth.go
// version: 1.1.0
// guid: a1b2c3d4-e5f6-7a8b-9c0d-1e2f3a4b5c6d

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jdfalk/pokematch/internal/config"
)

// BasicAuth returns a Gin middleware that enforces HTTP Basic Authentication
// when credentials are configured. Health and metrics endpoints are exempt.
// The configured password is a bcrypt hash, never plain text.
func BasicAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.AppConfig.BasicAuthEnabled {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if path == "/healthz" || path == "/metrics" {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="pokematch"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(config.AppConfig.BasicAuthUsername)) == 1
		passErr := bcrypt.CompareHashAndPassword([]byte(config.AppConfig.BasicAuthPasswordHash), []byte(pass))

		if !userMatch || passErr != nil {
			c.Header("WWW-Authenticate", `Basic realm="pokematch"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Next()
	}
}
