// file: internal/config/config.go
// version: 1.1.0
// guid: 9a0b1c2d-3e4f-4a5b-8c6d-7e8f9a0b1c2d

package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/jdfalk/pokematch/internal/engine"
)

// Config holds application configuration
type Config struct {
	DatasetsRoot string
	Host         string
	Port         string
	Exemptions   []string
	CacheTTL     time.Duration
	Debounce     time.Duration

	RateLimitPerMinute int
	RateLimitBurst     int

	BasicAuthEnabled      bool
	BasicAuthUsername     string
	BasicAuthPasswordHash string // bcrypt hash, never the plain password
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("datasets_root", "datasets")
	viper.SetDefault("host", "localhost")
	viper.SetDefault("port", "8080")
	viper.SetDefault("exemptions", engine.DefaultExemptions)
	viper.SetDefault("cache_ttl", "5m")
	viper.SetDefault("debounce", "2s")
	viper.SetDefault("rate_limit_per_minute", 240)
	viper.SetDefault("rate_limit_burst", 30)

	AppConfig = Config{
		DatasetsRoot:          viper.GetString("datasets_root"),
		Host:                  viper.GetString("host"),
		Port:                  viper.GetString("port"),
		Exemptions:            viper.GetStringSlice("exemptions"),
		CacheTTL:              viper.GetDuration("cache_ttl"),
		Debounce:              viper.GetDuration("debounce"),
		RateLimitPerMinute:    viper.GetInt("rate_limit_per_minute"),
		RateLimitBurst:        viper.GetInt("rate_limit_burst"),
		BasicAuthUsername:     viper.GetString("basic_auth.username"),
		BasicAuthPasswordHash: viper.GetString("basic_auth.password_hash"),
	}

	AppConfig.BasicAuthEnabled = AppConfig.BasicAuthUsername != "" && AppConfig.BasicAuthPasswordHash != ""
}
