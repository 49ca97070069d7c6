// file: internal/server/server_test.go
// version: 1.1.0
// guid: 8a9b0c1d-2e3f-4a5b-9c6d-7e8f9a0b1c2d

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdfalk/pokematch/internal/config"
	"github.com/jdfalk/pokematch/internal/dataset"
	"github.com/jdfalk/pokematch/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	root := t.TempDir()
	dir := filepath.Join(root, "kanto")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "creatures.txt"),
		[]byte("Pikachu\nEmber\nZzz\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moves.txt"),
		[]byte("Pika Punch\nEmber Storm\nRemember\n"), 0o644))

	config.AppConfig = config.Config{
		DatasetsRoot:       root,
		Exemptions:         []string{"False Swipe", "Pain Split"},
		CacheTTL:           time.Minute,
		RateLimitPerMinute: 6000,
		RateLimitBurst:     100,
	}
	t.Cleanup(func() { config.AppConfig = config.Config{} })

	catalog := dataset.NewCatalog(root)
	require.NoError(t, catalog.Load())

	return NewServer(catalog)
}

func doRequest(s *Server, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "192.0.2.10:5000"
	resp := httptest.NewRecorder()
	s.router.ServeHTTP(resp, req)
	return resp
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)
	resp := doRequest(s, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"ok"`)
}

func TestListDatasets(t *testing.T) {
	s := newTestServer(t)
	resp := doRequest(s, http.MethodGet, "/api/datasets")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Items []DatasetSummary `json:"items"`
		Count int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "kanto", body.Items[0].Name)
	assert.Equal(t, 3, body.Items[0].Creatures)
	assert.Equal(t, 3, body.Items[0].Moves)
}

func TestGetMatches(t *testing.T) {
	s := newTestServer(t)
	resp := doRequest(s, http.MethodGet, "/api/datasets/kanto/matches")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data models.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data.Creatures, 3)

	pikachu := body.Data.Creatures[0]
	assert.Equal(t, "Pikachu", pikachu.Creature)
	require.Len(t, pikachu.Matches, 1)
	assert.Equal(t, "Pika Punch", pikachu.Matches[0].Move)
	assert.Equal(t, 4, pikachu.Matches[0].Length)
	assert.Equal(t, 0, pikachu.Matches[0].Start)

	// "Ember Storm" starts with the creature's name, so "Remember" loses.
	ember := body.Data.Creatures[1]
	require.Len(t, ember.Matches, 1)
	assert.Equal(t, "Ember Storm", ember.Matches[0].Move)

	// No matches still yields the creature with an empty list.
	zzz := body.Data.Creatures[2]
	assert.Equal(t, "Zzz", zzz.Creature)
	assert.Empty(t, zzz.Matches)
}

func TestGetMatchesSearchFilter(t *testing.T) {
	s := newTestServer(t)
	resp := doRequest(s, http.MethodGet, "/api/datasets/kanto/matches?search=pika")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Data models.Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Data.Creatures, 1)
	assert.Equal(t, "Pikachu", body.Data.Creatures[0].Creature)
}

func TestGetMatchesUnknownDataset(t *testing.T) {
	s := newTestServer(t)
	resp := doRequest(s, http.MethodGet, "/api/datasets/hoenn/matches")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "dataset_not_found")
}

func TestReloadDatasets(t *testing.T) {
	s := newTestServer(t)

	// Add a dataset on disk, then reload through the API.
	dir := filepath.Join(config.AppConfig.DatasetsRoot, "johto")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "creatures.txt"), []byte("Chikorita\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moves.txt"), []byte("Razor Leaf\n"), 0o644))

	resp := doRequest(s, http.MethodPost, "/api/datasets/reload")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(s, http.MethodGet, "/api/datasets")
	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)
	resp := doRequest(s, http.MethodGet, "/healthz")
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, "test-id-123", rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	resp := doRequest(s, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "pokematch_")
}
