package bootstrap

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benefitsnav/benefits-backend/config"
	"github.com/benefitsnav/benefits-backend/internal/benefits/repository"
	"github.com/benefitsnav/benefits-backend/internal/benefits/service"
	"github.com/benefitsnav/benefits-backend/internal/catalog"
	"github.com/benefitsnav/benefits-backend/internal/govapi"
	"github.com/benefitsnav/benefits-backend/internal/offline"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	cat, err := catalog.Load()
	require.NoError(t, err)
	store := repository.NewStore(repository.NewGateway(client, nil))
	cache := offline.NewCache(client, offline.DefaultMaxRetries, nil)
	svc := service.New(service.Deps{
		Store:   store,
		Catalog: cat,
		Offline: cache,
		GovAPI:  govapi.NewClient(govapi.Options{Mode: govapi.SourceStatic}, cat, nil),
	})

	return BuildRouter(RouterDeps{
		ServiceName:    "benefits-backend",
		Version:        "test",
		AllowedOrigins: []string{"http://localhost:5173"},
		Redis:          store,
		Services:       svc,
		Offline:        cache,
	})
}

func TestBuildRouter_Health(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "disabled", body["deps"].(map[string]any)["db"])
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
}

func TestBuildRouter_Metrics(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuildRouter_APIAndAccount(t *testing.T) {
	r := testRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/programs", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/account/me", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "demo-user", body["user_id"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/integrations", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBuildRouter_CORS(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/programs", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGovOptions(t *testing.T) {
	opts := govOptions(config.GovAPIConfig{DataSource: "live", Rate: 2, Burst: 4})
	assert.Equal(t, govapi.SourceLive, opts.Mode)
	assert.Nil(t, opts.OAuth)

	opts = govOptions(config.GovAPIConfig{DataSource: "static", OAuthClientID: "id", OAuthTokenURL: "https://auth.example/token"})
	require.NotNil(t, opts.OAuth)
	assert.Equal(t, "id", opts.OAuth.ClientID)
}

func TestSetGinMode(t *testing.T) {
	SetGinMode("production")
	assert.Equal(t, gin.ReleaseMode, gin.Mode())
	SetGinMode("test")
	assert.Equal(t, gin.TestMode, gin.Mode())
}
