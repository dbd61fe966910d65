package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hungrynow/hungrynow/internal/config"
	"github.com/hungrynow/hungrynow/pkg/logger"
)

func memoryConfig() *config.Server {
	return &config.Server{
		Environment:    "test",
		HTTPPort:       0,
		PublicURL:      "http://localhost:8080",
		Storage:        config.StorageMemory,
		Seed:           true,
		JWTSecret:      "test-secret",
		JWTExpiry:      time.Hour,
		RateLimitRPS:   0,
		OTelSampleRate: 1,
	}
}

func TestNewApp_MemoryStorageServesCatalog(t *testing.T) {
	a, err := NewApp(memoryConfig(), logger.Discard())
	require.NoError(t, err)
	assert.Nil(t, a.pool)

	rec := httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cat-noodles")

	rec = httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_WithoutSeedHasEmptyCatalog(t *testing.T) {
	cfg := memoryConfig()
	cfg.Seed = false
	a, err := NewApp(cfg, logger.Discard())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	a.httpServer.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/foods", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "food-pho-bo")
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := NewApp(memoryConfig(), logger.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
