package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/marksheet/internal/config"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = config.DriverMemory
	cfg.Redis.TTL = "1m"
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TokenTTL = "1h"
	cfg.Events.BufferSize = 8
	return cfg
}

func TestSetupStorageMemoryDriver(t *testing.T) {
	storage, err := SetupStorage(context.Background(), memoryConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer storage.Close()

	assert.Equal(t, "memory", storage.Store.Driver())
	assert.Nil(t, storage.Database)
	assert.Nil(t, storage.Redis)
}

func TestSetupStorageConnectsRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := memoryConfig()
	cfg.Redis.Addr = mr.Addr()

	storage, err := SetupStorage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer storage.Close()

	require.NotNil(t, storage.Redis)
	deps := BuildDependencies(cfg, storage, zerolog.Nop())
	defer deps.Bus.Close()
	assert.True(t, deps.GridCache.Enabled())
}

func TestSetupStorageRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := memoryConfig()
	cfg.Redis.Addr = addr

	_, err := SetupStorage(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestSeedDataAndRouter(t *testing.T) {
	cfg := memoryConfig()
	cfg.Seed.File = filepath.Join("..", "..", "configs", "seed.yaml")

	storage, err := SetupStorage(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	deps := BuildDependencies(cfg, storage, zerolog.Nop())
	defer deps.Bus.Close()

	SeedData(context.Background(), cfg, deps, zerolog.Nop())

	students, err := deps.StudentService.CountStudents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), students)

	router, err := SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Marksheet API")
}
