package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "DATA_DIR", "CACHE_BACKEND", "CACHE_TTL_SECONDS", "LIST_WORKERS", "WATCH_DATA_DIR"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "prod", c.AppEnv)
	assert.Equal(t, "data/hotels", c.DataDir)
	assert.Equal(t, CacheMemory, c.CacheBackend)
	assert.Equal(t, 900*time.Second, c.CacheTTL)
	assert.Equal(t, 8, c.ListWorkers)
	assert.True(t, c.WatchDataDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATA_DIR", "/srv/hotels")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("LIST_WORKERS", "oops")
	t.Setenv("WATCH_DATA_DIR", "false")
	t.Setenv("REDIS_DB", "2")

	c := Load()
	assert.Equal(t, "/srv/hotels", c.DataDir)
	assert.Equal(t, CacheRedis, c.CacheBackend)
	assert.Equal(t, 30*time.Second, c.CacheTTL)
	assert.Equal(t, 8, c.ListWorkers)
	assert.False(t, c.WatchDataDir)
	assert.Equal(t, 2, c.RedisDB)
}

func TestLoad_UnknownCacheBackendFallsBack(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")
	assert.Equal(t, CacheMemory, Load().CacheBackend)
}
