package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	DataDir       string
	LogFile       string
	CacheBackend  string
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration
	ListWorkers   int
	ImportWorkers int
	WatchDataDir  bool
	ImportFile    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		DataDir:       env("DATA_DIR", "data/hotels"),
		LogFile:       env("LOG_FILE", ""),
		CacheBackend:  strings.ToLower(env("CACHE_BACKEND", CacheMemory)),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ListWorkers:   atoi("LIST_WORKERS", 8),
		ImportWorkers: atoi("IMPORT_WORKERS", 4),
		WatchDataDir:  boolean("WATCH_DATA_DIR", true),
		ImportFile:    env("IMPORT_FILE", ""),
	}
	switch c.CacheBackend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		log.Warn().Str("backend", c.CacheBackend).Msg("unknown CACHE_BACKEND, using memory")
		c.CacheBackend = CacheMemory
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolean(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
