package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "hotel_store/internal/adapters/http_server"
	"hotel_store/internal/adapters/memcache"
	"hotel_store/internal/adapters/observability"
	redisad "hotel_store/internal/adapters/redis"
	"hotel_store/internal/adapters/watcher"
	"hotel_store/internal/app"
	"hotel_store/internal/domain"
	"hotel_store/internal/shared"
	"hotel_store/internal/slug"
	"hotel_store/internal/storage/filestore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := filestore.New(cfg.DataDir, cfg.ListWorkers)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open data dir failed")
	}
	log.Info().Str("dir", store.Dir()).Msg("document store ready")

	cache := openCache(ctx, cfg)
	svc := app.NewHotelService(store, slug.New(), app.WithCache(cache, cfg.CacheTTL))

	if cfg.WatchDataDir && cache != nil {
		w, err := watcher.New(store.Dir(), svc)
		if err != nil {
			log.Warn().Err(err).Msg("data dir watcher disabled")
		} else {
			defer w.Close()
			go w.Run(ctx)
		}
	}

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("cache", cfg.CacheBackend).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}

// openCache returns nil when caching is disabled or Redis is unreachable;
// the service then reads straight from the store.
func openCache(ctx context.Context, cfg shared.Config) domain.Cache {
	switch cfg.CacheBackend {
	case shared.CacheRedis:
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, caching disabled")
			_ = rc.Close()
			return nil
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
		return rc
	case shared.CacheMemory:
		return memcache.New(time.Minute)
	default:
		return nil
	}
}
