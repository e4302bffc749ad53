package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"hotel_store/internal/adapters/observability"
	"hotel_store/internal/app"
	"hotel_store/internal/shared"
	"hotel_store/internal/slug"
	"hotel_store/internal/storage/filestore"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := cfg.ImportFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Fatal().Msg("usage: importer <drafts.json> (or set IMPORT_FILE)")
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("open import file failed")
	}
	drafts, err := app.DecodeDrafts(f)
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("read import file failed")
	}

	store, err := filestore.New(cfg.DataDir, cfg.ListWorkers)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open data dir failed")
	}

	log.Info().
		Str("file", path).
		Str("dir", store.Dir()).
		Int("hotels", len(drafts)).
		Int("workers", cfg.ImportWorkers).
		Msg("importer starting")

	svc := app.NewHotelService(store, slug.New())
	failed := 0
	for _, r := range svc.ImportHotels(ctx, drafts, cfg.ImportWorkers) {
		if r.Err != nil {
			failed++
			continue
		}
		log.Info().Str("id", r.Hotel.ID).Str("slug", r.Hotel.Slug).Msg("import ok")
	}

	log.Info().Int("ok", len(drafts)-failed).Int("failed", failed).Msg("import completed")
	if failed > 0 {
		os.Exit(1)
	}
}
