package main

import (
	"context"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_portal/internal/adapters/geocode"
	"hotel_portal/internal/adapters/observability"
	redisad "hotel_portal/internal/adapters/redis"
	"hotel_portal/internal/app"
	"hotel_portal/internal/shared"
	"hotel_portal/internal/storage/gormstore"
)

// geocoder fills in map coordinates for properties that have an address
// but no position yet. Misses are recorded and not retried on the next run.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "geocoder")

	if cfg.GeocoderBase == "" {
		log.Fatal().Msg("GEOCODER_BASE_URL is required")
	}
	log.Info().
		Str("base", cfg.GeocoderBase).
		Int("workers", cfg.GeocodeWorkers).
		Int("batch", cfg.GeocodeBatch).
		Msg("geocoder starting")

	db, err := gormstore.Open(cfg.DBDriver, cfg.DBDSN, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	if err := gormstore.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	log.Info().Msg("db ping ok")

	client, err := geocode.New(cfg.GeocoderBase, cfg.GeocoderKey, cfg.GeocoderUserAgent, cfg.GeocoderRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize geocoder client")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()

	svc := app.NewGeocodeService(client, gormstore.New(db).Properties(), cache)
	pending, err := svc.Pending(ctx, cfg.GeocodeBatch)
	if err != nil {
		log.Fatal().Err(err).Msg("list properties without coordinates failed")
	}

	workers := cfg.GeocodeWorkers
	if workers <= 0 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)

	for _, p := range pending {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Warn().Err(err).Msg("stopping early")
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := svc.Backfill(ctx, p); err != nil {
				log.Warn().Int64("id", p.ID).Str("slug", p.Slug).Err(err).Msg("geocode failed")
				return
			}
			done.Add(1)
		}()
	}

	wg.Wait()
	log.Info().Int("pending", len(pending)).Int64("done", done.Load()).Msg("geocoding completed")
}
