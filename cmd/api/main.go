package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	amqpad "hotel_portal/internal/adapters/amqp"
	"hotel_portal/internal/adapters/geocode"
	server "hotel_portal/internal/adapters/http_server"
	"hotel_portal/internal/adapters/observability"
	redisad "hotel_portal/internal/adapters/redis"
	"hotel_portal/internal/app"
	"hotel_portal/internal/domain"
	"hotel_portal/internal/shared"
	"hotel_portal/internal/storage/gormstore"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, "api")

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := gormstore.Open(cfg.DBDriver, cfg.DBDSN, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("database open failed")
	}
	if err := gormstore.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")

	// deps
	store := gormstore.New(db)
	repos := app.Repos{
		Properties:   store.Properties(),
		Restaurants:  store.Restaurants(),
		Events:       store.Events(),
		HeroSlides:   store.HeroSlides(),
		Offers:       store.Offers(),
		Guests:       store.Guests(),
		Reservations: store,
		Payments:     store,
		Stats:        store,
	}

	rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer rc.Close()
	var cache domain.Cache = rc
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := rc.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Msg("redis unreachable; serving public reads uncached")
		cache = nil
	}
	cancelPing()

	var pub domain.Publisher = amqpad.Nop{}
	if cfg.AMQPURL != "" {
		p, err := amqpad.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatal().Err(err).Msg("event publisher failed")
		}
		defer p.Close()
		pub = p
	}

	h := &server.Handlers{
		Q:            app.NewQueryService(store, cache, cfg.CacheTTL()),
		Admin:        app.NewAdminService(repos, cache),
		Reservations: app.NewReservationService(repos, pub),
		Payments:     app.NewPaymentService(repos, pub),
		Dashboard:    app.NewDashboardService(store),
	}
	if cfg.GeocoderBase != "" {
		gc, err := geocode.New(cfg.GeocoderBase, cfg.GeocoderKey, cfg.GeocoderUserAgent, cfg.GeocoderRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize geocoder")
		}
		h.Geocode = app.NewGeocodeService(gc, repos.Properties, cache)
	}

	// http
	srv := server.New(cfg.HTTPTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
