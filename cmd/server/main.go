package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/civicpulse/backend/internal/ai"
	"github.com/civicpulse/backend/internal/audio"
	"github.com/civicpulse/backend/internal/config"
	"github.com/civicpulse/backend/internal/db"
	"github.com/civicpulse/backend/internal/events"
	"github.com/civicpulse/backend/internal/geocode"
	httpapi "github.com/civicpulse/backend/internal/http"
	"github.com/civicpulse/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "civicpulse-backend").Logger()

	ctx := context.Background()
	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect db")
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	var pipeline ai.Pipeline
	if cfg.AIURL == "" {
		pipeline = ai.MockPipeline{ModelVersion: "mock-v1"}
		logger.Info().Msg("using mock AI pipeline")
	} else {
		pipeline = ai.HTTPPipeline{BaseURL: cfg.AIURL, APIKey: cfg.AIAPIKey}
	}

	var bus events.Bus
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		rb := events.NewRedisBus(cfg.RedisAddr, cfg.RedisPassword, logger)
		bus = rb
		redisClient = rb.Client
	} else {
		bus = events.NewMemoryBus()
		logger.Info().Msg("using in-memory event bus")
	}

	geocoder := &geocode.NominatimGeocoder{
		BaseURL:     cfg.GeocodeURL,
		UserAgent:   "civicpulse-backend/1.0",
		MinInterval: time.Second,
	}

	lifecycle := service.Lifecycle{
		Store: store,
		Triage: service.Triage{
			Pipeline:   pipeline,
			Transcoder: audio.FFmpegTranscoder{Path: cfg.FFmpegPath},
			Logger:     logger,
		},
		Geocoder: geocoder,
		Bus:      bus,
		Logger:   logger,
	}

	router := httpapi.Router(cfg, store, lifecycle, geocoder, redisClient, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	logger.Info().Msg("server stopped")
}
