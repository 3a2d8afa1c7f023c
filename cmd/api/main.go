package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/illineats/backend/config"
	"github.com/illineats/backend/internal/api"
	"github.com/illineats/backend/internal/cache"
	"github.com/illineats/backend/internal/database"
	"github.com/illineats/backend/internal/logging"
	"github.com/illineats/backend/internal/schedule"
	"github.com/illineats/backend/internal/server"
	"github.com/illineats/backend/internal/service"
	"github.com/illineats/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.New(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	sched, err := schedule.Load(cfg.ScheduleFile)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dining schedule")
	}
	logging.Info().Str("version", sched.Version()).Int("halls", len(sched.Halls())).Msg("Loaded dining schedule")

	var (
		redisClient *redis.Client
		recCache    service.RecommendationCache
	)
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(context.Background(), cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		recCache = cache.NewRecommendationCache(redisClient, cache.DefaultRecommendationTTL)
	} else {
		logging.Warn().Msg("Redis not configured; recommendation caching and rate limits disabled")
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize S3")
	}
	store := storage.NewS3Store(s3Config)

	srv := server.New(cfg, server.Deps{
		DB:    db,
		Redis: redisClient,
		Services: api.Services{
			Auth:            service.NewAuthService(cfg.JWTSecret),
			Foods:           service.NewFoodService(db, sched),
			Recommendations: service.NewRecommendationService(db, sched, recCache),
			Users:           service.NewUserService(db, recCache),
			Reviews:         service.NewReviewService(db, sched),
			Favorites:       service.NewFavoriteService(db),
			Images:          service.NewImageService(db, store),
			Subscriptions:   service.NewSubscriptionService(db),
			Import:          service.NewImportService(db, sched),
		},
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logging.Fatal().Err(err).Msg("Server error")
		}
	case sig := <-quit:
		logging.Info().Str("signal", sig.String()).Msg("Received signal")
	}

	logging.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Server shutdown error")
	}
	logging.Info().Msg("Server stopped")
}
