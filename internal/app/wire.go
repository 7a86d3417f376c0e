// Package app assembles the verification pipeline from configuration. The
// API server and the batch ingester share it.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sanctuary/internal/adapter"
	"sanctuary/internal/adapter/classifier"
	"sanctuary/internal/adapter/metadata"
	"sanctuary/internal/adapter/transcript"
	"sanctuary/internal/cache"
	"sanctuary/internal/config"
	"sanctuary/internal/database"
	"sanctuary/internal/domain"
	"sanctuary/internal/logger"
	"sanctuary/internal/repository"
	"sanctuary/internal/service"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultQuizCacheTTL = 24 * time.Hour

// Components are the wired services plus the resources to release.
type Components struct {
	DB           *sqlx.DB
	Redis        *redis.Client
	Sessions     service.SessionService
	Verification service.VerificationService
}

// Close releases the database and Redis connections.
func (c *Components) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}

// Build opens the store, applies migrations and wires every collaborator.
// Redis is optional; without it quizzes are read straight from the store.
func Build(ctx context.Context, cfg *config.Config) (*Components, error) {
	log := logger.Get()

	db, err := database.NewSQLiteDB(cfg.DB.Path, cfg.DB.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.RunMigrations(db.DB); err != nil {
		db.Close()
		return nil, err
	}
	comps := &Components{DB: db}
	log.Info("Database ready", zap.String("path", cfg.DB.Path))

	acquirer, err := transcript.NewAcquirer(ctx, cfg.Transcript)
	if err != nil {
		comps.Close()
		return nil, err
	}
	log.Info("Transcript acquirer initialized", zap.String("strategy", acquirer.Name()))

	llmClassifier, err := classifier.New(cfg.LLM)
	if err != nil {
		comps.Close()
		return nil, err
	}
	log.Info("Classifier initialized", zap.String("provider", llmClassifier.Name()))

	fetcher, err := metadata.NewMetadataFetcher(ctx, cfg.Transcript.YouTubeAPIKey)
	if err != nil {
		log.Warn("Metadata lookup disabled", zap.Error(err))
		fetcher = metadata.PlaceholderFetcher{}
	}

	var cacheBackend domain.Cache
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	switch {
	case err == nil:
		comps.Redis = redisClient
		cacheBackend = adapter.NewRedisCacheAdapter(redisClient)
		log.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	case errors.Is(err, cache.ErrRedisNotConfigured):
		log.Info("Redis not configured; quiz cache disabled")
	default:
		log.Warn("Redis unavailable; quiz cache disabled", zap.Error(err))
	}

	ttl := config.ParseTTLStringOrDefault(cfg.CacheTTLs.Quiz, defaultQuizCacheTTL)
	quizCache := service.NewQuizCacheService(cacheBackend, ttl)
	comps.Sessions = service.NewSessionService(cfg.Session)

	comps.Verification = service.NewVerificationService(
		repository.NewVideoDatabaseAdapter(db),
		acquirer,
		llmClassifier,
		fetcher,
		quizCache,
		comps.Sessions,
		cfg,
	)
	return comps, nil
}
