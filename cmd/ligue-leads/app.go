package main

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/config"
	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/cache"
	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/creator"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// app holds the shared infrastructure. Postgres, Redis and RabbitMQ are
// optional; the matching features switch off when their URL is empty.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	client   *creator.Client
	db       *sql.DB
	ledger   entity.ConversionLedger
	cache    *cache.LookupCache
	mq       *queue.RabbitMQ
	producer *queue.RabbitMQProducer

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	if !cfg.CreatorConfigured() {
		return nil, errors.New("CREATOR_OWNER, CREATOR_APP and the OAuth client settings are required")
	}
	a := &app{cfg: cfg, logger: logger}

	tokens := creator.NewTokenSource(ctx, cfg.CreatorAccountsURL, cfg.CreatorClientID, cfg.CreatorClientSecret, cfg.CreatorRefreshToken)
	a.client = creator.NewClient(creator.Config{
		BaseURL:   cfg.CreatorBaseURL,
		Owner:     cfg.CreatorOwner,
		App:       cfg.CreatorApp,
		PublicKey: cfg.CreatorPublicKey,
		Timeout:   cfg.CreatorTimeout,
	}, tokens, logger.Named("creator"))
	a.client.OnError = middleware.RecordCreatorError

	if cfg.DatabaseURL != "" {
		db, err := database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.db = db
		a.closers = append(a.closers, db.Close)

		repo := database.NewConversionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.ledger = repo
		logger.Info("✅ conversion ledger enabled")
	}

	if cfg.RedisURL != "" {
		c, err := cache.NewLookupCache(cfg.RedisURL, cfg.LookupCacheTTL)
		if err != nil {
			logger.Warn("⚠️ lookup cache disabled", zap.Error(err))
		} else {
			a.cache = c
			a.closers = append(a.closers, c.Close)
		}
	}

	if cfg.RabbitMQURL != "" {
		mq, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.mq = mq
		a.producer = queue.NewProducer(mq.Ch)
		a.closers = append(a.closers, mq.Close)
	}
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}

// events returns the conversion publisher, or nil when RabbitMQ is off.
func (a *app) events() usecase.EventPublisher {
	if a.producer == nil {
		return nil
	}
	return a.producer
}

func (a *app) lookupCache() usecase.LookupCache {
	if a.cache == nil {
		return nil
	}
	return a.cache
}

func (a *app) convertLead() *usecase.ConvertLeadUseCase {
	return usecase.NewConvertLeadUseCase(
		a.client, a.ledger, a.events(), a.logger.Named("conversion"), a.cfg.Location(), a.cfg.ConversionRollback,
	)
}
