// Package feedsearch is the embedded client for the KonectFeed business
// search core: it connects to the store directly and exposes the same
// search semantics the HTTP API serves.
package feedsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/konectfeed/feedsearch/internal/db"
	dbRedis "github.com/konectfeed/feedsearch/internal/db/redis"
	"github.com/konectfeed/feedsearch/internal/domain/search/plan"
	"github.com/konectfeed/feedsearch/internal/domain/search/query"
	"github.com/konectfeed/feedsearch/internal/logger"
	listingrepo "github.com/konectfeed/feedsearch/internal/repository/listing"
	searchuc "github.com/konectfeed/feedsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the feedsearch SDK entry point.
type Client struct {
	store     db.Store
	searchSvc *searchuc.Service
	log       *zap.Logger
}

// New creates a feedsearch Client, connects to the database and ensures
// the listings index exists. The context bounds the readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("feedsearch: database address required (use WithRedis)")
	}

	ctx = logger.ContextWithLogger(ctx, cfg.logger)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("feedsearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("feedsearch: database not ready: %w", err)
	}

	repo := listingrepo.New(store, cfg.keyPrefix, cfg.candidateWindow)
	if err := repo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("feedsearch: %w", err)
	}

	svc := searchuc.New(
		repo,
		query.Policy{RequireFilter: cfg.requireFilter},
		plan.Policy{
			FieldMatch: cfg.fieldMatch,
			Strategy:   cfg.strategy,
			Secondary:  cfg.secondarySort,
			MaxLimit:   cfg.maxLimit,
		},
	)
	svc.WarnOnMissingCapability(ctx)

	return &Client{store: store, searchSvc: svc, log: cfg.logger}, nil
}

// Close releases the store connection.
func (c *Client) Close() {
	c.store.Close()
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}
