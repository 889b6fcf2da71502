package cocreate

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/bootstrap"
	"github.com/obinss/CoCreate-MVP/internal/config"
	"github.com/obinss/CoCreate-MVP/internal/db"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/request"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	"github.com/obinss/CoCreate-MVP/internal/repository/catalog"
	recentrepo "github.com/obinss/CoCreate-MVP/internal/repository/recent"
	healthuc "github.com/obinss/CoCreate-MVP/internal/usecase/health"
	recentuc "github.com/obinss/CoCreate-MVP/internal/usecase/recent"
	searchuc "github.com/obinss/CoCreate-MVP/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "cocreate:"
)

// Internal interface for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Hit, error)
	SearchItems(ctx context.Context, req *request.Request, items []item.Item) ([]result.Hit, error)
	RecentSearches(ctx context.Context) ([]string, error)
	SaveRecentSearch(ctx context.Context, query string) error
	ClearRecentSearches(ctx context.Context) error
}

// Client is the embedded search engine entry point.
type Client struct {
	store     db.Store
	catalog   *bootstrap.Catalog
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
	stopWatch context.CancelFunc
}

// New creates a Client. Without a database option the history lives in memory;
// without a catalog option the client searches an empty catalog, so callers pass
// items per query via SearchOptions.Items.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		db:           config.DatabaseConfig{Driver: config.DriverMemory},
		keyPrefix:    defaultKeyPrefix,
		historyScope: "global",
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	store, err := bootstrap.OpenStore(cfg.db, zap.NewNop())
	if err != nil {
		return nil, fmt.Errorf("cocreate: %w", err)
	}
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("cocreate: database not ready: %w", err)
	}

	cat, err := openCatalog(cfg)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("cocreate: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		_ = cat.Close()
		store.Close()
		return nil, err
	}

	history := recentuc.New(recentrepo.New(store, cfg.keyPrefix, cfg.historyScope))
	c := &Client{
		store:     store,
		catalog:   cat,
		searchSvc: searchuc.New(cat.Source, history),
		healthSvc: healthuc.New(store, cat.Source),
		obs:       obs,
	}

	if cat.Watch != nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		c.stopWatch = cancel
		go func() {
			if err := cat.Watch(watchCtx); err != nil && obs.logger != nil {
				obs.logger.Warn("catalog watch stopped", "error", err)
			}
		}()
	}
	return c, nil
}

func openCatalog(cfg *clientConfig) (*bootstrap.Catalog, error) {
	if cfg.catalogPath == "" {
		return &bootstrap.Catalog{Source: catalog.NewMemory(cfg.items)}, nil
	}
	return bootstrap.OpenCatalog(config.CatalogConfig{
		Source: config.SourceJSON,
		Path:   cfg.catalogPath,
		Watch:  cfg.watch,
	}, zap.NewNop())
}

// Close stops the catalog watcher and releases all resources.
func (c *Client) Close() {
	if c.stopWatch != nil {
		c.stopWatch()
	}
	if c.catalog != nil {
		_ = c.catalog.Close()
	}
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks history database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Highlight wraps query terms of three or more characters in text with
// <mark class="highlight"> tags.
func Highlight(text, query string) string {
	return searchuc.HighlightTerms(text, query)
}
