// Package bootstrap builds the storage and catalog backends named in the configuration.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/config"
	"github.com/obinss/CoCreate-MVP/internal/db"
	dbBadger "github.com/obinss/CoCreate-MVP/internal/db/badger"
	dbMemory "github.com/obinss/CoCreate-MVP/internal/db/memory"
	dbRedis "github.com/obinss/CoCreate-MVP/internal/db/redis"
	"github.com/obinss/CoCreate-MVP/internal/metrics"
	"github.com/obinss/CoCreate-MVP/internal/repository/catalog"
	"github.com/obinss/CoCreate-MVP/internal/repository/snapshot"
)

// OpenStore creates the key-value store for the configured driver.
// Redis and Valkey share the rueidis client; a single address selects standalone mode.
func OpenStore(cfg config.DatabaseConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return dbMemory.NewStore(), nil
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Addrs,
			Password:   cfg.Password,
			Standalone: len(cfg.Addrs) == 1,
		})
		if err != nil {
			return nil, fmt.Errorf("%s store: %w", cfg.Driver, err)
		}
		return s, nil
	case config.DriverBadger:
		s, err := dbBadger.NewStore(dbBadger.Config{Path: cfg.Path, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("badger store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Catalog is an opened catalog source plus the hooks its lifetime needs.
type Catalog struct {
	Source catalog.NamedSource
	// Watch blocks until ctx is done; nil when the source cannot be watched.
	Watch   func(ctx context.Context) error
	closers []func() error
}

// Close releases every backend opened for the catalog.
func (c *Catalog) Close() error {
	var first error
	for _, fn := range c.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CatalogOption customizes OpenCatalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	snapshotStore  db.KVStore
	snapshotPrefix string
}

// WithSnapshotStore persists the last good catalog of the primary source in s
// when the configuration enables snapshots.
func WithSnapshotStore(s db.KVStore, prefix string) CatalogOption {
	return func(o *catalogOptions) {
		o.snapshotStore = s
		o.snapshotPrefix = prefix
	}
}

// OpenCatalog opens the configured catalog source. The primary source is wrapped
// in a stored snapshot and then in a local JSON fallback when those are configured.
func OpenCatalog(cfg config.CatalogConfig, logger *zap.Logger, opts ...CatalogOption) (*Catalog, error) {
	var o catalogOptions
	for _, fn := range opts {
		fn(&o)
	}
	c := &Catalog{}

	switch cfg.Source {
	case config.SourceMemory:
		c.Source = catalog.NewMemory(nil)
	case config.SourceJSON, "":
		f, err := catalog.NewJSONFile(cfg.Path, logger)
		if err != nil {
			return nil, err
		}
		c.Source = f
		if cfg.Watch {
			c.Watch = f.Watch
		}
	case config.SourceSQLite:
		s, err := catalog.OpenSQLite(cfg.DSN)
		if err != nil {
			return nil, err
		}
		c.Source = s
		c.closers = append(c.closers, s.Close)
	case config.SourceRemote:
		c.Source = catalog.NewRemote(cfg.BaseURL, time.Duration(cfg.TimeoutSec)*time.Second)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}

	if cfg.Snapshot && o.snapshotStore != nil {
		c.Source = snapshot.New(c.Source, o.snapshotStore, o.snapshotPrefix, metrics.CatalogSnapshotTotal, logger)
	}

	if cfg.FallbackPath == "" {
		return c, nil
	}
	local, err := catalog.NewJSONFile(cfg.FallbackPath, logger)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("fallback catalog: %w", err)
	}
	c.Source = catalog.NewFallback(c.Source, local, logger)
	if c.Watch == nil && cfg.Watch {
		c.Watch = local.Watch
	}
	return c, nil
}
