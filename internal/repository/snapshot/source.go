// Package snapshot keeps the last good catalog of a source in the key-value store
// so searches survive an outage of the source across restarts.
package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/db"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// store is the consumer interface for snapshot persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// inner is the decorated catalog source.
type inner interface {
	Name() string
	Items(ctx context.Context) ([]item.Item, error)
}

// Source serves the inner source and falls back to the stored snapshot when it fails.
type Source struct {
	inner         inner
	store         store
	key           string
	snapshotTotal *prometheus.CounterVec
	logger        *zap.Logger

	mu         sync.Mutex
	storedHash string
}

// New creates a snapshot decorator. The snapshot key is prefix+"catalog_snapshot:"+inner.Name().
// snapshotTotal is a counter vec with label "result" ("stored"/"hit"/"miss"), passed explicitly.
func New(
	in inner,
	s store,
	prefix string,
	snapshotTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		inner:         in,
		store:         s,
		key:           prefix + "catalog_snapshot:" + in.Name(),
		snapshotTotal: snapshotTotal,
		logger:        logger,
	}
}

// Name identifies the source in logs and metrics.
func (s *Source) Name() string { return s.inner.Name() }

// Key returns the snapshot storage key.
func (s *Source) Key() string { return s.key }

// Items returns the inner items and refreshes the snapshot when they changed.
// When the inner source fails, the stored snapshot is returned; without one the
// inner error is returned.
func (s *Source) Items(ctx context.Context) ([]item.Item, error) {
	items, err := s.inner.Items(ctx)
	if err == nil {
		s.save(ctx, items)
		return items, nil
	}

	cached, ok := s.load(ctx)
	if !ok {
		s.inc("miss")
		return nil, fmt.Errorf("catalog %s: %w", s.inner.Name(), err)
	}
	s.inc("hit")
	s.logger.Warn("Catalog source failed, serving stored snapshot",
		zap.String("source", s.inner.Name()), zap.Int("items", len(cached)), zap.Error(err))
	return cached, nil
}

func (s *Source) inc(result string) {
	if s.snapshotTotal != nil {
		s.snapshotTotal.WithLabelValues(result).Inc()
	}
}

func (s *Source) save(ctx context.Context, items []item.Item) {
	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn("Failed to encode catalog snapshot", zap.Error(err))
		return
	}
	h := sha256.Sum256(data)
	hash := hex.EncodeToString(h[:])

	s.mu.Lock()
	defer s.mu.Unlock()
	if hash == s.storedHash {
		return
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		s.logger.Warn("Failed to store catalog snapshot", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.storedHash = hash
	s.inc("stored")
}

func (s *Source) load(ctx context.Context) ([]item.Item, bool) {
	data, err := s.store.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("Failed to read catalog snapshot", zap.String("key", s.key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var items []item.Item
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("Failed to parse catalog snapshot", zap.String("key", s.key), zap.Error(err))
		return nil, false
	}
	return items, true
}
