package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/obinss/CoCreate-MVP/internal/db"
)

const keySegment = "recent_searches:"

// kv is the consumer interface for history persistence (ISP).
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Store persists one recent-search list as a JSON array under
// {prefix}recent_searches:{scope}.
type Store struct {
	kv  kv
	key string
}

// New creates a history store. An empty scope maps to "global".
func New(s kv, prefix, scope string) *Store {
	if scope == "" {
		scope = "global"
	}
	return &Store{kv: s, key: prefix + keySegment + scope}
}

// Key returns the storage key.
func (s *Store) Key() string { return s.key }

// Load returns the stored list, or nil when nothing was saved yet.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("recent GET %s: %w", s.key, err)
	}

	var queries []string
	if err := json.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("recent GET %s decode: %w", s.key, err)
	}
	return queries, nil
}

// Save replaces the stored list.
func (s *Store) Save(ctx context.Context, queries []string) error {
	if queries == nil {
		queries = []string{}
	}
	data, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("recent encode: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("recent SET %s: %w", s.key, err)
	}
	return nil
}

// Clear deletes the stored list.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Del(ctx, s.key); err != nil {
		return fmt.Errorf("recent DEL %s: %w", s.key, err)
	}
	return nil
}
