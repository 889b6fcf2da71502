package recent

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Limit is the maximum number of remembered queries.
const Limit = 5

// Service keeps a bounded, most-recent-first list of distinct queries.
// A query already in the list is left where it is.
type Service struct {
	mu    sync.Mutex
	store Store
}

// New creates a history service over store.
func New(store Store) *Service {
	return &Service{store: store}
}

// Save records query. Empty queries are ignored.
func (s *Service) Save(ctx context.Context, query string) error {
	if query == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	queries, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if slices.Contains(queries, query) {
		return nil
	}

	next := make([]string, 0, Limit)
	next = append(next, query)
	next = append(next, queries...)
	if len(next) > Limit {
		next = next[:Limit]
	}

	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// List returns the stored queries, most recent first. Never nil.
func (s *Service) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	queries, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if queries == nil {
		return []string{}, nil
	}
	return queries, nil
}

// Clear forgets every stored query.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
