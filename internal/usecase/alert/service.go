package alert

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/obinss/CoCreate-MVP/internal/domain"
	domalert "github.com/obinss/CoCreate-MVP/internal/domain/alert"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/metrics"
	"github.com/obinss/CoCreate-MVP/internal/usecase/search"
)

// DefaultPoolSize is the number of alerts evaluated concurrently.
const DefaultPoolSize = 4

// Match lists the listings one alert matched.
type Match struct {
	AlertID   string
	AlertName string
	Items     []item.Item
}

// Service manages product alerts and evaluates them against the catalog.
type Service struct {
	repo   Repository
	source Source
	pool   *ants.Pool

	mu sync.Mutex // serializes read-modify-write of alert lists
}

// New creates an alert service with a bounded evaluation pool.
// Call Release when done.
func New(repo Repository, source Source, poolSize int) (*Service, error) {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create alert pool: %w", err)
	}
	return &Service{repo: repo, source: source, pool: pool}, nil
}

// Release stops the evaluation pool.
func (s *Service) Release() {
	s.pool.Release()
}

// Create validates and stores a new alert. Duplicate IDs are rejected.
func (s *Service) Create(ctx context.Context, scope string, a domalert.Alert) (domalert.Alert, error) {
	if err := a.Validate(); err != nil {
		return domalert.Alert{}, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	alerts, err := s.repo.List(ctx, scope)
	if err != nil {
		return domalert.Alert{}, fmt.Errorf("list alerts: %w", err)
	}
	for i := range alerts {
		if alerts[i].ID == a.ID {
			return domalert.Alert{}, fmt.Errorf("%w: alert %q already exists", domain.ErrInvalidRequest, a.ID)
		}
	}

	alerts = append(alerts, a)
	if err := s.repo.Save(ctx, scope, alerts); err != nil {
		return domalert.Alert{}, fmt.Errorf("save alerts: %w", err)
	}
	return a, nil
}

// List returns the scope's alerts in creation order.
func (s *Service) List(ctx context.Context, scope string) ([]domalert.Alert, error) {
	alerts, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

// Delete removes an alert by ID.
func (s *Service) Delete(ctx context.Context, scope, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	alerts, err := s.repo.List(ctx, scope)
	if err != nil {
		return fmt.Errorf("list alerts: %w", err)
	}
	idx := -1
	for i := range alerts {
		if alerts[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("alert %q: %w", id, domain.ErrNotFound)
	}

	alerts = append(alerts[:idx], alerts[idx+1:]...)
	if err := s.repo.Save(ctx, scope, alerts); err != nil {
		return fmt.Errorf("save alerts: %w", err)
	}
	return nil
}

// CheckMatches evaluates every active alert of scope against the catalog.
// Alerts without matches are omitted; the rest keep creation order.
func (s *Service) CheckMatches(ctx context.Context, scope string) ([]Match, error) {
	alerts, err := s.repo.List(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	items, err := s.source.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnavailable, s.source.Name(), err)
	}
	items = search.ValidItems(ctx, s.source.Name(), items)

	results := make([][]item.Item, len(alerts))
	var wg sync.WaitGroup
	for i := range alerts {
		i := i
		if !alerts[i].Active {
			continue
		}
		wg.Add(1)
		a := &alerts[i]
		if err := s.pool.Submit(func() {
			defer wg.Done()
			results[i] = matchAll(a, items)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit alert %s: %w", a.ID, err)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var matches []Match
	for i := range alerts {
		if len(results[i]) == 0 {
			continue
		}
		metrics.AlertMatchesTotal.Add(float64(len(results[i])))
		matches = append(matches, Match{
			AlertID:   alerts[i].ID,
			AlertName: alerts[i].String(),
			Items:     results[i],
		})
	}
	return matches, nil
}

func matchAll(a *domalert.Alert, items []item.Item) []item.Item {
	var out []item.Item
	for i := range items {
		if a.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
