package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/domain"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/request"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	"github.com/obinss/CoCreate-MVP/internal/logger"
	"github.com/obinss/CoCreate-MVP/internal/metrics"
)

// Service runs searches against a catalog source and keeps the query history.
type Service struct {
	source  Source
	history History
}

// New creates a search service. history may be nil.
func New(source Source, history History) *Service {
	return &Service{source: source, history: history}
}

// Search loads the catalog and searches it.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Hit, error) {
	items, err := s.source.Items(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrSourceUnavailable, s.source.Name(), err)
	}
	return s.run(ctx, req, ValidItems(ctx, s.source.Name(), items)), nil
}

// SearchItems searches caller-supplied items. Every item must be valid.
func (s *Service) SearchItems(ctx context.Context, req *request.Request, items []item.Item) ([]result.Hit, error) {
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return nil, domain.NewItemError(i, items[i].ID, err)
		}
	}
	return s.run(ctx, req, items), nil
}

func (s *Service) run(ctx context.Context, req *request.Request, items []item.Item) []result.Hit {
	start := time.Now()

	hits := SearchHits(req.Query(), items, req.Filters())
	SortHits(hits, req.Order(), req.Origin())
	if req.Highlight() {
		highlight(hits, req.Query())
	}

	if s.history != nil && req.Query() != "" {
		if err := s.history.Save(ctx, req.Query()); err != nil {
			logger.FromContext(ctx).Warn("Failed to save recent search", zap.Error(err))
		}
	}

	kind := "browse"
	if req.Query() != "" {
		kind = "text"
	}
	metrics.SearchRequestsTotal.WithLabelValues(string(req.Order()), kind).Inc()
	metrics.SearchResultsReturned.Observe(float64(len(hits)))
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	return hits
}

func highlight(hits []result.Hit, query string) {
	for i := range hits {
		it := hits[i].Item()
		it.Title = HighlightTerms(it.Title, query)
		it.Description = HighlightTerms(it.Description, query)
		hits[i] = hits[i].WithItem(it)
	}
}

// Highlight marks query terms in text.
func (s *Service) Highlight(text, query string) string {
	return HighlightTerms(text, query)
}

// RecentSearches lists the query history, most recent first.
func (s *Service) RecentSearches(ctx context.Context) ([]string, error) {
	if s.history == nil {
		return []string{}, nil
	}
	queries, err := s.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return queries, nil
}

// SaveRecentSearch records query in the history.
func (s *Service) SaveRecentSearch(ctx context.Context, query string) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.Save(ctx, query); err != nil {
		return fmt.Errorf("save recent search: %w", err)
	}
	return nil
}

// ClearRecentSearches empties the history.
func (s *Service) ClearRecentSearches(ctx context.Context) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.Clear(ctx); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}

// ValidItems drops catalog records that fail validation, logging and counting each.
// The input is returned as is when every record is valid.
func ValidItems(ctx context.Context, source string, items []item.Item) []item.Item {
	var out []item.Item
	for i := range items {
		err := items[i].Validate()
		if err == nil {
			if out != nil {
				out = append(out, items[i])
			}
			continue
		}
		if out == nil {
			out = make([]item.Item, i, len(items))
			copy(out, items[:i])
		}
		metrics.InvalidItemsTotal.WithLabelValues(source).Inc()
		logger.FromContext(ctx).Warn("Skipping invalid catalog item",
			zap.String("source", source),
			zap.Error(domain.NewItemError(i, items[i].ID, err)),
		)
	}
	if out == nil {
		return items
	}
	return out
}
