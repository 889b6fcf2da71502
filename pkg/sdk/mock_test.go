package cocreate

import (
	"context"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/request"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	healthuc "github.com/obinss/CoCreate-MVP/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn      func(ctx context.Context, req *request.Request) ([]result.Hit, error)
	searchItemsFn func(ctx context.Context, req *request.Request, items []item.Item) ([]result.Hit, error)
	recentFn      func(ctx context.Context) ([]string, error)
	saveFn        func(ctx context.Context, query string) error
	clearFn       func(ctx context.Context) error
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]result.Hit, error) {
	return m.searchFn(ctx, req)
}

func (m *mockSearchUC) SearchItems(ctx context.Context, req *request.Request, items []item.Item) ([]result.Hit, error) {
	return m.searchItemsFn(ctx, req, items)
}

func (m *mockSearchUC) RecentSearches(ctx context.Context) ([]string, error) {
	return m.recentFn(ctx)
}

func (m *mockSearchUC) SaveRecentSearch(ctx context.Context, query string) error {
	return m.saveFn(ctx, query)
}

func (m *mockSearchUC) ClearRecentSearches(ctx context.Context) error {
	return m.clearFn(ctx)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report {
	return m.report
}
