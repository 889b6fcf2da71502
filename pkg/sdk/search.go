package cocreate

import (
	"context"
	"fmt"
	"time"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/filter"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/request"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/sortorder"
)

// Item is a marketplace listing.
type Item = item.Item

// Condition is the physical state of a listing.
type Condition = item.Condition

// Listing conditions.
const (
	ConditionNew             = item.ConditionNew
	ConditionOpenedUnused    = item.ConditionOpenedUnused
	ConditionCutUndamaged    = item.ConditionCutUndamaged
	ConditionSlightlyDamaged = item.ConditionSlightlyDamaged
)

// SortOrder re-orders a result page.
type SortOrder = sortorder.Order

// Sort orders.
const (
	SortRelevance = sortorder.Relevance
	SortNewest    = sortorder.Newest
	SortPriceLow  = sortorder.PriceLow
	SortPriceHigh = sortorder.PriceHigh
	SortDistance  = sortorder.Distance
)

// Hit is a ranked listing.
type Hit struct {
	Item  Item
	Score float64
}

// Origin is the buyer position for SortDistance.
type Origin struct {
	Lat, Lon float64
}

// SearchOptions narrows and orders a search. Zero values mean "no constraint".
type SearchOptions struct {
	Category  string
	Condition Condition
	MinPrice  float64
	MaxPrice  float64
	Location  string

	Sort      SortOrder
	Origin    *Origin
	Highlight bool

	// Items, when non-nil, are searched instead of the client's catalog.
	// Invalid items fail the search with ErrInvalidItem.
	Items []Item
}

func (o *SearchOptions) filter() filter.Filter {
	var opts []filter.Option
	if o.Category != "" {
		opts = append(opts, filter.WithCategory(o.Category))
	}
	if o.Condition != "" {
		opts = append(opts, filter.WithCondition(o.Condition))
	}
	opts = append(opts, filter.WithMinPrice(o.MinPrice), filter.WithMaxPrice(o.MaxPrice))
	if o.Location != "" {
		opts = append(opts, filter.WithLocation(o.Location))
	}
	return filter.New(opts...)
}

// Search ranks listings against query. Up to 20 hits are returned for a
// non-empty query or filter; an empty query with no filters returns every listing.
// Non-empty queries are recorded in the recent-search history.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (_ []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	if opts == nil {
		opts = &SearchOptions{}
	}
	var origin *request.Origin
	if opts.Origin != nil {
		origin = &request.Origin{Latitude: opts.Origin.Lat, Longitude: opts.Origin.Lon}
	}
	req, err := request.New(query, opts.filter(), opts.Sort, origin, opts.Highlight)
	if err != nil {
		return nil, fmt.Errorf("search: %w: %w", ErrInvalidRequest, err)
	}

	var hits []result.Hit
	if opts.Items != nil {
		hits, err = c.searchSvc.SearchItems(ctx, &req, opts.Items)
	} else {
		hits, err = c.searchSvc.Search(ctx, &req)
	}
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]Hit, len(hits))
	for i, h := range hits {
		out[i] = Hit{Item: h.Item(), Score: h.Score()}
	}
	return out, nil
}

// RecentSearches returns up to five stored queries, most recent first.
func (c *Client) RecentSearches(ctx context.Context) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recent_list", start, err) }()

	queries, err := c.searchSvc.RecentSearches(ctx)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	return queries, nil
}

// SaveRecentSearch records query without searching. Empty and repeated queries are ignored.
func (c *Client) SaveRecentSearch(ctx context.Context, query string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("recent_save", start, err) }()

	if err = c.searchSvc.SaveRecentSearch(ctx, query); err != nil {
		return fmt.Errorf("save recent search: %w", err)
	}
	return nil
}

// ClearRecentSearches empties the history.
func (c *Client) ClearRecentSearches(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("recent_clear", start, err) }()

	if err = c.searchSvc.ClearRecentSearches(ctx); err != nil {
		return fmt.Errorf("clear recent searches: %w", err)
	}
	return nil
}
