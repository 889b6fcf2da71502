package request

import (
	"fmt"

	"github.com/obinss/CoCreate-MVP/internal/domain/geo"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/filter"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/sortorder"
)

// MaxQueryLength is the maximum allowed search query length.
const MaxQueryLength = 4096

// Origin is the buyer position used by the distance sort.
type Origin struct {
	Latitude  float64
	Longitude float64
}

// Request is a validated search query.
type Request struct {
	query     string
	filters   filter.Filter
	order     sortorder.Order
	origin    *Origin
	highlight bool
}

// New validates search parameters. The query may be empty (filter-only browse).
// Defaults: order=relevance.
func New(
	query string,
	filters filter.Filter,
	order sortorder.Order,
	origin *Origin,
	highlight bool,
) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if order == "" {
		order = sortorder.Relevance
	}
	if !order.IsValid() {
		return Request{}, fmt.Errorf("invalid sort order: %q", order)
	}
	if origin != nil && !geo.ValidateCoordinates(origin.Latitude, origin.Longitude) {
		return Request{}, fmt.Errorf("origin coordinates out of range")
	}
	if order == sortorder.Distance && origin == nil {
		return Request{}, fmt.Errorf("distance sort requires an origin")
	}

	return Request{
		query:     query,
		filters:   filters,
		order:     order,
		origin:    origin,
		highlight: highlight,
	}, nil
}

// Query returns the raw search text.
func (r *Request) Query() string { return r.query }

// Filters returns the hard filter set.
func (r *Request) Filters() filter.Filter { return r.filters }

// Order returns the post-ranking sort order.
func (r *Request) Order() sortorder.Order { return r.order }

// Origin returns the buyer position (nil unless supplied).
func (r *Request) Origin() *Origin { return r.origin }

// Highlight reports whether title and description should carry match markers.
func (r *Request) Highlight() bool { return r.highlight }
