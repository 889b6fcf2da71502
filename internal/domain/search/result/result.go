package result

import "github.com/obinss/CoCreate-MVP/internal/domain/item"

// Hit is a single search result: the item and its transient relevance score.
// Score is 0 when no query was given.
type Hit struct {
	item  item.Item
	score float64
}

// New creates a search hit.
func New(it item.Item, score float64) Hit {
	return Hit{item: it, score: score}
}

// Item returns the matched listing.
func (h Hit) Item() item.Item { return h.item }

// Score returns the relevance score.
func (h Hit) Score() float64 { return h.score }

// WithItem returns a copy carrying a replacement item (e.g. highlighted text).
func (h Hit) WithItem(it item.Item) Hit {
	return Hit{item: it, score: h.score}
}

// Items unwraps hits into their items, preserving order.
func Items(hits []Hit) []item.Item {
	out := make([]item.Item, len(hits))
	for i := range hits {
		out[i] = hits[i].item
	}
	return out
}
