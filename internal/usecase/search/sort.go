package search

import (
	"cmp"
	"math"
	"slices"

	"github.com/obinss/CoCreate-MVP/internal/domain/geo"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/request"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/sortorder"
)

// SortHits re-orders hits in place. Relevance leaves them untouched; every
// other order is stable. Distance needs origin and puts unlocated items last.
func SortHits(hits []result.Hit, order sortorder.Order, origin *request.Origin) {
	switch order {
	case sortorder.Newest:
		slices.SortStableFunc(hits, func(a, b result.Hit) int {
			ai, bi := a.Item(), b.Item()
			return bi.Created().Compare(ai.Created())
		})
	case sortorder.PriceLow:
		slices.SortStableFunc(hits, func(a, b result.Hit) int {
			return cmp.Compare(a.Item().Price, b.Item().Price)
		})
	case sortorder.PriceHigh:
		slices.SortStableFunc(hits, func(a, b result.Hit) int {
			return cmp.Compare(b.Item().Price, a.Item().Price)
		})
	case sortorder.Distance:
		if origin == nil {
			return
		}
		slices.SortStableFunc(hits, func(a, b result.Hit) int {
			return cmp.Compare(distanceFrom(origin, a), distanceFrom(origin, b))
		})
	}
}

func distanceFrom(origin *request.Origin, h result.Hit) float64 {
	it := h.Item()
	if !it.HasCoordinates() {
		return math.Inf(1)
	}
	return geo.Haversine(origin.Latitude, origin.Longitude, it.Latitude, it.Longitude)
}
