package search

import (
	"cmp"
	"slices"
	"strings"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/filter"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
)

// Ranking parameters.
const (
	// MaxResults caps every filtered or ranked result list.
	MaxResults = 20
	// FuzzyThreshold is the maximum edit distance that earns fuzzy title credit.
	FuzzyThreshold = 3

	TitleWeight       = 10.0
	CategoryWeight    = 5.0
	DescriptionWeight = 2.0

	// fuzzyCredit is the share of TitleWeight awarded for a fuzzy title match.
	fuzzyCredit = 0.5
)

// Search returns the items matching filters, ranked by relevance to query and
// capped at MaxResults. With an empty query and no active filter the input slice
// itself is returned, uncapped.
func Search(query string, items []item.Item, f filter.Filter) []item.Item {
	if query == "" && f.IsEmpty() {
		return items
	}
	return result.Items(rank(query, items, f))
}

// SearchHits is Search with relevance scores attached. In the no-query,
// no-filter case every item is returned with score 0 and no cap.
func SearchHits(query string, items []item.Item, f filter.Filter) []result.Hit {
	if query == "" && f.IsEmpty() {
		hits := make([]result.Hit, len(items))
		for i := range items {
			hits[i] = result.New(items[i], 0)
		}
		return hits
	}
	return rank(query, items, f)
}

func rank(query string, items []item.Item, f filter.Filter) []result.Hit {
	filtered := ApplyFilters(items, f)
	normalized := Normalize(query)

	hits := make([]result.Hit, 0, len(filtered))
	if normalized == "" {
		for i := range filtered {
			hits = append(hits, result.New(filtered[i], 0))
		}
	} else {
		tokens := strings.Fields(normalized)
		for i := range filtered {
			if score := scoreTokens(&filtered[i], tokens); score > 0 {
				hits = append(hits, result.New(filtered[i], score))
			}
		}
		slices.SortStableFunc(hits, func(a, b result.Hit) int {
			return cmp.Compare(b.Score(), a.Score())
		})
	}

	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	return hits
}

// ApplyFilters returns the items satisfying every active constraint of f,
// preserving input order. The input slice is not modified.
func ApplyFilters(items []item.Item, f filter.Filter) []item.Item {
	out := make([]item.Item, 0, len(items))
	for i := range items {
		if f.Matches(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// Normalize trims and lower-cases a query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// CalculateRelevance scores it against query. Every whitespace-delimited token
// earns the weight of each field (title, category, description) that contains it;
// a token missing from the title earns half the title weight when its edit
// distance to the whole title is within FuzzyThreshold.
func CalculateRelevance(it *item.Item, query string) float64 {
	return scoreTokens(it, strings.Fields(Normalize(query)))
}

func scoreTokens(it *item.Item, tokens []string) float64 {
	title := strings.ToLower(it.Title)
	category := strings.ToLower(it.Category)
	description := strings.ToLower(it.Description)

	var score float64
	for _, token := range tokens {
		if strings.Contains(title, token) {
			score += TitleWeight
		} else if withinDistance(token, title, FuzzyThreshold) {
			score += TitleWeight * fuzzyCredit
		}
		if strings.Contains(category, token) {
			score += CategoryWeight
		}
		if strings.Contains(description, token) {
			score += DescriptionWeight
		}
	}
	return score
}
