package filter

import (
	"math"
	"strconv"
	"strings"

	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

// Category values that mean "no category constraint".
const (
	AllCategories      = "All Categories"
	allCategoriesShort = "all"
)

// Filter is a set of hard constraints on item attributes.
// Every unset dimension imposes no constraint.
type Filter struct {
	category  string
	condition item.Condition
	minPrice  *float64
	maxPrice  *float64
	location  string
}

// Option sets one constraint on a Filter.
type Option func(*Filter)

// New builds a Filter from options. With no options it matches everything.
func New(opts ...Option) Filter {
	var f Filter
	for _, o := range opts {
		o(&f)
	}
	return f
}

// WithCategory constrains the exact category. "All Categories" and "all" clear it.
func WithCategory(c string) Option {
	return func(f *Filter) {
		if c == AllCategories || c == allCategoriesShort {
			f.category = ""
			return
		}
		f.category = c
	}
}

// WithCondition constrains the exact listing condition.
func WithCondition(c item.Condition) Option {
	return func(f *Filter) { f.condition = c }
}

// WithMinPrice sets an inclusive lower price bound. Zero and non-finite values clear it.
func WithMinPrice(p float64) Option {
	return func(f *Filter) { f.minPrice = priceBound(p) }
}

// WithMaxPrice sets an inclusive upper price bound. Zero and non-finite values clear it.
func WithMaxPrice(p float64) Option {
	return func(f *Filter) { f.maxPrice = priceBound(p) }
}

// WithLocation constrains locationName to contain loc, case-insensitively.
func WithLocation(loc string) Option {
	return func(f *Filter) { f.location = loc }
}

// priceBound mirrors the browse page: a 0 bound is the same as no bound.
func priceBound(p float64) *float64 {
	if p == 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return nil
	}
	return &p
}

// Parse builds a Filter from untyped key/value input such as query strings or CLI flags.
// Both camelCase and snake_case price keys are accepted. Unparseable numbers are
// treated as absent and never produce an error.
func Parse(raw map[string]string) Filter {
	var opts []Option
	if v := strings.TrimSpace(raw["category"]); v != "" {
		opts = append(opts, WithCategory(v))
	}
	if v := strings.TrimSpace(raw["condition"]); v != "" {
		opts = append(opts, WithCondition(item.Condition(v)))
	}
	if p, ok := parsePrice(firstNonEmpty(raw["minPrice"], raw["min_price"])); ok {
		opts = append(opts, WithMinPrice(p))
	}
	if p, ok := parsePrice(firstNonEmpty(raw["maxPrice"], raw["max_price"])); ok {
		opts = append(opts, WithMaxPrice(p))
	}
	if v := raw["location"]; strings.TrimSpace(v) != "" {
		opts = append(opts, WithLocation(v))
	}
	return New(opts...)
}

func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return p, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Category returns the category constraint.
func (f Filter) Category() (string, bool) { return f.category, f.category != "" }

// Condition returns the condition constraint.
func (f Filter) Condition() (item.Condition, bool) { return f.condition, f.condition != "" }

// MinPrice returns the inclusive lower price bound.
func (f Filter) MinPrice() (float64, bool) { return deref(f.minPrice) }

// MaxPrice returns the inclusive upper price bound.
func (f Filter) MaxPrice() (float64, bool) { return deref(f.maxPrice) }

// Location returns the location substring constraint.
func (f Filter) Location() (string, bool) { return f.location, f.location != "" }

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// IsEmpty reports whether the filter has no active constraint.
func (f Filter) IsEmpty() bool {
	return f.category == "" && f.condition == "" &&
		f.minPrice == nil && f.maxPrice == nil && f.location == ""
}

// Matches reports whether it satisfies every active constraint.
func (f Filter) Matches(it *item.Item) bool {
	if f.category != "" && it.Category != f.category {
		return false
	}
	if f.minPrice != nil && it.Price < *f.minPrice {
		return false
	}
	if f.maxPrice != nil && it.Price > *f.maxPrice {
		return false
	}
	if f.location != "" &&
		!strings.Contains(strings.ToLower(it.LocationName), strings.ToLower(f.location)) {
		return false
	}
	if f.condition != "" && it.Condition != f.condition {
		return false
	}
	return true
}
