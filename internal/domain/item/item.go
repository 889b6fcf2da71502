package item

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Condition is the physical state of a listed material.
type Condition string

// Listing conditions.
const (
	ConditionNew             Condition = "new"
	ConditionOpenedUnused    Condition = "opened_unused"
	ConditionCutUndamaged    Condition = "cut_undamaged"
	ConditionSlightlyDamaged Condition = "slightly_damaged"
)

var conditionLabels = map[Condition]string{
	ConditionNew:             "New",
	ConditionOpenedUnused:    "Opened/Unused",
	ConditionCutUndamaged:    "Cut/Undamaged",
	ConditionSlightlyDamaged: "Slightly Damaged",
}

// IsValid checks if the condition is one of the supported values.
func (c Condition) IsValid() bool {
	_, ok := conditionLabels[c]
	return ok
}

// Label returns the human-readable condition name.
func (c Condition) Label() string {
	if l, ok := conditionLabels[c]; ok {
		return l
	}
	return string(c)
}

// Categories is the fixed marketplace category set.
var Categories = []string{
	"Wood", "Metal", "Masonry", "Electrical", "Plumbing",
	"Insulation", "Flooring", "Roofing", "Paint & Coating",
	"Doors & Windows", "Hardware", "Concrete",
}

// IsCategory reports whether name is a known category (exact match).
func IsCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// Item is a searchable marketplace listing.
// Title, Description, Category, Condition, Price and LocationName are required;
// the rest is carried through for sorting and display.
type Item struct {
	ID           string    `json:"id,omitempty"`
	SellerID     string    `json:"sellerId,omitempty"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Condition    Condition `json:"condition"`
	Price        float64   `json:"price"`
	MarketPrice  float64   `json:"marketPrice,omitempty"`
	Quantity     int       `json:"quantity,omitempty"`
	Unit         string    `json:"unitOfMeasure,omitempty"`
	LocationName string    `json:"locationName"`
	Latitude     float64   `json:"locationLat,omitempty"`
	Longitude    float64   `json:"locationLong,omitempty"`
	Status       string    `json:"status,omitempty"`
	CreatedAt    string    `json:"createdAt,omitempty"`
}

// Validate checks the required attributes.
func (it *Item) Validate() error {
	var errs []error
	if strings.TrimSpace(it.Title) == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if !IsCategory(it.Category) {
		errs = append(errs, fmt.Errorf("unknown category %q", it.Category))
	}
	if !it.Condition.IsValid() {
		errs = append(errs, fmt.Errorf("unknown condition %q", it.Condition))
	}
	if math.IsNaN(it.Price) || math.IsInf(it.Price, 0) || it.Price < 0 {
		errs = append(errs, fmt.Errorf("price must be a non-negative number, got %v", it.Price))
	}
	if strings.TrimSpace(it.LocationName) == "" {
		errs = append(errs, errors.New("locationName is required"))
	}
	return errors.Join(errs...)
}

// HasCoordinates reports whether the listing carries a usable position.
func (it *Item) HasCoordinates() bool {
	return it.Latitude != 0 || it.Longitude != 0
}

// Created parses CreatedAt (RFC 3339 or a bare date). Zero time if unset or malformed.
func (it *Item) Created() time.Time {
	if it.CreatedAt == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, it.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Savings returns the discount against market price as a fraction (0 when unknown).
func (it *Item) Savings() float64 {
	if it.MarketPrice <= 0 || it.Price >= it.MarketPrice {
		return 0
	}
	return (it.MarketPrice - it.Price) / it.MarketPrice
}
