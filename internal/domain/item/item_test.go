package item

import (
	"math"
	"testing"
	"time"
)

func valid() Item {
	return Item{
		Title:        "Copper Pipe 15mm",
		Description:  "Offcuts from a bathroom refit",
		Category:     "Plumbing",
		Condition:    ConditionCutUndamaged,
		Price:        12.5,
		LocationName: "Leipzig",
	}
}

func TestValidate_OK(t *testing.T) {
	it := valid()
	if err := it.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Item)
	}{
		{"empty title", func(it *Item) { it.Title = "  " }},
		{"unknown category", func(it *Item) { it.Category = "Glass" }},
		{"unknown condition", func(it *Item) { it.Condition = "used" }},
		{"negative price", func(it *Item) { it.Price = -1 }},
		{"NaN price", func(it *Item) { it.Price = math.NaN() }},
		{"empty location", func(it *Item) { it.LocationName = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := valid()
			tt.mutate(&it)
			if err := it.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCondition_Label(t *testing.T) {
	if got := ConditionOpenedUnused.Label(); got != "Opened/Unused" {
		t.Errorf("Label() = %q", got)
	}
	if got := Condition("odd").Label(); got != "odd" {
		t.Errorf("Label() = %q", got)
	}
}

func TestIsCategory(t *testing.T) {
	if !IsCategory("Paint & Coating") {
		t.Error("Paint & Coating should be a category")
	}
	if IsCategory("wood") {
		t.Error("category membership is case-sensitive")
	}
}

func TestCreated(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-12-01", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-12-01T10:30:00Z", time.Date(2024, 12, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-12-01 10:30:00", time.Date(2024, 12, 1, 10, 30, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"yesterday", time.Time{}},
	}
	for _, tt := range tests {
		it := Item{CreatedAt: tt.in}
		if got := it.Created(); !got.Equal(tt.want) {
			t.Errorf("Created(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSavings(t *testing.T) {
	it := Item{Price: 30, MarketPrice: 40}
	if got := it.Savings(); got != 0.25 {
		t.Errorf("Savings() = %v, want 0.25", got)
	}
	it = Item{Price: 30}
	if got := it.Savings(); got != 0 {
		t.Errorf("Savings() without market price = %v", got)
	}
}
