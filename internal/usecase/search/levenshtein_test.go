package search

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"tiles", "tiels", 2},
		{"same", "same", 0},
		{"über", "uber", 1},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			if got := Levenshtein(tt.a, tt.b); got != tt.want {
				t.Errorf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLevenshtein_Symmetric(t *testing.T) {
	pairs := [][2]string{{"oak", "oak planks"}, {"brick", "bricks"}, {"pipe", "pine"}}
	for _, p := range pairs {
		if Levenshtein(p[0], p[1]) != Levenshtein(p[1], p[0]) {
			t.Errorf("Levenshtein not symmetric for %q, %q", p[0], p[1])
		}
	}
}

func TestWithinDistance(t *testing.T) {
	if !withinDistance("brik", "brick", 3) {
		t.Error("brik should be within 3 of brick")
	}
	if withinDistance("oak", "oak planks", 3) {
		t.Error("length gap of 7 exceeds threshold")
	}
}
