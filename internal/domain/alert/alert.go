package alert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/obinss/CoCreate-MVP/internal/domain/geo"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// DefaultRadiusKm is used when coordinates are given without a radius.
const DefaultRadiusKm = 50

// Alert is a saved product watch: the buyer is notified when listings match.
type Alert struct {
	ID        string         `json:"id"`
	Name      string         `json:"name,omitempty"`
	Keywords  string         `json:"keywords,omitempty"`
	Category  string         `json:"category,omitempty"`
	MaxPrice  float64        `json:"maxPrice,omitempty"`
	Condition item.Condition `json:"condition,omitempty"`
	Latitude  float64        `json:"locationLat,omitempty"`
	Longitude float64        `json:"locationLong,omitempty"`
	RadiusKm  float64        `json:"radiusKm,omitempty"`
	Active    bool           `json:"active"`
}

// Validate checks identifiers, enums and coordinates and fills the default radius.
func (a *Alert) Validate() error {
	if a.ID == "" || len(a.ID) > 128 || !idRegex.MatchString(a.ID) {
		return fmt.Errorf("alert ID must be 1-128 alphanumeric, underscore or hyphen characters")
	}
	if a.Category != "" && !item.IsCategory(a.Category) {
		return fmt.Errorf("unknown category %q", a.Category)
	}
	if a.Condition != "" && !a.Condition.IsValid() {
		return fmt.Errorf("unknown condition %q", a.Condition)
	}
	if a.MaxPrice < 0 {
		return fmt.Errorf("maxPrice must be non-negative")
	}
	if a.RadiusKm < 0 {
		return fmt.Errorf("radiusKm must be non-negative")
	}
	if a.hasLocation() {
		if !geo.ValidateCoordinates(a.Latitude, a.Longitude) {
			return fmt.Errorf("coordinates out of range")
		}
		if a.RadiusKm == 0 {
			a.RadiusKm = DefaultRadiusKm
		}
	}
	return nil
}

// String returns the display name used in match reports.
func (a *Alert) String() string {
	if a.Name != "" {
		return a.Name
	}
	if a.Keywords != "" {
		return "Alert: " + a.Keywords
	}
	return "Alert " + a.ID
}

func (a *Alert) hasLocation() bool {
	return a.Latitude != 0 || a.Longitude != 0
}

// Matches reports whether it satisfies every criterion of the alert.
// Keywords match as one case-insensitive phrase against title or description.
// A located alert excludes listings without coordinates.
func (a *Alert) Matches(it *item.Item) bool {
	if a.Keywords != "" {
		kw := strings.ToLower(a.Keywords)
		if !strings.Contains(strings.ToLower(it.Title), kw) &&
			!strings.Contains(strings.ToLower(it.Description), kw) {
			return false
		}
	}
	if a.Category != "" && it.Category != a.Category {
		return false
	}
	if a.MaxPrice > 0 && it.Price > a.MaxPrice {
		return false
	}
	if a.Condition != "" && it.Condition != a.Condition {
		return false
	}
	if a.hasLocation() {
		if !it.HasCoordinates() {
			return false
		}
		if geo.Haversine(a.Latitude, a.Longitude, it.Latitude, it.Longitude) > a.RadiusKm {
			return false
		}
	}
	return true
}
