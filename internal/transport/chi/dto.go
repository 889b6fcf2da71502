package chi

import (
	"strconv"

	domalert "github.com/obinss/CoCreate-MVP/internal/domain/alert"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	alertuc "github.com/obinss/CoCreate-MVP/internal/usecase/alert"
)

// ErrorResponseCode is the machine-readable error code in error bodies.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest        ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized      ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed  ErrorResponseCode = "validation_failed"
	ErrorResponseCodeInvalidItem       ErrorResponseCode = "invalid_item"
	ErrorResponseCodeNotFound          ErrorResponseCode = "not_found"
	ErrorResponseCodeSourceUnavailable ErrorResponseCode = "source_unavailable"
	ErrorResponseCodeInternalError     ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// OriginDTO is the buyer position for the distance sort.
type OriginDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchRequest is the POST /search body. Filter values may be strings or numbers.
type SearchRequest struct {
	Query     string         `json:"query"`
	Filters   map[string]any `json:"filters,omitempty"`
	Items     []item.Item    `json:"items,omitempty"`
	Sort      string         `json:"sort,omitempty"`
	Origin    *OriginDTO     `json:"origin,omitempty"`
	Highlight bool           `json:"highlight,omitempty"`
}

// SearchHit is one ranked listing.
type SearchHit struct {
	Item  item.Item `json:"item"`
	Score float64   `json:"score"`
}

// SearchResponse is the body of both search endpoints.
type SearchResponse struct {
	Items []SearchHit `json:"items"`
	Total int         `json:"total"`
	Limit int         `json:"limit"`
}

// HighlightRequest is the POST /highlight body.
type HighlightRequest struct {
	Text  string `json:"text"`
	Query string `json:"query"`
}

// HighlightResponse carries the marked-up text.
type HighlightResponse struct {
	Text string `json:"text"`
}

// RecentSearchRequest is the POST /recent-searches body.
type RecentSearchRequest struct {
	Query string `json:"query"`
}

// RecentSearchesResponse lists stored queries, most recent first.
type RecentSearchesResponse struct {
	Items []string `json:"items"`
}

// AlertListResponse lists alerts in creation order.
type AlertListResponse struct {
	Items []domalert.Alert `json:"items"`
}

// AlertMatch is one alert's matched listings.
type AlertMatch struct {
	AlertID   string      `json:"alertId"`
	AlertName string      `json:"alertName"`
	Items     []item.Item `json:"items"`
}

// AlertCheckResponse is the POST /alerts/check body.
type AlertCheckResponse struct {
	Matches []AlertMatch `json:"matches"`
}

// HealthResponse reports aggregated health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func hitsToDTO(hits []result.Hit) []SearchHit {
	out := make([]SearchHit, len(hits))
	for i := range hits {
		out[i] = SearchHit{Item: hits[i].Item(), Score: hits[i].Score()}
	}
	return out
}

func matchesToDTO(ms []alertuc.Match) []AlertMatch {
	out := make([]AlertMatch, len(ms))
	for i, m := range ms {
		out[i] = AlertMatch{AlertID: m.AlertID, AlertName: m.AlertName, Items: m.Items}
	}
	return out
}

// rawFilters flattens JSON filter values into strings for filter.Parse.
// Values of any other type are dropped.
func rawFilters(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case string:
			out[k] = val
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		}
	}
	return out
}
