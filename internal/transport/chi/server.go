package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/obinss/CoCreate-MVP/internal/domain"
	domalert "github.com/obinss/CoCreate-MVP/internal/domain/alert"
	"github.com/obinss/CoCreate-MVP/internal/domain/item"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/filter"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/request"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/result"
	"github.com/obinss/CoCreate-MVP/internal/domain/search/sortorder"
	"github.com/obinss/CoCreate-MVP/internal/metrics"
	alertuc "github.com/obinss/CoCreate-MVP/internal/usecase/alert"
	healthuc "github.com/obinss/CoCreate-MVP/internal/usecase/health"
	searchuc "github.com/obinss/CoCreate-MVP/internal/usecase/search"
)

// DefaultMaxBodyBytes bounds request bodies when no limit is configured.
const DefaultMaxBodyBytes = 10 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the search HTTP API.
type Server struct {
	search        *searchuc.Service
	alerts        *alertuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	apiKeys       []string
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// Option configures a Server.
type Option func(*Server)

// WithAPIKeys enables Bearer authentication.
func WithAPIKeys(keys []string) Option {
	return func(s *Server) { s.apiKeys = keys }
}

// WithMaxBodyBytes bounds request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates an HTTP API server. alerts may be nil to disable the alert routes.
func NewServer(
	search *searchuc.Service,
	alerts *alertuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	opts ...Option,
) *Server {
	s := &Server{
		search:       search,
		alerts:       alerts,
		health:       health,
		logger:       logger,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, o := range opts {
		o(s)
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidItem, http.StatusBadRequest, ErrorResponseCodeInvalidItem),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, ErrorResponseCodeSourceUnavailable),
	}
	return s
}

// Handler builds the router with the full middleware chain.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(BearerAuthMiddleware(s.apiKeys))
	r.Use(metrics.Middleware())

	r.Post("/search", s.Search)
	r.Get("/products/search", s.SearchProducts)
	r.Post("/highlight", s.Highlight)

	r.Get("/recent-searches", s.ListRecentSearches)
	r.Post("/recent-searches", s.SaveRecentSearch)
	r.Delete("/recent-searches", s.ClearRecentSearches)

	if s.alerts != nil {
		r.Get("/alerts", s.ListAlerts)
		r.Post("/alerts", s.CreateAlert)
		r.Delete("/alerts/{id}", s.DeleteAlert)
		r.Post("/alerts/check", s.CheckAlerts)
	}

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorResponseCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponseCodeBadRequest, "method not allowed")
	})
	return r
}

// Search handles POST /search. When the body carries items they are searched
// instead of the configured catalog.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if !s.decode(w, r, &body) {
		return
	}

	order, ok := sortorder.Parse(body.Sort)
	if !ok {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "unknown sort order: "+body.Sort)
		return
	}
	var origin *request.Origin
	if body.Origin != nil {
		origin = &request.Origin{Latitude: body.Origin.Lat, Longitude: body.Origin.Lon}
	}

	req, err := request.New(body.Query, filter.Parse(rawFilters(body.Filters)), order, origin, body.Highlight)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	var hits []result.Hit
	if body.Items != nil {
		hits, err = s.search.SearchItems(r.Context(), &req, body.Items)
	} else {
		hits, err = s.search.Search(r.Context(), &req)
	}
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items: hitsToDTO(hits),
		Total: len(hits),
		Limit: searchuc.MaxResults,
	})
}

// productSearchParams are the GET /products/search query parameters.
type productSearchParams struct {
	Q         *string
	Category  *string
	Condition *string
	MinPrice  *float64
	MaxPrice  *float64
	Location  *string
	Sort      *string
	Lat       *float64
	Lon       *float64
	Highlight *bool
}

// bindProductSearchParams binds query parameters. Malformed optional values are
// left unset rather than rejected.
func bindProductSearchParams(r *http.Request) productSearchParams {
	var p productSearchParams
	q := r.URL.Query()
	bind := func(name string, dest any) {
		_ = runtime.BindQueryParameter("form", true, false, name, q, dest)
	}
	bind("q", &p.Q)
	bind("category", &p.Category)
	bind("condition", &p.Condition)
	bind("min_price", &p.MinPrice)
	bind("max_price", &p.MaxPrice)
	bind("location", &p.Location)
	bind("sort", &p.Sort)
	bind("lat", &p.Lat)
	bind("lon", &p.Lon)
	bind("highlight", &p.Highlight)
	return p
}

// SearchProducts handles GET /products/search against the configured catalog.
func (s *Server) SearchProducts(w http.ResponseWriter, r *http.Request) {
	p := bindProductSearchParams(r)

	var opts []filter.Option
	if p.Category != nil && *p.Category != "" {
		opts = append(opts, filter.WithCategory(*p.Category))
	}
	if p.Condition != nil && *p.Condition != "" {
		opts = append(opts, filter.WithCondition(item.Condition(*p.Condition)))
	}
	if p.MinPrice != nil {
		opts = append(opts, filter.WithMinPrice(*p.MinPrice))
	}
	if p.MaxPrice != nil {
		opts = append(opts, filter.WithMaxPrice(*p.MaxPrice))
	}
	if p.Location != nil && *p.Location != "" {
		opts = append(opts, filter.WithLocation(*p.Location))
	}

	order, ok := sortorder.Parse(deref(p.Sort))
	if !ok {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "unknown sort order: "+deref(p.Sort))
		return
	}
	var origin *request.Origin
	if p.Lat != nil && p.Lon != nil {
		origin = &request.Origin{Latitude: *p.Lat, Longitude: *p.Lon}
	}
	highlight := p.Highlight != nil && *p.Highlight

	req, err := request.New(deref(p.Q), filter.New(opts...), order, origin, highlight)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, err.Error())
		return
	}

	hits, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Items: hitsToDTO(hits),
		Total: len(hits),
		Limit: searchuc.MaxResults,
	})
}

// Highlight handles POST /highlight.
func (s *Server) Highlight(w http.ResponseWriter, r *http.Request) {
	var body HighlightRequest
	if !s.decode(w, r, &body) {
		return
	}
	writeJSON(w, http.StatusOK, HighlightResponse{Text: s.search.Highlight(body.Text, body.Query)})
}

// ListRecentSearches handles GET /recent-searches.
func (s *Server) ListRecentSearches(w http.ResponseWriter, r *http.Request) {
	queries, err := s.search.RecentSearches(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RecentSearchesResponse{Items: queries})
}

// SaveRecentSearch handles POST /recent-searches.
func (s *Server) SaveRecentSearch(w http.ResponseWriter, r *http.Request) {
	var body RecentSearchRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := s.search.SaveRecentSearch(r.Context(), body.Query); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearRecentSearches handles DELETE /recent-searches.
func (s *Server) ClearRecentSearches(w http.ResponseWriter, r *http.Request) {
	if err := s.search.ClearRecentSearches(r.Context()); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAlerts handles GET /alerts.
func (s *Server) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.alerts.List(r.Context(), alertScope(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AlertListResponse{Items: alerts})
}

// CreateAlert handles POST /alerts.
func (s *Server) CreateAlert(w http.ResponseWriter, r *http.Request) {
	var body domalert.Alert
	if !s.decode(w, r, &body) {
		return
	}
	a, err := s.alerts.Create(r.Context(), alertScope(r), body)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// DeleteAlert handles DELETE /alerts/{id}.
func (s *Server) DeleteAlert(w http.ResponseWriter, r *http.Request) {
	if err := s.alerts.Delete(r.Context(), alertScope(r), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckAlerts handles POST /alerts/check.
func (s *Server) CheckAlerts(w http.ResponseWriter, r *http.Request) {
	matches, err := s.alerts.CheckMatches(r.Context(), alertScope(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AlertCheckResponse{Matches: matchesToDTO(matches)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// alertScope reads the ?scope= parameter; empty means the global scope.
func alertScope(r *http.Request) string {
	return r.URL.Query().Get("scope")
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a message for the client without exposing internals.
// Errors caused by client input are returned in full; upstream failures only by sentinel.
func safeDomainMessage(err error) string {
	for _, s := range []error{domain.ErrInvalidItem, domain.ErrInvalidRequest, domain.ErrNotFound} {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	if errors.Is(err, domain.ErrSourceUnavailable) {
		return domain.ErrSourceUnavailable.Error()
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
