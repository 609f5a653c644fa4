package chi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/acdex/internal/catalog"
	"github.com/kailas-cloud/acdex/internal/domain/aircraft"
	healthuc "github.com/kailas-cloud/acdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/acdex/internal/usecase/search"
)

// maxQueryLength bounds the q parameter.
const maxQueryLength = 256

// CatalogReader exposes the read-only catalog views served next to search.
type CatalogReader interface {
	Variants(id aircraft.ID) []aircraft.Aircraft
	Stats() catalog.Stats
}

// Server serves the aircraft query API.
type Server struct {
	search        searchuc.Searcher
	catalog       CatalogReader
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search searchuc.Searcher,
	catalog CatalogReader,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		search:        search,
		catalog:       catalog,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.CatalogStats)
		r.Get("/aircraft/search", s.SearchAircraft)
		r.Get("/aircraft/suggest", s.SuggestAircraft)
		r.Get("/aircraft/{id}/variants", s.ListVariants)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})
}

// SearchAircraft handles GET /api/v1/aircraft/search?q=.
func (s *Server) SearchAircraft(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}

	res, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewSearchResponse(res))
}

// SuggestAircraft handles GET /api/v1/aircraft/suggest?q=.
func (s *Server) SuggestAircraft(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}

	items, err := s.search.Suggest(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, NewSuggestResponse(items))
}

// ListVariants handles GET /api/v1/aircraft/{id}/variants.
func (s *Server) ListVariants(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeInvalidID, "id must be an integer between 0 and 65535")
		return
	}

	variants := s.catalog.Variants(aircraft.ID(id))
	if len(variants) == 0 {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "not found: id "+raw)
		return
	}

	items := make([]AircraftResponse, len(variants))
	for i, a := range variants {
		items[i] = aircraftToResponse(a)
	}
	writeJSON(w, http.StatusOK, VariantsResponse{Items: items})
}

// CatalogStats handles GET /api/v1/catalog.
func (s *Server) CatalogStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, CatalogResponse{Stats: s.catalog.Stats()})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Records: report.Records,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func queryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query().Get("q")
	if strings.TrimSpace(q) == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "query parameter q is required")
		return "", false
	}
	if len(q) > maxQueryLength {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
			"query parameter q must be at most "+strconv.Itoa(maxQueryLength)+" bytes")
		return "", false
	}
	return q, true
}
