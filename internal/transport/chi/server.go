// Package chi exposes the HTTP API: search, image metadata CRUD, health,
// and metrics.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/imagedex/internal/domain"
	"github.com/kailas-cloud/imagedex/internal/domain/search/request"
	healthuc "github.com/kailas-cloud/imagedex/internal/usecase/health"
	imagesuc "github.com/kailas-cloud/imagedex/internal/usecase/images"
	searchuc "github.com/kailas-cloud/imagedex/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server holds the API handlers.
type Server struct {
	search        *searchuc.Service
	images        *imagesuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	limits        request.Limits
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	images *imagesuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search: search,
		images: images,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidPagination, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidImage, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrImageNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusBadGateway, codeStoreError),
	}
	return s
}

// WithSearchLimits overrides the pagination and score-threshold defaults
// applied to search requests.
func (s *Server) WithSearchLimits(l request.Limits) *Server {
	s.limits = l
	return s
}

// Mount registers all routes on the router.
func (s *Server) Mount(r chi.Router) {
	r.Post("/api/v1/search", s.handleSearch)
	r.Put("/api/v1/images/{id}", s.handleUpsertImage)
	r.Get("/api/v1/images/{id}", s.handleGetImage)
	r.Delete("/api/v1/images/{id}", s.handleDeleteImage)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// handleSearch handles POST /api/v1/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	req, err := request.NewWithLimits(
		s.limits,
		body.Query, body.Page, body.PageSize, body.MinScore,
		body.FileFormats, body.Orientation,
	)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	page, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToDTO(&page))
}

// handleUpsertImage handles PUT /api/v1/images/{id}.
func (s *Server) handleUpsertImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto imageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rec, err := imageFromDTO(id, &dto)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	created, err := s.images.Upsert(r.Context(), &rec)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", "/api/v1/images/"+id)
	}
	writeJSON(w, status, imageToDTO(&rec))
}

// handleGetImage handles GET /api/v1/images/{id}.
func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	rec, err := s.images.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imageToDTO(&rec))
}

// handleDeleteImage handles DELETE /api/v1/images/{id}.
func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := s.images.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.health.Check(r.Context())
	status := http.StatusOK
	if !st.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, st)
}

// handleDomainError walks the handler table; unmatched errors become 500s.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("unhandled error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}
