// Package chi exposes the retrieval API over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/parcelam/docdex/internal/domain"
	"github.com/parcelam/docdex/internal/domain/document"
	"github.com/parcelam/docdex/internal/sample"
	healthuc "github.com/parcelam/docdex/internal/usecase/health"
	ingestuc "github.com/parcelam/docdex/internal/usecase/ingest"
	queryuc "github.com/parcelam/docdex/internal/usecase/query"
	tenantuc "github.com/parcelam/docdex/internal/usecase/tenant"
	"github.com/parcelam/docdex/internal/version"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server carries the use-case services behind the HTTP handlers.
type Server struct {
	ingest        *ingestuc.Service
	query         *queryuc.Service
	tenants       *tenantuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *ingestuc.Service,
	query *queryuc.Service,
	tenants *tenantuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingest:  ingest,
		query:   query,
		tenants: tenants,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuestion, http.StatusBadRequest, "empty_question"),
		sentinelHandler(domain.ErrInvalidTenant, http.StatusBadRequest, "invalid_tenant"),
		sentinelHandler(domain.ErrValidation, http.StatusBadRequest, "validation_failed"),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrIndexUnavailable, http.StatusBadGateway, "index_unavailable"),
	}
	return s
}

// Register mounts all API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Post("/query", s.Query)
	r.Post("/documents", s.IndexDocuments)
	r.Post("/tenants/{tenantID}/sample", s.SeedSample)
	r.Delete("/tenants/{tenantID}", s.EraseTenant)
	r.Get("/metrics", s.Metrics)
}

type documentPayload struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Title    string         `json:"title,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type indexRequest struct {
	TenantID  string            `json:"tenant_id"`
	Documents []documentPayload `json:"documents"`
}

type indexResponse struct {
	Success  bool   `json:"success"`
	Indexed  int    `json:"indexed"`
	TenantID string `json:"tenant_id"`
}

type queryRequest struct {
	Question string         `json:"question"`
	TenantID string         `json:"tenant_id"`
	Filter   map[string]any `json:"filter,omitempty"`
	TopK     int            `json:"top_k,omitempty"`
}

type sourceItem struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type queryResponse struct {
	Answer   string       `json:"answer"`
	Sources  []sourceItem `json:"sources"`
	TenantID string       `json:"tenant_id"`
}

type eraseResponse struct {
	Success  bool   `json:"success"`
	TenantID string `json:"tenant_id"`
}

type healthResponse struct {
	Status         string `json:"status"`
	IndexConnected bool   `json:"index_connected"`
	Backends       int    `json:"backends"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "docdex",
		"version": version.Version,
		"status":  "running",
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status:         string(report.Status),
		IndexConnected: report.IndexConnected,
		Backends:       report.BackendCount,
	})
}

// Query handles POST /query.
func (s *Server) Query(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	result, err := s.query.Query(r.Context(), req.TenantID, req.Question, req.Filter, req.TopK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	sources := make([]sourceItem, len(result.Sources()))
	for i, src := range result.Sources() {
		sources[i] = sourceItem{
			ID:       src.ID(),
			Title:    src.Title(),
			Content:  src.Content(),
			Score:    src.Score(),
			Metadata: src.Metadata(),
		}
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Answer:   result.Answer(),
		Sources:  sources,
		TenantID: result.TenantID(),
	})
}

// IndexDocuments handles POST /documents.
func (s *Server) IndexDocuments(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", "documents must not be empty")
		return
	}

	docs := make([]document.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = document.New(d.ID, d.Content, d.Title, d.Metadata)
	}

	indexed, err := s.ingest.IndexMany(r.Context(), req.TenantID, docs)
	if err != nil {
		// Partial progress still reaches the client before the error code.
		if errors.Is(err, domain.ErrIndexUnavailable) {
			s.logger.Warn("indexing stopped early", zap.String("tenant_id", req.TenantID),
				zap.Int("indexed", indexed), zap.Error(err))
			writeJSON(w, http.StatusBadGateway, indexResponse{
				Success:  false,
				Indexed:  indexed,
				TenantID: req.TenantID,
			})
			return
		}
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{
		Success:  true,
		Indexed:  indexed,
		TenantID: req.TenantID,
	})
}

// SeedSample handles POST /tenants/{tenantID}/sample.
func (s *Server) SeedSample(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	indexed, err := s.ingest.IndexMany(r.Context(), tenantID, sample.Documents())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{
		Success:  true,
		Indexed:  indexed,
		TenantID: tenantID,
	})
}

// EraseTenant handles DELETE /tenants/{tenantID}.
func (s *Server) EraseTenant(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "tenantID")

	if err := s.tenants.Erase(r.Context(), tenantID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, eraseResponse{Success: true, TenantID: tenantID})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without
// exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuestion,
		domain.ErrInvalidTenant,
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrIndexUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
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
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
