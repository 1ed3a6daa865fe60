package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lookup/internal/domain"
	logpkg "github.com/kailas-cloud/lookup/internal/logger"
	healthuc "github.com/kailas-cloud/lookup/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lookup/internal/usecase/search"
)

const (
	maxBodyBytes = 1 << 16

	// FieldBody names the request body in validation errors for undecodable input.
	FieldBody = "body"
	// MsgInvalidBody is reported for a body that is not a JSON object.
	MsgInvalidBody = "Invalid request body"
	// MsgInternal is the only message a client sees for unexpected failures.
	MsgInternal = "Internal server error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the lookup HTTP API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search *searchuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrRecordSource, http.StatusServiceUnavailable),
	}
	return s
}

// SearchRecords handles POST /search.
func (s *Server) SearchRecords(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		logpkg.FromContext(r.Context()).Debug("undecodable search body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, fieldErrorsToResponse([]domain.FieldError{
			{Field: FieldBody, Message: MsgInvalidBody},
		}))
		return
	}

	recs, err := s.search.Search(r.Context(), req.Email, req.Number)
	if err != nil {
		// Client went away during the delay: nobody is left to answer.
		if r.Context().Err() != nil {
			logpkg.FromContext(r.Context()).Debug("search abandoned by client", zap.Error(err))
			return
		}
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, recordsToResponse(recs))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthToResponse(report))
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

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// validationHandler renders *domain.ValidationError as the per-field 400 list.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Fields) == 0 {
		writeJSON(w, http.StatusBadRequest, fieldErrorsToResponse(nil))
		return true
	}
	writeJSON(w, http.StatusBadRequest, fieldErrorsToResponse(ve.Fields))
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, sentinel.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context())
	for _, h := range s.errorHandlers {
		if h(w, err) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, MsgInternal)
}
