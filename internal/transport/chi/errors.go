package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/acdex/internal/domain"
)

// ErrorCode is the machine-readable error code in error responses.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest           ErrorCode = "bad_request"
	ErrorCodeUnauthorized         ErrorCode = "unauthorized"
	ErrorCodeInvalidID            ErrorCode = "invalid_id"
	ErrorCodeInvalidModifier      ErrorCode = "invalid_modifier"
	ErrorCodeNotFound             ErrorCode = "aircraft_not_found"
	ErrorCodeInvalidEngineVariant ErrorCode = "invalid_engine_variant"
	ErrorCodeNoSuggestion         ErrorCode = "no_suggestion"
	ErrorCodeInternalError        ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		modifierErrorHandler,
		sentinelHandler(domain.ErrInvalidID, http.StatusBadRequest, ErrorCodeInvalidID),
		sentinelHandler(domain.ErrInvalidEngineVariant, http.StatusUnprocessableEntity, ErrorCodeInvalidEngineVariant),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrNoSuggestion, http.StatusNotFound, ErrorCodeNoSuggestion),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns the client-facing message for err. Engine errors
// only carry the caller's own query text, so their full message is safe;
// anything else collapses to "internal error".
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidID,
		domain.ErrInvalidModifier,
		domain.ErrNotFound,
		domain.ErrInvalidEngineVariant,
		domain.ErrNoSuggestion,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// modifierErrorHandler handles ErrInvalidModifier and reports the offending position.
func modifierErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidModifier) {
		return false
	}
	var me *domain.ModifierError
	if errors.As(err, &me) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code":     ErrorCodeInvalidModifier,
			"message":  msg,
			"clause":   me.Clause,
			"position": me.Pos,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, ErrorCodeInvalidModifier, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			s.logger.Debug("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
