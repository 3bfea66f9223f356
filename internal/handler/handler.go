package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"freshmart/internal/model"

	"github.com/rs/zerolog"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeDomainError maps a service error onto an HTTP status. Errors that
// are not DomainError are infrastructure failures and surface as 500s
// without leaking detail to the client.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: model.ErrCodeInternalError})
		return
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeAddressNotFound,
		model.ErrCodeProductNotFound,
		model.ErrCodeCartEntryNotFound,
		model.ErrCodeOrderNotFound:
		status = http.StatusNotFound
	case model.ErrCodeInsufficientStock,
		model.ErrCodeCommitFailed,
		model.ErrCodeOrderState:
		status = http.StatusConflict
	case model.ErrCodeGateway:
		status = http.StatusBadGateway
	}

	logger.Warn().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
	writeJSON(w, status, ErrorResponse{Error: domainErr.Message, Code: domainErr.Code})
}

// userID extracts the authenticated user from the X-User-ID header set by
// the upstream session layer. A missing or malformed header is rejected
// before any service call.
func userID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		writeError(w, http.StatusUnauthorized, "missing user identity", logger)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusUnauthorized, "invalid user identity", logger)
		return 0, false
	}
	return id, true
}
