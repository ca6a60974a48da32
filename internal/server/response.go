package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/scenepatch/pkg/errors"
	"github.com/matzehuels/scenepatch/pkg/observability"
	"github.com/matzehuels/scenepatch/pkg/store"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func sendSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// sendError maps err to a status code and writes the envelope.
func (s *Server) sendError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"id", requestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", err)
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	code := string(errors.GetCode(err))
	if code == "" && status == http.StatusNotFound {
		code = string(errors.ErrCodeNotFound)
	}
	writeJSON(w, status, Response{Error: err.Error(), Code: code})
}

func statusFor(err error) int {
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene,
		errors.ErrCodeInvalidAnimation, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidState:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
