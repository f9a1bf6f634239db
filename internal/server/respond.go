package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/relpanel/pkg/errors"
)

var errNoRoute = errors.New(errors.ErrCodeNotFound, "no such endpoint")

// errorResponse is the body of every error reply.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusOf maps an error code to an HTTP status.
func statusOf(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidScene,
		errors.ErrCodeInvalidSize, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeReferenceNotFound, errors.ErrCodeInvalidReference, errors.ErrCodeCircularDependency,
		errors.ErrCodeLayoutTooComplex:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusOf(code)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
		msg = "internal error"
	}
	s.respondJSON(w, status, errorResponse{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	})
}
