package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"
)

// Logger is the subset of the service logger the error writer needs.
type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Response is the JSON body written for every failed request.
type Response struct {
	Error string                 `json:"error"`
	Code  ErrorCode              `json:"code"`
	Debug map[string]interface{} `json:"debug,omitempty"`
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ToResponse converts a StandardError into its outward JSON shape.
func ToResponse(stdErr *StandardError) Response {
	resp := Response{Error: stdErr.Message, Code: stdErr.Code}
	if len(stdErr.Metadata) > 0 {
		resp.Debug = stdErr.Metadata
	}
	return resp
}

// ErrorHandler writes errors as JSON responses and logs them.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Write renders err and logs it at a level matching its category.
func (h *ErrorHandler) Write(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := HTTPStatus(stdErr.Code)

	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"errorCategory": GetErrorCategory(stdErr.Code),
		"details":       stdErr.Details,
		"status":        status,
		"path":          r.URL.Path,
		"method":        r.Method,
	}
	if status >= 500 {
		h.logger.Error("request failed", fields)
	} else {
		h.logger.Warn("request rejected", fields)
	}

	WriteJSON(w, status, ToResponse(stdErr))
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
