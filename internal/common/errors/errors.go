// Package errors provides standardized error handling for the identification API.
package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Client faults
	ErrCodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Configuration faults
	ErrCodeConfigurationMissing ErrorCode = "CONFIGURATION_MISSING"

	// Upstream faults
	ErrCodeClassifierFailed          ErrorCode = "CLASSIFIER_FAILED"
	ErrCodeClassifierTimeout         ErrorCode = "CLASSIFIER_TIMEOUT"
	ErrCodeClassifierMalformedOutput ErrorCode = "CLASSIFIER_MALFORMED_OUTPUT"

	// Classifier answered but nothing usable came out of it
	ErrCodeNoSuggestion ErrorCode = "NO_SUGGESTION"

	// Degraded dependency, logged only
	ErrCodeDirectoryLoadFailed ErrorCode = "DIRECTORY_LOAD_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// MaxDebugLength caps upstream diagnostic text carried in error responses.
const MaxDebugLength = 500

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewInvalidRequestError creates a non-retryable client fault.
func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMissingImageError is the client fault for an absent or empty image.
func NewMissingImageError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Image is required",
		Details:   "field 'image' must be a non-empty string",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewMethodNotAllowedError creates a client fault for a wrong HTTP method.
func NewMethodNotAllowedError(method string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMethodNotAllowed,
		Message:   "Method not allowed",
		Details:   fmt.Sprintf("method: %s", method),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRateLimitedError creates a retryable client fault for an exhausted quota.
func NewRateLimitedError(retryAfter time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeRateLimited,
		Message:   "Too many identification requests",
		Details:   fmt.Sprintf("retry after %s", retryAfter),
		Retryable: true,
		Metadata: map[string]interface{}{
			"retryAfterSeconds": int(retryAfter.Round(time.Second).Seconds()),
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewConfigurationMissingError reports credentials absent at startup.
func NewConfigurationMissingError(missing []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigurationMissing,
		Message:   "Service is not configured",
		Details:   fmt.Sprintf("missing: %s", strings.Join(missing, ", ")),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierFailedError reports a non-2xx classifier response.
func NewClassifierFailedError(status int, body string) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierFailed,
		Message:   "Species classifier request failed",
		Details:   fmt.Sprintf("status %d", status),
		Retryable: true,
		Metadata: map[string]interface{}{
			"status": status,
			"detail": Truncate(body, MaxDebugLength),
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierTransportError reports a classifier call that never got a response.
func NewClassifierTransportError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierFailed,
		Message:   "Species classifier unreachable",
		Details:   err.Error(),
		Retryable: true,
		Metadata: map[string]interface{}{
			"detail": Truncate(err.Error(), MaxDebugLength),
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierTimeoutError reports a classifier call that exceeded its deadline.
func NewClassifierTimeoutError(timeout time.Duration) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierTimeout,
		Message:   "Species classifier timeout",
		Details:   fmt.Sprintf("call exceeded %s", timeout),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierMalformedOutputError reports classifier text that is not one JSON object.
func NewClassifierMalformedOutputError(raw string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierMalformedOutput,
		Message:   "Species classifier returned malformed output",
		Details:   err.Error(),
		Retryable: true,
		Metadata: map[string]interface{}{
			"detail": Truncate(raw, MaxDebugLength),
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewNoSuggestionError reports parsed classifier output without any usable candidate.
func NewNoSuggestionError(raw string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoSuggestion,
		Message:   "No usable species suggestion",
		Details:   "classifier output contained no candidate with a species label",
		Retryable: false,
		Metadata: map[string]interface{}{
			"detail": Truncate(raw, MaxDebugLength),
		},
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryLoadFailedError describes a degraded directory load. It is
// logged, never returned to a caller.
func NewDirectoryLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryLoadFailed,
		Message:   "Species directory unavailable",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps anything unexpected.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatusMapping maps internal error codes to response status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeInvalidRequest:            http.StatusBadRequest,
	ErrCodeMethodNotAllowed:          http.StatusMethodNotAllowed,
	ErrCodeRateLimited:               http.StatusTooManyRequests,
	ErrCodeConfigurationMissing:      http.StatusInternalServerError,
	ErrCodeClassifierFailed:          http.StatusBadGateway,
	ErrCodeClassifierTimeout:         http.StatusGatewayTimeout,
	ErrCodeClassifierMalformedOutput: http.StatusBadGateway,
	ErrCodeNoSuggestion:              http.StatusUnprocessableEntity,
	ErrCodeDirectoryLoadFailed:       http.StatusServiceUnavailable,
	ErrCodeInternal:                  http.StatusInternalServerError,
}

// HTTPStatus returns the response status for an error code.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ==========================
// 4. Utility Functions
// ==========================

// IsClientFault reports whether the code is the caller's fault.
func IsClientFault(code ErrorCode) bool {
	status := HTTPStatus(code)
	return status >= 400 && status < 500 && code != ErrCodeNoSuggestion
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInvalidRequest, ErrCodeMethodNotAllowed, ErrCodeRateLimited:
		return "CLIENT"
	case ErrCodeConfigurationMissing:
		return "CONFIGURATION"
	case ErrCodeClassifierFailed, ErrCodeClassifierTimeout, ErrCodeClassifierMalformedOutput:
		return "UPSTREAM"
	case ErrCodeNoSuggestion:
		return "NO_SUGGESTION"
	case ErrCodeDirectoryLoadFailed:
		return "DEGRADED"
	default:
		return "OTHER"
	}
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
