package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, map[string]interface{})  {}
func (nopLogger) Error(string, map[string]interface{}) {}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeInvalidRequest, http.StatusBadRequest},
		{ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeConfigurationMissing, http.StatusInternalServerError},
		{ErrCodeClassifierFailed, http.StatusBadGateway},
		{ErrCodeClassifierTimeout, http.StatusGatewayTimeout},
		{ErrCodeClassifierMalformedOutput, http.StatusBadGateway},
		{ErrCodeNoSuggestion, http.StatusUnprocessableEntity},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.code))
		})
	}
}

func TestIsClientFault(t *testing.T) {
	assert.True(t, IsClientFault(ErrCodeInvalidRequest))
	assert.True(t, IsClientFault(ErrCodeRateLimited))
	assert.False(t, IsClientFault(ErrCodeNoSuggestion))
	assert.False(t, IsClientFault(ErrCodeClassifierFailed))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "ab", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	// Multi-byte runes are never split.
	assert.Equal(t, "éé", Truncate("ééé", 2))
}

func TestNewClassifierFailedError_TruncatesDetail(t *testing.T) {
	body := strings.Repeat("x", 2000)
	err := NewClassifierFailedError(500, body)

	assert.Equal(t, ErrCodeClassifierFailed, err.Code)
	assert.Equal(t, 500, err.Metadata["status"])
	assert.Len(t, err.Metadata["detail"].(string), MaxDebugLength)
}

func TestNormalize(t *testing.T) {
	std := NewMissingImageError()
	assert.Same(t, std, Normalize(fmt.Errorf("wrapped: %w", std)))

	other := Normalize(fmt.Errorf("plain"))
	assert.Equal(t, ErrCodeInternal, other.Code)
	assert.Equal(t, "plain", other.Details)
}

func TestErrorHandler_Write(t *testing.T) {
	h := NewErrorHandler(nopLogger{})

	t.Run("upstream fault carries debug", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identify", nil)
		h.Write(rec, req, NewClassifierFailedError(500, "upstream exploded"))

		require.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Species classifier request failed", body["error"])
		assert.Equal(t, "CLASSIFIER_FAILED", body["code"])
		debug := body["debug"].(map[string]interface{})
		assert.Equal(t, float64(500), debug["status"])
		assert.Equal(t, "upstream exploded", debug["detail"])
	})

	t.Run("client fault has no debug", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/identify", nil)
		h.Write(rec, req, NewMissingImageError())

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		_, hasDebug := body["debug"]
		assert.False(t, hasDebug)
	})
}
