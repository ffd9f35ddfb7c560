package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{name: "bad request", code: ErrCodeBadRequest, want: http.StatusBadRequest},
		{name: "not found", code: ErrCodeNotFound, want: http.StatusNotFound},
		{name: "courier rejected", code: ErrCodeCourierRejected, want: http.StatusUnprocessableEntity},
		{name: "courier not configured", code: ErrCodeCourierNotConfigured, want: http.StatusPreconditionFailed},
		{name: "courier unavailable", code: ErrCodeCourierUnavailable, want: http.StatusBadGateway},
		{name: "unmapped code defaults to 500", code: "ERR_NOBODY_KNOWS", want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestResponses(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := NewSuccessResponse(map[string]int{"orders": 3})
		assert.True(t, resp.Success)
		assert.Nil(t, resp.Error)
	})

	t.Run("error with request id", func(t *testing.T) {
		resp := NewErrorResponseWithRequestID(ErrCodeBadRequest, "bad payload", "req-1")
		assert.False(t, resp.Success)
		assert.Equal(t, "req-1", resp.Error.RequestID)
	})
}
