package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shopops/backend/internal/application/messaging"
	"github.com/shopops/backend/internal/interfaces/http/middleware"
)

type recordingSender struct {
	calls []string
}

func (s *recordingSender) Send(_ context.Context, phone, _ string) bool {
	s.calls = append(s.calls, phone)
	return true
}

func TestSMSSendRoute(t *testing.T) {
	middleware.SetupValidator()

	sender := &recordingSender{}
	service := messaging.NewSMSService(sender, newMemSettings(), zap.NewNop())
	router := setupRouter(NewSMSHandler(service))

	t.Run("delivers to each phone", func(t *testing.T) {
		body := `{"phones": ["01711111111", "01722222222"], "message": "Eid offer"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sms/send", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var results []messaging.SendResult
		decodeData(t, rec, &results)
		require.Len(t, results, 2)
		assert.True(t, results[0].Sent)
		assert.Equal(t, []string{"01711111111", "01722222222"}, sender.calls)
	})

	t.Run("short phone is rejected before any send", func(t *testing.T) {
		sender.calls = nil
		body := `{"phones": ["123"], "message": "Eid offer"}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sms/send", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, sender.calls)
	})

	t.Run("template round trip", func(t *testing.T) {
		body := `{"templates": [{"name": "eid", "body": "Eid Mubarak!"}]}`
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/sms/templates", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sms/templates", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var templates []messaging.Template
		decodeData(t, rec, &templates)
		require.Len(t, templates, 1)
		assert.Equal(t, "eid", templates[0].Name)
	})
}
