package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSettings struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

func (f *fakeSettings) Get(_ context.Context, key string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key], nil
}

func (f *fakeSettings) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = map[string]json.RawMessage{}
	}
	f.values[key] = raw
	return nil
}

func configuredSettings(t *testing.T) *fakeSettings {
	t.Helper()
	settings := &fakeSettings{}
	require.NoError(t, settings.Set(context.Background(), ConfigKey, Config{
		APIKey:   "sms-key",
		SenderID: "shopops",
	}))
	return settings
}

func TestGateway_Send(t *testing.T) {
	t.Run("builds the query-string request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "sms-key", q.Get("api_key"))
			assert.Equal(t, "shopops", q.Get("senderid"))
			assert.Equal(t, "text", q.Get("type"))
			assert.Equal(t, "01711111111", q.Get("number"))
			assert.Equal(t, "Your order is on the way", q.Get("message"))
			w.Write([]byte(`{"response_code": 202}`))
		}))
		defer server.Close()

		gateway := NewGateway(server.URL, configuredSettings(t), zap.NewNop(), 2*time.Second)
		assert.True(t, gateway.Send(context.Background(), "01711111111", "Your order is on the way"))
	})

	t.Run("gateway error code means failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"response_code": 1007}`))
		}))
		defer server.Close()

		gateway := NewGateway(server.URL, configuredSettings(t), zap.NewNop(), 2*time.Second)
		assert.False(t, gateway.Send(context.Background(), "01711111111", "hi"))
	})

	t.Run("non-json ok body counts as delivered", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("SMS SUBMITTED"))
		}))
		defer server.Close()

		gateway := NewGateway(server.URL, configuredSettings(t), zap.NewNop(), 2*time.Second)
		assert.True(t, gateway.Send(context.Background(), "01711111111", "hi"))
	})

	t.Run("unconfigured returns false", func(t *testing.T) {
		gateway := NewGateway("http://gateway.example.com", &fakeSettings{}, zap.NewNop(), 2*time.Second)
		assert.False(t, gateway.Send(context.Background(), "01711111111", "hi"))
	})

	t.Run("no endpoint returns false", func(t *testing.T) {
		gateway := NewGateway("", configuredSettings(t), zap.NewNop(), 2*time.Second)
		assert.False(t, gateway.Send(context.Background(), "01711111111", "hi"))
	})

	t.Run("unreachable gateway returns false", func(t *testing.T) {
		gateway := NewGateway("http://127.0.0.1:1", configuredSettings(t), zap.NewNop(), 200*time.Millisecond)
		assert.False(t, gateway.Send(context.Background(), "01711111111", "hi"))
	})
}
