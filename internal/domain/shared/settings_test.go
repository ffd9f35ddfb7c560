package shared

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	values map[string]json.RawMessage
}

func (m *memStore) Get(_ context.Context, key string) (json.RawMessage, error) {
	return m.values[key], nil
}

func (m *memStore) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.values == nil {
		m.values = make(map[string]json.RawMessage)
	}
	m.values[key] = raw
	return nil
}

func TestDecodeMaybeDoubleEncoded(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain object passes through", `{"a":1}`, `{"a":1}`},
		{"double-encoded object unwraps", `"{\"a\":1}"`, `{"a":1}`},
		{"double-encoded array unwraps", `"[1,2]"`, `[1,2]`},
		{"plain string stays wrapped", `"hello"`, `"hello"`},
		{"numeric string unwraps to number", `"42"`, `42`},
		{"empty stays empty", ``, ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeMaybeDoubleEncoded(json.RawMessage(tt.input))
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestLoadJSON(t *testing.T) {
	type cfg struct {
		URL string `json:"url"`
	}
	ctx := context.Background()

	t.Run("absent key returns false", func(t *testing.T) {
		store := &memStore{}
		var out cfg
		found, err := LoadJSON(ctx, store, "missing", &out)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, out.URL)
	})

	t.Run("round trip", func(t *testing.T) {
		store := &memStore{}
		require.NoError(t, SaveJSON(ctx, store, "cfg", cfg{URL: "https://shop.example.com"}))

		var out cfg
		found, err := LoadJSON(ctx, store, "cfg", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "https://shop.example.com", out.URL)
	})

	t.Run("tolerates double-encoded value", func(t *testing.T) {
		store := &memStore{values: map[string]json.RawMessage{
			"cfg": json.RawMessage(`"{\"url\":\"https://shop.example.com\"}"`),
		}}

		var out cfg
		found, err := LoadJSON(ctx, store, "cfg", &out)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "https://shop.example.com", out.URL)
	})
}
