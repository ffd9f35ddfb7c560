package shared

import (
	"context"
	"encoding/json"
)

// SettingsStore is the generic key/value persistence used for all
// configuration blobs and cached tokens. Implementations are expected to
// store values as JSON-encoded strings; Get must tolerate values that were
// JSON-encoded twice by older writers.
type SettingsStore interface {
	// Get returns the raw JSON value for key, or nil when the key is absent.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set persists value for key, replacing any previous value.
	Set(ctx context.Context, key string, value any) error
}

// LoadJSON fetches key from the store and unmarshals it into out.
// It returns false when the key is absent; out is left untouched in that case.
func LoadJSON(ctx context.Context, store SettingsStore, key string, out any) (bool, error) {
	raw, err := store.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(DecodeMaybeDoubleEncoded(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

// SaveJSON persists value under key.
func SaveJSON(ctx context.Context, store SettingsStore, key string, value any) error {
	return store.Set(ctx, key, value)
}

// DecodeMaybeDoubleEncoded unmarshals raw JSON that may have been encoded
// twice (a JSON string containing JSON). Single-encoded values pass through.
func DecodeMaybeDoubleEncoded(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return raw
	}
	var inner string
	if err := json.Unmarshal(raw, &inner); err == nil {
		trimmed := json.RawMessage(inner)
		if json.Valid(trimmed) {
			return trimmed
		}
	}
	return raw
}
