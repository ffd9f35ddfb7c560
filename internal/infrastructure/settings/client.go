// Package settings provides the HTTP client for the remote settings store, a
// small key/value service that holds runtime-managed credentials and cached
// tokens. It implements shared.SettingsStore.
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopops/backend/internal/domain/shared"
)

// maxResponseSize is the maximum allowed response size from the store (1MB)
const maxResponseSize = 1 * 1024 * 1024

// ErrStoreUnavailable indicates the settings store could not be reached
var ErrStoreUnavailable = errors.New("settings: store unavailable")

// Client talks to the remote settings store over HTTP.
//
// The wire contract is deliberately simple:
//
//	GET  {base}?key=<name>  -> JSON value, or null when the key is absent
//	POST {base}             -> body {"key": <name>, "value": <json-encoded string>}
//
// Values are stored JSON-encoded to a string, so reads tolerate both plain
// and double-encoded payloads via shared.DecodeMaybeDoubleEncoded.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ shared.SettingsStore = (*Client)(nil)

// NewClient creates a settings store client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get fetches the raw JSON value stored under key. An absent key returns
// (nil, nil); transport and HTTP failures return an error.
func (c *Client) Get(ctx context.Context, key string) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s?key=%s", c.baseURL, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("settings: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrStoreUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("settings: failed to read response: %w", err)
	}

	raw := bytes.TrimSpace(body)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	return json.RawMessage(raw), nil
}

// Set stores value under key. The value is JSON-encoded to a string so the
// store only ever holds string payloads.
func (c *Client) Set(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("settings: failed to encode value for %q: %w", key, err)
	}

	payload, err := json.Marshal(map[string]string{
		"key":   key,
		"value": string(encoded),
	})
	if err != nil {
		return fmt.Errorf("settings: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("settings: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: HTTP %d", ErrStoreUnavailable, resp.StatusCode)
	}

	return nil
}
