// Package directory provides the HTTP client for the remote customer
// directory. The directory is authoritative for customer state: it performs
// the accumulation (order counts, totals, merged contact details) server-side
// on every upsert, so this client only submits per-order hints.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopops/backend/internal/domain/shop"
)

// maxResponseSize is the maximum allowed response size from the directory (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the remote customer directory over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ shop.CustomerDirectory = (*Client)(nil)

// NewClient creates a directory client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List returns all directory customers.
func (c *Client) List(ctx context.Context) ([]shop.Customer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directory: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("directory: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("directory: failed to read response: %w", err)
	}

	var customers []shop.Customer
	if err := json.Unmarshal(body, &customers); err != nil {
		return nil, fmt.Errorf("directory: failed to parse response: %w", err)
	}
	return customers, nil
}

// Upsert submits one customer hint. Write failures surface to the caller so
// the reconciliation pass can log them per customer.
func (c *Client) Upsert(ctx context.Context, upsert shop.CustomerUpsert) error {
	payload, err := json.Marshal(upsert)
	if err != nil {
		return fmt.Errorf("directory: failed to encode upsert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("directory: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("directory: upsert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("directory: upsert rejected with HTTP %d", resp.StatusCode)
	}
	return nil
}
