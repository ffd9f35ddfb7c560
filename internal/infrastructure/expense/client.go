// Package expense provides the HTTP client for the expense store. Reads fail
// soft like the commerce source; writes surface errors to the caller.
package expense

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shop"
)

// maxResponseSize is the maximum allowed response size from the store (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the remote expense store over HTTP.
type Client struct {
	baseURL    string
	logger     *zap.Logger
	httpClient *http.Client
}

var _ shop.ExpenseSource = (*Client)(nil)

// NewClient creates an expense store client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List returns all expenses. Any failure degrades to an empty slice so the
// reconciliation pass keeps going with a zero expense sum.
func (c *Client) List(ctx context.Context) ([]shop.Expense, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		c.logger.Warn("failed to create expense request", zap.Error(err))
		return []shop.Expense{}, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("expense fetch failed", zap.Error(err))
		return []shop.Expense{}, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Warn("expense store returned error", zap.Int("status", resp.StatusCode))
		return []shop.Expense{}, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		c.logger.Warn("failed to read expense response", zap.Error(err))
		return []shop.Expense{}, nil
	}

	var expenses []shop.Expense
	if err := json.Unmarshal(body, &expenses); err != nil {
		c.logger.Warn("failed to parse expense response", zap.Error(err))
		return []shop.Expense{}, nil
	}
	return expenses, nil
}

// Save persists one expense.
func (c *Client) Save(ctx context.Context, expense shop.Expense) error {
	payload, err := json.Marshal(expense)
	if err != nil {
		return fmt.Errorf("expense: failed to encode expense: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("expense: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("expense: save failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("expense: save rejected with HTTP %d", resp.StatusCode)
	}
	return nil
}
