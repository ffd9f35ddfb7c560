// Package tracking provides the HTTP client for the remote tracking store,
// the durable home of courier shipment state joined onto commerce orders.
package tracking

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

// Client talks to the remote tracking store over HTTP. GET returns the full
// annotation array; POST upserts one annotation keyed by order id, with the
// latest write winning.
type Client struct {
	baseURL    string
	logger     *zap.Logger
	httpClient *http.Client
}

var _ shop.TrackingStore = (*Client)(nil)

// NewClient creates a tracking store client for the given base URL.
func NewClient(baseURL string, logger *zap.Logger, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// List returns all tracking annotations.
func (c *Client) List(ctx context.Context) ([]shop.TrackingAnnotation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracking: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("tracking: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("tracking: failed to read response: %w", err)
	}

	var annotations []shop.TrackingAnnotation
	if err := json.Unmarshal(body, &annotations); err != nil {
		return nil, fmt.Errorf("tracking: failed to parse response: %w", err)
	}
	return annotations, nil
}

// Get returns the annotation for an order, or nil when none exists.
func (c *Client) Get(ctx context.Context, orderID string) (*shop.TrackingAnnotation, error) {
	annotations, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range annotations {
		if annotations[i].OrderID == orderID {
			return &annotations[i], nil
		}
	}
	return nil, nil
}

// Save upserts an annotation. This is fire-and-forget from the caller's
// perspective: failures are logged here, never surfaced to the action that
// created the consignment.
func (c *Client) Save(ctx context.Context, annotation shop.TrackingAnnotation) {
	payload, err := json.Marshal(annotation)
	if err != nil {
		c.logger.Warn("failed to encode tracking annotation",
			zap.String("order_id", annotation.OrderID),
			zap.Error(err),
		)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("failed to create tracking request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("failed to save tracking annotation",
			zap.String("order_id", annotation.OrderID),
			zap.Error(err),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		c.logger.Warn("tracking store rejected annotation",
			zap.String("order_id", annotation.OrderID),
			zap.Int("status", resp.StatusCode),
		)
	}
}
