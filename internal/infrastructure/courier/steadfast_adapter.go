// Package courier provides the two delivery provider adapters: Steadfast
// (static key/secret auth) and Pathao (OAuth token with settings-store
// caching and a city/zone/area location hierarchy).
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	courierdomain "github.com/shopops/backend/internal/domain/courier"
	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shop"
)

// maxResponseSize is the maximum allowed response size from a provider (5MB)
const maxResponseSize = 5 * 1024 * 1024

// SteadfastName identifies the provider on tracking annotations.
const SteadfastName = "steadfast"

// SteadfastAdapter implements courier.Provider for the simple-auth provider.
// Credentials live in the settings store and are loaded per call, so a
// settings change takes effect immediately.
type SteadfastAdapter struct {
	settings   shared.SettingsStore
	logger     *zap.Logger
	httpClient *http.Client
}

var _ courierdomain.Provider = (*SteadfastAdapter)(nil)

// NewSteadfastAdapter creates a Steadfast adapter backed by the settings store.
func NewSteadfastAdapter(settings shared.SettingsStore, logger *zap.Logger, timeout time.Duration) *SteadfastAdapter {
	return &SteadfastAdapter{
		settings: settings,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider identifier.
func (a *SteadfastAdapter) Name() string {
	return SteadfastName
}

func (a *SteadfastAdapter) loadConfig(ctx context.Context) *SteadfastConfig {
	var cfg SteadfastConfig
	found, err := shared.LoadJSON(ctx, a.settings, SteadfastConfigKey, &cfg)
	if err != nil || !found {
		return nil
	}
	return &cfg
}

// Balance returns the account balance, or zero when unconfigured or on any
// failure.
func (a *SteadfastAdapter) Balance(ctx context.Context) decimal.Decimal {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return decimal.Zero
	}

	body, err := a.doRequest(ctx, cfg, http.MethodGet, "/get_balance", nil)
	if err != nil {
		a.logger.Warn("steadfast balance check failed", zap.Error(err))
		return decimal.Zero
	}

	var resp steadfastBalanceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		a.logger.Warn("steadfast balance parse failed", zap.Error(err))
		return decimal.Zero
	}
	return shop.ParseDecimal(resp.CurrentBalance.String())
}

// CreateConsignment creates a shipment. The order id doubles as the invoice
// reference on the provider side.
func (a *SteadfastAdapter) CreateConsignment(ctx context.Context, req courierdomain.ConsignmentRequest) (*courierdomain.Consignment, error) {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return nil, courierdomain.ErrNotConfigured
	}

	payload := steadfastCreateRequest{
		Invoice:          req.OrderID,
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientAddress: req.RecipientAddress,
		CodAmount:        req.CodAmount.StringFixed(2),
		Note:             req.ItemDescription,
	}

	body, err := a.doRequest(ctx, cfg, http.MethodPost, "/create_order", payload)
	if err != nil {
		return nil, err
	}

	var resp steadfastCreateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: unreadable response", courierdomain.ErrRejected)
	}

	if resp.Status != http.StatusOK || resp.Consignment == nil || resp.Consignment.TrackingCode == "" {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", courierdomain.ErrRejected, resp.Message)
		}
		return nil, courierdomain.ErrRejected
	}

	return &courierdomain.Consignment{
		TrackingCode: resp.Consignment.TrackingCode,
		ProviderID:   SteadfastName,
	}, nil
}

// TrackStatus returns the provider's delivery status string for a tracking
// code.
func (a *SteadfastAdapter) TrackStatus(ctx context.Context, trackingCode string) (string, error) {
	cfg := a.loadConfig(ctx)
	if !cfg.Complete() {
		return "", courierdomain.ErrNotConfigured
	}

	body, err := a.doRequest(ctx, cfg, http.MethodGet, "/status_by_trackingcode/"+trackingCode, nil)
	if err != nil {
		return "", err
	}

	var resp steadfastStatusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("courier: steadfast status parse failed: %w", err)
	}
	return resp.DeliveryStatus, nil
}

// doRequest performs one authenticated call against the provider API.
func (a *SteadfastAdapter) doRequest(ctx context.Context, cfg *SteadfastConfig, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("courier: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.baseURL()+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("courier: failed to create request: %w", err)
	}
	req.Header.Set("Api-Key", cfg.APIKey)
	req.Header.Set("Secret-Key", cfg.SecretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", courierdomain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", courierdomain.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, courierdomain.ErrAuthFailed
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: HTTP %d", courierdomain.ErrUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: HTTP %d", courierdomain.ErrRejected, resp.StatusCode)
	}

	return body, nil
}
