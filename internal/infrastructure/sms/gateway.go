// Package sms provides the outbound SMS gateway adapter. The transport is a
// black box to the rest of the system: credentials, phone and message in,
// boolean success out.
package sms

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shared"
)

// ConfigKey is the settings store key holding the gateway credentials.
const ConfigKey = "sms_config"

// maxResponseSize is the maximum allowed response size from the gateway (1MB)
const maxResponseSize = 1 * 1024 * 1024

// successCode is the gateway's accepted-for-delivery response code.
const successCode = 202

// Config holds the gateway credentials, managed through the settings store.
type Config struct {
	APIKey   string `json:"api_key"`
	SenderID string `json:"senderid"`
}

// Complete reports whether the gateway can be used.
func (c *Config) Complete() bool {
	return c != nil && c.APIKey != "" && c.SenderID != ""
}

// Gateway sends text messages one request per message; the transport has no
// batching.
type Gateway struct {
	baseURL    string
	settings   shared.SettingsStore
	logger     *zap.Logger
	httpClient *http.Client
}

// NewGateway creates an SMS gateway adapter for the given endpoint.
func NewGateway(baseURL string, settings shared.SettingsStore, logger *zap.Logger, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL:  baseURL,
		settings: settings,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send delivers one message. It returns false when the gateway is
// unconfigured, unreachable or reports anything other than acceptance.
func (g *Gateway) Send(ctx context.Context, phone, message string) bool {
	if g.baseURL == "" {
		return false
	}

	var cfg Config
	found, err := shared.LoadJSON(ctx, g.settings, ConfigKey, &cfg)
	if err != nil || !found || !cfg.Complete() {
		g.logger.Debug("sms gateway not configured")
		return false
	}

	query := url.Values{}
	query.Set("api_key", cfg.APIKey)
	query.Set("senderid", cfg.SenderID)
	query.Set("type", "text")
	query.Set("number", phone)
	query.Set("message", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		g.logger.Warn("failed to create sms request", zap.Error(err))
		return false
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("sms send failed", zap.String("phone", phone), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		g.logger.Warn("sms gateway returned error",
			zap.String("phone", phone),
			zap.Int("status", resp.StatusCode),
		)
		return false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return false
	}

	// The gateway answers with a response code on success; a body that is not
	// JSON still counts as delivered as long as the HTTP status was OK.
	var result struct {
		ResponseCode int `json:"response_code"`
	}
	if err := json.Unmarshal(body, &result); err == nil && result.ResponseCode != 0 {
		return result.ResponseCode == successCode
	}
	return true
}
