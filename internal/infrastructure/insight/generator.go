// Package insight provides the generative-text adapter used for business
// insights and message templates. The service is a black box: prompt in, text
// out. Every failure path returns the static fallback text instead of an
// error, so the user always sees some output.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shared"
)

// ConfigKey is the settings store key holding the text service credentials.
const ConfigKey = "ai_config"

// maxResponseSize is the maximum allowed response size from the service (5MB)
const maxResponseSize = 5 * 1024 * 1024

// FallbackText is returned whenever the service is unconfigured or fails.
const FallbackText = "Insights are temporarily unavailable. Keep an eye on your " +
	"delivered-versus-returned ratio and follow up on orders stuck in Shipping."

// Config holds the text service credentials.
type Config struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model,omitempty"`
}

// Complete reports whether the service can be called.
func (c *Config) Complete() bool {
	return c != nil && c.APIKey != ""
}

// Generator calls the remote text service.
type Generator struct {
	baseURL    string
	settings   shared.SettingsStore
	logger     *zap.Logger
	httpClient *http.Client
}

// NewGenerator creates a text generator for the given endpoint.
func NewGenerator(baseURL string, settings shared.SettingsStore, logger *zap.Logger, timeout time.Duration) *Generator {
	return &Generator{
		baseURL:  baseURL,
		settings: settings,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Generate produces text for a prompt. The response is either free text or a
// JSON object carrying an "insights" array; both are normalized to one
// string. Any failure yields FallbackText.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	if g.baseURL == "" {
		return FallbackText
	}

	var cfg Config
	found, err := shared.LoadJSON(ctx, g.settings, ConfigKey, &cfg)
	if err != nil || !found || !cfg.Complete() {
		g.logger.Debug("insight service not configured")
		return FallbackText
	}

	payload, err := json.Marshal(map[string]string{
		"prompt": prompt,
		"model":  cfg.Model,
	})
	if err != nil {
		return FallbackText
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(payload))
	if err != nil {
		return FallbackText
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Warn("insight request failed", zap.Error(err))
		return FallbackText
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		g.logger.Warn("insight service returned error", zap.Int("status", resp.StatusCode))
		return FallbackText
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return FallbackText
	}

	return normalize(body)
}

// normalize extracts text from either response shape.
func normalize(body []byte) string {
	var structured struct {
		Insights []string `json:"insights"`
	}
	if err := json.Unmarshal(body, &structured); err == nil && len(structured.Insights) > 0 {
		return strings.Join(structured.Insights, "\n")
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil && strings.TrimSpace(text) != "" {
		return text
	}

	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return FallbackText
	}
	return trimmed
}
