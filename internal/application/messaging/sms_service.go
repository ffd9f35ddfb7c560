// Package messaging contains the bulk SMS campaign service and the dashboard
// insight service. Both sit on top of black-box transports: the SMS gateway
// reports per-message success, the text generator always produces something.
package messaging

import (
	"context"

	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shared"
)

// TemplatesKey is the settings store key holding the saved message templates.
const TemplatesKey = "sms_templates"

// Sender delivers one text message, reporting success as a boolean.
type Sender interface {
	Send(ctx context.Context, phone, message string) bool
}

// Template is a reusable campaign message.
type Template struct {
	Name string `json:"name"`
	Body string `json:"body"`
}

// SendResult is the per-recipient outcome of a campaign.
type SendResult struct {
	Phone string `json:"phone"`
	Sent  bool   `json:"sent"`
}

// SMSService runs bulk campaigns and manages message templates.
type SMSService struct {
	sender   Sender
	settings shared.SettingsStore
	logger   *zap.Logger
}

// NewSMSService creates the SMS campaign service.
func NewSMSService(sender Sender, settings shared.SettingsStore, logger *zap.Logger) *SMSService {
	return &SMSService{
		sender:   sender,
		settings: settings,
		logger:   logger,
	}
}

// SendBulk delivers the message to every phone, one gateway call per
// recipient, and reports the outcome per phone. Failed sends do not stop the
// campaign.
func (s *SMSService) SendBulk(ctx context.Context, phones []string, message string) []SendResult {
	results := make([]SendResult, 0, len(phones))
	sent := 0
	for _, phone := range phones {
		ok := s.sender.Send(ctx, phone, message)
		if ok {
			sent++
		}
		results = append(results, SendResult{Phone: phone, Sent: ok})
	}

	s.logger.Info("sms campaign finished",
		zap.Int("recipients", len(phones)),
		zap.Int("sent", sent),
	)
	return results
}

// Templates returns the saved campaign templates, empty when none were saved.
func (s *SMSService) Templates(ctx context.Context) ([]Template, error) {
	var templates []Template
	found, err := shared.LoadJSON(ctx, s.settings, TemplatesKey, &templates)
	if err != nil {
		return nil, err
	}
	if !found || templates == nil {
		return []Template{}, nil
	}
	return templates, nil
}

// SaveTemplates replaces the saved template set.
func (s *SMSService) SaveTemplates(ctx context.Context, templates []Template) error {
	return shared.SaveJSON(ctx, s.settings, TemplatesKey, templates)
}
