// Package shipping coordinates courier consignments: creating shipments
// through a registered provider and persisting the tracking annotation that
// later reconciliation passes join back onto orders.
package shipping

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/courier"
	"github.com/shopops/backend/internal/domain/shop"
)

// ProviderBalance pairs a provider name with its current account balance.
type ProviderBalance struct {
	Provider string          `json:"provider"`
	Balance  decimal.Decimal `json:"balance"`
}

// ConsignmentService creates shipments and records their tracking state.
type ConsignmentService struct {
	registry *courier.Registry
	tracking shop.TrackingStore
	logger   *zap.Logger
}

// NewConsignmentService creates the consignment service.
func NewConsignmentService(registry *courier.Registry, tracking shop.TrackingStore, logger *zap.Logger) *ConsignmentService {
	return &ConsignmentService{
		registry: registry,
		tracking: tracking,
		logger:   logger,
	}
}

// Create books a shipment with the named provider and saves the tracking
// annotation. Provider errors pass through unchanged so handlers can map the
// courier error taxonomy to responses. The annotation save never fails the
// booking: the consignment already exists upstream, so losing the local
// record is recoverable while double-booking is not.
func (s *ConsignmentService) Create(ctx context.Context, provider string, req courier.ConsignmentRequest) (*courier.Consignment, error) {
	p, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}

	consignment, err := p.CreateConsignment(ctx, req)
	if err != nil {
		return nil, err
	}

	s.tracking.Save(ctx, shop.TrackingAnnotation{
		OrderID:             req.OrderID,
		CourierTrackingCode: consignment.TrackingCode,
		CourierProvider:     p.Name(),
	})

	s.logger.Info("consignment created",
		zap.String("orderId", req.OrderID),
		zap.String("provider", p.Name()),
		zap.String("trackingCode", consignment.TrackingCode),
	)
	return consignment, nil
}

// Balances collects every registered provider's account balance. Providers
// report zero when unconfigured or unreachable, so this never fails.
func (s *ConsignmentService) Balances(ctx context.Context) []ProviderBalance {
	providers := s.registry.All()
	out := make([]ProviderBalance, 0, len(providers))
	for _, p := range providers {
		out = append(out, ProviderBalance{
			Provider: p.Name(),
			Balance:  p.Balance(ctx),
		})
	}
	return out
}

// RefreshStatus polls the provider for an order's current delivery status and
// persists it on the tracking annotation.
func (s *ConsignmentService) RefreshStatus(ctx context.Context, orderID string) (*shop.TrackingAnnotation, error) {
	annotation, err := s.tracking.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if annotation == nil || annotation.CourierTrackingCode == "" {
		return nil, shop.ErrInvalidConsignment
	}

	p, err := s.registry.Get(annotation.CourierProvider)
	if err != nil {
		return nil, err
	}

	status, err := p.TrackStatus(ctx, annotation.CourierTrackingCode)
	if err != nil {
		return nil, err
	}

	annotation.CourierStatus = status
	s.tracking.Save(ctx, *annotation)
	return annotation, nil
}
