// Package sales handles locally placed point-of-sale orders: orders created
// at the counter rather than fetched from the commerce platform.
package sales

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shopops/backend/internal/application/dashboard"
	"github.com/shopops/backend/internal/domain/shop"
)

// PlaceOrderInput carries everything needed to record a counter sale.
type PlaceOrderInput struct {
	Customer      shop.CustomerSnapshot
	Address       string
	Items         []shop.LineItem
	Shipping      decimal.Decimal
	Discount      decimal.Decimal
	PaymentMethod string
}

// POSService creates local orders and folds them into the published dashboard
// state without waiting for the next reconciliation pass.
type POSService struct {
	engine    *dashboard.ReconcileService
	directory shop.CustomerDirectory
	logger    *zap.Logger
}

// NewPOSService creates the point-of-sale service.
func NewPOSService(engine *dashboard.ReconcileService, directory shop.CustomerDirectory, logger *zap.Logger) *POSService {
	return &POSService{
		engine:    engine,
		directory: directory,
		logger:    logger,
	}
}

// PlaceOrder validates and records a counter sale. The customer directory is
// updated immediately with the order's total; a directory failure is logged
// but does not fail the sale, since the next reconciliation pass cannot
// recover a local order that was never recorded.
func (s *POSService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*shop.Order, error) {
	order, err := shop.NewPOSOrder(
		input.Customer,
		input.Address,
		input.Items,
		input.Shipping,
		input.Discount,
		input.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}

	phone := shop.NormalizePhone(input.Customer.Phone)
	if shop.ValidPhone(phone) {
		upsert := shop.CustomerUpsert{
			Phone:   phone,
			Name:    input.Customer.Name,
			Email:   input.Customer.Email,
			Address: input.Address,
			Avatar:  input.Customer.Avatar,
			Total:   order.Total,
		}
		if err := s.directory.Upsert(ctx, upsert); err != nil {
			s.logger.Warn("directory update for local order failed",
				zap.String("orderId", order.ID),
				zap.String("phone", phone),
				zap.Error(err),
			)
		}
	}

	s.engine.AddLocalOrder(ctx, *order)

	s.logger.Info("local order placed",
		zap.String("orderId", order.ID),
		zap.String("total", order.Total.String()),
		zap.Int("items", len(order.Products)),
	)
	return order, nil
}
