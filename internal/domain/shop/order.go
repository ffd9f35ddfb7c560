package shop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// POSOrderPrefix marks orders placed at the local point of sale. Commerce
// sourced orders carry the upstream numeric id instead.
const POSOrderPrefix = "POS-"

// DateLayout is the display format used for order dates and status history.
const DateLayout = "02 Jan 2006"

// OrderStatus is the unified order status derived from the commerce source
// and courier tracking. States are mutually exclusive.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPackaging OrderStatus = "Packaging"
	StatusShipping  OrderStatus = "Shipping"
	StatusDelivered OrderStatus = "Delivered"
	StatusReturned  OrderStatus = "Returned"
	StatusRejected  OrderStatus = "Rejected"
	StatusCancelled OrderStatus = "Cancelled"
)

// IsValid returns true if the status is one of the unified states
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPackaging, StatusShipping, StatusDelivered,
		StatusReturned, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CustomerSnapshot is the denormalized purchaser copy embedded in an order.
// Authoritative customer state lives in the customer directory.
type CustomerSnapshot struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
	OrderCount int    `json:"orderCount"`
}

// LineItem is one product line of an order. Price is the unit price at the
// time of sale.
type LineItem struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Brand string          `json:"brand"`
	Price decimal.Decimal `json:"price"`
	Qty   int             `json:"qty"`
	Img   string          `json:"img"`
}

// Order is one commerce transaction, from the commerce source or the local
// point of sale. Orders are never deleted by this system; they are replaced
// wholesale on re-fetch.
type Order struct {
	ID             string           `json:"id"`
	Timestamp      int64            `json:"timestamp"`
	Date           string           `json:"date"`
	Customer       CustomerSnapshot `json:"customer"`
	Address        string           `json:"address"`
	Products       []LineItem       `json:"products"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	ShippingCharge decimal.Decimal  `json:"shippingCharge"`
	Discount       decimal.Decimal  `json:"discount"`
	Total          decimal.Decimal  `json:"total"`
	Status         OrderStatus      `json:"status"`
	// StatusHistory maps a lifecycle step name to a date string. It is
	// append-only: set at creation ("placed") and extended on transitions.
	StatusHistory map[string]string `json:"statusHistory"`
	PaymentMethod string            `json:"paymentMethod"`

	// Courier fields are set once a consignment exists. The tracking code
	// and provider are immutable for the order's lifetime; only the courier
	// status is refreshed.
	CourierTrackingCode string `json:"courier_tracking_code,omitempty"`
	CourierProvider     string `json:"courier_provider,omitempty"`
	CourierStatus       string `json:"courier_status,omitempty"`
}

// IsPOS returns true when the order was placed at the local point of sale
func (o *Order) IsPOS() bool {
	return len(o.ID) > len(POSOrderPrefix) && o.ID[:len(POSOrderPrefix)] == POSOrderPrefix
}

// AttachConsignment records courier tracking on the order and moves it to
// Packaging. It fails if a consignment was already attached.
func (o *Order) AttachConsignment(trackingCode, provider string) error {
	if trackingCode == "" || provider == "" {
		return ErrInvalidConsignment
	}
	if o.CourierTrackingCode != "" {
		return ErrConsignmentExists
	}
	o.CourierTrackingCode = trackingCode
	o.CourierProvider = provider
	o.Status = StatusPackaging
	o.recordStep("packaging", time.Now())
	return nil
}

// NewPOSOrder creates a locally placed point-of-sale order. The id gets the
// POS prefix, the status history is seeded with the "placed" step and the
// total is subtotal + shipping - discount.
func NewPOSOrder(customer CustomerSnapshot, address string, items []LineItem, shipping, discount decimal.Decimal, paymentMethod string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	subtotal := decimal.Zero
	for _, item := range items {
		if item.Qty <= 0 {
			return nil, fmt.Errorf("%w: line %q has quantity %d", ErrInvalidLineItem, item.Name, item.Qty)
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
	}

	now := time.Now()
	order := &Order{
		ID:             POSOrderPrefix + uuid.NewString(),
		Timestamp:      now.UnixMilli(),
		Date:           now.Format(DateLayout),
		Customer:       customer,
		Address:        address,
		Products:       items,
		Subtotal:       subtotal,
		ShippingCharge: shipping,
		Discount:       discount,
		Total:          subtotal.Add(shipping).Sub(discount),
		Status:         StatusPending,
		StatusHistory:  map[string]string{},
		PaymentMethod:  paymentMethod,
	}
	order.recordStep("placed", now)
	return order, nil
}

func (o *Order) recordStep(step string, at time.Time) {
	if o.StatusHistory == nil {
		o.StatusHistory = map[string]string{}
	}
	// Append-only: an existing entry keeps its original date.
	if _, ok := o.StatusHistory[step]; !ok {
		o.StatusHistory[step] = at.Format(DateLayout)
	}
}
