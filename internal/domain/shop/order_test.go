package shop

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPOSOrder(t *testing.T) {
	items := []LineItem{
		{ID: "1", Name: "Widget", Price: decimal.RequireFromString("150"), Qty: 2},
		{ID: "2", Name: "Gadget", Price: decimal.RequireFromString("100"), Qty: 1},
	}

	order, err := NewPOSOrder(
		CustomerSnapshot{Name: "Buyer", Phone: "01712345678"},
		"12 Market Road",
		items,
		decimal.RequireFromString("60"),
		decimal.RequireFromString("10"),
		"Cash",
	)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, POSOrderPrefix))
	assert.True(t, order.IsPOS())
	assert.True(t, order.Subtotal.Equal(decimal.RequireFromString("400")))
	// total = subtotal + shipping - discount
	assert.True(t, order.Total.Equal(decimal.RequireFromString("450")))
	assert.Equal(t, StatusPending, order.Status)
	assert.Contains(t, order.StatusHistory, "placed")
	assert.NotZero(t, order.Timestamp)
	assert.NotEmpty(t, order.Date)
}

func TestNewPOSOrder_Invalid(t *testing.T) {
	_, err := NewPOSOrder(CustomerSnapshot{}, "", nil, decimal.Zero, decimal.Zero, "Cash")
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = NewPOSOrder(CustomerSnapshot{}, "", []LineItem{
		{Name: "Widget", Price: decimal.RequireFromString("10"), Qty: 0},
	}, decimal.Zero, decimal.Zero, "Cash")
	assert.ErrorIs(t, err, ErrInvalidLineItem)
}

func TestOrder_AttachConsignment(t *testing.T) {
	order := &Order{ID: "42", Status: StatusPending}

	err := order.AttachConsignment("TRK-1", "steadfast")
	require.NoError(t, err)
	assert.Equal(t, "TRK-1", order.CourierTrackingCode)
	assert.Equal(t, "steadfast", order.CourierProvider)
	assert.Equal(t, StatusPackaging, order.Status)
	assert.Contains(t, order.StatusHistory, "packaging")

	// Tracking fields are immutable once set.
	err = order.AttachConsignment("TRK-2", "pathao")
	assert.ErrorIs(t, err, ErrConsignmentExists)
	assert.Equal(t, "TRK-1", order.CourierTrackingCode)
}

func TestOrder_AttachConsignment_Invalid(t *testing.T) {
	order := &Order{ID: "42"}
	assert.ErrorIs(t, order.AttachConsignment("", "steadfast"), ErrInvalidConsignment)
	assert.ErrorIs(t, order.AttachConsignment("TRK-1", ""), ErrInvalidConsignment)
}

func TestParseDecimal(t *testing.T) {
	assert.True(t, ParseDecimal("12.50").Equal(decimal.RequireFromString("12.5")))
	assert.True(t, ParseDecimal("").IsZero())
	assert.True(t, ParseDecimal("not-a-number").IsZero())
}
