package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus_CourierPrecedence(t *testing.T) {
	tests := []struct {
		name          string
		nativeStatus  string
		courierStatus string
		want          OrderStatus
	}{
		{
			name:          "courier in transit overrides completed",
			nativeStatus:  "completed",
			courierStatus: "in transit",
			want:          StatusShipping,
		},
		{
			name:          "returned to sender overrides completed",
			nativeStatus:  "completed",
			courierStatus: "Returned to sender",
			want:          StatusReturned,
		},
		{
			name:          "courier delivered",
			nativeStatus:  "processing",
			courierStatus: "delivered_approval_pending",
			want:          StatusDelivered,
		},
		{
			name:          "courier cancelled",
			nativeStatus:  "processing",
			courierStatus: "Cancelled by merchant",
			want:          StatusCancelled,
		},
		{
			name:          "courier pickup",
			nativeStatus:  "on-hold",
			courierStatus: "pickup_assigned",
			want:          StatusShipping,
		},
		{
			name:          "unknown courier status falls back to packaging",
			nativeStatus:  "completed",
			courierStatus: "pending",
			want:          StatusPackaging,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.nativeStatus, tt.courierStatus))
		})
	}
}

func TestDeriveStatus_NativeFallback(t *testing.T) {
	tests := []struct {
		nativeStatus string
		want         OrderStatus
	}{
		{"processing", StatusPackaging},
		{"completed", StatusDelivered},
		{"on-hold", StatusPending},
		{"cancelled", StatusCancelled},
		{"refunded", StatusReturned},
		{"failed", StatusRejected},
		{"pending", StatusPending},
		{"", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.nativeStatus, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.nativeStatus, ""))
		})
	}
}

func TestDeriveStatus_KeywordPrecedenceOrder(t *testing.T) {
	// "delivered" wins over "return" when both appear, per the fixed
	// precedence order.
	assert.Equal(t, StatusDelivered, DeriveStatus("processing", "return after delivered"))
}

func TestOrderStatus_IsValid(t *testing.T) {
	for _, s := range []OrderStatus{
		StatusPending, StatusPackaging, StatusShipping, StatusDelivered,
		StatusReturned, StatusRejected, StatusCancelled,
	} {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, OrderStatus("Shipped").IsValid())
}
