package shop

import "strings"

// courierKeyword maps a courier status keyword to the unified order status.
// Matching is by case-insensitive containment, evaluated in a fixed
// precedence order: the first keyword found in the courier status wins.
type courierKeyword struct {
	keyword string
	status  OrderStatus
}

// courierKeywords is the precedence table for courier status derivation.
// Order matters: "delivered_approval_pending" must resolve to Delivered, and
// "returned to sender" to Returned, before any later keyword is considered.
var courierKeywords = []courierKeyword{
	{"delivered", StatusDelivered},
	{"cancelled", StatusCancelled},
	{"return", StatusReturned},
	{"transit", StatusShipping},
	{"shipping", StatusShipping},
	{"pickup", StatusShipping},
}

// nativeStatuses maps the commerce source's own order status to the unified
// status. Unknown values fall back to Pending.
var nativeStatuses = map[string]OrderStatus{
	"processing": StatusPackaging,
	"completed":  StatusDelivered,
	"on-hold":    StatusPending,
	"cancelled":  StatusCancelled,
	"refunded":   StatusReturned,
	"failed":     StatusRejected,
}

// DeriveStatus derives the unified order status with two-tier precedence:
// a non-empty courier status always wins over the commerce source's native
// status, because courier reality overrides the platform once a shipment
// exists. An unrecognised courier status resolves to Packaging.
func DeriveStatus(nativeStatus, courierStatus string) OrderStatus {
	if courierStatus != "" {
		return statusFromCourier(courierStatus)
	}
	return statusFromNative(nativeStatus)
}

func statusFromCourier(courierStatus string) OrderStatus {
	lowered := strings.ToLower(courierStatus)
	for _, kw := range courierKeywords {
		if strings.Contains(lowered, kw.keyword) {
			return kw.status
		}
	}
	return StatusPackaging
}

func statusFromNative(nativeStatus string) OrderStatus {
	if status, ok := nativeStatuses[strings.ToLower(nativeStatus)]; ok {
		return status
	}
	return StatusPending
}
