package shop

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minPhoneLength is the minimum trimmed phone length for a customer to be
// considered identifiable. Shorter values are treated as missing.
const minPhoneLength = 6

// Customer is a unique purchaser, identified by phone. OrderCount and
// TotalSpent are authoritative only in the customer directory, which
// accumulates them server-side on each upsert.
type Customer struct {
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	Avatar     string          `json:"avatar"`
	OrderCount int             `json:"orderCount"`
	TotalSpent decimal.Decimal `json:"totalSpent"`
}

// CustomerUpsert is the hint a caller submits to the directory: identity plus
// the latest observed order's total and address. The directory merges it into
// prior state; the caller never computes running totals.
type CustomerUpsert struct {
	Phone   string          `json:"phone"`
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Address string          `json:"address"`
	Avatar  string          `json:"avatar"`
	Total   decimal.Decimal `json:"total"`
}

// ValidPhone reports whether a phone number is long enough, after trimming,
// to serve as a customer identity.
func ValidPhone(phone string) bool {
	return len(strings.TrimSpace(phone)) >= minPhoneLength
}

// NormalizePhone trims surrounding whitespace from a phone number.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

// DeriveCustomerBatch builds the unique-customer set for one reconciliation
// pass. Orders are visited in their fetched sequence and repeated phones are
// overwritten, so the last-seen order's total and address win within the
// batch. Orders without a valid phone are excluded. The returned slice keeps
// first-seen phone order for deterministic upsert scheduling.
func DeriveCustomerBatch(orders []Order) []CustomerUpsert {
	index := make(map[string]int, len(orders))
	batch := make([]CustomerUpsert, 0, len(orders))

	for _, order := range orders {
		phone := NormalizePhone(order.Customer.Phone)
		if !ValidPhone(phone) {
			continue
		}
		upsert := CustomerUpsert{
			Phone:   phone,
			Name:    order.Customer.Name,
			Email:   order.Customer.Email,
			Address: order.Address,
			Avatar:  order.Customer.Avatar,
			Total:   order.Total,
		}
		if pos, ok := index[phone]; ok {
			batch[pos] = upsert
			continue
		}
		index[phone] = len(batch)
		batch = append(batch, upsert)
	}
	return batch
}
