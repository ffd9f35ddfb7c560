package shop

import "github.com/shopspring/decimal"

// Expense is an independently persisted business expense. Statistics include
// expenses only as a flat sum.
type Expense struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp int64           `json:"timestamp"`
}
