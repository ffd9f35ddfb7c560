package shop

import "github.com/shopspring/decimal"

// Fixed business ratios used for the derived profit figures. These are
// deliberate placeholders, not computed from real cost or channel data.
var (
	grossMarginRatio  = decimal.RequireFromString("0.45")
	onlineChannelRate = decimal.RequireFromString("0.2")
)

// DashboardStats is the aggregate snapshot recomputed in full on every
// reconciliation pass. It is never updated incrementally, which keeps the
// figures self-consistent as of a single fetch cycle.
type DashboardStats struct {
	NetProfit     decimal.Decimal `json:"netProfit"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	TotalPosSale  decimal.Decimal `json:"totalPosSale"`
	OnlineSold    decimal.Decimal `json:"onlineSold"`
	Orders        int             `json:"orders"`
	Customers     int             `json:"customers"`
	TotalProducts int             `json:"totalProducts"`
}

// ComputeStats derives the dashboard aggregates from one pass's data.
// Identities: netProfit = totalPosSale - totalExpenses,
// grossProfit = 0.45 * totalPosSale, onlineSold = 0.2 * totalPosSale.
func ComputeStats(orders []Order, expenses []Expense, productCount, customerCount int) DashboardStats {
	totalSale := decimal.Zero
	for _, order := range orders {
		totalSale = totalSale.Add(order.Total)
	}

	totalExpenses := decimal.Zero
	for _, expense := range expenses {
		totalExpenses = totalExpenses.Add(expense.Amount)
	}

	return DashboardStats{
		NetProfit:     totalSale.Sub(totalExpenses),
		GrossProfit:   totalSale.Mul(grossMarginRatio),
		TotalExpenses: totalExpenses,
		TotalPosSale:  totalSale,
		OnlineSold:    totalSale.Mul(onlineChannelRate),
		Orders:        len(orders),
		Customers:     customerCount,
		TotalProducts: productCount,
	}
}
