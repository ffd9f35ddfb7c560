package shop

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func order(total string) Order {
	return Order{Total: decimal.RequireFromString(total)}
}

func expense(amount string) Expense {
	return Expense{Amount: decimal.RequireFromString(amount)}
}

func TestComputeStats_Identities(t *testing.T) {
	orders := []Order{order("500"), order("300")}
	expenses := []Expense{expense("100")}

	stats := ComputeStats(orders, expenses, 12, 7)

	assert.True(t, stats.TotalPosSale.Equal(decimal.RequireFromString("800")))
	assert.True(t, stats.TotalExpenses.Equal(decimal.RequireFromString("100")))
	assert.True(t, stats.NetProfit.Equal(decimal.RequireFromString("700")))
	assert.True(t, stats.GrossProfit.Equal(decimal.RequireFromString("360")))
	assert.True(t, stats.OnlineSold.Equal(decimal.RequireFromString("160")))
	assert.Equal(t, 2, stats.Orders)
	assert.Equal(t, 7, stats.Customers)
	assert.Equal(t, 12, stats.TotalProducts)
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil, 0, 0)

	assert.True(t, stats.TotalPosSale.IsZero())
	assert.True(t, stats.NetProfit.IsZero())
	assert.True(t, stats.GrossProfit.IsZero())
	assert.Equal(t, 0, stats.Orders)
}

func TestComputeStats_ExpensesOnly(t *testing.T) {
	// No orders but real expenses: net profit goes negative, never errors.
	stats := ComputeStats(nil, []Expense{expense("250.50")}, 0, 3)

	assert.True(t, stats.NetProfit.Equal(decimal.RequireFromString("-250.5")))
	assert.True(t, stats.TotalExpenses.Equal(decimal.RequireFromString("250.5")))
	assert.Equal(t, 3, stats.Customers)
}

func TestComputeStats_FractionalTotals(t *testing.T) {
	stats := ComputeStats([]Order{order("99.99")}, nil, 1, 1)

	// Decimal arithmetic keeps the identities exact.
	assert.True(t, stats.GrossProfit.Equal(decimal.RequireFromString("44.9955")))
	assert.True(t, stats.OnlineSold.Equal(decimal.RequireFromString("19.998")))
}
