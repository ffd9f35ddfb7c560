package messaging

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shopops/backend/internal/domain/shop"
)

// TextGenerator produces free text for a prompt. Implementations never fail;
// they fall back to a static message instead.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// InsightService turns the current dashboard aggregates into a natural
// language business summary.
type InsightService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewInsightService creates the insight service.
func NewInsightService(generator TextGenerator, logger *zap.Logger) *InsightService {
	return &InsightService{
		generator: generator,
		logger:    logger,
	}
}

// DashboardInsights produces a short analysis of the given stats. It always
// returns text; the generator degrades to a fallback on its own.
func (s *InsightService) DashboardInsights(ctx context.Context, stats shop.DashboardStats) string {
	prompt := buildPrompt(stats)
	s.logger.Debug("requesting dashboard insights", zap.Int("orders", stats.Orders))
	return s.generator.Generate(ctx, prompt)
}

// buildPrompt renders the aggregates into a compact prompt. Figures are
// plain numbers so the model does not have to parse currency formatting.
func buildPrompt(stats shop.DashboardStats) string {
	var b strings.Builder
	b.WriteString("You are a retail business analyst. Given these store figures, ")
	b.WriteString("write three short, actionable insights for the owner.\n")
	fmt.Fprintf(&b, "Orders: %d\n", stats.Orders)
	fmt.Fprintf(&b, "Customers: %d\n", stats.Customers)
	fmt.Fprintf(&b, "Products listed: %d\n", stats.TotalProducts)
	fmt.Fprintf(&b, "Total sales: %s\n", stats.TotalPosSale.StringFixed(2))
	fmt.Fprintf(&b, "Total expenses: %s\n", stats.TotalExpenses.StringFixed(2))
	fmt.Fprintf(&b, "Net profit: %s\n", stats.NetProfit.StringFixed(2))
	return b.String()
}
