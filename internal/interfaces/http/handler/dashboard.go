package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopops/backend/internal/application/dashboard"
	"github.com/shopops/backend/internal/application/messaging"
)

// DashboardHandler serves the reconciled snapshot and its derived views.
type DashboardHandler struct {
	BaseHandler
	engine   *dashboard.ReconcileService
	insights *messaging.InsightService
}

// NewDashboardHandler creates a dashboard handler
func NewDashboardHandler(engine *dashboard.ReconcileService, insights *messaging.InsightService) *DashboardHandler {
	return &DashboardHandler{
		engine:   engine,
		insights: insights,
	}
}

// RegisterRoutes registers dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/dashboard")
	{
		group.GET("", h.Snapshot)
		group.POST("/refresh", h.Refresh)
		group.GET("/stats", h.Stats)
		group.GET("/insights", h.Insights)
	}
}

// Snapshot returns the latest published snapshot without triggering a fetch.
func (h *DashboardHandler) Snapshot(c *gin.Context) {
	h.Success(c, h.engine.Snapshot(c.Request.Context()))
}

// Refresh runs a reconciliation pass and returns the fresh snapshot.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	snapshot, err := h.engine.Reconcile(c.Request.Context())
	if err != nil {
		h.InternalError(c, "reconciliation failed")
		return
	}
	h.Success(c, snapshot)
}

// Stats returns only the aggregate figures of the latest snapshot.
func (h *DashboardHandler) Stats(c *gin.Context) {
	h.Success(c, h.engine.Snapshot(c.Request.Context()).Stats)
}

// Insights returns a generated business summary of the current figures.
func (h *DashboardHandler) Insights(c *gin.Context) {
	ctx := c.Request.Context()
	stats := h.engine.Snapshot(ctx).Stats
	h.Success(c, gin.H{"insights": h.insights.DashboardInsights(ctx, stats)})
}
