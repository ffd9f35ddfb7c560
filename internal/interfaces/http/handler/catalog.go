package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopops/backend/internal/application/dashboard"
)

// CatalogHandler serves the product and category views of the snapshot.
type CatalogHandler struct {
	BaseHandler
	engine *dashboard.ReconcileService
}

// NewCatalogHandler creates a catalog handler
func NewCatalogHandler(engine *dashboard.ReconcileService) *CatalogHandler {
	return &CatalogHandler{engine: engine}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/products", h.Products)
	rg.GET("/categories", h.Categories)
}

// Products returns the products of the latest snapshot.
func (h *CatalogHandler) Products(c *gin.Context) {
	h.Success(c, h.engine.Snapshot(c.Request.Context()).Products)
}

// Categories returns the categories of the latest snapshot.
func (h *CatalogHandler) Categories(c *gin.Context) {
	h.Success(c, h.engine.Snapshot(c.Request.Context()).Categories)
}
