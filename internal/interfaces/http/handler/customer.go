package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopops/backend/internal/domain/shop"
)

// CustomerHandler serves the authoritative customer directory.
type CustomerHandler struct {
	BaseHandler
	directory shop.CustomerDirectory
}

// NewCustomerHandler creates a customer handler
func NewCustomerHandler(directory shop.CustomerDirectory) *CustomerHandler {
	return &CustomerHandler{directory: directory}
}

// RegisterRoutes registers customer routes
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/customers", h.List)
}

// List returns every directory customer with accumulated counts.
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.directory.List(c.Request.Context())
	if err != nil {
		h.InternalError(c, "failed to list customers")
		return
	}
	if customers == nil {
		customers = []shop.Customer{}
	}
	h.Success(c, customers)
}
