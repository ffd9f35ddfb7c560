package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopops/backend/internal/application/shipping"
	courierinfra "github.com/shopops/backend/internal/infrastructure/courier"
)

// CourierHandler serves provider balances and the location hierarchy of the
// OAuth provider.
type CourierHandler struct {
	BaseHandler
	shipping *shipping.ConsignmentService
	pathao   *courierinfra.PathaoAdapter
}

// NewCourierHandler creates a courier handler
func NewCourierHandler(shipping *shipping.ConsignmentService, pathao *courierinfra.PathaoAdapter) *CourierHandler {
	return &CourierHandler{
		shipping: shipping,
		pathao:   pathao,
	}
}

// RegisterRoutes registers courier routes
func (h *CourierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/couriers")
	{
		group.GET("/balances", h.Balances)

		pathao := group.Group("/pathao")
		{
			pathao.GET("/cities", h.Cities)
			pathao.GET("/cities/:id/zones", h.Zones)
			pathao.GET("/zones/:id/areas", h.Areas)
			pathao.GET("/stores", h.Stores)
		}
	}
}

// Balances returns every provider's account balance.
func (h *CourierHandler) Balances(c *gin.Context) {
	h.Success(c, h.shipping.Balances(c.Request.Context()))
}

// Cities returns the provider's city list.
func (h *CourierHandler) Cities(c *gin.Context) {
	cities, err := h.pathao.Cities(c.Request.Context())
	if err != nil {
		h.HandleCourierError(c, err)
		return
	}
	h.Success(c, cities)
}

// Zones returns the zones of one city.
func (h *CourierHandler) Zones(c *gin.Context) {
	cityID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "city id must be numeric")
		return
	}
	zones, err := h.pathao.Zones(c.Request.Context(), cityID)
	if err != nil {
		h.HandleCourierError(c, err)
		return
	}
	h.Success(c, zones)
}

// Areas returns the areas of one zone.
func (h *CourierHandler) Areas(c *gin.Context) {
	zoneID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "zone id must be numeric")
		return
	}
	areas, err := h.pathao.Areas(c.Request.Context(), zoneID)
	if err != nil {
		h.HandleCourierError(c, err)
		return
	}
	h.Success(c, areas)
}

// Stores returns the merchant's registered pickup stores.
func (h *CourierHandler) Stores(c *gin.Context) {
	stores, err := h.pathao.Stores(c.Request.Context())
	if err != nil {
		h.HandleCourierError(c, err)
		return
	}
	h.Success(c, stores)
}
