package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shopops/backend/internal/application/dashboard"
	"github.com/shopops/backend/internal/application/sales"
	"github.com/shopops/backend/internal/application/shipping"
	"github.com/shopops/backend/internal/domain/courier"
	"github.com/shopops/backend/internal/domain/shop"
)

// OrderHandler serves order views, point-of-sale order creation and courier
// consignment booking.
type OrderHandler struct {
	BaseHandler
	engine   *dashboard.ReconcileService
	pos      *sales.POSService
	shipping *shipping.ConsignmentService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(engine *dashboard.ReconcileService, pos *sales.POSService, shipping *shipping.ConsignmentService) *OrderHandler {
	return &OrderHandler{
		engine:   engine,
		pos:      pos,
		shipping: shipping,
	}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/orders")
	{
		group.GET("", h.List)
		group.POST("/pos", h.PlacePOSOrder)
		group.POST("/:id/consignment", h.CreateConsignment)
		group.POST("/:id/tracking/refresh", h.RefreshTracking)
	}
}

// List returns the orders of the latest snapshot.
func (h *OrderHandler) List(c *gin.Context) {
	h.Success(c, h.engine.Snapshot(c.Request.Context()).Orders)
}

type posOrderRequest struct {
	Customer struct {
		Name  string `json:"name" binding:"required"`
		Phone string `json:"phone"`
		Email string `json:"email"`
	} `json:"customer" binding:"required"`
	Address string `json:"address"`
	Items   []struct {
		ID    string          `json:"id"`
		Name  string          `json:"name" binding:"required"`
		Price decimal.Decimal `json:"price"`
		Qty   int             `json:"qty" binding:"required"`
	} `json:"items" binding:"required,min=1,dive"`
	Shipping      decimal.Decimal `json:"shipping"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"paymentMethod"`
}

// PlacePOSOrder records a counter sale.
func (h *OrderHandler) PlacePOSOrder(c *gin.Context) {
	var req posOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	items := make([]shop.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, shop.LineItem{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
			Qty:   item.Qty,
		})
	}

	order, err := h.pos.PlaceOrder(c.Request.Context(), sales.PlaceOrderInput{
		Customer: shop.CustomerSnapshot{
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
			Email: req.Customer.Email,
		},
		Address:       req.Address,
		Items:         items,
		Shipping:      req.Shipping,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, shop.ErrEmptyOrder) || errors.Is(err, shop.ErrInvalidLineItem) {
			h.BadRequest(c, err.Error())
			return
		}
		h.InternalError(c, "failed to place order")
		return
	}
	h.Created(c, order)
}

type consignmentRequest struct {
	Provider         string          `json:"provider" binding:"required"`
	RecipientName    string          `json:"recipientName" binding:"required"`
	RecipientPhone   string          `json:"recipientPhone" binding:"required"`
	RecipientAddress string          `json:"recipientAddress" binding:"required"`
	CodAmount        decimal.Decimal `json:"codAmount"`
	ItemDescription  string          `json:"itemDescription"`
	Quantity         int             `json:"quantity"`

	CityID  int `json:"cityId"`
	ZoneID  int `json:"zoneId"`
	AreaID  int `json:"areaId"`
	StoreID int `json:"storeId"`
}

// CreateConsignment books a shipment for an order with the chosen provider.
func (h *OrderHandler) CreateConsignment(c *gin.Context) {
	orderID := c.Param("id")

	var req consignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	consignment, err := h.shipping.Create(c.Request.Context(), req.Provider, courier.ConsignmentRequest{
		OrderID:          orderID,
		RecipientName:    req.RecipientName,
		RecipientPhone:   req.RecipientPhone,
		RecipientAddress: req.RecipientAddress,
		CodAmount:        req.CodAmount,
		ItemDescription:  req.ItemDescription,
		Quantity:         req.Quantity,
		CityID:           req.CityID,
		ZoneID:           req.ZoneID,
		AreaID:           req.AreaID,
		StoreID:          req.StoreID,
	})
	if err != nil {
		h.HandleCourierError(c, err)
		return
	}
	h.Created(c, consignment)
}

// RefreshTracking polls the courier for an order's current delivery status.
func (h *OrderHandler) RefreshTracking(c *gin.Context) {
	annotation, err := h.shipping.RefreshStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, shop.ErrInvalidConsignment) {
			h.NotFound(c, "order has no consignment")
			return
		}
		h.HandleCourierError(c, err)
		return
	}
	h.Success(c, annotation)
}
