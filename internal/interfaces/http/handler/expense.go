package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/shopops/backend/internal/domain/shop"
)

// ExpenseHandler lists and records business expenses.
type ExpenseHandler struct {
	BaseHandler
	expenses shop.ExpenseSource
}

// NewExpenseHandler creates an expense handler
func NewExpenseHandler(expenses shop.ExpenseSource) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// RegisterRoutes registers expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/expenses")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
	}
}

// List returns all recorded expenses.
func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.expenses.List(c.Request.Context())
	if err != nil {
		h.InternalError(c, "failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []shop.Expense{}
	}
	h.Success(c, expenses)
}

type expenseRequest struct {
	Title     string          `json:"title" binding:"required"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Timestamp int64           `json:"timestamp"`
}

// Create records one expense.
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.Amount.IsNegative() {
		h.BadRequest(c, "amount must not be negative")
		return
	}

	expense := shop.Expense{
		Title:     req.Title,
		Category:  req.Category,
		Amount:    req.Amount,
		Timestamp: req.Timestamp,
	}
	if err := h.expenses.Save(c.Request.Context(), expense); err != nil {
		h.InternalError(c, "failed to record expense")
		return
	}
	h.Created(c, expense)
}
