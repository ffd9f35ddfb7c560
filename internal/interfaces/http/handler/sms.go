package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/shopops/backend/internal/application/messaging"
)

// SMSHandler runs bulk campaigns and manages message templates.
type SMSHandler struct {
	BaseHandler
	sms *messaging.SMSService
}

// NewSMSHandler creates an SMS handler
func NewSMSHandler(sms *messaging.SMSService) *SMSHandler {
	return &SMSHandler{sms: sms}
}

// RegisterRoutes registers SMS routes
func (h *SMSHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sms")
	{
		group.POST("/send", h.Send)
		group.GET("/templates", h.Templates)
		group.PUT("/templates", h.SaveTemplates)
	}
}

type sendRequest struct {
	Phones  []string `json:"phones" binding:"required,min=1,dive,phone"`
	Message string   `json:"message" binding:"required"`
}

// Send delivers the message to every listed phone and reports per-phone
// outcomes. Partial failure is a success response with mixed results.
func (h *SMSHandler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	h.Success(c, h.sms.SendBulk(c.Request.Context(), req.Phones, req.Message))
}

// Templates returns the saved campaign templates.
func (h *SMSHandler) Templates(c *gin.Context) {
	templates, err := h.sms.Templates(c.Request.Context())
	if err != nil {
		h.InternalError(c, "failed to load templates")
		return
	}
	h.Success(c, templates)
}

type templatesRequest struct {
	Templates []messaging.Template `json:"templates" binding:"required"`
}

// SaveTemplates replaces the saved template set.
func (h *SMSHandler) SaveTemplates(c *gin.Context) {
	var req templatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.sms.SaveTemplates(c.Request.Context(), req.Templates); err != nil {
		h.InternalError(c, "failed to save templates")
		return
	}
	h.Success(c, req.Templates)
}
