package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/shopops/backend/internal/domain/shared"
	"github.com/shopops/backend/internal/domain/shop"
	"github.com/shopops/backend/internal/infrastructure/commerce"
	courierinfra "github.com/shopops/backend/internal/infrastructure/courier"
	"github.com/shopops/backend/internal/infrastructure/insight"
	"github.com/shopops/backend/internal/infrastructure/sms"
)

// editableKeys lists the settings keys exposed over the API. Internal keys
// such as the cached courier token are not editable.
var editableKeys = map[string]bool{
	commerce.ConfigKey:              true,
	courierinfra.SteadfastConfigKey: true,
	courierinfra.PathaoConfigKey:    true,
	sms.ConfigKey:                   true,
	insight.ConfigKey:               true,
}

// SettingsHandler reads and writes integration configuration blobs.
type SettingsHandler struct {
	BaseHandler
	settings shared.SettingsStore
	commerce shop.CommerceSource
}

// NewSettingsHandler creates a settings handler
func NewSettingsHandler(settings shared.SettingsStore, commerceSource shop.CommerceSource) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
		commerce: commerceSource,
	}
}

// RegisterRoutes registers settings routes
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/settings")
	{
		group.GET("/:key", h.Get)
		group.PUT("/:key", h.Put)
	}
}

// Get returns one configuration blob, or null when it was never saved.
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if !editableKeys[key] {
		h.NotFound(c, "unknown settings key")
		return
	}

	raw, err := h.settings.Get(c.Request.Context(), key)
	if err != nil {
		h.InternalError(c, "failed to load settings")
		return
	}
	if len(raw) == 0 {
		h.Success(c, nil)
		return
	}
	h.Success(c, shared.DecodeMaybeDoubleEncoded(raw))
}

// Put replaces one configuration blob. Saving the commerce configuration
// invalidates the adapter's cached copy so the next fetch uses the new
// credentials.
func (h *SettingsHandler) Put(c *gin.Context) {
	key := c.Param("key")
	if !editableKeys[key] {
		h.NotFound(c, "unknown settings key")
		return
	}

	var value json.RawMessage
	if err := c.ShouldBindJSON(&value); err != nil {
		h.BadRequest(c, "value must be valid JSON")
		return
	}

	if err := h.settings.Set(c.Request.Context(), key, value); err != nil {
		h.InternalError(c, "failed to save settings")
		return
	}

	if key == commerce.ConfigKey {
		h.commerce.Invalidate()
	}
	h.Success(c, value)
}
