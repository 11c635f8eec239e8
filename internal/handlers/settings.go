package handlers

import (
	"net/http"

	"machine_maintenance/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Current configuration
// @Description  Returns sensor mode, the full threshold table and the device API key. Initializes built-in defaults on first call.
// @Tags         config
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/config [get]
// @Security     BearerAuth
func (h *Handler) getConfig(c *gin.Context) {
	ctx := c.Request.Context()
	cfg, err := h.services.Settings.Get(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load configuration", "config_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary      Update configuration
// @Description  Manager-only. Threshold bands are validated (0 < green < yellow < red) before persisting; an empty api_key keeps the current one.
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        body  body  models.Settings  true  "New configuration"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/config [post]
// @Security     BearerAuth
func (h *Handler) updateConfig(c *gin.Context) {
	if ok := h.requireManager(c); !ok {
		return
	}

	var cfg models.Settings
	if ok := h.bindJSONOrBadRequest(c, &cfg); !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.services.Settings.Update(ctx, cfg); err != nil {
		// Invalid bands, unknown sensor modes and the like are caller mistakes.
		if h.log != nil {
			h.log.Infow("config_update_rejected", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"message": "Configuration updated successfully",
	})
}
