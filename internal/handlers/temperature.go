package handlers

import (
	"errors"
	"net/http"

	"machine_maintenance/internal/scoring"
	"machine_maintenance/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for device-side temperature ingestion.
type ingestTemperatureRequest struct {
	APIKey      string  `json:"api_key" binding:"required"`
	MachineType string  `json:"machine_type" binding:"required"`
	Temperature float64 `json:"temperature"`
}

// @Summary      Ingest device temperature
// @Description  Called by the sensor device. Authenticates with the configured API key, not a JWT.
// @Tags         temperature
// @Accept       json
// @Produce      json
// @Param        body  body  ingestTemperatureRequest  true  "Ingest payload"
// @Success      200   {object}  map[string]interface{}  "ok, machine_type, temperature, updated_at"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/ingest-temperature [post]
func (h *Handler) ingestTemperature(c *gin.Context) {
	var req ingestTemperatureRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	reading, err := h.services.Temperature.Ingest(ctx, req.APIKey, req.MachineType, req.Temperature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAPIKey):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		case errors.Is(err, scoring.ErrUnknownMachineType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, "failed to store temperature", "temperature_ingest_failed", err,
				"machine_type", req.MachineType)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"machine_type": reading.MachineType,
		"temperature":  reading.Temperature,
		"updated_at":   reading.UpdatedAt,
	})
}

// @Summary      Latest ingested temperature
// @Tags         temperature
// @Produce      json
// @Param        machine_type  query  string  true  "Machine type"  Enums(CNC,EDM,Lathe,Grinding)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/latest-temperature [get]
// @Security     BearerAuth
func (h *Handler) getLatestTemperature(c *gin.Context) {
	machineType := c.Query("machine_type")
	if machineType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'machine_type' query parameter"})
		return
	}

	ctx := c.Request.Context()
	reading, err := h.services.Temperature.Latest(ctx, machineType)
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownMachineType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load temperature", "temperature_latest_failed", err,
			"machine_type", machineType)
		return
	}
	if reading == nil {
		// Nothing ingested yet: explicit nulls rather than a 404 so clients
		// can render "no data" without special-casing.
		c.JSON(http.StatusOK, gin.H{
			"machine_type": machineType,
			"temperature":  nil,
			"updated_at":   nil,
		})
		return
	}

	c.JSON(http.StatusOK, reading)
}
