package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"machine_maintenance/internal/scoring"
	"machine_maintenance/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339 or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339 or YYYY-MM-DD"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for scoring one reading.
type predictRequest struct {
	MachineType     string   `json:"machine_type" binding:"required"` // CNC | EDM | Lathe | Grinding
	RunningHours    float64  `json:"running_hours"`
	FeedingRate     float64  `json:"feeding_rate"`
	Temperature     *float64 `json:"temperature,omitempty"` // optional; latest ingested reading used when absent
	Vibration       float64  `json:"vibration"`
	MaintenanceDate string   `json:"maintenance_date"`
}

// PredictRequest is an exported model for Swagger docs of the predict payload.
type PredictRequest struct {
	// Machine type. Allowed: CNC, EDM, Lathe, Grinding
	MachineType string `json:"machine_type" example:"CNC"`
	// Accumulated running hours since last overhaul
	RunningHours float64 `json:"running_hours" example:"5000"`
	// Feed rate in mm/min
	FeedingRate float64 `json:"feeding_rate" example:"1000"`
	// Temperature in °C (optional; latest device reading used when absent)
	Temperature *float64 `json:"temperature,omitempty" example:"60"`
	// Vibration in µm
	Vibration float64 `json:"vibration" example:"50"`
	// Last maintenance date, carried through unmodified
	MaintenanceDate string `json:"maintenance_date" example:"2024-01-01"`
}

// scoringErrorStatus maps engine errors to HTTP status codes. Unknown errors
// fall through to 500.
func scoringErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, scoring.ErrUnknownMachineType),
		errors.Is(err, scoring.ErrMissingTemperature),
		errors.Is(err, scoring.ErrInvalidBand):
		return http.StatusBadRequest, true
	case errors.Is(err, scoring.ErrConfigIncomplete):
		// Bad stored configuration, not a bad request.
		return http.StatusUnprocessableEntity, true
	}
	return 0, false
}

// @Summary      Score a machine reading
// @Description  Runs the risk engine against one snapshot of sensor readings and persists the prediction. Temperature may be omitted when the device has ingested one.
// @Tags         predictions
// @Accept       json
// @Produce      json
// @Param        body  body   PredictRequest  true  "Reading payload"
// @Success      200   {object}  map[string]interface{}  "id, risk_score, condition_level, explanation, alerts, thresholds_used"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/predict [post]
// @Security     BearerAuth
func (h *Handler) predict(c *gin.Context) {
	var req predictRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	ctx := c.Request.Context()
	out, err := h.services.Prediction.Predict(ctx, service.PredictParams{
		MachineType:     req.MachineType,
		RunningHours:    req.RunningHours,
		FeedingRate:     req.FeedingRate,
		Temperature:     req.Temperature,
		Vibration:       req.Vibration,
		MaintenanceDate: req.MaintenanceDate,
	})
	if err != nil {
		if code, ok := scoringErrorStatus(err); ok {
			c.JSON(code, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to score reading", "predict_failed", err,
			"machine_type", req.MachineType)
		return
	}

	p := out.Prediction
	c.JSON(http.StatusOK, gin.H{
		"id":              p.ID,
		"prediction_date": p.PredictionDate,
		"risk_score":      p.RiskScore,
		"condition_level": p.ConditionLevel,
		"explanation":     p.Explanation,
		"alerts":          p.Alerts,
		"thresholds_used": gin.H{
			"sensor_mode":   out.SensorMode,
			"temperature":   out.Thresholds.Temperature,
			"vibration":     out.Thresholds.Vibration,
			"feed_rate":     out.Thresholds.FeedRate,
			"running_hours": out.Thresholds.RunningHours,
		},
	})
}

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      Prediction history
// @Description  Filter by machine type and date range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive. Newest first.
// @Tags         predictions
// @Produce      json
// @Param        machine_type  query  string  false  "Machine type"  Enums(CNC,EDM,Lathe,Grinding)
// @Param        from    query  string  false  "Start of range"  example(2025-08-01)
// @Param        to      query  string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        limit   query  int     false  "Max rows (default 100)"
// @Param        offset  query  int     false  "Rows to skip"
// @Success      200   {object}  map[string]interface{}  "count, predictions"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		from time.Time
		to   time.Time
		err  error
	)
	// Parse 'from' (optional)
	if qs := c.Query("from"); qs != "" {
		from, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	// Parse 'to' (optional). If only a date is provided, make it end-of-day inclusive.
	if qs := c.Query("to"); qs != "" {
		to, err = parseQueryTime(qs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
		return
	}

	limit := 0
	if qs := c.Query("limit"); qs != "" {
		if limit, err = strconv.Atoi(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'limit'"})
			return
		}
	}
	offset := 0
	if qs := c.Query("offset"); qs != "" {
		if offset, err = strconv.Atoi(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'offset'"})
			return
		}
	}

	predictions, err := h.services.History.List(ctx, service.HistoryFilter{
		MachineType: c.Query("machine_type"),
		From:        from,
		To:          to,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		if errors.Is(err, scoring.ErrUnknownMachineType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load history", "history_list_failed", err,
			"from", from, "to", to, "machine_type", c.Query("machine_type"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(predictions),
		"predictions": predictions,
	})
}

func parseQueryTime(s string) (time.Time, error) {
	// Try multiple accepted formats, normalizing to UTC.
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2025-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}
