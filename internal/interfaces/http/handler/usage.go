package handler

import (
	"time"

	billingapp "github.com/fubble/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// UsageHandler handles usage event ingestion and summary API endpoints
type UsageHandler struct {
	BaseHandler
	usageService *billingapp.UsageService
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *billingapp.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// RegisterRoutes registers usage routes
func (h *UsageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	events := rg.Group("/events")
	{
		events.POST("", h.RecordEvent)
		events.POST("/batch", h.RecordBatch)
	}

	customers := rg.Group("/customers")
	{
		customers.GET("/:id/events", h.ListEvents)
		customers.GET("/:id/usage", h.GetSummary)
	}
}

// RecordEvent ingests a single usage event
func (h *UsageHandler) RecordEvent(c *gin.Context) {
	var req billingapp.RecordUsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	event, err := h.usageService.RecordUsage(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, event)
}

// RecordBatch ingests multiple usage events in one request
func (h *UsageHandler) RecordBatch(c *gin.Context) {
	var reqs []billingapp.RecordUsageRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if len(reqs) == 0 {
		h.BadRequest(c, "Batch cannot be empty")
		return
	}

	events, err := h.usageService.RecordUsageBatch(c.Request.Context(), reqs)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, events)
}

// ListEvents retrieves a customer's usage events, optionally filtered by
// time range and metric
func (h *UsageHandler) ListEvents(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	start, end, ok := h.parseWindow(c)
	if !ok {
		return
	}

	events, err := h.usageService.ListEvents(c.Request.Context(), customerID, start, end, c.Query("metric"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, events)
}

// GetSummary retrieves aggregated usage per metric for a customer and window
func (h *UsageHandler) GetSummary(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	start, end, ok := h.parseWindow(c)
	if !ok {
		return
	}

	totals, err := h.usageService.GetUsageSummary(c.Request.Context(), customerID, start, end, c.Query("metric"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, totals)
}

// parseWindow parses optional RFC3339 start/end query parameters. A parse
// failure writes the error response and returns ok=false.
func (h *UsageHandler) parseWindow(c *gin.Context) (start, end time.Time, ok bool) {
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "start must be an RFC3339 timestamp")
			return start, end, false
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.BadRequest(c, "end must be an RFC3339 timestamp")
			return start, end, false
		}
		end = parsed
	}
	return start, end, true
}
