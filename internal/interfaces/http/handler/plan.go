package handler

import (
	catalogapp "github.com/fubble/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// PlanHandler handles pricing plan API endpoints
type PlanHandler struct {
	BaseHandler
	planService *catalogapp.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *catalogapp.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// RegisterRoutes registers plan routes
func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	{
		plans.POST("", h.Create)
		plans.GET("", h.ListActive)
		plans.GET("/:id", h.GetByID)
		plans.POST("/:id/deactivate", h.Deactivate)
	}
}

// Create creates a plan with its price components
func (h *PlanHandler) Create(c *gin.Context) {
	var req catalogapp.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, plan)
}

// GetByID retrieves a plan by ID
func (h *PlanHandler) GetByID(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.planService.Get(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, plan)
}

// ListActive retrieves all active plans
func (h *PlanHandler) ListActive(c *gin.Context) {
	plans, err := h.planService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, plans)
}

// Deactivate marks a plan as unavailable for new subscriptions
func (h *PlanHandler) Deactivate(c *gin.Context) {
	planID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid plan ID")
		return
	}

	plan, err := h.planService.Deactivate(c.Request.Context(), planID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, plan)
}
