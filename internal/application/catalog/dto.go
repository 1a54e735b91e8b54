package catalog

import (
	"encoding/json"
	"time"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CreateComponentRequest carries one price component definition. The pricing
// details payload is the variant-specific JSON for the pricing type.
type CreateComponentRequest struct {
	MetricName     string          `json:"metric_name"`
	DisplayName    string          `json:"display_name"`
	PricingType    string          `json:"pricing_type" binding:"required"`
	PricingDetails json.RawMessage `json:"pricing_details" binding:"required"`
}

// CreatePlanRequest creates a plan with its components
type CreatePlanRequest struct {
	Name             string                   `json:"name" binding:"required"`
	Description      string                   `json:"description"`
	BillingFrequency string                   `json:"billing_frequency" binding:"required"`
	Components       []CreateComponentRequest `json:"components"`
}

// ComponentResponse is the API representation of a price component
type ComponentResponse struct {
	ID             uuid.UUID       `json:"id"`
	MetricName     string          `json:"metric_name"`
	DisplayName    string          `json:"display_name"`
	PricingType    string          `json:"pricing_type"`
	PricingDetails json.RawMessage `json:"pricing_details"`
	SortOrder      int             `json:"sort_order"`
}

// PlanResponse is the API representation of a plan
type PlanResponse struct {
	ID               uuid.UUID           `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description,omitempty"`
	BillingFrequency string              `json:"billing_frequency"`
	IsActive         bool                `json:"is_active"`
	Components       []ComponentResponse `json:"components"`
	CreatedAt        time.Time           `json:"created_at"`
}

// ToPlanResponse converts a plan to its API representation
func ToPlanResponse(plan *catalog.Plan) *PlanResponse {
	components := make([]ComponentResponse, 0, len(plan.PriceComponents))
	for _, component := range plan.PriceComponents {
		details, _ := component.Pricing.Details()
		components = append(components, ComponentResponse{
			ID:             component.ID,
			MetricName:     component.MetricName,
			DisplayName:    component.DisplayName,
			PricingType:    component.Pricing.Type.String(),
			PricingDetails: details,
			SortOrder:      component.SortOrder,
		})
	}
	return &PlanResponse{
		ID:               plan.ID,
		Name:             plan.Name,
		Description:      plan.Description,
		BillingFrequency: plan.Frequency.String(),
		IsActive:         plan.IsActive,
		Components:       components,
		CreatedAt:        plan.CreatedAt,
	}
}
