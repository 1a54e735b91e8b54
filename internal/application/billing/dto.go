package billing

import (
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordUsageRequest carries one usage event to be recorded
type RecordUsageRequest struct {
	CustomerID uuid.UUID       `json:"customer_id"`
	MetricName string          `json:"metric_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	EventTime  time.Time       `json:"event_time"`
	Properties map[string]any  `json:"properties,omitempty"`
}

// UsageEventResponse is the API representation of a usage event
type UsageEventResponse struct {
	ID         uuid.UUID       `json:"id"`
	CustomerID uuid.UUID       `json:"customer_id"`
	MetricName string          `json:"metric_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	EventTime  time.Time       `json:"event_time"`
	Properties map[string]any  `json:"properties,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToUsageEventResponse converts a usage event to its API representation
func ToUsageEventResponse(event *billing.UsageEvent) *UsageEventResponse {
	return &UsageEventResponse{
		ID:         event.ID,
		CustomerID: event.CustomerID,
		MetricName: event.MetricName,
		Quantity:   event.Quantity,
		EventTime:  event.EventTime,
		Properties: event.Properties,
		CreatedAt:  event.CreatedAt,
	}
}
