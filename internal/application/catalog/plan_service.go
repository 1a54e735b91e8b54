package catalog

import (
	"context"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanService handles pricing plan management
type PlanService struct {
	planRepo catalog.PlanRepository
	logger   *zap.Logger
}

// NewPlanService creates a new PlanService
func NewPlanService(planRepo catalog.PlanRepository, logger *zap.Logger) *PlanService {
	return &PlanService{planRepo: planRepo, logger: logger}
}

// Create creates a plan with its price components. Component pricing configs
// are validated at construction; a malformed config rejects the whole plan.
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	plan, err := catalog.NewPlan(req.Name, req.Description, catalog.BillingFrequency(req.BillingFrequency))
	if err != nil {
		return nil, err
	}

	for _, componentReq := range req.Components {
		pricing, err := catalog.ParsePricingConfig(catalog.PricingType(componentReq.PricingType), componentReq.PricingDetails)
		if err != nil {
			return nil, err
		}
		if _, err := plan.AddComponent(componentReq.MetricName, componentReq.DisplayName, pricing); err != nil {
			return nil, err
		}
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	s.logger.Info("created plan",
		zap.String("plan_id", plan.ID.String()),
		zap.String("name", plan.Name),
		zap.Int("components", len(plan.PriceComponents)))
	return ToPlanResponse(plan), nil
}

// Get retrieves a plan with its components
func (s *PlanService) Get(ctx context.Context, planID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	return ToPlanResponse(plan), nil
}

// ListActive retrieves all active plans
func (s *PlanService) ListActive(ctx context.Context) ([]*PlanResponse, error) {
	plans, err := s.planRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*PlanResponse, 0, len(plans))
	for _, plan := range plans {
		responses = append(responses, ToPlanResponse(plan))
	}
	return responses, nil
}

// Deactivate marks a plan as unavailable for new subscriptions
func (s *PlanService) Deactivate(ctx context.Context, planID uuid.UUID) (*PlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	plan.Deactivate()
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return nil, err
	}
	return ToPlanResponse(plan), nil
}
