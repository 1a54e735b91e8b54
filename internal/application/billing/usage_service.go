package billing

import (
	"context"
	"time"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/partner"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UsageSummaryCache caches aggregated usage summaries per customer and window.
// Implementations are expected to miss silently; a cache failure must never
// fail a summary read.
type UsageSummaryCache interface {
	// Get retrieves a cached summary, ok is false on a miss
	Get(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string) (billing.UsageTotals, bool)

	// Set caches a summary with a TTL
	Set(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string, totals billing.UsageTotals, ttl time.Duration)

	// Invalidate drops all cached summaries for a customer
	Invalidate(ctx context.Context, customerID uuid.UUID)
}

// UsageService handles usage event ingestion and summary queries
type UsageService struct {
	usageEventRepo billing.UsageEventRepository
	customerRepo   partner.CustomerRepository
	cache          UsageSummaryCache
	summaryTTL     time.Duration
	logger         *zap.Logger
}

// NewUsageService creates a new UsageService. The cache may be nil, in which
// case every summary read hits the repository.
func NewUsageService(
	usageEventRepo billing.UsageEventRepository,
	customerRepo partner.CustomerRepository,
	cache UsageSummaryCache,
	summaryTTL time.Duration,
	logger *zap.Logger,
) *UsageService {
	if summaryTTL <= 0 {
		summaryTTL = 5 * time.Minute
	}
	return &UsageService{
		usageEventRepo: usageEventRepo,
		customerRepo:   customerRepo,
		cache:          cache,
		summaryTTL:     summaryTTL,
		logger:         logger,
	}
}

// RecordUsage records a single usage event
func (s *UsageService) RecordUsage(ctx context.Context, req RecordUsageRequest) (*UsageEventResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	event, err := billing.NewUsageEvent(req.CustomerID, req.MetricName, req.Quantity, req.EventTime)
	if err != nil {
		return nil, err
	}
	for key, value := range req.Properties {
		event.WithProperty(key, value)
	}

	if err := s.usageEventRepo.Save(ctx, event); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, req.CustomerID)
	}

	s.logger.Debug("recorded usage event",
		zap.String("customer_id", req.CustomerID.String()),
		zap.String("metric", req.MetricName),
		zap.String("quantity", req.Quantity.String()))
	return ToUsageEventResponse(event), nil
}

// RecordUsageBatch records multiple usage events in one transaction
func (s *UsageService) RecordUsageBatch(ctx context.Context, reqs []RecordUsageRequest) ([]*UsageEventResponse, error) {
	events := make([]*billing.UsageEvent, 0, len(reqs))
	customers := make(map[uuid.UUID]struct{})
	for _, req := range reqs {
		if _, seen := customers[req.CustomerID]; !seen {
			if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
				return nil, err
			}
			customers[req.CustomerID] = struct{}{}
		}
		event, err := billing.NewUsageEvent(req.CustomerID, req.MetricName, req.Quantity, req.EventTime)
		if err != nil {
			return nil, err
		}
		for key, value := range req.Properties {
			event.WithProperty(key, value)
		}
		events = append(events, event)
	}

	if err := s.usageEventRepo.SaveBatch(ctx, events); err != nil {
		return nil, err
	}
	if s.cache != nil {
		for customerID := range customers {
			s.cache.Invalidate(ctx, customerID)
		}
	}

	responses := make([]*UsageEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, ToUsageEventResponse(event))
	}
	return responses, nil
}

// GetUsageSummary returns per-metric summed quantities for the customer over
// the window. An empty window yields an empty summary, not an error.
func (s *UsageService) GetUsageSummary(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string) (billing.UsageTotals, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if totals, ok := s.cache.Get(ctx, customerID, start, end, metricName); ok {
			return totals, nil
		}
	}

	totals, err := s.usageEventRepo.SumByMetric(ctx, customerID, windowFilter(start, end, metricName))
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, customerID, start, end, metricName, totals, s.summaryTTL)
	}
	return totals, nil
}

// ListEvents returns the raw matching events ordered by event time ascending
func (s *UsageService) ListEvents(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string) ([]*UsageEventResponse, error) {
	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	events, err := s.usageEventRepo.FindByCustomer(ctx, customerID, windowFilter(start, end, metricName))
	if err != nil {
		return nil, err
	}

	responses := make([]*UsageEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, ToUsageEventResponse(event))
	}
	return responses, nil
}

// windowFilter builds an event filter from optional bounds; zero times leave
// the corresponding end of the range open.
func windowFilter(start, end time.Time, metricName string) billing.UsageEventFilter {
	filter := billing.UsageEventFilter{MetricName: metricName}
	if !start.IsZero() {
		filter.StartTime = &start
	}
	if !end.IsZero() {
		filter.EndTime = &end
	}
	return filter
}
