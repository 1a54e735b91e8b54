package persistence

import (
	"context"
	"errors"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/fubble/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormUsageEventRepository implements UsageEventRepository using GORM
type GormUsageEventRepository struct {
	db *gorm.DB
}

// NewGormUsageEventRepository creates a new GormUsageEventRepository
func NewGormUsageEventRepository(db *gorm.DB) *GormUsageEventRepository {
	return &GormUsageEventRepository{db: db}
}

// Save persists a new usage event
func (r *GormUsageEventRepository) Save(ctx context.Context, event *billing.UsageEvent) error {
	model := models.UsageEventModelFromDomain(event)
	return r.db.WithContext(ctx).Create(model).Error
}

// SaveBatch persists multiple usage events in a single transaction
func (r *GormUsageEventRepository) SaveBatch(ctx context.Context, events []*billing.UsageEvent) error {
	if len(events) == 0 {
		return nil
	}
	eventModels := make([]*models.UsageEventModel, len(events))
	for i, event := range events {
		eventModels[i] = models.UsageEventModelFromDomain(event)
	}
	return r.db.WithContext(ctx).CreateInBatches(eventModels, 100).Error
}

// FindByID retrieves a usage event by its ID
func (r *GormUsageEventRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.UsageEvent, error) {
	var model models.UsageEventModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer retrieves matching events ordered by event time ascending
func (r *GormUsageEventRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter billing.UsageEventFilter) ([]*billing.UsageEvent, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Where("customer_id = ?", customerID), filter)

	var eventModels []models.UsageEventModel
	if err := query.Order("event_time ASC").Find(&eventModels).Error; err != nil {
		return nil, err
	}

	events := make([]*billing.UsageEvent, len(eventModels))
	for i := range eventModels {
		events[i] = eventModels[i].ToDomain()
	}
	return events, nil
}

// SumByMetric aggregates matching event quantities grouped by metric name.
// Negative quantities participate in the sum, so corrections recorded as
// negative events net out against the usage they offset.
func (r *GormUsageEventRepository) SumByMetric(ctx context.Context, customerID uuid.UUID, filter billing.UsageEventFilter) (billing.UsageTotals, error) {
	query := r.applyFilter(r.db.WithContext(ctx).
		Model(&models.UsageEventModel{}).
		Where("customer_id = ?", customerID), filter)

	var rows []struct {
		MetricName string
		Total      decimal.Decimal
	}
	if err := query.
		Select("metric_name, SUM(quantity) as total").
		Group("metric_name").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(billing.UsageTotals, len(rows))
	for _, row := range rows {
		totals[row.MetricName] = row.Total
	}
	return totals, nil
}

// applyFilter applies the usage event filter to a query. Both ends of the
// time range are inclusive.
func (r *GormUsageEventRepository) applyFilter(query *gorm.DB, filter billing.UsageEventFilter) *gorm.DB {
	if filter.StartTime != nil {
		query = query.Where("event_time >= ?", *filter.StartTime)
	}
	if filter.EndTime != nil {
		query = query.Where("event_time <= ?", *filter.EndTime)
	}
	if filter.MetricName != "" {
		query = query.Where("metric_name = ?", filter.MetricName)
	}
	return query
}
