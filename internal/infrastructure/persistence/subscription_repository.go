package persistence

import (
	"context"
	"errors"

	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/fubble/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements SubscriptionRepository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Save persists a subscription, inserting or updating by primary key
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *billing.Subscription) error {
	model := models.SubscriptionModelFromDomain(sub)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID retrieves a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer retrieves all subscriptions for a customer
func (r *GormSubscriptionRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*billing.Subscription, error) {
	var subModels []models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date ASC").
		Find(&subModels).Error; err != nil {
		return nil, err
	}
	return toSubscriptions(subModels), nil
}

// FindOverlapping retrieves the customer's subscriptions whose active
// interval intersects the period. The subscription interval is half-open,
// [start_date, end_date), while the period is inclusive on both ends.
func (r *GormSubscriptionRepository) FindOverlapping(ctx context.Context, customerID uuid.UUID, period billing.Period) ([]*billing.Subscription, error) {
	var subModels []models.SubscriptionModel
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Where("start_date <= ?", period.End).
		Where("(end_date IS NULL OR end_date > ?)", period.Start).
		Order("start_date ASC").
		Find(&subModels).Error; err != nil {
		return nil, err
	}
	return toSubscriptions(subModels), nil
}

// CustomerIDsWithSubscriptions lists the distinct customers holding at
// least one subscription overlapping the period
func (r *GormSubscriptionRepository) CustomerIDsWithSubscriptions(ctx context.Context, period billing.Period) ([]uuid.UUID, error) {
	var customerIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.SubscriptionModel{}).
		Where("start_date <= ?", period.End).
		Where("(end_date IS NULL OR end_date > ?)", period.Start).
		Distinct("customer_id").
		Pluck("customer_id", &customerIDs).Error; err != nil {
		return nil, err
	}
	return customerIDs, nil
}

func toSubscriptions(subModels []models.SubscriptionModel) []*billing.Subscription {
	subs := make([]*billing.Subscription, len(subModels))
	for i := range subModels {
		subs[i] = subModels[i].ToDomain()
	}
	return subs
}
