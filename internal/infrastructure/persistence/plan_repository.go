package persistence

import (
	"context"
	"errors"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/fubble/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlanRepository implements PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save persists a plan together with its price components. Existing
// components are replaced so the stored set always mirrors the aggregate.
func (r *GormPlanRepository) Save(ctx context.Context, plan *catalog.Plan) error {
	model, err := models.PlanModelFromDomain(plan)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		components := model.Components
		model.Components = nil

		if err := tx.Save(model).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", model.ID).
			Delete(&models.PriceComponentModel{}).Error; err != nil {
			return err
		}
		if len(components) == 0 {
			return nil
		}
		return tx.Create(&components).Error
	})
}

// FindByID retrieves a plan with its components ordered by sort order
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrPlanNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindActive retrieves all active plans
func (r *GormPlanRepository) FindActive(ctx context.Context) ([]*catalog.Plan, error) {
	var planModels []models.PlanModel
	if err := r.db.WithContext(ctx).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&planModels).Error; err != nil {
		return nil, err
	}

	plans := make([]*catalog.Plan, 0, len(planModels))
	for i := range planModels {
		plan, err := planModels[i].ToDomain()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Delete removes a plan and its components
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", id).
			Delete(&models.PriceComponentModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.PlanModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrPlanNotFound
		}
		return nil
	})
}
