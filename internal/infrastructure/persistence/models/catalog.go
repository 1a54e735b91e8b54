package models

import (
	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// PlanModel is the persistence model for the Plan aggregate.
type PlanModel struct {
	AggregateModel
	Name        string                   `gorm:"type:varchar(200);not null"`
	Description string                   `gorm:"type:text"`
	Frequency   catalog.BillingFrequency `gorm:"type:varchar(20);not null;default:'monthly'"`
	IsActive    bool                     `gorm:"not null;default:true"`
	Components  []PriceComponentModel    `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// PriceComponentModel is the persistence model for a plan's price component.
// The pricing configuration is stored as its type discriminator plus the
// variant-specific JSON payload.
type PriceComponentModel struct {
	BaseModel
	PlanID         uuid.UUID `gorm:"type:uuid;not null;index"`
	MetricName     string    `gorm:"type:varchar(100)"`
	DisplayName    string    `gorm:"type:varchar(200);not null"`
	PricingType    string    `gorm:"type:varchar(50);not null"`
	PricingDetails []byte    `gorm:"type:jsonb;not null"`
	SortOrder      int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PriceComponentModel) TableName() string {
	return "price_components"
}

// ToDomain converts the persistence model to a domain PriceComponent.
// The stored pricing payload is re-validated on the way out, so a row
// corrupted outside the application surfaces as an error here.
func (m *PriceComponentModel) ToDomain() (*catalog.PriceComponent, error) {
	pricing, err := catalog.ParsePricingConfig(catalog.PricingType(m.PricingType), m.PricingDetails)
	if err != nil {
		return nil, err
	}
	return &catalog.PriceComponent{
		BaseEntity:  m.BaseModel.ToDomain(),
		PlanID:      m.PlanID,
		MetricName:  m.MetricName,
		DisplayName: m.DisplayName,
		Pricing:     pricing,
		SortOrder:   m.SortOrder,
	}, nil
}

// FromDomain populates the persistence model from a domain PriceComponent.
func (m *PriceComponentModel) FromDomain(c *catalog.PriceComponent) error {
	details, err := c.Pricing.Details()
	if err != nil {
		return err
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	m.PlanID = c.PlanID
	m.MetricName = c.MetricName
	m.DisplayName = c.DisplayName
	m.PricingType = c.Pricing.Type.String()
	m.PricingDetails = details
	m.SortOrder = c.SortOrder
	return nil
}

// ToDomain converts the persistence model to a domain Plan aggregate with
// its components ordered by sort order.
func (m *PlanModel) ToDomain() (*catalog.Plan, error) {
	components := make([]*catalog.PriceComponent, 0, len(m.Components))
	for i := range m.Components {
		component, err := m.Components[i].ToDomain()
		if err != nil {
			return nil, err
		}
		components = append(components, component)
	}
	return &catalog.Plan{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Description:       m.Description,
		Frequency:         m.Frequency,
		IsActive:          m.IsActive,
		PriceComponents:   components,
	}, nil
}

// FromDomain populates the persistence model from a domain Plan aggregate.
func (m *PlanModel) FromDomain(p *catalog.Plan) error {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Description = p.Description
	m.Frequency = p.Frequency
	m.IsActive = p.IsActive
	m.Components = make([]PriceComponentModel, len(p.PriceComponents))
	for i, component := range p.PriceComponents {
		if err := m.Components[i].FromDomain(component); err != nil {
			return err
		}
	}
	return nil
}

// PlanModelFromDomain creates a new persistence model from a domain Plan aggregate.
func PlanModelFromDomain(p *catalog.Plan) (*PlanModel, error) {
	m := &PlanModel{}
	if err := m.FromDomain(p); err != nil {
		return nil, err
	}
	return m, nil
}
