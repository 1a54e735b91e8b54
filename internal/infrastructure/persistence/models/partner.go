package models

import (
	"github.com/fubble/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	AggregateModel
	Name            string                 `gorm:"type:varchar(200);not null"`
	Email           string                 `gorm:"type:varchar(255);not null;uniqueIndex"`
	Company         string                 `gorm:"type:varchar(200)"`
	BillingAddress  string                 `gorm:"type:text"`
	PaymentMethodID string                 `gorm:"type:varchar(100)"`
	Status          partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Email:             m.Email,
		Company:           m.Company,
		BillingAddress:    m.BillingAddress,
		PaymentMethodID:   m.PaymentMethodID,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Email = c.Email
	m.Company = c.Company
	m.BillingAddress = c.BillingAddress
	m.PaymentMethodID = c.PaymentMethodID
	m.Status = c.Status
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
