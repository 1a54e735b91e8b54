package catalog

// PricingType identifies the pricing model used by a price component
type PricingType string

const (
	PricingTypeFlat                   PricingType = "flat"
	PricingTypeTiered                 PricingType = "tiered"
	PricingTypeVolume                 PricingType = "volume"
	PricingTypePackage                PricingType = "package"
	PricingTypeGraduated              PricingType = "graduated"
	PricingTypeThreshold              PricingType = "threshold"
	PricingTypeSubscription           PricingType = "subscription"
	PricingTypeUsageBasedSubscription PricingType = "usage_based_subscription"
	PricingTypeDynamic                PricingType = "dynamic"
	PricingTypeTimeBased              PricingType = "time_based"
)

// String returns the string representation of the pricing type
func (t PricingType) String() string {
	return string(t)
}

// IsValid returns true if the pricing type is a known variant
func (t PricingType) IsValid() bool {
	switch t {
	case PricingTypeFlat, PricingTypeTiered, PricingTypeVolume, PricingTypePackage,
		PricingTypeGraduated, PricingTypeThreshold, PricingTypeSubscription,
		PricingTypeUsageBasedSubscription, PricingTypeDynamic, PricingTypeTimeBased:
		return true
	}
	return false
}

// IsUsageDriven returns true if the charge depends on aggregated usage.
// Flat and subscription components charge a fixed amount per billing period
// regardless of recorded events.
func (t PricingType) IsUsageDriven() bool {
	return t != PricingTypeFlat && t != PricingTypeSubscription
}

// AllPricingTypes returns all known pricing types
func AllPricingTypes() []PricingType {
	return []PricingType{
		PricingTypeFlat,
		PricingTypeTiered,
		PricingTypeVolume,
		PricingTypePackage,
		PricingTypeGraduated,
		PricingTypeThreshold,
		PricingTypeSubscription,
		PricingTypeUsageBasedSubscription,
		PricingTypeDynamic,
		PricingTypeTimeBased,
	}
}
