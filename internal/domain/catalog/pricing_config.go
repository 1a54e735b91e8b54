package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fubble/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PriceTier is a contiguous quantity range with its own unit price.
// End == nil means the tier is unbounded (the final tier).
type PriceTier struct {
	Start     decimal.Decimal  `json:"start"`
	End       *decimal.Decimal `json:"end"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
}

// IsUnbounded returns true if the tier has no upper bound
func (t PriceTier) IsUnbounded() bool {
	return t.End == nil
}

// Width returns the quantity span covered by the tier.
// Unbounded tiers have no finite width; ok is false.
func (t PriceTier) Width() (width decimal.Decimal, ok bool) {
	if t.End == nil {
		return decimal.Zero, false
	}
	return t.End.Sub(t.Start), true
}

// Contains returns true if the quantity falls within [start, end)
// For the unbounded tier any quantity >= start matches.
func (t PriceTier) Contains(quantity decimal.Decimal) bool {
	if quantity.LessThan(t.Start) {
		return false
	}
	if t.End == nil {
		return true
	}
	return quantity.LessThan(*t.End)
}

// ThresholdStep charges a fixed price once usage crosses the threshold
type ThresholdStep struct {
	Threshold decimal.Decimal `json:"threshold"`
	Price     decimal.Decimal `json:"price"`
}

// FlatConfig charges a fixed amount independent of quantity
type FlatConfig struct {
	Amount decimal.Decimal `json:"amount"`
}

// SubscriptionConfig charges a fixed recurring amount per billing period
type SubscriptionConfig struct {
	Amount decimal.Decimal `json:"amount"`
}

// TieredConfig splits quantity across tiers; each tier bills at its own rate
type TieredConfig struct {
	Tiers []PriceTier `json:"tiers"`
}

// VolumeConfig bills the entire quantity at the rate of the tier containing it
type VolumeConfig struct {
	Tiers []PriceTier `json:"tiers"`
}

// GraduatedConfig bills the entire quantity at the rate of the highest tier reached
type GraduatedConfig struct {
	Tiers []PriceTier `json:"tiers"`
}

// ThresholdConfig charges a fixed fee for every crossed threshold
type ThresholdConfig struct {
	Thresholds []ThresholdStep `json:"thresholds"`
}

// PackageConfig sells usage in packages; partial packages round up
type PackageConfig struct {
	PackageSize  decimal.Decimal `json:"package_size"`
	PackagePrice decimal.Decimal `json:"package_price"`
}

// TimeBasedConfig bills duration at a rate per time unit.
// Unit is informational (hour, day, ...) and is not converted.
type TimeBasedConfig struct {
	RatePerUnit decimal.Decimal `json:"rate_per_unit"`
	Unit        string          `json:"unit"`
}

// UsageBasedSubscriptionConfig combines a base fee with a per-unit usage price
type UsageBasedSubscriptionConfig struct {
	BaseFee    decimal.Decimal `json:"base_fee"`
	UsagePrice decimal.Decimal `json:"usage_price"`
}

// DynamicConfig computes the unit rate from a restricted arithmetic formula.
// The formula may reference the variables base_rate and quantity.
type DynamicConfig struct {
	BaseRate decimal.Decimal `json:"base_rate"`
	Formula  string          `json:"formula"`
}

// PricingConfig is a tagged union holding exactly one variant payload per
// pricing type. Missing or malformed fields are caught at construction
// instead of deep inside charge evaluation.
type PricingConfig struct {
	Type                   PricingType                   `json:"-"`
	Flat                   *FlatConfig                   `json:"-"`
	Subscription           *SubscriptionConfig           `json:"-"`
	Tiered                 *TieredConfig                 `json:"-"`
	Volume                 *VolumeConfig                 `json:"-"`
	Graduated              *GraduatedConfig              `json:"-"`
	Threshold              *ThresholdConfig              `json:"-"`
	Package                *PackageConfig                `json:"-"`
	TimeBased              *TimeBasedConfig              `json:"-"`
	UsageBasedSubscription *UsageBasedSubscriptionConfig `json:"-"`
	Dynamic                *DynamicConfig                `json:"-"`
}

// NewFlatConfig creates a flat pricing config
func NewFlatConfig(amount decimal.Decimal) PricingConfig {
	return PricingConfig{Type: PricingTypeFlat, Flat: &FlatConfig{Amount: amount}}
}

// NewSubscriptionConfig creates a subscription pricing config
func NewSubscriptionConfig(amount decimal.Decimal) PricingConfig {
	return PricingConfig{Type: PricingTypeSubscription, Subscription: &SubscriptionConfig{Amount: amount}}
}

// NewTieredConfig creates a tiered pricing config
func NewTieredConfig(tiers []PriceTier) (PricingConfig, error) {
	if err := validateTiers(tiers); err != nil {
		return PricingConfig{}, err
	}
	return PricingConfig{Type: PricingTypeTiered, Tiered: &TieredConfig{Tiers: tiers}}, nil
}

// NewVolumeConfig creates a volume pricing config
func NewVolumeConfig(tiers []PriceTier) (PricingConfig, error) {
	if err := validateTiers(tiers); err != nil {
		return PricingConfig{}, err
	}
	return PricingConfig{Type: PricingTypeVolume, Volume: &VolumeConfig{Tiers: tiers}}, nil
}

// NewGraduatedConfig creates a graduated pricing config
func NewGraduatedConfig(tiers []PriceTier) (PricingConfig, error) {
	if err := validateTiers(tiers); err != nil {
		return PricingConfig{}, err
	}
	return PricingConfig{Type: PricingTypeGraduated, Graduated: &GraduatedConfig{Tiers: tiers}}, nil
}

// NewThresholdConfig creates a threshold pricing config
func NewThresholdConfig(steps []ThresholdStep) (PricingConfig, error) {
	if len(steps) == 0 {
		return PricingConfig{}, shared.NewDomainError("INVALID_PRICING_CONFIG", "Threshold pricing requires at least one threshold")
	}
	return PricingConfig{Type: PricingTypeThreshold, Threshold: &ThresholdConfig{Thresholds: steps}}, nil
}

// NewPackageConfig creates a package pricing config
func NewPackageConfig(packageSize, packagePrice decimal.Decimal) (PricingConfig, error) {
	if packageSize.LessThanOrEqual(decimal.Zero) {
		return PricingConfig{}, shared.NewDomainError("INVALID_PRICING_CONFIG", "Package size must be positive")
	}
	return PricingConfig{Type: PricingTypePackage, Package: &PackageConfig{PackageSize: packageSize, PackagePrice: packagePrice}}, nil
}

// NewTimeBasedConfig creates a time-based pricing config
func NewTimeBasedConfig(ratePerUnit decimal.Decimal, unit string) PricingConfig {
	if unit == "" {
		unit = "hour"
	}
	return PricingConfig{Type: PricingTypeTimeBased, TimeBased: &TimeBasedConfig{RatePerUnit: ratePerUnit, Unit: unit}}
}

// NewUsageBasedSubscriptionConfig creates a base-fee-plus-usage pricing config
func NewUsageBasedSubscriptionConfig(baseFee, usagePrice decimal.Decimal) PricingConfig {
	return PricingConfig{
		Type:                   PricingTypeUsageBasedSubscription,
		UsageBasedSubscription: &UsageBasedSubscriptionConfig{BaseFee: baseFee, UsagePrice: usagePrice},
	}
}

// NewDynamicConfig creates a dynamic pricing config
func NewDynamicConfig(baseRate decimal.Decimal, formula string) (PricingConfig, error) {
	if formula == "" {
		return PricingConfig{}, shared.NewDomainError("INVALID_PRICING_CONFIG", "Dynamic pricing requires a formula")
	}
	return PricingConfig{Type: PricingTypeDynamic, Dynamic: &DynamicConfig{BaseRate: baseRate, Formula: formula}}, nil
}

// validateTiers enforces the tier invariants: non-empty, sorted ascending by
// start, contiguous (tier i+1 starts where tier i ends), and only the final
// tier may be unbounded.
func validateTiers(tiers []PriceTier) error {
	if len(tiers) == 0 {
		return shared.NewDomainError("INVALID_PRICING_CONFIG", "Tier pricing requires at least one tier")
	}
	for i := range tiers {
		if tiers[i].End == nil && i != len(tiers)-1 {
			return shared.NewDomainError("INVALID_PRICING_CONFIG", "Only the final tier may be unbounded")
		}
		if tiers[i].End != nil && tiers[i].End.LessThan(tiers[i].Start) {
			return shared.NewDomainError("INVALID_PRICING_CONFIG",
				fmt.Sprintf("Tier %d end %s is below its start %s", i, tiers[i].End, tiers[i].Start))
		}
		if i > 0 {
			prev := tiers[i-1]
			if prev.End == nil || !tiers[i].Start.Equal(*prev.End) {
				return shared.NewDomainError("INVALID_PRICING_CONFIG",
					fmt.Sprintf("Tier %d start %s does not continue the previous tier", i, tiers[i].Start))
			}
		}
	}
	return nil
}

// Validate checks that the config carries the payload its type requires
func (c PricingConfig) Validate() error {
	if !c.Type.IsValid() {
		return shared.NewDomainError("UNSUPPORTED_PRICING_TYPE",
			fmt.Sprintf("Unknown pricing type %q", c.Type))
	}
	switch c.Type {
	case PricingTypeFlat:
		if c.Flat == nil {
			return missingPayload(c.Type)
		}
	case PricingTypeSubscription:
		if c.Subscription == nil {
			return missingPayload(c.Type)
		}
	case PricingTypeTiered:
		if c.Tiered == nil {
			return missingPayload(c.Type)
		}
		return validateTiers(c.Tiered.Tiers)
	case PricingTypeVolume:
		if c.Volume == nil {
			return missingPayload(c.Type)
		}
		return validateTiers(c.Volume.Tiers)
	case PricingTypeGraduated:
		if c.Graduated == nil {
			return missingPayload(c.Type)
		}
		return validateTiers(c.Graduated.Tiers)
	case PricingTypeThreshold:
		if c.Threshold == nil || len(c.Threshold.Thresholds) == 0 {
			return missingPayload(c.Type)
		}
	case PricingTypePackage:
		if c.Package == nil {
			return missingPayload(c.Type)
		}
		if c.Package.PackageSize.LessThanOrEqual(decimal.Zero) {
			return shared.NewDomainError("INVALID_PRICING_CONFIG", "Package size must be positive")
		}
	case PricingTypeTimeBased:
		if c.TimeBased == nil {
			return missingPayload(c.Type)
		}
	case PricingTypeUsageBasedSubscription:
		if c.UsageBasedSubscription == nil {
			return missingPayload(c.Type)
		}
	case PricingTypeDynamic:
		if c.Dynamic == nil || c.Dynamic.Formula == "" {
			return missingPayload(c.Type)
		}
	}
	return nil
}

func missingPayload(t PricingType) error {
	return shared.NewDomainError("INVALID_PRICING_CONFIG",
		fmt.Sprintf("Missing pricing details for type %q", t))
}

// ParsePricingConfig builds a validated config from a pricing type and the
// raw details payload as stored on the wire and in the database.
func ParsePricingConfig(pricingType PricingType, details []byte) (PricingConfig, error) {
	if !pricingType.IsValid() {
		return PricingConfig{}, shared.NewDomainError("UNSUPPORTED_PRICING_TYPE",
			fmt.Sprintf("Unknown pricing type %q", pricingType))
	}
	if len(details) == 0 {
		return PricingConfig{}, missingPayload(pricingType)
	}

	cfg := PricingConfig{Type: pricingType}
	var err error
	switch pricingType {
	case PricingTypeFlat:
		cfg.Flat, err = decodePayload[FlatConfig](details)
	case PricingTypeSubscription:
		cfg.Subscription, err = decodePayload[SubscriptionConfig](details)
	case PricingTypeTiered:
		cfg.Tiered, err = decodePayload[TieredConfig](details)
	case PricingTypeVolume:
		cfg.Volume, err = decodePayload[VolumeConfig](details)
	case PricingTypeGraduated:
		cfg.Graduated, err = decodePayload[GraduatedConfig](details)
	case PricingTypeThreshold:
		cfg.Threshold, err = decodePayload[ThresholdConfig](details)
	case PricingTypePackage:
		cfg.Package, err = decodePayload[PackageConfig](details)
	case PricingTypeTimeBased:
		cfg.TimeBased, err = decodePayload[TimeBasedConfig](details)
	case PricingTypeUsageBasedSubscription:
		cfg.UsageBasedSubscription, err = decodePayload[UsageBasedSubscriptionConfig](details)
	case PricingTypeDynamic:
		cfg.Dynamic, err = decodePayload[DynamicConfig](details)
	}
	if err != nil {
		return PricingConfig{}, shared.NewDomainError("INVALID_PRICING_CONFIG",
			fmt.Sprintf("Malformed pricing details for type %q: %v", pricingType, err))
	}
	if err := cfg.Validate(); err != nil {
		return PricingConfig{}, err
	}
	return cfg, nil
}

func decodePayload[T any](details []byte) (*T, error) {
	var payload T
	if err := json.Unmarshal(details, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Details returns the variant payload serialized as JSON
func (c PricingConfig) Details() ([]byte, error) {
	switch c.Type {
	case PricingTypeFlat:
		return json.Marshal(c.Flat)
	case PricingTypeSubscription:
		return json.Marshal(c.Subscription)
	case PricingTypeTiered:
		return json.Marshal(c.Tiered)
	case PricingTypeVolume:
		return json.Marshal(c.Volume)
	case PricingTypeGraduated:
		return json.Marshal(c.Graduated)
	case PricingTypeThreshold:
		return json.Marshal(c.Threshold)
	case PricingTypePackage:
		return json.Marshal(c.Package)
	case PricingTypeTimeBased:
		return json.Marshal(c.TimeBased)
	case PricingTypeUsageBasedSubscription:
		return json.Marshal(c.UsageBasedSubscription)
	case PricingTypeDynamic:
		return json.Marshal(c.Dynamic)
	}
	return nil, fmt.Errorf("unknown pricing type %q", c.Type)
}

// Value implements driver.Valuer so the payload is stored as JSONB
func (c PricingConfig) Value() (driver.Value, error) {
	details, err := c.Details()
	if err != nil {
		return nil, err
	}
	return string(details), nil
}

// Scan is intentionally unsupported on PricingConfig alone: decoding requires
// the pricing type column, so persistence scans the raw payload and calls
// ParsePricingConfig.
func (c *PricingConfig) Scan(value interface{}) error {
	return errors.New("PricingConfig must be decoded with ParsePricingConfig")
}
