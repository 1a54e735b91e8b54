package pricing

import (
	"fmt"
	"strings"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// PackageStrategy sells usage in fixed-size packages; partial packages round
// up to a full package
type PackageStrategy struct{}

// Type returns the pricing type this strategy handles
func (PackageStrategy) Type() catalog.PricingType {
	return catalog.PricingTypePackage
}

// Evaluate charges ceil(quantity / package_size) packages
func (PackageStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	cfg := component.Pricing.Package

	numPackages := quantity.Div(cfg.PackageSize).Ceil()
	total := numPackages.Mul(cfg.PackagePrice)

	description := fmt.Sprintf("Package pricing for %s: %s packages of %s units @ $%s/package",
		component.DisplayName, numPackages, cfg.PackageSize, cfg.PackagePrice)
	unitPrice := effectiveUnitPrice(total, quantity, decimal.Zero)
	return singleItem(description, component.MetricName, &quantity, unitPrice, total), nil
}

// ThresholdStrategy charges a fixed fee for every threshold the quantity has crossed
type ThresholdStrategy struct{}

// Type returns the pricing type this strategy handles
func (ThresholdStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeThreshold
}

// Evaluate sums the fees of all crossed thresholds
func (ThresholdStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	steps := component.Pricing.Threshold.Thresholds

	total := decimal.Zero
	crossed := make([]string, 0, len(steps))
	for _, step := range steps {
		if quantity.GreaterThanOrEqual(step.Threshold) {
			total = total.Add(step.Price)
			crossed = append(crossed, fmt.Sprintf("Threshold %s crossed: $%s", step.Threshold, step.Price))
		}
	}

	description := fmt.Sprintf("Threshold pricing for %s: %s", component.DisplayName, strings.Join(crossed, ", "))
	unitPrice := effectiveUnitPrice(total, quantity, decimal.Zero)
	return singleItem(description, component.MetricName, &quantity, unitPrice, total), nil
}

// TimeBasedStrategy bills duration at a flat rate per time unit. The unit is
// informational only; no conversion happens here.
type TimeBasedStrategy struct{}

// Type returns the pricing type this strategy handles
func (TimeBasedStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeTimeBased
}

// Evaluate charges rate_per_unit for every recorded unit of duration
func (TimeBasedStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	cfg := component.Pricing.TimeBased

	total := quantity.Mul(cfg.RatePerUnit)
	description := fmt.Sprintf("Time-based pricing for %s: %s %ss @ $%s/%s",
		component.DisplayName, quantity, cfg.Unit, cfg.RatePerUnit, cfg.Unit)
	return singleItem(description, component.MetricName, &quantity, cfg.RatePerUnit, total), nil
}

// UsageBasedSubscriptionStrategy combines a recurring base fee with per-unit
// usage charges; the base fee applies even at zero usage
type UsageBasedSubscriptionStrategy struct{}

// Type returns the pricing type this strategy handles
func (UsageBasedSubscriptionStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeUsageBasedSubscription
}

// Evaluate charges base_fee + usage_price * quantity
func (UsageBasedSubscriptionStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	cfg := component.Pricing.UsageBasedSubscription

	usageCharge := quantity.Mul(cfg.UsagePrice)
	total := cfg.BaseFee.Add(usageCharge)

	description := fmt.Sprintf("Usage-based subscription for %s: $%s base + %s units @ $%s/unit = $%s",
		component.DisplayName, cfg.BaseFee, quantity, cfg.UsagePrice, total)
	unitPrice := effectiveUnitPrice(total, quantity, cfg.BaseFee)
	return singleItem(description, component.MetricName, &quantity, unitPrice, total), nil
}
