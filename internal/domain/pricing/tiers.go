package pricing

import (
	"fmt"
	"strings"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// TieredStrategy implements graduated/marginal tier billing: the quantity is
// split across tiers in order and every unit is billed at the rate of the
// tier it falls into. This is NOT cliff pricing.
type TieredStrategy struct{}

// Type returns the pricing type this strategy handles
func (TieredStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeTiered
}

// Evaluate splits the quantity across tiers and sums the per-tier charges
func (TieredStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	tiers := component.Pricing.Tiered.Tiers

	total := decimal.Zero
	remaining := quantity
	tierParts := make([]string, 0, len(tiers))

	for _, tier := range tiers {
		if !tier.IsUnbounded() && tier.Start.GreaterThan(quantity) {
			continue
		}

		var tierUsage decimal.Decimal
		if tier.IsUnbounded() {
			tierUsage = remaining
		} else {
			// Degenerate tiers (start == end) have zero width and contribute
			// nothing regardless of their price.
			width, _ := tier.Width()
			tierUsage = decimal.Min(remaining, width)
		}

		tierCharge := tierUsage.Mul(tier.UnitPrice)
		total = total.Add(tierCharge)
		tierParts = append(tierParts, fmt.Sprintf("%s units @ $%s/unit = $%s", tierUsage, tier.UnitPrice, tierCharge))

		remaining = remaining.Sub(tierUsage)
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
	}

	description := fmt.Sprintf("Tiered pricing for %s: %s", component.DisplayName, strings.Join(tierParts, ", "))
	unitPrice := effectiveUnitPrice(total, quantity, decimal.Zero)
	return singleItem(description, component.MetricName, &quantity, unitPrice, total), nil
}

// VolumeStrategy bills the entire quantity at the unit price of the single
// tier whose bounds contain the total
type VolumeStrategy struct{}

// Type returns the pricing type this strategy handles
func (VolumeStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeVolume
}

// Evaluate applies the containing tier's rate to the whole quantity
func (VolumeStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	tiers := component.Pricing.Volume.Tiers

	applied := tiers[0]
	found := false
	for _, tier := range tiers {
		if tier.Contains(quantity) {
			applied = tier
			found = true
			break
		}
	}
	if !found {
		// Quantity beyond a bounded final tier: bill at the highest tier
		// whose start has been reached.
		for i := len(tiers) - 1; i >= 0; i-- {
			if quantity.GreaterThanOrEqual(tiers[i].Start) {
				applied = tiers[i]
				break
			}
		}
	}

	total := quantity.Mul(applied.UnitPrice)
	description := fmt.Sprintf("Volume pricing for %s: %s units @ $%s/unit",
		component.DisplayName, quantity, applied.UnitPrice)
	return singleItem(description, component.MetricName, &quantity, applied.UnitPrice, total), nil
}

// GraduatedStrategy bills the entire quantity at the rate of the highest tier
// whose start has been reached
type GraduatedStrategy struct{}

// Type returns the pricing type this strategy handles
func (GraduatedStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeGraduated
}

// Evaluate applies the highest reached tier's rate to the whole quantity
func (GraduatedStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	tiers := component.Pricing.Graduated.Tiers

	applied := tiers[0]
	for i := len(tiers) - 1; i >= 0; i-- {
		if quantity.GreaterThanOrEqual(tiers[i].Start) {
			applied = tiers[i]
			break
		}
	}

	total := quantity.Mul(applied.UnitPrice)
	description := fmt.Sprintf("Graduated pricing for %s: %s units @ $%s/unit (tier: %s+)",
		component.DisplayName, quantity, applied.UnitPrice, applied.Start)
	return singleItem(description, component.MetricName, &quantity, applied.UnitPrice, total), nil
}
