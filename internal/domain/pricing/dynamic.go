package pricing

import (
	"fmt"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DynamicStrategy derives the unit rate from a restricted arithmetic formula
// evaluated over a small variable namespace (base_rate and quantity). An
// unresolvable formula fails loudly instead of defaulting to the base rate.
type DynamicStrategy struct{}

// NewDynamicStrategy creates a dynamic pricing strategy
func NewDynamicStrategy() DynamicStrategy {
	return DynamicStrategy{}
}

// Type returns the pricing type this strategy handles
func (DynamicStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeDynamic
}

// Evaluate computes the unit rate from the formula and charges it per unit
func (DynamicStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	cfg := component.Pricing.Dynamic

	rate, err := EvaluateFormula(cfg.Formula, map[string]decimal.Decimal{
		"base_rate": cfg.BaseRate,
		"quantity":  quantity,
	})
	if err != nil {
		return ChargeResult{}, shared.NewDomainError("INVALID_PRICING_CONFIG",
			fmt.Sprintf("Cannot evaluate pricing formula for %s: %v", component.DisplayName, err))
	}

	total := quantity.Mul(rate)
	description := fmt.Sprintf("Dynamic pricing for %s: %s units @ $%s/unit (formula: %s)",
		component.DisplayName, quantity, rate, cfg.Formula)
	return singleItem(description, component.MetricName, &quantity, rate, total), nil
}
