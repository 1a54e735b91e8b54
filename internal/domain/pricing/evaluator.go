package pricing

import (
	"fmt"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/fubble/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItem is an invoice-item-shaped record produced by charge evaluation
type LineItem struct {
	Description string
	MetricName  string
	Quantity    *decimal.Decimal
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// ChargeResult is the outcome of evaluating one price component
type ChargeResult struct {
	Amount    decimal.Decimal
	LineItems []LineItem
}

// Strategy evaluates one pricing model variant
type Strategy interface {
	// Type returns the pricing type this strategy handles
	Type() catalog.PricingType

	// Evaluate computes the charge for the component at the given aggregated
	// quantity. Pure function: no storage or network side effects.
	Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error)
}

// Evaluator dispatches charge evaluation to the strategy registered for the
// component's pricing type. Negative quantities are not special-cased; they
// propagate algebraically and may produce negative charges.
type Evaluator struct {
	strategies map[catalog.PricingType]Strategy
}

// NewEvaluator creates an evaluator with all known pricing strategies registered
func NewEvaluator() *Evaluator {
	e := &Evaluator{strategies: make(map[catalog.PricingType]Strategy)}
	e.register(
		FlatStrategy{},
		SubscriptionStrategy{},
		TieredStrategy{},
		VolumeStrategy{},
		GraduatedStrategy{},
		ThresholdStrategy{},
		PackageStrategy{},
		TimeBasedStrategy{},
		UsageBasedSubscriptionStrategy{},
		NewDynamicStrategy(),
	)
	return e
}

func (e *Evaluator) register(strategies ...Strategy) {
	for _, s := range strategies {
		e.strategies[s.Type()] = s
	}
}

// Evaluate computes the charge for a price component at the aggregated quantity
func (e *Evaluator) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	strategy, ok := e.strategies[component.Pricing.Type]
	if !ok {
		return ChargeResult{}, shared.NewDomainError("UNSUPPORTED_PRICING_TYPE",
			fmt.Sprintf("Unsupported pricing type %q for component %q", component.Pricing.Type, component.DisplayName))
	}
	if err := component.Pricing.Validate(); err != nil {
		return ChargeResult{}, err
	}
	return strategy.Evaluate(component, quantity)
}

// effectiveUnitPrice returns total/quantity, or the fallback when the
// quantity is not positive
func effectiveUnitPrice(total, quantity, fallback decimal.Decimal) decimal.Decimal {
	if quantity.IsPositive() {
		return total.Div(quantity)
	}
	return fallback
}

func singleItem(description, metricName string, quantity *decimal.Decimal, unitPrice, amount decimal.Decimal) ChargeResult {
	return ChargeResult{
		Amount: amount,
		LineItems: []LineItem{{
			Description: description,
			MetricName:  metricName,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Amount:      amount,
		}},
	}
}
