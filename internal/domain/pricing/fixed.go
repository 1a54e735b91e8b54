package pricing

import (
	"fmt"

	"github.com/fubble/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// FlatStrategy charges a fixed amount independent of usage
type FlatStrategy struct{}

// Type returns the pricing type this strategy handles
func (FlatStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeFlat
}

// Evaluate returns the configured amount regardless of quantity
func (FlatStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	amount := component.Pricing.Flat.Amount
	one := decimal.NewFromInt(1)
	return singleItem(
		fmt.Sprintf("Flat fee for %s", component.DisplayName),
		component.MetricName,
		&one,
		amount,
		amount,
	), nil
}

// SubscriptionStrategy charges a fixed recurring fee once per billing period
// per active subscription, ignoring quantity entirely
type SubscriptionStrategy struct{}

// Type returns the pricing type this strategy handles
func (SubscriptionStrategy) Type() catalog.PricingType {
	return catalog.PricingTypeSubscription
}

// Evaluate returns the recurring fee regardless of quantity
func (SubscriptionStrategy) Evaluate(component *catalog.PriceComponent, quantity decimal.Decimal) (ChargeResult, error) {
	amount := component.Pricing.Subscription.Amount
	one := decimal.NewFromInt(1)
	return singleItem(
		fmt.Sprintf("Subscription fee for %s", component.DisplayName),
		component.MetricName,
		&one,
		amount,
		amount,
	), nil
}
