package billing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// UsageTotals maps metric names to summed quantities for one customer and window
type UsageTotals map[string]decimal.Decimal

// Quantity returns the aggregated quantity for a metric, zero if absent
func (t UsageTotals) Quantity(metricName string) decimal.Decimal {
	if q, ok := t[metricName]; ok {
		return q
	}
	return decimal.Zero
}

// Metrics returns the metric names present in the totals, sorted
func (t UsageTotals) Metrics() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AggregateEvents sums event quantities by metric name. Negative quantities
// are not clamped; they reduce the aggregate as given.
func AggregateEvents(events []*UsageEvent) UsageTotals {
	totals := make(UsageTotals)
	for _, event := range events {
		totals[event.MetricName] = totals[event.MetricName].Add(event.Quantity)
	}
	return totals
}
