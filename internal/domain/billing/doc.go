// Package billing provides domain models for usage metering and billing periods.
//
// This package implements the usage bounded context, which is responsible for:
//   - Recording usage events (API calls, storage, compute hours, etc.)
//   - Aggregating usage by customer, metric and time window
//   - Linking customers to pricing plans through subscriptions
//   - Resolving the effective billing window for each active subscription
//
// Key Aggregates:
//   - Subscription: links a customer to a plan over a half-open time interval
//
// Entities:
//   - UsageEvent: immutable record of a single usage event
//
// Value Objects:
//   - Period: a date window over which usage is aggregated
//   - SubscriptionWindow: a subscription paired with its effective window
//
// The billing domain integrates with:
//   - Catalog domain: for plans and price components
//   - Partner domain: for customer information
//   - Invoicing domain: as the consumer of resolved usage
package billing
