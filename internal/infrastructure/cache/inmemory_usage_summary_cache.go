package cache

import (
	"context"
	"sync"
	"time"

	appbilling "github.com/fubble/backend/internal/application/billing"
	"github.com/fubble/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// InMemoryUsageSummaryCache implements UsageSummaryCache with an in-process map.
// This is suitable for single-instance deployments and tests; entries expire
// lazily on read.
type InMemoryUsageSummaryCache struct {
	mu      sync.RWMutex
	entries map[string]summaryEntry
	byOwner map[uuid.UUID][]string
}

type summaryEntry struct {
	totals    billing.UsageTotals
	expiresAt time.Time
}

// NewInMemoryUsageSummaryCache creates an in-memory usage summary cache
func NewInMemoryUsageSummaryCache() *InMemoryUsageSummaryCache {
	return &InMemoryUsageSummaryCache{
		entries: make(map[string]summaryEntry),
		byOwner: make(map[uuid.UUID][]string),
	}
}

// Get retrieves a cached summary, ok is false on a miss
func (c *InMemoryUsageSummaryCache) Get(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string) (billing.UsageTotals, bool) {
	key := summaryKey(customerID, start, end, metricName)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	// Copy so callers cannot mutate the cached map
	totals := make(billing.UsageTotals, len(entry.totals))
	for metric, quantity := range entry.totals {
		totals[metric] = quantity
	}
	return totals, true
}

// Set caches a summary with a TTL
func (c *InMemoryUsageSummaryCache) Set(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string, totals billing.UsageTotals, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	key := summaryKey(customerID, start, end, metricName)

	stored := make(billing.UsageTotals, len(totals))
	for metric, quantity := range totals {
		stored[metric] = quantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		c.byOwner[customerID] = append(c.byOwner[customerID], key)
	}
	c.entries[key] = summaryEntry{totals: stored, expiresAt: time.Now().Add(ttl)}
}

// Invalidate drops all cached summaries for a customer
func (c *InMemoryUsageSummaryCache) Invalidate(ctx context.Context, customerID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range c.byOwner[customerID] {
		delete(c.entries, key)
	}
	delete(c.byOwner, customerID)
}

// Len returns the number of live entries (for testing/monitoring)
func (c *InMemoryUsageSummaryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryUsageSummaryCache implements UsageSummaryCache
var _ appbilling.UsageSummaryCache = (*InMemoryUsageSummaryCache)(nil)
