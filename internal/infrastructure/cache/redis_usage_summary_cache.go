package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	appbilling "github.com/fubble/backend/internal/application/billing"
	"github.com/fubble/backend/internal/domain/billing"
	"github.com/fubble/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "usage:summary:"

// RedisUsageSummaryCache implements UsageSummaryCache using Redis.
// This is suitable for distributed deployments where multiple instances
// serve summary reads for the same customers.
//
// Every cached key is tracked in a per-customer index set so Invalidate
// can drop all windows for a customer without scanning the keyspace.
type RedisUsageSummaryCache struct {
	client *redis.Client
}

// NewRedisUsageSummaryCache creates a Redis-backed usage summary cache
func NewRedisUsageSummaryCache(cfg *config.RedisConfig) (*RedisUsageSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisUsageSummaryCache{client: client}, nil
}

// NewRedisUsageSummaryCacheWithClient creates a cache with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisUsageSummaryCacheWithClient(client *redis.Client) *RedisUsageSummaryCache {
	return &RedisUsageSummaryCache{client: client}
}

// Get retrieves a cached summary, ok is false on a miss. Redis errors are
// treated as misses so an unavailable cache never fails a read.
func (c *RedisUsageSummaryCache) Get(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string) (billing.UsageTotals, bool) {
	payload, err := c.client.Get(ctx, summaryKey(customerID, start, end, metricName)).Bytes()
	if err != nil {
		return nil, false
	}

	var totals billing.UsageTotals
	if err := json.Unmarshal(payload, &totals); err != nil {
		return nil, false
	}
	return totals, true
}

// Set caches a summary with a TTL
func (c *RedisUsageSummaryCache) Set(ctx context.Context, customerID uuid.UUID, start, end time.Time, metricName string, totals billing.UsageTotals, ttl time.Duration) {
	payload, err := json.Marshal(totals)
	if err != nil {
		return
	}

	key := summaryKey(customerID, start, end, metricName)
	index := summaryIndexKey(customerID)

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, payload, ttl)
	pipe.SAdd(ctx, index, key)
	// The index outlives its members slightly so a Set racing an expiry
	// still lands in a tracked set.
	pipe.Expire(ctx, index, ttl+time.Minute)
	_, _ = pipe.Exec(ctx)
}

// Invalidate drops all cached summaries for a customer
func (c *RedisUsageSummaryCache) Invalidate(ctx context.Context, customerID uuid.UUID) {
	index := summaryIndexKey(customerID)

	keys, err := c.client.SMembers(ctx, index).Result()
	if err != nil {
		return
	}
	keys = append(keys, index)
	_ = c.client.Del(ctx, keys...).Err()
}

// Close closes the Redis client
func (c *RedisUsageSummaryCache) Close() error {
	return c.client.Close()
}

func summaryKey(customerID uuid.UUID, start, end time.Time, metricName string) string {
	return fmt.Sprintf("%s%s:%d:%d:%s", summaryKeyPrefix, customerID, start.Unix(), end.Unix(), metricName)
}

func summaryIndexKey(customerID uuid.UUID) string {
	return summaryKeyPrefix + "index:" + customerID.String()
}

// Ensure RedisUsageSummaryCache implements UsageSummaryCache
var _ appbilling.UsageSummaryCache = (*RedisUsageSummaryCache)(nil)
