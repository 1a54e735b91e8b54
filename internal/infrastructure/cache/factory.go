package cache

import (
	appbilling "github.com/fubble/backend/internal/application/billing"
	"github.com/fubble/backend/internal/infrastructure/config"
)

// NewUsageSummaryCache creates the usage summary cache appropriate for the
// configuration: Redis-backed when Redis is enabled, in-memory otherwise.
func NewUsageSummaryCache(cfg *config.RedisConfig) (appbilling.UsageSummaryCache, error) {
	if cfg != nil && cfg.Enabled {
		return NewRedisUsageSummaryCache(cfg)
	}
	return NewInMemoryUsageSummaryCache(), nil
}
