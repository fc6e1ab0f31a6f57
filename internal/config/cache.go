package config

import (
	"strings"
	"time"
)

// CacheConfig defines settings for the response cache middleware.
// When Enabled is false or no Redis client is configured, caching is
// disabled.  Methods lists the HTTP methods to cache as a comma separated
// list.  KeyStrategy determines which parts of the request contribute to the
// cache key.  Every cache key also embeds the catalog generation counter,
// which writes bump, so stale lists never survive a mutation.
type CacheConfig struct {
	Enabled      bool          `env:"CACHE_ENABLED, default=true"`
	Methods      string        `env:"CACHE_METHODS, default=GET"`
	TTL          time.Duration `env:"CACHE_TTL, default=30s"`
	KeyStrategy  string        `env:"CACHE_KEY_STRATEGY, default=route_query"`
	Prefix       string        `env:"CACHE_PREFIX, default=cache"`
	MaxBodyBytes int           `env:"CACHE_MAX_BODY_BYTES, default=1048576"`
}

// MethodSet returns the upper-cased set of cacheable methods.
func (c CacheConfig) MethodSet() map[string]bool {
	m := map[string]bool{}
	for _, p := range strings.Split(c.Methods, ",") {
		p = strings.TrimSpace(strings.ToUpper(p))
		if p != "" {
			m[p] = true
		}
	}
	return m
}

// GenerationKey is the Redis key holding the catalog generation counter.
func (c CacheConfig) GenerationKey() string {
	return c.Prefix + ":generation"
}
