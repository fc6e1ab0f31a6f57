package config

import "time"

// RateLimitConfig configures the Redis token bucket.  Burst and RefillEvery
// are shorthands: a positive Burst overrides Capacity and a positive
// RefillEvery means one token per interval.
type RateLimitConfig struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED, default=true"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY, default=60"`
	RefillTokens   int           `env:"RATE_LIMIT_REFILL_TOKENS, default=1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL, default=1s"`
	TTL            time.Duration `env:"RATE_LIMIT_TTL, default=10m"`
	KeyStrategy    string        `env:"RATE_LIMIT_KEY_STRATEGY, default=ip_user_route"`
	Prefix         string        `env:"RATE_LIMIT_PREFIX, default=rl"`
	Debug          bool          `env:"RATE_LIMIT_DEBUG, default=false"`
	Burst          int           `env:"RATE_LIMIT_BURST, default=-1"`
	RefillEvery    time.Duration `env:"RATE_LIMIT_REFILL_EVERY, default=0s"`
}

func (r *RateLimitConfig) normalize() {
	if r.Burst > 0 {
		r.Capacity = r.Burst
	}
	if r.RefillEvery > 0 {
		r.RefillTokens = 1
		r.RefillInterval = r.RefillEvery
	}
	if r.Capacity < 1 {
		r.Capacity = 1
	}
	if r.RefillTokens < 1 {
		r.RefillTokens = 1
	}
	if r.RefillInterval <= 0 {
		r.RefillInterval = time.Second
	}
	// keep the bucket around long enough to refill a few times
	if minTTL := 5 * r.RefillInterval; r.TTL < minTTL {
		r.TTL = minTTL
	}
}
