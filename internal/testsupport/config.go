package testsupport

import (
	"path/filepath"
	"testing"

	"github.com/iliyamo/movie-catalog/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config that points at a SQLite file in a per-test temp
// directory and has Redis and AMQP switched off.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := &config.Config{
		Env:          "test",
		Port:         "0",
		LogLevel:     "error",
		CORSOrigin:   "*",
		JWTSecret:    "test-secret",
		AccessTTLMin: 60,
		BcryptCost:   4, // bcrypt.MinCost keeps tests fast
		DB: config.DBConfig{
			Driver:     "sqlite",
			SQLitePath: filepath.Join(base, "catalog.db"),
		},
		AMQP: config.AMQPConfig{
			Queue:    "catalog.changed",
			AuditDir: filepath.Join(base, "logs"),
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithJWTSecret overrides the signing secret.
func WithJWTSecret(secret string) ConfigOption {
	return func(c *config.Config) { c.JWTSecret = secret }
}
