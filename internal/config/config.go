package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds process-level settings consumed by the HTTP boundary.
//
// DatabaseURL is recognised for parity with the deployment environment but is
// not consumed by the arithmetic path: calculations are request-scoped and
// nothing is persisted.
type Config struct {
	Port        int    `env:"SERVICE_PORT,default=8080"`
	DatabaseURL string `env:"DATABASE_URL,default=sqlite:///:memory:"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config from env: %w", err)
	}
	return &cfg, nil
}
