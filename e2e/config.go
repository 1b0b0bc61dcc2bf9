package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_COLOURS enables colorized step headers for better log readability
	Colours bool   `envconfig:"E2E_COLOURS" default:"true"`
	Locale  string `envconfig:"E2E_LOCALE" default:"en-US"`
	Workers int    `envconfig:"E2E_WORKERS" default:"4"`
	// E2E_PROVIDER_LATENCY simulates the round trip of every join and leave
	ProviderLatency time.Duration `envconfig:"E2E_PROVIDER_LATENCY" default:"5ms"`
	// HEALTH_ADDR points at a running roomctl; the health scenario is skipped when empty
	HealthAddr string `envconfig:"HEALTH_ADDR"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
