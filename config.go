package lapse

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
)

// EnvPrefix is prepended to every environment variable read by LoadConfigFromEnv.
const EnvPrefix = "LAPSE_"

// LoadConfigFromEnv builds a Config from LAPSE_* environment variables.
// Recognized variables include:
//   - LAPSE_REFRESH_TOKEN (required by NewClient)
//   - LAPSE_GRAPHQL_URL, LAPSE_REFRESH_URL, LAPSE_IMAGE_BASE_URL
//   - LAPSE_TIMEOUT (a Go duration such as "15s")
//   - LAPSE_RATE_LIMIT_REQUESTS_PER_MINUTE, LAPSE_RATE_LIMIT_BURST
//   - LAPSE_DEVICE_TIMEZONE, LAPSE_DEVICE_DEVICE_ID and the other DeviceOptions fields
//
// Unset variables are left zero so NewClient applies its defaults.
func LoadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, &errors.ConfigError{Field: "env", Message: fmt.Sprintf("parse env: %v", err)}
	}
	return &cfg, nil
}

// LoadConfigFile reads a YAML configuration file. Environment variables are
// not consulted; apply overrides on the returned Config.
//
// Example file:
//
//	refresh_token: "..."
//	timeout: 15s
//	rate_limit:
//	  requests_per_minute: 30
//	device:
//	  timezone: Europe/London
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Field: "path", Message: fmt.Sprintf("failed to read config file: %v", err)}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &errors.ConfigError{Field: "path", Message: fmt.Sprintf("failed to unmarshal config: %v", err)}
	}
	return &cfg, nil
}
