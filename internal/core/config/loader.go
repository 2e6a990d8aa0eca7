package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file. A missing file is not an error:
// the built-in gateway set is used so the client works with zero setup.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{Gateway: DefaultGatewayConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg.Gateway)

	if err := cfg.Gateway.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(g *GatewayConfig) {
	def := DefaultGatewayConfig()
	if g.Primary == "" {
		g.Primary = def.Primary
	}
	if g.Secondary == "" {
		g.Secondary = def.Secondary
	}
	if g.Fallback == "" {
		g.Fallback = def.Fallback
	}
	if g.MaxAttempts == 0 {
		g.MaxAttempts = def.MaxAttempts
	}
	if g.MaxRetriesPerGateway == 0 {
		g.MaxRetriesPerGateway = def.MaxRetriesPerGateway
	}
	if g.BaseDelayMs == 0 {
		g.BaseDelayMs = def.BaseDelayMs
	}
}
