package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// GatewayCount is the fixed number of upstream gateways.
const GatewayCount = 3

// Default timing constants. The delay ladders themselves live in the gateway
// package; these are the values exported for diagnostics.
const (
	DefaultMaxAttempts          = GatewayCount
	DefaultMaxRetriesPerGateway = 2
	DefaultBaseDelayMs          = 300
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Gateway     GatewayConfig     `yaml:"gateway"     json:"gateway"`
	Logging     LoggingConfig     `yaml:"logging"     json:"logging"`
	Diagnostics DiagnosticsConfig `yaml:"diagnostics" json:"diagnostics"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"  json:"level"`  // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // json, text
}

// DiagnosticsConfig holds settings for the local diagnostics log.
type DiagnosticsConfig struct {
	Path string `yaml:"path" json:"path"` // append-only JSONL file, empty disables export
}

// GatewayConfig holds the three upstream endpoints and the timing constants.
// It is constructed once at startup and treated as immutable afterwards;
// copies are passed by value. Serializable for diagnostics export.
type GatewayConfig struct {
	Primary   string `yaml:"primary"   json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
	Fallback  string `yaml:"fallback"  json:"fallback"`

	// MaxAttempts is the number of gateways tried per logical call.
	// It always equals GatewayCount.
	MaxAttempts int `yaml:"max_attempts" json:"max_attempts"`

	// MaxRetriesPerGateway is the number of additional attempts a gateway
	// receives beyond its initial one.
	MaxRetriesPerGateway int `yaml:"max_retries_per_gateway" json:"max_retries_per_gateway"`

	// BaseDelayMs is the base failover delay in milliseconds.
	BaseDelayMs int `yaml:"base_delay_ms" json:"base_delay_ms"`
}

// DefaultGatewayConfig returns the production gateway set.
func DefaultGatewayConfig() GatewayConfig {
	return GatewayConfig{
		Primary:              "https://api.na-backend.odysee.com/api/v1/proxy",
		Secondary:            "https://api.lbry.tv/api/v1/proxy",
		Fallback:             "https://api.odysee.com/api/v1/proxy",
		MaxAttempts:          DefaultMaxAttempts,
		MaxRetriesPerGateway: DefaultMaxRetriesPerGateway,
		BaseDelayMs:          DefaultBaseDelayMs,
	}
}

// PriorityOrder returns the gateways in failover order. The order is derived
// from the config and never changes for the lifetime of a client.
func (c GatewayConfig) PriorityOrder() []string {
	return []string{c.Primary, c.Secondary, c.Fallback}
}

// CurrentGateway returns the configured primary URL. It does not track which
// gateway most recently served a request.
func (c GatewayConfig) CurrentGateway() string {
	return c.Primary
}

// Validate checks the gateway config against the fixed invariants.
func (c GatewayConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Primary, validation.Required, is.URL),
		validation.Field(&c.Secondary, validation.Required, is.URL),
		validation.Field(&c.Fallback, validation.Required, is.URL),
		validation.Field(&c.MaxAttempts, validation.Required, validation.In(GatewayCount)),
		validation.Field(&c.MaxRetriesPerGateway, validation.Min(0), validation.Max(10)),
		validation.Field(&c.BaseDelayMs, validation.Required, validation.Min(1)),
	)
}
