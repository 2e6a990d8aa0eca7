package config

import (
	"encoding/json"
	"testing"
)

func TestDefaultGatewayConfig(t *testing.T) {
	cfg := DefaultGatewayConfig()

	if cfg.MaxAttempts != 3 {
		t.Errorf("expected max_attempts 3, got %d", cfg.MaxAttempts)
	}
	if cfg.MaxRetriesPerGateway != 2 {
		t.Errorf("expected max_retries_per_gateway 2, got %d", cfg.MaxRetriesPerGateway)
	}
	if cfg.BaseDelayMs != 300 {
		t.Errorf("expected base_delay_ms 300, got %d", cfg.BaseDelayMs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestPriorityOrder_StableAcrossInstances(t *testing.T) {
	// Any number of instances built from the same config must agree.
	for i := 0; i < 10; i++ {
		cfg := DefaultGatewayConfig()
		order := cfg.PriorityOrder()

		if len(order) != GatewayCount {
			t.Fatalf("expected %d gateways, got %d", GatewayCount, len(order))
		}
		if order[0] != cfg.Primary || order[1] != cfg.Secondary || order[2] != cfg.Fallback {
			t.Fatalf("priority order %v does not match [primary, secondary, fallback]", order)
		}
	}
}

func TestCurrentGateway_AlwaysPrimary(t *testing.T) {
	cfg := DefaultGatewayConfig()
	if got := cfg.CurrentGateway(); got != cfg.Primary {
		t.Errorf("CurrentGateway() = %s, want primary %s", got, cfg.Primary)
	}
}

func TestGatewayConfig_JSONRoundTrip(t *testing.T) {
	cfg := DefaultGatewayConfig()

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded GatewayConfig
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded != cfg {
		t.Errorf("round trip changed config: got %+v, want %+v", decoded, cfg)
	}
}

func TestGatewayConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GatewayConfig)
		wantErr bool
	}{
		{"valid", func(c *GatewayConfig) {}, false},
		{"missing primary", func(c *GatewayConfig) { c.Primary = "" }, true},
		{"bad secondary url", func(c *GatewayConfig) { c.Secondary = "not a url" }, true},
		{"wrong max_attempts", func(c *GatewayConfig) { c.MaxAttempts = 2 }, true},
		{"zero base delay", func(c *GatewayConfig) { c.BaseDelayMs = 0 }, true},
		{"negative retries", func(c *GatewayConfig) { c.MaxRetriesPerGateway = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGatewayConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
