package config

import (
	"os"
	"testing"
)

func TestLoad_EnvSubstitution(t *testing.T) {
	// Setup env var
	os.Setenv("TEST_GATEWAY_PRIMARY", "https://primary.example.com/api/v1/proxy")
	defer os.Unsetenv("TEST_GATEWAY_PRIMARY")

	// Create temp config file
	configContent := `
gateway:
  primary: ${TEST_GATEWAY_PRIMARY}
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	// Load config
	cfg, err := Load(tmpFile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Gateway.Primary != "https://primary.example.com/api/v1/proxy" {
		t.Errorf("Expected primary from env, got %s", cfg.Gateway.Primary)
	}

	// Unset fields fall back to defaults
	def := DefaultGatewayConfig()
	if cfg.Gateway.Secondary != def.Secondary {
		t.Errorf("Expected default secondary, got %s", cfg.Gateway.Secondary)
	}
	if cfg.Gateway.MaxRetriesPerGateway != def.MaxRetriesPerGateway {
		t.Errorf("Expected default retries, got %d", cfg.Gateway.MaxRetriesPerGateway)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("does-not-exist.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Gateway != DefaultGatewayConfig() {
		t.Errorf("Expected default gateway config, got %+v", cfg.Gateway)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	configContent := `
gateway:
  primary: "not a url"
`
	tmpFile, err := os.CreateTemp("", "config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write([]byte(configContent)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	tmpFile.Close()

	if _, err := Load(tmpFile.Name()); err == nil {
		t.Error("expected validation error for invalid primary URL")
	}
}
