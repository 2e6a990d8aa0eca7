package diag

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vietddude/gateway/internal/core/config"
	"github.com/vietddude/gateway/internal/infra/gateway"
)

type stubSource struct {
	cfg    config.GatewayConfig
	health []gateway.GatewayHealth
}

func (s *stubSource) HealthStats() []gateway.GatewayHealth { return s.health }
func (s *stubSource) GatewayConfig() config.GatewayConfig  { return s.cfg }

func TestBundler_AppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.log")

	src := &stubSource{
		cfg: config.DefaultGatewayConfig(),
		health: []gateway.GatewayHealth{
			{URL: "https://primary.example.com", Status: gateway.StatusHealthy},
			{URL: "https://secondary.example.com", Status: gateway.StatusUnknown},
			{URL: "https://fallback.example.com", Status: gateway.StatusUnhealthy, LastError: "timeout"},
		},
	}

	b := NewBundler(path)
	fixed := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return fixed }

	// Two appends produce two lines: the log is append-only.
	if err := b.Append(src); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := b.Append(src); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open diagnostics log: %v", err)
	}
	defer f.Close()

	var lines int
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++

		var snap struct {
			Timestamp     time.Time               `json:"timestamp"`
			GatewayConfig config.GatewayConfig    `json:"gateway_config"`
			GatewayHealth []gateway.GatewayHealth `json:"gateway_health"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &snap); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}

		if !snap.Timestamp.Equal(fixed) {
			t.Errorf("line %d timestamp = %v, want %v", lines, snap.Timestamp, fixed)
		}
		if snap.GatewayConfig != src.cfg {
			t.Errorf("line %d config = %+v, want %+v", lines, snap.GatewayConfig, src.cfg)
		}
		if len(snap.GatewayHealth) != 3 {
			t.Errorf("line %d health records = %d, want 3", lines, len(snap.GatewayHealth))
		}
	}

	if lines != 2 {
		t.Errorf("lines = %d, want 2", lines)
	}
}
