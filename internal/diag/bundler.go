// Package diag exports gateway diagnostics to a local append-only log.
// Nothing is transmitted off-device.
package diag

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/vietddude/gateway/internal/core/config"
	"github.com/vietddude/gateway/internal/infra/gateway"
)

// Source is the diagnostics surface of the failover client.
type Source interface {
	HealthStats() []gateway.GatewayHealth
	GatewayConfig() config.GatewayConfig
}

// Bundler appends diagnostics snapshots as JSON lines to a local file.
type Bundler struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

type snapshot struct {
	Timestamp     time.Time               `json:"timestamp"`
	GatewayConfig config.GatewayConfig    `json:"gateway_config"`
	GatewayHealth []gateway.GatewayHealth `json:"gateway_health"`
}

// NewBundler creates a bundler writing to path.
func NewBundler(path string) *Bundler {
	return &Bundler{path: path, now: time.Now}
}

// Append writes one snapshot line with the current health stats and config.
func (b *Bundler) Append(src Source) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	line, err := json.Marshal(snapshot{
		Timestamp:     b.now(),
		GatewayConfig: src.GatewayConfig(),
		GatewayHealth: src.HealthStats(),
	})
	if err != nil {
		return fmt.Errorf("marshal diagnostics: %w", err)
	}

	f, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open diagnostics log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write diagnostics log: %w", err)
	}
	return nil
}
