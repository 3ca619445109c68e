package testsupport

import (
	"path/filepath"
	"testing"

	"bindery/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Dedupe.Workers = 2

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithWorkers overrides the dedupe worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(c *config.Config) {
		c.Dedupe.Workers = n
	}
}

// WithPreserveUnicode toggles unicode preservation on the test config.
func WithPreserveUnicode(v bool) ConfigOption {
	return func(c *config.Config) {
		c.Rename.PreserveUnicode = v
	}
}
