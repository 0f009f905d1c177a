package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"stylus/internal/config"
)

// ConfigOption mutates the config NewConfig builds before it is returned.
type ConfigOption func(*config.Config)

// NewConfig returns a default config rooted in a fresh temp directory, so
// tests never touch real user paths. Options adjust it before use.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.LookupCache.Path = filepath.Join(base, "cache", "lookups.json")
	cfg.Logging.Level = "warn"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithDiscogs points the config at a catalog endpoint and token, usually an
// httptest server.
func WithDiscogs(baseURL, token string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Discogs.BaseURL = baseURL
		cfg.Discogs.Token = token
	}
}

// WithLookupCache enables the lookup cache at its per-test path.
func WithLookupCache() ConfigOption {
	return func(cfg *config.Config) {
		cfg.LookupCache.Enabled = true
	}
}

// WithDefaultPattern overrides the tagging pattern used when no flag is given.
func WithDefaultPattern(pattern string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Tagging.DefaultPattern = pattern
	}
}

// WriteConfig marshals cfg to TOML at path so CLI tests can load it through
// --config. It returns path for convenience.
func WriteConfig(t testing.TB, cfg *config.Config, path string) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
