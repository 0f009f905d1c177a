package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir string `toml:"log_dir"`
}

// Discogs contains configuration for the Discogs catalog API.
type Discogs struct {
	Token     string `toml:"token"`
	BaseURL   string `toml:"base_url"`
	UserAgent string `toml:"user_agent"`
}

// Tagging contains configuration for filename parsing and tag writing.
type Tagging struct {
	DefaultPattern string `toml:"default_pattern"`
}

// LookupCache contains configuration for the artist/title lookup cache.
type LookupCache struct {
	Enabled bool   `toml:"enabled"` // Default: false
	Path    string `toml:"path"`    // Default: ~/.cache/stylus/lookup_cache.json
}

// Logging controls log format and verbosity.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the full stylus configuration, one section per subsystem:
// Paths (log directory), Discogs (catalog API credentials and endpoint),
// Tagging (default filename pattern), LookupCache (cached resolver results),
// and Logging (format and level).
type Config struct {
	Paths       Paths       `toml:"paths"`
	Discogs     Discogs     `toml:"discogs"`
	Tagging     Tagging     `toml:"tagging"`
	LookupCache LookupCache `toml:"lookup_cache"`
	Logging     Logging     `toml:"logging"`
}

const userConfigPath = "~/.config/stylus/config.toml"

// DefaultConfigPath returns the absolute path of the per-user configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath(userConfigPath)
}

// Load resolves the configuration file location, parses the file when it
// exists, and returns the normalized, validated result. The resolved path and
// whether a file was found there come back alongside the config so commands
// can report which file they used.
func Load(path string) (*Config, string, bool, error) {
	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	cfg := Default()
	if exists {
		raw, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the config file to use. An explicit path wins even
// when no file exists there yet; otherwise the per-user location is preferred
// over a stylus.toml in the working directory, and the per-user location is
// reported when neither exists.
func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	userPath, err := expandPath(userConfigPath)
	if err != nil {
		return "", false, err
	}
	workingPath, err := filepath.Abs("stylus.toml")
	if err != nil {
		return "", false, err
	}

	for _, candidate := range []string{userPath, workingPath} {
		if fileExists(candidate) {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// EnsureDirectories creates the directories runtime operation needs.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.LookupCache.Enabled && strings.TrimSpace(c.LookupCache.Path) != "" {
		dirs = append(dirs, filepath.Dir(c.LookupCache.Path))
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LookupCachePath returns the cache location, or "" when caching is disabled.
func (c *Config) LookupCachePath() string {
	if !c.LookupCache.Enabled {
		return ""
	}
	return c.LookupCache.Path
}

// expandPath resolves a leading ~ against the user home directory and returns
// the cleaned absolute form. Empty input stays empty.
func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return "", nil
	}
	if pathValue == "~" || strings.HasPrefix(pathValue, "~/") || strings.HasPrefix(pathValue, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath applies the same ~ and relative-path expansion Load uses, for
// callers that accept paths on the command line.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultLookupCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "stylus", "lookup_cache.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/stylus/lookup_cache.json"
	}
	return filepath.Join(home, ".cache", "stylus", "lookup_cache.json")
}

// CreateSample writes the embedded sample configuration to path, creating
// parent directories as needed.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
