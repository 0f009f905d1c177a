package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate rejects configurations a run could not work with. It assumes
// normalize has already filled defaults and canonicalized values.
func (c *Config) Validate() error {
	if err := c.validateDiscogs(); err != nil {
		return err
	}
	if err := c.validateTagging(); err != nil {
		return err
	}
	if err := c.validateLookupCache(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDiscogs() error {
	if !strings.HasPrefix(c.Discogs.BaseURL, "http://") && !strings.HasPrefix(c.Discogs.BaseURL, "https://") {
		return fmt.Errorf("discogs.base_url must be an http(s) URL, got %q", c.Discogs.BaseURL)
	}
	if strings.TrimSpace(c.Discogs.UserAgent) == "" {
		return errors.New("discogs.user_agent must be set")
	}
	return nil
}

func (c *Config) validateTagging() error {
	pattern := c.Tagging.DefaultPattern
	for _, placeholder := range []string{"{artist}", "{title}"} {
		if strings.Count(pattern, placeholder) != 1 {
			return fmt.Errorf("tagging.default_pattern must contain %s exactly once, got %q", placeholder, pattern)
		}
	}
	return nil
}

func (c *Config) validateLookupCache() error {
	if c.LookupCache.Enabled && strings.TrimSpace(c.LookupCache.Path) == "" {
		return errors.New("lookup_cache.path must be set when lookup_cache.enabled is true")
	}
	return nil
}
