package lookupcache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"stylus/internal/logging"
	"stylus/internal/release"
	"stylus/internal/textutil"
)

// Entry represents one cached lookup outcome.
type Entry struct {
	Key      string         `json:"key"`
	Artist   string         `json:"artist"`
	Title    string         `json:"title"`
	Result   release.Result `json:"result"`
	CachedAt time.Time      `json:"cached_at"`
}

// Cache provides thread-safe access to the lookup cache. The in-process map
// is guarded by mu; the on-disk file is additionally guarded by a sibling
// .lock file so concurrent stylus invocations do not clobber each other.
type Cache struct {
	path    string
	lock    *flock.Flock
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[string]Entry
}

// Key builds the cache key for an artist/title pair. Both sides are reduced
// to sanitized lowercase tokens so trivial punctuation and case differences
// hit the same entry.
func Key(artist, title string) string {
	return textutil.SanitizeToken(artist) + "::" + textutil.SanitizeToken(title)
}

// New creates a cache instance. If path is empty, the cache is non-functional
// (all operations become no-ops). The cache file is created lazily on first
// Store call.
func New(path string, logger *slog.Logger) *Cache {
	c := &Cache{
		path:    path,
		logger:  logging.NewComponentLogger(logger, "lookupcache"),
		entries: make(map[string]Entry),
	}
	if path == "" {
		return c
	}
	c.lock = flock.New(path + ".lock")

	if err := c.load(); err != nil {
		c.logger.Warn("failed to load lookup cache",
			logging.String(logging.FieldEventType, "lookup_cache_load_failed"),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "cache will start empty"),
			logging.String(logging.FieldImpact, "previously resolved tracks will hit the network again"))
	}
	return c
}

// Lookup returns the cached result for the artist/title pair if found.
func (c *Cache) Lookup(artist, title string) (release.Result, bool) {
	if c.path == "" || strings.TrimSpace(artist) == "" || strings.TrimSpace(title) == "" {
		return release.Result{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[Key(artist, title)]
	if !found {
		return release.Result{}, false
	}
	return entry.Result, true
}

// Store adds or updates the entry for the artist/title pair and persists to
// disk.
func (c *Cache) Store(artist, title string, result release.Result) error {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if artist == "" || title == "" {
		return errors.New("artist and title cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	key := Key(artist, title)
	entry := Entry{
		Key:      key,
		Artist:   artist,
		Title:    title,
		Result:   result,
		CachedAt: time.Now().UTC(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cached lookup result",
		logging.String("artist", artist),
		logging.String("title", title),
		logging.Int("year", result.Year),
		logging.Int64("release_id", result.ReleaseID))
	return nil
}

// Remove deletes the entry for the artist/title pair and persists the change.
func (c *Cache) Remove(artist, title string) error {
	artist = strings.TrimSpace(artist)
	title = strings.TrimSpace(title)
	if artist == "" || title == "" {
		return errors.New("artist and title cannot be empty")
	}
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key(artist, title)
	if _, exists := c.entries[key]; !exists {
		return fmt.Errorf("no cached lookup for %q / %q", artist, title)
	}
	delete(c.entries, key)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("removed cached lookup",
		logging.String("artist", artist),
		logging.String("title", title))
	return nil
}

// List returns all cache entries, newest first.
func (c *Cache) List() []Entry {
	if c.path == "" {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot()
}

// Clear drops every entry and writes the now-empty cache to disk.
func (c *Cache) Clear() error {
	if c.path == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	if err := c.save(); err != nil {
		return fmt.Errorf("persist cache: %w", err)
	}

	c.logger.Debug("cleared lookup cache")
	return nil
}

// Count reports how many lookups are cached.
func (c *Cache) Count() int {
	if c.path == "" {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// snapshot copies the entries out of the map sorted newest first. Callers
// hold c.mu.
func (c *Cache) snapshot() []Entry {
	entries := make([]Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CachedAt.After(entries[j].CachedAt)
	})
	return entries
}

// withFileLock runs fn while holding the sibling lock file, shared for reads
// and exclusive for writes. The cache directory must exist before the lock
// file can be created.
func (c *Cache) withFileLock(exclusive bool, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	acquire := c.lock.RLock
	if exclusive {
		acquire = c.lock.Lock
	}
	if err := acquire(); err != nil {
		return fmt.Errorf("lock cache file: %w", err)
	}
	defer func() { _ = c.lock.Unlock() }()

	return fn()
}

// load reads the cache file into memory. A missing or empty file is a fresh
// start; any other failure leaves the cache empty and is reported to the
// caller.
func (c *Cache) load() error {
	return c.withFileLock(false, func() error {
		data, err := os.ReadFile(c.path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read cache file: %w", err)
		}
		if len(data) == 0 {
			return nil
		}

		var entries []Entry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("parse cache file: %w", err)
		}

		c.entries = make(map[string]Entry, len(entries))
		for _, entry := range entries {
			if strings.TrimSpace(entry.Key) == "" {
				continue
			}
			c.entries[entry.Key] = entry
		}

		c.logger.Debug("loaded lookup cache",
			logging.Int("entry_count", len(c.entries)),
			logging.String("path", c.path))
		return nil
	})
}

// save persists the current entries. The JSON is written to a temp file and
// renamed into place so readers never observe a partial file. Callers hold
// c.mu.
func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	return c.withFileLock(true, func() error {
		tmpPath := c.path + ".tmp"
		if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
			return fmt.Errorf("write temp file: %w", err)
		}
		if err := os.Rename(tmpPath, c.path); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	})
}
