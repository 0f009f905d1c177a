package lookupcache

import (
	"os"
	"path/filepath"
	"testing"

	"stylus/internal/release"
)

func sampleResult(year int) release.Result {
	return release.Result{
		Artist:     "Pink Floyd",
		Title:      "Time",
		Year:       year,
		Genres:     []string{"Rock"},
		Styles:     []string{"Prog Rock"},
		Label:      "Harvest",
		Format:     "Vinyl",
		Country:    "UK",
		ReleaseID:  1873479,
		ReleaseURL: "https://www.discogs.com/release/1873479",
	}
}

func TestCacheStoreAndLookup(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	found, ok := cache.Lookup("Pink Floyd", "Time")
	if !ok {
		t.Fatal("Lookup failed to find stored entry")
	}
	if found.Year != 1973 {
		t.Errorf("Year mismatch: got %d, want 1973", found.Year)
	}
	if found.Label != "Harvest" {
		t.Errorf("Label mismatch: got %q, want %q", found.Label, "Harvest")
	}
}

func TestCacheKeyNormalization(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	// Case and punctuation variants collapse onto the same key.
	if _, ok := cache.Lookup("PINK FLOYD", "time"); !ok {
		t.Error("case variant should hit the same entry")
	}
	if _, ok := cache.Lookup("pink floyd!", "Time"); !ok {
		t.Error("punctuation variant should hit the same entry")
	}
	if Key("Pink Floyd", "Time") != "pink_floyd::time" {
		t.Errorf("unexpected key shape: %q", Key("Pink Floyd", "Time"))
	}
}

func TestCacheLookupNotFound(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if _, ok := cache.Lookup("Nick Drake", "River Man"); ok {
		t.Error("Lookup should return false for non-existent entry")
	}
}

func TestCacheLookupEmptyPair(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if _, ok := cache.Lookup("", "Time"); ok {
		t.Error("Lookup should return false for empty artist")
	}
	if _, ok := cache.Lookup("Pink Floyd", "   "); ok {
		t.Error("Lookup should return false for whitespace title")
	}
}

func TestCacheRemove(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Remove("Pink Floyd", "Time"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok := cache.Lookup("Pink Floyd", "Time"); ok {
		t.Error("entry should not exist after removal")
	}
}

func TestCacheRemoveNotFound(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Remove("Pink Floyd", "Dogs"); err == nil {
		t.Error("Remove should return error for non-existent entry")
	}
}

func TestCacheList(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	pairs := []struct {
		artist string
		title  string
	}{
		{"Pink Floyd", "Time"},
		{"Nick Drake", "River Man"},
		{"King Crimson", "Epitaph"},
	}
	for _, p := range pairs {
		if err := cache.Store(p.artist, p.title, sampleResult(1970)); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	list := cache.List()
	if len(list) != 3 {
		t.Fatalf("List should return 3 entries, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i].CachedAt.After(list[i-1].CachedAt) {
			t.Error("List should be sorted newest first")
		}
	}
}

func TestCacheClear(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Store("Nick Drake", "River Man", sampleResult(1970)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if cache.Count() != 2 {
		t.Fatalf("expected 2 entries before clear, got %d", cache.Count())
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if cache.Count() != 0 {
		t.Errorf("expected 0 entries after clear, got %d", cache.Count())
	}
}

func TestCachePersistence(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")

	cache1 := New(cachePath, nil)
	if err := cache1.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	cache2 := New(cachePath, nil)
	found, ok := cache2.Lookup("Pink Floyd", "Time")
	if !ok {
		t.Fatal("entry should persist across cache instances")
	}
	if found.ReleaseID != 1873479 {
		t.Errorf("ReleaseID mismatch: got %d, want 1873479", found.ReleaseID)
	}
	if found.Year != 1973 {
		t.Errorf("Year mismatch: got %d, want 1973", found.Year)
	}
}

func TestCacheEmptyPath(t *testing.T) {
	cache := New("", nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Errorf("Store with empty path should not error: %v", err)
	}
	if _, ok := cache.Lookup("Pink Floyd", "Time"); ok {
		t.Error("Lookup with empty path should always return false")
	}
	if cache.Count() != 0 {
		t.Errorf("Count with empty path should be 0, got %d", cache.Count())
	}
	if cache.List() != nil {
		t.Error("List with empty path should return nil")
	}
	if err := cache.Clear(); err != nil {
		t.Errorf("Clear with empty path should not error: %v", err)
	}
	if err := cache.Remove("Pink Floyd", "Time"); err != nil {
		t.Errorf("Remove with empty path should not error: %v", err)
	}
}

func TestCacheStoreEmptyPair(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Store("", "Time", sampleResult(1973)); err == nil {
		t.Error("Store should fail for empty artist")
	}
}

func TestCacheUpdatesExistingEntry(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1974)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Fatalf("Store update failed: %v", err)
	}

	if cache.Count() != 1 {
		t.Errorf("expected 1 entry after update, got %d", cache.Count())
	}
	found, ok := cache.Lookup("Pink Floyd", "Time")
	if !ok {
		t.Fatal("entry not found after update")
	}
	if found.Year != 1973 {
		t.Errorf("Year should be updated to 1973, got %d", found.Year)
	}
}

func TestCacheCorruptedFile(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")

	if err := os.WriteFile(cachePath, []byte("not valid json"), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	// New should handle the corrupt file gracefully (log warning, start empty).
	cache := New(cachePath, nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Errorf("Store should work after corrupt file: %v", err)
	}
	if _, ok := cache.Lookup("Pink Floyd", "Time"); !ok {
		t.Error("Lookup should work after recovering from corrupt file")
	}
}

func TestCacheFileIsDeterministicArray(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "lookup_cache.json")
	cache := New(cachePath, nil)

	if err := cache.Store("Pink Floyd", "Time", sampleResult(1973)); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("cache file missing: %v", err)
	}
	text := string(data)
	if len(text) == 0 || text[0] != '[' {
		t.Fatalf("cache file should be a JSON array, got %q", text[:min(40, len(text))])
	}
}
