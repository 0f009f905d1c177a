package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stylus/internal/logging"
	"stylus/internal/lookupcache"
	"stylus/internal/tagging"
	"stylus/internal/testsupport"
)

func TestTagDryRunReportsWithoutWriting(t *testing.T) {
	env := setupCLITestEnv(t)

	mp3 := filepath.Join(env.musicDir, "Pink Floyd - Time.mp3")
	testsupport.WriteMP3Fixture(t, mp3)
	testsupport.WriteMP3Fixture(t, filepath.Join(env.musicDir, "random_name.mp3"))
	if err := os.WriteFile(filepath.Join(env.musicDir, "notes.txt"), []byte("not audio"), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	before, err := os.ReadFile(mp3)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	out, _, err := runCLI(t, []string{"tag", "--dry-run", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("tag --dry-run: %v", err)
	}

	requireContains(t, out, "=== DRY RUN (no changes will be made) ===")
	requireContains(t, out, "✓ Pink Floyd - Time.mp3: Would tag: artist='Pink Floyd', title='Time'")
	requireContains(t, out, "⊘ random_name.mp3: Filename doesn't match pattern '{artist} - {title}'")
	requireContains(t, out, "\nSummary: 1 tagged, 0 failed, 1 skipped")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected uncolored output when stdout is a buffer, got %q", out)
	}
	if strings.Contains(out, "notes.txt") {
		t.Fatalf("non-audio file should not appear in the report: %q", out)
	}

	after, err := os.ReadFile(mp3)
	if err != nil {
		t.Fatalf("read fixture after run: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("dry run modified the file")
	}
}

func TestTagWritesParsedTags(t *testing.T) {
	env := setupCLITestEnv(t)

	mp3 := filepath.Join(env.musicDir, "Nick Drake - River Man.mp3")
	testsupport.WriteMP3Fixture(t, mp3)

	out, _, err := runCLI(t, []string{"tag", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	requireContains(t, out, "✓ Nick Drake - River Man.mp3: Tagged: artist='Nick Drake', title='River Man'")
	requireContains(t, out, "Summary: 1 tagged, 0 failed, 0 skipped")

	tags, err := tagging.Read(mp3)
	if err != nil {
		t.Fatalf("read tags: %v", err)
	}
	if tags.Artist != "Nick Drake" || tags.Title != "River Man" {
		t.Fatalf("unexpected tags: %+v", tags)
	}
}

func TestTagMissingPathPrintsErrorAndExitsNonzero(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.baseDir, "no-such-dir")

	out, stderrText, err := runCLI(t, []string{"tag", missing}, env.configPath)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	requireContains(t, out, "Error: Path not found: "+missing)
	if strings.TrimSpace(stderrText) != "" {
		t.Fatalf("expected quiet stderr, got %q", stderrText)
	}
}

func TestTagFailuresSetExitStatus(t *testing.T) {
	env := setupCLITestEnv(t)

	bad := filepath.Join(env.musicDir, "Artist - Title.m4a")
	testsupport.WriteFile(t, bad, 64)

	out, _, err := runCLI(t, []string{"tag", env.musicDir}, env.configPath)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported after per-file failures, got %v", err)
	}
	requireContains(t, out, "✗ Artist - Title.m4a: Error: ")
	requireContains(t, out, "Summary: 0 tagged, 1 failed, 0 skipped")
}

func TestTagPatternFlagOverridesConfig(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.WriteMP3Fixture(t, filepath.Join(env.musicDir, "Time by Pink Floyd.mp3"))

	out, _, err := runCLI(t, []string{"tag", "--pattern", "{title} by {artist}", "--dry-run", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	requireContains(t, out, "Would tag: artist='Pink Floyd', title='Time'")
}

func TestTagUsesConfiguredPatternWithoutFlag(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithDefaultPattern("{title} by {artist}"))

	testsupport.WriteMP3Fixture(t, filepath.Join(env.musicDir, "River Man by Nick Drake.mp3"))

	out, _, err := runCLI(t, []string{"tag", "--dry-run", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("tag: %v", err)
	}
	requireContains(t, out, "Would tag: artist='Nick Drake', title='River Man'")
}

func TestTagInvalidPatternFails(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"tag", "--pattern", "{artist} only", env.musicDir}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "{title}") {
		t.Fatalf("expected pattern error naming the missing placeholder, got %v", err)
	}
}

func TestTagDiscogsEnrichmentWritesLookupFields(t *testing.T) {
	search := `{"results": [{"id": 1001, "year": "1973", "title": "Pink Floyd - The Dark Side of the Moon", "genre": ["Rock"], "style": [], "label": ["Harvest"], "format": ["Vinyl"], "country": "UK"}]}`
	detail := `{"id": 1001, "title": "The Dark Side of the Moon", "year": 1973, "genres": ["Rock"], "styles": [], "labels": [{"name": "Harvest"}], "tracklist": [{"position": "A4", "title": "Time", "duration": "6:53"}]}`
	server := newDiscogsStub(t, search, detail)

	env := setupCLITestEnv(t, testsupport.WithDiscogs(server.URL, ""), testsupport.WithLookupCache())

	mp3 := filepath.Join(env.musicDir, "Pink Floyd - Time.mp3")
	testsupport.WriteMP3Fixture(t, mp3)

	out, _, err := runCLI(t, []string{"tag", "--discogs", env.musicDir}, env.configPath)
	if err != nil {
		t.Fatalf("tag --discogs: %v", err)
	}
	requireContains(t, out, "✓ Pink Floyd - Time.mp3: Tagged: artist='Pink Floyd', title='Time', year=1973, genre='Rock'")

	tags, err := tagging.Read(mp3)
	if err != nil {
		t.Fatalf("read tags: %v", err)
	}
	if tags.Year != 1973 || tags.Genre != "Rock" || tags.Label != "Harvest" {
		t.Fatalf("unexpected enriched tags: %+v", tags)
	}

	cache := lookupcache.New(env.cfg.LookupCache.Path, logging.NewNop())
	if cache.Count() != 1 {
		t.Fatalf("expected the lookup to be cached, count = %d", cache.Count())
	}
}
