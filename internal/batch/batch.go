// Package batch walks a target path and runs the parse, resolve, and write
// pipeline over each audio file, classifying every outcome.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"stylus/internal/filename"
	"stylus/internal/logging"
	"stylus/internal/lookupcache"
	"stylus/internal/release"
	"stylus/internal/services"
	"stylus/internal/tagging"
)

// Status classifies a single file's outcome.
type Status string

const (
	StatusTagged  Status = "tagged"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// FileResult is the per-file outcome reported to the caller.
type FileResult struct {
	Path    string
	Status  Status
	Message string
}

// Summary accumulates outcome counters across a run.
type Summary struct {
	Tagged  int
	Failed  int
	Skipped int
}

func (s *Summary) add(status Status) {
	switch status {
	case StatusTagged:
		s.Tagged++
	case StatusFailed:
		s.Failed++
	default:
		s.Skipped++
	}
}

// String renders the aggregate line shown at the end of a run.
func (s *Summary) String() string {
	return fmt.Sprintf("Summary: %d tagged, %d failed, %d skipped", s.Tagged, s.Failed, s.Skipped)
}

// Enricher resolves an (artist, title) pair to release metadata.
type Enricher interface {
	FindEarliest(ctx context.Context, q release.Query, verify bool) (*release.Result, error)
}

// WriteFunc stores tags in a file; tests substitute fakes for the real
// tag writer.
type WriteFunc func(path string, tags tagging.Tags) error

// Processor runs the tagging pipeline over files.
type Processor struct {
	pattern  *filename.Pattern
	enricher Enricher
	cache    *lookupcache.Cache
	write    WriteFunc
	logger   *slog.Logger
	dryRun   bool
}

// Option customises the Processor.
type Option func(*Processor)

// WithEnricher enables metadata enrichment through the supplied resolver.
func WithEnricher(enricher Enricher) Option {
	return func(p *Processor) {
		if enricher != nil {
			p.enricher = enricher
		}
	}
}

// WithCache consults the lookup cache before the resolver.
func WithCache(cache *lookupcache.Cache) Option {
	return func(p *Processor) {
		if cache != nil {
			p.cache = cache
		}
	}
}

// WithWriter overrides the tag writer (primarily for tests).
func WithWriter(write WriteFunc) Option {
	return func(p *Processor) {
		if write != nil {
			p.write = write
		}
	}
}

// WithDryRun reports what would be written without touching any file.
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) {
		p.dryRun = dryRun
	}
}

// WithLogger attaches a logger for run diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New constructs a Processor around the compiled filename pattern.
func New(pattern *filename.Pattern, opts ...Option) *Processor {
	p := &Processor{
		pattern: pattern,
		write:   tagging.Write,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "batch")
	return p
}

// Run processes the file or directory at root and reports the aggregate
// outcome. Every file yields one emit call; a run identifier tags every log
// line of the run.
func (p *Processor) Run(ctx context.Context, root string, recursive bool, emit func(FileResult)) (*Summary, error) {
	if p.pattern == nil {
		return nil, services.Wrap(services.ErrConfiguration, "batch", "run", "filename pattern is not configured", nil)
	}

	start := time.Now()
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := p.logger.With(logging.String(logging.FieldRunID, runID))

	info, err := os.Stat(root)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "batch", "run", fmt.Sprintf("path not found: %s", root), err)
	}

	files := []string{root}
	if info.IsDir() {
		files, err = collectFiles(root, recursive)
		if err != nil {
			return nil, services.Wrap(services.ErrTransient, "batch", "run", fmt.Sprintf("scan %s", root), err)
		}
	}

	logger.Info("run started",
		logging.String("root", root),
		logging.Int("file_count", len(files)),
		logging.Bool("recursive", recursive),
		logging.Bool("dry_run", p.dryRun),
		logging.Bool("enrichment", p.enricher != nil))

	summary := &Summary{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result := p.ProcessFile(ctx, path)
		summary.add(result.Status)
		if emit != nil {
			emit(result)
		}
	}

	logger.Info("run complete",
		logging.Int("tagged", summary.Tagged),
		logging.Int("failed", summary.Failed),
		logging.Int("skipped", summary.Skipped),
		logging.Duration("elapsed", time.Since(start)))

	return summary, nil
}

// ProcessFile runs the pipeline for one file: classify the extension, parse
// the name, optionally enrich, then write (or report, under dry-run).
func (p *Processor) ProcessFile(ctx context.Context, path string) FileResult {
	ctx = services.WithFile(ctx, path)
	logger := logging.WithContext(ctx, p.logger)

	ext := strings.ToLower(filepath.Ext(path))
	if !tagging.IsSupported(ext) {
		logger.Debug("skipping unsupported extension")
		return FileResult{Path: path, Status: StatusSkipped, Message: fmt.Sprintf("Unsupported format: %s", ext)}
	}

	parsed, ok := p.pattern.Parse(filepath.Base(path))
	if !ok {
		logger.Debug("filename does not match pattern", logging.String("pattern", p.pattern.String()))
		return FileResult{Path: path, Status: StatusSkipped, Message: fmt.Sprintf("Filename doesn't match pattern '%s'", p.pattern.String())}
	}

	tags := tagging.Tags{Artist: parsed.Artist, Title: parsed.Title}

	if p.enricher != nil {
		result, err := p.lookup(ctx, parsed.Artist, parsed.Title)
		switch {
		case errors.Is(err, services.ErrNotFound):
			logger.Debug("no release found; tagging with parsed fields only",
				logging.String("artist", parsed.Artist),
				logging.String("title", parsed.Title))
		case err != nil:
			logger.Error("lookup failed", logging.Error(err))
			return FileResult{Path: path, Status: StatusFailed, Message: fmt.Sprintf("Error: %s", err)}
		default:
			tags.Year = result.Year
			tags.Genre = release.GenreString(result.Genres, result.Styles)
			tags.Label = result.Label
		}
	}

	if p.dryRun {
		return FileResult{Path: path, Status: StatusTagged, Message: fmt.Sprintf("Would tag: artist='%s', title='%s'", tags.Artist, tags.Title)}
	}

	if err := p.write(path, tags); err != nil {
		if services.IsSkip(err) {
			logger.Debug("writer rejected extension", logging.Error(err))
			return FileResult{Path: path, Status: StatusSkipped, Message: fmt.Sprintf("Unsupported format: %s", ext)}
		}
		logging.ErrorWithContext(logger, "tag write failed", "tag_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "confirm the file is writable and not corrupt"))
		return FileResult{Path: path, Status: StatusFailed, Message: fmt.Sprintf("Error: %s", err)}
	}

	logger.Debug("tagged file",
		logging.String("artist", tags.Artist),
		logging.String("title", tags.Title),
		logging.Int("year", tags.Year))
	return FileResult{Path: path, Status: StatusTagged, Message: taggedMessage(tags)}
}

// lookup consults the cache first, then the resolver, storing fresh results
// back in the cache.
func (p *Processor) lookup(ctx context.Context, artist, title string) (*release.Result, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Lookup(artist, title); ok {
			p.logger.Debug("lookup cache hit",
				logging.String("artist", artist),
				logging.String("title", title))
			return &cached, nil
		}
	}

	result, err := p.enricher.FindEarliest(ctx, release.Query{Artist: artist, Title: title}, true)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Store(artist, title, *result); err != nil {
			logging.WarnWithContext(p.logger, "failed to store lookup result", "lookup_cache_store_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "next run will repeat this lookup"))
		}
	}
	return result, nil
}

func taggedMessage(tags tagging.Tags) string {
	msg := fmt.Sprintf("Tagged: artist='%s', title='%s'", tags.Artist, tags.Title)
	if tags.Year > 0 {
		msg += fmt.Sprintf(", year=%d", tags.Year)
	}
	if tags.Genre != "" {
		msg += fmt.Sprintf(", genre='%s'", tags.Genre)
	}
	return msg
}
