// Package release resolves an (artist, title) pair to the earliest Discogs
// pressing, optionally confirming candidates against their tracklists.
package release

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"log/slog"

	"golang.org/x/text/cases"

	"stylus/internal/discogs"
	"stylus/internal/logging"
	"stylus/internal/services"
)

// defaultDetailDelay paces release-detail fetches between candidates.
const defaultDetailDelay = 500 * time.Millisecond

// minReleaseYear discards placeholder years; missing or non-numeric years
// decode to zero and fall below it.
const minReleaseYear = 1900

// Query is the immutable resolver input; both fields must be non-empty after
// trimming.
type Query struct {
	Artist string
	Title  string
}

// Result captures the metadata of the selected release.
type Result struct {
	Artist     string   `json:"artist"`
	Title      string   `json:"title"`
	Year       int      `json:"year"`
	Genres     []string `json:"genres"`
	Styles     []string `json:"styles"`
	Label      string   `json:"label"`
	Format     string   `json:"format"`
	Country    string   `json:"country"`
	ReleaseID  int64    `json:"release_id"`
	ReleaseURL string   `json:"release_url"`
}

// Resolver searches the catalog and selects the earliest plausible release.
type Resolver struct {
	client discogs.Searcher
	delay  time.Duration
	logger *slog.Logger
}

// Option customises the Resolver.
type Option func(*Resolver)

// WithDelay overrides the courtesy pause that follows each successful
// release-detail fetch.
func WithDelay(d time.Duration) Option {
	return func(r *Resolver) {
		if d >= 0 {
			r.delay = d
		}
	}
}

// WithLogger attaches a logger for candidate-level diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New constructs a Resolver around the supplied catalog client.
func New(client discogs.Searcher, opts ...Option) *Resolver {
	r := &Resolver{
		client: client,
		delay:  defaultDetailDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.NewComponentLogger(r.logger, "release")
	return r
}

// FindEarliest searches for "{artist} {title}", keeps candidates with a
// plausible year, and returns the earliest one. With verify set, candidates
// are fetched in order until one's tracklist contains the queried title; when
// none does, the earliest candidate is returned unverified. A missing result
// is reported through services.ErrNotFound.
func (r *Resolver) FindEarliest(ctx context.Context, q Query, verify bool) (*Result, error) {
	artist := strings.TrimSpace(q.Artist)
	title := strings.TrimSpace(q.Title)
	if artist == "" || title == "" {
		return nil, services.Wrap(services.ErrValidation, "release", "find_earliest", "artist and title are required", nil)
	}
	if r.client == nil {
		return nil, services.Wrap(services.ErrConfiguration, "release", "find_earliest", "catalog client is not configured", nil)
	}

	query := artist + " " + title
	resp, err := r.client.Search(ctx, query)
	if err != nil {
		return nil, services.Wrap(services.ErrExternalService, "release", "search", fmt.Sprintf("search %q", query), err)
	}

	candidates := filterCandidates(resp.Results)
	if len(candidates) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "release", "search", fmt.Sprintf("no releases found for %q", query), nil)
	}
	r.logger.Debug("candidates filtered",
		logging.String("artist", artist),
		logging.String("title", title),
		logging.Int("total", len(resp.Results)),
		logging.Int("kept", len(candidates)))

	if !verify {
		return resultFromSearch(artist, title, candidates[0]), nil
	}

	for _, cand := range candidates {
		detail, err := r.client.Release(ctx, cand.ID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Debug("release detail fetch failed",
				logging.Int64("release_id", cand.ID),
				logging.Error(err))
			continue
		}
		if err := r.pause(ctx); err != nil {
			return nil, err
		}
		if tracklistContains(detail.Tracklist, title) {
			r.logger.Debug("tracklist verified",
				logging.Int64("release_id", cand.ID),
				logging.Int("year", cand.Year.Int()))
			return resultFromDetail(artist, title, cand, detail), nil
		}
	}

	first := candidates[0]
	logging.WarnWithContext(r.logger, "returning unverified candidate", "verification_exhausted",
		logging.String("artist", artist),
		logging.String("title", title),
		logging.Int64("release_id", first.ID),
		logging.String(logging.FieldImpact, "metadata may describe a different pressing"),
		logging.String(logging.FieldErrorHint, "confirm the release on Discogs before trusting year or label"))
	return resultFromSearch(artist, title, first), nil
}

func (r *Resolver) pause(ctx context.Context) error {
	if r.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(r.delay):
		return nil
	}
}

func filterCandidates(results []discogs.SearchResult) []discogs.SearchResult {
	kept := make([]discogs.SearchResult, 0, len(results))
	for _, res := range results {
		if res.Year.Int() > minReleaseYear {
			kept = append(kept, res)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Year.Int() < kept[j].Year.Int()
	})
	return kept
}

func tracklistContains(tracks []discogs.Track, title string) bool {
	for _, track := range tracks {
		if titleMatches(title, track.Title) {
			return true
		}
	}
	return false
}

// titleMatches folds both titles per Unicode and accepts containment in
// either direction, so "Comfortably Numb" matches "Comfortably Numb (Live)".
func titleMatches(queryTitle, trackTitle string) bool {
	fold := cases.Fold()
	q := strings.TrimSpace(fold.String(queryTitle))
	t := strings.TrimSpace(fold.String(trackTitle))
	if q == "" || t == "" {
		return false
	}
	return strings.Contains(t, q) || strings.Contains(q, t)
}

func resultFromSearch(artist, title string, cand discogs.SearchResult) *Result {
	return &Result{
		Artist:     artist,
		Title:      title,
		Year:       cand.Year.Int(),
		Genres:     copyStrings(cand.Genre),
		Styles:     copyStrings(cand.Style),
		Label:      firstString(cand.Label),
		Format:     firstString(cand.Format),
		Country:    cand.Country,
		ReleaseID:  cand.ID,
		ReleaseURL: discogs.ReleaseURL(cand.ID),
	}
}

func resultFromDetail(artist, title string, cand discogs.SearchResult, detail *discogs.Release) *Result {
	label := ""
	if len(detail.Labels) > 0 {
		label = detail.Labels[0].Name
	}
	return &Result{
		Artist:     artist,
		Title:      title,
		Year:       cand.Year.Int(),
		Genres:     copyStrings(detail.Genres),
		Styles:     copyStrings(detail.Styles),
		Label:      label,
		Format:     firstString(cand.Format),
		Country:    cand.Country,
		ReleaseID:  cand.ID,
		ReleaseURL: discogs.ReleaseURL(cand.ID),
	}
}

func firstString(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func copyStrings(values []string) []string {
	out := make([]string, 0, len(values))
	return append(out, values...)
}
