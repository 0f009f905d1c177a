// Package discogs provides a typed client for the Discogs database API
// endpoints Stylus uses: release search and release detail.
package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const searchPerPage = 50

// FlexInt decodes JSON values that arrive as either numbers or numeric
// strings. Search payloads are inconsistent about the year field; anything
// non-numeric decodes to zero rather than failing the whole response.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*f = 0
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(int(n))
	return nil
}

// Int returns the decoded value as a plain int.
func (f FlexInt) Int() int { return int(f) }

// SearchResult represents a single row of a release search response.
type SearchResult struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Year    FlexInt  `json:"year"`
	Country string   `json:"country"`
	Genre   []string `json:"genre"`
	Style   []string `json:"style"`
	Label   []string `json:"label"`
	Format  []string `json:"format"`
}

// Pagination models the paging envelope of search responses.
type Pagination struct {
	Page    int `json:"page"`
	Pages   int `json:"pages"`
	PerPage int `json:"per_page"`
	Items   int `json:"items"`
}

// SearchResponse models the release search payload.
type SearchResponse struct {
	Pagination Pagination     `json:"pagination"`
	Results    []SearchResult `json:"results"`
}

// ReleaseLabel is one label credit on a release.
type ReleaseLabel struct {
	Name string `json:"name"`
}

// Track is a single tracklist entry.
type Track struct {
	Position string `json:"position"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

// Release captures the release detail payload.
type Release struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Year      FlexInt        `json:"year"`
	Genres    []string       `json:"genres"`
	Styles    []string       `json:"styles"`
	Labels    []ReleaseLabel `json:"labels"`
	Tracklist []Track        `json:"tracklist"`
}

// Searcher defines the Discogs operations the release resolver uses.
type Searcher interface {
	Search(ctx context.Context, query string) (*SearchResponse, error)
	Release(ctx context.Context, id int64) (*Release, error)
}

// Client provides access to the Discogs database API.
type Client struct {
	token      string
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ Searcher = (*Client)(nil)

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithHTTPClient swaps the transport used for API calls; nil keeps the
// default.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateLimit overrides the client-side request pacing. Tests pass rate.Inf.
func WithRateLimit(limit rate.Limit) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, 1)
	}
}

// New creates a Discogs client. The token may be empty for anonymous access;
// authenticated requests get a larger remote quota.
func New(token, baseURL, userAgent string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("discogs base url required")
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		return nil, errors.New("discogs user agent required")
	}
	client := &Client{
		token:      strings.TrimSpace(token),
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Discogs allows sixty requests per minute for authenticated clients.
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Authenticated reports whether the client sends a personal access token.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// Search performs a release search for the supplied query.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(c.baseURL + "/database/search")
	if err != nil {
		return nil, fmt.Errorf("parse discogs url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "release")
	params.Set("per_page", strconv.Itoa(searchPerPage))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discogs search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode discogs response: %w", err)
	}
	return &payload, nil
}

// Release fetches the release detail payload by Discogs ID.
func (c *Client) Release(ctx context.Context, id int64) (*Release, error) {
	if id <= 0 {
		return nil, errors.New("release id must be positive")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/releases/%d", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("parse discogs url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discogs release returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload Release
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode release response: %w", err)
	}
	return &payload, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}
}

// ReleaseURL returns the public web page for a release.
func ReleaseURL(id int64) string {
	return fmt.Sprintf("https://www.discogs.com/release/%d", id)
}
