package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/nrs-labs/nrs/internal/branding"
)

// ErrUnauthorized is returned when the feed rejects the token.
var ErrUnauthorized = errors.New("feed rejected the token")

// Package is one search hit.
type Package struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Version     string        `json:"version"`
	Description string        `json:"description"`
	Versions    []VersionInfo `json:"versions"`
}

// VersionInfo is a published version of a package.
type VersionInfo struct {
	Version   string `json:"version"`
	Downloads int64  `json:"downloads"`
}

// Name returns the title the feed displays, falling back to the id.
func (p Package) Name() string {
	if p.Title != "" {
		return p.Title
	}
	return p.ID
}

// SearchResult is the decoded search response.
type SearchResult struct {
	TotalHits int       `json:"totalHits"`
	Packages  []Package `json:"data"`
}

// Client queries a single feed.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// New creates a Client for feedURL. A trailing "index.json" is dropped so
// the configured feed and the registered source URL can both be used.
func New(feedURL string, opts ...Option) *Client {
	base := strings.TrimSpace(feedURL)
	base = strings.TrimSuffix(base, "index.json")
	base = strings.TrimRight(base, "/")

	c := &Client{
		baseURL:    base,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchURL returns the query URL for query; an empty query lists everything.
func (c *Client) SearchURL(query string) string {
	u := c.baseURL + "/query/"
	if query != "" {
		u += "?q=" + url.QueryEscape(query)
	}
	return u
}

// Search runs a package search.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", branding.CLIName()+"-cli")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying feed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w (status %d)", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing search JSON: %w", err)
	}
	return &result, nil
}
