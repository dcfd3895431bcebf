// Package github fetches public profile and repository data from the GitHub
// REST API. Every call re-fetches; there is no caching or retry layer.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultRepoLimit caps the repository page size, sorted by recency.
const DefaultRepoLimit = 15

// DefaultTimeout bounds each HTTP request.
const DefaultTimeout = 30 * time.Second

const userAgent = "Mozilla/5.0 (compatible; DevLens/1.0)"

// NotFoundError indicates the profile request did not resolve to a user.
type NotFoundError struct {
	Username string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("GitHub user @%s not found", e.Username)
}

// Client issues requests against the GitHub REST API.
type Client struct {
	baseURL   string
	token     string
	repoLimit int
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host (used in tests).
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithToken sets an optional bearer token to lift the unauthenticated rate limit.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRepoLimit overrides the repository page size.
func WithRepoLimit(n int) Option {
	return func(c *Client) { c.repoLimit = n }
}

// NewClient creates a GitHub API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		repoLimit: DefaultRepoLimit,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchUser retrieves the profile and recent repositories for a username with
// two concurrent requests. A failed profile request aborts the fetch; a failed
// repository request degrades to an empty list.
func (c *Client) FetchUser(ctx context.Context, username string) (*UserData, error) {
	if username == "" {
		return nil, fmt.Errorf("username is empty")
	}

	var (
		profile Profile
		repos   []Repository
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.getJSON(gCtx, fmt.Sprintf("/users/%s", username), username, &profile)
	})

	g.Go(func() error {
		path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=%d", username, c.repoLimit)
		// Repositories are best-effort: callers tolerate an empty list.
		if err := c.getJSON(gCtx, path, username, &repos); err != nil {
			repos = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &UserData{Profile: &profile, Repositories: repos}, nil
}

// getJSON issues one GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, path, username string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GitHub request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Any non-2xx on the profile call means the user does not resolve.
		return &NotFoundError{Username: username}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode GitHub response: %w", err)
	}
	return nil
}
