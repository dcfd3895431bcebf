package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// profileBaseURL is the public GitHub website, scraped for the contribution
// counter that the REST API does not expose.
const profileBaseURL = "https://github.com"

// FetchContributionSummary scrapes the public profile page for the yearly
// contribution headline (e.g. "2,307 contributions in the last year").
// This is a best-effort enrichment for the audit prompt: callers must treat
// an empty result or an error as "no signal".
func (c *Client) FetchContributionSummary(ctx context.Context, username string) (string, error) {
	base := profileBaseURL
	if c.baseURL != DefaultBaseURL {
		base = c.baseURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/"+username, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("profile page request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile page returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse profile page: %w", err)
	}

	var summary string
	doc.Find("h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if strings.Contains(text, "contribution") {
			summary = text
			return false
		}
		return true
	})

	return summary, nil
}
