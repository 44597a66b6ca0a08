package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable is returned when every fetch strategy has been exhausted for
// a URL. Callers treat it as an ordinary miss, not a fault.
var ErrUnavailable = errors.New("content unavailable through all fetch strategies")

// FeedSuffixes are the common feed locations guessed against a base URL when
// the exact URL does not answer with feed content.
var FeedSuffixes = []string{"/feed", "/rss", "/rss.xml", "/feed.xml", "/atom.xml", "/index.xml"}

const (
	defaultAttemptTimeout = 8 * time.Second
	defaultUserAgent      = "Mozilla/5.0 (compatible; INSparkRSS/1.0; +https://insparklab.com)"

	// Bodies shorter than this from a raw passthrough relay are assumed to be
	// relay error pages rather than feed content.
	minRelayBodyLength = 64
)

// strategy is one way of obtaining remote content. Strategies are tried in
// order; the first one returning a non-empty body wins.
type strategy struct {
	name string
	get  func(ctx context.Context, rawURL string) (string, error)
}

// Client fetches remote feed content, first directly and then through a fixed
// ordered list of public relay endpoints. The zero value is not usable; call
// NewClient.
type Client struct {
	httpClient *http.Client
	userAgent  string

	// AttemptTimeout bounds each individual strategy attempt.
	AttemptTimeout time.Duration

	// Relay endpoint templates, overridable in tests. %s receives the
	// percent-encoded target URL.
	WrapRelayURL string
	RawRelayURLs []string

	// GuessSuffixes enables feed-suffix probing on the direct strategy.
	GuessSuffixes bool
}

// NewClient creates a fetch client with the production relay chain.
func NewClient() *Client {
	return &Client{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		userAgent:      defaultUserAgent,
		AttemptTimeout: defaultAttemptTimeout,
		WrapRelayURL:   "https://api.allorigins.win/get?url=%s",
		RawRelayURLs: []string{
			"https://api.allorigins.win/raw?url=%s",
			"https://corsproxy.io/?url=%s",
			"https://api.codetabs.com/v1/proxy?quest=%s",
		},
		GuessSuffixes: true,
	}
}

// FetchRaw returns the body of the given URL, trying the direct route and
// then each relay in priority order. It returns ErrUnavailable when nothing
// answered with plausible content. The order is fixed so failures reproduce.
func (c *Client) FetchRaw(ctx context.Context, rawURL string) (string, error) {
	for _, s := range c.strategies() {
		body, err := s.get(ctx, rawURL)
		if err != nil {
			log.Printf("fetch strategy %s failed for %s: %v", s.name, rawURL, err)
			continue
		}
		if body != "" {
			return body, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, rawURL)
}

// FetchPage returns the body of the given URL without requiring it to look
// like feed content. Used for homepage HTML during feed discovery. The relay
// chain still applies when the direct route fails.
func (c *Client) FetchPage(ctx context.Context, rawURL string) (string, error) {
	body, _, err := c.attempt(ctx, rawURL)
	if err == nil && strings.TrimSpace(body) != "" {
		return body, nil
	}

	body, err = c.fetchWrapped(ctx, rawURL)
	if err == nil {
		return body, nil
	}
	for _, tmpl := range c.RawRelayURLs {
		body, err = c.fetchRawRelay(ctx, tmpl, rawURL)
		if err == nil {
			return body, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnavailable, rawURL)
}

func (c *Client) strategies() []strategy {
	strategies := []strategy{
		{name: "direct", get: c.fetchDirect},
		{name: "wrap-relay", get: c.fetchWrapped},
	}
	for i, tmpl := range c.RawRelayURLs {
		tmpl := tmpl
		strategies = append(strategies, strategy{
			name: fmt.Sprintf("raw-relay-%d", i+1),
			get: func(ctx context.Context, rawURL string) (string, error) {
				return c.fetchRawRelay(ctx, tmpl, rawURL)
			},
		})
	}
	return strategies
}

// fetchDirect tries the exact URL, then the common feed suffixes against the
// base URL with any trailing slash stripped. A body is accepted only when it
// sniffs as feed content.
func (c *Client) fetchDirect(ctx context.Context, rawURL string) (string, error) {
	body, contentType, err := c.attempt(ctx, rawURL)
	if err == nil && LooksLikeFeed(body, contentType) {
		return body, nil
	}

	if !c.GuessSuffixes {
		if err != nil {
			return "", err
		}
		return "", errors.New("body does not look like a feed")
	}

	base := strings.TrimSuffix(rawURL, "/")
	for _, suffix := range FeedSuffixes {
		body, contentType, err = c.attempt(ctx, base+suffix)
		if err == nil && LooksLikeFeed(body, contentType) {
			return body, nil
		}
	}
	return "", errors.New("no feed at URL or any known suffix")
}

// fetchWrapped calls the JSON-wrapping relay whose body is {"contents": "..."}.
func (c *Client) fetchWrapped(ctx context.Context, rawURL string) (string, error) {
	body, _, err := c.attempt(ctx, fmt.Sprintf(c.WrapRelayURL, url.QueryEscape(rawURL)))
	if err != nil {
		return "", err
	}

	var wrapped struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal([]byte(body), &wrapped); err != nil {
		return "", fmt.Errorf("decoding relay envelope: %w", err)
	}
	if strings.TrimSpace(wrapped.Contents) == "" {
		return "", errors.New("relay returned empty contents")
	}
	return wrapped.Contents, nil
}

// fetchRawRelay calls a passthrough relay that returns the target body
// directly. Trivially short bodies are rejected as relay error pages.
func (c *Client) fetchRawRelay(ctx context.Context, tmpl, rawURL string) (string, error) {
	body, _, err := c.attempt(ctx, fmt.Sprintf(tmpl, url.QueryEscape(rawURL)))
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(body)) < minRelayBodyLength {
		return "", errors.New("relay body too short to be feed content")
	}
	return body, nil
}

// attempt performs one GET with the per-attempt timeout. Non-2xx responses
// are failures.
func (c *Client) attempt(ctx context.Context, fetchURL string) (body, contentType string, err error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, application/json, text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetching %s: %w", fetchURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", "", fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, fetchURL)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response body: %w", err)
	}
	return string(raw), resp.Header.Get("Content-Type"), nil
}
