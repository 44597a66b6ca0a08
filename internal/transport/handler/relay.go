package handler

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/inspark-lab/inspark-daily/internal/fetch"
	"github.com/inspark-lab/inspark-daily/internal/transport/response"
)

const relayUserAgent = "Mozilla/5.0 (compatible; INSparkRSS/1.0; +https://insparklab.com)"

// Relay proxies feed content for browser callers that cannot fetch
// cross-origin. It tries the exact URL first, then the common feed suffixes,
// and only passes through bodies that look like feed content.
type Relay struct {
	client         *http.Client
	AttemptTimeout time.Duration
}

func NewRelay(attemptTimeout time.Duration) *Relay {
	return &Relay{
		client:         &http.Client{Timeout: 30 * time.Second},
		AttemptTimeout: attemptTimeout,
	}
}

func (h *Relay) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	targetURL := r.URL.Query().Get("url")
	if targetURL == "" {
		response.WriteBadRequest(w, "URL is required")
		return
	}

	ctx := r.Context()

	// Sequential guessing: the exact URL, then each known feed suffix
	// against the base URL with any trailing slash stripped.
	body, contentType := h.tryFetch(ctx, targetURL)
	if body == "" {
		base := strings.TrimSuffix(targetURL, "/")
		for _, suffix := range fetch.FeedSuffixes {
			body, contentType = h.tryFetch(ctx, base+suffix)
			if body != "" {
				break
			}
		}
	}

	if body == "" {
		response.WriteNotFound(w, "Unable to find valid RSS feed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}

// tryFetch performs one bounded GET and validates the body as feed content.
// Any failure returns empty strings; the caller moves on to the next guess.
func (h *Relay) tryFetch(ctx context.Context, fetchURL string) (body, contentType string) {
	attemptCtx, cancel := context.WithTimeout(ctx, h.AttemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", ""
	}
	req.Header.Set("User-Agent", relayUserAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		log.Printf("relay fetch failed for %s: %v", fetchURL, err)
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ""
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ""
	}

	text := string(raw)
	if !fetch.LooksLikeFeed(text, resp.Header.Get("Content-Type")) {
		return "", ""
	}
	return text, fetch.FeedContentType(text)
}
