// Package feed locates the feed URL behind a user-supplied source URL.
package feed

import (
	"context"
	"log"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// feedTokens mark a URL as already pointing at a feed, skipping discovery.
var feedTokens = []string{"rss", "feed", ".xml", ".json", "feeds."}

// PageFetcher fetches the raw HTML of a page.
type PageFetcher interface {
	FetchPage(ctx context.Context, rawURL string) (string, error)
}

// Discoverer resolves homepage URLs to feed URLs by reading the page's
// alternate-link tags.
type Discoverer struct {
	fetcher PageFetcher
}

func NewDiscoverer(fetcher PageFetcher) *Discoverer {
	return &Discoverer{fetcher: fetcher}
}

// Discover returns the feed URL for a candidate URL. Discovery is best
// effort: any fetch or parse failure, or the absence of an alternate link,
// returns the candidate unchanged so downstream suffix guessing can still
// succeed.
func (d *Discoverer) Discover(ctx context.Context, candidateURL string) string {
	if LooksLikeFeedURL(candidateURL) {
		return candidateURL
	}

	body, err := d.fetcher.FetchPage(ctx, candidateURL)
	if err != nil {
		log.Printf("feed discovery fetch failed for %s: %v", candidateURL, err)
		return candidateURL
	}

	href := findAlternateLink(body)
	if href == "" {
		return candidateURL
	}

	resolved := resolveHref(candidateURL, href)
	if resolved == "" {
		return candidateURL
	}
	return resolved
}

// LooksLikeFeedURL reports whether a URL already looks like a feed endpoint.
func LooksLikeFeedURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, token := range feedTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// findAlternateLink walks the HTML looking for
// <link rel="alternate" type="application/rss+xml|application/atom+xml" href="...">.
func findAlternateLink(body string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(body))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "link" {
				continue
			}
			var rel, linkType, href string
			for _, attr := range token.Attr {
				switch strings.ToLower(attr.Key) {
				case "rel":
					rel = strings.ToLower(attr.Val)
				case "type":
					linkType = strings.ToLower(attr.Val)
				case "href":
					href = attr.Val
				}
			}
			if rel != "alternate" || href == "" {
				continue
			}
			if linkType == "application/rss+xml" || linkType == "application/atom+xml" {
				return href
			}
		}
	}
}

// resolveHref resolves a possibly relative href against the page URL.
func resolveHref(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
