package fetch

import "strings"

// feedMarkers are the substrings an XML body must carry to count as a feed.
var feedMarkers = []string{"<rss", "<feed", "<rdf", "<?xml"}

// LooksLikeFeed reports whether a response body is plausibly feed content:
// XML carrying one of the feed markers, or a JSON object. Plain HTML documents
// are rejected unless the declared content type says XML (some feeds ship a
// doctype anyway).
func LooksLikeFeed(body, contentType string) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return false
	}

	if strings.HasPrefix(trimmed, "{") {
		return true
	}

	if !strings.HasPrefix(trimmed, "<") {
		return false
	}

	if strings.HasPrefix(strings.ToLower(trimmed), "<!doctype html") && !strings.Contains(contentType, "xml") {
		return false
	}

	for _, marker := range feedMarkers {
		if strings.Contains(trimmed, marker) {
			return true
		}
	}
	return false
}

// FeedContentType returns the content type to declare for a validated feed
// body: JSON for JSON bodies, XML otherwise.
func FeedContentType(body string) string {
	if strings.HasPrefix(strings.TrimSpace(body), "{") {
		return "application/json; charset=utf-8"
	}
	return "text/xml; charset=utf-8"
}
