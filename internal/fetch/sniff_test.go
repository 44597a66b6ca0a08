package fetch

import "testing"

func TestLooksLikeFeed(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		expected    bool
	}{
		{"rss", `<?xml version="1.0"?><rss version="2.0"><channel></channel></rss>`, "text/xml", true},
		{"atom", `<feed xmlns="http://www.w3.org/2005/Atom"></feed>`, "application/atom+xml", true},
		{"rdf", `<rdf:RDF></rdf:RDF>`, "text/xml", true},
		{"xml declaration only", `<?xml version="1.0"?><root/>`, "text/xml", true},
		{"json object", `{"items": []}`, "application/json", true},
		{"html page", `<!DOCTYPE html><html><body>hi</body></html>`, "text/html", false},
		{"html page declared xml", `<!DOCTYPE html><html><rss></rss></html>`, "text/xml", true},
		{"plain text", `hello world`, "text/plain", false},
		{"empty", ``, "", false},
		{"whitespace", "   \n\t ", "", false},
		{"markup without feed markers", `<div>not a feed</div>`, "text/html", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := LooksLikeFeed(test.body, test.contentType); got != test.expected {
				t.Errorf("LooksLikeFeed(%q, %q) = %v, want %v", test.body, test.contentType, got, test.expected)
			}
		})
	}
}

func TestFeedContentType(t *testing.T) {
	if got := FeedContentType(`{"a":1}`); got != "application/json; charset=utf-8" {
		t.Errorf("Expected JSON content type, got %q", got)
	}
	if got := FeedContentType(`<rss/>`); got != "text/xml; charset=utf-8" {
		t.Errorf("Expected XML content type, got %q", got)
	}
}
