package parse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

type stubRawFetcher struct {
	body string
	err  error
}

func (s *stubRawFetcher) FetchRaw(ctx context.Context, rawURL string) (string, error) {
	return s.body, s.err
}

type stubConverter struct {
	name  string
	items []model.RawItem
	err   error
	calls int
}

func (c *stubConverter) Name() string { return c.name }

func (c *stubConverter) Convert(ctx context.Context, feedURL string) ([]model.RawItem, error) {
	c.calls++
	return c.items, c.err
}

func newTestParser(fetcher RawFetcher, converters ...Converter) *Parser {
	p := NewParser(fetcher)
	p.SetConverters(converters)
	return p
}

func TestParseSourceRSS(t *testing.T) {
	const n = 3
	body := `<?xml version="1.0"?><rss version="2.0"><channel><title>Feed</title>`
	for i := 1; i <= n; i++ {
		body += fmt.Sprintf(
			`<item><title>Story %d</title><link>https://example.com/%d</link><pubDate>Mon, 0%d Jan 2024 10:00:00 +0000</pubDate><description>Body %d</description></item>`,
			i, i, i, i)
	}
	body += `</channel></rss>`

	parser := newTestParser(&stubRawFetcher{body: body})
	items := parser.ParseSource(context.Background(), model.Source{Name: "Example", URL: "https://example.com/rss"})

	if len(items) != n {
		t.Fatalf("Expected %d items, got %d", n, len(items))
	}
	for i, item := range items {
		wantTitle := fmt.Sprintf("Story %d", i+1)
		wantLink := fmt.Sprintf("https://example.com/%d", i+1)
		if item.Title != wantTitle {
			t.Errorf("item %d title = %q, want %q", i, item.Title, wantTitle)
		}
		if item.Link != wantLink {
			t.Errorf("item %d link = %q, want %q", i, item.Link, wantLink)
		}
		if item.SourceName != "Example" {
			t.Errorf("item %d source = %q, want Example", i, item.SourceName)
		}
		if item.ParsedDate.IsZero() {
			t.Errorf("item %d has no parsed date", i)
		}
	}
}

func TestParseSourceAtomLinkHref(t *testing.T) {
	body := `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Feed</title>
  <entry>
    <title>Atom Story</title>
    <link href="https://example.com/atom-story"/>
    <updated>2024-01-05T12:00:00Z</updated>
    <summary>Summary text</summary>
  </entry>
</feed>`

	parser := newTestParser(&stubRawFetcher{body: body})
	items := parser.ParseSource(context.Background(), model.Source{Name: "Atom", URL: "https://example.com/atom.xml"})

	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if items[0].Link != "https://example.com/atom-story" {
		t.Errorf("Expected link from href attribute, got %q", items[0].Link)
	}
}

func TestParseSourceImageCascade(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		expected string
	}{
		{
			"media content",
			`<item><title>A</title><link>https://e.com/a</link><media:content url="https://img.e.com/mc.jpg" medium="image"/></item>`,
			"https://img.e.com/mc.jpg",
		},
		{
			"media thumbnail",
			`<item><title>B</title><link>https://e.com/b</link><media:thumbnail url="https://img.e.com/mt.jpg"/></item>`,
			"https://img.e.com/mt.jpg",
		},
		{
			"image enclosure",
			`<item><title>C</title><link>https://e.com/c</link><enclosure url="https://img.e.com/en.jpg" type="image/jpeg" length="1"/></item>`,
			"https://img.e.com/en.jpg",
		},
		{
			"img tag in description",
			`<item><title>D</title><link>https://e.com/d</link><description>&lt;img src="https://img.e.com/de.jpg"&gt; text</description></item>`,
			"https://img.e.com/de.jpg",
		},
		{
			"no image",
			`<item><title>E</title><link>https://e.com/e</link><description>plain</description></item>`,
			"",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			body := `<?xml version="1.0"?><rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/"><channel><title>F</title>` +
				test.item + `</channel></rss>`
			parser := newTestParser(&stubRawFetcher{body: body})
			items := parser.ParseSource(context.Background(), model.Source{Name: "F", URL: "https://e.com/rss"})
			if len(items) != 1 {
				t.Fatalf("Expected 1 item, got %d", len(items))
			}
			if items[0].ImageURL != test.expected {
				t.Errorf("ImageURL = %q, want %q", items[0].ImageURL, test.expected)
			}
		})
	}
}

func TestParseSourceFallsBackToConverter(t *testing.T) {
	conv := &stubConverter{
		name:  "stub",
		items: []model.RawItem{{Title: "Converted", Link: "https://e.com/conv"}},
	}
	parser := newTestParser(&stubRawFetcher{err: errors.New("unreachable")}, conv)

	items := parser.ParseSource(context.Background(), model.Source{Name: "S", URL: "https://e.com/rss"})
	if len(items) != 1 || items[0].Title != "Converted" {
		t.Fatalf("Expected converter items, got %+v", items)
	}
	if conv.calls != 1 {
		t.Errorf("Expected 1 converter call, got %d", conv.calls)
	}
	if items[0].SourceName != "S" {
		t.Errorf("Expected source name set on converter items, got %q", items[0].SourceName)
	}
}

func TestParseSourceConverterChainAdvances(t *testing.T) {
	failing := &stubConverter{name: "failing", err: errors.New("schema mismatch")}
	empty := &stubConverter{name: "empty"}
	working := &stubConverter{name: "working", items: []model.RawItem{{Title: "W", Link: "https://e.com/w"}}}

	parser := newTestParser(&stubRawFetcher{err: errors.New("unreachable")}, failing, empty, working)

	items := parser.ParseSource(context.Background(), model.Source{Name: "S", URL: "https://e.com/rss"})
	if len(items) != 1 || items[0].Title != "W" {
		t.Fatalf("Expected last converter to win, got %+v", items)
	}
	if failing.calls != 1 || empty.calls != 1 || working.calls != 1 {
		t.Errorf("Expected each converter tried once, got %d/%d/%d", failing.calls, empty.calls, working.calls)
	}
}

func TestParseSourceTotalFailure(t *testing.T) {
	parser := newTestParser(&stubRawFetcher{err: errors.New("unreachable")})

	items := parser.ParseSource(context.Background(), model.Source{Name: "S", URL: "https://e.com/rss"})
	if len(items) != 0 {
		t.Errorf("Expected no items on total failure, got %d", len(items))
	}
}

func TestParseSourceBlankURL(t *testing.T) {
	conv := &stubConverter{name: "stub", items: []model.RawItem{{Title: "X", Link: "https://e.com/x"}}}
	parser := newTestParser(&stubRawFetcher{body: "ignored"}, conv)

	items := parser.ParseSource(context.Background(), model.Source{Name: "Blank", URL: "   "})
	if len(items) != 0 {
		t.Errorf("Expected blank URL source to contribute nothing, got %d items", len(items))
	}
	if conv.calls != 0 {
		t.Errorf("Expected no converter calls for blank URL, got %d", conv.calls)
	}
}

func TestParseSourceUnparseableBody(t *testing.T) {
	parser := newTestParser(&stubRawFetcher{body: "this is not xml at all"})

	items := parser.ParseSource(context.Background(), model.Source{Name: "S", URL: "https://e.com/rss"})
	if len(items) != 0 {
		t.Errorf("Expected no items for unparseable body, got %d", len(items))
	}
}
