// Package parse turns a configured source into raw feed items, trying
// independent strategies until one yields content.
package parse

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

// RawFetcher fetches remote feed content through the relay chain.
type RawFetcher interface {
	FetchRaw(ctx context.Context, rawURL string) (string, error)
}

// parseStrategy is one way of turning a feed URL into items. Strategies are
// tried in order; the first one yielding at least one item wins.
type parseStrategy struct {
	name  string
	parse func(ctx context.Context, feedURL string) ([]model.RawItem, error)
}

// Parser resolves a source to raw items. It never fails a source: when every
// strategy is exhausted the source simply contributes nothing.
type Parser struct {
	fetcher RawFetcher
	feed    *gofeed.Parser

	converters []Converter
}

// NewParser creates a parser with the production converter chain.
func NewParser(fetcher RawFetcher) *Parser {
	return &Parser{
		fetcher:    fetcher,
		feed:       gofeed.NewParser(),
		converters: DefaultConverters(),
	}
}

// SetConverters replaces the hosted converter chain. Used by tests and by
// deployments that disable third-party converters.
func (p *Parser) SetConverters(converters []Converter) {
	p.converters = converters
}

// ParseSource fetches and parses one source. A blank source URL contributes
// nothing; so does a source for which every strategy failed.
func (p *Parser) ParseSource(ctx context.Context, source model.Source) []model.RawItem {
	if strings.TrimSpace(source.URL) == "" {
		return nil
	}

	for _, s := range p.strategies() {
		items, err := s.parse(ctx, source.URL)
		if err != nil {
			log.Printf("parse strategy %s failed for %s: %v", s.name, source.URL, err)
			continue
		}
		if len(items) > 0 {
			for i := range items {
				items[i].SourceName = source.Name
			}
			return items
		}
	}

	log.Printf("all parse strategies exhausted for source %s (%s)", source.Name, source.URL)
	return nil
}

func (p *Parser) strategies() []parseStrategy {
	strategies := []parseStrategy{
		{name: "direct-xml", parse: p.parseDirect},
	}
	for _, conv := range p.converters {
		conv := conv
		strategies = append(strategies, parseStrategy{
			name:  "converter-" + conv.Name(),
			parse: conv.Convert,
		})
	}
	return strategies
}

// parseDirect fetches the raw body through the relay chain and parses it as
// RSS/Atom/RDF/JSON Feed.
func (p *Parser) parseDirect(ctx context.Context, feedURL string) ([]model.RawItem, error) {
	body, err := p.fetcher.FetchRaw(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	parsed, err := p.feed.ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed body: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, errors.New("feed parsed but contains no items")
	}

	items := make([]model.RawItem, 0, len(parsed.Items))
	for _, entry := range parsed.Items {
		items = append(items, fromGofeedItem(entry))
	}
	return items, nil
}

// fromGofeedItem maps one gofeed entry into a RawItem, applying the image
// fallback cascade: media:content, media:thumbnail, image enclosure, then
// the first <img> inside the description or content markup.
func fromGofeedItem(entry *gofeed.Item) model.RawItem {
	item := model.RawItem{
		Title:       strings.TrimSpace(entry.Title),
		Link:        strings.TrimSpace(entry.Link),
		Description: firstNonEmpty(entry.Description, entry.Content),
	}

	item.PubDate = firstNonEmpty(entry.Published, entry.Updated)
	if t := firstParsedDate(entry.PublishedParsed, entry.UpdatedParsed); !t.IsZero() {
		item.ParsedDate = t
	} else if item.PubDate != "" {
		if t, err := ParseDate(item.PubDate); err == nil {
			item.ParsedDate = t
		}
	}

	item.ImageURL = imageFromEntry(entry)
	return item
}

func imageFromEntry(entry *gofeed.Item) string {
	if u := mediaAttr(entry, "content"); u != "" {
		return u
	}
	if u := mediaAttr(entry, "thumbnail"); u != "" {
		return u
	}
	for _, enc := range entry.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if entry.Image != nil && entry.Image.URL != "" {
		return entry.Image.URL
	}
	if src := FirstImageSrc(entry.Description); src != "" {
		return src
	}
	return FirstImageSrc(entry.Content)
}

// mediaAttr reads the url attribute of a media-namespace extension element.
func mediaAttr(entry *gofeed.Item, element string) string {
	media, ok := entry.Extensions["media"]
	if !ok {
		return ""
	}
	for _, ext := range media[element] {
		if u := ext.Attrs["url"]; u != "" {
			return u
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstParsedDate(times ...*time.Time) time.Time {
	for _, t := range times {
		if t != nil && !t.IsZero() {
			return *t
		}
	}
	return time.Time{}
}
