// Package aggregate runs the per-zone pipeline: resolve every source
// concurrently, merge, order and normalize whatever came back.
package aggregate

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

// SourceParser resolves one source to raw items, absorbing all failures.
type SourceParser interface {
	ParseSource(ctx context.Context, source model.Source) []model.RawItem
}

// Resolver turns a homepage URL into a feed URL, best effort.
type Resolver interface {
	Discover(ctx context.Context, candidateURL string) string
}

// ZoneError is the zone-level failure: every source of a non-empty zone
// contributed zero valid items.
type ZoneError struct {
	Zone string
}

func (e *ZoneError) Error() string {
	return fmt.Sprintf("failed to fetch news for zone %q", e.Zone)
}

// ZoneNews is one pipeline invocation's result: normalized articles plus a
// short markdown digest of the top stories.
type ZoneNews struct {
	Text  string          `json:"text"`
	Items []model.Article `json:"items"`
}

// Aggregator owns one zone fetch at a time. It keeps no state between
// invocations; concurrent calls for different zones are fully independent.
type Aggregator struct {
	resolver Resolver
	parser   SourceParser
}

func New(resolver Resolver, parser SourceParser) *Aggregator {
	return &Aggregator{resolver: resolver, parser: parser}
}

// FetchZone fans out across the zone's sources, waits for all of them, and
// returns the merged normalized article list. One failing source never blocks
// or fails the others; only a zone where nothing at all came back is an error.
func (a *Aggregator) FetchZone(ctx context.Context, zoneTitle string, sources []model.Source) (*ZoneNews, error) {
	items := a.CollectItems(ctx, zoneTitle, sources)

	attempted := 0
	for _, s := range sources {
		if strings.TrimSpace(s.URL) != "" {
			attempted++
		}
	}

	news := NewsFromItems(zoneTitle, items)
	if len(news.Items) == 0 {
		if attempted > 0 {
			return nil, &ZoneError{Zone: zoneTitle}
		}
		return news, nil
	}
	return news, nil
}

// NewsFromItems normalizes raw items into the caller-facing result shape,
// digest text included. Used both on fresh fetches and on cached reads.
func NewsFromItems(zoneTitle string, items []model.RawItem) *ZoneNews {
	articles := Normalize(items)
	news := &ZoneNews{Items: articles}
	if len(articles) > 0 {
		news.Text = digest(zoneTitle, articles)
	}
	if news.Items == nil {
		news.Items = []model.Article{}
	}
	return news
}

// CollectItems runs the raw half of the pipeline: discovery and parsing per
// source concurrently, then flatten, sort and dedup by link. Callers that own
// a cache store this output and normalize on read.
func (a *Aggregator) CollectItems(ctx context.Context, zoneTitle string, sources []model.Source) []model.RawItem {
	var (
		mu        sync.Mutex
		collected []model.RawItem
		wg        sync.WaitGroup
	)

	for _, src := range sources {
		if strings.TrimSpace(src.URL) == "" {
			continue
		}
		wg.Add(1)
		go func(s model.Source) {
			defer wg.Done()
			feedURL := a.resolver.Discover(ctx, s.URL)
			items := a.parser.ParseSource(ctx, model.Source{Name: s.Name, URL: feedURL})
			mu.Lock()
			collected = append(collected, items...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	SortItems(collected)
	deduped := dedupByLink(collected)
	log.Printf("zone %q: %d sources yielded %d items (%d after dedup)",
		zoneTitle, len(sources), len(collected), len(deduped))
	return deduped
}

// dedupByLink keeps the first occurrence of each link. Items without a link
// pass through; normalization drops them later.
func dedupByLink(items []model.RawItem) []model.RawItem {
	seen := make(map[string]bool, len(items))
	out := make([]model.RawItem, 0, len(items))
	for _, item := range items {
		key := strings.TrimSpace(item.Link)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, item)
	}
	return out
}

// digest renders a small markdown summary of the zone's freshest stories,
// the text channel callers show next to the article list.
func digest(zoneTitle string, articles []model.Article) string {
	const topStories = 5

	var b strings.Builder
	fmt.Fprintf(&b, "## Top stories: %s\n\n", zoneTitle)
	for i, article := range articles {
		if i >= topStories {
			break
		}
		fmt.Fprintf(&b, "- **%s** (%s, %s)\n", article.Title, article.Source, article.PublishedAt)
	}
	return b.String()
}
