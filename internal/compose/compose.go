// Package compose merges the cached articles of every zone into the single
// ranked front-page feed. Pure function of the zones' cached item sets; no
// network I/O happens here.
package compose

import (
	"strings"

	"github.com/inspark-lab/inspark-daily/internal/aggregate"
	"github.com/inspark-lab/inspark-daily/internal/model"
)

// Tier sizes of the front page: one hero block and one featured grid, then
// the standard list takes whatever remains.
const (
	heroSlots     = 5
	featuredSlots = 4
)

// Feed builds the composed cross-zone feed. prioritySource designates the
// publisher's own channel by label or URL substring: its newest unused
// article takes slot 1, and its next unused article takes the first featured
// slot. All other slots fill freshest-first. A shared used set guarantees no
// article appears twice across tiers.
func Feed(zones []model.Zone, prioritySource string) []model.Article {
	var pooled []model.RawItem
	for _, zone := range zones {
		pooled = append(pooled, zone.CachedItems...)
	}
	aggregate.SortItems(pooled)
	articles := aggregate.Normalize(pooled)

	used := make(map[string]bool, len(articles))
	out := make([]model.Article, 0, len(articles))

	take := func(a model.Article) {
		used[a.URL] = true
		out = append(out, a)
	}

	// Tier walk: priority slot, hero fill, second priority slot, featured
	// fill, then everything left in freshness order.
	if a, ok := nextPriority(articles, used, prioritySource); ok {
		take(a)
	}
	fillFreshest(articles, used, heroSlots-len(out), take)

	if len(out) >= heroSlots {
		if a, ok := nextPriority(articles, used, prioritySource); ok {
			take(a)
		}
	}
	fillFreshest(articles, used, heroSlots+featuredSlots-len(out), take)

	fillFreshest(articles, used, len(articles)-len(out), take)
	return out
}

// nextPriority returns the freshest unused article from the priority source.
func nextPriority(articles []model.Article, used map[string]bool, prioritySource string) (model.Article, bool) {
	if strings.TrimSpace(prioritySource) == "" {
		return model.Article{}, false
	}
	needle := strings.ToLower(prioritySource)
	for _, a := range articles {
		if used[a.URL] {
			continue
		}
		if strings.Contains(strings.ToLower(a.Source), needle) ||
			strings.Contains(strings.ToLower(a.URL), needle) {
			return a, true
		}
	}
	return model.Article{}, false
}

// fillFreshest appends up to n unused articles in freshness order.
func fillFreshest(articles []model.Article, used map[string]bool, n int, take func(model.Article)) {
	for _, a := range articles {
		if n <= 0 {
			return
		}
		if used[a.URL] {
			continue
		}
		take(a)
		n--
	}
}
