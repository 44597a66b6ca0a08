package aggregate

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inspark-lab/inspark-daily/internal/model"
	"github.com/inspark-lab/inspark-daily/internal/parse"
)

// Normalize converts raw items into display-ready articles. Items without a
// resolvable link are dropped first; everything else is guaranteed a
// non-empty readable title, an image URL and a rendered timestamp. Apart from
// the generated IDs the mapping is deterministic.
func Normalize(items []model.RawItem) []model.Article {
	now := time.Now()
	articles := make([]model.Article, 0, len(items))
	for _, item := range items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}

		title := parse.StripHTML(item.Title)
		if title == "" || isURLLike(title) {
			title = headlineFor(link)
		}

		description := parse.CleanDescription(item.Description)
		if description == "" {
			description = snippetFor(title)
		}

		imageURL := item.ImageURL
		if imageURL == "" {
			imageURL = placeholderImage(title)
		}

		articles = append(articles, model.Article{
			ID:          "art-" + uuid.NewString(),
			Title:       title,
			URL:         link,
			Source:      sourceLabel(item.SourceName, link),
			ImageURL:    imageURL,
			PublishedAt: RelativeLabel(item.ParsedDate, now),
			Description: description,
		})
	}
	return articles
}

// SortItems orders items newest first. Items with no parseable date sort
// after all dated ones, keeping their insertion order among themselves.
func SortItems(items []model.RawItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].ParsedDate, items[j].ParsedDate
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})
}

// isURLLike reports whether a title looks like a raw link rather than prose.
func isURLLike(text string) bool {
	if strings.Contains(text, "http") || strings.Contains(text, "www.") ||
		strings.Contains(text, ".com") || strings.Contains(text, ".net") {
		return true
	}
	return len(text) > 100 && !strings.Contains(text, " ")
}

// placeholderImage returns a deterministic placeholder seeded by the title's
// first 10 characters, so repeated fetches render the same image.
func placeholderImage(title string) string {
	seed := title
	if runes := []rune(title); len(runes) > 10 {
		seed = string(runes[:10])
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/600", url.QueryEscape(seed))
}

// sourceLabel derives the human-readable source label: the configured source
// name when present, else the link's hostname without the www prefix.
func sourceLabel(sourceName, link string) string {
	if name := strings.TrimSpace(sourceName); name != "" {
		return name
	}
	if u, err := url.Parse(link); err == nil && u.Hostname() != "" {
		return strings.TrimPrefix(u.Hostname(), "www.")
	}
	return "Source"
}

// RelativeLabel renders a publish timestamp for display: relative within the
// last 24 hours, a short absolute date beyond that, and "Recently" when the
// timestamp never parsed.
func RelativeLabel(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "Recently"
	}
	age := now.Sub(t)
	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age.Hours()))
	default:
		return t.Format("Jan 2, 2006")
	}
}
