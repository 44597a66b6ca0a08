package compose

import (
	"fmt"
	"testing"
	"time"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

// zoneWith builds a zone whose cached items are n articles from sourceName,
// newest first starting at newest.
func zoneWith(sourceName string, n int, newest time.Time) model.Zone {
	items := make([]model.RawItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, model.RawItem{
			Title:      fmt.Sprintf("%s story %d", sourceName, i+1),
			Link:       fmt.Sprintf("https://%s.example/%d", sourceName, i+1),
			ParsedDate: newest.Add(-time.Duration(i) * time.Hour),
			SourceName: sourceName,
		})
	}
	return model.Zone{ID: sourceName, Title: sourceName, CachedItems: items}
}

func TestFeedPrioritySourceLeadsRegardlessOfRecency(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	zones := []model.Zone{
		zoneWith("fresh", 8, now),
		zoneWith("inspark", 3, now.Add(-48*time.Hour)),
	}

	feed := Feed(zones, "INSpark")
	if len(feed) != 11 {
		t.Fatalf("Expected all 11 articles, got %d", len(feed))
	}
	if feed[0].Source != "inspark" {
		t.Errorf("Slot 1 source = %q, want the priority source", feed[0].Source)
	}
	if feed[0].Title != "inspark story 1" {
		t.Errorf("Slot 1 = %q, want the priority source's newest article", feed[0].Title)
	}
}

func TestFeedSecondPrioritySlotOpensFeaturedTier(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	zones := []model.Zone{
		zoneWith("fresh", 8, now),
		zoneWith("inspark", 3, now.Add(-48*time.Hour)),
	}

	feed := Feed(zones, "INSpark")
	if feed[heroSlots].Source != "inspark" {
		t.Errorf("First featured slot source = %q, want the priority source", feed[heroSlots].Source)
	}
	if feed[heroSlots].Title != "inspark story 2" {
		t.Errorf("First featured slot = %q, want the priority source's second article", feed[heroSlots].Title)
	}
}

func TestFeedHeroFillIsFreshest(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	zones := []model.Zone{
		zoneWith("fresh", 8, now),
		zoneWith("inspark", 3, now.Add(-48*time.Hour)),
	}

	feed := Feed(zones, "INSpark")
	for i := 1; i < heroSlots; i++ {
		want := fmt.Sprintf("fresh story %d", i)
		if feed[i].Title != want {
			t.Errorf("Hero slot %d = %q, want %q", i+1, feed[i].Title, want)
		}
	}
}

func TestFeedNoDuplicates(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	shared := model.RawItem{
		Title:      "Shared story",
		Link:       "https://shared.example/1",
		ParsedDate: now,
		SourceName: "a",
	}
	zoneA := zoneWith("a", 4, now.Add(-time.Hour))
	zoneA.CachedItems = append(zoneA.CachedItems, shared)
	zoneB := zoneWith("b", 4, now.Add(-time.Hour))
	shared.SourceName = "b"
	zoneB.CachedItems = append(zoneB.CachedItems, shared)

	feed := Feed([]model.Zone{zoneA, zoneB}, "")
	seen := make(map[string]bool)
	for _, a := range feed {
		if seen[a.URL] {
			t.Fatalf("Article %s appears twice", a.URL)
		}
		seen[a.URL] = true
	}
	if len(feed) != 9 {
		t.Errorf("Expected 9 distinct articles, got %d", len(feed))
	}
}

func TestFeedWithoutPrioritySource(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	feed := Feed([]model.Zone{zoneWith("only", 3, now)}, "")
	if len(feed) != 3 {
		t.Fatalf("Expected 3 articles, got %d", len(feed))
	}
	for i, want := range []string{"only story 1", "only story 2", "only story 3"} {
		if feed[i].Title != want {
			t.Errorf("Slot %d = %q, want %q", i+1, feed[i].Title, want)
		}
	}
}

func TestFeedEmptyZones(t *testing.T) {
	if feed := Feed(nil, "INSpark"); len(feed) != 0 {
		t.Errorf("Expected empty feed, got %d articles", len(feed))
	}
	if feed := Feed([]model.Zone{{ID: "1", Title: "Empty"}}, "INSpark"); len(feed) != 0 {
		t.Errorf("Expected empty feed for empty zones, got %d articles", len(feed))
	}
}

func TestFeedPriorityAbsentFallsBackToFreshness(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	feed := Feed([]model.Zone{zoneWith("other", 4, now)}, "INSpark")
	if len(feed) != 4 {
		t.Fatalf("Expected 4 articles, got %d", len(feed))
	}
	if feed[0].Title != "other story 1" {
		t.Errorf("Slot 1 = %q, want the freshest article", feed[0].Title)
	}
}
