package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

func TestMemoryStoreSetGet(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	entry := &Entry{
		ZoneID:    "1",
		Title:     "Tech & AI",
		Sources:   []model.Source{{Name: "TechCrunch", URL: "https://techcrunch.com/feed/"}},
		Items:     []model.RawItem{{Title: "A", Link: "https://e.com/a"}},
		FetchedAt: time.Now(),
	}
	if err := store.Set(ctx, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := store.Get(ctx, "1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Tech & AI" || len(got.Items) != 1 {
		t.Errorf("Get returned unexpected entry: %+v", got)
	}
	if got.ExpiresAt.IsZero() {
		t.Error("Expected Set to fill ExpiresAt from the store TTL")
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()

	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrMiss) {
		t.Errorf("Expected ErrMiss, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	entry := &Entry{ZoneID: "1", ExpiresAt: time.Now().Add(-time.Second)}
	if err := store.Set(ctx, entry); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := store.Get(ctx, "1"); !errors.Is(err, ErrMiss) {
		t.Errorf("Expected expired entry to miss, got %v", err)
	}
}

func TestMemoryStoreInvalidate(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, &Entry{ZoneID: "1"})
	store.Set(ctx, &Entry{ZoneID: "2"})

	if err := store.Invalidate(ctx, "1"); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, err := store.Get(ctx, "1"); !errors.Is(err, ErrMiss) {
		t.Error("Expected invalidated zone to miss")
	}
	if _, err := store.Get(ctx, "2"); err != nil {
		t.Errorf("Expected untouched zone to stay cached, got %v", err)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	defer store.Close()
	ctx := context.Background()

	store.Set(ctx, &Entry{ZoneID: "1"})
	store.Set(ctx, &Entry{ZoneID: "2"})

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, id := range []string{"1", "2"} {
		if _, err := store.Get(ctx, id); !errors.Is(err, ErrMiss) {
			t.Errorf("Expected zone %s to be gone after Clear", id)
		}
	}
}

func TestNewStore(t *testing.T) {
	tests := []struct {
		storeType string
		wantErr   bool
	}{
		{"memory", false},
		{"", false},
		{"redis", true},
	}
	for _, tt := range tests {
		store, err := NewStore(tt.storeType, time.Minute)
		if tt.wantErr {
			if err == nil {
				t.Errorf("NewStore(%q): expected error", tt.storeType)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewStore(%q) failed: %v", tt.storeType, err)
			continue
		}
		store.Close()
	}
}

func TestEntrySameSources(t *testing.T) {
	base := []model.Source{
		{Name: "TechCrunch", URL: "https://techcrunch.com/feed/"},
		{Name: "OpenAI", URL: "https://openai.com/blog/rss.xml"},
	}
	entry := &Entry{Sources: base}

	tests := []struct {
		name    string
		sources []model.Source
		want    bool
	}{
		{"identical", base, true},
		{"different length", base[:1], false},
		{"renamed source", []model.Source{
			{Name: "TC", URL: "https://techcrunch.com/feed/"},
			{Name: "OpenAI", URL: "https://openai.com/blog/rss.xml"},
		}, false},
		{"changed url", []model.Source{
			{Name: "TechCrunch", URL: "https://techcrunch.com/rss"},
			{Name: "OpenAI", URL: "https://openai.com/blog/rss.xml"},
		}, false},
		{"reordered", []model.Source{base[1], base[0]}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entry.SameSources(tt.sources); got != tt.want {
				t.Errorf("SameSources = %v, want %v", got, tt.want)
			}
		})
	}
}
