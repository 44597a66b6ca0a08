// Package cache stores per-zone fetch snapshots so the HTTP layer does not
// refetch a zone on every read. The pipeline itself never touches it.
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

// ErrMiss is returned when a zone has no live snapshot.
var ErrMiss = errors.New("zone snapshot not found")

// Entry is one zone's cached fetch result: the raw items of the last
// successful pipeline run, plus the source set they were fetched for so a
// source change invalidates the snapshot.
type Entry struct {
	ZoneID    string          `json:"zone_id"`
	Title     string          `json:"title"`
	Sources   []model.Source  `json:"sources"`
	Items     []model.RawItem `json:"items"`
	FetchedAt time.Time       `json:"fetched_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Store is the zone snapshot store. Implementations: in-memory (default) and
// Cloud Storage for deployments that survive restarts.
type Store interface {
	Get(ctx context.Context, zoneID string) (*Entry, error)
	Set(ctx context.Context, entry *Entry) error
	Invalidate(ctx context.Context, zoneID string) error
	Clear(ctx context.Context) error
	Close() error
}

// NewStore creates a store of the given type ("memory" or "cloud-storage").
func NewStore(storeType string, ttl time.Duration) (Store, error) {
	switch storeType {
	case "", "memory":
		return NewMemoryStore(ttl), nil
	case "cloud-storage":
		return NewCloudStorageStore(ttl)
	default:
		return nil, fmt.Errorf("unknown cache type: %s", storeType)
	}
}

// SameSources reports whether a snapshot was taken for the given source set.
// Order matters: reordering sources is an edit and drops the snapshot.
func (e *Entry) SameSources(sources []model.Source) bool {
	if len(e.Sources) != len(sources) {
		return false
	}
	for i, s := range sources {
		if e.Sources[i].Name != s.Name || e.Sources[i].URL != s.URL {
			return false
		}
	}
	return true
}

// MemoryStore keeps snapshots in a TTL map with a background sweeper.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	stop    chan struct{}
	once    sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryStore) Get(_ context.Context, zoneID string) (*Entry, error) {
	s.mu.RLock()
	entry, ok := s.entries[zoneID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.ExpiresAt) {
		return nil, ErrMiss
	}
	return entry, nil
}

func (s *MemoryStore) Set(_ context.Context, entry *Entry) error {
	if entry.ExpiresAt.IsZero() {
		entry.ExpiresAt = time.Now().Add(s.ttl)
	}
	s.mu.Lock()
	s.entries[entry.ZoneID] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Invalidate(_ context.Context, zoneID string) error {
	s.mu.Lock()
	delete(s.entries, zoneID)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string]*Entry)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, entry := range s.entries {
				if now.After(entry.ExpiresAt) {
					delete(s.entries, id)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}
