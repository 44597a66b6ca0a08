package model

import "time"

// Zone is a user-defined topical grouping of sources. CachedItems holds the
// raw items of the zone's last successful fetch; the pipeline itself never
// reads or writes it, whoever owns the Zone owns the cache.
type Zone struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Sources     []Source  `json:"sources" yaml:"sources"`
	CachedItems []RawItem `json:"cached_items,omitempty" yaml:"-"`
	FetchedAt   time.Time `json:"fetched_at,omitempty" yaml:"-"`
}
