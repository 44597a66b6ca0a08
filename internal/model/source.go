package model

import "strings"

// Source is one named feed or website endpoint inside a zone. The URL may be a
// homepage rather than a feed; discovery resolves it later.
type Source struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Key returns the identity used for duplicate detection. Two sources are
// duplicates when their URLs match after trimming; names are labels only.
func (s Source) Key() string {
	return strings.TrimSpace(strings.TrimSuffix(s.URL, "/"))
}

// DedupSources removes sources whose URL duplicates an earlier one,
// keeping first occurrence order.
func DedupSources(sources []Source) []Source {
	seen := make(map[string]bool, len(sources))
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		key := s.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
