package model

import "time"

// RawItem is one parsed feed entry before normalization. PubDate keeps the
// raw string exactly as the feed gave it; ParsedDate is zero when no format
// matched.
type RawItem struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PubDate     string    `json:"pub_date"`
	ParsedDate  time.Time `json:"parsed_date"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	SourceName  string    `json:"source_name"`
}
