package model

// Article is the fully normalized, display-ready news item. Every Article has
// a non-empty URL, a non-empty markup-free title, and an image URL (real or
// deterministic placeholder). ID is unique within one pipeline invocation only.
type Article struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	ImageURL    string `json:"image_url"`
	PublishedAt string `json:"published_at"`
	Description string `json:"description,omitempty"`
}
