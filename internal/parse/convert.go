package parse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inspark-lab/inspark-daily/internal/model"
)

// Converter is a hosted feed-to-JSON conversion API. Each provider has its
// own response schema and is mapped individually.
type Converter interface {
	Name() string
	Convert(ctx context.Context, feedURL string) ([]model.RawItem, error)
}

const converterTimeout = 12 * time.Second

// DefaultConverters returns the production converter chain in priority order.
func DefaultConverters() []Converter {
	client := &http.Client{Timeout: converterTimeout}
	return []Converter{
		&RSS2JSONConverter{Endpoint: "https://api.rss2json.com/v1/api.json?rss_url=%s", client: client},
		&JSONFeedConverter{Endpoint: "https://feed2json.org/convert?url=%s", client: client},
	}
}

func converterGet(ctx context.Context, client *http.Client, endpoint, feedURL string) ([]byte, error) {
	reqURL := fmt.Sprintf(endpoint, url.QueryEscape(feedURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling converter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("converter returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// RSS2JSONConverter maps the rss2json.com response shape: items carry
// link/pubDate/thumbnail plus an optional enclosure.link.
type RSS2JSONConverter struct {
	Endpoint string
	client   *http.Client
}

func (c *RSS2JSONConverter) Name() string { return "rss2json" }

func (c *RSS2JSONConverter) Convert(ctx context.Context, feedURL string) ([]model.RawItem, error) {
	body, err := converterGet(ctx, c.httpClient(), c.Endpoint, feedURL)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Status string `json:"status"`
		Items  []struct {
			Title       string `json:"title"`
			Link        string `json:"link"`
			PubDate     string `json:"pubDate"`
			Description string `json:"description"`
			Content     string `json:"content"`
			Thumbnail   string `json:"thumbnail"`
			Enclosure   struct {
				Link string `json:"link"`
				Type string `json:"type"`
			} `json:"enclosure"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding rss2json response: %w", err)
	}
	if payload.Status != "" && payload.Status != "ok" {
		return nil, fmt.Errorf("rss2json status %q", payload.Status)
	}
	if len(payload.Items) == 0 {
		return nil, errors.New("rss2json returned no items")
	}

	items := make([]model.RawItem, 0, len(payload.Items))
	for _, entry := range payload.Items {
		item := model.RawItem{
			Title:       strings.TrimSpace(entry.Title),
			Link:        strings.TrimSpace(entry.Link),
			PubDate:     entry.PubDate,
			Description: firstNonEmpty(entry.Description, entry.Content),
		}
		if t, err := ParseDate(entry.PubDate); err == nil {
			item.ParsedDate = t
		}
		item.ImageURL = firstNonEmpty(entry.Thumbnail, entry.Enclosure.Link, FirstImageSrc(item.Description))
		items = append(items, item)
	}
	return items, nil
}

func (c *RSS2JSONConverter) httpClient() *http.Client {
	if c.client == nil {
		c.client = &http.Client{Timeout: converterTimeout}
	}
	return c.client
}

// JSONFeedConverter maps JSON Feed shaped responses (feed2json.org): items
// carry url/date_published/image with content under content_html or
// content_text.
type JSONFeedConverter struct {
	Endpoint string
	client   *http.Client
}

func (c *JSONFeedConverter) Name() string { return "jsonfeed" }

func (c *JSONFeedConverter) Convert(ctx context.Context, feedURL string) ([]model.RawItem, error) {
	body, err := converterGet(ctx, c.httpClient(), c.Endpoint, feedURL)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Items []struct {
			Title         string `json:"title"`
			URL           string `json:"url"`
			DatePublished string `json:"date_published"`
			Summary       string `json:"summary"`
			ContentHTML   string `json:"content_html"`
			ContentText   string `json:"content_text"`
			Image         string `json:"image"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding jsonfeed response: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, errors.New("jsonfeed returned no items")
	}

	items := make([]model.RawItem, 0, len(payload.Items))
	for _, entry := range payload.Items {
		item := model.RawItem{
			Title:       strings.TrimSpace(entry.Title),
			Link:        strings.TrimSpace(entry.URL),
			PubDate:     entry.DatePublished,
			Description: firstNonEmpty(entry.Summary, entry.ContentHTML, entry.ContentText),
		}
		if t, err := ParseDate(entry.DatePublished); err == nil {
			item.ParsedDate = t
		}
		item.ImageURL = firstNonEmpty(entry.Image, FirstImageSrc(entry.ContentHTML))
		items = append(items, item)
	}
	return items, nil
}

func (c *JSONFeedConverter) httpClient() *http.Client {
	if c.client == nil {
		c.client = &http.Client{Timeout: converterTimeout}
	}
	return c.client
}
