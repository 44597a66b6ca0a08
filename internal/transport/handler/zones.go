package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/inspark-lab/inspark-daily/internal/aggregate"
	"github.com/inspark-lab/inspark-daily/internal/cache"
	"github.com/inspark-lab/inspark-daily/internal/compose"
	"github.com/inspark-lab/inspark-daily/internal/model"
	"github.com/inspark-lab/inspark-daily/internal/transport/response"
)

// Zones serves the pipeline over HTTP: stateless one-shot fetches, cached
// per-zone reads for the configured zones, and the composed front-page feed.
type Zones struct {
	aggregator     *aggregate.Aggregator
	store          cache.Store
	zones          []model.Zone
	prioritySource string
}

func NewZones(aggregator *aggregate.Aggregator, store cache.Store, zones []model.Zone, prioritySource string) *Zones {
	return &Zones{
		aggregator:     aggregator,
		store:          store,
		zones:          zones,
		prioritySource: prioritySource,
	}
}

// List returns the configured zones without their cached items.
func (h *Zones) List(w http.ResponseWriter, r *http.Request) {
	out := make([]model.Zone, len(h.zones))
	for i, z := range h.zones {
		out[i] = model.Zone{ID: z.ID, Title: z.Title, Sources: z.Sources}
	}
	response.WriteSuccess(w, "", out)
}

// Fetch runs the pipeline once for a caller-supplied zone definition.
// Stateless: nothing is cached.
func (h *Zones) Fetch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string         `json:"title"`
		Sources []model.Source `json:"sources"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteBadRequest(w, "Invalid request body")
		return
	}
	if len(req.Sources) == 0 {
		response.WriteBadRequest(w, "At least one source is required")
		return
	}

	news, err := h.aggregator.FetchZone(r.Context(), req.Title, model.DedupSources(req.Sources))
	if err != nil {
		var zoneErr *aggregate.ZoneError
		if errors.As(err, &zoneErr) {
			response.WriteError(w, http.StatusBadGateway, zoneErr.Error())
			return
		}
		response.WriteInternalError(w, fmt.Sprintf("Error fetching zone: %v", err))
		return
	}
	response.WriteSuccess(w, "", news)
}

// Articles returns a configured zone's articles, refreshing the snapshot on
// cache miss or source change.
func (h *Zones) Articles(w http.ResponseWriter, r *http.Request) {
	zoneID := mux.Vars(r)["id"]
	zone, ok := h.findZone(zoneID)
	if !ok {
		response.WriteNotFound(w, "Zone not found")
		return
	}

	ctx := r.Context()
	entry, err := h.store.Get(ctx, zone.ID)
	if err == nil {
		if entry.SameSources(zone.Sources) {
			response.WriteSuccess(w, "", aggregate.NewsFromItems(zone.Title, entry.Items))
			return
		}
		// Snapshot taken for a different source set; drop it before refetching.
		if err := h.store.Invalidate(ctx, zone.ID); err != nil {
			log.Printf("invalidating stale snapshot for zone %q: %v", zone.ID, err)
		}
	}

	if err := h.RefreshZone(ctx, zone); err != nil {
		var zoneErr *aggregate.ZoneError
		if errors.As(err, &zoneErr) {
			response.WriteError(w, http.StatusBadGateway, zoneErr.Error())
			return
		}
		response.WriteInternalError(w, fmt.Sprintf("Error refreshing zone: %v", err))
		return
	}

	entry, err = h.store.Get(ctx, zone.ID)
	if err != nil {
		response.WriteInternalError(w, "Snapshot vanished after refresh")
		return
	}
	response.WriteSuccess(w, "", aggregate.NewsFromItems(zone.Title, entry.Items))
}

// ComposedFeed merges every zone's cached items into the front-page feed.
// Purely cache-driven: zones without a live snapshot contribute nothing.
func (h *Zones) ComposedFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pooled := make([]model.Zone, 0, len(h.zones))
	for _, zone := range h.zones {
		entry, err := h.store.Get(ctx, zone.ID)
		if err != nil {
			continue
		}
		pooled = append(pooled, model.Zone{
			ID:          zone.ID,
			Title:       zone.Title,
			CachedItems: entry.Items,
		})
	}

	articles := compose.Feed(pooled, h.prioritySource)
	response.WriteSuccess(w, "", articles)
}

// ClearCache drops every zone snapshot.
func (h *Zones) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(r.Context()); err != nil {
		response.WriteInternalError(w, fmt.Sprintf("Error clearing cache: %v", err))
		return
	}
	response.WriteSuccess(w, "Cache cleared", nil)
}

// RefreshZone runs the pipeline for one configured zone and stores the
// snapshot. Also called by the background scheduler.
func (h *Zones) RefreshZone(ctx context.Context, zone model.Zone) error {
	items := h.aggregator.CollectItems(ctx, zone.Title, zone.Sources)

	valid := 0
	for _, item := range items {
		if item.Link != "" {
			valid++
		}
	}
	if valid == 0 && len(zone.Sources) > 0 {
		return &aggregate.ZoneError{Zone: zone.Title}
	}

	entry := &cache.Entry{
		ZoneID:    zone.ID,
		Title:     zone.Title,
		Sources:   zone.Sources,
		Items:     items,
		FetchedAt: time.Now(),
	}
	if err := h.store.Set(ctx, entry); err != nil {
		return fmt.Errorf("storing zone snapshot: %w", err)
	}
	log.Printf("refreshed zone %q: %d items", zone.Title, len(items))
	return nil
}

// RefreshAll refreshes every configured zone, continuing past failures.
func (h *Zones) RefreshAll(ctx context.Context) {
	for _, zone := range h.zones {
		if err := h.RefreshZone(ctx, zone); err != nil {
			log.Printf("scheduled refresh failed for zone %q: %v", zone.Title, err)
		}
	}
}

func (h *Zones) findZone(id string) (model.Zone, bool) {
	for _, z := range h.zones {
		if z.ID == id {
			return z, true
		}
	}
	return model.Zone{}, false
}
