// Package application wires the pipeline together: config, fetch client,
// discovery, parser, aggregator, cache and handlers.
package application

import (
	"fmt"
	"time"

	"github.com/inspark-lab/inspark-daily/internal/aggregate"
	"github.com/inspark-lab/inspark-daily/internal/cache"
	"github.com/inspark-lab/inspark-daily/internal/config"
	"github.com/inspark-lab/inspark-daily/internal/feed"
	"github.com/inspark-lab/inspark-daily/internal/fetch"
	"github.com/inspark-lab/inspark-daily/internal/parse"
	"github.com/inspark-lab/inspark-daily/internal/transport/handler"
)

// App holds the assembled application.
type App struct {
	Config *config.Config
	Store  cache.Store
	Relay  *handler.Relay
	Zones  *handler.Zones
}

// New builds the application from environment configuration.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	zones, err := config.LoadZones(cfg.ZonesFile)
	if err != nil {
		return nil, fmt.Errorf("loading zones: %w", err)
	}

	store, err := cache.NewStore(cfg.CacheType, time.Duration(cfg.CacheDuration)*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("creating cache store: %w", err)
	}

	fetchClient := fetch.NewClient()
	fetchClient.AttemptTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	aggregator := aggregate.New(
		feed.NewDiscoverer(fetchClient),
		parse.NewParser(fetchClient),
	)

	return &App{
		Config: cfg,
		Store:  store,
		Relay:  handler.NewRelay(fetchClient.AttemptTimeout),
		Zones:  handler.NewZones(aggregator, store, zones, cfg.PrioritySource),
	}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.Store != nil {
		a.Store.Close()
	}
}
