package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/inspark-lab/inspark-daily/internal/application"
	"github.com/inspark-lab/inspark-daily/internal/transport/server"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("INSpark Daily feed server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  PORT                    Server port (default: 8080)\n")
		fmt.Printf("  HOST                    Server host (default: 0.0.0.0)\n")
		fmt.Printf("  ZONES_FILE              Zone definitions YAML (default: built-in zones)\n")
		fmt.Printf("  REFRESH_SCHEDULE        Cron expression for background refresh (default: */30 * * * *)\n")
		fmt.Printf("  PRIORITY_SOURCE         Source given the pinned front-page slot (default: INSpark)\n")
		fmt.Printf("  FETCH_TIMEOUT_SECONDS   Per-attempt fetch timeout (default: 8)\n")
		fmt.Printf("  CACHE_TYPE              memory or cloud-storage (default: memory)\n")
		fmt.Printf("  CACHE_DURATION_MINUTES  Snapshot lifetime (default: 30)\n")
		fmt.Printf("  CACHE_BUCKET            GCS bucket for cloud-storage cache\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("INSpark Daily feed server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	app, err := application.New()
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	router := server.NewRouter(app)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", app.Config.Host, app.Config.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background refresh keeps zone snapshots warm so reads rarely pay the
	// fetch latency.
	c := cron.New()
	if _, err := c.AddFunc(app.Config.RefreshSchedule, func() {
		log.Printf("scheduled zone refresh starting")
		app.Zones.RefreshAll(ctx)
		log.Printf("scheduled zone refresh complete")
	}); err != nil {
		log.Fatalf("Failed to schedule zone refresh (%q): %v", app.Config.RefreshSchedule, err)
	}
	c.Start()
	defer c.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s:%s", app.Config.Host, app.Config.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down server...")

	cancel()
	c.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
