package server

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"

	"github.com/inspark-lab/inspark-daily/internal/application"
	"github.com/inspark-lab/inspark-daily/internal/transport/middleware"
)

// NewRouter assembles the HTTP surface over an application container.
func NewRouter(app *application.App) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.Logging)

	// Relay endpoint, same path the original frontend called.
	r.Handle("/api/fetch-rss", app.Relay).Methods(http.MethodGet, http.MethodOptions)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/zones", app.Zones.List).Methods(http.MethodGet)
	api.HandleFunc("/zones/fetch", app.Zones.Fetch).Methods(http.MethodPost)
	api.HandleFunc("/zones/{id}/articles", app.Zones.Articles).Methods(http.MethodGet)
	api.HandleFunc("/feed", app.Zones.ComposedFeed).Methods(http.MethodGet)
	api.HandleFunc("/cache", app.Zones.ClearCache).Methods(http.MethodDelete)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

// HandleRequest serves a single request, building the application per
// invocation. Entry point for the serverless deployment.
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	app, err := application.New()
	if err != nil {
		log.Printf("Error creating application: %v\nStack:\n%s", err, debug.Stack())
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer app.Close()

	NewRouter(app).ServeHTTP(w, r)
}
