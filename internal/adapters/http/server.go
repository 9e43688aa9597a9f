// Package http exposes the instance registry for observability: a JSON
// status listing and the Prometheus scrape endpoint. Read-only; there
// is no remote attach/detach surface.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/DavidOsipov/Aegis-Animator/pkg/registry"
)

// StatusProvider is the slice of the registry the server needs.
type StatusProvider interface {
	Statuses() []registry.InstanceStatus
	Len() int
}

// NewHandler builds the observability router.
func NewHandler(provider StatusProvider, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"instances": provider.Len(),
		})
	})

	r.Get("/instances", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(provider.Statuses()); err != nil {
			http.Error(w, "failed to encode statuses", http.StatusInternalServerError)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
