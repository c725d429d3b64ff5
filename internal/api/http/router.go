// Package http wires the service's HTTP surface: the generate endpoint,
// health and metrics.
package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/partypulse/partygen/internal/api/recovery"
)

// NewRouter builds the router with all routes registered.
func NewRouter(gen *GenerateHandler) *mux.Router {
	r := mux.NewRouter()
	r.Use(recovery.Middleware)

	r.HandleFunc("/api/generate", gen.HandleGenerate).Methods("POST")
	r.HandleFunc("/api/health", HandleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}
