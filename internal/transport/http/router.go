package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"greenpass/pkg/platform/middleware/metadata"
	"greenpass/pkg/platform/middleware/request"
)

// Registrar mounts a feature's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps are the pieces the router is assembled from.
type Deps struct {
	Logger   *slog.Logger
	Health   *Health
	Gatherer prometheus.Gatherer
	Features []Registrar
}

// NewRouter wires middleware, probes, metrics and feature routes. Handlers
// stay thin and delegate to services.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.Recovery(d.Logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(d.Logger))

	if d.Health != nil {
		r.Get("/healthz", d.Health.HandleHealth)
		r.Get("/readyz", d.Health.HandleReady)
	}

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	for _, f := range d.Features {
		f.Register(r)
	}
	return r
}
