package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
)

// ReadinessFn reports whether the service can take traffic.
type ReadinessFn func(ctx context.Context) error

type InternalEndpoints struct {
	GetMetrics http.Handler
	IsAlive    http.HandlerFunc
	IsReady    http.HandlerFunc
}

func NewInternalEndpoints(log zerolog.Logger, promReg *prometheus.Registry, ready ReadinessFn) *InternalEndpoints {
	return &InternalEndpoints{
		GetMetrics: promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
		IsAlive: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
		IsReady: func(w http.ResponseWriter, r *http.Request) {
			const op errs.Op = "routes.IsReady"

			if err := ready(r.Context()); err != nil {
				errs.HTTPErrorResponse(w, log, errs.E(errs.IO, op, fmt.Errorf("not ready: %w", err)))
				return
			}

			w.WriteHeader(http.StatusOK)
		},
	}
}

func NewInternalRoutes(endpoints *InternalEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Route("/internal", func(r chi.Router) {
			r.Handle("/metrics", endpoints.GetMetrics)
			r.Get("/isalive", endpoints.IsAlive)
			r.Get("/isready", endpoints.IsReady)
		})
	}
}
