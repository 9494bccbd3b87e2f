package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/service/core/handlers"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/transport"
)

type SlackEndpoints struct {
	IsValidSlackChannel http.HandlerFunc
}

func NewSlackEndpoints(log zerolog.Logger, h *handlers.SlackHandler) *SlackEndpoints {
	return &SlackEndpoints{
		IsValidSlackChannel: transport.For(h.IsValidSlackChannel).RequestFromQuery().Build(log),
	}
}

func NewSlackRoutes(endpoints *SlackEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Route("/api/notifications/slack", func(r chi.Router) {
			r.Get("/isValid", endpoints.IsValidSlackChannel)
		})
	}
}
