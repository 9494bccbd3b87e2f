package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/service/core/handlers"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/transport"
)

type NotificationEndpoints struct {
	ListNotificationLogs http.HandlerFunc
}

func NewNotificationEndpoints(log zerolog.Logger, h *handlers.NotificationHandler) *NotificationEndpoints {
	return &NotificationEndpoints{
		ListNotificationLogs: transport.For(h.ListNotificationLogs).RequestFromQuery().Build(log),
	}
}

func NewNotificationRoutes(endpoints *NotificationEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Get("/api/notifications/v0/log", endpoints.ListNotificationLogs)
	}
}
