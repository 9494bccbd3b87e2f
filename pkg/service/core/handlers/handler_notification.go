package handlers

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/navikt/nada-tablemetadata/pkg/service"
)

type NotificationLogQuery struct {
	ResourceName string `query:"resource_name" json:"resource_name"`
}

func (q NotificationLogQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.ResourceName, validation.Required),
	)
}

type NotificationHandler struct {
	service service.NotificationService
}

func (h *NotificationHandler) ListNotificationLogs(ctx context.Context, _ *http.Request, in NotificationLogQuery) (*service.NotificationLogs, error) {
	return h.service.ListNotificationLogs(ctx, in.ResourceName)
}

func NewNotificationHandler(s service.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: s,
	}
}
