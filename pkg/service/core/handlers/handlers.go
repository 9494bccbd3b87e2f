package handlers

import (
	"github.com/navikt/nada-tablemetadata/pkg/service/core"
)

type Handlers struct {
	TableMetadataHandler *TableMetadataHandler
	NotificationHandler  *NotificationHandler
	SlackHandler         *SlackHandler
}

func NewHandlers(s *core.Services) *Handlers {
	return &Handlers{
		TableMetadataHandler: NewTableMetadataHandler(s.TableMetadataService),
		NotificationHandler:  NewNotificationHandler(s.NotificationService),
		SlackHandler:         NewSlackHandler(s.SlackService),
	}
}
