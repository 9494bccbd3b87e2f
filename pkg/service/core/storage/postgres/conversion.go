package postgres

import (
	"fmt"

	"github.com/navikt/nada-tablemetadata/pkg/database/gensql"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

type Converter[O any] interface {
	To() (O, error)
}

func From[I Converter[O], O any](i I) (O, error) {
	return i.To()
}

type OwnerNotification gensql.OwnerNotification

func (n OwnerNotification) To() (*service.NotificationLog, error) {
	notificationType := service.NotificationType(n.NotificationType)

	switch notificationType {
	case service.NotificationTypeOwnerAdded,
		service.NotificationTypeOwnerRemoved,
		service.NotificationTypeMetadataEdited,
		service.NotificationTypeMetadataRequested:
	default:
		return nil, fmt.Errorf("unknown notification type %q", n.NotificationType)
	}

	log := &service.NotificationLog{
		ID:               n.ID,
		NotificationType: notificationType,
		ResourceName:     n.ResourceName,
		ResourcePath:     n.ResourcePath,
		Recipients:       n.Recipients,
		Created:          n.Created,
	}

	if n.Payload.Valid {
		log.Payload = n.Payload.RawMessage
	}

	return log, nil
}

type OwnerNotifications []gensql.OwnerNotification

func (n OwnerNotifications) To() ([]*service.NotificationLog, error) {
	logs := make([]*service.NotificationLog, len(n))

	for i, raw := range n {
		log, err := From(OwnerNotification(raw))
		if err != nil {
			return nil, err
		}

		logs[i] = log
	}

	return logs, nil
}
