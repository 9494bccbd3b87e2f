package postgres

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/navikt/nada-tablemetadata/pkg/database"
	"github.com/navikt/nada-tablemetadata/pkg/database/gensql"
	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

var _ service.NotificationStorage = &notificationStorage{}

type notificationStorage struct {
	db *database.Repo
}

func (s *notificationStorage) CreateNotificationLog(ctx context.Context, notification *service.OwnerNotification) (*service.NotificationLog, error) {
	const op errs.Op = "notificationStorage.CreateNotificationLog"

	payload, err := json.Marshal(notification)
	if err != nil {
		return nil, errs.E(errs.Internal, op, err)
	}

	raw, err := s.db.Querier.CreateOwnerNotification(ctx, gensql.CreateOwnerNotificationParams{
		ID:               uuid.New(),
		NotificationType: string(notification.NotificationType),
		ResourceName:     notification.Options.ResourceName,
		ResourcePath:     notification.Options.ResourcePath,
		Recipients:       notification.Recipients,
		Payload:          pqtype.NullRawMessage{RawMessage: payload, Valid: true},
	})
	if err != nil {
		return nil, errs.E(errs.Database, op, err)
	}

	log, err := From(OwnerNotification(raw))
	if err != nil {
		return nil, errs.E(errs.Internal, op, err)
	}

	return log, nil
}

func (s *notificationStorage) ListNotificationLogs(ctx context.Context, resourceName string) ([]*service.NotificationLog, error) {
	const op errs.Op = "notificationStorage.ListNotificationLogs"

	raw, err := s.db.Querier.ListOwnerNotifications(ctx, resourceName)
	if err != nil {
		return nil, errs.E(errs.Database, op, err)
	}

	logs, err := From(OwnerNotifications(raw))
	if err != nil {
		return nil, errs.E(errs.Internal, op, err)
	}

	return logs, nil
}

func NewNotificationStorage(db *database.Repo) *notificationStorage {
	return &notificationStorage{
		db: db,
	}
}
