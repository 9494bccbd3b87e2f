package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/tablemetadata"
)

var _ service.NotificationService = &notificationService{}

type notificationService struct {
	userAPI             service.UserAPI
	notificationAPI     service.NotificationAPI
	notificationStorage service.NotificationStorage
	log                 zerolog.Logger
}

func (s *notificationService) NotifyOwnerChange(ctx context.Context, payload service.UpdateOwnerPayload, table *service.TableMetadata) error {
	const op errs.Op = "notificationService.NotifyOwnerChange"

	if table == nil {
		return errs.E(errs.Internal, op, fmt.Errorf("no table to notify about"))
	}

	user, err := s.userAPI.GetUser(ctx, payload.ID)
	if err != nil {
		return errs.E(op, errs.UserName(payload.ID), err)
	}

	if !tablemetadata.ShouldSendNotification(user) {
		s.log.Info().
			Str("user_id", payload.ID).
			Str("key", table.Key).
			Msg("skipping owner notification for inactive or unnamed user")

		return nil
	}

	notification := tablemetadata.CreateOwnerNotificationData(payload, table)

	err = s.notificationAPI.Send(ctx, notification)
	if err != nil {
		return errs.E(op, errs.UserName(payload.ID), err)
	}

	_, err = s.notificationStorage.CreateNotificationLog(ctx, notification)
	if err != nil {
		return errs.E(op, err)
	}

	return nil
}

func (s *notificationService) ListNotificationLogs(ctx context.Context, resourceName string) (*service.NotificationLogs, error) {
	const op errs.Op = "notificationService.ListNotificationLogs"

	if resourceName == "" {
		return nil, errs.E(errs.InvalidRequest, op, errs.Parameter("resource_name"), fmt.Errorf("missing resource name"))
	}

	logs, err := s.notificationStorage.ListNotificationLogs(ctx, resourceName)
	if err != nil {
		return nil, errs.E(op, err)
	}

	return &service.NotificationLogs{
		Logs: logs,
	}, nil
}

func NewNotificationService(
	userAPI service.UserAPI,
	notificationAPI service.NotificationAPI,
	notificationStorage service.NotificationStorage,
	log zerolog.Logger,
) *notificationService {
	return &notificationService{
		userAPI:             userAPI,
		notificationAPI:     notificationAPI,
		notificationStorage: notificationStorage,
		log:                 log,
	}
}
