package core

import "github.com/navikt/nada-tablemetadata/pkg/service"

type Services struct {
	TableMetadataService service.TableMetadataService
	NotificationService  service.NotificationService
	SlackService         service.SlackService
}

func NewServices(
	tableMetadataService service.TableMetadataService,
	notificationService service.NotificationService,
	slackService service.SlackService,
) *Services {
	return &Services{
		TableMetadataService: tableMetadataService,
		NotificationService:  notificationService,
		SlackService:         slackService,
	}
}
