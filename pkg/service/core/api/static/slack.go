package static

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/service"
)

var (
	_ service.SlackAPI        = &slackAPI{}
	_ service.NotificationAPI = &slackAPI{}
)

// slackAPI only logs, and is used when running locally without any
// notification endpoint.
type slackAPI struct {
	log zerolog.Logger
}

func (s *slackAPI) Send(_ context.Context, notification *service.OwnerNotification) error {
	s.log.Info().Msgf("Sending %s notification for %s to %v", notification.NotificationType, notification.Options.ResourceName, notification.Recipients)

	return nil
}

func (s *slackAPI) IsValidSlackChannel(channel string) error {
	s.log.Info().Msgf("Validating slack channel %s", channel)

	return nil
}

func NewSlackAPI(log zerolog.Logger) *slackAPI {
	return &slackAPI{
		log: log,
	}
}
