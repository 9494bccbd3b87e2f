package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	slackapi "github.com/slack-go/slack"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

const maxConversationPages = 10

var (
	_ service.SlackAPI        = &slackAPI{}
	_ service.NotificationAPI = &slackAPI{}
)

// slackAPI delivers owner notifications as messages in a single channel.
type slackAPI struct {
	channel     string
	frontendURL string
	api         *slackapi.Client
	log         zerolog.Logger
}

func (a *slackAPI) Send(ctx context.Context, notification *service.OwnerNotification) error {
	const op errs.Op = "slackAPI.Send"

	_, _, err := a.api.PostMessageContext(ctx, a.channel, slackapi.MsgOptionText(Message(a.frontendURL, notification), false))
	if err != nil {
		return errs.E(errs.IO, op, err)
	}

	a.log.Info().
		Str("channel", a.channel).
		Str("resource_name", notification.Options.ResourceName).
		Msg("posted owner notification")

	return nil
}

func (a *slackAPI) IsValidSlackChannel(name string) error {
	const op errs.Op = "slackAPI.IsValidSlackChannel"

	cursor := ""
	for i := 0; i < maxConversationPages; i++ {
		channels, next, err := a.api.GetConversations(&slackapi.GetConversationsParameters{
			Cursor:          cursor,
			ExcludeArchived: true,
			Types:           []string{"public_channel"},
			Limit:           1000,
		})
		if err != nil {
			return errs.E(errs.IO, op, err)
		}

		for _, c := range channels {
			if strings.EqualFold(c.Name, name) {
				return nil
			}
		}

		if next == "" {
			return errs.E(errs.NotExist, op, fmt.Errorf("channel %s not found", name))
		}

		cursor = next
	}

	return errs.E(errs.Internal, op, fmt.Errorf("too many channels to search"))
}

// Message renders the text posted for an owner notification.
func Message(frontendURL string, notification *service.OwnerNotification) string {
	action := "lagt til som eier av"
	if notification.NotificationType == service.NotificationTypeOwnerRemoved {
		action = "fjernet som eier av"
	}

	return fmt.Sprintf(
		"%s er %s %s\nLink: %s%s",
		strings.Join(notification.Recipients, ", "),
		action,
		notification.Options.ResourceName,
		strings.TrimSuffix(frontendURL, "/"),
		notification.Options.ResourcePath,
	)
}

func NewSlackAPI(token, channel, frontendURL string, log zerolog.Logger, options ...slackapi.Option) *slackAPI {
	return &slackAPI{
		channel:     channel,
		frontendURL: frontendURL,
		api:         slackapi.New(token, options...),
		log:         log,
	}
}
