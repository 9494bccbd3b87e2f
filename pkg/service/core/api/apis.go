package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/cache"
	"github.com/navikt/nada-tablemetadata/pkg/config/v2"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	httpapi "github.com/navikt/nada-tablemetadata/pkg/service/core/api/http"
	slackapi "github.com/navikt/nada-tablemetadata/pkg/service/core/api/slack"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/api/static"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/cache/memory"
)

type Clients struct {
	TableMetadataAPI service.TableMetadataAPI
	BigQueryAPI      service.BigQueryAPI
	UserAPI          service.UserAPI
	NotificationAPI  service.NotificationAPI
	SlackAPI         service.SlackAPI
}

func NewClients(
	cfg config.Config,
	cacher cache.Cacher,
	bigQueryAPI service.BigQueryAPI,
	httpClient *http.Client,
	log zerolog.Logger,
) *Clients {
	metadataAPI := httpapi.NewMetadataAPI(
		cfg.MetadataService.APIURL,
		httpClient,
		log.With().Str("component", "metadata").Logger(),
	)

	clients := &Clients{
		TableMetadataAPI: memory.NewTableMetadataCache(metadataAPI, cacher),
		BigQueryAPI:      bigQueryAPI,
		UserAPI:          metadataAPI,
	}

	notificationLog := log.With().Str("component", "notification").Logger()

	switch cfg.Notifications.Dispatcher {
	case config.DispatcherHTTP:
		clients.NotificationAPI = httpapi.NewNotificationAPI(
			cfg.Notifications.APIURL,
			cfg.Notifications.RetryMax,
			httpClient,
			notificationLog,
		)
		clients.SlackAPI = static.NewSlackAPI(notificationLog)
	case config.DispatcherSlack:
		slack := slackapi.NewSlackAPI(
			cfg.Notifications.Slack.Token,
			cfg.Notifications.Slack.Channel,
			cfg.FrontendURL,
			notificationLog,
		)
		clients.NotificationAPI = slack
		clients.SlackAPI = slack
	default:
		staticAPI := static.NewSlackAPI(notificationLog)
		clients.NotificationAPI = staticAPI
		clients.SlackAPI = staticAPI
	}

	return clients
}
