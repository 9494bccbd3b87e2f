package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

const (
	notificationRetryWaitMin = 100 * time.Millisecond
	notificationRetryWaitMax = 2 * time.Second
)

var _ service.NotificationAPI = &notificationAPI{}

// notificationAPI posts owner notifications to a notification endpoint, which
// is responsible for rendering and delivering the mail.
type notificationAPI struct {
	client *retryablehttp.Client
	url    string
	log    zerolog.Logger
}

func (n *notificationAPI) Send(ctx context.Context, notification *service.OwnerNotification) error {
	const op errs.Op = "notificationAPI.Send"

	data, err := json.Marshal(notification)
	if err != nil {
		return errs.E(errs.Internal, op, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(data))
	if err != nil {
		return errs.E(errs.Internal, op, fmt.Errorf("creating request: %w", err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(ConsumerIDHeader, ConsumerID)

	res, err := n.client.Do(req)
	if err != nil {
		return errs.E(errs.IO, op, fmt.Errorf("sending notification: %w", err))
	}
	defer res.Body.Close()

	if res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBodyBytes))

		return errs.E(errs.IO, op, fmt.Errorf("non 2xx status code, got: %d: %s", res.StatusCode, msg))
	}

	n.log.Info().
		Str("notification_type", string(notification.NotificationType)).
		Str("resource_name", notification.Options.ResourceName).
		Strs("recipients", notification.Recipients).
		Msg("sent owner notification")

	return nil
}

func NewNotificationAPI(url string, retryMax int, client *http.Client, log zerolog.Logger) *notificationAPI {
	c := retryablehttp.NewClient()
	c.HTTPClient = client
	c.Logger = nil
	c.RetryMax = retryMax
	c.RetryWaitMin = notificationRetryWaitMin
	c.RetryWaitMax = notificationRetryWaitMax

	return &notificationAPI{
		client: c,
		url:    url,
		log:    log,
	}
}
