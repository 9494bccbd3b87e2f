package handlers

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/navikt/nada-tablemetadata/pkg/service"
)

type SlackChannelQuery struct {
	Channel string `query:"channel" json:"channel"`
}

func (q SlackChannelQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Channel, validation.Required),
	)
}

type SlackHandler struct {
	service service.SlackService
}

type isValidSlackChannelResult struct {
	IsValidSlackChannel bool `json:"isValidSlackChannel"`
}

func (h *SlackHandler) IsValidSlackChannel(_ context.Context, _ *http.Request, in SlackChannelQuery) (*isValidSlackChannelResult, error) {
	err := h.service.IsValidSlackChannel(in.Channel)
	if err != nil {
		return nil, err
	}

	return &isValidSlackChannelResult{
		IsValidSlackChannel: true,
	}, nil
}

func NewSlackHandler(s service.SlackService) *SlackHandler {
	return &SlackHandler{
		service: s,
	}
}
