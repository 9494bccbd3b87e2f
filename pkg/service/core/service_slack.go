package core

import (
	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

var _ service.SlackService = &slackService{}

type slackService struct {
	slackAPI service.SlackAPI
}

// IsValidSlackChannel checks that a channel exists before it is stored as
// the contact point of a table owner.
func (s *slackService) IsValidSlackChannel(name string) error {
	const op errs.Op = "slackService.IsValidSlackChannel"

	err := s.slackAPI.IsValidSlackChannel(name)
	if err != nil {
		return errs.E(op, errs.Parameter("channel"), err)
	}

	return nil
}

func NewSlackService(slackAPI service.SlackAPI) *slackService {
	return &slackService{
		slackAPI: slackAPI,
	}
}
