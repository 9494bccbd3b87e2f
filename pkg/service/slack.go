package service

type SlackAPI interface {
	IsValidSlackChannel(name string) error
}

type SlackService interface {
	IsValidSlackChannel(name string) error
}
