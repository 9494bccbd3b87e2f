package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type UserAPI interface {
	GetUser(ctx context.Context, userID string) (*PeopleUser, error)
}

type NotificationAPI interface {
	Send(ctx context.Context, notification *OwnerNotification) error
}

type NotificationStorage interface {
	CreateNotificationLog(ctx context.Context, notification *OwnerNotification) (*NotificationLog, error)
	ListNotificationLogs(ctx context.Context, resourceName string) ([]*NotificationLog, error)
}

type NotificationService interface {
	NotifyOwnerChange(ctx context.Context, payload UpdateOwnerPayload, table *TableMetadata) error
	ListNotificationLogs(ctx context.Context, resourceName string) (*NotificationLogs, error)
}

type NotificationType string

const (
	NotificationTypeOwnerAdded        NotificationType = "owner_added"
	NotificationTypeOwnerRemoved      NotificationType = "owner_removed"
	NotificationTypeMetadataEdited    NotificationType = "metadata_edited"
	NotificationTypeMetadataRequested NotificationType = "metadata_requested"
)

type NotificationOptions struct {
	ResourceName string `json:"resource_name"`
	ResourcePath string `json:"resource_path"`
}

type OwnerNotification struct {
	NotificationType NotificationType    `json:"notificationType"`
	Options          NotificationOptions `json:"options"`
	Recipients       []string            `json:"recipients"`
}

type NotificationLog struct {
	ID               uuid.UUID        `json:"id"`
	NotificationType NotificationType `json:"notificationType"`
	ResourceName     string           `json:"resourceName"`
	ResourcePath     string           `json:"resourcePath"`
	Recipients       []string         `json:"recipients"`
	Created          time.Time        `json:"created"`
	// Payload is the notification as it was dispatched.
	Payload json.RawMessage `json:"payload,omitempty"`
}

type NotificationLogs struct {
	Logs []*NotificationLog `json:"logs"`
}

type PeopleUser struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	IsActive    bool   `json:"is_active"`
	ProfileURL  string `json:"profile_url"`
	TeamName    string `json:"team_name"`
	SlackID     string `json:"slack_id"`
}
