package tablemetadata

import (
	"fmt"
	"strings"

	"github.com/navikt/nada-tablemetadata/pkg/service"
)

const (
	resourcePathPrefix = "/table_detail"
)

// TableDataFromResponse returns the table metadata of a metadata API
// response, with owners and tags left out and columns processed.
func TableDataFromResponse(resp *service.TableDataAPI, opts Options) *service.TableMetadata {
	if resp == nil {
		return nil
	}

	table := resp.TableData.TableMetadata
	table.Columns = ProcessColumns(table.Columns, table.Key, table.Database, opts)

	return &table
}

// CreateOwnerNotificationData builds the notification sent when an owner is
// added to or removed from a table.
func CreateOwnerNotificationData(payload service.UpdateOwnerPayload, table *service.TableMetadata) *service.OwnerNotification {
	notificationType := service.NotificationTypeOwnerRemoved
	if strings.EqualFold(string(payload.Method), string(service.UpdateMethodPut)) {
		notificationType = service.NotificationTypeOwnerAdded
	}

	return &service.OwnerNotification{
		NotificationType: notificationType,
		Options: service.NotificationOptions{
			ResourceName: fmt.Sprintf("%s.%s", table.Schema, table.Name),
			ResourcePath: fmt.Sprintf("%s/%s/%s/%s/%s", resourcePathPrefix, table.Cluster, table.Database, table.Schema, table.Name),
		},
		Recipients: []string{payload.ID},
	}
}

// ShouldSendNotification reports whether a user can be notified, which
// requires an active user with a display name.
func ShouldSendNotification(user *service.PeopleUser) bool {
	return user != nil && user.IsActive && user.DisplayName != ""
}
