package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/navikt/nada-tablemetadata/pkg/service"
)

var (
	_ service.TableMetadataAPI    = &TableMetadataAPIMock{}
	_ service.BigQueryAPI         = &BigQueryAPIMock{}
	_ service.UserAPI             = &UserAPIMock{}
	_ service.NotificationAPI     = &NotificationAPIMock{}
	_ service.NotificationStorage = &NotificationStorageMock{}
	_ service.NotificationService = &NotificationServiceMock{}
)

type TableMetadataAPIMock struct {
	mock.Mock
}

func (m *TableMetadataAPIMock) GetTableData(ctx context.Context, params service.TableQueryParams) (*service.TableDataAPI, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(*service.TableDataAPI), args.Error(1)
}

func (m *TableMetadataAPIMock) GetRelatedDashboards(ctx context.Context, tableKey string) (*service.RelatedDashboards, error) {
	args := m.Called(ctx, tableKey)
	return args.Get(0).(*service.RelatedDashboards), args.Error(1)
}

func (m *TableMetadataAPIMock) UpdateTableOwner(ctx context.Context, tableKey, owner string, method service.UpdateMethod) error {
	args := m.Called(ctx, tableKey, owner, method)
	return args.Error(0)
}

type BigQueryAPIMock struct {
	mock.Mock
}

func (m *BigQueryAPIMock) GetTableMetadata(ctx context.Context, key string) (*service.TableMetadata, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(*service.TableMetadata), args.Error(1)
}

type UserAPIMock struct {
	mock.Mock
}

func (m *UserAPIMock) GetUser(ctx context.Context, userID string) (*service.PeopleUser, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*service.PeopleUser), args.Error(1)
}

type NotificationAPIMock struct {
	mock.Mock
}

func (m *NotificationAPIMock) Send(ctx context.Context, notification *service.OwnerNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

type NotificationStorageMock struct {
	mock.Mock
}

func (m *NotificationStorageMock) CreateNotificationLog(ctx context.Context, notification *service.OwnerNotification) (*service.NotificationLog, error) {
	args := m.Called(ctx, notification)
	return args.Get(0).(*service.NotificationLog), args.Error(1)
}

func (m *NotificationStorageMock) ListNotificationLogs(ctx context.Context, resourceName string) ([]*service.NotificationLog, error) {
	args := m.Called(ctx, resourceName)
	return args.Get(0).([]*service.NotificationLog), args.Error(1)
}

type NotificationServiceMock struct {
	mock.Mock
}

func (m *NotificationServiceMock) NotifyOwnerChange(ctx context.Context, payload service.UpdateOwnerPayload, table *service.TableMetadata) error {
	args := m.Called(ctx, payload, table)
	return args.Error(0)
}

func (m *NotificationServiceMock) ListNotificationLogs(ctx context.Context, resourceName string) (*service.NotificationLogs, error) {
	args := m.Called(ctx, resourceName)
	return args.Get(0).(*service.NotificationLogs), args.Error(1)
}
