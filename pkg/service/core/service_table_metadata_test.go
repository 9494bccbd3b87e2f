package core_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/navikt/nada-tablemetadata/pkg/bq"
	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/service/core"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/mock"
	"github.com/navikt/nada-tablemetadata/pkg/tablemetadata"
)

const tableKey = "hive://gold.core/users"

var opts = tablemetadata.Options{
	NestedColumnsEnabled: true,
	DeriveTypeMetadata:   true,
}

func tableData() *service.TableDataAPI {
	return &service.TableDataAPI{
		Msg: "Success",
		TableData: service.TableDataResponse{
			TableMetadata: service.TableMetadata{
				Key:      tableKey,
				Cluster:  "gold",
				Database: "hive",
				Schema:   "core",
				Name:     "users",
				Columns: []*service.TableColumn{
					{Name: "id", ColType: "int"},
					{Name: "address", ColType: "struct<street:string,zip:int>"},
				},
			},
			Owners: []*service.PeopleUser{{UserID: "alice"}},
			Tags:   []*service.Tag{{TagName: "pii"}},
		},
	}
}

func TestTableMetadataService_GetTable(t *testing.T) {
	api := &mock.TableMetadataAPIMock{}
	params := service.TableQueryParams{Key: tableKey}
	api.On("GetTableData", tmock.Anything, params).Return(tableData(), nil)

	s := core.NewTableMetadataService(api, nil, nil, opts, zerolog.Nop())

	got, err := s.GetTable(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, []*service.PeopleUser{{UserID: "alice"}}, got.Owners)
	assert.Equal(t, []*service.Tag{{TagName: "pii"}}, got.Tags)
	require.Len(t, got.TableData.Columns, 2)
	assert.Equal(t, tableKey+"/id", got.TableData.Columns[0].Key)
	assert.Nil(t, got.TableData.Columns[0].Children)
	assert.Len(t, got.TableData.Columns[1].Children, 2)
	assert.NotNil(t, got.TableData.Columns[1].TypeMetadata)

	_, err = s.GetTable(context.Background(), service.TableQueryParams{})
	require.Error(t, err)
	assert.True(t, errs.KindIs(errs.InvalidRequest, err))

	api.AssertExpectations(t)
}

func TestTableMetadataService_GetTable_UpstreamError(t *testing.T) {
	api := &mock.TableMetadataAPIMock{}
	api.On("GetTableData", tmock.Anything, tmock.Anything).
		Return((*service.TableDataAPI)(nil), errs.E(errs.NotExist, errs.Op("metadataAPI.GetTableData"), fmt.Errorf("not found")))

	s := core.NewTableMetadataService(api, nil, nil, opts, zerolog.Nop())

	_, err := s.GetTable(context.Background(), service.TableQueryParams{Key: tableKey})
	require.Error(t, err)
	assert.True(t, errs.KindIs(errs.NotExist, err))
	assert.Equal(t, []string{"tableMetadataService.GetTable", "metadataAPI.GetTableData"}, errs.OpStack(err))
}

func TestTableMetadataService_GetTypeMetadata(t *testing.T) {
	testCases := []struct {
		name       string
		key        string
		expect     string
		expectKind errs.Kind
	}{
		{
			name:   "should resolve column root",
			key:    tableKey + "/address/type/address",
			expect: "address",
		},
		{
			name:   "should resolve nested field",
			key:    tableKey + "/address/type/address/zip",
			expect: "zip",
		},
		{
			name:       "should not find unknown field",
			key:        tableKey + "/address/type/address/city",
			expectKind: errs.NotExist,
		},
		{
			name:       "should reject malformed key",
			key:        tableKey + "/address",
			expectKind: errs.InvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := &mock.TableMetadataAPIMock{}
			api.On("GetTableData", tmock.Anything, tmock.Anything).Return(tableData(), nil)

			s := core.NewTableMetadataService(api, nil, nil, opts, zerolog.Nop())

			got, err := s.GetTypeMetadata(context.Background(), service.TableQueryParams{Key: tableKey}, tc.key)
			if tc.expectKind != 0 {
				require.Error(t, err)
				assert.True(t, errs.KindIs(tc.expectKind, err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expect, got.Name)
		})
	}
}

func TestTableMetadataService_GetColumnCount(t *testing.T) {
	api := &mock.TableMetadataAPIMock{}
	api.On("GetTableData", tmock.Anything, tmock.Anything).Return(tableData(), nil)

	s := core.NewTableMetadataService(api, nil, nil, opts, zerolog.Nop())

	got, err := s.GetColumnCount(context.Background(), service.TableQueryParams{Key: tableKey})
	require.NoError(t, err)
	assert.Equal(t, &service.ColumnCount{Key: tableKey, Count: 4}, got)

	s = core.NewTableMetadataService(api, nil, nil, tablemetadata.Options{}, zerolog.Nop())

	got, err = s.GetColumnCount(context.Background(), service.TableQueryParams{Key: tableKey})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
}

func TestTableMetadataService_UpdateTableOwner(t *testing.T) {
	testCases := []struct {
		name       string
		payload    service.UpdateOwnerPayload
		setup      func(api *mock.TableMetadataAPIMock, ns *mock.NotificationServiceMock)
		expectKind errs.Kind
	}{
		{
			name:    "should update owner and notify",
			payload: service.UpdateOwnerPayload{ID: "bob", Method: "put"},
			setup: func(api *mock.TableMetadataAPIMock, ns *mock.NotificationServiceMock) {
				api.On("UpdateTableOwner", tmock.Anything, tableKey, "bob", service.UpdateMethodPut).Return(nil)
				api.On("GetTableData", tmock.Anything, service.TableQueryParams{Key: tableKey}).Return(tableData(), nil)
				ns.On("NotifyOwnerChange", tmock.Anything, service.UpdateOwnerPayload{ID: "bob", Method: service.UpdateMethodPut}, tmock.AnythingOfType("*service.TableMetadata")).Return(nil)
			},
		},
		{
			name:    "should ignore notification errors",
			payload: service.UpdateOwnerPayload{ID: "bob", Method: service.UpdateMethodDelete},
			setup: func(api *mock.TableMetadataAPIMock, ns *mock.NotificationServiceMock) {
				api.On("UpdateTableOwner", tmock.Anything, tableKey, "bob", service.UpdateMethodDelete).Return(nil)
				api.On("GetTableData", tmock.Anything, tmock.Anything).Return(tableData(), nil)
				ns.On("NotifyOwnerChange", tmock.Anything, tmock.Anything, tmock.Anything).Return(errs.E(errs.IO, errs.Op("notify"), fmt.Errorf("oops")))
			},
		},
		{
			name:    "should fail when upstream fails",
			payload: service.UpdateOwnerPayload{ID: "bob", Method: service.UpdateMethodPut},
			setup: func(api *mock.TableMetadataAPIMock, _ *mock.NotificationServiceMock) {
				api.On("UpdateTableOwner", tmock.Anything, tableKey, "bob", service.UpdateMethodPut).Return(errs.E(errs.IO, errs.Op("update"), fmt.Errorf("oops")))
			},
			expectKind: errs.IO,
		},
		{
			name:       "should reject unknown method",
			payload:    service.UpdateOwnerPayload{ID: "bob", Method: "PATCH"},
			setup:      func(*mock.TableMetadataAPIMock, *mock.NotificationServiceMock) {},
			expectKind: errs.InvalidRequest,
		},
		{
			name:       "should reject missing owner",
			payload:    service.UpdateOwnerPayload{Method: service.UpdateMethodPut},
			setup:      func(*mock.TableMetadataAPIMock, *mock.NotificationServiceMock) {},
			expectKind: errs.InvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := &mock.TableMetadataAPIMock{}
			ns := &mock.NotificationServiceMock{}
			tc.setup(api, ns)

			s := core.NewTableMetadataService(api, nil, ns, opts, zerolog.Nop())

			err := s.UpdateTableOwner(context.Background(), tableKey, tc.payload)
			if tc.expectKind != 0 {
				require.Error(t, err)
				assert.True(t, errs.KindIs(tc.expectKind, err))
			} else {
				require.NoError(t, err)
			}

			api.AssertExpectations(t)
			ns.AssertExpectations(t)
		})
	}
}

func TestTableMetadataService_GetBigQueryTable(t *testing.T) {
	key := bq.TableKey("project", "dataset", "events")

	testCases := []struct {
		name       string
		err        error
		expectKind errs.Kind
	}{
		{
			name: "should return table",
		},
		{
			name:       "should map invalid key",
			err:        fmt.Errorf("%w: bad", bq.ErrInvalidKey),
			expectKind: errs.InvalidRequest,
		},
		{
			name:       "should map missing table",
			err:        bq.ErrNotExist,
			expectKind: errs.NotExist,
		},
		{
			name:       "should map other errors",
			err:        fmt.Errorf("oops"),
			expectKind: errs.IO,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := &mock.BigQueryAPIMock{}

			var table *service.TableMetadata
			if tc.err == nil {
				table = &service.TableMetadata{
					Key:      key,
					Database: bq.DatabaseID,
					Columns: []*service.TableColumn{
						{Name: "visits", ColType: "ARRAY<STRUCT<ok BOOL>>"},
					},
				}
			}

			api.On("GetTableMetadata", tmock.Anything, key).Return(table, tc.err)

			s := core.NewTableMetadataService(nil, api, nil, opts, zerolog.Nop())

			got, err := s.GetBigQueryTable(context.Background(), key)
			if tc.expectKind != 0 {
				require.Error(t, err)
				assert.True(t, errs.KindIs(tc.expectKind, err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, key+"/visits", got.TableData.Columns[0].Key)
			assert.Equal(t, 2, tablemetadata.ColumnCount(got.TableData.Columns))
		})
	}
}
