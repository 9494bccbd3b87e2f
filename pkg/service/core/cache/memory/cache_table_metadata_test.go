package memory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/nada-tablemetadata/pkg/cache"
	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/cache/memory"
)

type fakeAPI struct {
	tableCalls      int
	dashboardCalls  int
	owner           string
	failUpdateOwner bool
}

func (f *fakeAPI) GetTableData(_ context.Context, params service.TableQueryParams) (*service.TableDataAPI, error) {
	f.tableCalls++

	return &service.TableDataAPI{
		Msg: "Success",
		TableData: service.TableDataResponse{
			TableMetadata: service.TableMetadata{Key: params.Key},
			Owners:        []*service.PeopleUser{{UserID: f.owner}},
		},
	}, nil
}

func (f *fakeAPI) GetRelatedDashboards(_ context.Context, tableKey string) (*service.RelatedDashboards, error) {
	f.dashboardCalls++

	return &service.RelatedDashboards{
		Dashboards: []*service.DashboardSummary{{Name: tableKey}},
	}, nil
}

func (f *fakeAPI) UpdateTableOwner(_ context.Context, _, owner string, _ service.UpdateMethod) error {
	if f.failUpdateOwner {
		return errs.E(errs.IO, errs.Op("fakeAPI.UpdateTableOwner"), fmt.Errorf("oops"))
	}

	f.owner = owner

	return nil
}

func TestTableMetadataCache_GetTableData(t *testing.T) {
	api := &fakeAPI{owner: "alice"}
	c := memory.NewTableMetadataCache(api, cache.New(10, time.Minute, zerolog.Nop()))

	ctx := context.Background()
	source := "search"

	first, err := c.GetTableData(ctx, service.TableQueryParams{Key: "db://c.s/t"})
	require.NoError(t, err)

	second, err := c.GetTableData(ctx, service.TableQueryParams{Key: "db://c.s/t", Source: &source})
	require.NoError(t, err)

	assert.Equal(t, 1, api.tableCalls)
	assert.Equal(t, first, second)

	_, err = c.GetTableData(ctx, service.TableQueryParams{Key: "db://c.s/other"})
	require.NoError(t, err)
	assert.Equal(t, 2, api.tableCalls)
}

func TestTableMetadataCache_UpdateTableOwnerInvalidates(t *testing.T) {
	api := &fakeAPI{owner: "alice"}
	c := memory.NewTableMetadataCache(api, cache.New(10, time.Minute, zerolog.Nop()))

	ctx := context.Background()
	params := service.TableQueryParams{Key: "db://c.s/t"}

	_, err := c.GetTableData(ctx, params)
	require.NoError(t, err)

	err = c.UpdateTableOwner(ctx, params.Key, "bob", service.UpdateMethodPut)
	require.NoError(t, err)

	got, err := c.GetTableData(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, api.tableCalls)
	assert.Equal(t, "bob", got.TableData.Owners[0].UserID)

	api.failUpdateOwner = true

	err = c.UpdateTableOwner(ctx, params.Key, "carol", service.UpdateMethodPut)
	require.Error(t, err)
	assert.True(t, errs.KindIs(errs.IO, err))

	_, err = c.GetTableData(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, 2, api.tableCalls)
}

func TestTableMetadataCache_GetRelatedDashboards(t *testing.T) {
	api := &fakeAPI{}
	c := memory.NewTableMetadataCache(api, cache.New(10, time.Minute, zerolog.Nop()))

	for i := 0; i < 3; i++ {
		got, err := c.GetRelatedDashboards(context.Background(), "db://c.s/t")
		require.NoError(t, err)
		assert.Equal(t, "db://c.s/t", got.Dashboards[0].Name)
	}

	assert.Equal(t, 1, api.dashboardCalls)
}
