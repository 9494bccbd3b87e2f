package memory

import (
	"context"
	"fmt"

	"github.com/navikt/nada-tablemetadata/pkg/cache"
	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

var _ service.TableMetadataAPI = &tableMetadataCache{}

type tableMetadataCache struct {
	api   service.TableMetadataAPI
	cache cache.Cacher
}

func tableCacheKey(key string) string {
	return fmt.Sprintf("tablemetadata:table:%s", key)
}

func dashboardsCacheKey(key string) string {
	return fmt.Sprintf("tablemetadata:dashboards:%s", key)
}

// GetTableData is cached on the table key alone; the remaining query params
// only tag the request upstream.
func (t *tableMetadataCache) GetTableData(ctx context.Context, params service.TableQueryParams) (*service.TableDataAPI, error) {
	const op errs.Op = "tableMetadataCache.GetTableData"

	key := tableCacheKey(params.Key)

	data := &service.TableDataAPI{}
	valid := t.cache.Get(key, data)
	if valid {
		return data, nil
	}

	data, err := t.api.GetTableData(ctx, params)
	if err != nil {
		return nil, errs.E(op, err)
	}

	t.cache.Set(key, data)

	return data, nil
}

func (t *tableMetadataCache) GetRelatedDashboards(ctx context.Context, tableKey string) (*service.RelatedDashboards, error) {
	const op errs.Op = "tableMetadataCache.GetRelatedDashboards"

	key := dashboardsCacheKey(tableKey)

	dashboards := &service.RelatedDashboards{}
	valid := t.cache.Get(key, dashboards)
	if valid {
		return dashboards, nil
	}

	dashboards, err := t.api.GetRelatedDashboards(ctx, tableKey)
	if err != nil {
		return nil, errs.E(op, err)
	}

	t.cache.Set(key, dashboards)

	return dashboards, nil
}

func (t *tableMetadataCache) UpdateTableOwner(ctx context.Context, key, owner string, method service.UpdateMethod) error {
	const op errs.Op = "tableMetadataCache.UpdateTableOwner"

	err := t.api.UpdateTableOwner(ctx, key, owner, method)
	if err != nil {
		return errs.E(op, err)
	}

	t.cache.Delete(tableCacheKey(key))

	return nil
}

func NewTableMetadataCache(api service.TableMetadataAPI, cache cache.Cacher) *tableMetadataCache {
	return &tableMetadataCache{
		api:   api,
		cache: cache,
	}
}
