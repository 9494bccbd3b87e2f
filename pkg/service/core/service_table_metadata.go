package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/bq"
	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/tablemetadata"
)

var _ service.TableMetadataService = &tableMetadataService{}

type tableMetadataService struct {
	tableMetadataAPI    service.TableMetadataAPI
	bigQueryAPI         service.BigQueryAPI
	notificationService service.NotificationService
	opts                tablemetadata.Options
	log                 zerolog.Logger
}

func (s *tableMetadataService) GetTable(ctx context.Context, params service.TableQueryParams) (*service.TableDetail, error) {
	const op errs.Op = "tableMetadataService.GetTable"

	if params.Key == "" {
		return nil, errs.E(errs.InvalidRequest, op, errs.Parameter("key"), fmt.Errorf("missing table key"))
	}

	res, err := s.tableMetadataAPI.GetTableData(ctx, params)
	if err != nil {
		return nil, errs.E(op, err)
	}

	return &service.TableDetail{
		TableData: tablemetadata.TableDataFromResponse(res, s.opts),
		Owners:    res.TableData.Owners,
		Tags:      res.TableData.Tags,
	}, nil
}

func (s *tableMetadataService) GetTypeMetadata(ctx context.Context, params service.TableQueryParams, typeMetadataKey string) (*service.TypeMetadata, error) {
	const op errs.Op = "tableMetadataService.GetTypeMetadata"

	table, err := s.GetTable(ctx, params)
	if err != nil {
		return nil, errs.E(op, err)
	}

	tm, err := tablemetadata.TypeMetadataFromKey(typeMetadataKey, table.TableData)
	if err != nil {
		return nil, errs.E(op, err)
	}

	if tm == nil {
		return nil, errs.E(errs.NotExist, op, errs.Parameter("type_metadata_key"), fmt.Errorf("type metadata %s not found", typeMetadataKey))
	}

	return tm, nil
}

func (s *tableMetadataService) GetColumnCount(ctx context.Context, params service.TableQueryParams) (*service.ColumnCount, error) {
	const op errs.Op = "tableMetadataService.GetColumnCount"

	table, err := s.GetTable(ctx, params)
	if err != nil {
		return nil, errs.E(op, err)
	}

	return &service.ColumnCount{
		Key:   params.Key,
		Count: tablemetadata.ColumnCount(table.TableData.Columns),
	}, nil
}

func (s *tableMetadataService) GetRelatedDashboards(ctx context.Context, tableKey string) (*service.RelatedDashboards, error) {
	const op errs.Op = "tableMetadataService.GetRelatedDashboards"

	dashboards, err := s.tableMetadataAPI.GetRelatedDashboards(ctx, tableKey)
	if err != nil {
		return nil, errs.E(op, err)
	}

	return dashboards, nil
}

// UpdateTableOwner changes the owner upstream and then notifies the owner.
// A failed notification is logged, since the ownership change has already
// been made.
func (s *tableMetadataService) UpdateTableOwner(ctx context.Context, tableKey string, payload service.UpdateOwnerPayload) error {
	const op errs.Op = "tableMetadataService.UpdateTableOwner"

	method := service.UpdateMethod(strings.ToUpper(string(payload.Method)))
	if method != service.UpdateMethodPut && method != service.UpdateMethodDelete {
		return errs.E(errs.InvalidRequest, op, errs.Parameter("method"), fmt.Errorf("unsupported method %q", payload.Method))
	}

	if payload.ID == "" {
		return errs.E(errs.InvalidRequest, op, errs.Parameter("id"), fmt.Errorf("missing owner id"))
	}

	payload.Method = method

	err := s.tableMetadataAPI.UpdateTableOwner(ctx, tableKey, payload.ID, method)
	if err != nil {
		return errs.E(op, err)
	}

	table, err := s.GetTable(ctx, service.TableQueryParams{Key: tableKey})
	if err != nil {
		s.log.Error().Err(err).Str("key", tableKey).Msg("fetching table for owner notification")

		return nil
	}

	err = s.notificationService.NotifyOwnerChange(ctx, payload, table.TableData)
	if err != nil {
		s.log.Error().Err(err).Str("key", tableKey).Str("owner", payload.ID).Msg("notifying owner")
	}

	return nil
}

func (s *tableMetadataService) GetBigQueryTable(ctx context.Context, tableKey string) (*service.TableDetail, error) {
	const op errs.Op = "tableMetadataService.GetBigQueryTable"

	table, err := s.bigQueryAPI.GetTableMetadata(ctx, tableKey)
	if err != nil {
		switch {
		case errors.Is(err, bq.ErrInvalidKey):
			return nil, errs.E(errs.InvalidRequest, op, errs.Parameter("key"), err)
		case errors.Is(err, bq.ErrNotExist):
			return nil, errs.E(errs.NotExist, op, errs.Parameter("key"), err)
		default:
			return nil, errs.E(errs.IO, op, err)
		}
	}

	table.Columns = tablemetadata.ProcessColumns(table.Columns, table.Key, table.Database, s.opts)

	return &service.TableDetail{
		TableData: table,
	}, nil
}

func NewTableMetadataService(
	tableMetadataAPI service.TableMetadataAPI,
	bigQueryAPI service.BigQueryAPI,
	notificationService service.NotificationService,
	opts tablemetadata.Options,
	log zerolog.Logger,
) *tableMetadataService {
	return &tableMetadataService{
		tableMetadataAPI:    tableMetadataAPI,
		bigQueryAPI:         bigQueryAPI,
		notificationService: notificationService,
		opts:                opts,
		log:                 log,
	}
}
