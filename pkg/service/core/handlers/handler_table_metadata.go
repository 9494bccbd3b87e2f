package handlers

import (
	"context"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/transport"
)

// TableQuery identifies a table, with the optional params the frontend uses
// to tag where the request came from.
type TableQuery struct {
	Key        string  `query:"key" json:"key"`
	ColumnName *string `query:"column_name" json:"column_name"`
	Index      *string `query:"index" json:"index"`
	Source     *string `query:"source" json:"source"`
}

func (q TableQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Key, validation.Required),
		validation.Field(&q.Index, is.Int),
	)
}

func (q TableQuery) params() service.TableQueryParams {
	return service.TableQueryParams{
		Key:        q.Key,
		ColumnName: q.ColumnName,
		Index:      q.Index,
		Source:     q.Source,
	}
}

type TypeMetadataQuery struct {
	Key             string `query:"key" json:"key"`
	TypeMetadataKey string `query:"type_metadata_key" json:"type_metadata_key"`
}

func (q TypeMetadataQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Key, validation.Required),
		validation.Field(&q.TypeMetadataKey, validation.Required),
	)
}

type KeyQuery struct {
	Key string `query:"key" json:"key"`
}

func (q KeyQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Key, validation.Required),
	)
}

type UpdateTableOwnerRequest struct {
	Key   string `json:"key"`
	Owner string `json:"owner"`
}

func (u UpdateTableOwnerRequest) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Key, validation.Required),
		validation.Field(&u.Owner, validation.Required),
	)
}

type TableMetadataHandler struct {
	service service.TableMetadataService
}

func (h *TableMetadataHandler) GetTable(ctx context.Context, _ *http.Request, in TableQuery) (*service.TableDetail, error) {
	return h.service.GetTable(ctx, in.params())
}

func (h *TableMetadataHandler) GetTypeMetadata(ctx context.Context, _ *http.Request, in TypeMetadataQuery) (*service.TypeMetadata, error) {
	return h.service.GetTypeMetadata(ctx, service.TableQueryParams{Key: in.Key}, in.TypeMetadataKey)
}

func (h *TableMetadataHandler) GetColumnCount(ctx context.Context, _ *http.Request, in TableQuery) (*service.ColumnCount, error) {
	return h.service.GetColumnCount(ctx, in.params())
}

func (h *TableMetadataHandler) GetRelatedDashboards(ctx context.Context, _ *http.Request, in KeyQuery) (*service.RelatedDashboards, error) {
	return h.service.GetRelatedDashboards(ctx, in.Key)
}

// UpdateTableOwner adds the owner on PUT and removes it on DELETE.
func (h *TableMetadataHandler) UpdateTableOwner(ctx context.Context, r *http.Request, in UpdateTableOwnerRequest) (*transport.Empty, error) {
	err := h.service.UpdateTableOwner(ctx, in.Key, service.UpdateOwnerPayload{
		ID:     in.Owner,
		Method: service.UpdateMethod(r.Method),
	})
	if err != nil {
		return nil, err
	}

	return &transport.Empty{}, nil
}

func (h *TableMetadataHandler) GetBigQueryTable(ctx context.Context, _ *http.Request, in KeyQuery) (*service.TableDetail, error) {
	return h.service.GetBigQueryTable(ctx, in.Key)
}

func NewTableMetadataHandler(s service.TableMetadataService) *TableMetadataHandler {
	return &TableMetadataHandler{
		service: s,
	}
}
