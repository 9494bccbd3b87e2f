package routes

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"

	"github.com/navikt/nada-tablemetadata/pkg/service/core/handlers"
	"github.com/navikt/nada-tablemetadata/pkg/service/core/transport"
)

type TableMetadataEndpoints struct {
	GetTable             http.HandlerFunc
	GetTypeMetadata      http.HandlerFunc
	GetColumnCount       http.HandlerFunc
	GetRelatedDashboards http.HandlerFunc
	UpdateTableOwner     http.HandlerFunc
	GetBigQueryTable     http.HandlerFunc
}

func NewTableMetadataEndpoints(log zerolog.Logger, h *handlers.TableMetadataHandler) *TableMetadataEndpoints {
	return &TableMetadataEndpoints{
		GetTable:             transport.For(h.GetTable).RequestFromQuery().Build(log),
		GetTypeMetadata:      transport.For(h.GetTypeMetadata).RequestFromQuery().Build(log),
		GetColumnCount:       transport.For(h.GetColumnCount).RequestFromQuery().Build(log),
		GetRelatedDashboards: transport.For(h.GetRelatedDashboards).RequestFromQuery().Build(log),
		UpdateTableOwner:     transport.For(h.UpdateTableOwner).RequestFromJSON().Build(log),
		GetBigQueryTable:     transport.For(h.GetBigQueryTable).RequestFromQuery().Build(log),
	}
}

func NewTableMetadataRoutes(endpoints *TableMetadataEndpoints) AddRoutesFn {
	return func(router chi.Router) {
		router.Route("/api/metadata/v0", func(r chi.Router) {
			r.Get("/table", endpoints.GetTable)
			r.Get("/table/type_metadata", endpoints.GetTypeMetadata)
			r.Get("/table/column_count", endpoints.GetColumnCount)
			r.Get("/table/dashboards", endpoints.GetRelatedDashboards)
			r.Put("/update_table_owner", endpoints.UpdateTableOwner)
			r.Delete("/update_table_owner", endpoints.UpdateTableOwner)
			r.Get("/bigquery/table", endpoints.GetBigQueryTable)
		})
	}
}
