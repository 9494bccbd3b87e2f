package bq_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/go-chi/chi"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navikt/nada-tablemetadata/pkg/bq"
	"github.com/navikt/nada-tablemetadata/pkg/service"
	"github.com/navikt/nada-tablemetadata/pkg/tablemetadata"
)

const tableKey = "bigquery://project.dataset/table"

func addressSchema() bigquery.Schema {
	return bigquery.Schema{
		{Name: "id", Type: bigquery.IntegerFieldType, Required: true},
		{
			Name:        "address",
			Type:        bigquery.RecordFieldType,
			Description: "where they live",
			Schema: bigquery.Schema{
				{Name: "street", Type: bigquery.StringFieldType, Description: "street name"},
				{Name: "zip", Type: bigquery.IntegerFieldType},
			},
		},
		{Name: "tags", Type: bigquery.StringFieldType, Repeated: true},
		{
			Name:     "visits",
			Type:     bigquery.RecordFieldType,
			Repeated: true,
			Schema: bigquery.Schema{
				{Name: "at", Type: bigquery.TimestampFieldType, Description: "visit time"},
				{Name: "ok", Type: bigquery.BooleanFieldType},
			},
		},
	}
}

func TestColumnType(t *testing.T) {
	testCases := []struct {
		name   string
		field  *bigquery.FieldSchema
		expect string
	}{
		{
			name:   "scalar",
			field:  &bigquery.FieldSchema{Type: bigquery.StringFieldType},
			expect: "STRING",
		},
		{
			name:   "legacy name",
			field:  &bigquery.FieldSchema{Type: bigquery.FloatFieldType},
			expect: "FLOAT64",
		},
		{
			name:   "repeated scalar",
			field:  &bigquery.FieldSchema{Type: bigquery.IntegerFieldType, Repeated: true},
			expect: "ARRAY<INT64>",
		},
		{
			name: "repeated record with nested repeated field",
			field: &bigquery.FieldSchema{
				Type:     bigquery.RecordFieldType,
				Repeated: true,
				Schema: bigquery.Schema{
					{Name: "a", Type: bigquery.BooleanFieldType},
					{Name: "b", Type: bigquery.StringFieldType, Repeated: true},
				},
			},
			expect: "ARRAY<STRUCT<a BOOL,b ARRAY<STRING>>>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, bq.ColumnType(tc.field))
		})
	}
}

func TestColumnsFromSchema(t *testing.T) {
	columns := bq.ColumnsFromSchema(tableKey, addressSchema())

	require.Len(t, columns, 4)

	assert.Equal(t, "INT64", columns[0].ColType)
	assert.Nil(t, columns[0].TypeMetadata)

	address := columns[1]
	expect := &service.TypeMetadata{
		Kind:     service.TypeMetadataKindStruct,
		Name:     "address",
		Key:      tableKey + "/address/type/address",
		DataType: "STRUCT<street STRING,zip INT64>",
		Children: []*service.TypeMetadata{
			{
				Kind:        service.TypeMetadataKindScalar,
				Name:        "street",
				Key:         tableKey + "/address/type/address/street",
				Description: "street name",
				DataType:    "STRING",
			},
			{
				Kind:      service.TypeMetadataKindScalar,
				Name:      "zip",
				Key:       tableKey + "/address/type/address/zip",
				DataType:  "INT64",
				SortOrder: 1,
			},
		},
	}

	assert.Equal(t, tableKey+"/address", address.Key)
	assert.Equal(t, "where they live", address.Description)
	assert.Equal(t, 1, address.SortOrder)
	if diff := cmp.Diff(expect, address.TypeMetadata); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	tags := columns[2]
	require.NotNil(t, tags.TypeMetadata)
	assert.Equal(t, service.TypeMetadataKindArray, tags.TypeMetadata.Kind)
	require.Len(t, tags.TypeMetadata.Children, 1)
	assert.Equal(t, "_inner_", tags.TypeMetadata.Children[0].Name)

	visits := columns[3]
	assert.Equal(t, "ARRAY<STRUCT<at TIMESTAMP,ok BOOL>>", visits.ColType)
	require.NotNil(t, visits.TypeMetadata)
	require.Len(t, visits.TypeMetadata.Children, 1)

	element := visits.TypeMetadata.Children[0]
	assert.Equal(t, service.TypeMetadataKindStruct, element.Kind)
	require.Len(t, element.Children, 2)
	assert.Equal(t, "visit time", element.Children[0].Description)
}

func TestColumnsFromSchema_KeysResolve(t *testing.T) {
	table := &service.TableMetadata{
		Key:     tableKey,
		Columns: bq.ColumnsFromSchema(tableKey, addressSchema()),
	}

	got, err := tablemetadata.TypeMetadataFromKey(tableKey+"/visits/type/visits/_inner_/ok", table)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "BOOL", got.DataType)
}

func TestParseTableKey(t *testing.T) {
	testCases := []struct {
		name      string
		key       string
		project   string
		dataset   string
		table     string
		expectErr bool
	}{
		{name: "plain", key: "bigquery://p.d/t", project: "p", dataset: "d", table: "t"},
		{name: "domain scoped project", key: "bigquery://example.com:p.d/t", project: "example.com:p", dataset: "d", table: "t"},
		{name: "wrong scheme", key: "hive://p.d/t", expectErr: true},
		{name: "no table", key: "bigquery://p.d", expectErr: true},
		{name: "no dataset", key: "bigquery://p/t", expectErr: true},
		{name: "trailing segments", key: "bigquery://p.d/t/col", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			project, dataset, table, err := bq.ParseTableKey(tc.key)
			if tc.expectErr {
				assert.ErrorIs(t, err, bq.ErrInvalidKey)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.project, project)
			assert.Equal(t, tc.dataset, dataset)
			assert.Equal(t, tc.table, table)
			assert.Equal(t, tc.key, bq.TableKey(project, dataset, table))
		})
	}
}

const tableResource = `{
  "kind": "bigquery#table",
  "id": "project:dataset.table",
  "tableReference": {"projectId": "project", "datasetId": "dataset", "tableId": "table"},
  "description": "people",
  "type": "TABLE",
  "lastModifiedTime": "1700000000000",
  "schema": {
    "fields": [
      {"name": "id", "type": "INTEGER", "mode": "REQUIRED"},
      {"name": "address", "type": "RECORD", "mode": "NULLABLE", "fields": [
        {"name": "street", "type": "STRING"}
      ]}
    ]
  }
}`

func TestClient_GetTableMetadata(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/projects/{project}/datasets/{dataset}/tables/{table}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "table") != "table" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"Not found: Table","errors":[{"reason":"notFound"}]}}`))

			return
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(tableResource))
	})

	s := httptest.NewServer(router)
	defer s.Close()

	c := bq.NewClient(s.URL, false, zerolog.Nop())

	t.Run("found", func(t *testing.T) {
		got, err := c.GetTableMetadata(context.Background(), tableKey)
		require.NoError(t, err)

		assert.Equal(t, tableKey, got.Key)
		assert.Equal(t, "project", got.Cluster)
		assert.Equal(t, bq.DatabaseID, got.Database)
		assert.Equal(t, "dataset", got.Schema)
		assert.Equal(t, "table", got.Name)
		assert.Equal(t, "people", got.Description)
		assert.Equal(t, int64(1700000000), got.LastUpdatedTimestamp)
		require.Len(t, got.Columns, 2)
		assert.Equal(t, "STRUCT<street STRING>", got.Columns[1].ColType)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.GetTableMetadata(context.Background(), "bigquery://project.dataset/missing")
		assert.ErrorIs(t, err, bq.ErrNotExist)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, err := c.GetTableMetadata(context.Background(), "hive://a.b/c")
		assert.ErrorIs(t, err, bq.ErrInvalidKey)
	})
}
