// Package bq reads table metadata from BigQuery and converts table schemas
// into columns with type metadata.
package bq

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/rs/zerolog"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/navikt/nada-tablemetadata/pkg/nestedtype"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

// DatabaseID is the database and nested type dialect of BigQuery tables.
const DatabaseID = "bigquery"

const (
	keyScheme = DatabaseID + "://"

	structHead = "STRUCT"
	arrayHead  = "ARRAY"
)

var _ service.BigQueryAPI = &Client{}

var (
	ErrNotExist   = errors.New("not exists")
	ErrInvalidKey = errors.New("invalid bigquery table key")
)

type Client struct {
	endpoint             string
	enableAuthentication bool
	log                  zerolog.Logger
}

// standardTypes maps the legacy type names reported in table schemas to their
// GoogleSQL names.
var standardTypes = map[bigquery.FieldType]string{
	bigquery.IntegerFieldType: "INT64",
	bigquery.FloatFieldType:   "FLOAT64",
	bigquery.BooleanFieldType: "BOOL",
	bigquery.RecordFieldType:  structHead,
}

// TableKey returns the metadata key of a BigQuery table,
// bigquery://<project>.<dataset>/<table>.
func TableKey(projectID, datasetID, tableID string) string {
	return fmt.Sprintf("%s%s.%s/%s", keyScheme, projectID, datasetID, tableID)
}

// ParseTableKey splits a key created by TableKey into its parts.
func ParseTableKey(key string) (projectID, datasetID, tableID string, err error) {
	rest, ok := strings.CutPrefix(key, keyScheme)
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q does not start with %s", ErrInvalidKey, key, keyScheme)
	}

	location, tableID, ok := strings.Cut(rest, "/")
	if !ok || tableID == "" || strings.Contains(tableID, "/") {
		return "", "", "", fmt.Errorf("%w: %q has no table", ErrInvalidKey, key)
	}

	// Domain scoped project ids contain dots, dataset ids never do
	idx := strings.LastIndex(location, ".")
	if idx <= 0 || idx == len(location)-1 {
		return "", "", "", fmt.Errorf("%w: %q has no project and dataset", ErrInvalidKey, key)
	}

	return location[:idx], location[idx+1:], tableID, nil
}

// GetTableMetadata reads the table identified by key from BigQuery.
func (c *Client) GetTableMetadata(ctx context.Context, key string) (*service.TableMetadata, error) {
	projectID, datasetID, tableID, err := ParseTableKey(key)
	if err != nil {
		return nil, err
	}

	client, err := c.clientFromProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("table metadata: %w", err)
	}
	defer client.Close()

	meta, err := client.Dataset(datasetID).Table(tableID).Metadata(ctx)
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			return nil, ErrNotExist
		}

		return nil, fmt.Errorf("getting table metadata %s.%s.%s: %w", projectID, datasetID, tableID, err)
	}

	c.log.Debug().Str("key", key).Int("fields", len(meta.Schema)).Msg("read bigquery table metadata")

	return &service.TableMetadata{
		Key:                  key,
		Cluster:              projectID,
		Database:             DatabaseID,
		Schema:               datasetID,
		Name:                 tableID,
		Description:          meta.Description,
		IsView:               meta.Type == bigquery.ViewTable || meta.Type == bigquery.MaterializedView,
		LastUpdatedTimestamp: meta.LastModifiedTime.Unix(),
		Columns:              ColumnsFromSchema(key, meta.Schema),
	}, nil
}

// ColumnsFromSchema converts the top level fields of a schema into columns.
// Records and repeated fields get a type metadata tree keyed below the column.
func ColumnsFromSchema(tableKey string, schema bigquery.Schema) []*service.TableColumn {
	if len(schema) == 0 {
		return nil
	}

	columns := make([]*service.TableColumn, len(schema))

	for i, f := range schema {
		column := &service.TableColumn{
			Name:        f.Name,
			Key:         tableKey + "/" + f.Name,
			Description: f.Description,
			ColType:     ColumnType(f),
			SortOrder:   i,
		}

		if nt := nestedtype.Parse(column.ColType, DatabaseID); nt != nil {
			column.TypeMetadata = nestedtype.ToTypeMetadata(nt, DatabaseID, column.Key, column.Name)
			describe(column.TypeMetadata.Children, f)
		}

		columns[i] = column
	}

	return columns
}

// ColumnType renders the GoogleSQL type of a field, such as
// `ARRAY<STRUCT<street STRING,zip INT64>>`.
func ColumnType(f *bigquery.FieldSchema) string {
	typ, ok := standardTypes[f.Type]
	if !ok {
		typ = string(f.Type)
	}

	if f.Type == bigquery.RecordFieldType {
		fields := make([]string, len(f.Schema))
		for i, child := range f.Schema {
			fields[i] = child.Name + " " + ColumnType(child)
		}

		typ = structHead + "<" + strings.Join(fields, ",") + ">"
	}

	if f.Repeated {
		typ = arrayHead + "<" + typ + ">"
	}

	return typ
}

// describe copies field descriptions onto the matching type metadata nodes.
func describe(nodes []*service.TypeMetadata, f *bigquery.FieldSchema) {
	if f.Type != bigquery.RecordFieldType {
		return
	}

	// The struct of a repeated record sits below the array element
	if f.Repeated && len(nodes) == 1 && nodes[0].Kind == service.TypeMetadataKindStruct {
		nodes = nodes[0].Children
	}

	for _, child := range f.Schema {
		for _, n := range nodes {
			if n.Name != child.Name {
				continue
			}

			n.Description = child.Description
			describe(n.Children, child)

			break
		}
	}
}

func (c *Client) clientFromProject(ctx context.Context, project string) (*bigquery.Client, error) {
	var options []option.ClientOption

	if c.endpoint != "" {
		options = append(options, option.WithEndpoint(c.endpoint))
	}

	if !c.enableAuthentication {
		options = append(options, option.WithoutAuthentication())
	}

	client, err := bigquery.NewClient(ctx, project, options...)
	if err != nil {
		return nil, fmt.Errorf("creating bigquery client for project %s: %w", project, err)
	}

	return client, nil
}

func NewClient(endpoint string, enableAuthentication bool, log zerolog.Logger) *Client {
	return &Client{
		endpoint:             endpoint,
		enableAuthentication: enableAuthentication,
		log:                  log,
	}
}
