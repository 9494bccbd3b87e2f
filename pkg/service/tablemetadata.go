package service

import "context"

type TableMetadataAPI interface {
	GetTableData(ctx context.Context, params TableQueryParams) (*TableDataAPI, error)
	GetRelatedDashboards(ctx context.Context, tableKey string) (*RelatedDashboards, error)
	UpdateTableOwner(ctx context.Context, tableKey, owner string, method UpdateMethod) error
}

// BigQueryAPI reads table metadata straight from BigQuery, for tables keyed
// as bigquery://<project>.<dataset>/<table>.
type BigQueryAPI interface {
	GetTableMetadata(ctx context.Context, key string) (*TableMetadata, error)
}

type TableMetadataService interface {
	GetTable(ctx context.Context, params TableQueryParams) (*TableDetail, error)
	GetTypeMetadata(ctx context.Context, params TableQueryParams, typeMetadataKey string) (*TypeMetadata, error)
	GetColumnCount(ctx context.Context, params TableQueryParams) (*ColumnCount, error)
	GetRelatedDashboards(ctx context.Context, tableKey string) (*RelatedDashboards, error)
	UpdateTableOwner(ctx context.Context, tableKey string, payload UpdateOwnerPayload) error
	GetBigQueryTable(ctx context.Context, tableKey string) (*TableDetail, error)
}

// TableQueryParams are the query string parameters for requests that act on
// a particular table resource.
type TableQueryParams struct {
	Key        string  `json:"key"`
	ColumnName *string `json:"column_name,omitempty"`
	Index      *string `json:"index,omitempty"`
	Source     *string `json:"source,omitempty"`
}

type TypeMetadataKind string

const (
	TypeMetadataKindScalar TypeMetadataKind = "scalar"
	TypeMetadataKindArray  TypeMetadataKind = "array"
	TypeMetadataKindMap    TypeMetadataKind = "map"
	TypeMetadataKindStruct TypeMetadataKind = "struct"
)

// TypeMetadata describes one level of a nested column type. A column owns the
// root node, and each node owns its children.
type TypeMetadata struct {
	Kind        TypeMetadataKind `json:"kind"`
	Name        string           `json:"name"`
	Key         string           `json:"key"`
	Description string           `json:"description,omitempty"`
	DataType    string           `json:"data_type"`
	SortOrder   int              `json:"sort_order"`
	IsEditable  bool             `json:"is_editable"`
	Badges      []*Badge         `json:"badges,omitempty"`
	Children    []*TypeMetadata  `json:"children,omitempty"`
}

type Badge struct {
	BadgeName string `json:"badge_name"`
	Category  string `json:"category"`
}

type ColumnStat struct {
	StatType   string `json:"stat_type"`
	StatVal    string `json:"stat_val"`
	StartEpoch int64  `json:"start_epoch"`
	EndEpoch   int64  `json:"end_epoch"`
}

type TableColumn struct {
	Name         string         `json:"name"`
	Key          string         `json:"key,omitempty"`
	Description  string         `json:"description"`
	ColType      string         `json:"col_type"`
	SortOrder    int            `json:"sort_order"`
	IsEditable   bool           `json:"is_editable"`
	NestedLevel  int            `json:"nested_level,omitempty"`
	Badges       []*Badge       `json:"badges,omitempty"`
	Stats        []*ColumnStat  `json:"stats,omitempty"`
	TypeMetadata *TypeMetadata  `json:"type_metadata,omitempty"`
	Children     []*TableColumn `json:"children,omitempty"`
}

type TableSource struct {
	Source     string `json:"source"`
	SourceType string `json:"source_type"`
}

type TableWriter struct {
	ID             string `json:"id"`
	Application    string `json:"application"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	Description    string `json:"description"`
	ApplicationURL string `json:"application_url"`
}

type Watermark struct {
	CreateTime     string `json:"create_time"`
	PartitionKey   string `json:"partition_key"`
	PartitionValue string `json:"partition_value"`
	WatermarkType  string `json:"watermark_type"`
}

type ResourceReport struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type ProgrammaticDescription struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

type Tag struct {
	TagName  string `json:"tag_name"`
	TagCount int    `json:"tag_count,omitempty"`
}

// TableMetadata is the view model of a table, as handed to the catalogue
// frontend. Owners and tags are kept outside of it.
type TableMetadata struct {
	Key                      string                     `json:"key"`
	Cluster                  string                     `json:"cluster"`
	Database                 string                     `json:"database"`
	Schema                   string                     `json:"schema"`
	Name                     string                     `json:"name"`
	Description              string                     `json:"description"`
	IsEditable               bool                       `json:"is_editable"`
	IsView                   bool                       `json:"is_view"`
	LastUpdatedTimestamp     int64                      `json:"last_updated_timestamp"`
	Badges                   []*Badge                   `json:"badges"`
	Columns                  []*TableColumn             `json:"columns"`
	ProgrammaticDescriptions []*ProgrammaticDescription `json:"programmatic_descriptions"`
	ResourceReports          []*ResourceReport          `json:"resource_reports"`
	Source                   *TableSource               `json:"source"`
	TableWriter              *TableWriter               `json:"table_writer"`
	Watermarks               []*Watermark               `json:"watermarks"`
}

// TableDataResponse is the table payload returned by the metadata service,
// which in addition to the table view model carries owners and tags.
type TableDataResponse struct {
	TableMetadata
	Owners []*PeopleUser `json:"owners"`
	Tags   []*Tag        `json:"tags"`
}

type TableDataAPI struct {
	Msg       string            `json:"msg"`
	TableData TableDataResponse `json:"tableData"`
}

type TableDetail struct {
	TableData *TableMetadata `json:"tableData"`
	Owners    []*PeopleUser  `json:"owners"`
	Tags      []*Tag         `json:"tags"`
}

type ColumnCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

type DashboardSummary struct {
	URI         string `json:"uri"`
	Cluster     string `json:"cluster"`
	GroupName   string `json:"group_name"`
	GroupURL    string `json:"group_url"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	ProductType string `json:"product"`
}

type RelatedDashboards struct {
	Dashboards []*DashboardSummary `json:"dashboards"`
}

type UpdateMethod string

const (
	UpdateMethodPut    UpdateMethod = "PUT"
	UpdateMethodDelete UpdateMethod = "DELETE"
)

type UpdateOwnerPayload struct {
	ID     string       `json:"id"`
	Method UpdateMethod `json:"method"`
}
