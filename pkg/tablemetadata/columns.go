package tablemetadata

import (
	"github.com/navikt/nada-tablemetadata/pkg/nestedtype"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

// Options controls how columns are decorated.
type Options struct {
	// NestedColumnsEnabled attaches synthetic child columns to columns with a
	// nested type.
	NestedColumnsEnabled bool
	// DeriveTypeMetadata builds a type metadata tree from the column type for
	// nested columns that were returned without one.
	DeriveTypeMetadata bool
}

// ProcessColumns returns copies of the columns with a key of the form
// <tableKey>/<name>, and with nested child columns when enabled and the
// column type is nested in the dialect of databaseID. Columns without nested
// children have nil Children.
func ProcessColumns(columns []*service.TableColumn, tableKey, databaseID string, opts Options) []*service.TableColumn {
	processed := make([]*service.TableColumn, 0, len(columns))

	for _, column := range columns {
		if column == nil {
			continue
		}

		c := *column
		c.Key = tableKey + KeySeparator + column.Name
		c.Children = nil

		nested := nestedtype.Parse(column.ColType, databaseID)
		if nested != nil && opts.NestedColumnsEnabled {
			c.Children = nestedtype.ConvertToColumns(nested, databaseID)
		}

		if nested != nil && opts.DeriveTypeMetadata && c.TypeMetadata == nil {
			c.TypeMetadata = nestedtype.ToTypeMetadata(nested, databaseID, c.Key, column.Name)
		}

		processed = append(processed, &c)
	}

	return processed
}

// ColumnCount returns the number of columns including their direct nested
// children.
func ColumnCount(columns []*service.TableColumn) int {
	count := len(columns)

	for _, c := range columns {
		if c != nil {
			count += len(c.Children)
		}
	}

	return count
}
