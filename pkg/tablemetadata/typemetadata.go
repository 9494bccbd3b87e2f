package tablemetadata

import (
	"fmt"
	"strings"

	"github.com/navikt/nada-tablemetadata/pkg/errs"
	"github.com/navikt/nada-tablemetadata/pkg/service"
)

// A type metadata key has the form
//
//	<tableKey>/<columnName>/<typeConstant>/<topLevelTypeName>/<nested1>/<nested2>/...
//
// Relative to the table key, the first segment names the column, the next two
// are fixed markers which carry no lookup value, and the rest is the path of
// child names from the column's type metadata root.
const (
	KeySeparator = "/"

	columnNameSegment   = 0
	typeConstantSegment = 1
	topLevelTypeSegment = 2
	pathStartSegment    = 3
)

// TypeMetadataKey is a parsed type metadata key.
type TypeMetadataKey struct {
	ColumnName       string
	TypeConstant     string
	TopLevelTypeName string
	Path             []string
}

// ParseTypeMetadataKey splits key relative to tableKey. Keys that are not
// below the table, or that lack any of the three leading segments, are
// rejected.
func ParseTypeMetadataKey(key, tableKey string) (*TypeMetadataKey, error) {
	prefix := tableKey + KeySeparator

	if tableKey == "" || !strings.HasPrefix(key, prefix) {
		return nil, fmt.Errorf("type metadata key %q is not below table %q", key, tableKey)
	}

	segments := strings.Split(strings.TrimPrefix(key, prefix), KeySeparator)
	if len(segments) < pathStartSegment {
		return nil, fmt.Errorf("type metadata key %q has %d segments after the table key, expected at least %d", key, len(segments), pathStartSegment)
	}

	return &TypeMetadataKey{
		ColumnName:       segments[columnNameSegment],
		TypeConstant:     segments[typeConstantSegment],
		TopLevelTypeName: segments[topLevelTypeSegment],
		Path:             segments[pathStartSegment:],
	}, nil
}

// TypeMetadataFromKey returns the type metadata node addressed by key. A nil
// node and nil error means the column or one of the path segments does not
// exist. Malformed keys return an errs.InvalidRequest error.
func TypeMetadataFromKey(key string, table *service.TableMetadata) (*service.TypeMetadata, error) {
	const op errs.Op = "tablemetadata.TypeMetadataFromKey"

	if table == nil {
		return nil, errs.E(errs.Internal, op, errs.Str("no table to resolve type metadata in"))
	}

	k, err := ParseTypeMetadataKey(key, table.Key)
	if err != nil {
		return nil, errs.E(errs.InvalidRequest, op, errs.Parameter("type_metadata_key"), err)
	}

	column := findColumn(table.Columns, k.ColumnName)
	if column == nil {
		return nil, nil
	}

	current := column.TypeMetadata

	for _, name := range k.Path {
		if current == nil {
			return nil, nil
		}

		current = findChild(current.Children, name)
	}

	return current, nil
}

func findColumn(columns []*service.TableColumn, name string) *service.TableColumn {
	for _, c := range columns {
		if c != nil && c.Name == name {
			return c
		}
	}

	return nil
}

func findChild(children []*service.TypeMetadata, name string) *service.TypeMetadata {
	for _, c := range children {
		if c != nil && c.Name == name {
			return c
		}
	}

	return nil
}
