package nestedtype

import (
	"strings"

	"github.com/navikt/nada-tablemetadata/pkg/service"
)

const (
	// TypeMetadataTypeSegment is the fixed segment between a column key and
	// the name of its top level type in a type metadata key.
	TypeMetadataTypeSegment = "type"

	innerName    = "_inner_"
	mapKeyName   = "_map_key"
	mapValueName = "_map_value"
)

// typeString renders the type without the field name of its head.
func (t *Type) typeString(d Dialect) string {
	head := strings.TrimSpace(t.Head)
	open := head[len(head)-1:]

	_, typ, _ := d.splitField(head[:len(head)-1])

	return (&Type{
		Head:     typ + open,
		Tail:     t.Tail,
		Children: t.Children,
	}).String()
}

// ConvertToColumns converts the fields of a parsed nested type into synthetic
// child columns, one level deeper than their parent. Fields of unnamed nested
// elements, like the struct inside `array<struct<...>>`, are hoisted to the
// level of the array. It returns nil when the type has no named fields.
func ConvertToColumns(t *Type, databaseID string) []*service.TableColumn {
	d, ok := DialectFor(databaseID)
	if !ok || t == nil {
		return nil
	}

	return convert(t, d, 1)
}

func convert(t *Type, d Dialect, level int) []*service.TableColumn {
	var columns []*service.TableColumn

	parent := t.typeName(d)

	for _, child := range t.Children {
		if child.Nested == nil {
			name, typ, named := d.field(parent, child.Raw)
			if !named {
				continue
			}

			columns = append(columns, &service.TableColumn{
				Name:        name,
				ColType:     typ,
				NestedLevel: level,
			})

			continue
		}

		head := strings.TrimSpace(child.Nested.Head)

		name, _, named := d.field(parent, head[:len(head)-1])
		if !named {
			columns = append(columns, convert(child.Nested, d, level)...)
			continue
		}

		columns = append(columns, &service.TableColumn{
			Name:        name,
			ColType:     child.Nested.typeString(d),
			NestedLevel: level,
			Children:    convert(child.Nested, d, level+1),
		})
	}

	// Sort order counts hoisted columns as direct children
	for i, c := range columns {
		c.SortOrder = i
	}

	return columns
}

// ToTypeMetadata builds the type metadata tree for a column with the given key
// and name. The root key is `<columnKey>/type/<columnName>`, and each child
// appends its own name, so the keys resolve as type metadata keys.
func ToTypeMetadata(t *Type, databaseID, columnKey, columnName string) *service.TypeMetadata {
	d, ok := DialectFor(databaseID)
	if !ok || t == nil {
		return nil
	}

	root := &service.TypeMetadata{
		Kind:     kindOf(t.typeName(d)),
		Name:     columnName,
		Key:      columnKey + "/" + TypeMetadataTypeSegment + "/" + columnName,
		DataType: t.typeString(d),
	}

	root.Children = typeMetadataChildren(t, d, root)

	return root
}

func typeMetadataChildren(t *Type, d Dialect, parent *service.TypeMetadata) []*service.TypeMetadata {
	var children []*service.TypeMetadata

	parentType := t.typeName(d)

	for i, child := range t.Children {
		var name, typ string
		var named bool

		kind := service.TypeMetadataKindScalar

		if child.Nested != nil {
			head := strings.TrimSpace(child.Nested.Head)
			name, _, named = d.field(parentType, head[:len(head)-1])
			typ = child.Nested.typeString(d)
			kind = kindOf(child.Nested.typeName(d))
		} else {
			name, typ, named = d.field(parentType, child.Raw)
		}

		if !named {
			name = elementName(parent.Kind, i)
		}

		tm := &service.TypeMetadata{
			Kind:      kind,
			Name:      name,
			Key:       parent.Key + "/" + name,
			DataType:  typ,
			SortOrder: i,
		}

		if child.Nested != nil {
			tm.Children = typeMetadataChildren(child.Nested, d, tm)
		}

		children = append(children, tm)
	}

	return children
}

func elementName(parent service.TypeMetadataKind, index int) string {
	if parent == service.TypeMetadataKindMap {
		if index == 0 {
			return mapKeyName
		}

		return mapValueName
	}

	return innerName
}

func kindOf(typeName string) service.TypeMetadataKind {
	switch typeName {
	case "array":
		return service.TypeMetadataKindArray
	case "map":
		return service.TypeMetadataKindMap
	case "struct", "row", "uniontype":
		return service.TypeMetadataKindStruct
	default:
		return service.TypeMetadataKindScalar
	}
}
