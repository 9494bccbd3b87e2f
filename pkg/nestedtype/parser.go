// Package nestedtype parses complex column types, such as
// `struct<street:string,zip:int>` or `row(street varchar, zip integer)`, into
// a tree, and converts that tree into synthetic child columns and type
// metadata.
package nestedtype

import (
	"errors"
	"strings"
)

const (
	separator = ','
)

var errUnbalanced = errors.New("unbalanced delimiters")

var closing = map[byte]byte{
	'<': '>',
	'(': ')',
}

// Dialect describes how a database writes complex types.
type Dialect struct {
	// Heads are the type names that open a nested type.
	Heads []string
	// FieldDelimiter separates a field name from its type.
	FieldDelimiter string
}

var dialects = map[string]Dialect{
	"hive": {
		Heads:          []string{"array", "map", "struct", "uniontype"},
		FieldDelimiter: ":",
	},
	"delta": {
		Heads:          []string{"array", "map", "struct"},
		FieldDelimiter: ":",
	},
	"presto": {
		Heads:          []string{"array", "map", "row"},
		FieldDelimiter: " ",
	},
	"trino": {
		Heads:          []string{"array", "map", "row"},
		FieldDelimiter: " ",
	},
	"bigquery": {
		Heads:          []string{"array", "struct"},
		FieldDelimiter: " ",
	},
}

// DialectFor returns the dialect of the given database id.
func DialectFor(databaseID string) (Dialect, bool) {
	d, ok := dialects[strings.ToLower(databaseID)]
	return d, ok
}

func (d Dialect) isHead(typeName string) bool {
	typeName = strings.ToLower(strings.TrimSpace(typeName))

	for _, h := range d.Heads {
		if typeName == h {
			return true
		}
	}

	return false
}

// hasNamedFields reports whether the children of typeName are named fields.
// Elements of arrays, maps and union types are never named, even when their
// type contains the field delimiter, as in `array(double precision)`.
func hasNamedFields(typeName string) bool {
	switch strings.ToLower(typeName) {
	case "struct", "row":
		return true
	default:
		return false
	}
}

// field splits a child element of a parent type into its name and type.
func (d Dialect) field(parentTypeName, text string) (name, typ string, named bool) {
	if !hasNamedFields(parentTypeName) {
		return "", strings.TrimSpace(text), false
	}

	return d.splitField(text)
}

// splitField splits `name:type` (or `name type`) into its parts. Text without
// a field delimiter is an unnamed element, such as the item type of an array.
func (d Dialect) splitField(text string) (name, typ string, named bool) {
	text = strings.TrimSpace(text)

	idx := strings.Index(text, d.FieldDelimiter)
	if idx <= 0 {
		return "", text, false
	}

	name = strings.Trim(strings.TrimSpace(text[:idx]), "`\"")
	typ = strings.TrimSpace(text[idx+len(d.FieldDelimiter):])

	// A head followed by a space, like `array (`, is not a field name
	if d.isHead(name) && (typ == "" || strings.ContainsAny(typ[:1], "<(")) {
		return "", text, false
	}

	return name, typ, true
}

// Element is one entry inside a nested type, either raw text or a nested type.
type Element struct {
	Raw    string
	Nested *Type
}

// Type is a parsed nested type. For `struct<a:int,b:array<string>>` the head is
// `struct<`, the tail `>` and the children `a:int` and `b:array<string>`.
type Type struct {
	Head     string
	Tail     string
	Children []Element
}

// String renders the type back into its textual form, without whitespace
// around separators.
func (t *Type) String() string {
	var sb strings.Builder

	t.write(&sb)

	return sb.String()
}

func (t *Type) write(sb *strings.Builder) {
	sb.WriteString(t.Head)

	for i, c := range t.Children {
		if i > 0 {
			sb.WriteByte(separator)
		}

		if c.Nested != nil {
			c.Nested.write(sb)
			continue
		}

		sb.WriteString(c.Raw)
	}

	sb.WriteString(t.Tail)
}

// typeName returns the name of the type that the head opens, e.g. `struct`
// for `address:struct<`.
func (t *Type) typeName(d Dialect) string {
	head := strings.TrimSpace(t.Head)
	if len(head) > 0 {
		head = head[:len(head)-1]
	}

	_, typ, _ := d.splitField(head)

	return strings.ToLower(strings.TrimSpace(typ))
}

// IsNested reports whether colType is a complex type in the dialect of
// databaseID. A bare head like `array` is not nested.
func IsNested(colType, databaseID string) bool {
	d, ok := DialectFor(databaseID)
	if !ok {
		return false
	}

	colType = strings.TrimSpace(colType)

	idx := strings.IndexAny(colType, "<(")
	if idx <= 0 {
		return false
	}

	return d.isHead(colType[:idx])
}

// Parse parses colType in the dialect of databaseID. It returns nil when the
// type is not nested, the dialect is unknown or the delimiters do not balance.
func Parse(colType, databaseID string) *Type {
	if !IsNested(colType, databaseID) {
		return nil
	}

	d, _ := DialectFor(databaseID)

	p := &parser{
		s:       strings.TrimSpace(colType),
		dialect: d,
	}

	elems, _, err := p.parseElements(0)
	if err != nil {
		return nil
	}

	if len(elems) != 1 || elems[0].Nested == nil {
		return nil
	}

	return elems[0].Nested
}

type parser struct {
	s       string
	pos     int
	dialect Dialect
}

// parseElements reads elements until the delimiter closing the current level,
// which it returns without consuming it.
func (p *parser) parseElements(depth int) ([]Element, byte, error) {
	var elems []Element

	start := p.pos

	for p.pos < len(p.s) {
		c := p.s[p.pos]

		switch {
		case c == separator:
			elems = appendRaw(elems, p.s[start:p.pos])
			p.pos++
			start = p.pos

		case c == '<' || c == '(':
			head := strings.TrimSpace(p.s[start : p.pos+1])

			_, typ, _ := p.dialect.splitField(head[:len(head)-1])
			if !p.dialect.isHead(typ) {
				// Parameterised scalars like decimal(10,2) stay raw text
				if err := p.skipGroup(); err != nil {
					return nil, 0, err
				}

				continue
			}

			p.pos++

			children, closer, err := p.parseElements(depth + 1)
			if err != nil {
				return nil, 0, err
			}

			if closer != closing[c] {
				return nil, 0, errUnbalanced
			}

			elems = append(elems, Element{
				Nested: &Type{
					Head:     head,
					Tail:     string(closer),
					Children: children,
				},
			})

			p.pos++
			start = p.pos

		case c == '>' || c == ')':
			if depth == 0 {
				return nil, 0, errUnbalanced
			}

			elems = appendRaw(elems, p.s[start:p.pos])

			return elems, c, nil

		default:
			p.pos++
		}
	}

	if depth > 0 {
		return nil, 0, errUnbalanced
	}

	return appendRaw(elems, p.s[start:]), 0, nil
}

// skipGroup moves past a balanced group opened at the current position.
func (p *parser) skipGroup() error {
	var stack []byte

	for ; p.pos < len(p.s); p.pos++ {
		c := p.s[p.pos]

		switch c {
		case '<', '(':
			stack = append(stack, closing[c])
		case '>', ')':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return errUnbalanced
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				p.pos++
				return nil
			}
		}
	}

	return errUnbalanced
}

func appendRaw(elems []Element, text string) []Element {
	text = strings.TrimSpace(text)
	if text == "" {
		return elems
	}

	return append(elems, Element{Raw: text})
}
