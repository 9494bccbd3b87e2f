package tablemetadata

import (
	"net/url"
	"strings"

	"github.com/navikt/nada-tablemetadata/pkg/service"
)

// QueryParams encodes the table query parameters as a URL query string. Unset
// optional parameters are left out and keys are sorted.
func QueryParams(p service.TableQueryParams) string {
	values := url.Values{}

	values.Set("key", p.Key)

	if p.ColumnName != nil {
		values.Set("column_name", *p.ColumnName)
	}

	if p.Index != nil {
		values.Set("index", *p.Index)
	}

	if p.Source != nil {
		values.Set("source", *p.Source)
	}

	return values.Encode()
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// RelatedDashboardSlug percent-encodes a table key for use as a single URL
// path segment. The characters `A-Z a-z 0-9 - _ . ! ~ * ' ( )` are left as is.
func RelatedDashboardSlug(tableKey string) string {
	return componentUnescaper.Replace(url.QueryEscape(tableKey))
}
