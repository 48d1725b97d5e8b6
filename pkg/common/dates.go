// Package common provides shared utilities used across the ihale-mcp application.
package common

import (
	"strconv"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// APIDateLayout is the DD.MM.YYYY layout the EKAP API expects in request bodies.
const APIDateLayout = "02.01.2006"

// ParseDate parses a caller-supplied YYYY-MM-DD date.
func ParseDate(value string) (openapi_types.Date, bool) {
	var d openapi_types.Date
	value = strings.TrimSpace(value)
	if value == "" {
		return d, false
	}
	if err := d.UnmarshalJSON([]byte(strconv.Quote(value))); err != nil {
		return d, false
	}
	return d, true
}

// FormatAPIDate rewrites a YYYY-MM-DD date into the DD.MM.YYYY form used by EKAP.
// Empty or unparsable input yields nil so the field is sent as null.
func FormatAPIDate(value string) *string {
	d, ok := ParseDate(value)
	if !ok {
		return nil
	}
	formatted := d.Time.Format(APIDateLayout)
	return &formatted
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(openapi_types.DateFormat)
}
