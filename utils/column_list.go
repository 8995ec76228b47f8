package utils

import (
	"reflect"
)

// ColumnList lists the `db` tags of a row struct, in field order, for use in SELECT clauses.
func ColumnList[T any](prefixes ...string) []string {
	var zero T
	t := reflect.TypeOf(zero)

	prefix := ""
	if len(prefixes) > 0 && prefixes[0] != "" {
		prefix = prefixes[0] + "."
	}

	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, prefix+tag)
	}
	return columns
}
