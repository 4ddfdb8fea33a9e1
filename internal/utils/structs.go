package utils

import (
	"fmt"
	"reflect"
)

// ColumnTag is the struct tag that names a database column.
var ColumnTag = "db"

type column struct {
	name  string
	index int
}

func structValue(input any) reflect.Value {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return v
}

// columns lists exported fields carrying a ColumnTag, in declaration order.
func columns(t reflect.Type) []column {
	out := make([]column, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}

		name := field.Tag.Get(ColumnTag)
		if name == "" || name == "-" {
			continue
		}

		out = append(out, column{name: name, index: i})
	}
	return out
}

// StructTagValues returns the column names of a struct in field order.
func StructTagValues(input any) []string {
	cols := columns(structValue(input).Type())

	result := make([]string, 0, len(cols))
	for _, c := range cols {
		result = append(result, c.name)
	}
	return result
}

// StructToMap maps column names to field values, ready for squirrel's
// SetMap.
func StructToMap(input any) map[string]any {
	v := structValue(input)

	result := make(map[string]any)
	for _, c := range columns(v.Type()) {
		result[c.name] = v.Field(c.index).Interface()
	}
	return result
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
