package postgres

import (
	"reflect"
	"sync"
)

var columnCache sync.Map // map[reflect.Type][]string

// Columns returns the "db" tags of T's fields in declaration order.
// Fields tagged "-" or untagged are skipped; embedded structs are flattened.
// Results are cached per type.
func Columns[T any]() []string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := columnCache.Load(t); ok {
		return cached.([]string)
	}
	cols := columnsOf(t)
	columnCache.Store(t, cols)
	return cols
}

// QualifiedColumns returns Columns[T] prefixed with a table alias.
func QualifiedColumns[T any](alias string) []string {
	cols := Columns[T]()
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}

func columnsOf(t reflect.Type) []string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var cols []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			cols = append(cols, columnsOf(field.Type)...)
			continue
		}
		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		cols = append(cols, tag)
	}
	return cols
}
