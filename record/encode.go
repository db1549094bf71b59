package record

import (
	"reflect"

	"github.com/hype-lab/sheetpack/writer"
)

// Encoder turns records of one struct type into writer columns and rows.
type Encoder[T any] struct {
	info   *typeInfo
	fields []fieldInfo // write-included, declaration order
}

// NewEncoder reflects T's field registry. It fails on non-struct types and
// on tag-level structural problems.
func NewEncoder[T any]() (*Encoder[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	info, err := infoFor(t)
	if err != nil {
		return nil, err
	}

	e := &Encoder[T]{info: info}
	for _, f := range info.fields {
		if f.skipWrite {
			continue
		}
		e.fields = append(e.fields, f)
	}
	return e, nil
}

// Columns declares the worksheet columns for T: display names plus any
// per-field boolean words, in declaration order.
func (e *Encoder[T]) Columns() []writer.Column {
	cols := make([]writer.Column, len(e.fields))
	for i, f := range e.fields {
		cols[i] = writer.Column{Name: f.name, TrueWord: f.trueWord, FalseWord: f.falseWord}
	}
	return cols
}

// Row flattens one record into writer cell values, one per column. Nil
// pointer fields come out as nil (empty cells).
func (e *Encoder[T]) Row(v T) []any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	row := make([]any, len(e.fields))
	if !rv.IsValid() {
		return row // nil record: all empty cells
	}
	for i, f := range e.fields {
		fv := rv.FieldByIndex(f.index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				row[i] = nil
				continue
			}
			fv = fv.Elem()
		}
		row[i] = fv.Interface()
	}
	return row
}

// Rows flattens a slice of records.
func (e *Encoder[T]) Rows(vs []T) [][]any {
	rows := make([][]any, len(vs))
	for i, v := range vs {
		rows[i] = e.Row(v)
	}
	return rows
}
