package record

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotStruct marks a type parameter that is not a struct (or pointer to
// struct) and has no custom factory to construct it.
var ErrNotStruct = errors.New("record type is not a struct")

// StructuralError reports a tag-level problem: duplicate display names,
// colliding fixed indices, or a negative index. These abort the whole
// operation.
type StructuralError struct {
	Type   string
	Reason string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("record type %s: %s", e.Type, e.Reason)
}

// ConversionError reports one cell that could not be coerced into its
// target field.
type ConversionError struct {
	Row    int // data-row index
	Column int
	Field  string
	Err    error
}

func (e ConversionError) Error() string {
	return fmt.Sprintf("row %d column %d (%s): %v", e.Row, e.Column, e.Field, e.Err)
}

func (e ConversionError) Unwrap() error {
	return e.Err
}

// ConversionErrors collects the per-cell failures of one decode. It is
// returned alongside the (still populated) result unless the decoder is
// configured to escalate.
type ConversionErrors []ConversionError

func (es ConversionErrors) Error() string {
	if len(es) == 0 {
		return "no conversion errors"
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return fmt.Sprintf("%d conversion error(s): %s", len(es), strings.Join(parts, "; "))
}
