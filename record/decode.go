package record

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hype-lab/sheetpack/format"
	"github.com/hype-lab/sheetpack/model"
	"github.com/hype-lab/sheetpack/sml"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	uuidType     = reflect.TypeOf(uuid.UUID{})
	cellType     = reflect.TypeOf(model.Cell{})
)

// Options configures a Decoder.
type Options struct {
	// Culture drives scalar parsing: decimal separator, date layouts,
	// boolean words. The zero value behaves as the invariant culture.
	Culture format.Culture

	// ErrorOnConversion escalates the first cell coercion failure to a
	// fatal error instead of collecting it.
	ErrorOnConversion bool
}

// Decoder populates records of one struct type from decoded sheet data.
type Decoder[T any] struct {
	info    *typeInfo
	opts    Options
	factory func() *T
}

// NewDecoder reflects T's field registry.
func NewDecoder[T any](opts Options) (*Decoder[T], error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	info, err := infoFor(t)
	if err != nil {
		return nil, err
	}
	return &Decoder[T]{info: info, opts: opts}, nil
}

// WithFactory installs a custom instance constructor, for record types
// whose zero value is not a valid starting point.
func (d *Decoder[T]) WithFactory(f func() *T) *Decoder[T] {
	d.factory = f
	return d
}

func (d *Decoder[T]) newInstance() *T {
	if d.factory != nil {
		return d.factory()
	}
	return new(T)
}

// Decode maps every data row of sheet to a T. Field binding is by header
// display name (case-insensitive) or, for fields tagged index=N, by fixed
// column. Cell coercion failures are collected in ConversionErrors and the
// affected fields keep their zero values, unless ErrorOnConversion is set,
// in which case the first failure aborts.
func (d *Decoder[T]) Decode(sheet *model.SheetData) ([]T, ConversionErrors, error) {
	if sheet == nil {
		return nil, nil, fmt.Errorf("decoding records: nil sheet data")
	}

	headerIdx := sheet.HeaderIndex()

	// Resolve each readable field to a column once.
	type binding struct {
		field fieldInfo
		col   int
	}
	var bindings []binding
	for _, f := range d.info.fields {
		if f.skipRead {
			continue
		}
		col := f.fixedCol
		if col < 0 {
			c, ok := headerIdx[strings.ToLower(f.name)]
			if !ok {
				continue // column absent; field stays zero
			}
			col = c
		}
		bindings = append(bindings, binding{field: f, col: col})
	}

	out := make([]T, 0, len(sheet.Rows))
	var convErrs ConversionErrors

	for rowIdx, row := range sheet.Rows {
		inst := d.newInstance()
		rv := reflect.ValueOf(inst).Elem()

		for _, b := range bindings {
			if b.col >= len(row) {
				continue
			}
			cell := row[b.col]
			if err := d.setField(rv.FieldByIndex(b.field.index), b.field, cell); err != nil {
				ce := ConversionError{Row: rowIdx, Column: b.col, Field: b.field.name, Err: err}
				if d.opts.ErrorOnConversion {
					return nil, nil, fmt.Errorf("decoding records: %w", ce)
				}
				convErrs = append(convErrs, ce)
			}
		}
		out = append(out, *inst)
	}
	return out, convErrs, nil
}

// setField coerces cell into fv. Absent cells leave the field untouched;
// pointer fields get nil for absent and a populated value otherwise.
func (d *Decoder[T]) setField(fv reflect.Value, f fieldInfo, cell model.Cell) error {
	if fv.Type() == cellType {
		fv.Set(reflect.ValueOf(cell))
		return nil
	}

	if fv.Kind() == reflect.Pointer {
		if !cell.Valid {
			fv.SetZero()
			return nil
		}
		elem := reflect.New(fv.Type().Elem())
		if err := d.setScalar(elem.Elem(), f, cell.String); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	}

	if !cell.Valid {
		return nil
	}
	return d.setScalar(fv, f, cell.String)
}

func (d *Decoder[T]) setScalar(fv reflect.Value, f fieldInfo, text string) error {
	c := d.opts.Culture

	switch fv.Type() {
	case timeType:
		t, err := parseTimeCell(c, text)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(t))
		return nil
	case durationType:
		dur, err := c.ParseDuration(text)
		if err != nil {
			return err
		}
		fv.SetInt(int64(dur))
		return nil
	case uuidType:
		id, err := c.ParseGUID(text)
		if err != nil {
			return err
		}
		fv.Set(reflect.ValueOf(id))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		fv.SetString(text)
	case reflect.Bool:
		b, err := parseBoolCell(c, f, text)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := c.ParseInt(text)
		if err != nil {
			return err
		}
		if fv.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, fv.Type())
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := c.ParseInt(text)
		if err != nil {
			return err
		}
		if n < 0 || fv.OverflowUint(uint64(n)) {
			return fmt.Errorf("value %d overflows %s", n, fv.Type())
		}
		fv.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		x, err := c.ParseFloat(text)
		if err != nil {
			return err
		}
		fv.SetFloat(x)
	default:
		return fmt.Errorf("unsupported field type %s", fv.Type())
	}
	return nil
}

// parseTimeCell accepts both OLE serials (what the writer emits) and the
// culture's textual date layouts.
func parseTimeCell(c format.Culture, text string) (time.Time, error) {
	if serial, err := format.Invariant().ParseFloat(text); err == nil {
		return sml.FromOADate(serial), nil
	}
	return c.ParseTime(text)
}

// parseBoolCell checks the field's own word pair before the culture's.
func parseBoolCell(c format.Culture, f fieldInfo, text string) (bool, error) {
	if f.trueWord != "" && strings.EqualFold(text, f.trueWord) {
		return true, nil
	}
	if f.falseWord != "" && strings.EqualFold(text, f.falseWord) {
		return false, nil
	}
	return c.ParseBool(text)
}
