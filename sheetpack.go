// Package sheetpack provides a fluent API for reading and writing
// SpreadsheetML (xlsx) workbooks.
//
// Basic usage:
//
//	data, warnings, err := sheetpack.Open("report.xlsx").Data()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", sheetpack.FormatWarnings(warnings))
//	}
//
// With options:
//
//	data, _, err := sheetpack.Open("report.xlsx").
//	    Sheet("Q3").
//	    HeaderRowIndex(2).
//	    StrictSheetLookup().
//	    Data()
//
// Typed records go through the record package; DecodeRecords and
// WriteRecords bridge it:
//
//	people, warnings, err := sheetpack.DecodeRecords[Person](sheetpack.Open("people.xlsx"))
//
// For lower-level control the reader and writer packages are available
// directly.
package sheetpack

import (
	"io"

	"github.com/hype-lab/sheetpack/reader"
	"github.com/hype-lab/sheetpack/record"
	"github.com/hype-lab/sheetpack/writer"
)

// Open prepares an Extractor over a workbook file. The file is opened
// lazily by the first terminal operation, which also closes it.
//
// Example:
//
//	data, warnings, err := sheetpack.Open("report.xlsx").Data()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// OpenBytes prepares an Extractor over an in-memory workbook.
func OpenBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// OpenURL prepares an Extractor that downloads the workbook on the first
// terminal operation.
func OpenURL(url string) *Extractor {
	return &Extractor{
		url:     url,
		options: defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// The caller keeps ownership and is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("report.xlsx")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	data, warnings, err := sheetpack.FromReader(r).Data()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// DecodeRecords runs the extractor and maps the resulting rows onto T via
// the record package. Per-cell conversion failures surface as warnings
// unless the extractor is configured with ErrorOnConversion.
func DecodeRecords[T any](e *Extractor) ([]T, []Warning, error) {
	data, warnings, err := e.Data()
	if err != nil {
		return nil, warnings, err
	}

	dec, err := record.NewDecoder[T](record.Options{
		Culture:           e.options.culture,
		ErrorOnConversion: e.options.errorOnConversion,
	})
	if err != nil {
		return nil, warnings, err
	}
	out, convErrs, err := dec.Decode(data)
	if err != nil {
		return nil, warnings, err
	}
	for _, ce := range convErrs {
		warnings = append(warnings, Warning{Sheet: e.options.sheetName, Row: ce.Row, Message: ce.Error()})
	}
	return out, warnings, nil
}

// WriteRecords writes records as a single-sheet workbook: header row from
// T's field registry, one row per record.
//
// Example:
//
//	var buf bytes.Buffer
//	err := sheetpack.WriteRecords(&buf, "People", people, writer.DefaultOptions())
func WriteRecords[T any](dst io.Writer, sheetName string, records []T, opts writer.Options) error {
	enc, err := record.NewEncoder[T]()
	if err != nil {
		return err
	}

	b := writer.NewBuilder(opts)
	if err := b.AddSheet(sheetName, enc.Columns()...); err != nil {
		return err
	}
	w, err := b.Build(dst)
	if err != nil {
		return err
	}
	for _, r := range records {
		if err := w.WriteRow(enc.Row(r)...); err != nil {
			w.Close()
			return err
		}
	}
	return w.Close()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	names := sheetpack.Must(sheetpack.Open("report.xlsx").SheetNames())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustData wraps a terminal operation returning (T, []Warning, error),
// panicking on error and discarding warnings.
//
// Example:
//
//	data := sheetpack.MustData(sheetpack.Open("report.xlsx").Data())
func MustData[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
