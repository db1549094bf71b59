package sheetpack

import (
	"fmt"
	"strings"

	"github.com/hype-lab/sheetpack/format"
	"github.com/hype-lab/sheetpack/model"
	"github.com/hype-lab/sheetpack/reader"
	"github.com/hype-lab/sheetpack/validate"
)

// Warning describes a non-fatal issue encountered while extracting.
type Warning struct {
	Sheet   string
	Row     int // data-row index; -1 when not row-specific
	Message string
}

// FormatWarnings renders warnings one per line for logging.
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		if w.Row >= 0 {
			lines[i] = fmt.Sprintf("sheet %q row %d: %s", w.Sheet, w.Row, w.Message)
		} else {
			lines[i] = fmt.Sprintf("sheet %q: %s", w.Sheet, w.Message)
		}
	}
	return strings.Join(lines, "\n")
}

// Extractor provides a fluent interface for reading workbook data. Each
// configuration method returns a new Extractor instance, making it safe
// for concurrent use and allowing method chaining.
type Extractor struct {
	// Source (exactly one is set, unless constructed via FromReader)
	filename string
	data     []byte
	url      string

	reader *reader.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool

	// Configuration
	options extractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Extractor so chain methods never mutate
// their receiver.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		data:         e.data,
		url:          e.url,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}

	var (
		r   *reader.Reader
		err error
	)
	switch {
	case e.filename != "":
		r, err = reader.Open(e.filename)
	case e.data != nil:
		r, err = reader.OpenBytes(e.data)
	case e.url != "":
		r, err = reader.OpenURL(e.url)
	default:
		return fmt.Errorf("no workbook source specified")
	}
	if err != nil {
		return fmt.Errorf("opening workbook: %w", err)
	}

	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Sheet selects the worksheet to extract by name (case-insensitive). The
// default is the workbook's first sheet.
//
// Example:
//
//	data, _, err := sheetpack.Open("report.xlsx").Sheet("Q3").Data()
func (e *Extractor) Sheet(name string) *Extractor {
	newExt := e.clone()
	newExt.options.sheetName = name
	return newExt
}

// StrictSheetLookup makes an unknown sheet name an error instead of
// falling back to the first sheet.
func (e *Extractor) StrictSheetLookup() *Extractor {
	newExt := e.clone()
	newExt.options.strictSheet = true
	return newExt
}

// NoHeaderRow treats every sheet row as data.
func (e *Extractor) NoHeaderRow() *Extractor {
	newExt := e.clone()
	newExt.options.hasHeaderRow = false
	return newExt
}

// HeaderRowIndex sets which sheet row (0-indexed) holds the headers. Rows
// above it are skipped.
//
// Example:
//
//	data, _, err := sheetpack.Open("report.xlsx").HeaderRowIndex(2).Data()
func (e *Extractor) HeaderRowIndex(index int) *Extractor {
	newExt := e.clone()
	if index < 0 {
		newExt.err = fmt.Errorf("header row index must not be negative, got %d", index)
		return newExt
	}
	newExt.options.headerRowIndex = index
	return newExt
}

// ValidateHeaders checks the decoded header row for emptiness and
// case-insensitive duplicates; failures abort Data with a structural
// error.
func (e *Extractor) ValidateHeaders() *Extractor {
	newExt := e.clone()
	newExt.options.validateHeaders = true
	return newExt
}

// Culture sets the culture used when coercing cells into typed records.
func (e *Extractor) Culture(c format.Culture) *Extractor {
	newExt := e.clone()
	newExt.options.culture = c
	return newExt
}

// ErrorOnConversion makes the first record-mapping cell failure fatal
// instead of a warning.
func (e *Extractor) ErrorOnConversion() *Extractor {
	newExt := e.clone()
	newExt.options.errorOnConversion = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// SheetNames lists the workbook's worksheet names. This is a terminal
// operation that closes the underlying reader.
func (e *Extractor) SheetNames() ([]string, error) {
	if e.err != nil {
		return nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, err
	}
	defer e.Close()

	return e.reader.SheetNames(), nil
}

// Data extracts the configured sheet. This is a terminal operation that
// closes the underlying reader.
//
// Returns the decoded sheet, any warnings encountered during processing,
// and an error if extraction failed. Warnings indicate non-fatal issues
// (row-shape mismatches) where extraction succeeded but results may need
// attention.
//
// Example:
//
//	data, warnings, err := sheetpack.Open("report.xlsx").Data()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", sheetpack.FormatWarnings(warnings))
//	}
func (e *Extractor) Data() (*model.SheetData, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	opts := reader.Options{
		HasHeaderRow:        e.options.hasHeaderRow,
		HeaderRowIndex:      e.options.headerRowIndex,
		ErrorOnMissingSheet: e.options.strictSheet,
	}

	var (
		data *model.SheetData
		err  error
	)
	if e.options.sheetName == "" {
		data, err = e.reader.SheetAt(0, opts)
	} else {
		data, err = e.reader.Sheet(e.options.sheetName, opts)
	}
	if err != nil {
		return nil, nil, err
	}

	if e.options.validateHeaders {
		if err := validate.Headers(data); err != nil {
			return nil, nil, fmt.Errorf("validating sheet %q: %w", e.options.sheetName, err)
		}
	}

	warnings := make([]Warning, 0, len(data.RowWarnings))
	for _, rw := range data.RowWarnings {
		warnings = append(warnings, Warning{Sheet: e.options.sheetName, Row: rw.Row, Message: rw.Message})
	}
	return data, warnings, nil
}
