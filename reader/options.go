package reader

// Options configures one sheet decode. The zero value is NOT the default;
// use DefaultOptions, which enables header handling.
type Options struct {
	// HasHeaderRow treats one row as the header instead of data.
	HasHeaderRow bool

	// HeaderRowIndex selects which encountered row is the header,
	// counted from zero over the rows present in the sheet. Rows before
	// the header are skipped.
	HeaderRowIndex int

	// ErrorOnMissingSheet makes Sheet fail with ErrSheetNotFound when
	// the requested name cannot be resolved. When false the reader
	// falls back to the workbook's first worksheet.
	ErrorOnMissingSheet bool
}

// DefaultOptions returns the standard decode configuration: a header in the
// first row, silent fallback to the first sheet.
func DefaultOptions() Options {
	return Options{HasHeaderRow: true}
}
