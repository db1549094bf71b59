package sheetpack

import "github.com/hype-lab/sheetpack/format"

// extractOptions holds configuration for workbook extraction.
type extractOptions struct {
	// Sheet selection
	sheetName   string // empty means first sheet
	strictSheet bool   // fail instead of first-sheet fallback

	// Header handling
	hasHeaderRow   bool
	headerRowIndex int

	// Validation
	validateHeaders bool

	// Scalar coercion (used by DecodeRecords)
	culture           format.Culture
	errorOnConversion bool
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		sheetName:      "",
		strictSheet:    false,
		hasHeaderRow:   true,
		headerRowIndex: 0,
		culture:        format.Invariant(),
	}
}

// clone creates a copy of extractOptions. All fields are value types, so a
// plain copy is deep enough.
func (o extractOptions) clone() extractOptions {
	return o
}
