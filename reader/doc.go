// Package reader decodes SpreadsheetML packages (xlsx) into
// [model.SheetData] with bounded memory.
//
// A package is opened from a file path, byte slice, stream, or URL.
// Opening parses only the small bookkeeping parts: the workbook sheet list,
// its relationships, and the shared string table (which must be fully
// resident because cells reference it by index in arbitrary order).
// Worksheet parts themselves are pull-parsed row by row when a sheet is
// requested, one reusable row buffer deep, so file size does not dictate
// memory use.
//
//	r, err := reader.Open("accounts.xlsx")
//	if err != nil { ... }
//	defer r.Close()
//	data, err := r.Sheet("Q1", reader.DefaultOptions())
//
// Non-fatal structural oddities (a data row wider than the header) are
// recorded in SheetData.RowWarnings rather than failing the decode.
package reader
