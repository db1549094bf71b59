// Package sml provides the low-level SpreadsheetML primitives shared by the
// reader and writer: the OPC part paths and XML namespaces, the cell
// reference codec, OLE Automation date conversion, the shared string table,
// and the pooled row buffer.
//
// # Cell References
//
// Spreadsheet column letters are bijective base-26 (A=1 .. Z=26, with no
// zero digit), so "Z" is followed by "AA" rather than "BA". [ColumnIndex]
// and [ColumnLetters] convert between zero-based column indices and that
// notation; [CellRef] composes a full "A1"-style reference.
//
// # Dates
//
// Numeric date cells hold OLE Automation serials: fractional day counts
// since 1899-12-30. [ToOADate] and [FromOADate] convert to and from
// time.Time.
package sml
