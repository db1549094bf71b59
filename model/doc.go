// Package model provides the intermediate representation (IR) for decoded
// spreadsheet content.
//
// This package defines the user-facing data structures that the reader
// produces and the writer consumes. All decoding operations ultimately
// produce these types, making them the primary API for consuming sheet
// content.
//
// # Sheet Structure
//
// The [SheetData] type represents one decoded worksheet: an optional header
// row, the data rows, and any structural warnings collected while decoding:
//
//	data, err := r.Sheet("Accounts")
//	for _, row := range data.Rows {
//	    // row is a []Cell indexed by column
//	}
//
// # Cells
//
// A [Cell] is an explicit optional string. An absent cell (never written, or
// outside the row's observed width) has Valid == false, which is distinct
// from a present-but-empty cell. This distinction survives round trips.
//
// # Sheet Names
//
// [SheetName] is a validated value type enforcing the SpreadsheetML naming
// rules (1-31 characters, no  : \ / ? * [ ]  characters). Use [NewSheetName]
// to validate or [SanitizeSheetName] to coerce arbitrary text into a legal
// name.
package model
