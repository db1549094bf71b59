package model

import "strings"

// RowWarning records a non-fatal structural issue observed on one data row.
// Row is data-row-relative: 0 is the first row after the header.
type RowWarning struct {
	Row     int
	Message string
}

// SheetData is one decoded worksheet. Headers may contain absent or empty
// cells. Rows are indexed by column; a row's length is its observed width,
// which may differ from the header width (recorded in RowWarnings, never
// truncated).
type SheetData struct {
	Headers     []Cell
	Rows        [][]Cell
	RowWarnings []RowWarning
}

// AddWarning appends a structural warning for the given data-row index.
func (s *SheetData) AddWarning(row int, message string) {
	s.RowWarnings = append(s.RowWarnings, RowWarning{Row: row, Message: message})
}

// HeaderIndex builds a case-insensitive map from header text to column
// index. Absent and empty headers are skipped. When two headers collide
// under case folding the first occurrence wins; duplicate detection is the
// validate package's job.
func (s *SheetData) HeaderIndex() map[string]int {
	idx := make(map[string]int, len(s.Headers))
	for i, h := range s.Headers {
		if h.IsEmpty() {
			continue
		}
		key := strings.ToLower(h.String)
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// Value returns the cell at (row, col) of the data rows. Coordinates outside
// the decoded area resolve to an absent cell.
func (s *SheetData) Value(row, col int) Cell {
	if row < 0 || row >= len(s.Rows) {
		return Cell{}
	}
	r := s.Rows[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// ValueByHeader returns the cell in the given data row under the named
// header (case-insensitive). The second result reports whether the header
// exists.
func (s *SheetData) ValueByHeader(row int, header string) (Cell, bool) {
	col, ok := s.HeaderIndex()[strings.ToLower(header)]
	if !ok {
		return Cell{}, false
	}
	return s.Value(row, col), true
}

// Width returns the header width when headers are present, otherwise the
// widest observed row.
func (s *SheetData) Width() int {
	if len(s.Headers) > 0 {
		return len(s.Headers)
	}
	w := 0
	for _, r := range s.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}
