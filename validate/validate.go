// Package validate checks decoded sheet data for structural problems.
// Header faults (missing or duplicated headers) are errors that should
// abort further processing; row-shape mismatches are warnings appended to
// the data, never errors.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hype-lab/sheetpack/model"
)

// ErrNoHeaders marks a sheet whose header row is empty or absent.
var ErrNoHeaders = errors.New("sheet has no headers")

// DuplicateHeaderError reports headers that collide under case-insensitive
// comparison, grouped by folded name.
type DuplicateHeaderError struct {
	// Groups maps the folded header text to the column indices that
	// carry it.
	Groups map[string][]int
}

func (e *DuplicateHeaderError) Error() string {
	names := make([]string, 0, len(e.Groups))
	for name := range e.Groups {
		names = append(names, name)
	}
	return fmt.Sprintf("duplicate headers: %s", strings.Join(names, ", "))
}

// Headers verifies that the sheet has at least one non-empty header and
// that no two headers collide case-insensitively.
func Headers(s *model.SheetData) error {
	nonEmpty := 0
	groups := make(map[string][]int)
	for i, h := range s.Headers {
		if h.IsEmpty() {
			continue
		}
		nonEmpty++
		key := strings.ToLower(h.String)
		groups[key] = append(groups[key], i)
	}
	if nonEmpty == 0 {
		return ErrNoHeaders
	}

	dups := make(map[string][]int)
	for name, cols := range groups {
		if len(cols) > 1 {
			dups[name] = cols
		}
	}
	if len(dups) > 0 {
		return &DuplicateHeaderError{Groups: dups}
	}
	return nil
}

// RowShapes compares every data row's width against the header width and
// appends a warning per mismatch: extra columns are flagged as ignored by
// mapping, missing ones as read-as-empty. The rows themselves are never
// modified.
func RowShapes(s *model.SheetData) {
	width := len(s.Headers)
	if width == 0 {
		return
	}
	for i, row := range s.Rows {
		switch {
		case len(row) > width:
			s.AddWarning(i, fmt.Sprintf("row has %d columns, header has %d; extras are ignored by name mapping", len(row), width))
		case len(row) < width:
			s.AddWarning(i, fmt.Sprintf("row has %d columns, header has %d; missing cells read as empty", len(row), width))
		}
	}
}

// Sheet runs the full check set: header validation first, then row-shape
// warnings. The error, when non-nil, is ErrNoHeaders or a
// *DuplicateHeaderError.
func Sheet(s *model.SheetData) error {
	if err := Headers(s); err != nil {
		return err
	}
	RowShapes(s)
	return nil
}
