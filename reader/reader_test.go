package reader

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// fixture describes one in-memory workbook for tests.
type fixture struct {
	sheets        map[string]string // sheet name -> sheetData inner XML
	sharedStrings []string
	omitRels      bool
	omitWorkbook  bool
}

// buildXLSX assembles a minimal package from a fixture.
func buildXLSX(t *testing.T, fx fixture) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	write := func(name, content string) {
		t.Helper()
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	write("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`)

	// Deterministic sheet order.
	names := make([]string, 0, len(fx.sheets))
	for name := range fx.sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	if !fx.omitWorkbook {
		var sheetRefs, relRefs strings.Builder
		for i, name := range names {
			fmt.Fprintf(&sheetRefs, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, name, i+1, i+1)
			fmt.Fprintf(&relRefs, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target="worksheets/sheet%d.xml"/>`, i+1, i+1)
		}
		write("xl/workbook.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><sheets>`+sheetRefs.String()+`</sheets></workbook>`)
		if !fx.omitRels {
			write("xl/_rels/workbook.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+relRefs.String()+`</Relationships>`)
		}
	}

	for i, name := range names {
		write(fmt.Sprintf("xl/worksheets/sheet%d.xml", i+1), `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main"><sheetData>`+fx.sheets[name]+`</sheetData></worksheet>`)
	}

	if len(fx.sharedStrings) > 0 {
		var sis strings.Builder
		for _, s := range fx.sharedStrings {
			fmt.Fprintf(&sis, "<si><t>%s</t></si>", s)
		}
		write("xl/sharedStrings.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">%s</sst>`, len(fx.sharedStrings), len(fx.sharedStrings), sis.String()))
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	return buf.Bytes()
}


func inlineCell(ref, text string) string {
	return fmt.Sprintf(`<c r="%s" t="inlineStr"><is><t>%s</t></is></c>`, ref, text)
}

func sharedCell(ref string, idx int) string {
	return fmt.Sprintf(`<c r="%s" t="s"><v>%d</v></c>`, ref, idx)
}

func numCell(ref, value string) string {
	return fmt.Sprintf(`<c r="%s"><v>%s</v></c>`, ref, value)
}

func TestReadBasicSheet(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"People": `<row r="1">` + inlineCell("A1", "Name") + inlineCell("B1", "Age") + `</row>` +
				`<row r="2">` + inlineCell("A2", "Ada") + numCell("B2", "36") + `</row>` +
				`<row r="3">` + inlineCell("A3", "Grace") + numCell("B3", "45") + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("People", DefaultOptions())
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}

	if got := len(sheet.Headers); got != 2 {
		t.Fatalf("expected 2 headers, got %d", got)
	}
	if sheet.Headers[0].String != "Name" || sheet.Headers[1].String != "Age" {
		t.Errorf("unexpected headers: %v", sheet.Headers)
	}
	if got := len(sheet.Rows); got != 2 {
		t.Fatalf("expected 2 rows, got %d", got)
	}
	if v := sheet.Rows[0][0].String; v != "Ada" {
		t.Errorf("expected Ada, got %q", v)
	}
	if v := sheet.Rows[1][1].String; v != "45" {
		t.Errorf("expected 45, got %q", v)
	}
}

func TestReadSharedStrings(t *testing.T) {
	data := buildXLSX(t, fixture{
		sharedStrings: []string{"Name", "Ada", "Grace"},
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + sharedCell("A1", 0) + `</row>` +
				`<row r="2">` + sharedCell("A2", 1) + `</row>` +
				`<row r="3">` + sharedCell("A3", 2) + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", DefaultOptions())
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if sheet.Headers[0].String != "Name" {
		t.Errorf("expected shared header Name, got %q", sheet.Headers[0].String)
	}
	if sheet.Rows[0][0].String != "Ada" || sheet.Rows[1][0].String != "Grace" {
		t.Errorf("unexpected rows: %v", sheet.Rows)
	}
}

func TestSharedStringIndexOutOfRange(t *testing.T) {
	data := buildXLSX(t, fixture{
		sharedStrings: []string{"only"},
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + sharedCell("A1", 99) + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", Options{})
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if len(sheet.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sheet.Rows))
	}
	cell := sheet.Rows[0][0]
	if !cell.Valid || cell.String != "" {
		t.Errorf("expected present empty cell, got %+v", cell)
	}
}

func TestSheetNameFallback(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Actual": `<row r="1">` + inlineCell("A1", "x") + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	// Unknown name falls back to the first sheet by default.
	sheet, err := r.Sheet("DoesNotExist", Options{HasHeaderRow: true})
	if err != nil {
		t.Fatalf("Sheet fallback: %v", err)
	}
	if sheet.Headers[0].String != "x" {
		t.Errorf("fallback did not read first sheet: %v", sheet.Headers)
	}

	// Strict mode fails instead.
	_, err = r.Sheet("DoesNotExist", Options{ErrorOnMissingSheet: true})
	if !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestSheetNameCaseInsensitive(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Alpha": `<row r="1">` + inlineCell("A1", "a") + `</row>`,
			"Beta":  `<row r="1">` + inlineCell("A1", "b") + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("BETA", Options{HasHeaderRow: true, ErrorOnMissingSheet: true})
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if sheet.Headers[0].String != "b" {
		t.Errorf("case-insensitive lookup hit wrong sheet: %v", sheet.Headers)
	}
}

func TestSparseRowAndMissingRefs(t *testing.T) {
	// Cells without r attributes advance a column cursor; gaps referenced by
	// r come back as absent cells.
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "h1") + inlineCell("D1", "h4") + `</row>` +
				`<row r="2"><c t="inlineStr"><is><t>first</t></is></c><c t="inlineStr"><is><t>second</t></is></c></row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", DefaultOptions())
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}

	if len(sheet.Headers) != 4 {
		t.Fatalf("expected 4 header slots, got %d", len(sheet.Headers))
	}
	if sheet.Headers[1].Valid || sheet.Headers[2].Valid {
		t.Errorf("expected absent gap cells, got %v", sheet.Headers)
	}
	if sheet.Headers[3].String != "h4" {
		t.Errorf("expected h4 at index 3, got %q", sheet.Headers[3].String)
	}
	if sheet.Rows[0][0].String != "first" || sheet.Rows[0][1].String != "second" {
		t.Errorf("cursor-positioned cells wrong: %v", sheet.Rows[0])
	}
}

func TestRowWiderThanHeader(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "only") + `</row>` +
				`<row r="2">` + inlineCell("A2", "a") + inlineCell("B2", "b") + inlineCell("C2", "c") + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", DefaultOptions())
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if len(sheet.Rows[0]) != 3 {
		t.Fatalf("wide row should be kept whole, got %d cells", len(sheet.Rows[0]))
	}
	if len(sheet.RowWarnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(sheet.RowWarnings))
	}
	if sheet.RowWarnings[0].Row != 0 {
		t.Errorf("warning should reference row 0, got %d", sheet.RowWarnings[0].Row)
	}
}

func TestHeaderRowIndex(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "title banner") + `</row>` +
				`<row r="2">` + inlineCell("A2", "Name") + `</row>` +
				`<row r="3">` + inlineCell("A3", "Ada") + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", Options{HasHeaderRow: true, HeaderRowIndex: 1})
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if sheet.Headers[0].String != "Name" {
		t.Errorf("expected header from row 2, got %q", sheet.Headers[0].String)
	}
	if len(sheet.Rows) != 1 || sheet.Rows[0][0].String != "Ada" {
		t.Errorf("rows before the header must be skipped: %v", sheet.Rows)
	}
}

func TestNoHeaderRow(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "a") + `</row>` +
				`<row r="2">` + inlineCell("A2", "b") + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", Options{HasHeaderRow: false})
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if len(sheet.Headers) != 0 {
		t.Errorf("expected no headers, got %v", sheet.Headers)
	}
	if len(sheet.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(sheet.Rows))
	}
}

func TestMissingWorkbookPart(t *testing.T) {
	data := buildXLSX(t, fixture{
		omitWorkbook: true,
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "x") + `</row>`,
		},
	})

	_, err := OpenBytes(data)
	if !errors.Is(err, ErrMissingPart) {
		t.Errorf("expected ErrMissingPart, got %v", err)
	}
}

func TestMissingRelsFallsBackToCanonicalPath(t *testing.T) {
	data := buildXLSX(t, fixture{
		omitRels: true,
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "x") + `</row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", DefaultOptions())
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if sheet.Headers[0].String != "x" {
		t.Errorf("canonical path fallback failed: %v", sheet.Headers)
	}
}

func TestSheetNames(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Alpha": `<row r="1"></row>`,
			"Beta":  `<row r="1"></row>`,
		},
	})

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes: %v", err)
	}
	defer r.Close()

	names := r.SheetNames()
	if len(names) != 2 || names[0] != "Alpha" || names[1] != "Beta" {
		t.Errorf("unexpected sheet names: %v", names)
	}
	if r.SheetCount() != 2 {
		t.Errorf("expected 2 sheets, got %d", r.SheetCount())
	}
}

func TestOpenFromDisk(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "disk") + `</row>`,
		},
	})
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", DefaultOptions())
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if sheet.Headers[0].String != "disk" {
		t.Errorf("unexpected header: %v", sheet.Headers)
	}
}

func TestOpenURL(t *testing.T) {
	data := buildXLSX(t, fixture{
		sheets: map[string]string{
			"Sheet1": `<row r="1">` + inlineCell("A1", "remote") + `</row>`,
		},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	r, err := OpenURL(srv.URL)
	if err != nil {
		t.Fatalf("OpenURL: %v", err)
	}
	defer r.Close()

	sheet, err := r.Sheet("Sheet1", DefaultOptions())
	if err != nil {
		t.Fatalf("Sheet: %v", err)
	}
	if sheet.Headers[0].String != "remote" {
		t.Errorf("unexpected header: %v", sheet.Headers)
	}
}

func TestOpenURLErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := OpenURL(srv.URL)
		var de *DownloadError
		if !errors.As(err, &de) {
			t.Fatalf("expected DownloadError, got %v", err)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		_, err := OpenURL(srv.URL)
		if !errors.Is(err, ErrEmptyDownload) {
			t.Fatalf("expected ErrEmptyDownload, got %v", err)
		}
	})
}
