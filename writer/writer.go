package writer

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hype-lab/sheetpack/internal/xmlutil"
	"github.com/hype-lab/sheetpack/model"
	"github.com/hype-lab/sheetpack/sml"
	"github.com/hype-lab/sheetpack/style"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// ErrClosed marks writes attempted after Close.
var ErrClosed = errors.New("writer is closed")

// ErrNoSheets marks a Build with no declared worksheets.
var ErrNoSheets = errors.New("no worksheets declared")

type sheetSpec struct {
	name    model.SheetName
	columns []Column
}

// Builder declares the worksheets of a package before any row is written.
// The workbook part lists every sheet and precedes the worksheet parts, so
// the full sheet set must be known up front.
type Builder struct {
	opts   Options
	sheets []sheetSpec
}

// NewBuilder returns a builder with the given options.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// AddSheet declares a worksheet. Names are validated and must be unique
// under case-insensitive comparison.
func (b *Builder) AddSheet(name string, columns ...Column) error {
	sn, err := model.NewSheetName(name)
	if err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	for _, s := range b.sheets {
		if s.name.Equal(sn) {
			return fmt.Errorf("adding sheet: duplicate name %q", name)
		}
	}
	b.sheets = append(b.sheets, sheetSpec{name: sn, columns: columns})
	return nil
}

// Build starts the package. It returns a Writer positioned at the first
// sheet's first data row; the header row is already written.
func (b *Builder) Build(dst io.Writer) (*Writer, error) {
	if len(b.sheets) == 0 {
		return nil, ErrNoSheets
	}

	sb := style.NewBuilder()
	w := &Writer{
		dst:      dst,
		opts:     b.opts,
		sheets:   b.sheets,
		bufs:     make([]*bytes.Buffer, len(b.sheets)),
		sst:      sml.NewSharedStrings(),
		styles:   sb,
		resolver: style.NewResolver(b.opts.Style, sb),
	}
	w.startSheet(0)
	return w, nil
}

// Writer serializes rows into the current worksheet. Rows are encoded to
// bytes immediately; the archive itself is assembled by Close, when the
// set of styles and shared strings is final.
type Writer struct {
	dst  io.Writer
	opts Options

	sheets []sheetSpec
	bufs   []*bytes.Buffer

	cur    int // current sheet position
	row    int // next sheet row (1-based; the header consumed row 1)
	closed bool

	sst      *sml.SharedStrings
	styles   *style.Builder
	resolver *style.Resolver
}

// startSheet opens the worksheet buffer at position i and writes the
// header row.
func (w *Writer) startSheet(i int) {
	buf := &bytes.Buffer{}
	w.bufs[i] = buf
	w.cur = i
	w.row = 2

	buf.WriteString(xmlHeader)
	buf.WriteString(`<worksheet xmlns="` + sml.NSSpreadsheetML + `"><sheetData>`)

	cols := w.sheets[i].columns
	if len(cols) == 0 {
		return
	}
	buf.WriteString(`<row r="1">`)
	for j, col := range cols {
		idx, styled := w.resolver.CellIndex(style.Context{
			SheetRow: 1,
			Column:   j,
			Field:    col.Name,
			Value:    col.Name,
			IsHeader: true,
		})
		w.writeString(buf, j, 1, col.Name, idx, styled)
	}
	buf.WriteString(`</row>`)
}

// finishSheet closes the worksheet buffer at position i.
func (w *Writer) finishSheet(i int) {
	w.bufs[i].WriteString(`</sheetData></worksheet>`)
}

// WriteRow appends one data row to the current worksheet, one cell per
// value. Values beyond the declared columns are still written; only the
// per-column boolean word mapping stops applying.
func (w *Writer) WriteRow(values ...any) error {
	if w.closed {
		return ErrClosed
	}

	buf := w.bufs[w.cur]
	cols := w.sheets[w.cur].columns

	fmt.Fprintf(buf, `<row r="%d">`, w.row)
	for j, v := range values {
		var col *Column
		field := ""
		if j < len(cols) {
			col = &cols[j]
			field = col.Name
		}
		if err := w.encodeCell(buf, j, col, field, v); err != nil {
			return fmt.Errorf("writing row %d: %w", w.row, err)
		}
	}
	buf.WriteString(`</row>`)
	w.row++
	return nil
}

// EncodeContext writes rows in bounded chunks, checking ctx and yielding
// the processor once per chunk boundary, never mid-row. Output is
// byte-identical to calling WriteRow in a plain loop.
func (w *Writer) EncodeContext(ctx context.Context, rows [][]any) error {
	chunk := w.opts.chunkSize()
	for i, r := range rows {
		if i > 0 && i%chunk == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("encoding rows: %w", err)
			}
			runtime.Gosched()
		}
		if err := w.WriteRow(r...); err != nil {
			return err
		}
	}
	return nil
}

// NextSheet finishes the current worksheet and moves to the next declared
// one, writing its header row.
func (w *Writer) NextSheet() error {
	if w.closed {
		return ErrClosed
	}
	if w.cur+1 >= len(w.sheets) {
		return fmt.Errorf("no sheet declared after %q", w.sheets[w.cur].name)
	}
	w.finishSheet(w.cur)
	w.startSheet(w.cur + 1)
	return nil
}

// Close finishes the remaining worksheets and assembles the archive in the
// fixed part order. Sheets never advanced to come out header-only.
func (w *Writer) Close() error {
	if w.closed {
		return ErrClosed
	}
	w.closed = true

	w.finishSheet(w.cur)
	for i := w.cur + 1; i < len(w.sheets); i++ {
		w.startSheet(i)
		w.finishSheet(i)
	}

	zw := zip.NewWriter(w.dst)
	withSST := w.sst.UniqueCount() > 0

	parts := []struct {
		name  string
		write func(io.Writer) error
	}{
		{sml.PartContentTypes, func(p io.Writer) error { return w.writeContentTypes(p, withSST) }},
		{sml.PartRootRels, w.writeRootRels},
		{sml.PartWorkbookRels, func(p io.Writer) error { return w.writeWorkbookRels(p, withSST) }},
		{sml.PartWorkbook, w.writeWorkbook},
	}
	for i := range w.sheets {
		buf := w.bufs[i]
		parts = append(parts, struct {
			name  string
			write func(io.Writer) error
		}{sml.WorksheetPart(i + 1), func(p io.Writer) error {
			_, err := p.Write(buf.Bytes())
			return err
		}})
	}
	parts = append(parts, struct {
		name  string
		write func(io.Writer) error
	}{sml.PartStyles, func(p io.Writer) error {
		return style.Write(p, w.styles.Definitions())
	}})
	if withSST {
		parts = append(parts, struct {
			name  string
			write func(io.Writer) error
		}{sml.PartSharedStrings, w.writeSharedStrings})
	}

	for _, part := range parts {
		pw, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("creating part %s: %w", part.name, err)
		}
		if err := part.write(pw); err != nil {
			return fmt.Errorf("writing part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing package: %w", err)
	}
	return nil
}

func (w *Writer) writeContentTypes(p io.Writer, withSST bool) error {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="` + sml.NSContentTypes + `">`)
	b.WriteString(`<Default Extension="rels" ContentType="` + sml.ContentTypeRels + `"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="` + sml.ContentTypeXML + `"/>`)
	b.WriteString(`<Override PartName="/xl/workbook.xml" ContentType="` + sml.ContentTypeWorkbook + `"/>`)
	for i := range w.sheets {
		b.WriteString(`<Override PartName="/` + sml.WorksheetPart(i+1) + `" ContentType="` + sml.ContentTypeWorksheet + `"/>`)
	}
	b.WriteString(`<Override PartName="/xl/styles.xml" ContentType="` + sml.ContentTypeStyles + `"/>`)
	if withSST {
		b.WriteString(`<Override PartName="/xl/sharedStrings.xml" ContentType="` + sml.ContentTypeSharedStrings + `"/>`)
	}
	b.WriteString(`</Types>`)
	_, err := io.WriteString(p, b.String())
	return err
}

func (w *Writer) writeRootRels(p io.Writer) error {
	_, err := io.WriteString(p, xmlHeader+
		`<Relationships xmlns="`+sml.NSPackageRels+`">`+
		`<Relationship Id="rId1" Type="`+sml.RelTypeOfficeDocument+`" Target="xl/workbook.xml"/>`+
		`</Relationships>`)
	return err
}

func (w *Writer) writeWorkbookRels(p io.Writer, withSST bool) error {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="` + sml.NSPackageRels + `">`)
	for i := range w.sheets {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="worksheets/sheet%d.xml"/>`, i+1, sml.RelTypeWorksheet, i+1)
	}
	fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="styles.xml"/>`, len(w.sheets)+1, sml.RelTypeStyles)
	if withSST {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%s" Target="sharedStrings.xml"/>`, len(w.sheets)+2, sml.RelTypeSharedStrings)
	}
	b.WriteString(`</Relationships>`)
	_, err := io.WriteString(p, b.String())
	return err
}

func (w *Writer) writeWorkbook(p io.Writer) error {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<workbook xmlns="` + sml.NSSpreadsheetML + `" xmlns:r="` + sml.NSRelationships + `"><sheets>`)
	for i, s := range w.sheets {
		fmt.Fprintf(&b, `<sheet name="%s" sheetId="%d" r:id="rId%d"/>`, xmlutil.EscapeAttr(s.name.String()), i+1, i+1)
	}
	b.WriteString(`</sheets></workbook>`)
	_, err := io.WriteString(p, b.String())
	return err
}

func (w *Writer) writeSharedStrings(p io.Writer) error {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<sst xmlns="%s" count="%d" uniqueCount="%d">`, sml.NSSpreadsheetML, w.sst.Count(), w.sst.UniqueCount())
	for _, s := range w.sst.Ordered() {
		b.WriteString(`<si>`)
		writeT(&b, s)
		b.WriteString(`</si>`)
	}
	b.WriteString(`</sst>`)
	_, err := io.WriteString(p, b.String())
	return err
}

// writeT emits a t element, preserving significant whitespace.
func writeT(b *strings.Builder, s string) {
	if s != strings.TrimSpace(s) {
		b.WriteString(`<t xml:space="preserve">`)
	} else {
		b.WriteString(`<t>`)
	}
	b.WriteString(xmlutil.EscapeText(s))
	b.WriteString(`</t>`)
}

// encodeCell dispatches on the value's runtime type.
func (w *Writer) encodeCell(buf *bytes.Buffer, col int, colSpec *Column, field string, value any) error {
	styleIdx, styled := w.resolver.CellIndex(style.Context{
		SheetRow: w.row,
		Column:   col,
		Field:    field,
		Value:    value,
	})

	switch v := value.(type) {
	case nil:
		w.writeEmpty(buf, col, styleIdx, styled)
	case model.Cell:
		if !v.Valid {
			w.writeEmpty(buf, col, styleIdx, styled)
		} else {
			w.writeString(buf, col, w.row, v.String, styleIdx, styled)
		}
	case string:
		w.writeString(buf, col, w.row, v, styleIdx, styled)
	case bool:
		w.writeBool(buf, col, colSpec, v, styleIdx, styled)
	case time.Time:
		w.writeNumber(buf, col, strconv.FormatFloat(sml.ToOADate(v), 'f', -1, 64), styleIdx, styled)
	case *time.Time:
		if v == nil {
			w.writeEmpty(buf, col, styleIdx, styled)
		} else {
			w.writeNumber(buf, col, strconv.FormatFloat(sml.ToOADate(*v), 'f', -1, 64), styleIdx, styled)
		}
	case time.Duration:
		w.writeString(buf, col, w.row, v.String(), styleIdx, styled)
	case uuid.UUID:
		w.writeString(buf, col, w.row, v.String(), styleIdx, styled)
	case int:
		w.writeNumber(buf, col, strconv.FormatInt(int64(v), 10), styleIdx, styled)
	case int8:
		w.writeNumber(buf, col, strconv.FormatInt(int64(v), 10), styleIdx, styled)
	case int16:
		w.writeNumber(buf, col, strconv.FormatInt(int64(v), 10), styleIdx, styled)
	case int32:
		w.writeNumber(buf, col, strconv.FormatInt(int64(v), 10), styleIdx, styled)
	case int64:
		w.writeNumber(buf, col, strconv.FormatInt(v, 10), styleIdx, styled)
	case uint:
		w.writeNumber(buf, col, strconv.FormatUint(uint64(v), 10), styleIdx, styled)
	case uint8:
		w.writeNumber(buf, col, strconv.FormatUint(uint64(v), 10), styleIdx, styled)
	case uint16:
		w.writeNumber(buf, col, strconv.FormatUint(uint64(v), 10), styleIdx, styled)
	case uint32:
		w.writeNumber(buf, col, strconv.FormatUint(uint64(v), 10), styleIdx, styled)
	case uint64:
		w.writeNumber(buf, col, strconv.FormatUint(v, 10), styleIdx, styled)
	case float32:
		w.writeFloat(buf, col, float64(v), 32, styleIdx, styled)
	case float64:
		w.writeFloat(buf, col, v, 64, styleIdx, styled)
	case fmt.Stringer:
		w.writeString(buf, col, w.row, v.String(), styleIdx, styled)
	default:
		w.writeString(buf, col, w.row, fmt.Sprint(v), styleIdx, styled)
	}
	return nil
}

// openCell writes the c element's opening tag with reference, optional
// style index, and optional type.
func (w *Writer) openCell(buf *bytes.Buffer, col, row int, styleIdx int, styled bool, cellType string) {
	buf.WriteString(`<c r="`)
	buf.WriteString(sml.CellRef(col, row))
	buf.WriteByte('"')
	if styled {
		fmt.Fprintf(buf, ` s="%d"`, styleIdx)
	}
	if cellType != "" {
		buf.WriteString(` t="` + cellType + `"`)
	}
}

func (w *Writer) writeEmpty(buf *bytes.Buffer, col int, styleIdx int, styled bool) {
	w.openCell(buf, col, w.row, styleIdx, styled, "")
	buf.WriteString(`/>`)
}

func (w *Writer) writeNumber(buf *bytes.Buffer, col int, text string, styleIdx int, styled bool) {
	w.openCell(buf, col, w.row, styleIdx, styled, "n")
	buf.WriteString(`><v>` + text + `</v></c>`)
}

// writeFloat emits a numeric cell. NaN and the infinities have no numeric
// representation in a worksheet, so they degrade to string cells.
func (w *Writer) writeFloat(buf *bytes.Buffer, col int, v float64, bits int, styleIdx int, styled bool) {
	text := strconv.FormatFloat(v, 'f', -1, bits)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		w.writeString(buf, col, w.row, text, styleIdx, styled)
		return
	}
	w.writeNumber(buf, col, text, styleIdx, styled)
}

func (w *Writer) writeBool(buf *bytes.Buffer, col int, colSpec *Column, v bool, styleIdx int, styled bool) {
	trueWord, falseWord := w.opts.boolWords(colSpec)
	if trueWord != "" {
		word := falseWord
		if v {
			word = trueWord
		}
		w.writeString(buf, col, w.row, word, styleIdx, styled)
		return
	}
	w.openCell(buf, col, w.row, styleIdx, styled, "b")
	if v {
		buf.WriteString(`><v>1</v></c>`)
	} else {
		buf.WriteString(`><v>0</v></c>`)
	}
}

// writeString routes through the shared-string table or inlines, per
// options.
func (w *Writer) writeString(buf *bytes.Buffer, col, row int, s string, styleIdx int, styled bool) {
	if w.opts.UseSharedStrings {
		idx := w.sst.GetOrAdd(s)
		w.openCell(buf, col, row, styleIdx, styled, "s")
		fmt.Fprintf(buf, `><v>%d</v></c>`, idx)
		return
	}
	w.openCell(buf, col, row, styleIdx, styled, "inlineStr")
	buf.WriteString(`><is>`)
	var sb strings.Builder
	writeT(&sb, s)
	buf.WriteString(sb.String())
	buf.WriteString(`</is></c>`)
}
