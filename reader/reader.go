package reader

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hype-lab/sheetpack/model"
	"github.com/hype-lab/sheetpack/sml"
)

// ErrSheetNotFound marks a sheet-name lookup failure with
// Options.ErrorOnMissingSheet set, or a workbook with no worksheets at all.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrMissingPart marks a package whose workbook or worksheet part is
// absent. Missing sharedStrings.xml is NOT an error; it reads as an empty
// table.
var ErrMissingPart = errors.New("missing package part")

// Reader provides access to the worksheets of one opened package. It is
// safe to decode multiple sheets from the same Reader sequentially; the
// Reader itself is not goroutine-safe.
type Reader struct {
	zr     *zip.Reader
	closer io.Closer

	sheets []sheetRefXML
	rels   map[string]string // rId -> part target
	shared []string
}

// newReader parses the bookkeeping parts: workbook, relationships, shared
// strings.
func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{zr: zr, rels: make(map[string]string)}

	if err := r.parseWorkbook(); err != nil {
		return nil, err
	}
	if err := r.parseRelationships(); err != nil {
		return nil, err
	}
	if err := r.parseSharedStrings(); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the underlying package source, when the Reader owns one.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// partFile locates a part by exact path.
func (r *Reader) partFile(name string) *zip.File {
	for _, f := range r.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (r *Reader) partContent(name string) ([]byte, error) {
	f := r.partFile(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening part %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *Reader) parseWorkbook() error {
	data, err := r.partContent(sml.PartWorkbook)
	if err != nil {
		return fmt.Errorf("parsing workbook: %w", err)
	}
	var wb workbookXML
	if err := xml.Unmarshal(data, &wb); err != nil {
		return fmt.Errorf("parsing workbook: %w", err)
	}
	r.sheets = wb.Sheets.Sheet
	return nil
}

func (r *Reader) parseRelationships() error {
	data, err := r.partContent(sml.PartWorkbookRels)
	if err != nil {
		return nil // relationships are optional; fall back to canonical paths
	}
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return fmt.Errorf("parsing workbook relationships: %w", err)
	}
	for _, rel := range rels.Relationship {
		r.rels[rel.ID] = rel.Target
	}
	return nil
}

// parseSharedStrings loads the whole table. It must be resident before any
// worksheet is streamed: cells reference entries by index in arbitrary
// order.
func (r *Reader) parseSharedStrings() error {
	data, err := r.partContent(sml.PartSharedStrings)
	if err != nil {
		return nil // no shared strings part means an empty table
	}
	var sst sharedStringsXML
	if err := xml.Unmarshal(data, &sst); err != nil {
		return fmt.Errorf("parsing shared strings: %w", err)
	}
	r.shared = make([]string, len(sst.SI))
	for i, si := range sst.SI {
		if si.T != nil {
			r.shared[i] = *si.T
			continue
		}
		var text strings.Builder
		for _, run := range si.R {
			text.WriteString(run.T)
		}
		r.shared[i] = text.String()
	}
	return nil
}

// SheetNames lists the workbook's sheet names in definition order.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.Name
	}
	return names
}

// SheetCount returns the number of worksheets the workbook declares.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// resolvePart maps a sheet list position to its worksheet part path via the
// relationship table, falling back to the canonical sheetN.xml path.
func (r *Reader) resolvePart(pos int) string {
	target := r.rels[r.sheets[pos].RID]
	if target == "" {
		return sml.WorksheetPart(pos + 1)
	}
	target = strings.TrimPrefix(target, "/")
	if !strings.HasPrefix(target, "xl/") {
		target = "xl/" + target
	}
	return target
}

// Sheet decodes the named worksheet (case-insensitive). An unknown name
// falls back to the first worksheet unless Options.ErrorOnMissingSheet is
// set, in which case it fails with ErrSheetNotFound.
func (r *Reader) Sheet(name string, opts Options) (*model.SheetData, error) {
	if len(r.sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no worksheets", ErrSheetNotFound)
	}
	pos := -1
	for i, s := range r.sheets {
		if strings.EqualFold(s.Name, name) {
			pos = i
			break
		}
	}
	if pos < 0 {
		if opts.ErrorOnMissingSheet {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
		}
		pos = 0
	}
	return r.decodeSheetAt(pos, opts)
}

// SheetAt decodes the worksheet at the given workbook position (0-indexed).
func (r *Reader) SheetAt(index int, opts Options) (*model.SheetData, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("%w: index %d of %d sheets", ErrSheetNotFound, index, len(r.sheets))
	}
	return r.decodeSheetAt(index, opts)
}

func (r *Reader) decodeSheetAt(pos int, opts Options) (*model.SheetData, error) {
	part := r.resolvePart(pos)
	f := r.partFile(part)
	if f == nil {
		return nil, fmt.Errorf("decoding sheet %q: %w: %s", r.sheets[pos].Name, ErrMissingPart, part)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("decoding sheet %q: opening part %s: %w", r.sheets[pos].Name, part, err)
	}
	defer rc.Close()

	data, err := r.decodeRows(rc, opts)
	if err != nil {
		return nil, fmt.Errorf("decoding sheet %q: %w", r.sheets[pos].Name, err)
	}
	return data, nil
}

// decodeRows pull-parses one worksheet stream. Memory stays bounded by one
// row buffer plus the accumulated output; the XML is never held whole.
func (r *Reader) decodeRows(src io.Reader, opts Options) (*model.SheetData, error) {
	dec := xml.NewDecoder(src)
	buf := sml.AcquireRow()
	defer buf.Release()

	data := &model.SheetData{}
	rowsSeen := 0
	inRow := false

	// Per-cell state captured from the <c> element for its <v> child.
	cellCol := 0
	cellType := ""
	nextCol := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing worksheet XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "row":
				buf.Reset()
				inRow = true
				nextCol = 0
			case "c":
				if !inRow {
					continue
				}
				cellCol = nextCol
				cellType = ""
				for _, attr := range el.Attr {
					switch attr.Name.Local {
					case "r":
						if ci := sml.ColumnIndex(attr.Value); ci >= 0 {
							cellCol = ci
						}
					case "t":
						cellType = attr.Value
					}
				}
				nextCol = cellCol + 1
			case "v":
				if !inRow {
					continue
				}
				var text string
				if err := dec.DecodeElement(&text, &el); err != nil {
					return nil, fmt.Errorf("parsing cell value: %w", err)
				}
				buf.Set(cellCol, r.resolveValue(cellType, text))
			case "is":
				if !inRow {
					continue
				}
				var is inlineStrXML
				if err := dec.DecodeElement(&is, &el); err != nil {
					return nil, fmt.Errorf("parsing inline string: %w", err)
				}
				buf.Set(cellCol, model.String(is.T))
			case "sheetData", "worksheet":
				// descend
			default:
				if !inRow {
					if err := dec.Skip(); err != nil {
						return nil, fmt.Errorf("parsing worksheet XML: %w", err)
					}
				}
			}
		case xml.EndElement:
			if el.Name.Local == "row" && inRow {
				r.finishRow(data, buf, rowsSeen, opts)
				rowsSeen++
				inRow = false
			}
		}
	}

	return data, nil
}

// resolveValue interprets a <v> payload by cell type. Shared string indices
// out of table range degrade to a present empty cell rather than failing
// the decode.
func (r *Reader) resolveValue(cellType, text string) model.Cell {
	switch cellType {
	case "s":
		idx, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil || idx < 0 || idx >= len(r.shared) {
			return model.String("")
		}
		return model.String(r.shared[idx])
	default:
		// n, b, str, e and untyped numeric cells keep their raw text.
		return model.String(text)
	}
}

// finishRow applies the header/data split policy for one completed row.
// Rows before the header index are skipped; a data row wider than the
// header is kept whole and flagged with a warning.
func (r *Reader) finishRow(data *model.SheetData, buf *sml.RowBuffer, rowIdx int, opts Options) {
	if opts.HasHeaderRow {
		if rowIdx < opts.HeaderRowIndex {
			return
		}
		if rowIdx == opts.HeaderRowIndex {
			data.Headers = buf.Cells()
			return
		}
	}

	cells := buf.Cells()
	if opts.HasHeaderRow && len(data.Headers) > 0 && len(cells) > len(data.Headers) {
		data.AddWarning(len(data.Rows), fmt.Sprintf("row has %d columns but the header has %d; extra columns kept", len(cells), len(data.Headers)))
	}
	data.Rows = append(data.Rows, cells)
}
