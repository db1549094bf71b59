package style

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hype-lab/sheetpack/internal/xmlutil"
	"github.com/hype-lab/sheetpack/sml"
)

// firstCustomNumFmtID is where user-defined number format ids begin; ids
// 0-163 are built-in and 164 is left alone for older producers.
const firstCustomNumFmtID = 165

// Default font for the mandatory index-0 entry and for definitions that
// style no font.
const (
	defaultFontName = "Calibri"
	defaultFontSize = 11
)

type fontKey struct {
	name  string
	color string
	size  float64
	bold  bool
}

// Write emits a complete styles part for the given unique definitions.
// cellXfs index 0 is the default no-op entry; definition i lands at cellXfs
// index i+1, which is what cells reference through their s attribute.
func Write(w io.Writer, defs []Definition) error {
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	// Deduplicate the sub-dimensions independently: a definition's font
	// may be shared with another definition that has a different fill.
	numFmtIDs := make(map[string]int)
	var numFmtCodes []string
	fontIDs := map[fontKey]int{{name: defaultFontName, size: defaultFontSize}: 0}
	var fonts []fontKey
	fillIDs := make(map[string]int) // color -> fill id (custom fills start at 2)
	var fills []string
	borderIDs := make(map[string]int) // color -> border id (custom borders start at 1)
	var borders []string

	type xf struct{ numFmt, font, fill, border int }
	xfs := make([]xf, len(defs))

	for i, d := range defs {
		var entry xf
		if d.NumberFormat != "" {
			id, ok := numFmtIDs[d.NumberFormat]
			if !ok {
				id = firstCustomNumFmtID + len(numFmtCodes)
				numFmtIDs[d.NumberFormat] = id
				numFmtCodes = append(numFmtCodes, d.NumberFormat)
			}
			entry.numFmt = id
		}
		if d.hasFontStyling() {
			key := fontKey{name: d.FontName, color: d.FontColor, size: d.FontSize, bold: d.Bold}
			if key.name == "" {
				key.name = defaultFontName
			}
			if key.size == 0 {
				key.size = defaultFontSize
			}
			id, ok := fontIDs[key]
			if !ok {
				id = 1 + len(fonts)
				fontIDs[key] = id
				fonts = append(fonts, key)
			}
			entry.font = id
		}
		if d.FillColor != "" {
			color := argb(d.FillColor)
			id, ok := fillIDs[color]
			if !ok {
				id = 2 + len(fills)
				fillIDs[color] = id
				fills = append(fills, color)
			}
			entry.fill = id
		}
		if d.BorderColor != "" {
			color := argb(d.BorderColor)
			id, ok := borderIDs[color]
			if !ok {
				id = 1 + len(borders)
				borderIDs[color] = id
				borders = append(borders, color)
			}
			entry.border = id
		}
		xfs[i] = entry
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<styleSheet xmlns="` + sml.NSSpreadsheetML + `">`)

	if len(numFmtCodes) > 0 {
		fmt.Fprintf(&b, `<numFmts count="%d">`, len(numFmtCodes))
		for i, code := range numFmtCodes {
			fmt.Fprintf(&b, `<numFmt numFmtId="%d" formatCode="%s"/>`, firstCustomNumFmtID+i, xmlutil.EscapeAttr(code))
		}
		b.WriteString(`</numFmts>`)
	}

	fmt.Fprintf(&b, `<fonts count="%d">`, 1+len(fonts))
	writeFont(&b, fontKey{name: defaultFontName, size: defaultFontSize})
	for _, f := range fonts {
		writeFont(&b, f)
	}
	b.WriteString(`</fonts>`)

	// The two pattern fills every conformant styles part carries.
	fmt.Fprintf(&b, `<fills count="%d">`, 2+len(fills))
	b.WriteString(`<fill><patternFill patternType="none"/></fill>`)
	b.WriteString(`<fill><patternFill patternType="gray125"/></fill>`)
	for _, color := range fills {
		fmt.Fprintf(&b, `<fill><patternFill patternType="solid"><fgColor rgb="%s"/><bgColor indexed="64"/></patternFill></fill>`, color)
	}
	b.WriteString(`</fills>`)

	fmt.Fprintf(&b, `<borders count="%d">`, 1+len(borders))
	b.WriteString(`<border><left/><right/><top/><bottom/><diagonal/></border>`)
	for _, color := range borders {
		b.WriteString(`<border>`)
		for _, side := range [4]string{"left", "right", "top", "bottom"} {
			fmt.Fprintf(&b, `<%s style="thin"><color rgb="%s"/></%s>`, side, color, side)
		}
		b.WriteString(`<diagonal/></border>`)
	}
	b.WriteString(`</borders>`)

	b.WriteString(`<cellStyleXfs count="1"><xf numFmtId="0" fontId="0" fillId="0" borderId="0"/></cellStyleXfs>`)

	fmt.Fprintf(&b, `<cellXfs count="%d">`, 1+len(xfs))
	b.WriteString(`<xf numFmtId="0" fontId="0" fillId="0" borderId="0" xfId="0"/>`)
	for _, e := range xfs {
		fmt.Fprintf(&b, `<xf numFmtId="%d" fontId="%d" fillId="%d" borderId="%d" xfId="0"`, e.numFmt, e.font, e.fill, e.border)
		if e.numFmt > 0 {
			b.WriteString(` applyNumberFormat="1"`)
		}
		if e.font > 0 {
			b.WriteString(` applyFont="1"`)
		}
		if e.fill > 0 {
			b.WriteString(` applyFill="1"`)
		}
		if e.border > 0 {
			b.WriteString(` applyBorder="1"`)
		}
		b.WriteString(`/>`)
	}
	b.WriteString(`</cellXfs>`)
	b.WriteString(`</styleSheet>`)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeFont(b *strings.Builder, f fontKey) {
	b.WriteString(`<font>`)
	if f.bold {
		b.WriteString(`<b/>`)
	}
	fmt.Fprintf(b, `<sz val="%s"/>`, strconv.FormatFloat(f.size, 'f', -1, 64))
	if f.color != "" {
		fmt.Fprintf(b, `<color rgb="%s"/>`, argb(f.color))
	}
	fmt.Fprintf(b, `<name val="%s"/>`, xmlutil.EscapeAttr(f.name))
	b.WriteString(`</font>`)
}
