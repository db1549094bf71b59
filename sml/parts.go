package sml

import "strconv"

// XML namespaces fixed by the OOXML specification.
const (
	NSSpreadsheetML = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	NSRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	NSContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

// Relationship type URIs.
const (
	RelTypeOfficeDocument = NSRelationships + "/officeDocument"
	RelTypeWorksheet      = NSRelationships + "/worksheet"
	RelTypeStyles         = NSRelationships + "/styles"
	RelTypeSharedStrings  = NSRelationships + "/sharedStrings"
)

// Package part paths.
const (
	PartContentTypes  = "[Content_Types].xml"
	PartRootRels      = "_rels/.rels"
	PartWorkbook      = "xl/workbook.xml"
	PartWorkbookRels  = "xl/_rels/workbook.xml.rels"
	PartStyles        = "xl/styles.xml"
	PartSharedStrings = "xl/sharedStrings.xml"
)

// Content types for the parts this codec emits.
const (
	ContentTypeRels          = "application/vnd.openxmlformats-package.relationships+xml"
	ContentTypeXML           = "application/xml"
	ContentTypeWorkbook      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"
	ContentTypeWorksheet     = "application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"
	ContentTypeStyles        = "application/vnd.openxmlformats-officedocument.spreadsheetml.styles+xml"
	ContentTypeSharedStrings = "application/vnd.openxmlformats-officedocument.spreadsheetml.sharedStrings+xml"
)

// WorksheetPart returns the canonical part path for the nth worksheet
// (1-indexed): "xl/worksheets/sheet1.xml" and so on.
func WorksheetPart(n int) string {
	return "xl/worksheets/sheet" + strconv.Itoa(n) + ".xml"
}
