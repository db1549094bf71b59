// Package writer produces SpreadsheetML packages. A Builder declares the
// worksheets up front; Build returns a Writer that serializes rows as they
// arrive and assembles the archive on Close, once the styles and shared
// strings the rows actually used are known.
//
// Parts are emitted in a fixed order: [Content_Types].xml, _rels/.rels,
// xl/_rels/workbook.xml.rels, xl/workbook.xml, the worksheet parts,
// xl/styles.xml, and xl/sharedStrings.xml. The shared-strings part is
// omitted entirely when no cell used the shared-string path.
//
// One Builder serves one package build. Neither Builder nor Writer is safe
// for concurrent use.
package writer
