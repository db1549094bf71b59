package reader

import "encoding/xml"

// The bookkeeping parts are small and decoded whole with encoding/xml;
// only worksheet parts are pull-parsed.

// workbookXML maps xl/workbook.xml.
type workbookXML struct {
	XMLName xml.Name  `xml:"workbook"`
	Sheets  sheetsXML `xml:"sheets"`
}

type sheetsXML struct {
	Sheet []sheetRefXML `xml:"sheet"`
}

type sheetRefXML struct {
	Name    string `xml:"name,attr"`
	SheetID string `xml:"sheetId,attr"`
	RID     string `xml:"id,attr"` // r:id relationship attribute
}

// relationshipsXML maps the .rels parts.
type relationshipsXML struct {
	XMLName      xml.Name          `xml:"Relationships"`
	Relationship []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// sharedStringsXML maps xl/sharedStrings.xml. Rich text runs are flattened
// to their concatenated text; run styling is out of scope.
type sharedStringsXML struct {
	XMLName xml.Name `xml:"sst"`
	Count   int      `xml:"count,attr"`
	Unique  int      `xml:"uniqueCount,attr"`
	SI      []siXML  `xml:"si"`
}

type siXML struct {
	T *string `xml:"t"`
	R []rXML  `xml:"r"`
}

type rXML struct {
	T string `xml:"t"`
}

// inlineStrXML maps a cell's <is> child when pull-parsing rows.
type inlineStrXML struct {
	T string `xml:"t"`
}
