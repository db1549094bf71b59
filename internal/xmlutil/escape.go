// Package xmlutil provides the small XML writing helpers shared by the
// writer and style packages, which stream worksheet markup by hand rather
// than through encoding/xml marshalling.
package xmlutil

import "strings"

// Carriage returns must be escaped in text content too: XML parsers
// normalize literal \r and \r\n to \n, which would corrupt string cells.
var textReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r", "&#13;",
)

var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
	"\n", "&#10;",
	"\t", "&#9;",
	"\r", "&#13;",
)

// EscapeText escapes s for use as XML element content.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, "&<>\r") {
		return s
	}
	return textReplacer.Replace(s)
}

// EscapeAttr escapes s for use inside a double-quoted XML attribute value.
func EscapeAttr(s string) string {
	if !strings.ContainsAny(s, "&<>\"'\n\t\r") {
		return s
	}
	return attrReplacer.Replace(s)
}
