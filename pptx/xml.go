package pptx

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"slidecomposer/deck"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// XML namespaces used in PresentationML packages.
const (
	nsDrawingML     = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPresentation  = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsPackageRels   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
)

var pmlNamespaces = []string{"xmlns:a", nsDrawingML, "xmlns:r", nsRelationships, "xmlns:p", nsPresentation}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

// xmlBuilder emits markup in a fixed order so that the same model always
// serialises to the same bytes.
type xmlBuilder struct {
	sb strings.Builder
}

func newXML() *xmlBuilder {
	b := &xmlBuilder{}
	b.sb.WriteString(xmlHeader)
	return b
}

// start opens tag. attrs are name/value pairs; pairs with an empty value are
// omitted, which is how optional attributes are left to inherit.
func (b *xmlBuilder) start(tag string, attrs ...string) { b.tag(tag, attrs, false) }

// empty writes a self-closing tag.
func (b *xmlBuilder) empty(tag string, attrs ...string) { b.tag(tag, attrs, true) }

func (b *xmlBuilder) end(tag string) {
	b.sb.WriteString("</")
	b.sb.WriteString(tag)
	b.sb.WriteByte('>')
}

func (b *xmlBuilder) tag(tag string, attrs []string, selfClose bool) {
	b.sb.WriteByte('<')
	b.sb.WriteString(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		b.sb.WriteByte(' ')
		b.sb.WriteString(attrs[i])
		b.sb.WriteString(`="`)
		b.sb.WriteString(attrEscaper.Replace(clean(attrs[i+1])))
		b.sb.WriteByte('"')
	}
	if selfClose {
		b.sb.WriteString("/>")
	} else {
		b.sb.WriteByte('>')
	}
}

// text writes <tag>s</tag>.
func (b *xmlBuilder) text(tag, s string) {
	b.start(tag)
	b.sb.WriteString(attrEscaper.Replace(clean(s)))
	b.end(tag)
}

func (b *xmlBuilder) raw(s string) { b.sb.WriteString(s) }

func (b *xmlBuilder) bytes() []byte { return []byte(b.sb.String()) }

// clean NFC-normalises s and drops characters XML 1.0 cannot carry. A
// carriage return is dropped too: a reader would turn it into a line feed.
func clean(s string) string {
	s = norm.NFC.String(s)
	return strings.Map(func(r rune) rune {
		if keepChar(r) {
			return r
		}
		return -1
	}, s)
}

func keepChar(r rune) bool {
	return r == 0x09 || r == 0x0A ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

func emu(l deck.Length) string { return strconv.FormatInt(int64(l), 10) }

func itoa(n int) string { return strconv.Itoa(n) }

// flag renders an OOXML boolean attribute; false is left unset.
func flag(on bool) string {
	if on {
		return "1"
	}
	return ""
}

// tristate renders an optional boolean attribute.
func tristate(v *bool) string {
	switch {
	case v == nil:
		return ""
	case *v:
		return "1"
	default:
		return "0"
	}
}
