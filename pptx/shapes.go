package pptx

import (
	"fmt"
	"strings"

	"slidecomposer/deck"
)

const (
	tableURI = "http://schemas.openxmlformats.org/drawingml/2006/table"
	// Medium Style 2 - Accent 1, built into every Office install.
	defaultTableStyle = "{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"
)

const groupProps = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const autoShapeStyle = `<p:style><a:lnRef idx="1"><a:schemeClr val="accent1"/></a:lnRef>` +
	`<a:fillRef idx="3"><a:schemeClr val="accent1"/></a:fillRef>` +
	`<a:effectRef idx="2"><a:schemeClr val="accent1"/></a:effectRef>` +
	`<a:fontRef idx="minor"><a:schemeClr val="lt1"/></a:fontRef></p:style>`

// writeShapeTree emits the spTree. Shape ids follow z-order starting at 2;
// id 1 belongs to the tree's own group. sr is nil outside slides.
func writeShapeTree(b *xmlBuilder, shapes []deck.Shape, sr *slideRels) error {
	b.start("p:spTree")
	b.raw(groupProps)
	id := 2
	for _, sh := range shapes {
		switch s := sh.(type) {
		case *deck.TextShape:
			writeTextShape(b, id, s)
			id++
		case *deck.Table:
			writeTable(b, id, s)
			id++
		case *deck.Embedded:
			if err := writeEmbedded(b, &id, s, sr); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported shape %T", sh)
		}
	}
	b.end("p:spTree")
	return nil
}

func shapeName(name string, id int) string {
	if name == "" {
		return fmt.Sprintf("Shape %d", id-1)
	}
	return name
}

func writeTextShape(b *xmlBuilder, id int, s *deck.TextShape) {
	b.start("p:sp")
	b.start("p:nvSpPr")
	b.empty("p:cNvPr", "id", itoa(id), "name", shapeName(s.Name, id))
	switch s.Kind {
	case deck.KindPlaceholder:
		b.start("p:cNvSpPr")
		b.empty("a:spLocks", "noGrp", "1")
		b.end("p:cNvSpPr")
		b.start("p:nvPr")
		writePlaceholderRef(b, s.Placeholder)
		b.end("p:nvPr")
	case deck.KindTextBox:
		b.empty("p:cNvSpPr", "txBox", "1")
		b.empty("p:nvPr")
	default:
		b.empty("p:cNvSpPr")
		b.empty("p:nvPr")
	}
	b.end("p:nvSpPr")

	b.start("p:spPr")
	if !s.Bounds.IsZero() {
		writeXfrm(b, "a:xfrm", s.Bounds)
	}
	if s.Kind != deck.KindPlaceholder {
		geom := s.Geometry
		if geom == "" {
			geom = deck.GeomRect
		}
		b.start("a:prstGeom", "prst", string(geom))
		b.empty("a:avLst")
		b.end("a:prstGeom")
	}
	writeFill(b, s.Fill)
	writeLine(b, s.Line)
	b.end("p:spPr")

	if s.Kind == deck.KindAutoShape {
		b.raw(autoShapeStyle)
	}
	writeTextBody(b, "p:txBody", s.TextFrame, false)
	b.end("p:sp")
}

// writePlaceholderRef writes p:ph. Content placeholders ("obj") carry no type
// attribute, and index 0 is implied.
func writePlaceholderRef(b *xmlBuilder, spec *deck.PlaceholderSpec) {
	if spec == nil {
		b.empty("p:ph")
		return
	}
	typ := string(spec.Type)
	if spec.Type == deck.PhObject {
		typ = ""
	}
	idx := ""
	if spec.Idx > 0 {
		idx = fmt.Sprint(spec.Idx)
	}
	b.empty("p:ph", "type", typ, "idx", idx)
}

func writeXfrm(b *xmlBuilder, tag string, r deck.Rect) {
	b.start(tag)
	b.empty("a:off", "x", emu(r.Left), "y", emu(r.Top))
	b.empty("a:ext", "cx", emu(r.Width), "cy", emu(r.Height))
	b.end(tag)
}

func writeSolidFill(b *xmlBuilder, c deck.Color) {
	b.start("a:solidFill")
	b.empty("a:srgbClr", "val", c.Hex())
	b.end("a:solidFill")
}

// writeSchemeFill writes a theme colour slot and its transforms.
func writeSchemeFill(b *xmlBuilder, sc deck.SchemeColor) {
	b.start("a:solidFill")
	if len(sc.Mods) == 0 {
		b.empty("a:schemeClr", "val", sc.Name)
	} else {
		b.start("a:schemeClr", "val", sc.Name)
		for _, m := range sc.Mods {
			b.empty("a:"+m.Name, "val", m.Val)
		}
		b.end("a:schemeClr")
	}
	b.end("a:solidFill")
}

func writeFill(b *xmlBuilder, f deck.Fill) {
	switch f.Kind {
	case deck.FillNone:
		b.empty("a:noFill")
	case deck.FillSolid:
		writeSolidFill(b, f.Color)
	case deck.FillScheme:
		if f.Scheme != nil {
			writeSchemeFill(b, *f.Scheme)
		}
	}
}

func writeLine(b *xmlBuilder, l deck.Line) {
	if l.IsZero() {
		return
	}
	w := ""
	if l.Width > 0 {
		w = emu(l.Width)
	}
	if !l.None && l.Color == nil && l.Scheme == nil {
		b.empty("a:ln", "w", w)
		return
	}
	b.start("a:ln", "w", w)
	switch {
	case l.None:
		b.empty("a:noFill")
	case l.Color != nil:
		writeSolidFill(b, *l.Color)
	default:
		writeSchemeFill(b, *l.Scheme)
	}
	b.end("a:ln")
}

func insetAttr(m *deck.Insets, side func(deck.Insets) deck.Length) string {
	if m == nil {
		return ""
	}
	return emu(side(*m))
}

func left(i deck.Insets) deck.Length   { return i.Left }
func top(i deck.Insets) deck.Length    { return i.Top }
func right(i deck.Insets) deck.Length  { return i.Right }
func bottom(i deck.Insets) deck.Length { return i.Bottom }

// writeTextBody emits a text body. Table cells keep margins and anchor on
// a:tcPr, so inCell leaves a:bodyPr bare.
func writeTextBody(b *xmlBuilder, tag string, tf *deck.TextFrame, inCell bool) {
	if tf == nil {
		tf = deck.NewTextFrame()
	}
	b.start(tag)
	if inCell {
		b.empty("a:bodyPr")
	} else {
		wrap := ""
		switch tf.Wrap {
		case deck.WrapSquare:
			wrap = "square"
		case deck.WrapNone:
			wrap = "none"
		}
		vert := ""
		if tf.Vertical {
			vert = "vert"
		}
		b.empty("a:bodyPr",
			"wrap", wrap,
			"lIns", insetAttr(tf.Margins, left),
			"tIns", insetAttr(tf.Margins, top),
			"rIns", insetAttr(tf.Margins, right),
			"bIns", insetAttr(tf.Margins, bottom),
			"anchor", string(tf.Anchor),
			"vert", vert,
		)
	}
	b.empty("a:lstStyle")
	paras := tf.Paragraphs
	if len(paras) == 0 {
		paras = []*deck.Paragraph{{}}
	}
	for _, p := range paras {
		writeParagraph(b, p)
	}
	b.end(tag)
}

func writeParagraph(b *xmlBuilder, p *deck.Paragraph) {
	b.start("a:p")
	if p.Level > 0 || p.Alignment != deck.AlignInherit || p.SpaceBefore != nil || p.SpaceAfter != nil {
		lvl := ""
		if p.Level > 0 {
			lvl = itoa(p.Level)
		}
		if p.SpaceBefore == nil && p.SpaceAfter == nil {
			b.empty("a:pPr", "lvl", lvl, "algn", string(p.Alignment))
		} else {
			b.start("a:pPr", "lvl", lvl, "algn", string(p.Alignment))
			writeSpacing(b, "a:spcBef", p.SpaceBefore)
			writeSpacing(b, "a:spcAft", p.SpaceAfter)
			b.end("a:pPr")
		}
	}
	for _, r := range p.Runs {
		writeRun(b, r)
	}
	if !p.EndFont.IsZero() {
		writeRunProps(b, "a:endParaRPr", p.EndFont)
	}
	b.end("a:p")
}

func writeSpacing(b *xmlBuilder, tag string, v *deck.Length) {
	if v == nil {
		return
	}
	b.start(tag)
	b.empty("a:spcPts", "val", itoa(v.Centipoints()))
	b.end(tag)
}

// softBreaks maps carriage returns in run text to soft line breaks.
var softBreaks = strings.NewReplacer("\r\n", "\v", "\r", "\v")

// writeRun emits one a:r per line segment; a vertical tab inside run text is
// a soft line break (a:br), and so is a carriage return.
func writeRun(b *xmlBuilder, r *deck.Run) {
	segs := strings.Split(softBreaks.Replace(r.Text), "\v")
	for i, seg := range segs {
		if i > 0 {
			if r.Font.IsZero() {
				b.empty("a:br")
			} else {
				b.start("a:br")
				writeRunProps(b, "a:rPr", r.Font)
				b.end("a:br")
			}
		}
		if seg == "" && len(segs) > 1 {
			continue
		}
		b.start("a:r")
		if !r.Font.IsZero() {
			writeRunProps(b, "a:rPr", r.Font)
		}
		b.text("a:t", seg)
		b.end("a:r")
	}
}

func writeRunProps(b *xmlBuilder, tag string, f deck.Font) {
	sz := ""
	if f.Size > 0 {
		sz = itoa(f.Size.Centipoints())
	}
	u := ""
	if f.Underline != nil {
		u = "none"
		if *f.Underline {
			u = "sng"
		}
	}
	attrs := []string{"lang", "en-US", "sz", sz, "b", tristate(f.Bold), "i", tristate(f.Italic), "u", u, "dirty", "0"}
	if f.Color == nil && f.Typeface == "" {
		b.empty(tag, attrs...)
		return
	}
	b.start(tag, attrs...)
	if f.Color != nil {
		writeSolidFill(b, *f.Color)
	}
	if f.Typeface != "" {
		b.empty("a:latin", "typeface", f.Typeface)
		b.empty("a:ea", "typeface", f.Typeface)
	}
	b.end(tag)
}

func writeTable(b *xmlBuilder, id int, t *deck.Table) {
	b.start("p:graphicFrame")
	b.start("p:nvGraphicFramePr")
	b.empty("p:cNvPr", "id", itoa(id), "name", shapeName(t.Name, id))
	b.start("p:cNvGraphicFramePr")
	b.empty("a:graphicFrameLocks", "noGrp", "1")
	b.end("p:cNvGraphicFramePr")
	b.empty("p:nvPr")
	b.end("p:nvGraphicFramePr")
	writeXfrm(b, "p:xfrm", t.Bounds)

	b.start("a:graphic")
	b.start("a:graphicData", "uri", tableURI)
	b.start("a:tbl")
	b.start("a:tblPr", "firstRow", flag(t.FirstRow), "bandRow", flag(t.BandRow))
	b.text("a:tableStyleId", defaultTableStyle)
	b.end("a:tblPr")
	b.start("a:tblGrid")
	for _, w := range t.ColWidths {
		b.empty("a:gridCol", "w", emu(w))
	}
	b.end("a:tblGrid")
	for r, row := range t.Cells {
		var h deck.Length
		if r < len(t.RowHeights) {
			h = t.RowHeights[r]
		}
		b.start("a:tr", "h", emu(h))
		for _, cell := range row {
			writeCell(b, cell)
		}
		b.end("a:tr")
	}
	b.end("a:tbl")
	b.end("a:graphicData")
	b.end("a:graphic")
	b.end("p:graphicFrame")
}

func writeCell(b *xmlBuilder, c *deck.Cell) {
	if c == nil {
		c = &deck.Cell{TextFrame: deck.NewTextFrame()}
	}
	tf := c.TextFrame
	if tf == nil {
		tf = deck.NewTextFrame()
	}
	b.start("a:tc")
	writeTextBody(b, "a:txBody", tf, true)
	attrs := []string{
		"marL", insetAttr(tf.Margins, left),
		"marR", insetAttr(tf.Margins, right),
		"marT", insetAttr(tf.Margins, top),
		"marB", insetAttr(tf.Margins, bottom),
		"anchor", string(tf.Anchor),
	}
	if c.Fill.Kind == deck.FillInherit {
		b.empty("a:tcPr", attrs...)
	} else {
		b.start("a:tcPr", attrs...)
		writeFill(b, c.Fill)
		b.end("a:tcPr")
	}
	b.end("a:tc")
}
