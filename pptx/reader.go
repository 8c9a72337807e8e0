// Package pptx reads and writes decks as Office Open XML presentation
// packages.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"slidecomposer/deck"
)

// Default text frame insets used when a producer sets only some sides.
const (
	defaultInsetLR deck.Length = 91440
	defaultInsetTB deck.Length = 45720
)

// Open reads the deck stored at filename.
func Open(filename string) (*deck.Deck, error) {
	f, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, filename)
		}
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, filename, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, filename, err)
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrFormat, filename)
	}
	d, err := Read(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return d, nil
}

// Read decodes a package of the given size.
func Read(r io.ReaderAt, size int64) (*deck.Deck, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: not a zip archive: %w", ErrFormat, err)
	}
	pr := &packageReader{files: make(map[string]*zip.File, len(zr.File))}
	for _, f := range zr.File {
		pr.files[f.Name] = f
	}
	return pr.read()
}

// packageReader resolves parts and relationships inside one archive.
type packageReader struct {
	files map[string]*zip.File

	masterBounds map[deck.PlaceholderType]deck.Rect
	layouts      map[string]*deck.Layout
	types        *contentTypesDoc
}

func (pr *packageReader) read() (*deck.Deck, error) {
	if _, ok := pr.files[presentationPart]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrFormat, presentationPart)
	}
	var pres presentationXMLDoc
	if err := pr.decode(presentationPart, &pres); err != nil {
		return nil, err
	}
	presRels, err := pr.rels(presentationPart)
	if err != nil {
		return nil, err
	}

	d := &deck.Deck{Width: deck.DefaultWidth, Height: deck.DefaultHeight}
	if pres.SlideSz != nil && pres.SlideSz.Cx > 0 && pres.SlideSz.Cy > 0 {
		d.Width = deck.Length(pres.SlideSz.Cx)
		d.Height = deck.Length(pres.SlideSz.Cy)
	}
	d.Properties = pr.properties()

	pr.layouts = make(map[string]*deck.Layout)
	for _, m := range pres.Masters {
		target, err := resolve(presentationPart, presRels, m.RID)
		if err != nil {
			return nil, err
		}
		layouts, err := pr.readMaster(target)
		if err != nil {
			return nil, err
		}
		d.Layouts = append(d.Layouts, layouts...)
	}

	for i, ref := range pres.Slides {
		target, err := resolve(presentationPart, presRels, ref.RID)
		if err != nil {
			return nil, err
		}
		s, err := pr.readSlide(target)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		d.Slides = append(d.Slides, s)
	}
	return d, nil
}

func (pr *packageReader) data(name string) ([]byte, error) {
	f, ok := pr.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing part %s", ErrFormat, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, name, err)
	}
	return b, nil
}

func (pr *packageReader) decode(name string, v any) error {
	b, err := pr.data(name)
	if err != nil {
		return err
	}
	return decodeXML(name, b, v)
}

func decodeXML(name string, b []byte, v any) error {
	if err := xml.NewDecoder(bytes.NewReader(b)).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFormat, name, err)
	}
	return nil
}

// rels loads the relationship part belonging to name. A part without one
// has no relationships.
func (pr *packageReader) rels(name string) ([]relationshipXML, error) {
	relsName := path.Join(path.Dir(name), "_rels", path.Base(name)+".rels")
	if _, ok := pr.files[relsName]; !ok {
		return nil, nil
	}
	var rx relationshipsXML
	if err := pr.decode(relsName, &rx); err != nil {
		return nil, err
	}
	return rx.Relationship, nil
}

// resolve maps a relationship id of source to the absolute part name.
func resolve(source string, rels []relationshipXML, id string) (string, error) {
	for _, r := range rels {
		if r.ID == id {
			return partName(source, r.Target), nil
		}
	}
	return "", fmt.Errorf("%w: %s has no relationship %q", ErrFormat, source, id)
}

func partName(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(source), target)
}

func (pr *packageReader) properties() deck.Properties {
	var core corePropertiesXML
	if _, ok := pr.files[corePart]; !ok {
		return deck.Properties{}
	}
	// Metadata is optional; a damaged core part does not make the deck unreadable.
	if err := pr.decode(corePart, &core); err != nil {
		return deck.Properties{}
	}
	p := deck.Properties{
		Title:    core.Title,
		Subject:  core.Subject,
		Creator:  core.Creator,
		Keywords: core.Keywords,
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(core.Modified)); err == nil {
		p.Modified = t
	}
	return p
}

func (pr *packageReader) readMaster(name string) ([]*deck.Layout, error) {
	var master sldXML
	if err := pr.decode(name, &master); err != nil {
		return nil, err
	}
	pr.masterBounds = make(map[deck.PlaceholderType]deck.Rect)
	for _, it := range master.CSld.SpTree.Items {
		if it.Sp == nil || it.Sp.NvSpPr.NvPr.Ph == nil || it.Sp.SpPr.Xfrm == nil {
			continue
		}
		typ := phType(it.Sp.NvSpPr.NvPr.Ph.Type)
		if _, seen := pr.masterBounds[typ]; !seen {
			pr.masterBounds[typ] = rect(it.Sp.SpPr.Xfrm)
		}
	}

	rels, err := pr.rels(name)
	if err != nil {
		return nil, err
	}
	layouts := make([]*deck.Layout, 0, len(master.Layouts))
	for _, ref := range master.Layouts {
		target, err := resolve(name, rels, ref.RID)
		if err != nil {
			return nil, err
		}
		l, err := pr.readLayout(target)
		if err != nil {
			return nil, err
		}
		pr.layouts[target] = l
		layouts = append(layouts, l)
	}
	return layouts, nil
}

func (pr *packageReader) readLayout(name string) (*deck.Layout, error) {
	var lx sldXML
	if err := pr.decode(name, &lx); err != nil {
		return nil, err
	}
	l := &deck.Layout{Name: lx.CSld.Name, Type: deck.LayoutType(lx.Type)}
	if l.Type == "" {
		l.Type = deck.LayoutCustom
	}
	for _, it := range lx.CSld.SpTree.Items {
		if it.Sp == nil || it.Sp.NvSpPr.NvPr.Ph == nil {
			continue
		}
		sp := it.Sp
		ph := sp.NvSpPr.NvPr.Ph
		spec := deck.PlaceholderSpec{
			Type:     phType(ph.Type),
			Idx:      ph.Idx,
			Name:     sp.NvSpPr.CNvPr.Name,
			Vertical: ph.Orient == "vert" || (sp.TxBody != nil && vertical(sp.TxBody.BodyPr.Vert)),
		}
		if sp.SpPr.Xfrm != nil {
			spec.Bounds = rect(sp.SpPr.Xfrm)
		} else {
			spec.Bounds = pr.inheritedBounds(spec.Type)
		}
		l.Placeholders = append(l.Placeholders, spec)
	}
	return l, nil
}

// inheritedBounds returns the master geometry a layout slot of type t falls
// back to when it carries no transform of its own.
func (pr *packageReader) inheritedBounds(t deck.PlaceholderType) deck.Rect {
	if r, ok := pr.masterBounds[t]; ok {
		return r
	}
	switch t.Role() {
	case deck.RoleTitle:
		return pr.masterBounds[deck.PhTitle]
	case deck.RoleDate, deck.RoleFooter, deck.RoleSlideNumber:
		return deck.Rect{}
	default:
		return pr.masterBounds[deck.PhBody]
	}
}

func (pr *packageReader) readSlide(name string) (*deck.Slide, error) {
	raw, err := pr.data(name)
	if err != nil {
		return nil, err
	}
	var sx sldXML
	if err := decodeXML(name, raw, &sx); err != nil {
		return nil, err
	}
	rels, err := pr.rels(name)
	if err != nil {
		return nil, err
	}
	s := &deck.Slide{}
	for _, r := range rels {
		if strings.HasSuffix(r.Type, "/slideLayout") {
			s.Layout = pr.layouts[partName(name, r.Target)]
			break
		}
	}
	if s.Layout == nil {
		return nil, fmt.Errorf("%w: %s has no known layout", ErrFormat, name)
	}
	if bg := sx.CSld.Bg; bg != nil && bg.BgPr != nil {
		if c, ok := solidColor(bg.BgPr.SolidFill); ok {
			s.Background = &c
		}
	}

	var rootNS map[string]string
	for _, it := range sx.CSld.SpTree.Items {
		switch {
		case it.Sp != nil:
			s.Shapes = append(s.Shapes, textShape(it.Sp, s.Layout))
		case it.Frame != nil && it.Frame.Graphic.GraphicData.Tbl != nil:
			s.Shapes = append(s.Shapes, table(it.Frame))
		default:
			if rootNS == nil {
				rootNS = rootNamespaces(raw)
			}
			e, err := pr.embedded(name, it.Other, raw[it.Start:it.End], rootNS, rels)
			switch {
			case errors.Is(err, errNotKept):
				s.Skipped++
			case err != nil:
				return nil, err
			default:
				s.Shapes = append(s.Shapes, e)
			}
		}
	}
	return s, nil
}

func textShape(sp *spXML, layout *deck.Layout) *deck.TextShape {
	ts := &deck.TextShape{
		Name:     sp.NvSpPr.CNvPr.Name,
		Geometry: deck.GeomRect,
	}
	if ph := sp.NvSpPr.NvPr.Ph; ph != nil {
		ts.Kind = deck.KindPlaceholder
		spec := matchPlaceholder(layout, ph)
		ts.Placeholder = &spec
		ts.Bounds = spec.Bounds
	} else if sp.NvSpPr.CNvSpPr.TxBox == "1" || sp.NvSpPr.CNvSpPr.TxBox == "true" {
		ts.Kind = deck.KindTextBox
	} else {
		ts.Kind = deck.KindAutoShape
	}

	pp := sp.SpPr
	if pp.Xfrm != nil {
		ts.Bounds = rect(pp.Xfrm)
	}
	if pp.PrstGeom != nil && pp.PrstGeom.Prst != "" {
		ts.Geometry = deck.Geometry(pp.PrstGeom.Prst)
	}
	switch {
	case pp.NoFill != nil:
		ts.Fill = deck.NoFill()
	case pp.SolidFill != nil:
		ts.Fill = solidFill(pp.SolidFill)
	}
	if ln := pp.Ln; ln != nil {
		ts.Line.Width = deck.Length(ln.W)
		ts.Line.None = ln.NoFill != nil
		if c, ok := solidColor(ln.SolidFill); ok {
			ts.Line.Color = &c
		} else {
			ts.Line.Scheme = schemeColor(ln.SolidFill)
		}
	}
	ts.TextFrame = textFrame(sp.TxBody)
	if ts.Placeholder != nil && ts.Placeholder.Vertical {
		ts.TextFrame.Vertical = true
	}
	return ts
}

// matchPlaceholder finds the layout slot a slide placeholder refers to: by
// index when it has one, otherwise by role.
func matchPlaceholder(layout *deck.Layout, ph *phXML) deck.PlaceholderSpec {
	typ := phType(ph.Type)
	if ph.Idx > 0 {
		for _, spec := range layout.Placeholders {
			if spec.Idx == ph.Idx {
				return spec
			}
		}
	} else {
		for _, spec := range layout.Placeholders {
			if spec.Idx == 0 && spec.Role() == typ.Role() {
				return spec
			}
		}
	}
	return deck.PlaceholderSpec{Type: typ, Idx: ph.Idx}
}

func table(gf *graphicFrameXML) *deck.Table {
	tx := gf.Graphic.GraphicData.Tbl
	t := &deck.Table{
		Name:     gf.NvGraphicFramePr.CNvPr.Name,
		FirstRow: truthy(tx.TblPr.FirstRow),
		BandRow:  truthy(tx.TblPr.BandRow),
	}
	if gf.Xfrm != nil {
		t.Bounds = rect(gf.Xfrm)
	}
	for _, gc := range tx.GridCols {
		t.ColWidths = append(t.ColWidths, deck.Length(gc.W))
	}
	for _, tr := range tx.Tr {
		t.RowHeights = append(t.RowHeights, deck.Length(tr.H))
		row := make([]*deck.Cell, len(t.ColWidths))
		for c := range row {
			cell := &deck.Cell{TextFrame: deck.NewTextFrame()}
			if c < len(tr.Tc) {
				cell = tableCell(&tr.Tc[c])
			}
			row[c] = cell
		}
		t.Cells = append(t.Cells, row)
	}
	return t
}

func tableCell(tc *tcXML) *deck.Cell {
	cell := &deck.Cell{TextFrame: textFrame(tc.TxBody)}
	pr := tc.TcPr
	if pr == nil {
		return cell
	}
	cell.TextFrame.Anchor = deck.Anchor(pr.Anchor)
	cell.TextFrame.Margins = insets(pr.MarL, pr.MarT, pr.MarR, pr.MarB)
	switch {
	case pr.NoFill != nil:
		cell.Fill = deck.NoFill()
	case pr.SolidFill != nil:
		cell.Fill = solidFill(pr.SolidFill)
	}
	return cell
}

func textFrame(tb *txBodyXML) *deck.TextFrame {
	tf := &deck.TextFrame{}
	if tb == nil {
		return deck.NewTextFrame()
	}
	bp := tb.BodyPr
	switch bp.Wrap {
	case "square":
		tf.Wrap = deck.WrapSquare
	case "none":
		tf.Wrap = deck.WrapNone
	}
	tf.Anchor = deck.Anchor(bp.Anchor)
	tf.Vertical = vertical(bp.Vert)
	tf.Margins = insets(bp.LIns, bp.TIns, bp.RIns, bp.BIns)

	for i := range tb.P {
		tf.Paragraphs = append(tf.Paragraphs, paragraph(&tb.P[i]))
	}
	if len(tf.Paragraphs) == 0 {
		tf.Paragraphs = []*deck.Paragraph{{}}
	}
	return tf
}

func paragraph(px *pXML) *deck.Paragraph {
	p := &deck.Paragraph{}
	if pp := px.PPr; pp != nil {
		p.Level = min(max(pp.Lvl, 0), deck.MaxLevel)
		p.Alignment = deck.Alignment(pp.Algn)
		p.SpaceBefore = spacing(pp.SpcBef)
		p.SpaceAfter = spacing(pp.SpcAft)
	}
	for _, r := range px.Runs {
		text := r.Text
		if r.Break {
			text = "\v"
		}
		p.Runs = append(p.Runs, &deck.Run{Text: text, Font: font(r.RPr)})
	}
	p.EndFont = font(px.EndParaRPr)
	return p
}

func spacing(sx *spacingXML) *deck.Length {
	if sx == nil || sx.SpcPts == nil {
		return nil
	}
	return deck.Ptr(deck.FromCentipoints(sx.SpcPts.Val))
}

func font(rp *rPrXML) deck.Font {
	var f deck.Font
	if rp == nil {
		return f
	}
	if rp.Sz > 0 {
		f.Size = deck.FromCentipoints(rp.Sz)
	}
	f.Bold = optionalBool(rp.B)
	f.Italic = optionalBool(rp.I)
	switch rp.U {
	case "":
	case "none":
		f.Underline = deck.Ptr(false)
	default:
		f.Underline = deck.Ptr(true)
	}
	if c, ok := solidColor(rp.SolidFill); ok {
		f.Color = &c
	}
	if rp.Latin != nil {
		f.Typeface = rp.Latin.Typeface
	}
	return f
}

func insets(l, t, r, b *int64) *deck.Insets {
	if l == nil && t == nil && r == nil && b == nil {
		return nil
	}
	side := func(v *int64, def deck.Length) deck.Length {
		if v == nil {
			return def
		}
		return deck.Length(*v)
	}
	return &deck.Insets{
		Left:   side(l, defaultInsetLR),
		Top:    side(t, defaultInsetTB),
		Right:  side(r, defaultInsetLR),
		Bottom: side(b, defaultInsetTB),
	}
}

func solidColor(sf *solidFillXML) (deck.Color, bool) {
	if sf == nil || sf.SrgbClr == nil {
		return deck.Color{}, false
	}
	c, err := deck.ParseColor(sf.SrgbClr.Val)
	return c, err == nil
}

// solidFill maps a solidFill element to an RGB or theme fill. Colour models
// other than those two inherit.
func solidFill(sf *solidFillXML) deck.Fill {
	if c, ok := solidColor(sf); ok {
		return deck.Solid(c)
	}
	if sc := schemeColor(sf); sc != nil {
		return deck.Themed(*sc)
	}
	return deck.Fill{}
}

func schemeColor(sf *solidFillXML) *deck.SchemeColor {
	if sf == nil || sf.SchemeClr == nil || sf.SchemeClr.Val == "" {
		return nil
	}
	sc := &deck.SchemeColor{Name: sf.SchemeClr.Val}
	for _, m := range sf.SchemeClr.Mods {
		sc.Mods = append(sc.Mods, deck.ColorMod{Name: m.XMLName.Local, Val: m.Val})
	}
	return sc
}

func rect(x *xfrmXML) deck.Rect {
	return deck.Rect{
		Left:   deck.Length(x.Off.X),
		Top:    deck.Length(x.Off.Y),
		Width:  deck.Length(x.Ext.Cx),
		Height: deck.Length(x.Ext.Cy),
	}
}

// phType maps an absent placeholder type to its schema default.
func phType(s string) deck.PlaceholderType {
	if s == "" {
		return deck.PhObject
	}
	return deck.PlaceholderType(s)
}

func vertical(v string) bool { return v != "" && v != "horz" }

func truthy(s string) bool { return s == "1" || s == "true" }

func optionalBool(s string) *bool {
	switch s {
	case "1", "true":
		return deck.Ptr(true)
	case "0", "false":
		return deck.Ptr(false)
	}
	return nil
}
