package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"slidecomposer/deck"
)

// sampleDeck builds one slide of every shape kind the codec writes.
func sampleDeck(t *testing.T) *deck.Deck {
	t.Helper()
	d := deck.New()
	d.Properties.Title = "Sample"
	d.Properties.Creator = "tests"

	title, _ := d.LayoutOfType(deck.LayoutTitle)
	s, err := d.AddSlide(title)
	if err != nil {
		t.Fatal(err)
	}
	ph, _ := s.Placeholder(deck.RoleTitle)
	ph.TextFrame.SetText("Demo")
	sub, _ := s.Placeholder(deck.RoleSubtitle)
	sub.TextFrame.SetText("Subtitle")

	content, _ := d.LayoutOfType(deck.LayoutTitleAndContent)
	s, _ = d.AddSlide(content)
	ph, _ = s.Placeholder(deck.RoleTitle)
	ph.TextFrame.SetText("Overview")
	body, _ := s.Placeholder(deck.RoleBody)
	body.TextFrame.First().SetText("Point A")
	p := body.TextFrame.AddParagraph()
	p.AddRun("Point B")
	p.Level = 1

	blank, _ := d.LayoutOfType(deck.LayoutBlank)
	s, _ = d.AddSlide(blank)
	s.SetBackground(deck.MustColor("F0F0F0"))
	tb := s.AddTextBox(deck.Box(1, 1, 8, 1))
	run := tb.TextFrame.First().AddRun("Styled")
	run.Font = deck.Font{Size: deck.Pt(36), Bold: deck.Ptr(true), Italic: deck.Ptr(false),
		Underline: deck.Ptr(true), Color: deck.Ptr(deck.MustColor("0066CC")), Typeface: "Arial"}
	tb.TextFrame.First().Alignment = deck.AlignCenter
	tb.TextFrame.First().SpaceAfter = deck.Ptr(deck.Pt(12))
	tb.TextFrame.SetWordWrap(true)
	tb.TextFrame.Margins = deck.Ptr(deck.UniformInsets(deck.Inches(0.1)))

	shape := s.AddAutoShape(deck.GeomRightArrow, deck.Box(1, 3, 2, 1))
	shape.Fill = deck.Solid(deck.MustColor("00994C"))
	shape.Line = deck.Line{Color: deck.Ptr(deck.MustColor("003366")), Width: deck.Pt(2)}
	shape.TextFrame.SetText("Arrow")

	tbl := s.AddTable(2, 2, deck.Box(1, 4.5, 6, 1))
	_ = tbl.SetColumnWidth(0, deck.Inches(2.5))
	h, _ := tbl.Cell(0, 0)
	h.SetText("Name")
	h.Fill = deck.Solid(deck.MustColor("003366"))
	h.TextFrame.Anchor = deck.AnchorMiddle
	c, _ := tbl.Cell(1, 1)
	c.SetText("42")
	return d
}

func TestWriteIsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Write(&a, sampleDeck(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := Write(&b, sampleDeck(t)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("two writes of the same deck differ")
	}
}

func TestSaveTwiceByteIdentical(t *testing.T) {
	dir := t.TempDir()
	d := sampleDeck(t)
	p1, p2 := filepath.Join(dir, "a.pptx"), filepath.Join(dir, "b.pptx")
	if err := Save(d, p1); err != nil {
		t.Fatal(err)
	}
	if err := Save(d, p2); err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(p1)
	b, _ := os.ReadFile(p2)
	if !bytes.Equal(a, b) {
		t.Fatal("saved files differ")
	}
}

func TestPackageParts(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleDeck(t)); err != nil {
		t.Fatal(err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
		if !f.Modified.IsZero() && f.Modified.Year() > 1980 {
			t.Errorf("%s carries a timestamp %v", f.Name, f.Modified)
		}
	}
	if zr.File[0].Name != "[Content_Types].xml" {
		t.Errorf("first part = %s", zr.File[0].Name)
	}
	for _, want := range []string{
		"_rels/.rels", "docProps/core.xml", "docProps/app.xml",
		"ppt/presentation.xml", "ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml", "ppt/theme/theme1.xml",
		"ppt/slideLayouts/slideLayout11.xml", "ppt/slides/slide3.xml",
		"ppt/slides/_rels/slide3.xml.rels", "ppt/tableStyles.xml",
	} {
		if !names[want] {
			t.Errorf("missing part %s", want)
		}
	}
}

func TestSaveOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := Save(sampleDeck(t), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if d.Properties.Title != "Sample" || d.Properties.Creator != "tests" {
		t.Errorf("properties = %+v", d.Properties)
	}
	if len(d.Layouts) != 11 || d.Layouts[0].Name != "Title Slide" {
		t.Fatalf("layouts = %d, first %q", len(d.Layouts), d.Layouts[0].Name)
	}
	if d.SlideCount() != 3 {
		t.Fatalf("slides = %d, want 3", d.SlideCount())
	}

	s1 := d.Slides[0]
	if s1.Layout.Type != deck.LayoutTitle || s1.Title() != "Demo" {
		t.Errorf("slide 1: layout %s title %q", s1.Layout.Type, s1.Title())
	}
	sub, err := s1.Placeholder(deck.RoleSubtitle)
	if err != nil || sub.TextFrame.Text() != "Subtitle" {
		t.Errorf("subtitle = %v, %v", sub, err)
	}

	body, err := d.Slides[1].Placeholder(deck.RoleBody)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(body.TextFrame.Paragraphs); n != 2 {
		t.Fatalf("body paragraphs = %d", n)
	}
	if body.TextFrame.Paragraphs[0].Level != 0 || body.TextFrame.Paragraphs[1].Level != 1 {
		t.Errorf("levels = %d,%d", body.TextFrame.Paragraphs[0].Level, body.TextFrame.Paragraphs[1].Level)
	}

	s3 := d.Slides[2]
	if s3.Background == nil || s3.Background.Hex() != "F0F0F0" {
		t.Errorf("background = %v", s3.Background)
	}
	texts := s3.TextShapes()
	if len(texts) != 2 {
		t.Fatalf("text shapes = %d", len(texts))
	}
	tb := texts[0]
	if tb.Kind != deck.KindTextBox || tb.Bounds != deck.Box(1, 1, 8, 1) {
		t.Errorf("text box = %+v", tb)
	}
	if tb.TextFrame.Wrap != deck.WrapSquare || tb.TextFrame.Margins == nil || tb.TextFrame.Margins.Left != deck.Inches(0.1) {
		t.Errorf("frame wrap %v margins %+v", tb.TextFrame.Wrap, tb.TextFrame.Margins)
	}
	p := tb.TextFrame.First()
	if p.Alignment != deck.AlignCenter || p.SpaceAfter == nil || *p.SpaceAfter != deck.Pt(12) {
		t.Errorf("paragraph = %+v", p)
	}
	f := p.Runs[0].Font
	if f.Size != deck.Pt(36) || !*f.Bold || *f.Italic || !*f.Underline || f.Color.Hex() != "0066CC" || f.Typeface != "Arial" {
		t.Errorf("font = %+v", f)
	}

	arrow := texts[1]
	if arrow.Kind != deck.KindAutoShape || arrow.Geometry != deck.GeomRightArrow {
		t.Errorf("auto shape = %+v", arrow)
	}
	if arrow.Fill.Kind != deck.FillSolid || arrow.Fill.Color.Hex() != "00994C" {
		t.Errorf("fill = %+v", arrow.Fill)
	}
	if arrow.Line.Width != deck.Pt(2) || arrow.Line.Color.Hex() != "003366" {
		t.Errorf("line = %+v", arrow.Line)
	}
	if arrow.TextFrame.Text() != "Arrow" {
		t.Errorf("label = %q", arrow.TextFrame.Text())
	}

	tables := s3.Tables()
	if len(tables) != 1 {
		t.Fatalf("tables = %d", len(tables))
	}
	tbl := tables[0]
	if tbl.Rows() != 2 || tbl.Cols() != 2 || tbl.ColWidths[0] != deck.Inches(2.5) {
		t.Fatalf("table %dx%d widths %v", tbl.Rows(), tbl.Cols(), tbl.ColWidths)
	}
	h, _ := tbl.Cell(0, 0)
	if h.Text() != "Name" || h.Fill.Kind != deck.FillSolid || h.Fill.Color.Hex() != "003366" || h.TextFrame.Anchor != deck.AnchorMiddle {
		t.Errorf("header cell = %q %+v", h.Text(), h.Fill)
	}
	c, _ := tbl.Cell(1, 1)
	if c.Text() != "42" {
		t.Errorf("body cell = %q", c.Text())
	}
}

func TestReopenedDeckSavesAgain(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.pptx")
	if err := Save(sampleDeck(t), first); err != nil {
		t.Fatal(err)
	}
	d, err := Open(first)
	if err != nil {
		t.Fatal(err)
	}
	content, _ := d.LayoutOfType(deck.LayoutTitleAndContent)
	if _, err := d.AddSlide(content); err != nil {
		t.Fatal(err)
	}
	second := filepath.Join(dir, "second.pptx")
	if err := Save(d, second); err != nil {
		t.Fatalf("Save reopened deck: %v", err)
	}
	again, err := Open(second)
	if err != nil {
		t.Fatal(err)
	}
	if again.SlideCount() != 4 {
		t.Fatalf("slides = %d, want 4", again.SlideCount())
	}
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.pptx"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file: err = %v, want ErrFileNotFound", err)
	}

	notZip := filepath.Join(dir, "plain.pptx")
	os.WriteFile(notZip, []byte("not a zip"), 0o644)
	if _, err := Open(notZip); !errors.Is(err, ErrFormat) {
		t.Errorf("not a zip: err = %v, want ErrFormat", err)
	}

	noPres := filepath.Join(dir, "nopres.pptx")
	os.WriteFile(noPres, zipOf(t, map[string]string{"hello.txt": "hi"}), 0o644)
	if _, err := Open(noPres); !errors.Is(err, ErrFormat) {
		t.Errorf("missing presentation part: err = %v, want ErrFormat", err)
	}

	broken := filepath.Join(dir, "broken.pptx")
	os.WriteFile(broken, zipOf(t, map[string]string{
		"ppt/presentation.xml": `<p:presentation xmlns:p="` + nsPresentation + `" xmlns:r="` + nsRelationships + `">` +
			`<p:sldIdLst><p:sldId id="256" r:id="rId9"/></p:sldIdLst></p:presentation>`,
	}), 0o644)
	if _, err := Open(broken); !errors.Is(err, ErrFormat) {
		t.Errorf("dangling relationship: err = %v, want ErrFormat", err)
	}
}

func TestSaveUnwritablePath(t *testing.T) {
	err := Save(deck.New(), filepath.Join(t.TempDir(), "no", "such", "dir", "out.pptx"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
}

const pmlAttrs = `xmlns:a="` + nsDrawingML + `" xmlns:r="` + nsRelationships + `" xmlns:p="` + nsPresentation + `"`

// foreignFiles returns a minimal package written by another producer: one
// master, one layout and a slide whose shape tree and extra relationships
// the caller supplies.
func foreignFiles(rootAttrs, spTree, slideRels string) map[string]string {
	return map[string]string{
		"ppt/presentation.xml": `<p:presentation ` + pmlAttrs + `>` +
			`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
			`<p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst>` +
			`<p:sldSz cx="12192000" cy="6858000"/></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<Relationships xmlns="` + nsPackageRels + `">` +
			`<Relationship Id="rId1" Type="` + relSlideMaster + `" Target="slideMasters/slideMaster1.xml"/>` +
			`<Relationship Id="rId2" Type="` + relSlide + `" Target="/ppt/slides/slide1.xml"/></Relationships>`,
		"ppt/slideMasters/slideMaster1.xml": `<p:sldMaster ` + pmlAttrs + `><p:cSld><p:spTree>` +
			`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
			`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr>` +
			`<p:spPr><a:xfrm><a:off x="10" y="20"/><a:ext cx="30" cy="40"/></a:xfrm></p:spPr></p:sp>` +
			`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Body"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr>` +
			`<p:spPr><a:xfrm><a:off x="50" y="60"/><a:ext cx="70" cy="80"/></a:xfrm></p:spPr></p:sp>` +
			`</p:spTree></p:cSld><p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst></p:sldMaster>`,
		"ppt/slideMasters/_rels/slideMaster1.xml.rels": `<Relationships xmlns="` + nsPackageRels + `">` +
			`<Relationship Id="rId1" Type="` + relSlideLayout + `" Target="../slideLayouts/slideLayout1.xml"/></Relationships>`,
		"ppt/slideLayouts/slideLayout1.xml": `<p:sldLayout ` + pmlAttrs + ` type="obj"><p:cSld name="Title and Content"><p:spTree>` +
			`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>` +
			`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Content 2"/><p:cNvSpPr/><p:nvPr><p:ph idx="1"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>` +
			`</p:spTree></p:cSld></p:sldLayout>`,
		"ppt/slides/slide1.xml": `<p:sld ` + rootAttrs + `><p:cSld><p:spTree>` + spTree + `</p:spTree></p:cSld></p:sld>`,
		"ppt/slides/_rels/slide1.xml.rels": `<Relationships xmlns="` + nsPackageRels + `">` +
			`<Relationship Id="rId1" Type="` + relSlideLayout + `" Target="../slideLayouts/slideLayout1.xml"/>` +
			slideRels + `</Relationships>`,
	}
}

func TestReadForeignPackage(t *testing.T) {
	files := foreignFiles(pmlAttrs,
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr/><p:nvPr><p:ph type="title"/></p:nvPr></p:nvSpPr><p:spPr/>`+
			`<p:txBody><a:bodyPr/><a:p><a:r><a:t>Hello</a:t></a:r><a:br/><a:r><a:t>World</a:t></a:r></a:p></p:txBody></p:sp>`+
			`<p:pic><p:nvPicPr><p:cNvPr id="3" name="Picture"/></p:nvPicPr></p:pic>`+
			`<p:sp><p:nvSpPr><p:cNvPr id="4" name="Content 2"/><p:cNvSpPr/><p:nvPr><p:ph idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>`+
			`<p:txBody><a:bodyPr/><a:p><a:r><a:t>one</a:t></a:r></a:p><a:p><a:pPr lvl="2"/><a:r><a:t>two</a:t></a:r></a:p></p:txBody></p:sp>`,
		"")
	data := zipOf(t, files)
	d, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Width != 12192000 {
		t.Errorf("width = %d", d.Width)
	}
	l := d.Layouts[0]
	title, _ := l.Placeholder(deck.RoleTitle)
	if title.Bounds != (deck.Rect{Left: 10, Top: 20, Width: 30, Height: 40}) {
		t.Errorf("title did not inherit master geometry: %+v", title.Bounds)
	}
	body, err := l.Placeholder(deck.RoleBody)
	if err != nil || body.Type != deck.PhObject || body.Bounds.Left != 50 {
		t.Errorf("body slot = %+v, %v", body, err)
	}

	s := d.Slides[0]
	if s.Skipped != 0 {
		t.Errorf("skipped = %d, want 0", s.Skipped)
	}
	if pic, ok := s.Shapes[1].(*deck.Embedded); !ok || pic.Name != "Picture" || pic.Element != "pic" {
		t.Errorf("shape 1 = %#v, want the kept picture", s.Shapes[1])
	}
	if got := s.Title(); got != "Hello\vWorld" {
		t.Errorf("title = %q", got)
	}
	ph, _ := s.Placeholder(deck.RoleBody)
	if ph.Bounds.Width != 70 || ph.TextFrame.Paragraphs[1].Level != 2 {
		t.Errorf("body = %+v level %d", ph.Bounds, ph.TextFrame.Paragraphs[1].Level)
	}

	// The foreign deck can be written back out.
	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write foreign deck: %v", err)
	}
}

func TestForeignPicturesSurviveSave(t *testing.T) {
	root := pmlAttrs + ` xmlns:p14="http://schemas.microsoft.com/office/powerpoint/2010/main"`
	files := foreignFiles(root,
		`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Accent"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>`+
			`<a:xfrm><a:off x="1" y="2"/><a:ext cx="3" cy="4"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom>`+
			`<a:solidFill><a:schemeClr val="accent2"><a:lumMod val="75000"/></a:schemeClr></a:solidFill>`+
			`<a:ln w="12700"><a:solidFill><a:schemeClr val="tx1"/></a:solidFill></a:ln></p:spPr></p:sp>`+
			`<p:pic><p:nvPicPr><p:cNvPr id="7" name="Logo"><a:hlinkClick r:id="rId3"/></p:cNvPr><p:cNvPicPr/>`+
			`<p:nvPr><p:extLst><p:ext uri="{D42A27DB-BD31-4B8C-83A1-F6EECF244321}"><p14:modId val="1"/></p:ext></p:extLst></p:nvPr></p:nvPicPr>`+
			`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`+
			`<p:spPr><a:xfrm><a:off x="100" y="200"/><a:ext cx="300" cy="400"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`+
			`<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="8" name="Connector"/><p:cNvCxnSpPr><a:stCxn id="7" idx="3"/></p:cNvCxnSpPr><p:nvPr/></p:nvCxnSpPr>`+
			`<p:spPr><a:xfrm><a:off x="400" y="400"/><a:ext cx="100" cy="0"/></a:xfrm><a:prstGeom prst="line"><a:avLst/></a:prstGeom></p:spPr></p:cxnSp>`+
			`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="9" name="Chart"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`+
			`<p:xfrm><a:off x="0" y="0"/><a:ext cx="10" cy="10"/></p:xfrm><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart">`+
			`<c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" r:id="rId4"/></a:graphicData></a:graphic></p:graphicFrame>`,
		`<Relationship Id="rId2" Type="`+nsRelationships+`/image" Target="../media/image1.png"/>`+
			`<Relationship Id="rId3" Type="`+nsRelationships+`/hyperlink" Target="https://example.com/" TargetMode="External"/>`+
			`<Relationship Id="rId4" Type="`+nsRelationships+`/chart" Target="../charts/chart1.xml"/>`)
	files["ppt/media/image1.png"] = "PNGDATA"
	files["[Content_Types].xml"] = `<Types xmlns="` + nsContentTypes + `"><Default Extension="png" ContentType="image/png"/></Types>`

	data := zipOf(t, files)
	d, err := Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if d.Skipped() != 1 {
		t.Errorf("skipped = %d, want 1 (the chart)", d.Skipped())
	}

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatalf("Write: %v", err)
	}
	parts := unzip(t, buf.Bytes())
	if parts["ppt/media/media1.png"] != "PNGDATA" {
		t.Errorf("picture data not copied: %q", parts["ppt/media/media1.png"])
	}
	if !strings.Contains(parts["[Content_Types].xml"], `PartName="/ppt/media/media1.png" ContentType="image/png"`) {
		t.Errorf("media content type missing:\n%s", parts["[Content_Types].xml"])
	}
	slide := parts["ppt/slides/slide1.xml"]
	for _, want := range []string{
		`<p:cNvPr id="3" name="Logo"><a:hlinkClick r:id="rId2"/>`,
		`<a:blip r:embed="rId3"/>`,
		`<p:pic xmlns:p14="http://schemas.microsoft.com/office/powerpoint/2010/main">`,
		`<p:cNvPr id="4" name="Connector"/>`,
		`<a:schemeClr val="accent2"><a:lumMod val="75000"/></a:schemeClr>`,
	} {
		if !strings.Contains(slide, want) {
			t.Errorf("slide lacks %s:\n%s", want, slide)
		}
	}
	if strings.Contains(slide, "stCxn") || strings.Contains(slide, "c:chart") {
		t.Errorf("slide kept a dangling connection or the chart:\n%s", slide)
	}
	rels := parts["ppt/slides/_rels/slide1.xml.rels"]
	if !strings.Contains(rels, `Id="rId2" Type="`+nsRelationships+`/hyperlink" Target="https://example.com/" TargetMode="External"`) ||
		!strings.Contains(rels, `Id="rId3" Type="`+nsRelationships+`/image" Target="../media/media1.png"/>`) {
		t.Errorf("slide rels:\n%s", rels)
	}

	back, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Read back: %v", err)
	}
	s := back.Slides[0]
	if len(s.Shapes) != 3 || s.Skipped != 0 {
		t.Fatalf("shapes = %d skipped = %d, want 3 and 0", len(s.Shapes), s.Skipped)
	}
	accent := s.Shapes[0].(*deck.TextShape)
	if accent.Fill.Kind != deck.FillScheme || accent.Fill.Scheme.Name != "accent2" ||
		len(accent.Fill.Scheme.Mods) != 1 || accent.Fill.Scheme.Mods[0] != (deck.ColorMod{Name: "lumMod", Val: "75000"}) {
		t.Errorf("accent fill = %+v", accent.Fill)
	}
	if accent.Line.Scheme == nil || accent.Line.Scheme.Name != "tx1" || accent.Line.Width != 12700 {
		t.Errorf("accent line = %+v", accent.Line)
	}
	pic, ok := s.Shapes[1].(*deck.Embedded)
	if !ok {
		t.Fatalf("shape 1 = %T, want *deck.Embedded", s.Shapes[1])
	}
	if pic.Name != "Logo" || pic.Bounds != (deck.Rect{Left: 100, Top: 200, Width: 300, Height: 400}) {
		t.Errorf("picture = %q %+v", pic.Name, pic.Bounds)
	}
	if len(pic.Resources) != 2 || !pic.Resources[0].External || string(pic.Resources[1].Data) != "PNGDATA" ||
		pic.Resources[1].ContentType != "image/png" {
		t.Errorf("picture resources = %+v", pic.Resources)
	}
}

func TestWriteEmbeddedRenumbers(t *testing.T) {
	e := &deck.Embedded{Element: "grpSp", XML: `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="10" name="Group"/></p:nvGrpSpPr>` +
		`<p:sp><p:nvSpPr><p:cNvPr id='11' name="Box"/></p:nvSpPr></p:sp>` +
		`<p:cxnSp><p:nvCxnSpPr><p:cNvPr id="12" name="Line"/><p:cNvCxnSpPr><a:stCxn id="11" idx="0"/><a:endCxn id="99" idx="2"/></p:cNvCxnSpPr></p:nvCxnSpPr></p:cxnSp>` +
		`</p:grpSp>`}
	b := &xmlBuilder{}
	next := 5
	sr := newSlideRels("../slideLayouts/slideLayout1.xml", newMediaStore())
	if err := writeEmbedded(b, &next, e, sr); err != nil {
		t.Fatal(err)
	}
	got := b.sb.String()
	for _, want := range []string{`id="5" name="Group"`, `id='6' name="Box"`, `id="7" name="Line"`, `<a:stCxn id="6" idx="0"/>`} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %s in %s", want, got)
		}
	}
	if strings.Contains(got, "endCxn") {
		t.Errorf("connection to a shape outside the group kept: %s", got)
	}
	if next != 8 {
		t.Errorf("next id = %d, want 8", next)
	}
	if err := writeEmbedded(b, &next, e, nil); err == nil {
		t.Error("embedded shape written outside a slide")
	}
}

func TestMediaStoredOnce(t *testing.T) {
	sr := newSlideRels("../slideLayouts/slideLayout1.xml", newMediaStore())
	img := deck.Resource{RelID: "rId9", Type: nsRelationships + "/image", Data: []byte("same"), Ext: ".jpeg"}
	first, second := sr.add(img), sr.add(img)
	if first != "rId2" || second != "rId3" {
		t.Errorf("ids = %s %s", first, second)
	}
	if len(sr.media.parts) != 1 || sr.media.parts[0].contentType != "image/jpeg" {
		t.Fatalf("media parts = %+v", sr.media.parts)
	}
	if sr.rels[1].target != "../media/media1.jpeg" || sr.rels[2].target != sr.rels[1].target {
		t.Errorf("targets = %s %s", sr.rels[1].target, sr.rels[2].target)
	}
}

func TestCarriageReturnIsSoftBreak(t *testing.T) {
	d := deck.New()
	blank, _ := d.LayoutOfType(deck.LayoutBlank)
	s, _ := d.AddSlide(blank)
	tb := s.AddTextBox(deck.Box(1, 1, 4, 1))
	tb.TextFrame.First().AddRun("one\rtwo\r\nthree")

	var buf bytes.Buffer
	if err := Write(&buf, d); err != nil {
		t.Fatal(err)
	}
	back, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatal(err)
	}
	got := back.Slides[0].Shapes[0].(*deck.TextShape).TextFrame.Text()
	if got != "one\vtwo\vthree" {
		t.Errorf("text = %q, want soft breaks", got)
	}
}

func TestCleanText(t *testing.T) {
	if got := clean("e\u0301"); got != "\u00e9" {
		t.Errorf("clean did not compose: %q", got)
	}
	if got := clean("a\x00b\x1fc\ufffe"); got != "abc" {
		t.Errorf("clean kept characters XML cannot carry: %q", got)
	}
	if got := clean("tab\tnew\nline"); got != "tab\tnew\nline" {
		t.Errorf("clean dropped whitespace: %q", got)
	}
	if got := clean("a\rb"); got != "ab" {
		t.Errorf("clean kept a carriage return: %q", got)
	}
}

// TestPropertyTextRoundTrip checks that paragraph text and levels survive a
// write/read cycle.
func TestPropertyTextRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z0-9 ,.&<>"']{1,24}`), 1, 6).Draw(t, "lines")
		levels := rapid.SliceOfN(rapid.IntRange(0, deck.MaxLevel), len(lines), len(lines)).Draw(t, "levels")

		d := deck.New()
		l, _ := d.LayoutOfType(deck.LayoutTitleAndContent)
		s, _ := d.AddSlide(l)
		body, _ := s.Placeholder(deck.RoleBody)
		for i, line := range lines {
			p := body.TextFrame.First()
			if i > 0 {
				p = body.TextFrame.AddParagraph()
			}
			p.SetText(line)
			p.Level = levels[i]
		}

		var buf bytes.Buffer
		if err := Write(&buf, d); err != nil {
			t.Fatalf("Write: %v", err)
		}
		back, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		got, err := back.Slides[0].Placeholder(deck.RoleBody)
		if err != nil {
			t.Fatal(err)
		}
		if got.TextFrame.Text() != strings.Join(lines, "\n") {
			t.Fatalf("text %q, want %q", got.TextFrame.Text(), strings.Join(lines, "\n"))
		}
		for i, p := range got.TextFrame.Paragraphs {
			if p.Level != levels[i] {
				t.Fatalf("paragraph %d level %d, want %d", i, p.Level, levels[i])
			}
		}
	})
}

func unzip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}
	parts := make(map[string]string, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatal(err)
		}
		parts[f.Name] = string(b)
	}
	return parts
}

func zipOf(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(body))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
