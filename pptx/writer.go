package pptx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"slidecomposer/deck"
)

const (
	masterID         = 2147483648
	firstSlideID     = 256
	notesWidth       = 6858000
	notesHeight      = 9144000
	masterPart       = "ppt/slideMasters/slideMaster1.xml"
	themePart        = "ppt/theme/theme1.xml"
	presentationPart = "ppt/presentation.xml"
	corePart         = "docProps/core.xml"
	appPart          = "docProps/app.xml"
	contentTypesPart = "[Content_Types].xml"
	applicationName  = "slidecomposer"
)

type part struct {
	name        string
	contentType string
	data        []byte
}

type rel struct {
	id, typ, target string
}

// Save writes d to path. The package is written to a temporary file in the
// same directory and renamed over path, so an existing file is replaced
// whole or not at all.
func Save(d *deck.Deck, path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".slidecomposer-*.pptx")
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, d); err != nil {
		tmp.Close()
		return err
	}
	_ = tmp.Chmod(0o644)
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrIO, path, err)
	}
	return nil
}

// Write serialises d as a .pptx package. Equal decks produce equal bytes.
func Write(w io.Writer, d *deck.Deck) error {
	parts, err := buildParts(d)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(w)
	for _, p := range parts {
		// Zero timestamps keep the archive reproducible.
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrIO, p.name, err)
		}
		if _, err := fw.Write(p.data); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrIO, p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("%w: finish archive: %w", ErrIO, err)
	}
	return nil
}

func buildParts(d *deck.Deck) ([]part, error) {
	if len(d.Layouts) == 0 {
		return nil, fmt.Errorf("write deck: %w", &deck.LayoutMissingError{Layout: "any"})
	}
	layoutIndex := make(map[*deck.Layout]int, len(d.Layouts))
	for i, l := range d.Layouts {
		layoutIndex[l] = i
	}

	var parts []part
	add := func(name, ct string, data []byte) {
		parts = append(parts, part{name: name, contentType: ct, data: data})
	}

	add("_rels/.rels", ctRels, relsXML([]rel{
		{"rId1", relOfficeDocument, presentationPart},
		{"rId2", relCoreProps, corePart},
		{"rId3", relAppProps, appPart},
	}))
	add(corePart, ctCore, coreXML(d.Properties))
	add(appPart, ctApp, appXML(len(d.Slides)))

	presRels := []rel{{"rId1", relSlideMaster, "slideMasters/slideMaster1.xml"}}
	for i := range d.Slides {
		presRels = append(presRels, rel{relID(i + 2), relSlide, fmt.Sprintf("slides/slide%d.xml", i+1)})
	}
	n := len(presRels)
	presRels = append(presRels,
		rel{relID(n + 1), relPresProps, "presProps.xml"},
		rel{relID(n + 2), relViewProps, "viewProps.xml"},
		rel{relID(n + 3), relTheme, "theme/theme1.xml"},
		rel{relID(n + 4), relTableStyles, "tableStyles.xml"},
	)
	add(presentationPart, ctPresentation, presentationXML(d))
	add("ppt/_rels/presentation.xml.rels", ctRels, relsXML(presRels))

	master, err := masterXML(d)
	if err != nil {
		return nil, err
	}
	add(masterPart, ctSlideMaster, master)
	masterRels := make([]rel, 0, len(d.Layouts)+1)
	for i := range d.Layouts {
		masterRels = append(masterRels, rel{relID(i + 1), relSlideLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", i+1)})
	}
	masterRels = append(masterRels, rel{relID(len(d.Layouts) + 1), relTheme, "../theme/theme1.xml"})
	add("ppt/slideMasters/_rels/slideMaster1.xml.rels", ctRels, relsXML(masterRels))

	for i, l := range d.Layouts {
		data, err := layoutXML(l)
		if err != nil {
			return nil, fmt.Errorf("layout %q: %w", l.Name, err)
		}
		add(fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", i+1), ctSlideLayout, data)
		add(fmt.Sprintf("ppt/slideLayouts/_rels/slideLayout%d.xml.rels", i+1), ctRels,
			relsXML([]rel{{"rId1", relSlideMaster, "../slideMasters/slideMaster1.xml"}}))
	}

	media := newMediaStore()
	for i, s := range d.Slides {
		li, ok := layoutIndex[s.Layout]
		if !ok {
			name := ""
			if s.Layout != nil {
				name = s.Layout.Name
			}
			return nil, fmt.Errorf("slide %d: %w", i+1, &deck.LayoutMissingError{Layout: name})
		}
		sr := newSlideRels(fmt.Sprintf("../slideLayouts/slideLayout%d.xml", li+1), media)
		data, err := slideXML(s, sr)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		add(fmt.Sprintf("ppt/slides/slide%d.xml", i+1), ctSlide, data)
		add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), ctRels, relsXML(sr.rels, sr.external...))
	}

	add(themePart, ctTheme, []byte(themeXML))
	add("ppt/presProps.xml", ctPresProps, []byte(presPropsXML))
	add("ppt/viewProps.xml", ctViewProps, []byte(viewPropsXML))
	add("ppt/tableStyles.xml", ctTableStyles, []byte(tableStylesXML))

	parts = append(parts, media.parts...)
	return append([]part{{name: contentTypesPart, data: contentTypesXML(parts)}}, parts...), nil
}

func relID(n int) string { return fmt.Sprintf("rId%d", n) }

// relsXML writes a relationships part; the ids in external point outside
// the package.
func relsXML(rels []rel, external ...string) []byte {
	b := newXML()
	b.start("Relationships", "xmlns", nsPackageRels)
	for _, r := range rels {
		mode := ""
		if slices.Contains(external, r.id) {
			mode = "External"
		}
		b.empty("Relationship", "Id", r.id, "Type", r.typ, "Target", r.target, "TargetMode", mode)
	}
	b.end("Relationships")
	return b.bytes()
}

func contentTypesXML(parts []part) []byte {
	b := newXML()
	b.start("Types", "xmlns", nsContentTypes)
	b.empty("Default", "Extension", "rels", "ContentType", ctRels)
	b.empty("Default", "Extension", "xml", "ContentType", ctXML)
	for _, p := range parts {
		if p.contentType == ctRels {
			continue
		}
		b.empty("Override", "PartName", "/"+p.name, "ContentType", p.contentType)
	}
	b.end("Types")
	return b.bytes()
}

func coreXML(p deck.Properties) []byte {
	b := newXML()
	b.start("cp:coreProperties",
		"xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		"xmlns:dc", "http://purl.org/dc/elements/1.1/",
		"xmlns:dcterms", "http://purl.org/dc/terms/",
		"xmlns:dcmitype", "http://purl.org/dc/dcmitype/",
		"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance",
	)
	b.text("dc:title", p.Title)
	b.text("dc:subject", p.Subject)
	b.text("dc:creator", p.Creator)
	b.text("cp:keywords", p.Keywords)
	if !p.Modified.IsZero() {
		b.start("dcterms:modified", "xsi:type", "dcterms:W3CDTF")
		b.raw(p.Modified.UTC().Format(time.RFC3339))
		b.end("dcterms:modified")
	}
	b.end("cp:coreProperties")
	return b.bytes()
}

func appXML(slides int) []byte {
	b := newXML()
	b.start("Properties",
		"xmlns", "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties",
		"xmlns:vt", "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes",
	)
	b.text("Application", applicationName)
	b.text("Slides", itoa(slides))
	b.end("Properties")
	return b.bytes()
}

func presentationXML(d *deck.Deck) []byte {
	b := newXML()
	b.start("p:presentation", append(pmlNamespaces, "saveSubsetFonts", "1")...)
	b.start("p:sldMasterIdLst")
	b.empty("p:sldMasterId", "id", fmt.Sprint(masterID), "r:id", "rId1")
	b.end("p:sldMasterIdLst")
	if len(d.Slides) > 0 {
		b.start("p:sldIdLst")
		for i := range d.Slides {
			b.empty("p:sldId", "id", itoa(firstSlideID+i), "r:id", relID(i+2))
		}
		b.end("p:sldIdLst")
	}
	b.empty("p:sldSz", "cx", emu(d.Width), "cy", emu(d.Height))
	b.empty("p:notesSz", "cx", itoa(notesWidth), "cy", itoa(notesHeight))
	b.end("p:presentation")
	return b.bytes()
}

func masterXML(d *deck.Deck) ([]byte, error) {
	b := newXML()
	b.start("p:sldMaster", pmlNamespaces...)
	b.start("p:cSld")
	b.raw(masterBackground)
	if err := writeShapeTree(b, placeholderShapes(deck.MasterPlaceholders(d.Width, d.Height)), nil); err != nil {
		return nil, err
	}
	b.end("p:cSld")
	b.raw(masterClrMap)
	b.start("p:sldLayoutIdLst")
	for i := range d.Layouts {
		b.empty("p:sldLayoutId", "id", fmt.Sprint(masterID+1+i), "r:id", relID(i+1))
	}
	b.end("p:sldLayoutIdLst")
	b.raw(masterTextStyles())
	b.end("p:sldMaster")
	return b.bytes(), nil
}

func layoutXML(l *deck.Layout) ([]byte, error) {
	b := newXML()
	typ := string(l.Type)
	if l.Type == deck.LayoutCustom {
		typ = ""
	}
	b.start("p:sldLayout", append(pmlNamespaces, "type", typ, "preserve", "1")...)
	b.start("p:cSld", "name", l.Name)
	if err := writeShapeTree(b, placeholderShapes(l.Placeholders), nil); err != nil {
		return nil, err
	}
	b.end("p:cSld")
	b.raw(masterClrMapping)
	b.end("p:sldLayout")
	return b.bytes(), nil
}

func slideXML(s *deck.Slide, sr *slideRels) ([]byte, error) {
	b := newXML()
	b.start("p:sld", pmlNamespaces...)
	b.start("p:cSld")
	if s.Background != nil {
		b.start("p:bg")
		b.start("p:bgPr")
		writeSolidFill(b, *s.Background)
		b.empty("a:effectLst")
		b.end("p:bgPr")
		b.end("p:bg")
	}
	if err := writeShapeTree(b, s.Shapes, sr); err != nil {
		return nil, err
	}
	b.end("p:cSld")
	b.raw(masterClrMapping)
	b.end("p:sld")
	return b.bytes(), nil
}

// placeholderShapes turns layout or master slots into empty placeholder
// shapes for the shape tree writer.
func placeholderShapes(specs []deck.PlaceholderSpec) []deck.Shape {
	shapes := make([]deck.Shape, len(specs))
	for i := range specs {
		spec := specs[i]
		tf := deck.NewTextFrame()
		tf.Vertical = spec.Vertical
		shapes[i] = &deck.TextShape{
			Kind:        deck.KindPlaceholder,
			Name:        spec.Name,
			Bounds:      spec.Bounds,
			Placeholder: &spec,
			TextFrame:   tf,
		}
	}
	return shapes
}
