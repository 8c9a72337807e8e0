package pptx

import (
	"bytes"
	"crypto/sha256"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"slidecomposer/deck"
)

// keptElements are the shape tree children saved back verbatim when every
// relationship they use can travel with them.
var keptElements = map[string]bool{
	"pic":              true,
	"grpSp":            true,
	"cxnSp":            true,
	"graphicFrame":     true,
	"contentPart":      true,
	"AlternateContent": true,
}

// mediaRelTypes are the relationship types whose target parts are copied
// into the written package.
var mediaRelTypes = []string{"/image", "/media", "/video", "/audio", "/hdphoto"}

// standardPrefixes are bound on the root of every written part.
var standardPrefixes = map[string]string{"a": nsDrawingML, "r": nsRelationships, "p": nsPresentation}

var errNotKept = errors.New("element cannot be kept")

// rootNamespaces returns the prefix bindings declared on the root element of
// a part. The default namespace is stored under "".
func rootNamespaces(data []byte) map[string]string {
	ns := make(map[string]string)
	d := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := d.RawToken()
		if err != nil {
			return ns
		}
		if el, ok := tok.(xml.StartElement); ok {
			for _, a := range el.Attr {
				switch {
				case a.Name.Space == "xmlns":
					ns[a.Name.Local] = a.Value
				case a.Name.Space == "" && a.Name.Local == "xmlns":
					ns[""] = a.Value
				}
			}
			return ns
		}
	}
}

// fragmentInfo is what a raw scan of one kept element yields.
type fragmentInfo struct {
	name     string
	bounds   deck.Rect
	used     []string
	declared map[string]string
	relIDs   []string
}

func scanFragment(raw []byte, rootNS map[string]string) (*fragmentInfo, error) {
	fi := &fragmentInfo{declared: make(map[string]string)}
	use := func(prefix string) {
		if prefix != "xml" && prefix != "xmlns" && !slices.Contains(fi.used, prefix) {
			fi.used = append(fi.used, prefix)
		}
	}
	var (
		haveName, haveOff, haveExt bool
		relAttrs                   []xml.Attr
	)
	d := xml.NewDecoder(bytes.NewReader(raw))
	for {
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		use(el.Name.Space)
		for _, a := range el.Attr {
			switch {
			case a.Name.Space == "xmlns":
				fi.declared[a.Name.Local] = a.Value
			case a.Name.Space == "" && a.Name.Local == "xmlns":
				fi.declared[""] = a.Value
			case a.Name.Space != "":
				use(a.Name.Space)
				relAttrs = append(relAttrs, a)
			}
			// Markup compatibility attributes name prefixes in their values.
			if a.Name.Local == "Ignorable" || a.Name.Local == "Requires" {
				for _, p := range strings.Fields(a.Value) {
					use(p)
				}
			}
		}
		switch el.Name.Local {
		case "cNvPr":
			if !haveName {
				haveName = true
				fi.name = attr(el, "name")
			}
		case "off":
			if !haveOff {
				haveOff = true
				fi.bounds.Left = deck.Length(attrInt(el, "x"))
				fi.bounds.Top = deck.Length(attrInt(el, "y"))
			}
		case "ext":
			if !haveExt && attr(el, "cx") != "" {
				haveExt = true
				fi.bounds.Width = deck.Length(attrInt(el, "cx"))
				fi.bounds.Height = deck.Length(attrInt(el, "cy"))
			}
		}
	}
	for _, a := range relAttrs {
		uri, ok := fi.declared[a.Name.Space]
		if !ok {
			uri = rootNS[a.Name.Space]
		}
		if uri == nsRelationships && !slices.Contains(fi.relIDs, a.Value) {
			fi.relIDs = append(fi.relIDs, a.Value)
		}
	}
	return fi, nil
}

func attr(el xml.StartElement, local string) string {
	for _, a := range el.Attr {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

func attrInt(el xml.StartElement, local string) int64 {
	n, _ := strconv.ParseInt(attr(el, local), 10, 64)
	return n
}

// embedded turns the raw markup of a shape tree child into a shape that is
// written back unchanged. It returns errNotKept when the element depends on
// something that cannot travel with it.
func (pr *packageReader) embedded(slide, element string, raw []byte, rootNS map[string]string, rels []relationshipXML) (*deck.Embedded, error) {
	if !keptElements[element] {
		return nil, errNotKept
	}
	fi, err := scanFragment(raw, rootNS)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, slide, err)
	}

	var decls []string
	for _, prefix := range fi.used {
		if _, ok := fi.declared[prefix]; ok {
			continue
		}
		uri, ok := rootNS[prefix]
		if !ok {
			return nil, errNotKept
		}
		if standardPrefixes[prefix] == uri {
			continue
		}
		if prefix == "" {
			decls = append(decls, fmt.Sprintf(` xmlns="%s"`, attrEscaper.Replace(uri)))
		} else {
			decls = append(decls, fmt.Sprintf(` xmlns:%s="%s"`, prefix, attrEscaper.Replace(uri)))
		}
	}

	e := &deck.Embedded{
		Name:    fi.name,
		Bounds:  fi.bounds,
		Element: element,
		XML:     injectDeclarations(string(raw), decls),
	}
	for _, id := range fi.relIDs {
		res, err := pr.resource(slide, id, rels)
		if err != nil {
			return nil, err
		}
		e.Resources = append(e.Resources, res)
	}
	return e, nil
}

func (pr *packageReader) resource(slide, id string, rels []relationshipXML) (deck.Resource, error) {
	i := slices.IndexFunc(rels, func(r relationshipXML) bool { return r.ID == id })
	if i < 0 {
		return deck.Resource{}, errNotKept
	}
	r := rels[i]
	res := deck.Resource{RelID: r.ID, Type: r.Type, Target: r.Target}
	if r.TargetMode == "External" {
		res.External = true
		return res, nil
	}
	if !slices.ContainsFunc(mediaRelTypes, func(suffix string) bool { return strings.HasSuffix(r.Type, suffix) }) {
		return deck.Resource{}, errNotKept
	}
	name := partName(slide, r.Target)
	data, err := pr.data(name)
	if err != nil {
		return deck.Resource{}, errNotKept
	}
	res.Data = data
	res.Ext = strings.ToLower(path.Ext(name))
	res.ContentType = pr.contentType(name)
	return res, nil
}

// contentType looks name up in [Content_Types].xml, by override first and
// then by extension.
func (pr *packageReader) contentType(name string) string {
	if pr.types == nil {
		pr.types = &contentTypesDoc{}
		// A package without a readable type map still yields its parts.
		_ = pr.decode(contentTypesPart, pr.types)
	}
	for _, o := range pr.types.Overrides {
		if strings.TrimPrefix(o.PartName, "/") == name {
			return o.ContentType
		}
	}
	ext := strings.TrimPrefix(path.Ext(name), ".")
	for _, d := range pr.types.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType
		}
	}
	return ""
}

func injectDeclarations(raw string, decls []string) string {
	if len(decls) == 0 {
		return raw
	}
	end := strings.IndexAny(raw[1:], " \t\r\n/>") + 1
	if end <= 0 {
		return raw
	}
	return raw[:end] + strings.Join(decls, "") + raw[end:]
}

var (
	cNvPrIDPattern = regexp.MustCompile(`<(?:[\w.-]+:)?cNvPr\b[^>]*?\sid=["'](\d+)["']`)
	connPattern    = regexp.MustCompile(`<(?:[\w.-]+:)?(?:stCxn|endCxn)\b[^>]*/>`)
	idAttrPattern  = regexp.MustCompile(`\sid=["'](\d+)["']`)
	relAttrPattern = regexp.MustCompile(`\s[\w.-]+:[\w.-]+=["']([^"']*)["']`)
)

// replaceGroup rewrites the first capture group of every match of re.
func replaceGroup(re *regexp.Regexp, s string, f func(string) string) string {
	var sb strings.Builder
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		sb.WriteString(s[last:m[2]])
		sb.WriteString(f(s[m[2]:m[3]]))
		last = m[3]
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// slideRels hands out relationship ids for one slide part. rId1 is always
// the slide layout.
type slideRels struct {
	rels     []rel
	external []string
	media    *mediaStore
}

func newSlideRels(layoutTarget string, media *mediaStore) *slideRels {
	return &slideRels{rels: []rel{{"rId1", relSlideLayout, layoutTarget}}, media: media}
}

func (sr *slideRels) add(res deck.Resource) string {
	id := relID(len(sr.rels) + 1)
	target := res.Target
	if res.External {
		sr.external = append(sr.external, id)
	} else {
		target = "../media/" + path.Base(sr.media.add(res))
	}
	sr.rels = append(sr.rels, rel{id, res.Type, target})
	return id
}

// mediaStore names copied media parts ppt/media/mediaN.ext and stores equal
// content once.
type mediaStore struct {
	byHash map[[sha256.Size]byte]string
	parts  []part
}

func newMediaStore() *mediaStore {
	return &mediaStore{byHash: make(map[[sha256.Size]byte]string)}
}

func (m *mediaStore) add(res deck.Resource) string {
	sum := sha256.Sum256(res.Data)
	if name, ok := m.byHash[sum]; ok {
		return name
	}
	ext := res.Ext
	if ext == "" {
		ext = ".bin"
	}
	ct := res.ContentType
	if ct == "" {
		ct = mediaContentType(ext)
	}
	name := fmt.Sprintf("ppt/media/media%d%s", len(m.parts)+1, ext)
	m.byHash[sum] = name
	m.parts = append(m.parts, part{name: name, contentType: ct, data: res.Data})
	return name
}

func mediaContentType(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".bmp":
		return "image/bmp"
	case ".tif", ".tiff":
		return "image/tiff"
	case ".svg":
		return "image/svg+xml"
	case ".emf":
		return "image/x-emf"
	case ".wmf":
		return "image/x-wmf"
	case ".mp4":
		return "video/mp4"
	case ".mp3":
		return "audio/mpeg"
	}
	return "application/octet-stream"
}

// writeEmbedded writes a kept element with fresh shape ids and relationship
// ids. Connector ends that pointed outside the element are dropped.
func writeEmbedded(b *xmlBuilder, ids *int, e *deck.Embedded, sr *slideRels) error {
	if sr == nil {
		return fmt.Errorf("unsupported shape %T outside a slide", e)
	}
	renumbered := make(map[string]string)
	markup := replaceGroup(cNvPrIDPattern, e.XML, func(old string) string {
		id := itoa(*ids)
		*ids++
		renumbered[old] = id
		return id
	})
	markup = connPattern.ReplaceAllStringFunc(markup, func(m string) string {
		sub := idAttrPattern.FindStringSubmatchIndex(m)
		if sub == nil {
			return m
		}
		id, ok := renumbered[m[sub[2]:sub[3]]]
		if !ok {
			return ""
		}
		return m[:sub[2]] + id + m[sub[3]:]
	})

	relIDs := make(map[string]string, len(e.Resources))
	for _, res := range e.Resources {
		relIDs[res.RelID] = sr.add(res)
	}
	markup = replaceGroup(relAttrPattern, markup, func(old string) string {
		if id, ok := relIDs[old]; ok {
			return id
		}
		return old
	})
	b.raw(markup)
	return nil
}
