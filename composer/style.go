package composer

import (
	"fmt"
	"strings"

	"slidecomposer/config"
	"slidecomposer/deck"
)

// ParagraphStyle is a set of optional paragraph and font attributes. Zero or
// nil fields leave the paragraph as it is.
type ParagraphStyle struct {
	Size        deck.Length
	Bold        *bool
	Italic      *bool
	Underline   *bool
	Color       *deck.Color
	Typeface    string
	Alignment   deck.Alignment
	SpaceBefore *deck.Length
	SpaceAfter  *deck.Length
}

// StyleParagraph applies st to every run of p and to its end-of-paragraph
// mark, then sets alignment and spacing.
func StyleParagraph(p *deck.Paragraph, st ParagraphStyle) {
	for _, r := range p.Runs {
		st.applyFont(&r.Font)
	}
	st.applyFont(&p.EndFont)
	if st.Alignment != deck.AlignInherit {
		p.Alignment = st.Alignment
	}
	if st.SpaceBefore != nil {
		p.SpaceBefore = deck.Ptr(*st.SpaceBefore)
	}
	if st.SpaceAfter != nil {
		p.SpaceAfter = deck.Ptr(*st.SpaceAfter)
	}
}

func (st ParagraphStyle) applyFont(f *deck.Font) {
	if st.Size > 0 {
		f.Size = st.Size
	}
	if st.Bold != nil {
		f.Bold = deck.Ptr(*st.Bold)
	}
	if st.Italic != nil {
		f.Italic = deck.Ptr(*st.Italic)
	}
	if st.Underline != nil {
		f.Underline = deck.Ptr(*st.Underline)
	}
	if st.Color != nil {
		f.Color = deck.Ptr(*st.Color)
	}
	if st.Typeface != "" {
		f.Typeface = st.Typeface
	}
}

// BulletItem is one paragraph of a bulleted slide.
type BulletItem struct {
	Text  string
	Level int
	Style *ParagraphStyle
}

// TextParagraph is one paragraph of a text block.
type TextParagraph struct {
	Text  string
	Level int
	Style ParagraphStyle
}

// TextBlock is a free text box. A zero Bounds takes the theme's default box
// for the block's role (title or content).
type TextBlock struct {
	Bounds     deck.Rect
	Paragraphs []TextParagraph
	WordWrap   *bool
	Margins    *deck.Insets
	Anchor     deck.Anchor
}

// Text is shorthand for a single-paragraph block.
func Text(s string, st ParagraphStyle) TextBlock {
	return TextBlock{Paragraphs: []TextParagraph{{Text: s, Style: st}}}
}

func (b TextBlock) empty() bool {
	for _, p := range b.Paragraphs {
		if p.Text != "" {
			return false
		}
	}
	return true
}

func (b TextBlock) checkLevels() error {
	for i, p := range b.Paragraphs {
		if err := deck.CheckLevel(p.Level); err != nil {
			return fmt.Errorf("paragraph %d: %w", i, err)
		}
	}
	return nil
}

// HeaderStyle styles a table's header row.
type HeaderStyle struct {
	Fill      deck.Color
	Font      deck.Color
	Bold      bool
	Alignment deck.Alignment
}

// DefaultHeaderStyle is the theme's header: filled, bold, centred.
func DefaultHeaderStyle(t config.Theme) HeaderStyle {
	return HeaderStyle{
		Fill:      t.Color(t.HeaderFill),
		Font:      t.Color(t.HeaderFont),
		Bold:      true,
		Alignment: deck.AlignCenter,
	}
}

// TableSpec describes a table slide: a header row followed by data rows.
// ColumnWidths is either empty (equal split of Bounds) or one per column.
type TableSpec struct {
	Title         string
	Header        []string
	Rows          [][]string
	ColumnWidths  []deck.Length
	Bounds        deck.Rect
	HeaderStyle   *HeaderStyle
	BodyAlignment deck.Alignment
}

func (t TableSpec) validate() error {
	cols := len(t.Header)
	if cols == 0 {
		return fmt.Errorf("%w: no header columns", ErrTableShape)
	}
	for i, row := range t.Rows {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d cells, header has %d", ErrTableShape, i, len(row), cols)
		}
	}
	if n := len(t.ColumnWidths); n != 0 && n != cols {
		return fmt.Errorf("%w: %d column widths for %d columns", ErrTableShape, n, cols)
	}
	return nil
}

// ShapeKind names a drawable shape.
type ShapeKind string

const (
	ShapeRectangle        ShapeKind = "rectangle"
	ShapeRoundedRectangle ShapeKind = "rounded_rectangle"
	ShapeOval             ShapeKind = "oval"
	ShapeTriangle         ShapeKind = "triangle"
	ShapeDiamond          ShapeKind = "diamond"
	ShapeRightArrow       ShapeKind = "right_arrow"
	ShapeLeftArrow        ShapeKind = "left_arrow"
	ShapeUpArrow          ShapeKind = "up_arrow"
	ShapeDownArrow        ShapeKind = "down_arrow"
	ShapePentagon         ShapeKind = "pentagon"
	ShapeHexagon          ShapeKind = "hexagon"
	ShapeChevron          ShapeKind = "chevron"
	ShapeStar             ShapeKind = "star"
)

var shapeGeometry = map[ShapeKind]deck.Geometry{
	ShapeRectangle:        deck.GeomRect,
	ShapeRoundedRectangle: deck.GeomRoundRect,
	ShapeOval:             deck.GeomEllipse,
	ShapeTriangle:         deck.GeomTriangle,
	ShapeDiamond:          deck.GeomDiamond,
	ShapeRightArrow:       deck.GeomRightArrow,
	ShapeLeftArrow:        deck.GeomLeftArrow,
	ShapeUpArrow:          deck.GeomUpArrow,
	ShapeDownArrow:        deck.GeomDownArrow,
	ShapePentagon:         deck.GeomPentagon,
	ShapeHexagon:          deck.GeomHexagon,
	ShapeChevron:          deck.GeomChevron,
	ShapeStar:             deck.GeomStar5,
}

// aliases accepted from plans and the command line
var shapeAliases = map[string]ShapeKind{
	"rect":    ShapeRectangle,
	"circle":  ShapeOval,
	"ellipse": ShapeOval,
	"arrow":   ShapeRightArrow,
}

// Geometry returns the preset geometry drawn for k.
func (k ShapeKind) Geometry() (deck.Geometry, error) {
	key := ShapeKind(strings.ToLower(strings.TrimSpace(string(k))))
	if alias, ok := shapeAliases[string(key)]; ok {
		key = alias
	}
	g, ok := shapeGeometry[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownShape, string(k))
	}
	return g, nil
}

// ShapeSpec is one shape on a shapes slide. A nil Fill and zero Line keep the
// preset shape style of the deck theme.
type ShapeSpec struct {
	Kind       ShapeKind
	Bounds     deck.Rect
	Fill       *deck.Color
	Line       deck.Line
	Label      string
	LabelStyle ParagraphStyle
}
