package deck

import "fmt"

// Shape is anything placed on a slide.
type Shape interface {
	ShapeName() string
	ShapeBounds() Rect
}

// ShapeKind distinguishes the flavours of TextShape.
type ShapeKind int

const (
	KindPlaceholder ShapeKind = iota
	KindTextBox
	KindAutoShape
)

// Geometry is an OOXML preset geometry name (prstGeom@prst).
type Geometry string

const (
	GeomRect       Geometry = "rect"
	GeomRoundRect  Geometry = "roundRect"
	GeomEllipse    Geometry = "ellipse"
	GeomTriangle   Geometry = "triangle"
	GeomDiamond    Geometry = "diamond"
	GeomRightArrow Geometry = "rightArrow"
	GeomLeftArrow  Geometry = "leftArrow"
	GeomUpArrow    Geometry = "upArrow"
	GeomDownArrow  Geometry = "downArrow"
	GeomPentagon   Geometry = "pentagon"
	GeomHexagon    Geometry = "hexagon"
	GeomChevron    Geometry = "chevron"
	GeomStar5      Geometry = "star5"
)

// FillKind selects how a shape interior is painted.
type FillKind int

const (
	FillInherit FillKind = iota
	FillNone
	FillSolid
	// FillScheme paints with a theme colour slot.
	FillScheme
)

// Fill is a shape or cell fill. Scheme is set only for FillScheme.
type Fill struct {
	Kind   FillKind
	Color  Color
	Scheme *SchemeColor
}

// SchemeColor names a theme colour slot ("accent2", "tx1") with the colour
// transforms applied to it (lumMod, tint, alpha...) in document order.
type SchemeColor struct {
	Name string
	Mods []ColorMod
}

// ColorMod is one colour transform and its value.
type ColorMod struct {
	Name string
	Val  string
}

// Themed returns a fill with the theme colour slot name.
func Themed(sc SchemeColor) Fill { return Fill{Kind: FillScheme, Scheme: &sc} }

// Solid returns a solid fill.
func Solid(c Color) Fill { return Fill{Kind: FillSolid, Color: c} }

// NoFill returns an explicit transparent fill.
func NoFill() Fill { return Fill{Kind: FillNone} }

// Line is a shape outline. A nil Color with zero Width inherits. Scheme,
// when set, takes the place of Color.
type Line struct {
	Color  *Color
	Scheme *SchemeColor
	Width  Length
	None   bool
}

// IsZero reports whether the outline inherits entirely.
func (l Line) IsZero() bool {
	return l.Color == nil && l.Scheme == nil && l.Width == 0 && !l.None
}

// TextShape is a placeholder, text box or preset auto shape; all of them
// carry a text frame.
type TextShape struct {
	Kind        ShapeKind
	Name        string
	Bounds      Rect
	Geometry    Geometry
	Placeholder *PlaceholderSpec
	Fill        Fill
	Line        Line
	TextFrame   *TextFrame
}

func (s *TextShape) ShapeName() string { return s.Name }
func (s *TextShape) ShapeBounds() Rect { return s.Bounds }

// Role returns the placeholder role, or "" for free shapes.
func (s *TextShape) Role() Role {
	if s.Placeholder == nil {
		return ""
	}
	return s.Placeholder.Role()
}

// Table is a grid of cells inside a graphic frame.
type Table struct {
	Name       string
	Bounds     Rect
	ColWidths  []Length
	RowHeights []Length
	Cells      [][]*Cell
	FirstRow   bool
	BandRow    bool
}

// Cell is one table cell.
type Cell struct {
	TextFrame *TextFrame
	Fill      Fill
}

// NewTable builds a rows x cols table filling bounds, with equal column
// widths and row heights.
func NewTable(rows, cols int, bounds Rect) *Table {
	t := &Table{
		Bounds:     bounds,
		ColWidths:  make([]Length, cols),
		RowHeights: make([]Length, rows),
		Cells:      make([][]*Cell, rows),
		FirstRow:   true,
		BandRow:    true,
	}
	for c := range t.ColWidths {
		t.ColWidths[c] = bounds.Width / Length(cols)
	}
	for r := range t.Cells {
		t.RowHeights[r] = bounds.Height / Length(rows)
		t.Cells[r] = make([]*Cell, cols)
		for c := range t.Cells[r] {
			t.Cells[r][c] = &Cell{TextFrame: NewTextFrame()}
		}
	}
	return t
}

func (t *Table) ShapeName() string { return t.Name }
func (t *Table) ShapeBounds() Rect { return t.Bounds }

// Rows returns the row count.
func (t *Table) Rows() int { return len(t.Cells) }

// Cols returns the column count.
func (t *Table) Cols() int { return len(t.ColWidths) }

// Cell returns the cell at row r, column c.
func (t *Table) Cell(r, c int) (*Cell, error) {
	if r < 0 || r >= t.Rows() || c < 0 || c >= t.Cols() {
		return nil, fmt.Errorf("%w: cell (%d,%d) in %dx%d table", ErrOutOfRange, r, c, t.Rows(), t.Cols())
	}
	return t.Cells[r][c], nil
}

// SetColumnWidth sets one column width and keeps the frame width in step.
func (t *Table) SetColumnWidth(c int, w Length) error {
	if c < 0 || c >= t.Cols() {
		return fmt.Errorf("%w: column %d of %d", ErrOutOfRange, c, t.Cols())
	}
	t.ColWidths[c] = w
	var total Length
	for _, cw := range t.ColWidths {
		total += cw
	}
	t.Bounds.Width = total
	return nil
}

// SetText replaces the cell text.
func (c *Cell) SetText(text string) { c.TextFrame.SetText(text) }

// Text returns the cell text.
func (c *Cell) Text() string { return c.TextFrame.Text() }

// Embedded is a shape the model keeps verbatim from an opened package:
// pictures, groups and connectors. XML is the element's markup with the
// prefixes a, p and r bound to the standard PresentationML namespaces.
type Embedded struct {
	Name   string
	Bounds Rect
	// Element is the local name of the kept element (pic, grpSp, cxnSp).
	Element   string
	XML       string
	Resources []Resource
}

func (e *Embedded) ShapeName() string { return e.Name }
func (e *Embedded) ShapeBounds() Rect { return e.Bounds }

// Resource is a relationship an Embedded shape refers to by RelID. Internal
// resources carry the part bytes; external ones only their target.
type Resource struct {
	RelID       string
	Type        string
	External    bool
	Target      string
	Ext         string
	ContentType string
	Data        []byte
}
