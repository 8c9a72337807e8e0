package deck

import "fmt"

// Slide is one page of a deck.
type Slide struct {
	Layout     *Layout
	Shapes     []Shape
	Background *Color
	// Skipped counts shapes read from a package that could be neither
	// modelled nor kept as Embedded; saving drops them.
	Skipped int
}

// Placeholder returns the placeholder shape providing role.
func (s *Slide) Placeholder(role Role) (*TextShape, error) {
	for _, sh := range s.Shapes {
		if ts, ok := sh.(*TextShape); ok && ts.Kind == KindPlaceholder && ts.Role() == role {
			return ts, nil
		}
	}
	name := ""
	if s.Layout != nil {
		name = s.Layout.Name
	}
	return nil, &LayoutMissingError{Layout: name, Role: role}
}

// Title returns the title placeholder text, or "" when there is none.
func (s *Slide) Title() string {
	ph, err := s.Placeholder(RoleTitle)
	if err != nil {
		return ""
	}
	return ph.TextFrame.Text()
}

// AddTextBox places a free text box.
func (s *Slide) AddTextBox(bounds Rect) *TextShape {
	ts := &TextShape{
		Kind:      KindTextBox,
		Name:      fmt.Sprintf("TextBox %d", len(s.Shapes)+1),
		Bounds:    bounds,
		Geometry:  GeomRect,
		Fill:      NoFill(),
		TextFrame: NewTextFrame(),
	}
	ts.TextFrame.Wrap = WrapNone
	s.Shapes = append(s.Shapes, ts)
	return ts
}

// AddAutoShape places a preset geometry shape.
func (s *Slide) AddAutoShape(geom Geometry, bounds Rect) *TextShape {
	ts := &TextShape{
		Kind:      KindAutoShape,
		Name:      fmt.Sprintf("%s %d", geom, len(s.Shapes)+1),
		Bounds:    bounds,
		Geometry:  geom,
		TextFrame: NewTextFrame(),
	}
	ts.TextFrame.Anchor = AnchorMiddle
	s.Shapes = append(s.Shapes, ts)
	return ts
}

// AddTable places a rows x cols table.
func (s *Slide) AddTable(rows, cols int, bounds Rect) *Table {
	t := NewTable(rows, cols, bounds)
	t.Name = fmt.Sprintf("Table %d", len(s.Shapes)+1)
	s.Shapes = append(s.Shapes, t)
	return t
}

// RemoveShape drops sh from the slide. It reports whether sh was present.
func (s *Slide) RemoveShape(sh Shape) bool {
	for i, cur := range s.Shapes {
		if cur == sh {
			s.Shapes = append(s.Shapes[:i], s.Shapes[i+1:]...)
			return true
		}
	}
	return false
}

// SetBackground paints the slide background with a solid color.
func (s *Slide) SetBackground(c Color) {
	s.Background = &c
}

// Tables returns the slide's tables in z-order.
func (s *Slide) Tables() []*Table {
	var out []*Table
	for _, sh := range s.Shapes {
		if t, ok := sh.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// TextShapes returns the slide's text-bearing shapes in z-order.
func (s *Slide) TextShapes() []*TextShape {
	var out []*TextShape
	for _, sh := range s.Shapes {
		if ts, ok := sh.(*TextShape); ok {
			out = append(out, ts)
		}
	}
	return out
}
