package deck

import (
	"fmt"
	"time"
)

// Properties are the package's descriptive metadata.
type Properties struct {
	Title    string
	Subject  string
	Creator  string
	Keywords string
	// Modified is written only when set, keeping saves reproducible.
	Modified time.Time
}

// Deck is a presentation: slide size, layouts and ordered slides.
type Deck struct {
	Width      Length
	Height     Length
	Properties Properties
	Layouts    []*Layout
	Slides     []*Slide
}

// New returns an empty 4:3 deck carrying the default layouts.
func New() *Deck {
	return NewSized(DefaultWidth, DefaultHeight)
}

// NewSized returns an empty deck of the given slide size.
func NewSized(width, height Length) *Deck {
	return &Deck{
		Width:   width,
		Height:  height,
		Layouts: DefaultLayouts(width, height),
	}
}

// Skipped totals the shapes dropped on read across all slides.
func (d *Deck) Skipped() int {
	n := 0
	for _, s := range d.Slides {
		n += s.Skipped
	}
	return n
}

// Layout returns the layout called name.
func (d *Deck) Layout(name string) (*Layout, error) {
	for _, l := range d.Layouts {
		if l.Name == name {
			return l, nil
		}
	}
	return nil, &LayoutMissingError{Layout: name}
}

// LayoutOfType returns the first layout of type t.
func (d *Deck) LayoutOfType(t LayoutType) (*Layout, error) {
	for _, l := range d.Layouts {
		if l.Type == t {
			return l, nil
		}
	}
	return nil, &LayoutMissingError{Layout: string(t)}
}

// FindLayout returns the layout of type t when present, otherwise the first
// layout providing every role in need. Decks opened from other tools often
// carry custom layouts, so the fallback keeps lookups capability based.
func (d *Deck) FindLayout(t LayoutType, need ...Role) (*Layout, error) {
	if l, err := d.LayoutOfType(t); err == nil && l.Has(need...) {
		return l, nil
	}
	for _, l := range d.Layouts {
		if l.Has(need...) && (len(need) > 0 || onlyFooters(l)) {
			return l, nil
		}
	}
	if len(need) == 0 {
		return nil, &LayoutMissingError{Layout: string(t)}
	}
	return nil, &LayoutMissingError{Layout: string(t), Role: need[len(need)-1]}
}

func onlyFooters(l *Layout) bool {
	for _, ph := range l.Placeholders {
		switch ph.Role() {
		case RoleDate, RoleFooter, RoleSlideNumber:
		default:
			return false
		}
	}
	return true
}

// AddSlide appends a slide built from layout. Content placeholders are
// instantiated with the layout geometry; date, footer and slide number
// slots are left on the layout.
func (d *Deck) AddSlide(layout *Layout) (*Slide, error) {
	if layout == nil {
		return nil, fmt.Errorf("add slide: %w", &LayoutMissingError{})
	}
	s := &Slide{Layout: layout}
	for i := range layout.Placeholders {
		spec := layout.Placeholders[i]
		switch spec.Role() {
		case RoleDate, RoleFooter, RoleSlideNumber:
			continue
		}
		tf := NewTextFrame()
		tf.Vertical = spec.Vertical
		s.Shapes = append(s.Shapes, &TextShape{
			Kind:        KindPlaceholder,
			Name:        spec.Name,
			Bounds:      spec.Bounds,
			Geometry:    GeomRect,
			Placeholder: &spec,
			TextFrame:   tf,
		})
	}
	d.Slides = append(d.Slides, s)
	return s, nil
}

// SlideCount returns the number of slides.
func (d *Deck) SlideCount() int { return len(d.Slides) }
