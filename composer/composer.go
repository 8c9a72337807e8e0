// Package composer turns slide intents into deck content. Every free-form
// element is placed at caller-supplied absolute geometry; omitted geometry
// falls back to the named constants of config.Theme. There is no flow layout.
package composer

import (
	"errors"
	"fmt"

	"slidecomposer/config"
	"slidecomposer/deck"
	"slidecomposer/pptx"
)

var (
	// ErrTableShape reports ragged rows or a column width count that does not
	// match the header.
	ErrTableShape = errors.New("table shape mismatch")
	// ErrUnknownShape reports a ShapeSpec kind with no preset geometry.
	ErrUnknownShape = errors.New("unknown shape kind")
)

// Composer builds slides on one deck.
type Composer struct {
	deck  *deck.Deck
	theme config.Theme
	log   func(string)
}

// New starts a fresh deck with the default layouts.
func New(theme config.Theme) *Composer {
	return Wrap(deck.New(), theme)
}

// Open loads an existing deck for modification. Missing files fail with
// pptx.ErrFileNotFound, unreadable ones with pptx.ErrFormat.
func Open(path string, theme config.Theme) (*Composer, error) {
	d, err := pptx.Open(path)
	if err != nil {
		return nil, err
	}
	return Wrap(d, theme), nil
}

// Wrap composes onto an in-memory deck.
func Wrap(d *deck.Deck, theme config.Theme) *Composer {
	return &Composer{deck: d, theme: theme, log: func(string) {}}
}

// SetLogger routes per-step progress messages to fn.
func (c *Composer) SetLogger(fn func(string)) {
	if fn == nil {
		fn = func(string) {}
	}
	c.log = fn
}

// Deck returns the deck being composed.
func (c *Composer) Deck() *deck.Deck { return c.deck }

// Theme returns the styling defaults in use.
func (c *Composer) Theme() config.Theme { return c.theme }

// Save writes the deck to path, replacing any existing file. Unwritable
// targets fail with pptx.ErrIO.
func (c *Composer) Save(path string) error {
	if err := pptx.Save(c.deck, path); err != nil {
		return err
	}
	c.log(fmt.Sprintf("saved %d slides to %s", c.deck.SlideCount(), path))
	return nil
}

// LayoutInfo names one layout of the deck by position.
type LayoutInfo struct {
	Index int
	Name  string
}

// Layouts lists the deck's layouts in order.
func (c *Composer) Layouts() []LayoutInfo {
	out := make([]LayoutInfo, len(c.deck.Layouts))
	for i, l := range c.deck.Layouts {
		out[i] = LayoutInfo{Index: i, Name: l.Name}
	}
	return out
}

// SetTitle replaces the text of the slide's title placeholder.
func (c *Composer) SetTitle(s *deck.Slide, text string) error {
	ph, err := s.Placeholder(deck.RoleTitle)
	if err != nil {
		return err
	}
	ph.TextFrame.SetText(text)
	return nil
}

// SetBackground paints the slide background. It does not touch content.
func (c *Composer) SetBackground(s *deck.Slide, color deck.Color) {
	s.SetBackground(color)
}
