// Package plan decodes deck plans: YAML (or JSON) files listing the slides
// of a deck, turned into composer intents.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan reports a plan that cannot be decoded or has a bad slide.
var ErrInvalidPlan = errors.New("invalid plan")

// Plan is a deck description.
type Plan struct {
	Title    string  `yaml:"title"`
	Subject  string  `yaml:"subject"`
	Author   string  `yaml:"author"`
	Keywords string  `yaml:"keywords"`
	Output   string  `yaml:"output"`
	Slides   []Slide `yaml:"slides"`

	// dir resolves relative data sources; set by Load.
	dir string
}

// Slide is one entry of a plan. Type selects which fields apply.
type Slide struct {
	Type       string `yaml:"type"`
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle"`
	Text       string `yaml:"text"`
	Body       string `yaml:"body"`
	Background string `yaml:"background"`

	Items []Item `yaml:"items"`

	TitleBlock *Block  `yaml:"titleBlock"`
	Blocks     []Block `yaml:"blocks"`

	Header        []string   `yaml:"header"`
	Rows          [][]string `yaml:"rows"`
	Source        string     `yaml:"source"`
	Sheet         string     `yaml:"sheet"`
	MaxRows       int        `yaml:"maxRows"`
	ColumnWidths  []float64  `yaml:"columnWidths"`
	Bounds        *Bounds    `yaml:"bounds"`
	HeaderFill    string     `yaml:"headerFill"`
	HeaderColor   string     `yaml:"headerColor"`
	BodyAlignment string     `yaml:"bodyAlign"`

	Shapes []Shape `yaml:"shapes"`
}

// Item is one bullet.
type Item struct {
	Text  string `yaml:"text"`
	Level int    `yaml:"level"`
	Style *Style `yaml:"style"`
}

// UnmarshalYAML also accepts a bare string as a level-0 item.
func (i *Item) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		i.Text = node.Value
		return nil
	}
	type plain Item
	return node.Decode((*plain)(i))
}

// Block is a free text box.
type Block struct {
	Bounds     *Bounds     `yaml:"bounds"`
	Wrap       *bool       `yaml:"wrap"`
	Margin     *float64    `yaml:"margin"` // inches, all sides
	Anchor     string      `yaml:"anchor"`
	Paragraphs []Paragraph `yaml:"paragraphs"`
}

// Paragraph is one paragraph of a block.
type Paragraph struct {
	Text  string `yaml:"text"`
	Level int    `yaml:"level"`
	Style Style  `yaml:"style"`
}

// Style mirrors composer.ParagraphStyle with sizes in points and colours as
// "RRGGBB".
type Style struct {
	Size        float64  `yaml:"size"`
	Bold        *bool    `yaml:"bold"`
	Italic      *bool    `yaml:"italic"`
	Underline   *bool    `yaml:"underline"`
	Color       string   `yaml:"color"`
	Font        string   `yaml:"font"`
	Align       string   `yaml:"align"`
	SpaceBefore *float64 `yaml:"spaceBefore"`
	SpaceAfter  *float64 `yaml:"spaceAfter"`
}

// Bounds is a box in inches.
type Bounds struct {
	Left   float64 `yaml:"left"`
	Top    float64 `yaml:"top"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Shape is one auto shape.
type Shape struct {
	Kind      string  `yaml:"kind"`
	Bounds    Bounds  `yaml:"bounds"`
	Fill      string  `yaml:"fill"`
	LineColor string  `yaml:"lineColor"`
	LineWidth float64 `yaml:"lineWidth"` // points
	Label     string  `yaml:"label"`
	Style     Style   `yaml:"style"`
}

// Parse decodes a plan payload. JSON is accepted since it is valid YAML.
func Parse(data []byte) (*Plan, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: plan payload is empty", ErrInvalidPlan)
	}
	var p Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidPlan, err)
	}
	if len(p.Slides) == 0 {
		return nil, fmt.Errorf("%w: no slides", ErrInvalidPlan)
	}
	for i := range p.Slides {
		s := &p.Slides[i]
		s.Type = strings.ToLower(strings.TrimSpace(s.Type))
		if _, ok := slideKinds[s.Type]; !ok {
			return nil, fmt.Errorf("%w: slide %d: unknown type %q", ErrInvalidPlan, i+1, s.Type)
		}
	}
	return &p, nil
}

// Load reads a plan file. Relative table sources resolve against its
// directory.
func Load(path string) (*Plan, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("plan: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("plan: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: read %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan: %s: %w", path, err)
	}
	p.dir = filepath.Dir(path)
	return p, nil
}
