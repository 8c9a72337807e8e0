package config

import (
	"encoding/json"
	"fmt"
	"os"

	"slidecomposer/deck"
)

// Theme holds the named colours, font sizes and geometry the composer falls
// back to when an intent leaves them out. Colours are "RRGGBB", sizes are
// points and geometry is inches.
type Theme struct {
	TitleColor  string `json:"titleColor"`  // Title text
	BodyColor   string `json:"bodyColor"`   // Body text
	MutedColor  string `json:"mutedColor"`  // Secondary text (italic asides)
	AccentColor string `json:"accentColor"` // Links, underlined text, rectangles
	HeaderFill  string `json:"headerFill"`  // Table header background
	HeaderFont  string `json:"headerFont"`  // Table header text
	LabelColor  string `json:"labelColor"`  // Text on dark shapes
	OvalFill    string `json:"ovalFill"`
	ArrowFill   string `json:"arrowFill"`
	ShapeLine   string `json:"shapeLine"`
	Background  string `json:"background"` // Alternate slide background

	ShapeLineWidth float64 `json:"shapeLineWidth"`
	TitleSize      float64 `json:"titleSize"`
	HeadingSize    float64 `json:"headingSize"`
	LeadSize       float64 `json:"leadSize"`
	BodySize       float64 `json:"bodySize"`
	LeadSpacing    float64 `json:"leadSpacing"` // Space after a lead paragraph
	BodySpacing    float64 `json:"bodySpacing"` // Space after a body paragraph

	Left          float64 `json:"left"`
	TitleTop      float64 `json:"titleTop"`
	TitleHeight   float64 `json:"titleHeight"`
	ContentWidth  float64 `json:"contentWidth"`
	ContentTop    float64 `json:"contentTop"`
	ContentHeight float64 `json:"contentHeight"`
	TextInset     float64 `json:"textInset"`
}

// DefaultTheme returns the reference deck's styling.
func DefaultTheme() Theme {
	return Theme{
		TitleColor:  "003366",
		BodyColor:   "333333",
		MutedColor:  "666666",
		AccentColor: "0066CC",
		HeaderFill:  "003366",
		HeaderFont:  "FFFFFF",
		LabelColor:  "FFFFFF",
		OvalFill:    "FF9900",
		ArrowFill:   "00994C",
		ShapeLine:   "003366",
		Background:  "F0F0F0",

		ShapeLineWidth: 2,
		TitleSize:      44,
		HeadingSize:    36,
		LeadSize:       32,
		BodySize:       18,
		LeadSpacing:    12,
		BodySpacing:    6,

		Left:          1,
		TitleTop:      0.5,
		TitleHeight:   1,
		ContentWidth:  8,
		ContentTop:    2,
		ContentHeight: 4,
		TextInset:     0.1,
	}
}

// Color parses one of the theme's colour fields. An empty or malformed value
// yields black so a bad override never aborts composition; Validate reports it.
func (t Theme) Color(hex string) deck.Color {
	c, err := deck.ParseColor(hex)
	if err != nil {
		return deck.Black
	}
	return c
}

// TitleBounds is the standard title box on a blank slide.
func (t Theme) TitleBounds() deck.Rect {
	return deck.Box(t.Left, t.TitleTop, t.ContentWidth, t.TitleHeight)
}

// ContentBounds is the standard content area below the title.
func (t Theme) ContentBounds() deck.Rect {
	return deck.Box(t.Left, t.ContentTop, t.ContentWidth, t.ContentHeight)
}

// Validate checks every colour field and applies defaults to unset sizes.
func (t *Theme) Validate() error {
	def := DefaultTheme()
	colors := []struct {
		name string
		v    *string
		def  string
	}{
		{"titleColor", &t.TitleColor, def.TitleColor},
		{"bodyColor", &t.BodyColor, def.BodyColor},
		{"mutedColor", &t.MutedColor, def.MutedColor},
		{"accentColor", &t.AccentColor, def.AccentColor},
		{"headerFill", &t.HeaderFill, def.HeaderFill},
		{"headerFont", &t.HeaderFont, def.HeaderFont},
		{"labelColor", &t.LabelColor, def.LabelColor},
		{"ovalFill", &t.OvalFill, def.OvalFill},
		{"arrowFill", &t.ArrowFill, def.ArrowFill},
		{"shapeLine", &t.ShapeLine, def.ShapeLine},
		{"background", &t.Background, def.Background},
	}
	for _, c := range colors {
		if *c.v == "" {
			*c.v = c.def
			continue
		}
		if _, err := deck.ParseColor(*c.v); err != nil {
			return fmt.Errorf("theme %s: %w", c.name, err)
		}
	}

	sizes := []struct {
		v   *float64
		def float64
	}{
		{&t.ShapeLineWidth, def.ShapeLineWidth},
		{&t.TitleSize, def.TitleSize},
		{&t.HeadingSize, def.HeadingSize},
		{&t.LeadSize, def.LeadSize},
		{&t.BodySize, def.BodySize},
		{&t.LeadSpacing, def.LeadSpacing},
		{&t.BodySpacing, def.BodySpacing},
		{&t.TitleHeight, def.TitleHeight},
		{&t.ContentWidth, def.ContentWidth},
		{&t.ContentHeight, def.ContentHeight},
	}
	for _, s := range sizes {
		if *s.v <= 0 {
			*s.v = s.def
		}
	}
	return nil
}

// Config structure
type Config struct {
	Language   string `json:"language"`   // "en" or "zh"
	LogDir     string `json:"logDir"`     // Run logs; empty disables the file log
	OutputPath string `json:"outputPath"` // Default deck written by the demo
	Author     string `json:"author"`     // Creator recorded in document properties
	Theme      Theme  `json:"theme"`
}

// DefaultOutputPath is where the demo writes when nothing else is configured.
const DefaultOutputPath = "example_presentation.pptx"

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Language:   "en",
		OutputPath: DefaultOutputPath,
		Author:     "slidecomposer",
		Theme:      DefaultTheme(),
	}
}

// Load reads a JSON configuration file. A missing file is not an error: the
// defaults are returned instead. Fields the file omits keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate applies defaults for empty fields and checks the theme.
func (c *Config) Validate() error {
	if c.Language == "" {
		c.Language = "en"
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultOutputPath
	}
	return c.Theme.Validate()
}

// Save writes the configuration as indented JSON.
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
