package plan

import (
	"fmt"
	"path/filepath"

	"slidecomposer/composer"
	"slidecomposer/config"
	"slidecomposer/datasource"
	"slidecomposer/deck"
)

var slideKinds = map[string]func(b *builder, s Slide, bg composer.Background) (composer.Intent, error){
	"title":      titleIntent,
	"title_only": titleOnlyIntent,
	"bullets":    bulletsIntent,
	"freeform":   freeformIntent,
	"table":      tableIntent,
	"shapes":     shapesIntent,
	"section":    sectionIntent,
	"content":    contentIntent,
}

type builder struct {
	dir   string
	theme config.Theme
}

// Intents converts every slide of the plan, in order. The first bad slide
// aborts with ErrInvalidPlan; table sources are read here. Partial header
// overrides start from the theme's header style.
func (p *Plan) Intents(theme config.Theme) ([]composer.Intent, error) {
	b := &builder{dir: p.dir, theme: theme}
	out := make([]composer.Intent, 0, len(p.Slides))
	for i, s := range p.Slides {
		build, ok := slideKinds[s.Type]
		if !ok {
			return nil, fmt.Errorf("%w: slide %d: unknown type %q", ErrInvalidPlan, i+1, s.Type)
		}
		var bg composer.Background
		if s.Background != "" {
			c, err := deck.ParseColor(s.Background)
			if err != nil {
				return nil, fmt.Errorf("%w: slide %d: background: %v", ErrInvalidPlan, i+1, err)
			}
			bg.Color = &c
		}
		in, err := build(b, s, bg)
		if err != nil {
			return nil, fmt.Errorf("%w: slide %d (%s): %v", ErrInvalidPlan, i+1, s.Type, err)
		}
		out = append(out, in)
	}
	return out, nil
}

// Properties returns the document properties the plan sets.
func (p *Plan) Properties() deck.Properties {
	return deck.Properties{Title: p.Title, Subject: p.Subject, Creator: p.Author, Keywords: p.Keywords}
}

func titleIntent(_ *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	return composer.TitleSlide{Title: s.Title, Subtitle: s.Subtitle, Background: bg}, nil
}

func titleOnlyIntent(_ *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	return composer.TitleOnlySlide{Title: s.Title, Background: bg}, nil
}

func sectionIntent(_ *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	return composer.SectionSlide{Title: s.Title, Text: s.Text, Background: bg}, nil
}

func contentIntent(_ *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	return composer.ContentSlide{Title: s.Title, Body: s.Body, Background: bg}, nil
}

func bulletsIntent(_ *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	items := make([]composer.BulletItem, len(s.Items))
	for i, it := range s.Items {
		items[i] = composer.BulletItem{Text: it.Text, Level: it.Level}
		if it.Style != nil {
			st, err := it.Style.paragraphStyle()
			if err != nil {
				return nil, fmt.Errorf("item %d: %v", i+1, err)
			}
			items[i].Style = &st
		}
	}
	return composer.BulletedSlide{Title: s.Title, Items: items, Background: bg}, nil
}

func freeformIntent(_ *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	in := composer.FreeformSlide{Background: bg}
	if s.TitleBlock != nil {
		b, err := s.TitleBlock.textBlock()
		if err != nil {
			return nil, fmt.Errorf("title block: %v", err)
		}
		in.Title = b
	} else if s.Title != "" {
		in.Title = composer.Text(s.Title, composer.ParagraphStyle{})
	}
	for i, blk := range s.Blocks {
		b, err := blk.textBlock()
		if err != nil {
			return nil, fmt.Errorf("block %d: %v", i+1, err)
		}
		in.Blocks = append(in.Blocks, b)
	}
	return in, nil
}

func tableIntent(b *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	spec := composer.TableSpec{Title: s.Title, Header: s.Header, Rows: s.Rows}
	if s.Source != "" {
		if len(s.Header) != 0 || len(s.Rows) != 0 {
			return nil, fmt.Errorf("source and inline rows are exclusive")
		}
		path := s.Source
		if !filepath.IsAbs(path) && b.dir != "" {
			path = filepath.Join(b.dir, path)
		}
		t, err := datasource.Load(path, datasource.Options{Sheet: s.Sheet, MaxRows: s.MaxRows})
		if err != nil {
			return nil, err
		}
		spec.Header, spec.Rows = t.Header, t.Rows
	}
	for _, w := range s.ColumnWidths {
		spec.ColumnWidths = append(spec.ColumnWidths, deck.Inches(w))
	}
	if s.Bounds != nil {
		spec.Bounds = s.Bounds.rect()
	}
	if s.HeaderFill != "" || s.HeaderColor != "" {
		hs := composer.DefaultHeaderStyle(b.theme)
		var err error
		if s.HeaderFill != "" {
			if hs.Fill, err = deck.ParseColor(s.HeaderFill); err != nil {
				return nil, fmt.Errorf("headerFill: %v", err)
			}
		}
		if s.HeaderColor != "" {
			if hs.Font, err = deck.ParseColor(s.HeaderColor); err != nil {
				return nil, fmt.Errorf("headerColor: %v", err)
			}
		}
		spec.HeaderStyle = &hs
	}
	align, err := alignment(s.BodyAlignment)
	if err != nil {
		return nil, err
	}
	spec.BodyAlignment = align
	return composer.TableSlide{TableSpec: spec, Background: bg}, nil
}

func shapesIntent(_ *builder, s Slide, bg composer.Background) (composer.Intent, error) {
	in := composer.ShapesSlide{Title: s.Title, Background: bg}
	for i, sh := range s.Shapes {
		spec := composer.ShapeSpec{Kind: composer.ShapeKind(sh.Kind), Bounds: sh.Bounds.rect(), Label: sh.Label}
		if sh.Fill != "" {
			c, err := deck.ParseColor(sh.Fill)
			if err != nil {
				return nil, fmt.Errorf("shape %d fill: %v", i+1, err)
			}
			spec.Fill = &c
		}
		if sh.LineColor != "" {
			c, err := deck.ParseColor(sh.LineColor)
			if err != nil {
				return nil, fmt.Errorf("shape %d line: %v", i+1, err)
			}
			spec.Line.Color = &c
		}
		if sh.LineWidth > 0 {
			spec.Line.Width = deck.Pt(sh.LineWidth)
		}
		st, err := sh.Style.paragraphStyle()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %v", i+1, err)
		}
		spec.LabelStyle = st
		in.Shapes = append(in.Shapes, spec)
	}
	return in, nil
}

func (b Block) textBlock() (composer.TextBlock, error) {
	tb := composer.TextBlock{WordWrap: b.Wrap}
	if b.Bounds != nil {
		tb.Bounds = b.Bounds.rect()
	}
	if b.Margin != nil {
		tb.Margins = deck.Ptr(deck.UniformInsets(deck.Inches(*b.Margin)))
	}
	switch b.Anchor {
	case "":
	case "top":
		tb.Anchor = deck.AnchorTop
	case "middle":
		tb.Anchor = deck.AnchorMiddle
	case "bottom":
		tb.Anchor = deck.AnchorBottom
	default:
		return tb, fmt.Errorf("unknown anchor %q", b.Anchor)
	}
	for i, p := range b.Paragraphs {
		st, err := p.Style.paragraphStyle()
		if err != nil {
			return tb, fmt.Errorf("paragraph %d: %v", i+1, err)
		}
		tb.Paragraphs = append(tb.Paragraphs, composer.TextParagraph{Text: p.Text, Level: p.Level, Style: st})
	}
	return tb, nil
}

func (s Style) paragraphStyle() (composer.ParagraphStyle, error) {
	st := composer.ParagraphStyle{
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Typeface:  s.Font,
	}
	if s.Size > 0 {
		st.Size = deck.Pt(s.Size)
	}
	if s.Color != "" {
		c, err := deck.ParseColor(s.Color)
		if err != nil {
			return st, err
		}
		st.Color = &c
	}
	align, err := alignment(s.Align)
	if err != nil {
		return st, err
	}
	st.Alignment = align
	if s.SpaceBefore != nil {
		st.SpaceBefore = deck.Ptr(deck.Pt(*s.SpaceBefore))
	}
	if s.SpaceAfter != nil {
		st.SpaceAfter = deck.Ptr(deck.Pt(*s.SpaceAfter))
	}
	return st, nil
}

func alignment(s string) (deck.Alignment, error) {
	switch s {
	case "":
		return deck.AlignInherit, nil
	case "left":
		return deck.AlignLeft, nil
	case "center", "centre":
		return deck.AlignCenter, nil
	case "right":
		return deck.AlignRight, nil
	case "justify":
		return deck.AlignJustify, nil
	}
	return deck.AlignInherit, fmt.Errorf("unknown alignment %q", s)
}

func (b Bounds) rect() deck.Rect {
	return deck.Box(b.Left, b.Top, b.Width, b.Height)
}
