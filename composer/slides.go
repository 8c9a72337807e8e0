package composer

import (
	"fmt"
	"strings"

	"slidecomposer/deck"
)

// Every Create* method validates its input and resolves a layout before it
// adds the slide, so a failed call leaves the deck unchanged.

// CreateTitleSlide appends a title slide.
func (c *Composer) CreateTitleSlide(title, subtitle string) (*deck.Slide, error) {
	l, err := c.deck.FindLayout(deck.LayoutTitle, deck.RoleTitle, deck.RoleSubtitle)
	if err != nil {
		return nil, err
	}
	s, err := c.deck.AddSlide(l)
	if err != nil {
		return nil, err
	}
	c.fill(s, deck.RoleTitle, title)
	c.fill(s, deck.RoleSubtitle, subtitle)
	return s, nil
}

// CreateBulletedSlide appends a title-and-content slide with one body
// paragraph per item, in order, at the item's indent level. An empty item
// list leaves a single empty paragraph.
func (c *Composer) CreateBulletedSlide(title string, items []BulletItem) (*deck.Slide, error) {
	for i, it := range items {
		if err := deck.CheckLevel(it.Level); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	l, err := c.deck.FindLayout(deck.LayoutTitleAndContent, deck.RoleTitle, deck.RoleBody)
	if err != nil {
		return nil, err
	}
	s, err := c.deck.AddSlide(l)
	if err != nil {
		return nil, err
	}
	c.fill(s, deck.RoleTitle, title)

	body, _ := s.Placeholder(deck.RoleBody)
	tf := body.TextFrame
	for i, it := range items {
		p := tf.First()
		if i > 0 {
			p = tf.AddParagraph()
		}
		p.SetText(softBreaks(it.Text))
		p.Level = it.Level
		if it.Style != nil {
			StyleParagraph(p, *it.Style)
		}
	}
	return s, nil
}

// CreateFreeformSlide appends a blank slide holding free text boxes: an
// optional title block and any number of content blocks.
func (c *Composer) CreateFreeformSlide(title TextBlock, blocks []TextBlock) (*deck.Slide, error) {
	if err := title.checkLevels(); err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}
	for i, b := range blocks {
		if err := b.checkLevels(); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}
	s, err := c.addBlank()
	if err != nil {
		return nil, err
	}
	if !title.empty() {
		c.addTextBlock(s, title, c.theme.TitleBounds())
	}
	for _, b := range blocks {
		c.addTextBlock(s, b, c.theme.ContentBounds())
	}
	return s, nil
}

// CreateTableSlide appends a title-and-content slide whose body placeholder is
// replaced by a table of len(Rows)+1 rows.
func (c *Composer) CreateTableSlide(spec TableSpec) (*deck.Slide, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}
	l, err := c.deck.FindLayout(deck.LayoutTitleAndContent, deck.RoleTitle)
	if err != nil {
		return nil, err
	}
	s, err := c.deck.AddSlide(l)
	if err != nil {
		return nil, err
	}
	c.fill(s, deck.RoleTitle, spec.Title)
	if body, err := s.Placeholder(deck.RoleBody); err == nil {
		s.RemoveShape(body)
	}

	bounds := spec.Bounds
	if bounds.IsZero() {
		bounds = c.theme.ContentBounds()
	}
	cols := len(spec.Header)
	t := s.AddTable(len(spec.Rows)+1, cols, bounds)
	for j, w := range spec.ColumnWidths {
		t.SetColumnWidth(j, w)
	}

	hs := DefaultHeaderStyle(c.theme)
	if spec.HeaderStyle != nil {
		hs = *spec.HeaderStyle
	}
	header := ParagraphStyle{Bold: deck.Ptr(hs.Bold), Color: deck.Ptr(hs.Font), Alignment: hs.Alignment}
	for j, text := range spec.Header {
		cell := t.Cells[0][j]
		cell.SetText(text)
		cell.Fill = deck.Solid(hs.Fill)
		for _, p := range cell.TextFrame.Paragraphs {
			StyleParagraph(p, header)
		}
	}
	for i, row := range spec.Rows {
		for j, text := range row {
			cell := t.Cells[i+1][j]
			cell.SetText(text)
			for _, p := range cell.TextFrame.Paragraphs {
				p.Alignment = spec.BodyAlignment
			}
		}
	}
	return s, nil
}

// CreateShapesSlide appends a blank slide with a heading box and one auto
// shape per spec. Labels are centred unless their style says otherwise.
func (c *Composer) CreateShapesSlide(title string, shapes []ShapeSpec) (*deck.Slide, error) {
	geoms := make([]deck.Geometry, len(shapes))
	for i, sp := range shapes {
		g, err := sp.Kind.Geometry()
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", i, err)
		}
		geoms[i] = g
	}
	s, err := c.addBlank()
	if err != nil {
		return nil, err
	}
	if title != "" {
		c.addTextBlock(s, Text(title, ParagraphStyle{
			Size: deck.Pt(c.theme.HeadingSize),
			Bold: deck.Ptr(true),
		}), c.theme.TitleBounds())
	}
	for i, sp := range shapes {
		sh := s.AddAutoShape(geoms[i], sp.Bounds)
		if sp.Fill != nil {
			sh.Fill = deck.Solid(*sp.Fill)
		}
		sh.Line = sp.Line
		if sp.Label == "" {
			continue
		}
		sh.TextFrame.SetText(sp.Label)
		st := sp.LabelStyle
		if st.Alignment == deck.AlignInherit {
			st.Alignment = deck.AlignCenter
		}
		for _, p := range sh.TextFrame.Paragraphs {
			StyleParagraph(p, st)
		}
	}
	return s, nil
}

// CreateSectionSlide appends a section header slide.
func (c *Composer) CreateSectionSlide(title, text string) (*deck.Slide, error) {
	l, err := c.deck.FindLayout(deck.LayoutSectionHeader, deck.RoleTitle, deck.RoleBody)
	if err != nil {
		return nil, err
	}
	s, err := c.deck.AddSlide(l)
	if err != nil {
		return nil, err
	}
	c.fill(s, deck.RoleTitle, title)
	c.fill(s, deck.RoleBody, text)
	return s, nil
}

// CreateTitleOnlySlide appends a slide with just a title placeholder.
func (c *Composer) CreateTitleOnlySlide(title string) (*deck.Slide, error) {
	l, err := c.deck.FindLayout(deck.LayoutTitleOnly, deck.RoleTitle)
	if err != nil {
		return nil, err
	}
	s, err := c.deck.AddSlide(l)
	if err != nil {
		return nil, err
	}
	c.fill(s, deck.RoleTitle, title)
	return s, nil
}

// AppendSlideWithContent appends a title-and-content slide with plain body
// text; each line becomes a paragraph.
func (c *Composer) AppendSlideWithContent(title, body string) (*deck.Slide, error) {
	l, err := c.deck.FindLayout(deck.LayoutTitleAndContent, deck.RoleTitle, deck.RoleBody)
	if err != nil {
		return nil, err
	}
	s, err := c.deck.AddSlide(l)
	if err != nil {
		return nil, err
	}
	c.fill(s, deck.RoleTitle, title)
	c.fill(s, deck.RoleBody, body)
	return s, nil
}

func (c *Composer) addBlank() (*deck.Slide, error) {
	l, err := c.deck.FindLayout(deck.LayoutBlank)
	if err != nil {
		return nil, err
	}
	return c.deck.AddSlide(l)
}

// fill sets placeholder text; the layout was already checked for role.
func (c *Composer) fill(s *deck.Slide, role deck.Role, text string) {
	if ph, err := s.Placeholder(role); err == nil {
		ph.TextFrame.SetText(text)
	}
}

func (c *Composer) addTextBlock(s *deck.Slide, b TextBlock, fallback deck.Rect) *deck.TextShape {
	bounds := b.Bounds
	if bounds.IsZero() {
		bounds = fallback
	}
	box := s.AddTextBox(bounds)
	tf := box.TextFrame
	if b.WordWrap != nil {
		tf.SetWordWrap(*b.WordWrap)
	}
	if b.Margins != nil {
		tf.Margins = deck.Ptr(*b.Margins)
	}
	tf.Anchor = b.Anchor
	for i, bp := range b.Paragraphs {
		p := tf.First()
		if i > 0 {
			p = tf.AddParagraph()
		}
		p.SetText(softBreaks(bp.Text))
		p.Level = bp.Level
		StyleParagraph(p, bp.Style)
	}
	return box
}

// softBreaks keeps a multi-line paragraph in one paragraph as line breaks.
func softBreaks(text string) string {
	return strings.ReplaceAll(text, "\n", "\v")
}
