package deck

import (
	"fmt"
	"strings"
)

// MaxLevel is the deepest paragraph indent level a text frame supports.
const MaxLevel = 8

// Alignment is horizontal paragraph alignment; the zero value inherits.
type Alignment string

const (
	AlignInherit Alignment = ""
	AlignLeft    Alignment = "l"
	AlignCenter  Alignment = "ctr"
	AlignRight   Alignment = "r"
	AlignJustify Alignment = "just"
)

// Anchor is vertical text placement inside a shape; the zero value inherits.
type Anchor string

const (
	AnchorInherit Anchor = ""
	AnchorTop     Anchor = "t"
	AnchorMiddle  Anchor = "ctr"
	AnchorBottom  Anchor = "b"
)

// Font holds run formatting. Nil or zero fields inherit from the layout.
type Font struct {
	Size      Length
	Bold      *bool
	Italic    *bool
	Underline *bool
	Color     *Color
	Typeface  string
}

// IsZero reports whether no attribute is set.
func (f Font) IsZero() bool {
	return f.Size == 0 && f.Bold == nil && f.Italic == nil && f.Underline == nil &&
		f.Color == nil && f.Typeface == ""
}

// Run is a span of text sharing one font.
type Run struct {
	Text string
	Font Font
}

// Paragraph is one line-broken block of runs.
type Paragraph struct {
	Runs        []*Run
	Level       int
	Alignment   Alignment
	SpaceBefore *Length
	SpaceAfter  *Length
	// EndFont styles the paragraph mark, which sizes empty paragraphs.
	EndFont Font
}

// Text concatenates the paragraph's runs.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// SetText replaces every run with a single run holding text. The font of the
// first existing run is kept so styling applied earlier survives.
func (p *Paragraph) SetText(text string) *Run {
	var font Font
	if len(p.Runs) > 0 {
		font = p.Runs[0].Font
	}
	r := &Run{Text: text, Font: font}
	p.Runs = []*Run{r}
	return r
}

// AddRun appends a run.
func (p *Paragraph) AddRun(text string) *Run {
	r := &Run{Text: text}
	p.Runs = append(p.Runs, r)
	return r
}

// SetLevel sets the indent level, rejecting values outside 0..MaxLevel.
func (p *Paragraph) SetLevel(level int) error {
	if err := CheckLevel(level); err != nil {
		return err
	}
	p.Level = level
	return nil
}

// CheckLevel validates an indent level.
func CheckLevel(level int) error {
	if level < 0 || level > MaxLevel {
		return fmt.Errorf("%w: %d not in 0..%d", ErrInvalidLevel, level, MaxLevel)
	}
	return nil
}

// Wrap is the text frame word-wrap mode; the zero value inherits.
type Wrap int

const (
	WrapInherit Wrap = iota
	WrapSquare
	WrapNone
)

// TextFrame is the text body of a shape or table cell.
type TextFrame struct {
	Paragraphs []*Paragraph
	Wrap       Wrap
	Margins    *Insets
	Anchor     Anchor
	Vertical   bool
}

// NewTextFrame returns a frame holding one empty paragraph.
func NewTextFrame() *TextFrame {
	return &TextFrame{Paragraphs: []*Paragraph{{}}}
}

// Text joins paragraph texts with newlines.
func (tf *TextFrame) Text() string {
	parts := make([]string, len(tf.Paragraphs))
	for i, p := range tf.Paragraphs {
		parts[i] = p.Text()
	}
	return strings.Join(parts, "\n")
}

// SetText replaces all paragraphs; each line of text becomes one paragraph.
// Lines end in "\n" or "\r\n". The formatting of the first paragraph carries
// over to the first line.
func (tf *TextFrame) SetText(text string) {
	first := tf.First()
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	first.SetText(lines[0])
	tf.Paragraphs = []*Paragraph{first}
	for _, line := range lines[1:] {
		tf.AddParagraph().AddRun(line)
	}
}

// First returns the first paragraph, creating it if the frame is empty.
func (tf *TextFrame) First() *Paragraph {
	if len(tf.Paragraphs) == 0 {
		tf.Paragraphs = []*Paragraph{{}}
	}
	return tf.Paragraphs[0]
}

// AddParagraph appends an empty paragraph.
func (tf *TextFrame) AddParagraph() *Paragraph {
	p := &Paragraph{}
	tf.Paragraphs = append(tf.Paragraphs, p)
	return p
}

// SetWordWrap switches wrapping on or off.
func (tf *TextFrame) SetWordWrap(on bool) {
	if on {
		tf.Wrap = WrapSquare
	} else {
		tf.Wrap = WrapNone
	}
}
