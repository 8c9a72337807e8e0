package composer

import (
	"fmt"

	"slidecomposer/deck"
)

// Intent describes one slide to compose.
type Intent interface {
	// Step names the intent kind in errors and logs.
	Step() string
	compose(c *Composer) (*deck.Slide, error)
	background() *deck.Color
}

// StepError reports which intent of a Compose call failed. Index is 1-based.
type StepError struct {
	Index int
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("[step %d %s] %v", e.Index, e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Compose applies intents in order and stops at the first failure. Slides
// added before the failing intent stay in the deck.
func (c *Composer) Compose(intents ...Intent) error {
	for i, in := range intents {
		s, err := in.compose(c)
		if err != nil {
			return &StepError{Index: i + 1, Step: in.Step(), Err: err}
		}
		if bg := in.background(); bg != nil {
			c.SetBackground(s, *bg)
		}
		c.log(fmt.Sprintf("slide %d: %s", c.deck.SlideCount(), in.Step()))
	}
	return nil
}

// Background is embedded by every intent; a non-nil Color paints the slide.
type Background struct {
	Color *deck.Color
}

func (b Background) background() *deck.Color { return b.Color }

type TitleSlide struct {
	Title    string
	Subtitle string
	Background
}

func (TitleSlide) Step() string { return "title_slide" }

func (in TitleSlide) compose(c *Composer) (*deck.Slide, error) {
	return c.CreateTitleSlide(in.Title, in.Subtitle)
}

type BulletedSlide struct {
	Title string
	Items []BulletItem
	Background
}

func (BulletedSlide) Step() string { return "bulleted_slide" }

func (in BulletedSlide) compose(c *Composer) (*deck.Slide, error) {
	return c.CreateBulletedSlide(in.Title, in.Items)
}

type FreeformSlide struct {
	Title  TextBlock
	Blocks []TextBlock
	Background
}

func (FreeformSlide) Step() string { return "freeform_slide" }

func (in FreeformSlide) compose(c *Composer) (*deck.Slide, error) {
	return c.CreateFreeformSlide(in.Title, in.Blocks)
}

type TableSlide struct {
	TableSpec
	Background
}

func (TableSlide) Step() string { return "table_slide" }

func (in TableSlide) compose(c *Composer) (*deck.Slide, error) {
	return c.CreateTableSlide(in.TableSpec)
}

type ShapesSlide struct {
	Title  string
	Shapes []ShapeSpec
	Background
}

func (ShapesSlide) Step() string { return "shapes_slide" }

func (in ShapesSlide) compose(c *Composer) (*deck.Slide, error) {
	return c.CreateShapesSlide(in.Title, in.Shapes)
}

type SectionSlide struct {
	Title string
	Text  string
	Background
}

func (SectionSlide) Step() string { return "section_slide" }

func (in SectionSlide) compose(c *Composer) (*deck.Slide, error) {
	return c.CreateSectionSlide(in.Title, in.Text)
}

type TitleOnlySlide struct {
	Title string
	Background
}

func (TitleOnlySlide) Step() string { return "title_only_slide" }

func (in TitleOnlySlide) compose(c *Composer) (*deck.Slide, error) {
	return c.CreateTitleOnlySlide(in.Title)
}

// ContentSlide is a title with plain body text.
type ContentSlide struct {
	Title string
	Body  string
	Background
}

func (ContentSlide) Step() string { return "content_slide" }

func (in ContentSlide) compose(c *Composer) (*deck.Slide, error) {
	return c.AppendSlideWithContent(in.Title, in.Body)
}
