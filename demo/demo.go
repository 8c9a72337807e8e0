// Package demo builds the reference presentation: one slide of every kind
// the composer supports, plus the open-modify-save flow on an existing deck.
package demo

import (
	"errors"
	"path/filepath"
	"strings"

	"slidecomposer/composer"
	"slidecomposer/config"
	"slidecomposer/deck"
	"slidecomposer/i18n"
)

// Step is one slide of the demonstration deck.
type Step struct {
	Name   string
	Intent composer.Intent
}

// Steps returns the ten demonstration slides in order, styled by th and
// worded by tr.
func Steps(th config.Theme, tr *i18n.Translator) []Step {
	on := deck.Ptr(true)
	color := func(hex string) *deck.Color { return deck.Ptr(th.Color(hex)) }
	body := composer.ParagraphStyle{Size: deck.Pt(th.BodySize), Color: color(th.BodyColor)}
	label := composer.ParagraphStyle{Size: deck.Pt(th.BodySize), Color: color(th.LabelColor)}
	row := func(size float64) *composer.ParagraphStyle {
		return &composer.ParagraphStyle{Size: deck.Pt(size)}
	}

	return []Step{
		{tr.T("demo.title"), composer.TitleSlide{
			Title:    tr.T("demo.title"),
			Subtitle: tr.T("demo.subtitle"),
		}},
		{tr.T("demo.overview.title"), composer.BulletedSlide{
			Title: tr.T("demo.overview.title"),
			Items: []composer.BulletItem{
				{Text: tr.T("demo.overview.point1")},
				{Text: tr.T("demo.overview.point2"), Level: 1},
				{Text: tr.T("demo.overview.point3")},
			},
		}},
		{tr.T("demo.custom.title"), composer.FreeformSlide{
			Title: composer.Text(tr.T("demo.custom.title"), composer.ParagraphStyle{
				Size:      deck.Pt(th.TitleSize),
				Bold:      on,
				Color:     color(th.TitleColor),
				Alignment: deck.AlignCenter,
			}),
			Blocks: []composer.TextBlock{{
				WordWrap: on,
				Paragraphs: []composer.TextParagraph{
					{Text: tr.T("demo.custom.body")},
					{Text: tr.T("demo.custom.more"), Style: body},
				},
			}},
		}},
		{tr.T("demo.table.title"), composer.TableSlide{TableSpec: composer.TableSpec{
			Title:  tr.T("demo.table.title"),
			Header: []string{tr.T("demo.table.item"), tr.T("demo.table.value"), tr.T("demo.table.note")},
			Rows: [][]string{
				{tr.T("demo.table.feature_a"), "85%", tr.T("demo.table.done")},
				{tr.T("demo.table.feature_b"), "60%", tr.T("demo.table.in_progress")},
				{tr.T("demo.table.feature_c"), "30%", tr.T("demo.table.planned")},
			},
			ColumnWidths:  []deck.Length{deck.Inches(2.5), deck.Inches(2.5), deck.Inches(3)},
			BodyAlignment: deck.AlignCenter,
		}}},
		{tr.T("demo.shapes.title"), composer.ShapesSlide{
			Title: tr.T("demo.shapes.title"),
			Shapes: []composer.ShapeSpec{
				{
					Kind:       composer.ShapeRectangle,
					Bounds:     deck.Box(1, 2, 2, 1.5),
					Fill:       color(th.AccentColor),
					Line:       deck.Line{Color: color(th.ShapeLine), Width: deck.Pt(th.ShapeLineWidth)},
					Label:      tr.T("demo.shapes.rectangle"),
					LabelStyle: label,
				},
				{
					Kind:       composer.ShapeOval,
					Bounds:     deck.Box(4, 2, 2, 1.5),
					Fill:       color(th.OvalFill),
					Label:      tr.T("demo.shapes.oval"),
					LabelStyle: label,
				},
				{
					Kind:       composer.ShapeRightArrow,
					Bounds:     deck.Box(7, 2, 2, 1.5),
					Fill:       color(th.ArrowFill),
					Label:      tr.T("demo.shapes.arrow"),
					LabelStyle: label,
				},
			},
		}},
		{tr.T("demo.image.title"), composer.TitleOnlySlide{Title: tr.T("demo.image.title")}},
		{tr.T("demo.list.title"), composer.BulletedSlide{
			Title: tr.T("demo.list.title"),
			Items: []composer.BulletItem{
				{Text: tr.T("demo.list.heading")},
				{Text: tr.T("demo.list.module_a"), Style: row(th.BodySize)},
				{Text: tr.T("demo.list.sub_a1"), Level: 1, Style: row(th.BodySize)},
				{Text: tr.T("demo.list.sub_a2"), Level: 1, Style: row(th.BodySize)},
				{Text: tr.T("demo.list.module_b"), Style: row(th.BodySize)},
				{Text: tr.T("demo.list.module_c"), Style: row(th.BodySize)},
			},
		}},
		{tr.T("demo.background.text"), composer.FreeformSlide{
			Blocks: []composer.TextBlock{{
				Bounds: deck.Box(1, 2, 8, 2),
				Paragraphs: []composer.TextParagraph{{
					Text:  tr.T("demo.background.text"),
					Style: composer.ParagraphStyle{Size: deck.Pt(th.HeadingSize), Bold: on, Alignment: deck.AlignCenter},
				}},
			}},
			Background: composer.Background{Color: color(th.Background)},
		}},
		{tr.T("demo.styled.heading"), composer.FreeformSlide{
			Blocks: []composer.TextBlock{{
				Bounds:   deck.Box(1, 1, 8, 5),
				WordWrap: on,
				Margins:  deck.Ptr(deck.UniformInsets(deck.Inches(th.TextInset))),
				Paragraphs: []composer.TextParagraph{
					{Text: tr.T("demo.styled.heading"), Style: composer.ParagraphStyle{
						Size:       deck.Pt(th.LeadSize),
						Bold:       on,
						Color:      color(th.TitleColor),
						Alignment:  deck.AlignCenter,
						SpaceAfter: deck.Ptr(deck.Pt(th.LeadSpacing)),
					}},
					{Text: tr.T("demo.styled.body"), Style: composer.ParagraphStyle{
						Size:       deck.Pt(th.BodySize),
						Color:      color(th.BodyColor),
						SpaceAfter: deck.Ptr(deck.Pt(th.BodySpacing)),
					}},
					{Text: tr.T("demo.styled.italic"), Style: composer.ParagraphStyle{
						Size:       deck.Pt(th.BodySize),
						Italic:     on,
						Color:      color(th.MutedColor),
						SpaceAfter: deck.Ptr(deck.Pt(th.BodySpacing)),
					}},
					{Text: tr.T("demo.styled.underline"), Style: composer.ParagraphStyle{
						Size:      deck.Pt(th.BodySize),
						Underline: on,
						Color:     color(th.AccentColor),
					}},
				},
			}},
		}},
		{tr.T("demo.chart.title"), composer.BulletedSlide{
			Title: tr.T("demo.chart.title"),
			Items: []composer.BulletItem{
				{Text: tr.T("demo.chart.note")},
				{Text: tr.T("demo.chart.options")},
				{Text: tr.T("demo.chart.option_image"), Level: 1},
				{Text: tr.T("demo.chart.option_lib"), Level: 1},
			},
		}},
	}
}

// Build composes the demonstration deck onto c, reporting each slide added
// to progress.
func Build(c *composer.Composer, tr *i18n.Translator, progress func(string)) error {
	if err := compose(c, Steps(c.Theme(), tr), tr, progress); err != nil {
		return err
	}
	d := c.Deck()
	if d.Properties.Title == "" {
		d.Properties.Title = tr.T("demo.title")
	}
	return nil
}

// compose adds steps in a single Compose call, so a failure carries the
// step's position in the whole run. Steps before the failing one are still
// reported.
func compose(c *composer.Composer, steps []Step, tr *i18n.Translator, progress func(string)) error {
	if progress == nil {
		progress = func(string) {}
	}
	intents := make([]composer.Intent, len(steps))
	for i, step := range steps {
		intents[i] = step.Intent
	}
	err := c.Compose(intents...)
	added := len(steps)
	if err != nil {
		added = 0
		var se *composer.StepError
		if errors.As(err, &se) {
			added = se.Index - 1
		}
	}
	for i := range added {
		progress(tr.T("progress.slide", i+1, steps[i].Name))
	}
	return err
}

// ModifiedPath names the output of Modify: "deck.pptx" becomes
// "deck_modified.pptx" next to it.
func ModifiedPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_modified.pptx"
}

// Modify opens the deck at path, retitles its first slide when that slide has
// a title, appends a content slide and saves the result to ModifiedPath. A
// deck without slides is saved unchanged. Shapes the saved copy will lack
// are reported to warn.
func Modify(path string, th config.Theme, tr *i18n.Translator, warn func(string)) (string, error) {
	c, err := composer.Open(path, th)
	if err != nil {
		return "", err
	}
	d := c.Deck()
	if n := d.Skipped(); n > 0 && warn != nil {
		warn(tr.T("warning.skipped", n))
	}
	if d.SlideCount() > 0 {
		if _, err := d.Slides[0].Placeholder(deck.RoleTitle); err == nil {
			c.SetTitle(d.Slides[0], tr.T("modify.title"))
		}
		if _, err := c.AppendSlideWithContent(tr.T("modify.slide"), tr.T("modify.slide_body")); err != nil {
			return "", err
		}
	}
	out := ModifiedPath(path)
	if err := c.Save(out); err != nil {
		return "", err
	}
	return out, nil
}
