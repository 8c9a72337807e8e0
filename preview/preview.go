// Package preview checks saved decks: a text outline read back through GoPPT
// for quick inspection, and wireframe PNG thumbnails of every slide.
package preview

import (
	"fmt"
	"io"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"
)

const maxTextRunes = 60

// SlideOutline is the text found on one slide. Title is the first non-empty
// paragraph.
type SlideOutline struct {
	Number int
	Title  string
	Texts  []string
}

// Outline lists the text of a deck's slides.
type Outline struct {
	Slides []SlideOutline
	Total  int
}

type paragraphHolder interface {
	GetParagraphs() []*ppt.Paragraph
}

// ReadOutline extracts up to maxSlides slides from the deck at path; 0 reads
// them all. Long lines are shortened.
func ReadOutline(path string, maxSlides int) (*Outline, error) {
	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PPT file: %w", err)
	}

	slides := pres.GetAllSlides()
	out := &Outline{Total: len(slides)}
	n := len(slides)
	if maxSlides > 0 && maxSlides < n {
		n = maxSlides
	}
	for i := 0; i < n; i++ {
		so := SlideOutline{Number: i + 1}
		for _, shape := range slides[i].GetShapes() {
			holder, ok := shape.(paragraphHolder)
			if !ok {
				continue
			}
			for _, para := range holder.GetParagraphs() {
				text := strings.TrimSpace(paragraphText(para))
				if text == "" {
					continue
				}
				if so.Title == "" {
					so.Title = text
					continue
				}
				so.Texts = append(so.Texts, shorten(text))
			}
		}
		out.Slides = append(out.Slides, so)
	}
	return out, nil
}

func paragraphText(p *ppt.Paragraph) string {
	var b strings.Builder
	for _, elem := range p.GetElements() {
		switch e := elem.(type) {
		case *ppt.TextRun:
			b.WriteString(e.GetText())
		case *ppt.BreakElement:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func shorten(text string) string {
	if r := []rune(text); len(r) > maxTextRunes {
		return string(r[:maxTextRunes-2]) + ".."
	}
	return text
}

// Write prints the outline, one indented line per text.
func (o *Outline) Write(w io.Writer) error {
	for _, s := range o.Slides {
		if _, err := fmt.Fprintf(w, "%d. %s\n", s.Number, s.Title); err != nil {
			return err
		}
		for _, t := range s.Texts {
			if _, err := fmt.Fprintf(w, "   - %s\n", t); err != nil {
				return err
			}
		}
	}
	if len(o.Slides) < o.Total {
		_, err := fmt.Fprintf(w, "... %d more slides\n", o.Total-len(o.Slides))
		return err
	}
	return nil
}
