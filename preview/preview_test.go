package preview

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/basicfont"

	"slidecomposer/composer"
	"slidecomposer/config"
	"slidecomposer/deck"
)

func composedDeck(t *testing.T) string {
	t.Helper()
	c := composer.New(config.DefaultTheme())
	err := c.Compose(
		composer.TitleSlide{Title: "Demo", Subtitle: "Subtitle"},
		composer.BulletedSlide{Title: "Overview", Items: []composer.BulletItem{
			{Text: "Point A"},
			{Text: strings.Repeat("long ", 20), Level: 1},
		}},
		composer.ContentSlide{Title: "Last", Body: "done"},
	)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "deck.pptx")
	if err := c.Save(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadOutline(t *testing.T) {
	path := composedDeck(t)
	o, err := ReadOutline(path, 2)
	if err != nil {
		t.Fatalf("ReadOutline: %v", err)
	}
	if o.Total != 3 || len(o.Slides) != 2 {
		t.Fatalf("outline has %d of %d slides", len(o.Slides), o.Total)
	}
	first := o.Slides[0]
	all := first.Title + " " + strings.Join(first.Texts, " ")
	if !strings.Contains(all, "Demo") || !strings.Contains(all, "Subtitle") {
		t.Errorf("slide 1 text = %q", all)
	}
	for _, text := range o.Slides[1].Texts {
		if n := len([]rune(text)); n > maxTextRunes {
			t.Errorf("text not shortened: %d runes", n)
		}
	}

	var buf bytes.Buffer
	if err := o.Write(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "1. ") || !strings.Contains(buf.String(), "... 1 more slides") {
		t.Errorf("outline output:\n%s", buf.String())
	}
}

func TestReadOutlineMissingFile(t *testing.T) {
	if _, err := ReadOutline(filepath.Join(t.TempDir(), "nope.pptx"), 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestShorten(t *testing.T) {
	if got := shorten("short"); got != "short" {
		t.Errorf("shorten = %q", got)
	}
	long := strings.Repeat("字", 70)
	if got := shorten(long); len([]rune(got)) != maxTextRunes {
		t.Errorf("shortened to %d runes", len([]rune(got)))
	}
}

func TestRenderThumbnails(t *testing.T) {
	path := composedDeck(t)
	dir := filepath.Join(t.TempDir(), "thumbs")
	n, err := RenderThumbnails(path, filepath.Join(dir, "slide_%d.png"), 320)
	if err != nil {
		t.Fatalf("RenderThumbnails: %v", err)
	}
	if n != 3 {
		t.Fatalf("rendered %d slides", n)
	}
	for i := 1; i <= n; i++ {
		f, err := os.Open(filepath.Join(dir, fmt.Sprintf("slide_%d.png", i)))
		if err != nil {
			t.Fatalf("slide %d: %v", i, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("slide %d: %v", i, err)
		}
		if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
			t.Errorf("slide %d is %dx%d, want 320x240", i, b.Dx(), b.Dy())
		}
	}
}

func TestRenderThumbnailsMissingDeck(t *testing.T) {
	_, err := RenderThumbnails(filepath.Join(t.TempDir(), "nope.pptx"), "slide_%d.png", 0)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestRenderSlideShapes(t *testing.T) {
	d := deck.New()
	layout, err := d.LayoutOfType(deck.LayoutBlank)
	if err != nil {
		t.Fatal(err)
	}
	s, err := d.AddSlide(layout)
	if err != nil {
		t.Fatal(err)
	}
	s.SetBackground(deck.RGB(10, 20, 30))
	box := s.AddAutoShape(deck.GeomRect, deck.Box(1, 1, 2, 2))
	box.Fill = deck.Solid(deck.RGB(200, 0, 0))
	s.AddAutoShape(deck.GeomEllipse, deck.Box(5, 1, 2, 2))
	tbl := s.AddTable(2, 2, deck.Box(1, 4, 4, 2))
	tbl.Cells[1][1].Fill = deck.Solid(deck.RGB(0, 200, 0))
	s.Shapes = append(s.Shapes, &deck.Embedded{Name: "Picture 9", Element: "pic", Bounds: deck.Box(7, 4, 2, 2)})

	// 10in wide at 320px is 32px per inch.
	img := RenderSlide(d, s, 320)
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("size = %dx%d", b.Dx(), b.Dy())
	}
	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"background", 2, 2, color.RGBA{10, 20, 30, 255}},
		{"solid fill", 64, 64, color.RGBA{200, 0, 0, 255}},
		{"inherited fill", 192, 64, color.RGBA{0x4F, 0x81, 0xBD, 255}},
		{"outside ellipse", 162, 34, color.RGBA{10, 20, 30, 255}},
		{"header cell", 64, 140, color.RGBA{0x4F, 0x81, 0xBD, 255}},
		{"cell fill", 128, 176, color.RGBA{0, 200, 0, 255}},
		{"kept picture", 230, 135, embeddedFill},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s at (%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderSlideText(t *testing.T) {
	d := deck.New()
	layout, err := d.LayoutOfType(deck.LayoutBlank)
	if err != nil {
		t.Fatal(err)
	}
	s, err := d.AddSlide(layout)
	if err != nil {
		t.Fatal(err)
	}
	tb := s.AddTextBox(deck.Box(0, 0, 5, 1))
	tb.TextFrame.SetText("Hello")
	tb.TextFrame.First().Runs[0].Font.Color = deck.Ptr(deck.RGB(255, 0, 0))

	img := RenderSlide(d, s, 320)
	inked := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 160; x++ {
			if c := img.RGBAAt(x, y); c.G < 128 {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatal("no text drawn")
	}
	if c := img.RGBAAt(300, 200); c != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("default background = %v", c)
	}
}

func TestWrap(t *testing.T) {
	// Face7x13 advances 7px per character.
	got := wrap(basicfont.Face7x13, "aaa bbb ccc", 50)
	want := []string{"aaa bbb", "ccc"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("wrap = %q, want %q", got, want)
	}
	if got := wrap(basicfont.Face7x13, "   ", 50); len(got) != 1 || got[0] != "" {
		t.Errorf("wrap blank = %q", got)
	}
}

func TestRenderThumbnailsRejectsPattern(t *testing.T) {
	if _, err := RenderThumbnails("deck.pptx", "slide.png", 0); err == nil {
		t.Fatal("expected pattern error")
	}
}
