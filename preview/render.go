package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"slidecomposer/deck"
	"slidecomposer/pptx"
)

// DefaultWidth is the thumbnail width used when none is given.
const DefaultWidth = 960

// Colours of the built-in theme, used where a shape inherits or names a
// theme slot.
var themeColors = map[string]deck.Color{
	"dk1":     deck.Black,
	"tx1":     deck.Black,
	"lt1":     deck.White,
	"bg1":     deck.White,
	"dk2":     deck.MustColor("1F497D"),
	"tx2":     deck.MustColor("1F497D"),
	"lt2":     deck.MustColor("EEECE1"),
	"bg2":     deck.MustColor("EEECE1"),
	"accent1": deck.MustColor("4F81BD"),
	"accent2": deck.MustColor("C0504D"),
	"accent3": deck.MustColor("9BBB59"),
	"accent4": deck.MustColor("8064A2"),
	"accent5": deck.MustColor("4BACC6"),
	"accent6": deck.MustColor("F79646"),
	"hlink":   deck.MustColor("0000FF"),
}

var (
	embeddedFill = color.RGBA{0xE6, 0xE6, 0xE6, 0xFF}
	gridColor    = color.RGBA{0x80, 0x80, 0x80, 0xFF}
)

// RenderThumbnails writes one PNG per slide of the deck at path. pattern
// takes the 1-based slide number, e.g. "slide_%d.png". Slides are drawn as
// wireframes: shapes with their fills and outlines, table grids, and text in
// a fixed bitmap face. Kept pictures and groups appear as labelled boxes. It
// returns the number of slides written.
func RenderThumbnails(path, pattern string, width int) (int, error) {
	if !strings.Contains(pattern, "%d") {
		return 0, fmt.Errorf("pattern %q has no %%d verb", pattern)
	}
	if width <= 0 {
		width = DefaultWidth
	}
	d, err := pptx.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open PPT file: %w", err)
	}
	for i, s := range d.Slides {
		img := RenderSlide(d, s, width)
		if err := savePNG(img, fmt.Sprintf(pattern, i+1)); err != nil {
			return i, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return len(d.Slides), nil
}

func savePNG(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	encodeErr := png.Encode(f, img)
	closeErr := f.Close()
	if encodeErr != nil {
		return encodeErr
	}
	return closeErr
}

// RenderSlide draws s at the given pixel width; the height keeps the deck's
// aspect ratio.
func RenderSlide(d *deck.Deck, s *deck.Slide, width int) *image.RGBA {
	scale := float64(width) / float64(d.Width)
	height := max(1, int(math.Round(float64(d.Height)*scale)))
	r := &renderer{img: image.NewRGBA(image.Rect(0, 0, width, height)), scale: scale}

	bg := deck.White
	if s.Background != nil {
		bg = *s.Background
	}
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(rgba(bg)), image.Point{}, draw.Src)

	for _, sh := range s.Shapes {
		switch v := sh.(type) {
		case *deck.TextShape:
			r.textShape(v)
		case *deck.Table:
			r.table(v)
		case *deck.Embedded:
			r.embedded(v)
		}
	}
	return r.img
}

type renderer struct {
	img   *image.RGBA
	scale float64
	z     *vector.Rasterizer
}

type point struct{ x, y float64 }

func (r *renderer) px(l deck.Length) float64 { return float64(l) * r.scale }

func (r *renderer) rect(b deck.Rect) image.Rectangle {
	x0, y0 := int(math.Round(r.px(b.Left))), int(math.Round(r.px(b.Top)))
	return image.Rect(x0, y0, x0+int(math.Round(r.px(b.Width))), y0+int(math.Round(r.px(b.Height))))
}

func (r *renderer) textShape(s *deck.TextShape) {
	box := r.rect(s.Bounds)
	if box.Empty() {
		return
	}
	auto := s.Kind == deck.KindAutoShape
	outline := geometry(s.Geometry, box)

	if c, ok := fillColor(s.Fill, auto); ok {
		r.fillPolygon(outline, c)
	}
	if c, w, ok := r.lineColor(s.Line, auto); ok {
		r.strokePolygon(outline, w, c)
	}
	text := color.RGBA{A: 0xFF}
	if auto {
		text = rgba(themeColors["lt1"])
	}
	if s.TextFrame != nil {
		r.text(s.TextFrame, box, text)
	}
}

func (r *renderer) table(t *deck.Table) {
	box := r.rect(t.Bounds)
	x := []int{box.Min.X}
	for _, w := range t.ColWidths {
		x = append(x, x[len(x)-1]+int(math.Round(r.px(w))))
	}
	y := []int{box.Min.Y}
	for _, h := range t.RowHeights {
		y = append(y, y[len(y)-1]+int(math.Round(r.px(h))))
	}
	for ri, row := range t.Cells {
		if ri+1 >= len(y) {
			break
		}
		for ci, cell := range row {
			if ci+1 >= len(x) || cell == nil {
				continue
			}
			cr := image.Rect(x[ci], y[ri], x[ci+1], y[ri+1])
			fill, ok := fillColor(cell.Fill, false)
			if !ok && cell.Fill.Kind == deck.FillInherit && ri == 0 && t.FirstRow {
				fill, ok = rgba(themeColors["accent1"]), true
			}
			if ok {
				draw.Draw(r.img, cr, image.NewUniform(fill), image.Point{}, draw.Over)
			}
			r.strokeRect(cr, gridColor)
			text := color.RGBA{A: 0xFF}
			if ri == 0 && t.FirstRow {
				text = rgba(themeColors["lt1"])
			}
			if cell.TextFrame != nil {
				r.text(cell.TextFrame, cr, text)
			}
		}
	}
}

func (r *renderer) embedded(e *deck.Embedded) {
	box := r.rect(e.Bounds)
	if box.Empty() {
		return
	}
	draw.Draw(r.img, box, image.NewUniform(embeddedFill), image.Point{}, draw.Over)
	r.strokeRect(box, gridColor)
	label := e.Name
	if label == "" {
		label = e.Element
	}
	tf := deck.NewTextFrame()
	tf.First().SetText(label)
	tf.First().Alignment = deck.AlignCenter
	tf.Anchor = deck.AnchorMiddle
	r.text(tf, box, gridColor)
}

// fillColor resolves a fill. Auto shapes that inherit take the theme's
// first accent, as the shape style written for them does.
func fillColor(f deck.Fill, auto bool) (color.RGBA, bool) {
	switch f.Kind {
	case deck.FillSolid:
		return rgba(f.Color), true
	case deck.FillScheme:
		if f.Scheme != nil {
			return schemeRGBA(*f.Scheme), true
		}
	case deck.FillInherit:
		if auto {
			return rgba(themeColors["accent1"]), true
		}
	}
	return color.RGBA{}, false
}

func (r *renderer) lineColor(l deck.Line, auto bool) (color.RGBA, float64, bool) {
	w := max(1, r.px(l.Width))
	switch {
	case l.None:
		return color.RGBA{}, 0, false
	case l.Color != nil:
		return rgba(*l.Color), w, true
	case l.Scheme != nil:
		return schemeRGBA(*l.Scheme), w, true
	case auto:
		return shade(rgba(themeColors["accent1"])), w, true
	}
	return color.RGBA{}, 0, false
}

// schemeRGBA looks up the slot colour; transforms are not applied.
func schemeRGBA(sc deck.SchemeColor) color.RGBA {
	if c, ok := themeColors[sc.Name]; ok {
		return rgba(c)
	}
	return rgba(deck.Black)
}

func rgba(c deck.Color) color.RGBA { return color.RGBA{c.R, c.G, c.B, 0xFF} }

func shade(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}

// geometry returns the outline of a preset shape inside box. Presets without
// an outline here are drawn as their bounding rectangle.
func geometry(g deck.Geometry, box image.Rectangle) []point {
	x0, y0 := float64(box.Min.X), float64(box.Min.Y)
	w, h := float64(box.Dx()), float64(box.Dy())
	x1, y1 := x0+w, y0+h
	cx, cy := x0+w/2, y0+h/2
	switch g {
	case deck.GeomEllipse:
		const steps = 48
		pts := make([]point, steps)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / steps
			pts[i] = point{cx + w/2*math.Cos(a), cy + h/2*math.Sin(a)}
		}
		return pts
	case deck.GeomTriangle:
		return []point{{cx, y0}, {x1, y1}, {x0, y1}}
	case deck.GeomDiamond:
		return []point{{cx, y0}, {x1, cy}, {cx, y1}, {x0, cy}}
	case deck.GeomRightArrow:
		head := x1 - w*0.35
		return []point{{x0, cy - h*0.2}, {head, cy - h*0.2}, {head, y0}, {x1, cy}, {head, y1}, {head, cy + h*0.2}, {x0, cy + h*0.2}}
	case deck.GeomLeftArrow:
		head := x0 + w*0.35
		return []point{{x1, cy - h*0.2}, {head, cy - h*0.2}, {head, y0}, {x0, cy}, {head, y1}, {head, cy + h*0.2}, {x1, cy + h*0.2}}
	case deck.GeomUpArrow:
		head := y0 + h*0.35
		return []point{{cx - w*0.2, y1}, {cx - w*0.2, head}, {x0, head}, {cx, y0}, {x1, head}, {cx + w*0.2, head}, {cx + w*0.2, y1}}
	case deck.GeomDownArrow:
		head := y1 - h*0.35
		return []point{{cx - w*0.2, y0}, {cx - w*0.2, head}, {x0, head}, {cx, y1}, {x1, head}, {cx + w*0.2, head}, {cx + w*0.2, y0}}
	case deck.GeomPentagon:
		return regular(5, cx, cy, w, h)
	case deck.GeomHexagon:
		return []point{{x0 + w*0.25, y0}, {x1 - w*0.25, y0}, {x1, cy}, {x1 - w*0.25, y1}, {x0 + w*0.25, y1}, {x0, cy}}
	case deck.GeomChevron:
		return []point{{x0, y0}, {x1 - w*0.3, y0}, {x1, cy}, {x1 - w*0.3, y1}, {x0, y1}, {x0 + w*0.3, cy}}
	}
	return []point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func regular(n int, cx, cy, w, h float64) []point {
	pts := make([]point, n)
	for i := range pts {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pts[i] = point{cx + w/2*math.Cos(a), cy + h/2*math.Sin(a)}
	}
	return pts
}

func (r *renderer) fillPolygon(pts []point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	b := r.img.Bounds()
	if r.z == nil {
		r.z = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		r.z.Reset(b.Dx(), b.Dy())
	}
	z := r.z
	z.MoveTo(float32(pts[0].x), float32(pts[0].y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.x), float32(p.y))
	}
	z.ClosePath()
	z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

// strokePolygon draws each closed edge as a quad of the given width.
func (r *renderer) strokePolygon(pts []point, width float64, c color.RGBA) {
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		dx, dy := q.x-p.x, q.y-p.y
		n := math.Hypot(dx, dy)
		if n == 0 {
			continue
		}
		ox, oy := -dy/n*width/2, dx/n*width/2
		r.fillPolygon([]point{{p.x + ox, p.y + oy}, {q.x + ox, q.y + oy}, {q.x - ox, q.y - oy}, {p.x - ox, p.y - oy}}, c)
	}
}

func (r *renderer) strokeRect(box image.Rectangle, c color.RGBA) {
	u := image.NewUniform(c)
	draw.Draw(r.img, image.Rect(box.Min.X, box.Min.Y, box.Max.X, box.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(r.img, image.Rect(box.Min.X, box.Max.Y-1, box.Max.X, box.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(r.img, image.Rect(box.Min.X, box.Min.Y, box.Min.X+1, box.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(r.img, image.Rect(box.Max.X-1, box.Min.Y, box.Max.X, box.Max.Y), u, image.Point{}, draw.Src)
}

type textLine struct {
	text   string
	indent int
	align  deck.Alignment
	color  color.RGBA
}

// text lays paragraphs out inside box in the bitmap face, wrapping on
// spaces unless wrapping is off, and clips to box.
func (r *renderer) text(tf *deck.TextFrame, box image.Rectangle, fallback color.RGBA) {
	face := basicfont.Face7x13
	m := deck.Insets{Left: 91440, Top: 45720, Right: 91440, Bottom: 45720}
	if tf.Margins != nil {
		m = *tf.Margins
	}
	inner := image.Rect(
		box.Min.X+int(r.px(m.Left)), box.Min.Y+int(r.px(m.Top)),
		box.Max.X-int(r.px(m.Right)), box.Max.Y-int(r.px(m.Bottom)),
	)
	if inner.Empty() {
		return
	}
	indentStep := font.MeasureString(face, "  ").Ceil()

	var lines []textLine
	for _, p := range tf.Paragraphs {
		c := fallback
		for _, run := range p.Runs {
			if run.Font.Color != nil {
				c = rgba(*run.Font.Color)
				break
			}
		}
		indent := p.Level * indentStep
		for _, seg := range strings.Split(p.Text(), "\v") {
			wrapped := []string{seg}
			if tf.Wrap != deck.WrapNone {
				wrapped = wrap(face, seg, inner.Dx()-indent)
			}
			for _, l := range wrapped {
				lines = append(lines, textLine{l, indent, p.Alignment, c})
			}
		}
	}

	lh := face.Metrics().Height.Ceil()
	y := inner.Min.Y
	switch tf.Anchor {
	case deck.AnchorMiddle:
		y += (inner.Dy() - lh*len(lines)) / 2
	case deck.AnchorBottom:
		y = inner.Max.Y - lh*len(lines)
	}
	dst := r.img.SubImage(inner.Intersect(r.img.Bounds())).(*image.RGBA)
	ascent := face.Metrics().Ascent.Ceil()
	for _, l := range lines {
		adv := font.MeasureString(face, l.text).Ceil()
		x := inner.Min.X + l.indent
		switch l.align {
		case deck.AlignCenter:
			x = inner.Min.X + (inner.Dx()-adv)/2
		case deck.AlignRight:
			x = inner.Max.X - adv
		}
		d := font.Drawer{Dst: dst, Src: image.NewUniform(l.color), Face: face, Dot: fixed.P(x, y+ascent)}
		d.DrawString(l.text)
		y += lh
	}
}

// wrap breaks s on spaces into lines no wider than width pixels. A word
// wider than the line stands alone.
func wrap(face font.Face, s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if font.MeasureString(face, cur+" "+w).Ceil() > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(lines, cur)
}
