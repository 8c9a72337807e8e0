// Package deck is the in-memory slide deck model: layouts with role-addressed
// placeholders, slides, shapes, text frames, tables and their styling.
package deck

import "math"

// Length is an absolute distance in EMU (English Metric Units).
type Length int64

const (
	EMUPerInch  = 914400
	EMUPerCm    = 360000
	EMUPerPoint = 12700
)

// EMU returns a length of n EMU.
func EMU(n int64) Length { return Length(n) }

// Inches converts inches to a Length.
func Inches(v float64) Length { return Length(math.Round(v * EMUPerInch)) }

// Cm converts centimetres to a Length.
func Cm(v float64) Length { return Length(math.Round(v * EMUPerCm)) }

// Pt converts points to a Length.
func Pt(v float64) Length { return Length(math.Round(v * EMUPerPoint)) }

// Inches returns the length in inches.
func (l Length) Inches() float64 { return float64(l) / EMUPerInch }

// Pt returns the length in points.
func (l Length) Pt() float64 { return float64(l) / EMUPerPoint }

// Centipoints returns the length in hundredths of a point, the unit used for
// font sizes and paragraph spacing.
func (l Length) Centipoints() int {
	return int(math.Round(float64(l) * 100 / EMUPerPoint))
}

// FromCentipoints converts hundredths of a point to a Length.
func FromCentipoints(v int) Length {
	return Length(math.Round(float64(v) * EMUPerPoint / 100))
}

// Rect positions a shape on a slide.
type Rect struct {
	Left   Length
	Top    Length
	Width  Length
	Height Length
}

// Box builds a Rect from inch values, the unit the demonstration decks use.
func Box(left, top, width, height float64) Rect {
	return Rect{Left: Inches(left), Top: Inches(top), Width: Inches(width), Height: Inches(height)}
}

// IsZero reports whether the rect has no extent.
func (r Rect) IsZero() bool { return r.Width == 0 && r.Height == 0 }

// Insets are text frame margins.
type Insets struct {
	Left   Length
	Top    Length
	Right  Length
	Bottom Length
}

// UniformInsets returns insets with the same margin on every side.
func UniformInsets(v Length) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// Ptr returns a pointer to v. Optional style attributes are pointers so that
// an unset attribute inherits from the layout.
func Ptr[T any](v T) *T { return &v }
