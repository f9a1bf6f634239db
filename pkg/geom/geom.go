// Package geom provides the floating point sizes and rectangles shared by the
// layout core and the rendering tools.
//
// Sizes may be infinite along an axis: an infinite available width means
// "size to content" and is represented by [Inf]. Rectangles are always
// finite once a layout pass has completed.
package geom

import (
	"fmt"
	"math"
)

// Inf is the positive infinity used for unconstrained available sizes.
var Inf = math.Inf(1)

// IsInf reports whether v is positive infinity.
func IsInf(v float64) bool { return math.IsInf(v, 1) }

// Size is a width and height pair.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSize creates a Size.
func NewSize(width, height float64) Size {
	return Size{Width: width, Height: height}
}

// Unbounded returns a Size that is infinite along both axes.
func Unbounded() Size { return Size{Width: Inf, Height: Inf} }

// Clamp returns s with negative components raised to zero.
func (s Size) Clamp() Size {
	return Size{Width: math.Max(s.Width, 0), Height: math.Max(s.Height, 0)}
}

// Min returns the component-wise minimum of s and o.
func (s Size) Min(o Size) Size {
	return Size{Width: math.Min(s.Width, o.Width), Height: math.Min(s.Height, o.Height)}
}

// IsFinite reports whether both components are finite numbers.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0) &&
		!math.IsNaN(s.Width) && !math.IsNaN(s.Height)
}

func (s Size) String() string {
	return fmt.Sprintf("%sx%s", fmtFloat(s.Width), fmtFloat(s.Height))
}

// Rect represents a rectangle. X and Y are the top-left corner.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromSize returns a Rect at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Size returns the dimensions of the rectangle.
func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Translate returns a new Rect moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Clamp returns r with a negative width or height collapsed to zero.
// The origin is left untouched.
func (r Rect) Clamp() Rect {
	return Rect{X: r.X, Y: r.Y, Width: math.Max(r.Width, 0), Height: math.Max(r.Height, 0)}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) String() string {
	return fmt.Sprintf("(%s,%s %sx%s)", fmtFloat(r.X), fmtFloat(r.Y), fmtFloat(r.Width), fmtFloat(r.Height))
}

func fmtFloat(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", v)
}
