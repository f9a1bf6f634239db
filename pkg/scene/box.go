package scene

import (
	"math"

	"github.com/matzehuels/relpanel/pkg/geom"
	"github.com/matzehuels/relpanel/pkg/relpanel"
)

// Box is the element a scene declaration turns into. It reports a fixed
// desired size, or fills the space it is offered on auto axes, and records
// where the panel placed it.
type Box struct {
	spec Element

	rect     geom.Rect
	measures int
	arranges int
}

// NewBox creates a box for a declaration.
func NewBox(spec Element) *Box {
	return &Box{spec: spec}
}

// Name implements [relpanel.Namer].
func (b *Box) Name() string { return b.spec.Name }

// Spec returns the declaration the box was created from.
func (b *Box) Spec() Element { return b.spec }

// Rect returns the rectangle of the last arrange call.
func (b *Box) Rect() geom.Rect { return b.rect }

// Calls returns how often the box was measured and arranged.
func (b *Box) Calls() (measures, arranges int) { return b.measures, b.arranges }

// Measure implements [relpanel.Element].
func (b *Box) Measure(available geom.Size) geom.Size {
	b.measures++
	return geom.NewSize(
		extent(b.spec.Width, b.spec.MinWidth, b.spec.MaxWidth, available.Width),
		extent(b.spec.Height, b.spec.MinHeight, b.spec.MaxHeight, available.Height),
	)
}

// Arrange implements [relpanel.Element].
func (b *Box) Arrange(r geom.Rect) {
	b.arranges++
	b.rect = r
}

// Constraints implements [relpanel.Element].
func (b *Box) Constraints() relpanel.Constraints { return b.spec.Constraints() }

// extent resolves one axis of a box. A fixed size wins over the budget, an
// auto size takes the budget. Max then min apply, and the result never
// exceeds a finite budget.
func extent(fixed, lo, hi, budget float64) float64 {
	v := fixed
	if v == 0 {
		v = budget
		if geom.IsInf(v) {
			v = lo
		}
	}
	if hi > 0 {
		v = math.Min(v, hi)
	}
	v = math.Max(v, lo)
	if !geom.IsInf(budget) {
		v = math.Min(v, budget)
	}
	return math.Max(v, 0)
}
