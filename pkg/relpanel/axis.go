package relpanel

import "github.com/matzehuels/relpanel/pkg/geom"

// axisKinds maps the generic start/end/center vocabulary onto the concrete
// constraint kinds of one axis. Horizontally start is left and end is right;
// vertically start is top and end is bottom. "after" places the node after
// its target (RightOf, Below) and "before" places it in front (LeftOf, Above).
type axisKinds struct {
	axis Axis

	startPanel  Constraint
	endPanel    Constraint
	centerPanel Constraint

	startWith  Constraint
	endWith    Constraint
	centerWith Constraint

	after  Constraint
	before Constraint
}

var (
	horizontal = &axisKinds{
		axis:        Horizontal,
		startPanel:  AlignLeftWithPanel,
		endPanel:    AlignRightWithPanel,
		centerPanel: AlignHorizontalCenterWithPanel,
		startWith:   AlignLeftWith,
		endWith:     AlignRightWith,
		centerWith:  AlignHorizontalCenterWith,
		after:       RightOf,
		before:      LeftOf,
	}
	vertical = &axisKinds{
		axis:        Vertical,
		startPanel:  AlignTopWithPanel,
		endPanel:    AlignBottomWithPanel,
		centerPanel: AlignVerticalCenterWithPanel,
		startWith:   AlignTopWith,
		endWith:     AlignBottomWith,
		centerWith:  AlignVerticalCenterWith,
		after:       Below,
		before:      Above,
	}
)

func axisKindsOf(a Axis) *axisKinds {
	if a == Vertical {
		return vertical
	}
	return horizontal
}

// deps returns the edge kinds of this axis in resolution order.
func (ax *axisKinds) deps() [5]Constraint {
	return [5]Constraint{ax.before, ax.after, ax.startWith, ax.endWith, ax.centerWith}
}

// extent returns the component of s along the axis.
func (ax *axisKinds) extent(s geom.Size) float64 {
	if ax.axis == Vertical {
		return s.Height
	}
	return s.Width
}

// span returns the origin and length of r along the axis.
func (ax *axisKinds) span(r geom.Rect) (pos, length float64) {
	if ax.axis == Vertical {
		return r.Y, r.Height
	}
	return r.X, r.Width
}

// setSpan overwrites the origin and length of r along the axis.
func (ax *axisKinds) setSpan(r *geom.Rect, pos, length float64) {
	if ax.axis == Vertical {
		r.Y, r.Height = pos, length
	} else {
		r.X, r.Width = pos, length
	}
}
