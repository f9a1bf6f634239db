package relpanel

import (
	"github.com/matzehuels/relpanel/pkg/geom"
)

// Element is a child of a relative panel. The resolver only ever calls these
// three methods; it never looks inside an element.
//
// Elements are used as map keys while the graph is built. Only comparable
// elements can be referenced by other children, so pointer receivers are the
// usual choice.
type Element interface {
	// Measure returns the element's desired size for the given budget.
	// Either component of available may be +Inf.
	Measure(available geom.Size) geom.Size

	// Arrange places the element at its final rectangle.
	Arrange(rect geom.Rect)

	// Constraints returns the element's relative layout declarations.
	Constraints() Constraints
}

// Namer is optionally implemented by elements that know their own name.
// Names only appear in errors, logs and diagrams.
type Namer interface {
	Name() string
}

// Target references a sibling either by name or directly by handle.
// The zero Target is unset.
type Target struct {
	Name    string
	Element Element
}

// ByName returns a Target resolved through the panel's name lookup.
func ByName(name string) Target { return Target{Name: name} }

// To returns a Target referencing a sibling directly.
func To(e Element) Target { return Target{Element: e} }

// IsSet reports whether the target references anything.
func (t Target) IsSet() bool { return t.Name != "" || t.Element != nil }

// Constraints are the relative layout declarations of one element.
type Constraints struct {
	LeftOf                    Target
	Above                     Target
	RightOf                   Target
	Below                     Target
	AlignHorizontalCenterWith Target
	AlignVerticalCenterWith   Target
	AlignLeftWith             Target
	AlignTopWith              Target
	AlignRightWith            Target
	AlignBottomWith           Target

	AlignLeftWithPanel             bool
	AlignTopWithPanel              bool
	AlignRightWithPanel            bool
	AlignBottomWithPanel           bool
	AlignHorizontalCenterWithPanel bool
	AlignVerticalCenterWithPanel   bool
}

// Target returns the declared target of an edge kind. It returns the zero
// Target for panel kinds and for sets.
func (c Constraints) Target(kind Constraint) Target {
	switch kind {
	case LeftOf:
		return c.LeftOf
	case Above:
		return c.Above
	case RightOf:
		return c.RightOf
	case Below:
		return c.Below
	case AlignHorizontalCenterWith:
		return c.AlignHorizontalCenterWith
	case AlignVerticalCenterWith:
		return c.AlignVerticalCenterWith
	case AlignLeftWith:
		return c.AlignLeftWith
	case AlignTopWith:
		return c.AlignTopWith
	case AlignRightWith:
		return c.AlignRightWith
	case AlignBottomWith:
		return c.AlignBottomWith
	}
	return Target{}
}

// Flag returns the declared value of a panel kind.
func (c Constraints) Flag(kind Constraint) bool {
	switch kind {
	case AlignLeftWithPanel:
		return c.AlignLeftWithPanel
	case AlignTopWithPanel:
		return c.AlignTopWithPanel
	case AlignRightWithPanel:
		return c.AlignRightWithPanel
	case AlignBottomWithPanel:
		return c.AlignBottomWithPanel
	case AlignHorizontalCenterWithPanel:
		return c.AlignHorizontalCenterWithPanel
	case AlignVerticalCenterWithPanel:
		return c.AlignVerticalCenterWithPanel
	}
	return false
}

// Kinds returns the declared kinds as a bitset.
func (c Constraints) Kinds() Constraint {
	var set Constraint
	for _, k := range EdgeKinds() {
		if c.Target(k).IsSet() {
			set |= k
		}
	}
	for _, k := range PanelKinds() {
		if c.Flag(k) {
			set |= k
		}
	}
	return set
}

// SetTarget declares the target of an edge kind. Other kinds are ignored.
func (c *Constraints) SetTarget(kind Constraint, t Target) {
	switch kind {
	case LeftOf:
		c.LeftOf = t
	case Above:
		c.Above = t
	case RightOf:
		c.RightOf = t
	case Below:
		c.Below = t
	case AlignHorizontalCenterWith:
		c.AlignHorizontalCenterWith = t
	case AlignVerticalCenterWith:
		c.AlignVerticalCenterWith = t
	case AlignLeftWith:
		c.AlignLeftWith = t
	case AlignTopWith:
		c.AlignTopWith = t
	case AlignRightWith:
		c.AlignRightWith = t
	case AlignBottomWith:
		c.AlignBottomWith = t
	}
}

// SetFlag sets a panel kind. Other kinds are ignored.
func (c *Constraints) SetFlag(kind Constraint, v bool) {
	switch kind {
	case AlignLeftWithPanel:
		c.AlignLeftWithPanel = v
	case AlignTopWithPanel:
		c.AlignTopWithPanel = v
	case AlignRightWithPanel:
		c.AlignRightWithPanel = v
	case AlignBottomWithPanel:
		c.AlignBottomWithPanel = v
	case AlignHorizontalCenterWithPanel:
		c.AlignHorizontalCenterWithPanel = v
	case AlignVerticalCenterWithPanel:
		c.AlignVerticalCenterWithPanel = v
	}
}
