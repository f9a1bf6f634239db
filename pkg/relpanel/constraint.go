package relpanel

import (
	"math/bits"
	"strings"
)

// Constraint is a bitset of relative layout constraints. A single-bit value
// names one constraint kind; a node's declared constraints are stored as the
// union of their kinds.
//
// The ten edge kinds reference a sibling and become directed edges in the
// dependency graph. The six panel kinds align an element with the panel
// itself and have no edge.
type Constraint uint32

// Edge kinds. Their bit positions double as indices into a node's edge table.
const (
	LeftOf Constraint = 1 << iota
	Above
	RightOf
	Below
	AlignHorizontalCenterWith
	AlignVerticalCenterWith
	AlignLeftWith
	AlignTopWith
	AlignRightWith
	AlignBottomWith

	// Panel kinds.
	AlignLeftWithPanel
	AlignTopWithPanel
	AlignRightWithPanel
	AlignBottomWithPanel
	AlignHorizontalCenterWithPanel
	AlignVerticalCenterWithPanel
)

// None is the empty constraint set.
const None Constraint = 0

const (
	numEdgeKinds = 10

	edgeMask  Constraint = 1<<numEdgeKinds - 1
	panelMask Constraint = (AlignVerticalCenterWithPanel<<1 - 1) &^ edgeMask
)

// dependencyOrder is the order in which a node's referenced siblings are
// resolved before the node itself.
var dependencyOrder = [numEdgeKinds]Constraint{
	LeftOf,
	Above,
	RightOf,
	Below,
	AlignLeftWith,
	AlignTopWith,
	AlignRightWith,
	AlignBottomWith,
	AlignHorizontalCenterWith,
	AlignVerticalCenterWith,
}

var constraintNames = [...]string{
	"LeftOf",
	"Above",
	"RightOf",
	"Below",
	"AlignHorizontalCenterWith",
	"AlignVerticalCenterWith",
	"AlignLeftWith",
	"AlignTopWith",
	"AlignRightWith",
	"AlignBottomWith",
	"AlignLeftWithPanel",
	"AlignTopWithPanel",
	"AlignRightWithPanel",
	"AlignBottomWithPanel",
	"AlignHorizontalCenterWithPanel",
	"AlignVerticalCenterWithPanel",
}

// EdgeKinds returns the ten sibling-referencing kinds in bit order.
func EdgeKinds() []Constraint {
	out := make([]Constraint, 0, numEdgeKinds)
	for c := LeftOf; c <= AlignBottomWith; c <<= 1 {
		out = append(out, c)
	}
	return out
}

// PanelKinds returns the six panel alignment kinds in bit order.
func PanelKinds() []Constraint {
	out := make([]Constraint, 0, 6)
	for c := AlignLeftWithPanel; c <= AlignVerticalCenterWithPanel; c <<= 1 {
		out = append(out, c)
	}
	return out
}

// Has reports whether every kind in k is present in c.
func (c Constraint) Has(k Constraint) bool { return k != 0 && c&k == k }

// IsEdge reports whether c is a single sibling-referencing kind.
func (c Constraint) IsEdge() bool { return c.single() && c&edgeMask != 0 }

// IsPanel reports whether c is a single panel alignment kind.
func (c Constraint) IsPanel() bool { return c.single() && c&panelMask != 0 }

func (c Constraint) single() bool { return c != 0 && c&(c-1) == 0 }

// index returns the edge table slot of a single edge kind.
func (c Constraint) index() int { return bits.TrailingZeros32(uint32(c)) }

// Axis returns the axis a single kind constrains, or [Both] for a set.
func (c Constraint) Axis() Axis {
	switch c {
	case LeftOf, RightOf, AlignHorizontalCenterWith, AlignLeftWith, AlignRightWith,
		AlignLeftWithPanel, AlignRightWithPanel, AlignHorizontalCenterWithPanel:
		return Horizontal
	case Above, Below, AlignVerticalCenterWith, AlignTopWith, AlignBottomWith,
		AlignTopWithPanel, AlignBottomWithPanel, AlignVerticalCenterWithPanel:
		return Vertical
	}
	return Both
}

// String returns the kind name, or the '|'-joined names of a set.
func (c Constraint) String() string {
	if c == 0 {
		return "None"
	}
	var parts []string
	for i, name := range constraintNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if rest := c &^ (edgeMask | panelMask); rest != 0 {
		parts = append(parts, "Unknown")
	}
	return strings.Join(parts, "|")
}

// Axis identifies one of the two independently resolved dimensions.
type Axis uint8

const (
	// Both is the zero Axis and means the error or value is not specific
	// to one dimension.
	Both Axis = iota
	Horizontal
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "both"
}
