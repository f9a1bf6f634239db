package relpanel

import (
	"strings"

	"github.com/matzehuels/relpanel/pkg/geom"
)

// State is the resolution state of a node. It is a bitmask; a node that is
// Measured may additionally be arranged along one or both axes.
type State uint8

const (
	// Unresolved is the zero State: the node has not been visited in the
	// current pass.
	Unresolved State = 0
	// Pending marks a node whose dependencies are being resolved.
	Pending State = 1 << 0
	// Measured marks a node whose element has reported its desired size.
	Measured State = 1 << 1
	// ArrangedHorizontally marks a node whose arrange rect X and Width are final.
	ArrangedHorizontally State = 1 << 2
	// ArrangedVertically marks a node whose arrange rect Y and Height are final.
	ArrangedVertically State = 1 << 3
	// Arranged is set when both axes are final.
	Arranged = ArrangedHorizontally | ArrangedVertically
)

// Has reports whether every bit of f is set.
func (s State) Has(f State) bool { return s&f == f }

func (s State) String() string {
	if s == Unresolved {
		return "unresolved"
	}
	var parts []string
	if s.Has(Pending) {
		parts = append(parts, "pending")
	}
	if s.Has(Measured) {
		parts = append(parts, "measured")
	}
	switch {
	case s.Has(Arranged):
		parts = append(parts, "arranged")
	case s.Has(ArrangedHorizontally):
		parts = append(parts, "arranged-h")
	case s.Has(ArrangedVertically):
		parts = append(parts, "arranged-v")
	}
	return strings.Join(parts, "|")
}

// axisArranged returns the arranged flag of an axis.
func axisArranged(a Axis) State {
	if a == Vertical {
		return ArrangedVertically
	}
	return ArrangedHorizontally
}

// node is one arena entry. Edges are indices into Graph.nodes, -1 when unset.
type node struct {
	element     Element
	name        string
	constraints Constraint
	edges       [numEdgeKinds]int

	desired     geom.Size
	measureRect geom.Rect
	arrangeRect geom.Rect

	hLeaf bool
	vLeaf bool
	state State
}

func newNode(e Element) node {
	n := node{element: e}
	for i := range n.edges {
		n.edges[i] = -1
	}
	if named, ok := e.(Namer); ok {
		n.name = named.Name()
	}
	return n
}

func (n *node) has(k Constraint) bool { return n.constraints.Has(k) }

// dep returns the index of the sibling referenced by an edge kind.
func (n *node) dep(k Constraint) int { return n.edges[k.index()] }

// isStartAnchored reports whether the node's left (top) edge is fixed by
// the panel or a sibling.
func (n *node) isStartAnchored(ax *axisKinds) bool {
	return n.has(ax.startPanel) || n.has(ax.startWith) ||
		(n.has(ax.after) && !n.has(ax.centerWith))
}

// isEndAnchored reports whether the node's right (bottom) edge is fixed by
// the panel or a sibling.
func (n *node) isEndAnchored(ax *axisKinds) bool {
	return n.has(ax.endPanel) || n.has(ax.endWith) ||
		(n.has(ax.before) && !n.has(ax.centerWith))
}

// isCenterAnchored reports whether the node centers on the panel or on a
// sibling with neither edge of the axis claimed by an alignment.
func (n *node) isCenterAnchored(ax *axisKinds) bool {
	claimed := ax.startPanel | ax.endPanel | ax.startWith | ax.endWith
	if n.constraints&claimed != 0 {
		return false
	}
	if n.has(ax.centerWith) {
		return true
	}
	return n.has(ax.centerPanel) && n.constraints&(ax.before|ax.after) == 0
}

func (n *node) isLeaf(ax *axisKinds) bool {
	if ax.axis == Vertical {
		return n.vLeaf
	}
	return n.hLeaf
}

func (n *node) setLeaf(ax *axisKinds, v bool) {
	if ax.axis == Vertical {
		n.vLeaf = v
	} else {
		n.hLeaf = v
	}
}
