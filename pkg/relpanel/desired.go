package relpanel

import (
	"math"

	"github.com/matzehuels/relpanel/pkg/geom"
)

var axes = [...]*axisKinds{horizontal, vertical}

// DefaultWalkBudget is the number of node visits one desired-size
// computation may make across all chains.
const DefaultWalkBudget = 1 << 20

// calculateDesiredSize walks every horizontal and vertical chain from its
// leaf, moving a cursor by the desired size of each node it passes. The
// distance between the lowest and highest cursor positions is the extent of
// that chain; the panel wants the largest extent per axis.
func (g *Graph) calculateDesiredSize() (geom.Size, error) {
	g.markLeaves()

	var size geom.Size
	budget := g.walkBudget
	for i := range g.nodes {
		for _, ax := range axes {
			if !g.nodes[i].isLeaf(ax) {
				continue
			}
			acc := accumulator{g: g, ax: ax, budget: budget}
			acc.positive(i, 0)
			if acc.budget < 0 {
				return geom.Size{}, &ComplexityError{Axis: ax.axis, Budget: g.walkBudget}
			}
			budget = acc.budget
			if ax.axis == Vertical {
				size.Height = math.Max(size.Height, acc.max-acc.min)
			} else {
				size.Width = math.Max(size.Width, acc.max-acc.min)
			}
		}
	}
	return size, nil
}

// markLeaves flags the nodes that no sibling depends on along each axis.
// A node stops being a leaf when another node's effective constraint on
// that axis points at it.
func (g *Graph) markLeaves() {
	for i := range g.nodes {
		g.nodes[i].hLeaf = true
		g.nodes[i].vLeaf = true
	}
	for i := range g.nodes {
		n := &g.nodes[i]
		for _, ax := range axes {
			var fromStart, fromEnd bool
			if !n.has(ax.startPanel) {
				switch {
				case n.has(ax.startWith):
					g.nodes[n.dep(ax.startWith)].setLeaf(ax, false)
				case n.has(ax.centerWith):
					fromStart = true
				case n.has(ax.after):
					g.nodes[n.dep(ax.after)].setLeaf(ax, false)
				}
			}
			if !n.has(ax.endPanel) {
				switch {
				case n.has(ax.endWith):
					g.nodes[n.dep(ax.endWith)].setLeaf(ax, false)
				case n.has(ax.centerWith):
					fromEnd = true
				case n.has(ax.before):
					g.nodes[n.dep(ax.before)].setLeaf(ax, false)
				}
			}
			if fromStart && fromEnd {
				g.nodes[n.dep(ax.centerWith)].setLeaf(ax, false)
			}
		}
	}
}

// accumulator tracks the cursor extremes of one chain walk. A capped bound
// was pinned by a panel alignment and only widens from then on.
type accumulator struct {
	g  *Graph
	ax *axisKinds

	min, max             float64
	minCapped, maxCapped bool

	// budget is the number of visits left; negative once exhausted.
	budget int
}

// visit spends one unit of the budget and reports whether the walk may
// continue.
func (a *accumulator) visit() bool {
	a.budget--
	return a.budget >= 0
}

func (a *accumulator) extent(i int) float64 {
	return a.ax.extent(a.g.nodes[i].desired)
}

// positive visits node i while moving toward the end of the axis, with x
// at the node's start edge.
func (a *accumulator) positive(i int, x float64) {
	if !a.visit() {
		return
	}
	n := &a.g.nodes[i]
	ax := a.ax
	d := a.extent(i)

	initial := x
	x += d
	a.max = math.Max(a.max, x)

	var fromStart, fromEnd bool
	switch {
	case n.has(ax.startPanel):
		if !a.maxCapped {
			a.max = x
			a.maxCapped = true
		}
	case n.has(ax.startWith):
		// Aligned with the same sibling on both sides: the end side visits it.
		if n.dep(ax.startWith) != n.dep(ax.endWith) {
			a.negative(n.dep(ax.startWith), x)
		}
	case n.has(ax.centerWith):
		fromStart = true
	case n.has(ax.after):
		a.positive(n.dep(ax.after), x)
	}

	switch {
	case n.has(ax.endPanel):
		if a.minCapped {
			a.min = math.Min(a.min, initial)
		} else {
			a.min = initial
			a.minCapped = true
		}
	case n.has(ax.endWith):
		a.positive(n.dep(ax.endWith), initial)
	case n.has(ax.centerWith):
		fromEnd = true
	case n.has(ax.before):
		a.negative(n.dep(ax.before), initial)
	}

	switch {
	case fromStart && fromEnd:
		center := x - d/2
		edge := center - a.extent(n.dep(ax.centerWith))/2
		a.min = math.Min(a.min, edge)
		a.positive(n.dep(ax.centerWith), edge)
	case n.isCenterAnchored(ax):
		a.centerRoot(x - d/2)
	}
}

// negative visits node i while moving toward the start of the axis, with x
// at the node's end edge.
func (a *accumulator) negative(i int, x float64) {
	if !a.visit() {
		return
	}
	n := &a.g.nodes[i]
	ax := a.ax
	d := a.extent(i)

	initial := x
	x -= d
	a.min = math.Min(a.min, x)

	var fromStart, fromEnd bool
	switch {
	case n.has(ax.endPanel):
		if !a.minCapped {
			a.min = x
			a.minCapped = true
		}
	case n.has(ax.endWith):
		if n.dep(ax.endWith) != n.dep(ax.startWith) {
			a.positive(n.dep(ax.endWith), x)
		}
	case n.has(ax.centerWith):
		fromEnd = true
	case n.has(ax.before):
		a.negative(n.dep(ax.before), x)
	}

	switch {
	case n.has(ax.startPanel):
		if a.maxCapped {
			a.max = math.Max(a.max, initial)
		} else {
			a.max = initial
			a.maxCapped = true
		}
	case n.has(ax.startWith):
		a.negative(n.dep(ax.startWith), initial)
	case n.has(ax.centerWith):
		fromStart = true
	case n.has(ax.after):
		a.positive(n.dep(ax.after), initial)
	}

	switch {
	case fromStart && fromEnd:
		center := x + d/2
		edge := center + a.extent(n.dep(ax.centerWith))/2
		a.max = math.Max(a.max, edge)
		a.negative(n.dep(ax.centerWith), edge)
	case n.isCenterAnchored(ax):
		a.centerRoot(x + d/2)
	}
}

// centerRoot closes a chain whose root is center anchored: the chain needs
// twice its larger half around the center.
func (a *accumulator) centerRoot(center float64) {
	upper := a.max - center
	lower := center - a.min
	a.max = math.Max(upper, lower) * 2
	a.min = 0
}
