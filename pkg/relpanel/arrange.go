package relpanel

import (
	"math"

	"github.com/matzehuels/relpanel/pkg/geom"
)

// Arrange places every child inside final.
//
// The arrange rects computed by [Graph.Measure] are reused along every axis
// whose final extent equals the extent the graph was last resolved for.
// Along an axis that changed, every node's rect for that axis is recomputed
// against the final extent, dependencies first; the other axis is left
// alone. An infinite final extent is replaced by the desired extent.
//
// Element.Arrange is called once per node in stored order, only after every
// node has been resolved. Rects are offset by the final origin, and negative
// positions and sizes are clamped to zero. If the graph has not been
// measured yet, Arrange measures it against the final size first.
func (g *Graph) Arrange(final geom.Rect) error {
	size := final.Size()
	if geom.IsInf(size.Width) {
		size.Width = g.desired.Width
	}
	if geom.IsInf(size.Height) {
		size.Height = g.desired.Height
	}

	if !g.measured {
		if _, err := g.Measure(size); err != nil {
			return err
		}
	}

	for _, ax := range axes {
		avail := ax.extent(size)
		if ax.extent(g.resolvedFor) == avail {
			continue
		}
		g.logger.Debug("re-resolving axis", "axis", ax.axis, "from", ax.extent(g.resolvedFor), "to", avail)
		if err := g.arrangeAxis(ax, avail); err != nil {
			return err
		}
	}
	g.resolvedFor = size

	for i := range g.nodes {
		n := &g.nodes[i]
		r := n.arrangeRect
		n.element.Arrange(geom.Rect{
			X:      math.Max(r.X+final.X, 0),
			Y:      math.Max(r.Y+final.Y, 0),
			Width:  math.Max(r.Width, 0),
			Height: math.Max(r.Height, 0),
		})
	}

	g.logger.Debug("arranged", "nodes", len(g.nodes), "final", final)
	return nil
}

// arrangeAxis clears the arranged flag of one axis on every node and
// re-resolves them all against avail.
func (g *Graph) arrangeAxis(ax *axisKinds, avail float64) error {
	flag := axisArranged(ax.axis)
	for i := range g.nodes {
		g.nodes[i].state &^= flag | Pending
	}
	g.visiting = g.visiting[:0]
	for i := range g.nodes {
		if err := g.arrangeNode(i, ax, avail); err != nil {
			return err
		}
	}
	return nil
}

// arrangeNode recomputes the measure and arrange rect of node i along one
// axis, after the siblings it references on that axis.
func (g *Graph) arrangeNode(i int, ax *axisKinds, avail float64) error {
	n := &g.nodes[i]
	flag := axisArranged(ax.axis)
	if n.state.Has(flag) {
		return nil
	}
	if n.state.Has(Pending) {
		return g.cycleError(i, ax.axis)
	}

	n.state |= Pending
	g.visiting = append(g.visiting, i)
	for _, kind := range ax.deps() {
		if j := n.dep(kind); j >= 0 {
			if err := g.arrangeNode(j, ax, avail); err != nil {
				return err
			}
		}
	}
	g.visiting = g.visiting[:len(g.visiting)-1]
	n.state &^= Pending

	pos, length := g.measureSpan(n, ax, avail)
	ax.setSpan(&n.measureRect, pos, length)
	pos, length = n.arrangeSpan(ax)
	ax.setSpan(&n.arrangeRect, pos, length)
	n.state |= flag
	return nil
}
