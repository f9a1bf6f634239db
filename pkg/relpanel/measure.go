package relpanel

import (
	"math"

	"github.com/matzehuels/relpanel/pkg/geom"
)

// Measure resolves every node against the available size and returns the
// panel's desired size.
//
// Each node is resolved after the siblings it references. Its measure rect
// starts as the whole available space and is narrowed by the arrange rects
// of those siblings; the element is measured with that rect's size. Along
// every finite axis the node's arrange rect is computed right away, so
// later nodes can be positioned against it. An infinite axis is left
// unarranged until [Graph.Arrange].
//
// A constraint cycle aborts the pass with a [*CircularDependencyError]; a
// desired-size walk over the graph's budget with a [*ComplexityError].
func (g *Graph) Measure(available geom.Size) (geom.Size, error) {
	g.logger.Debug("measure", "nodes", len(g.nodes), "available", available)

	g.measured = false
	g.visiting = g.visiting[:0]
	for i := range g.nodes {
		n := &g.nodes[i]
		n.state = Unresolved
		n.measureRect = geom.Rect{}
		n.arrangeRect = geom.Rect{}
	}

	for i := range g.nodes {
		if err := g.measureNode(i, available); err != nil {
			return geom.Size{}, err
		}
	}

	desired, err := g.calculateDesiredSize()
	if err != nil {
		g.logger.Debug("desired size walk aborted", "err", err)
		return geom.Size{}, err
	}

	g.resolvedFor = available
	g.measured = true
	g.desired = desired

	g.logger.Debug("measured", "desired", g.desired)
	return g.desired, nil
}

func (g *Graph) measureNode(i int, available geom.Size) error {
	n := &g.nodes[i]
	if n.state.Has(Pending) {
		return g.cycleError(i, Both)
	}
	if n.state != Unresolved {
		return nil
	}

	n.state |= Pending
	g.visiting = append(g.visiting, i)
	for _, kind := range dependencyOrder {
		if j := n.dep(kind); j >= 0 {
			if err := g.measureNode(j, available); err != nil {
				return err
			}
		}
	}
	g.visiting = g.visiting[:len(g.visiting)-1]
	n.state &^= Pending

	for _, ax := range axes {
		pos, length := g.measureSpan(n, ax, ax.extent(available))
		ax.setSpan(&n.measureRect, pos, length)
	}

	n.desired = n.element.Measure(n.measureRect.Size().Clamp())
	n.state |= Measured

	for _, ax := range axes {
		if geom.IsInf(ax.extent(available)) {
			continue
		}
		pos, length := n.arrangeSpan(ax)
		ax.setSpan(&n.arrangeRect, pos, length)
		n.state |= axisArranged(ax.axis)
	}
	return nil
}

// measureSpan computes the node's measure rect along one axis. The span
// starts as [0, avail] and each side is narrowed independently by the
// strongest constraint on that side: panel alignment, then sibling
// alignment, then centering, then relative position. Centering applies only
// when both sides defer to it, and takes the widest span symmetric around
// the target's center that still fits in the panel.
func (g *Graph) measureSpan(n *node, ax *axisKinds, avail float64) (pos, length float64) {
	pos, length = 0, avail
	if geom.IsInf(avail) {
		return pos, length
	}

	var centeredFromStart, centeredFromEnd bool

	if !n.has(ax.startPanel) {
		switch {
		case n.has(ax.startWith):
			p, _ := ax.span(g.nodes[n.dep(ax.startWith)].arrangeRect)
			pos = p
			length -= p
		case n.has(ax.centerWith):
			centeredFromStart = true
		case n.has(ax.after):
			p, l := ax.span(g.nodes[n.dep(ax.after)].arrangeRect)
			pos = p + l
			length -= p + l
		}
	}

	if !n.has(ax.endPanel) {
		switch {
		case n.has(ax.endWith):
			p, l := ax.span(g.nodes[n.dep(ax.endWith)].arrangeRect)
			length -= avail - (p + l)
		case n.has(ax.centerWith):
			centeredFromEnd = true
		case n.has(ax.before):
			p, _ := ax.span(g.nodes[n.dep(ax.before)].arrangeRect)
			length -= avail - p
		}
	}

	if centeredFromStart && centeredFromEnd {
		p, l := ax.span(g.nodes[n.dep(ax.centerWith)].arrangeRect)
		center := p + l/2
		length = math.Min(center, avail-center) * 2
		pos = center - length/2
	}
	return pos, length
}

// arrangeSpan computes the node's arrange rect along one axis from its
// measure rect and desired size. Anchored on both sides the node stretches
// over the whole measure rect; otherwise it keeps its desired size
// (bounded by the measure rect) and sits at the anchored side, at the center,
// or at the start by default.
func (n *node) arrangeSpan(ax *axisKinds) (pos, length float64) {
	mpos, mlen := ax.span(n.measureRect)
	desired := math.Min(mlen, ax.extent(n.desired))

	pos, length = mpos, desired
	switch {
	case n.isStartAnchored(ax):
		if n.isEndAnchored(ax) {
			length = mlen
		}
	case n.isEndAnchored(ax):
		pos = mpos + mlen - desired
	case n.isCenterAnchored(ax):
		pos = mpos + mlen/2 - desired/2
	}
	return pos, length
}
