package relpanel

import (
	"fmt"
	"io"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relpanel/pkg/geom"
)

// Graph is the constraint dependency graph of one panel's children.
//
// Nodes live in an arena in the order the children were added; constraint
// edges are indices into that arena. A Graph is built per layout pass and
// is not safe for concurrent use.
type Graph struct {
	nodes []node
	index map[Element]int

	// resolvedFor is the size the arrange rects were last computed for.
	resolvedFor geom.Size
	measured    bool
	desired     geom.Size

	// visiting is the resolution stack, used to report cycle paths.
	visiting []int

	// walkBudget caps node visits while computing the desired size.
	walkBudget int

	logger *log.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithLogger sets the logger used for debug tracing of layout passes.
func WithLogger(l *log.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithWalkBudget sets how many node visits one desired-size computation may
// make before [Graph.Measure] fails with a [*ComplexityError]. Values below
// one keep [DefaultWalkBudget].
func WithWalkBudget(n int) Option {
	return func(g *Graph) {
		if n > 0 {
			g.walkBudget = n
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		index:      make(map[Element]int),
		logger:     log.New(io.Discard),
		walkBudget: DefaultWalkBudget,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BuildGraph creates a graph for children and resolves their constraints
// against lookup. See [Graph.ResolveConstraints].
func BuildGraph(children []Element, lookup map[string]Element, opts ...Option) (*Graph, error) {
	g := New(opts...)
	g.AddNodes(children)
	if err := g.ResolveConstraints(lookup); err != nil {
		return nil, err
	}
	return g, nil
}

// Layout builds a graph, measures it against available and arranges it into
// final. It returns the panel's desired size.
func Layout(children []Element, lookup map[string]Element, available geom.Size, final geom.Rect, opts ...Option) (geom.Size, error) {
	g, err := BuildGraph(children, lookup, opts...)
	if err != nil {
		return geom.Size{}, err
	}
	desired, err := g.Measure(available)
	if err != nil {
		return geom.Size{}, err
	}
	if err := g.Arrange(final); err != nil {
		return geom.Size{}, err
	}
	return desired, nil
}

// AddNodes appends one node per element, preserving order. Adding an element
// that is already in the graph is a no-op.
//
// Elements whose dynamic value is not comparable have no identity: each one
// gets its own node and none can be the target of a reference.
func (g *Graph) AddNodes(elements []Element) {
	for _, e := range elements {
		if e == nil {
			continue
		}
		if !isComparable(e) {
			g.logger.Debug("element is not comparable", "type", fmt.Sprintf("%T", e))
			g.nodes = append(g.nodes, newNode(e))
			continue
		}
		if _, ok := g.index[e]; ok {
			continue
		}
		g.index[e] = len(g.nodes)
		g.nodes = append(g.nodes, newNode(e))
	}
	g.measured = false
}

// nodeOf returns the arena index of e.
func (g *Graph) nodeOf(e Element) (int, bool) {
	if !isComparable(e) {
		return -1, false
	}
	i, ok := g.index[e]
	return i, ok
}

// isComparable reports whether e can be used as a map key without panicking.
func isComparable(e Element) bool {
	return reflect.ValueOf(e).Comparable()
}

// ResolveConstraints reads each element's declarations and turns every set
// reference into an edge. Names are looked up in lookup, and the element
// found there must be a child of the graph. Direct references must be
// children as well. Panel flags are copied as declared.
//
// An unknown name yields a [*ReferenceNotFoundError]; a reference to an
// element outside the graph yields an [*InvalidReferenceError].
func (g *Graph) ResolveConstraints(lookup map[string]Element) error {
	g.nameFromLookup(lookup)

	for i := range g.nodes {
		n := &g.nodes[i]
		decl := n.element.Constraints()

		n.constraints = None
		for j := range n.edges {
			n.edges[j] = -1
		}

		for _, kind := range EdgeKinds() {
			t := decl.Target(kind)
			if !t.IsSet() {
				continue
			}
			j, err := g.resolveTarget(i, kind, t, lookup)
			if err != nil {
				return err
			}
			n.edges[kind.index()] = j
			n.constraints |= kind
		}

		for _, kind := range PanelKinds() {
			if decl.Flag(kind) {
				n.constraints |= kind
			}
		}
	}
	g.measured = false
	return nil
}

func (g *Graph) resolveTarget(i int, kind Constraint, t Target, lookup map[string]Element) (int, error) {
	e := t.Element
	if e == nil {
		found, ok := lookup[t.Name]
		if !ok || found == nil {
			return -1, &ReferenceNotFoundError{Name: t.Name, Kind: kind, Element: g.name(i)}
		}
		e = found
	}
	j, ok := g.nodeOf(e)
	if !ok {
		return -1, &InvalidReferenceError{Kind: kind, Element: g.name(i), Target: t.Name}
	}
	return j, nil
}

// nameFromLookup names unnamed nodes after their lookup key. When one element
// is registered under several names the smallest wins.
func (g *Graph) nameFromLookup(lookup map[string]Element) {
	names := make(map[int]string)
	for name, e := range lookup {
		if e == nil {
			continue
		}
		i, ok := g.nodeOf(e)
		if !ok {
			continue
		}
		if cur, ok := names[i]; !ok || name < cur {
			names[i] = name
		}
	}
	for i, name := range names {
		if g.nodes[i].name == "" {
			g.nodes[i].name = name
		}
	}
}

// name returns a display name for node i.
func (g *Graph) name(i int) string {
	if n := g.nodes[i].name; n != "" {
		return n
	}
	return fmt.Sprintf("#%d", i)
}

// cycleError builds the error for revisiting node i while it is pending.
func (g *Graph) cycleError(i int, a Axis) error {
	start := slices.Index(g.visiting, i)
	if start < 0 {
		start = 0
	}
	path := make([]string, 0, len(g.visiting)-start+1)
	for _, j := range g.visiting[start:] {
		path = append(path, g.name(j))
	}
	path = append(path, g.name(i))

	err := &CircularDependencyError{Axis: a, Path: path}
	g.logger.Debug("layout aborted", "err", err)
	return err
}

// =============================================================================
// Inspection
// =============================================================================

// Placement is the resolved rectangle of one child.
type Placement struct {
	Index   int
	Name    string
	Element Element
	Rect    geom.Rect
}

// Edge is one resolved constraint between two children.
type Edge struct {
	From int
	To   int
	Kind Constraint
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Name returns the display name of node i: its own name, its lookup key,
// or "#i".
func (g *Graph) Name(i int) string { return g.name(i) }

// State returns the resolution state of node i.
func (g *Graph) State(i int) State { return g.nodes[i].state }

// Constraints returns the resolved constraint set of node i.
func (g *Graph) Constraints(i int) Constraint { return g.nodes[i].constraints }

// DesiredSize returns the panel size computed by the last successful
// [Graph.Measure].
func (g *Graph) DesiredSize() geom.Size { return g.desired }

// Placements returns the current arrange rect of every node in stored order.
// Rects are relative to the panel and unclamped.
func (g *Graph) Placements() []Placement {
	out := make([]Placement, len(g.nodes))
	for i := range g.nodes {
		out[i] = Placement{
			Index:   i,
			Name:    g.name(i),
			Element: g.nodes[i].element,
			Rect:    g.nodes[i].arrangeRect,
		}
	}
	return out
}

// Edges returns every resolved edge, grouped by declaring node in stored
// order and by kind in bit order within a node.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for i := range g.nodes {
		for _, kind := range EdgeKinds() {
			if j := g.nodes[i].dep(kind); j >= 0 {
				out = append(out, Edge{From: i, To: j, Kind: kind})
			}
		}
	}
	return out
}

// Leaves returns the indices of the horizontal and vertical chain leaves
// found by the last desired size computation.
func (g *Graph) Leaves() (h, v []int) {
	for i := range g.nodes {
		if g.nodes[i].hLeaf {
			h = append(h, i)
		}
		if g.nodes[i].vLeaf {
			v = append(v, i)
		}
	}
	return h, v
}
