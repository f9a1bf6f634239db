// Package relpanel resolves relative panel layouts: sibling elements that
// position themselves against each other and against the panel's edges.
//
// # Overview
//
// Every child of a relative panel declares a set of [Constraints]. Ten of
// them reference a sibling (LeftOf, Above, RightOf, Below, the four edge
// alignments and the two center alignments) and six align the child with
// the panel itself. The package turns those declarations into a dependency
// [Graph] and resolves it into one rectangle per child.
//
// Layout happens in two passes, the same way a retained-mode UI toolkit
// lays out a container:
//
//   - [Graph.Measure] resolves each node after the siblings it depends on,
//     narrows the available space by their rectangles, asks the element how
//     big it wants to be, and returns how big the whole panel wants to be.
//   - [Graph.Arrange] receives the size the host actually grants, recomputes
//     only the axes whose extent changed, and places every element.
//
// # Basic Usage
//
// Children implement [Element]. Names used in [ByName] targets are resolved
// through a lookup map supplied when the graph is built:
//
//	g, err := relpanel.BuildGraph(children, lookup)
//	if err != nil {
//	    return err // unknown name or foreign element
//	}
//	desired, err := g.Measure(geom.NewSize(400, 300))
//	if err != nil {
//	    return err // constraint cycle
//	}
//	err = g.Arrange(geom.NewRect(0, 0, desired.Width, 300))
//
// [Layout] runs all three steps.
//
// # Precedence
//
// Each side of an element is decided by the strongest constraint on it, in
// this order: panel alignment, sibling edge alignment, centering on a
// sibling, then relative position (LeftOf, RightOf, Above, Below). Centering
// on a sibling only takes effect when neither side of the axis is claimed by
// an alignment. An element fixed on both sides of an axis stretches to fill
// the space between them; an element fixed on one side keeps its desired
// size and sits against that side; an element without any constraint sits
// at the panel's top-left corner.
//
// Conflicting constraints never fail: a negative width or height resolves
// to zero when the element is placed.
//
// # Desired Size
//
// The panel's desired size is the longest chain of dependent elements along
// each axis. Chains are walked from their leaves (elements nobody depends
// on) toward their roots, moving a cursor by each element's desired size.
// A chain rooted at a centered element needs twice its larger half.
//
// # Errors
//
// [BuildGraph] fails with a [*ReferenceNotFoundError] for an unknown name and
// an [*InvalidReferenceError] for a reference to an element that is not a
// child. Measure and Arrange fail with a [*CircularDependencyError] when the
// constraints form a cycle. A failed pass never calls Element.Arrange.
// All three errors carry a code from package errors and match the sentinels
// [ErrReferenceNotFound], [ErrInvalidReference] and [ErrCircularDependency].
//
// # Concurrency
//
// A Graph is mutable scratch state for one panel and must not be shared
// between goroutines. Build a new graph per layout.
package relpanel
