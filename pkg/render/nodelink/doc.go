// Package nodelink renders a panel's constraint graph as a node-link diagram.
//
// # Overview
//
// Elements appear as boxes; each sibling constraint is an arrow from the
// element that declares it to the element it references, labeled with the
// constraint kind ("LeftOf", "AlignTopWith", ...). This is the quickest way
// to see why an element ended up where it did, or which chain of references
// forms a cycle.
//
// # Usage
//
//	dot := nodelink.ToDOT(res, nodelink.Options{Panel: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0) // 2x scale
//
// # Options
//
//   - Detailed: node labels include the arranged rectangle
//   - Panel: panel alignments become dashed edges to a synthetic panel node
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
