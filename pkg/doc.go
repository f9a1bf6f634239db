// Package pkg provides the core libraries for relpanel, a relative panel
// layout resolver.
//
// # Overview
//
// A relative panel places each child by constraints on its siblings (LeftOf,
// Below, AlignTopWith, ...) and on the panel itself (AlignLeftWithPanel,
// AlignHorizontalCenterWithPanel, ...). The pkg directory is organized into
// these areas:
//
//  1. [relpanel] - The constraint graph and its measure/arrange passes
//  2. [scene] - Scene documents (TOML, JSON) and the solved Result
//  3. [render] - SVG output, constraint graphs (Graphviz), PDF/PNG conversion
//  4. [pipeline] - Orchestration (solve → render) with caching
//  5. [cache], [storage] - Layout cache (file, Redis) and saved layouts (MongoDB)
//
// # Architecture
//
// The typical data flow through relpanel:
//
//	scene.toml / scene.json
//	         ↓
//	    [scene] package (decode + validate)
//	         ↓
//	    [relpanel] package (build graph, measure, arrange)
//	         ↓
//	    [scene.Result] (placed rectangles + resolved links)
//	         ↓
//	    [render] package → SVG/PDF/PNG/JSON/DOT output
//
// # Quick Start
//
// Solve a scene and render it:
//
//	s, err := scene.ReadFile("examples/dashboard.toml")
//	if err != nil {
//	    return err
//	}
//	res, err := scene.Solve(s)
//	if err != nil {
//	    return err
//	}
//	out := svg.RenderSVG(res, svg.WithLabels())
//
// For repeated solves, use [pipeline.Runner], which caches layouts and
// artifacts by content hash.
//
// # Main Packages
//
// [relpanel] - Element and Constraints types, graph construction from
// sibling references, cycle detection, and the two-pass layout. Arrange
// re-resolves only the axes whose extent changed since the last pass.
//
// [geom] - Size and Rect with unbounded (infinite) extents.
//
// [scene] - Declarative scene documents, the Box element that sizes itself
// from width/min/max hints, and Panel, which wires a scene into a graph.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [observability] - Hooks for layout, render, cache and HTTP events.
//
// [relpanel]: github.com/matzehuels/relpanel/pkg/relpanel
// [geom]: github.com/matzehuels/relpanel/pkg/geom
// [scene]: github.com/matzehuels/relpanel/pkg/scene
// [scene.Result]: github.com/matzehuels/relpanel/pkg/scene.Result
// [render]: github.com/matzehuels/relpanel/pkg/render
// [pipeline]: github.com/matzehuels/relpanel/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/relpanel/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/relpanel/pkg/cache
// [storage]: github.com/matzehuels/relpanel/pkg/storage
// [errors]: github.com/matzehuels/relpanel/pkg/errors
// [observability]: github.com/matzehuels/relpanel/pkg/observability
package pkg
