// Package render turns solved panels into pictures.
//
// # Overview
//
//   - [svg]: the panel as an SVG drawing, one rectangle per element
//   - [nodelink]: the constraint graph as a Graphviz diagram
//   - format conversion from SVG to PDF and PNG ([ToPDF], [ToPNG])
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] pipe SVG through the external rsvg-convert tool (from
// librsvg). Both renderers use them for raster and print output:
//
//	out := svg.RenderSVG(res, svg.WithLabels())
//	pdf, err := render.ToPDF(out)
//	png, err := render.ToPNG(out, 2.0) // 2x scale
//
// Use [ConverterAvailable] to check for the tool up front.
//
// [svg]: github.com/matzehuels/relpanel/pkg/render/svg
// [nodelink]: github.com/matzehuels/relpanel/pkg/render/nodelink
package render
