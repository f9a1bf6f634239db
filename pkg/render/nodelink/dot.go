package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/relpanel/pkg/render"
	"github.com/matzehuels/relpanel/pkg/scene"
)

// panelNode is the DOT id of the synthetic node panel constraints point at.
const panelNode = "@panel"

// Options configures constraint graph rendering.
type Options struct {
	// Detailed adds each element's arranged rectangle to its label.
	Detailed bool

	// Panel draws panel alignments as dashed edges to a panel node.
	Panel bool
}

// ToDOT converts a solved panel's constraint graph to Graphviz DOT. Every
// element is a node and every sibling constraint an edge from the declaring
// element to its target, labeled with the constraint kind.
func ToDOT(res *scene.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	if opts.Panel {
		fmt.Fprintf(&buf, "  %q [label=\"panel\", shape=box3d, style=dashed];\n", panelNode)
	}
	for _, b := range res.Blocks {
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(fmtAttrs(b, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, l := range res.Links {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", l.From, l.To, l.Kind)
	}
	if opts.Panel {
		for _, b := range res.Blocks {
			for _, c := range b.Constraints {
				if strings.HasSuffix(c, "WithPanel") {
					fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed];\n", b.ID, panelNode, c)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(b scene.Block, detailed bool) []string {
	label := b.Text()
	if detailed {
		label += "\n" + b.Rect().String()
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if b.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", b.Color), "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's root element with one whose pixel
// size matches its viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
