// Package svg draws solved panels as SVG.
//
// Every block becomes a rectangle at its arranged position inside a frame of
// the panel's final size. Blocks are drawn in declaration order, so later
// elements paint over earlier ones the way overlapping children would.
//
//	out := svg.RenderSVG(res, svg.WithLabels(), svg.WithLinks())
package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/relpanel/pkg/scene"
)

// palette colors blocks that declare no color of their own.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	labels     bool
	links      bool
	padding    float64
	background string
}

// WithLabels draws each block's label (or name) centered in the block.
func WithLabels() Option { return func(r *renderer) { r.labels = true } }

// WithLinks draws an arrow from every constrained block to its target.
func WithLinks() Option { return func(r *renderer) { r.links = true } }

// WithPadding adds space around the panel frame.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = max(p, 0) } }

// WithBackground fills the panel frame with a color.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// RenderSVG renders a solved panel.
func RenderSVG(res *scene.Result, opts ...Option) []byte {
	r := renderer{background: "white"}
	for _, opt := range opts {
		opt(&r)
	}

	w := res.Width + 2*r.padding
	h := res.Height + 2*r.padding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	if r.links {
		renderDefs(&buf)
	}

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", r.padding, r.padding)
	fmt.Fprintf(&buf, `  <rect class="panel" x="0" y="0" width="%.1f" height="%.1f" fill="%s" stroke="#333" stroke-width="1"/>`+"\n",
		res.Width, res.Height, escapeXML(r.background))

	for i, b := range res.Blocks {
		renderBlock(&buf, b, i)
	}
	if r.links {
		renderLinks(&buf, res)
	}
	if r.labels {
		for _, b := range res.Blocks {
			renderText(&buf, b)
		}
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func blockColor(b scene.Block, i int) string {
	if b.Color != "" {
		return b.Color
	}
	return palette[i%len(palette)]
}

func renderDefs(buf *bytes.Buffer) {
	buf.WriteString(`  <defs>
    <marker id="arrow" viewBox="0 0 10 10" refX="9" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse">
      <path d="M 0 0 L 10 5 L 0 10 z" fill="#333"/>
    </marker>
  </defs>
`)
}

func renderBlock(buf *bytes.Buffer, b scene.Block, i int) {
	fmt.Fprintf(buf, `  <rect id="block-%s" class="block" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.85" stroke="#222" stroke-width="1"/>`+"\n",
		escapeXML(b.ID), b.X, b.Y, b.Width, b.Height, escapeXML(blockColor(b, i)))
}

func renderText(buf *bytes.Buffer, b scene.Block) {
	if b.Width <= 0 || b.Height <= 0 {
		return
	}
	text := b.Text()
	size := fontSize(b.Width, b.Height, len([]rune(text)))
	text = truncate(text, b.Width, size)
	r := b.Rect()
	fmt.Fprintf(buf, `  <text class="block-text" data-block="%s" x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		escapeXML(b.ID), r.CenterX(), r.CenterY(), size, escapeXML(text))
}

func renderLinks(buf *bytes.Buffer, res *scene.Result) {
	for _, l := range res.Links {
		from, okF := res.Block(l.From)
		to, okT := res.Block(l.To)
		if !okF || !okT {
			continue
		}
		fr, tr := from.Rect(), to.Rect()
		fmt.Fprintf(buf, `  <line class="link" data-kind="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-dasharray="4 2" marker-end="url(#arrow)"/>`+"\n",
			escapeXML(l.Kind), fr.CenterX(), fr.CenterY(), tr.CenterX(), tr.CenterY())
	}
}
