package pipeline

import (
	"fmt"

	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/render"
	"github.com/matzehuels/relpanel/pkg/render/nodelink"
	"github.com/matzehuels/relpanel/pkg/render/svg"
	"github.com/matzehuels/relpanel/pkg/scene"
)

// Render generates output artifacts for a solved panel in the requested
// formats. PNG and PDF are converted from the SVG rendering and need
// rsvg-convert on PATH.
func Render(res *scene.Result, opts Options) (map[string][]byte, error) {
	if res == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nothing to render")
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var svgData []byte
	svgOnce := func() []byte {
		if svgData == nil {
			svgData = svg.RenderSVG(res, buildSVGOptions(opts)...)
		}
		return svgData
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatPNG:
			data, err = render.ToPNG(svgOnce(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(svgOnce())
		case FormatJSON:
			data, err = scene.MarshalResult(res)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(res, nodelink.Options{Detailed: opts.Labels, Panel: true}))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSVGOptions(opts Options) []svg.Option {
	out := []svg.Option{svg.WithPadding(opts.Padding)}
	if opts.Labels {
		out = append(out, svg.WithLabels())
	}
	if opts.Links {
		out = append(out, svg.WithLinks())
	}
	return out
}
