package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/render/nodelink"
)

var graphFormats = []string{"dot", "svg", "pdf", "png"}

// graphCommand creates the graph command that draws the constraint graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		flags    layoutFlags
		output   string
		format   string
		detailed bool
		panel    bool
		scale    float64
	)

	cmd := &cobra.Command{
		Use:   "graph [scene.toml]",
		Short: "Draw the constraint graph of a scene",
		Long: `Draw the constraint graph of a scene.

Every element is a node; every sibling constraint is an arrow from the
element that declares it to the element it references. With --panel, panel
alignments point at a synthetic panel node. SVG, PDF and PNG output is laid
out with Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(graphFormats, format) {
				return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: dot, svg, pdf, png)", format)
			}
			gopts := nodelink.Options{Detailed: detailed, Panel: panel}
			return c.runGraph(cmd.Context(), args[0], cmd, &flags, gopts, format, output, scale)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.graph.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: dot, svg, pdf, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add arranged rectangles to node labels")
	cmd.Flags().BoolVar(&panel, "panel", false, "draw panel alignments as edges to a panel node")
	cmd.Flags().Float64Var(&scale, "scale", 2, "PNG scale factor")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input string, cmd *cobra.Command, flags *layoutFlags, gopts nodelink.Options, format, output string, scale float64) error {
	s, err := readScene(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, hit, err := runner.LayoutWithCacheInfo(ctx, s, c.layoutOptions(cmd, flags))
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(res, gopts)
	var data []byte
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = nodelink.RenderSVG(dot)
	case "pdf":
		data, err = nodelink.RenderPDF(dot)
	case "png":
		data, err = nodelink.RenderPNG(dot, scale)
	}
	if err != nil {
		return fmt.Errorf("render graph: %w", err)
	}

	if output == "" {
		output = basePath("", input) + ".graph." + format
	}
	if err := writeArtifact(output, data); err != nil {
		return err
	}
	if output != "-" {
		printSuccess("Constraint graph written")
		printFile(output)
		printStats(len(res.Blocks), len(res.Links), res.Size(), hit)
	}
	return nil
}
