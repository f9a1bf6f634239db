package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relpanel/pkg/errors"
	"github.com/matzehuels/relpanel/pkg/pipeline"
	"github.com/matzehuels/relpanel/pkg/render"
)

// renderFlags holds the command-line flags for the render command.
type renderFlags struct {
	layoutFlags
	output  string  // output file (single format) or base path (multiple)
	formats string  // comma-separated output formats
	labels  bool    // draw element labels
	links   bool    // draw constraint links between elements
	scale   float64 // PNG scale factor
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render [scene.toml]",
		Short: "Render a solved scene to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a solved scene to SVG, PNG, PDF, JSON or DOT.

PNG and PDF are converted from the SVG output and require rsvg-convert
(librsvg). With several formats, -o is used as a base path and each file
gets the format as its extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.renderOptions(cmd, &flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, flags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot (comma-separated)")
	cmd.Flags().BoolVar(&flags.labels, "labels", false, "draw element labels")
	cmd.Flags().BoolVar(&flags.links, "links", false, "draw constraint links")
	cmd.Flags().Float64Var(&flags.scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// renderOptions merges flags with the [render] config section and validates
// the result.
func (c *CLI) renderOptions(cmd *cobra.Command, f *renderFlags) (pipeline.Options, error) {
	opts := c.layoutOptions(cmd, &f.layoutFlags)
	cfg := c.Config.Render

	formats := f.formats
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		formats = cfg.Format
	}
	opts.Formats = parseFormats(formats)
	opts.Labels = f.labels || (!cmd.Flags().Changed("labels") && cfg.Labels)
	opts.Links = f.links
	opts.Scale = f.scale
	if !cmd.Flags().Changed("scale") && cfg.Scale > 0 {
		opts.Scale = cfg.Scale
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	for _, format := range opts.Formats {
		if render.NeedsConverter(format) && !render.ConverterAvailable() {
			return opts, errors.New(errors.ErrCodeUnsupported,
				"%s output needs rsvg-convert: brew install librsvg (macOS), apt install librsvg2-bin (Linux)", format)
		}
	}
	return opts, nil
}

// runRender solves the scene and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	s, err := readScene(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, s, opts)
	if err != nil {
		return err
	}

	paths := outputPaths(flags.output, input, opts.Formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	for _, format := range formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", format, "bytes", len(result.Artifacts[format]))
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(formats)))

	printSuccess("Render complete")
	for _, format := range formats {
		printFile(paths[format])
	}
	printStats(result.Stats.Elements, result.Stats.Links, result.Layout.Size(), result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// outputPaths assigns an output file to each format. A single format is
// written to output as given; several formats share its base path.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
