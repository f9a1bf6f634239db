package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relpanel/pkg/pipeline"
	"github.com/matzehuels/relpanel/pkg/scene"
)

// layoutFlags are the solve options shared by layout, render, graph and
// inspect.
type layoutFlags struct {
	width   float64
	height  float64
	noCache bool
	refresh bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "panel width (overrides the scene; 0 keeps it)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "panel height (overrides the scene; 0 keeps it)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "recompute even if the layout is cached")
}

// layoutOptions builds pipeline options from the flags, falling back to the
// [layout] config section for sizes not given on the command line.
func (c *CLI) layoutOptions(cmd *cobra.Command, f *layoutFlags) pipeline.Options {
	opts := pipeline.Options{
		Width:   f.width,
		Height:  f.height,
		Refresh: f.refresh,
		Logger:  c.Logger,
	}
	if !cmd.Flags().Changed("width") {
		opts.Width = c.Config.Layout.Width
	}
	if !cmd.Flags().Changed("height") {
		opts.Height = c.Config.Layout.Height
	}
	return opts
}

// layoutCommand creates the layout command that solves a scene to JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags     layoutFlags
		output    string
		showTable bool
	)

	cmd := &cobra.Command{
		Use:   "layout [scene.toml]",
		Short: "Solve a scene and write the placed rectangles as JSON",
		Long: `Solve a scene and write the placed rectangles as JSON.

The scene is measured against its panel size (0 = size to content) and
arranged at the resulting size. The output (same format as 'render -f json')
lists every element's rectangle, its constraints and the resolved links.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], c.layoutOptions(cmd, &flags), flags.noCache, output, showTable)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	cmd.Flags().BoolVarP(&showTable, "table", "t", false, "print the placements as a table")

	return cmd
}

// runLayout loads the scene, solves it, and writes the result.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, noCache bool, output string, showTable bool) error {
	s, err := readScene(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, fmt.Sprintf("Solving %d elements...", len(s.Elements)))
	spinner.Start()
	res, cacheHit, err := runner.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if outputPath == "-" {
		out, _ := openOutput(outputPath)
		return scene.WriteResult(res, out)
	}
	if err := scene.WriteResultFile(res, outputPath); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(res.Blocks), len(res.Links), res.Size(), cacheHit)
	if showTable {
		fmt.Println(blockTable(resultRows(res), -1))
	}
	printNewline()
	printNextStep("Render", appName+" render "+input)

	return nil
}
