package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path (or base path for multiple formats)
	formats  []string // output formats: "svg", "json"
	columns  int      // column count override
	cellSize int      // pixel size of one grid cell
	noLabels bool     // suppress item ID labels
	noCache  bool     // disable caching
	refresh  bool     // ignore cached layouts
}

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [board.json]",
		Short: "Render a board as SVG or JSON",
		Long: `Render a board as SVG or JSON.

The board is packed at the requested column count and the layout is
rendered to the requested formats. Both the packed layout and the rendered
artifacts are cached locally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), json (comma-separated)")
	cmd.Flags().IntVarP(&opts.columns, "columns", "c", 0, "column count (default: board's own column count)")
	cmd.Flags().IntVar(&opts.cellSize, "cell-size", 0, "pixel size of one grid cell")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "suppress item ID labels")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results and recompute")

	return cmd
}

// runRender packs and renders the board, then writes every artifact.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	b, err := board.ReadBoardFile(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}
	columns := opts.columns
	if columns == 0 {
		columns = b.Columns
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pipeOpts := pipeline.Options{
		Columns:  columns,
		Refresh:  opts.refresh,
		Formats:  opts.formats,
		CellSize: opts.cellSize,
		NoLabels: opts.noLabels,
		Title:    b.Name,
		Logger:   c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", b.Name))
	spinner.Start()
	result, err := runner.Execute(ctx, b.LayoutItems(), pipeOpts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	printSuccess("Rendered %s", b.Name)
	printStats(result.Stats.ItemCount, result.Stats.Rows, result.CacheInfo.RenderHit)

	return writeArtifacts(result.Artifacts, opts.formats, input, opts.output)
}

// writeArtifacts writes each rendered format to its output file. With one
// format the output path is used directly; with several, format extensions
// are appended to the base path.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	if len(formats) == 1 {
		format := formats[0]
		path := output
		if path == "" {
			path = basePath("", input) + "." + format
		}
		return writeArtifact(artifacts[format], path)
	}

	base := basePath(output, input)
	for _, format := range formats {
		if err := writeArtifact(artifacts[format], base+"."+format); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return err
	}
	if path != "-" {
		printFile(path)
	}
	return nil
}
