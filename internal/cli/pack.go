package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/pipeline"
)

// packCommand creates the pack command for computing a layout from a board.
func (c *CLI) packCommand() *cobra.Command {
	var (
		columns int
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "pack [board.json]",
		Short: "Pack board items into a grid layout",
		Long: `Pack board items into a grid layout.

The pack command reads a board file (an ordered item list with optional
per-column-count hints), places every item with the greedy column-offset
packer, and writes the resulting layout as JSON.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPack(cmd.Context(), args[0], columns, output, noCache, refresh)
		},
	}

	cmd.Flags().IntVarP(&columns, "columns", "c", 0, "column count (default: board's own column count)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: derived from input, '-' for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "ignore cached layouts and repack")

	return cmd
}

// runPack loads the board, packs it, and writes the layout.
func (c *CLI) runPack(ctx context.Context, input string, columns int, output string, noCache, refresh bool) error {
	b, err := board.ReadBoardFile(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}
	if columns == 0 {
		columns = b.Columns
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	opts := pipeline.Options{Columns: columns, Refresh: refresh, Logger: c.Logger}
	l, cacheHit, err := runner.PackWithCacheInfo(ctx, b.LayoutItems(), opts)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	p.done(fmt.Sprintf("Packed %d items into %d columns", len(l.Placements), l.Columns))

	if output == "" {
		output = basePath("", input) + ".layout.json"
	}
	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	data, err := board.MarshalLayout(l)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}

	printSuccess("Packed %s", b.Name)
	printStats(len(l.Placements), l.Rows, cacheHit)
	if output != "-" {
		printFile(output)
		printNextStep("Render it", fmt.Sprintf("dashgrid render %s", input))
	}
	return nil
}
