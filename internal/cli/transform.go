package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

// transformCommand creates the transform command for baking a packed
// arrangement back into item hints.
func (c *CLI) transformCommand() *cobra.Command {
	var (
		columns int
		output  string
	)

	cmd := &cobra.Command{
		Use:   "transform [board.json]",
		Short: "Rewrite item hints from the packed arrangement",
		Long: `Rewrite item hints from the packed arrangement.

The transform command packs the board at the given column count, then
rewrites each item's hint for that count: spans are taken from the packed
rectangle, and items whose packed reading order matches their authored
order up to the first divergence get a pinned column offset. Re-packing
the transformed board reproduces the same arrangement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTransform(cmd.Context(), args[0], columns, output)
		},
	}

	cmd.Flags().IntVarP(&columns, "columns", "c", 0, "column count (default: board's own column count)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

// runTransform packs the board and writes it back with rewritten hints.
func (c *CLI) runTransform(ctx context.Context, input string, columns int, output string) error {
	b, err := board.ReadBoardFile(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}
	if columns == 0 {
		columns = b.Columns
	}

	items := b.LayoutItems()
	g, err := layout.InterpretItems(items, columns)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	b = b.ApplyItems(layout.TransformItems(items, g))

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := board.WriteBoard(b, out); err != nil {
		return err
	}

	if output != "" && output != "-" {
		printSuccess("Transformed %s for %d columns", b.Name, columns)
		printFile(output)
	}
	return nil
}
