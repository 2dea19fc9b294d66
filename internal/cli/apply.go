package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

// applyOpts holds the command-line flags for the apply command.
type applyOpts struct {
	op      string // operation: move, resize, insert, remove
	item    string // target item ID
	path    string // drag path as "x,y;x,y;..."
	width   int    // new item width (insert)
	height  int    // new item height (insert)
	columns int    // column count override
	output  string // output board file
}

// applyCommand creates the apply command for running one layout operation.
func (c *CLI) applyCommand() *cobra.Command {
	var opts applyOpts

	cmd := &cobra.Command{
		Use:   "apply [board.json]",
		Short: "Apply a layout operation (move, resize, insert, remove)",
		Long: `Apply a layout operation to a board.

The board is packed, the operation runs against the packed grid, and the
resulting arrangement is written back as item hints. The shift (every
concrete position change) is printed so the effect of the gesture is
visible.

Paths are given as semicolon-separated cells, e.g. --path "0,0;1,0;1,1".
Move paths start at the item's position; resize paths start at its
bottom-right corner; insert paths start at the placement cell.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runApply(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.op, "op", "", "operation: move, resize, insert, remove")
	cmd.Flags().StringVar(&opts.item, "item", "", "target item ID")
	cmd.Flags().StringVar(&opts.path, "path", "", `drag path, e.g. "0,0;1,0;1,1"`)
	cmd.Flags().IntVar(&opts.width, "width", 1, "new item width in columns (insert)")
	cmd.Flags().IntVar(&opts.height, "height", 1, "new item height in rows (insert)")
	cmd.Flags().IntVarP(&opts.columns, "columns", "c", 0, "column count (default: board's own column count)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: rewrite input)")
	_ = cmd.MarkFlagRequired("op")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

// runApply packs the board, runs the operation, and writes the board back.
func (c *CLI) runApply(ctx context.Context, input string, opts applyOpts) error {
	b, err := board.ReadBoardFile(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}
	columns := opts.columns
	if columns == 0 {
		columns = b.Columns
	}

	g, err := layout.InterpretItems(b.LayoutItems(), columns)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	engine, err := layout.NewEngine(g)
	if err != nil {
		return err
	}

	path, err := parsePath(opts.path)
	if err != nil {
		return err
	}

	var (
		ng    *grid.Grid
		shift layout.Shift
	)
	switch opts.op {
	case "move":
		ng, shift, err = engine.Move(opts.item, path)
	case "resize":
		ng, shift, err = engine.Resize(opts.item, path)
	case "insert":
		ng, shift, err = engine.Insert(opts.item, opts.width, opts.height, path)
	case "remove":
		ng, shift, err = engine.Remove(opts.item)
	default:
		return fmt.Errorf("unknown operation: %s (must be move, resize, insert, or remove)", opts.op)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", opts.op, opts.item, err)
	}
	engine.Commit(ng)

	switch opts.op {
	case "insert":
		if rect, err := ng.RectOf(opts.item); err == nil {
			b = b.UpsertItem(board.Item{ID: opts.item, ColSpan: rect.W, RowSpan: rect.H})
		}
	case "remove":
		b = b.RemoveItem(opts.item)
	}
	b = b.ApplyItems(layout.TransformItems(b.LayoutItems(), ng))

	output := opts.output
	if output == "" {
		output = input
	}
	if err := board.WriteBoardFile(b, output); err != nil {
		return err
	}

	printSuccess("Applied %s to %q", opts.op, opts.item)
	printShift(shift)
	printFile(output)
	return nil
}

// parsePath parses a semicolon-separated cell list ("x,y;x,y") into positions.
func parsePath(s string) ([]grid.Position, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	path := make([]grid.Position, len(parts))
	for i, part := range parts {
		xy := strings.Split(strings.TrimSpace(part), ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("invalid path cell %q (want \"x,y\")", part)
		}
		x, errX := strconv.Atoi(strings.TrimSpace(xy[0]))
		y, errY := strconv.Atoi(strings.TrimSpace(xy[1]))
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("invalid path cell %q (want \"x,y\")", part)
		}
		path[i] = grid.Position{X: x, Y: y}
	}
	return path, nil
}

// printShift prints each shift entry as an indented detail line.
func printShift(shift layout.Shift) {
	if len(shift) == 0 {
		printDetail("no position changes")
		return
	}
	for _, op := range shift {
		printDetail("%s %s → (%d,%d) %dx%d", op.Op, op.ID, op.X, op.Y, op.W, op.H)
	}
}
