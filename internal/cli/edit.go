package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

// editCommand creates the edit command for interactively arranging a board.
func (c *CLI) editCommand() *cobra.Command {
	var columns int

	cmd := &cobra.Command{
		Use:   "edit [board.json]",
		Short: "Edit a board layout interactively",
		Long: `Edit a board layout interactively.

The editor shows the packed grid and lets you move and resize items with
the keyboard. Gestures run through the same displacement engine as the
API, so neighbors cascade out of the way exactly as they would in a
client. Saving writes the arrangement back as item hints.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0], columns)
		},
	}

	cmd.Flags().IntVarP(&columns, "columns", "c", 0, "column count (default: board's own column count)")

	return cmd
}

// runEdit packs the board and hands control to the TUI. On save, the final
// arrangement is written back to the board file.
func (c *CLI) runEdit(input string, columns int) error {
	b, err := board.ReadBoardFile(input)
	if err != nil {
		return fmt.Errorf("load board %s: %w", input, err)
	}
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

	model := newEditorModel(b, engine)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run editor: %w", err)
	}

	m, ok := final.(editorModel)
	if !ok || !m.saved {
		printInfo("No changes saved")
		return nil
	}

	// Reconcile inserts and removals before baking in the arrangement.
	finalGrid := m.engine.Grid()
	for _, it := range b.Items {
		if !finalGrid.Has(it.ID) {
			b = b.RemoveItem(it.ID)
		}
	}
	for _, r := range finalGrid.Rects() {
		if !hasBoardItem(b, r.ID) {
			b = b.UpsertItem(board.Item{ID: r.ID, ColSpan: r.W, RowSpan: r.H})
		}
	}

	b = b.ApplyItems(layout.TransformItems(b.LayoutItems(), finalGrid))
	if err := board.WriteBoardFile(b, input); err != nil {
		return err
	}
	printSuccess("Saved %s", input)
	return nil
}

func hasBoardItem(b board.Board, id string) bool {
	for _, it := range b.Items {
		if it.ID == id {
			return true
		}
	}
	return false
}
