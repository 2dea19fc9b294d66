package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

// Editor modes.
const (
	modeSelect = iota // pick an item
	modeMove          // arrow keys drag the item
	modeResize        // arrow keys drag the bottom-right corner
)

// Cell rendering styles. Each item gets a color from the palette by its
// position in reading order; the selected item is inverted.
var (
	editorCellPalette = []lipgloss.Color{
		colorCyan, colorGreen, colorYellow, colorBlue, colorRed, colorGray,
	}
	editorEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	editorStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	editorErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// editorModel is the bubbletea model for the interactive board editor.
type editorModel struct {
	board  board.Board
	engine *layout.Engine

	selected string // selected item ID
	mode     int
	status   string
	statusOK bool
	saved    bool
}

// newEditorModel creates the editor over a packed grid.
func newEditorModel(b board.Board, engine *layout.Engine) editorModel {
	m := editorModel{
		board:    b,
		engine:   engine,
		mode:     modeSelect,
		statusOK: true,
	}
	if rects := engine.Grid().SortedRects(); len(rects) > 0 {
		m.selected = rects[0].ID
	}
	return m
}

func (m editorModel) Init() tea.Cmd {
	return nil
}

func (m editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "s":
		m.saved = true
		return m, tea.Quit
	case "esc":
		m.mode = modeSelect
		m.setStatus(true, "select mode")
		return m, nil
	case "tab":
		m.cycleSelection(1)
		return m, nil
	case "shift+tab":
		m.cycleSelection(-1)
		return m, nil
	case "m":
		if m.selected != "" {
			m.mode = modeMove
			m.setStatus(true, "move %q with arrow keys", m.selected)
		}
		return m, nil
	case "r":
		if m.selected != "" {
			m.mode = modeResize
			m.setStatus(true, "resize %q with arrow keys", m.selected)
		}
		return m, nil
	case "n":
		m.insertItem()
		return m, nil
	case "x":
		m.removeItem()
		return m, nil
	case "up", "down", "left", "right":
		m.step(key.String())
		return m, nil
	}
	return m, nil
}

// cycleSelection moves the selection through reading order.
func (m *editorModel) cycleSelection(delta int) {
	rects := m.engine.Grid().SortedRects()
	if len(rects) == 0 {
		m.selected = ""
		return
	}
	idx := 0
	for i, r := range rects {
		if r.ID == m.selected {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(rects)) % len(rects)
	m.selected = rects[idx].ID
	m.setStatus(true, "selected %q", m.selected)
}

// step applies one arrow-key gesture in the current mode.
func (m *editorModel) step(key string) {
	if m.mode == modeSelect || m.selected == "" {
		return
	}
	dx, dy := 0, 0
	switch key {
	case "up":
		dy = -1
	case "down":
		dy = 1
	case "left":
		dx = -1
	case "right":
		dx = 1
	}

	rect, err := m.engine.Grid().RectOf(m.selected)
	if err != nil {
		m.setStatus(false, "%v", err)
		return
	}

	var (
		ng    *grid.Grid
		shift layout.Shift
	)
	switch m.mode {
	case modeMove:
		from := rect.Pos()
		ng, shift, err = m.engine.Move(m.selected, []grid.Position{from, from.Add(dx, dy)})
	case modeResize:
		corner := grid.Position{X: rect.X + rect.W - 1, Y: rect.Y + rect.H - 1}
		ng, shift, err = m.engine.Resize(m.selected, []grid.Position{corner, corner.Add(dx, dy)})
	}
	if err != nil {
		m.setStatus(false, "%v", err)
		return
	}
	m.engine.Commit(ng)
	m.setStatus(true, "%d changes", len(shift))
}

// insertItem places a new 1x1 item in the first free cell of the top row.
func (m *editorModel) insertItem() {
	id := uuid.NewString()[:8]
	at := grid.Position{X: 0, Y: 0}
	ng, shift, err := m.engine.Insert(id, 1, 1, []grid.Position{at})
	if err != nil {
		m.setStatus(false, "%v", err)
		return
	}
	m.engine.Commit(ng)
	m.selected = id
	m.setStatus(true, "inserted %q (%d changes)", id, len(shift))
}

// removeItem deletes the selected item.
func (m *editorModel) removeItem() {
	if m.selected == "" {
		return
	}
	ng, _, err := m.engine.Remove(m.selected)
	if err != nil {
		m.setStatus(false, "%v", err)
		return
	}
	removed := m.selected
	m.engine.Commit(ng)
	m.selected = ""
	if rects := ng.SortedRects(); len(rects) > 0 {
		m.selected = rects[0].ID
	}
	m.setStatus(true, "removed %q", removed)
}

func (m *editorModel) setStatus(ok bool, format string, args ...any) {
	m.statusOK = ok
	m.status = fmt.Sprintf(format, args...)
}

func (m editorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Edit: %s", m.board.Name)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab select  m move  r resize  n new  x delete  s save  q quit"))
	b.WriteString("\n\n")

	b.WriteString(m.renderGrid())
	b.WriteString("\n")

	if m.status != "" {
		style := editorStatusStyle
		if !m.statusOK {
			style = editorErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	return b.String()
}

// renderGrid draws the grid as rows of cells. Each occupied cell shows the
// first characters of its item's ID.
func (m editorModel) renderGrid() string {
	g := m.engine.Grid()
	rects := g.SortedRects()
	colorOf := make(map[string]lipgloss.Color, len(rects))
	for i, r := range rects {
		colorOf[r.ID] = editorCellPalette[i%len(editorCellPalette)]
	}

	rows := g.Rows()
	if rows < 1 {
		rows = 1
	}

	var b strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < g.Columns(); x++ {
			id, ok := g.ItemAt(grid.Position{X: x, Y: y})
			if !ok {
				b.WriteString(editorEmptyStyle.Render(" · "))
				continue
			}
			label := fmt.Sprintf("%-3.3s", id)
			style := lipgloss.NewStyle().Foreground(colorOf[id])
			if id == m.selected {
				style = style.Reverse(true).Bold(true)
			}
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
