package render

import (
	"strings"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/board"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

func testLayout() board.Layout {
	return board.Layout{
		Columns: 3,
		Rows:    2,
		Placements: []grid.Rect{
			{ID: "cpu", X: 0, Y: 0, W: 2, H: 1},
			{ID: "mem", X: 2, Y: 0, W: 1, H: 2},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	out := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output should start with an svg element")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("output should close the svg element")
	}

	// 3 columns x 2 rows at the 64px default with 8px gaps.
	if !strings.Contains(out, `viewBox="0 0 224 152"`) {
		t.Errorf("unexpected viewBox in output:\n%s", out)
	}

	for _, want := range []string{
		`id="item-cpu"`,
		`id="item-mem"`,
		// cpu spans two cells: 2*64 + 1*8 wide at the top-left gap offset.
		`x="8" y="8" width="136" height="64"`,
		`>cpu</text>`,
		`>mem</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	t.Run("cell size scales the document", func(t *testing.T) {
		out := string(RenderSVG(testLayout(), WithCellSize(32)))
		if !strings.Contains(out, `viewBox="0 0 128 88"`) {
			t.Errorf("unexpected viewBox at 32px cells:\n%s", out)
		}
	})

	t.Run("non-positive cell size keeps the default", func(t *testing.T) {
		out := string(RenderSVG(testLayout(), WithCellSize(0)))
		if !strings.Contains(out, `viewBox="0 0 224 152"`) {
			t.Error("zero cell size should fall back to the default")
		}
	})

	t.Run("labels can be disabled", func(t *testing.T) {
		out := string(RenderSVG(testLayout(), WithoutLabels()))
		if strings.Contains(out, "<text") {
			t.Error("output should not contain labels")
		}
	})

	t.Run("title element", func(t *testing.T) {
		out := string(RenderSVG(testLayout(), WithTitle("Ops Board")))
		if !strings.Contains(out, "<title>Ops Board</title>") {
			t.Error("output missing the title element")
		}
	})
}

func TestRenderSVGEmptyLayout(t *testing.T) {
	out := string(RenderSVG(board.Layout{Columns: 2}))

	// An empty layout still renders one row of background.
	if !strings.Contains(out, `viewBox="0 0 152 80"`) {
		t.Errorf("unexpected viewBox for empty layout:\n%s", out)
	}
	if strings.Contains(out, `class="item"`) {
		t.Error("empty layout should render no items")
	}
}

func TestRenderSVGEscapesIDs(t *testing.T) {
	l := board.Layout{
		Columns:    2,
		Rows:       1,
		Placements: []grid.Rect{{ID: `a<b>&"c`, X: 0, Y: 0, W: 1, H: 1}},
	}
	out := string(RenderSVG(l))

	if !strings.Contains(out, "a&lt;b&gt;&amp;&quot;c") {
		t.Errorf("item ID not escaped:\n%s", out)
	}
	if strings.Contains(out, `id="item-a<b`) {
		t.Error("raw metacharacters leaked into the markup")
	}
}
