package board

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

func testBoard() Board {
	return Board{
		ID:      "b1",
		Name:    "ops",
		Columns: 4,
		Items: []Item{
			{ID: "cpu", Title: "CPU", ColSpan: 2},
			{ID: "mem", Title: "Memory"},
			{ID: "disk"},
		},
	}
}

func TestBoardValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Board)
		code   errors.Code
	}{
		{
			name:   "valid board",
			mutate: func(*Board) {},
		},
		{
			name:   "empty name",
			mutate: func(b *Board) { b.Name = "" },
			code:   errors.ErrCodeInvalidBoard,
		},
		{
			name:   "zero columns",
			mutate: func(b *Board) { b.Columns = 0 },
			code:   errors.ErrCodeInvalidColumns,
		},
		{
			name:   "empty item ID",
			mutate: func(b *Board) { b.Items[0].ID = "" },
			code:   errors.ErrCodeInvalidInput,
		},
		{
			name:   "duplicate item IDs",
			mutate: func(b *Board) { b.Items[1].ID = b.Items[0].ID },
			code:   errors.ErrCodeInvalidBoard,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testBoard()
			tt.mutate(&b)
			err := b.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error: %v", err)
				}
				return
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %s, want %s", got, tt.code)
			}
		})
	}
}

func TestLayoutItemsConversion(t *testing.T) {
	off := 1
	b := Board{
		Name:    "x",
		Columns: 4,
		Items: []Item{
			{ID: "a", ColSpan: 2, RowSpan: 3, Hints: []ColumnHint{
				{Columns: 4, ColSpan: 1, ColOffset: &off},
				{Columns: 6, ColSpan: 3},
			}},
		},
	}

	items := b.LayoutItems()
	if len(items) != 1 {
		t.Fatalf("LayoutItems() len = %d, want 1", len(items))
	}
	it := items[0]
	if it.ID != "a" || it.ColSpan != 2 || it.RowSpan != 3 {
		t.Errorf("scalar fields = %+v", it)
	}
	h4, ok := it.Hints[4]
	if !ok || h4.ColSpan != 1 {
		t.Fatalf("hint for 4 columns = %+v, %v", h4, ok)
	}
	if h4.ColOffset == nil || *h4.ColOffset != 1 {
		t.Errorf("hint offset = %v, want 1", h4.ColOffset)
	}
	if h4.ColOffset == &off {
		t.Error("hint offset should not alias the board's pointer")
	}
	if h6 := it.Hints[6]; h6.ColSpan != 3 {
		t.Errorf("hint for 6 columns = %+v", h6)
	}
}

func TestApplyItemsRoundTrip(t *testing.T) {
	b := testBoard()
	g, err := layout.InterpretItems(b.LayoutItems(), b.Columns)
	if err != nil {
		t.Fatalf("InterpretItems() error: %v", err)
	}

	out := b.ApplyItems(layout.TransformItems(b.LayoutItems(), g))

	// Titles and order survive; hints now pin the packed placements.
	if len(out.Items) != len(b.Items) {
		t.Fatalf("ApplyItems() item count = %d, want %d", len(out.Items), len(b.Items))
	}
	for i, it := range out.Items {
		if it.ID != b.Items[i].ID || it.Title != b.Items[i].Title {
			t.Errorf("item %d identity changed: %+v", i, it)
		}
		found := false
		for _, h := range it.Hints {
			if h.Columns == b.Columns {
				found = true
			}
		}
		if !found {
			t.Errorf("item %s missing hint for %d columns", it.ID, b.Columns)
		}
	}

	// Re-packing the applied board reproduces the same placements.
	g2, err := layout.InterpretItems(out.LayoutItems(), out.Columns)
	if err != nil {
		t.Fatalf("InterpretItems() after apply error: %v", err)
	}
	want := g.SortedRects()
	got := g2.SortedRects()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("placement %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// The original board is untouched.
	if b.Items[0].Hints != nil {
		t.Error("ApplyItems() mutated the receiver")
	}
}

func TestApplyItemsHintListSorted(t *testing.T) {
	off := 0
	items := []layout.Item{{ID: "cpu", Hints: map[int]layout.Hint{
		12: {ColSpan: 4},
		2:  {ColSpan: 1},
		6:  {ColSpan: 2, ColOffset: &off},
	}}}
	out := Board{Name: "x", Columns: 6, Items: []Item{{ID: "cpu"}}}.ApplyItems(items)

	hints := out.Items[0].Hints
	if len(hints) != 3 {
		t.Fatalf("hint count = %d, want 3", len(hints))
	}
	for i, want := range []int{2, 6, 12} {
		if hints[i].Columns != want {
			t.Errorf("hints[%d].Columns = %d, want ascending %d", i, hints[i].Columns, want)
		}
	}
}

func TestUpsertItem(t *testing.T) {
	b := testBoard()

	added := b.UpsertItem(Item{ID: "net", Title: "Network"})
	if len(added.Items) != 4 || added.Items[3].ID != "net" {
		t.Errorf("UpsertItem() of new ID should append, got %v", added.Items)
	}

	replaced := b.UpsertItem(Item{ID: "cpu", ColSpan: 4})
	if len(replaced.Items) != 3 {
		t.Fatalf("UpsertItem() of known ID should replace, got %d items", len(replaced.Items))
	}
	if replaced.Items[0].ColSpan != 4 || replaced.Items[0].Title != "" {
		t.Errorf("UpsertItem() should replace in place, got %+v", replaced.Items[0])
	}

	if b.Items[0].ColSpan != 2 || len(b.Items) != 3 {
		t.Error("UpsertItem() mutated the receiver")
	}
}

func TestRemoveItem(t *testing.T) {
	b := testBoard()

	out := b.RemoveItem("mem")
	if len(out.Items) != 2 || out.Items[0].ID != "cpu" || out.Items[1].ID != "disk" {
		t.Errorf("RemoveItem() = %v", out.Items)
	}

	if same := b.RemoveItem("ghost"); len(same.Items) != 3 {
		t.Errorf("RemoveItem() of unknown ID should be a no-op, got %d items", len(same.Items))
	}
	if len(b.Items) != 3 {
		t.Error("RemoveItem() mutated the receiver")
	}
}

func TestLayoutFromGrid(t *testing.T) {
	b := testBoard()
	g, err := layout.InterpretItems(b.LayoutItems(), b.Columns)
	if err != nil {
		t.Fatalf("InterpretItems() error: %v", err)
	}

	l := LayoutFromGrid(g)
	if l.Columns != 4 || l.Rows != g.Rows() {
		t.Errorf("LayoutFromGrid() dims = %d cols %d rows", l.Columns, l.Rows)
	}
	if len(l.Placements) != 3 {
		t.Fatalf("placement count = %d, want 3", len(l.Placements))
	}

	g2, err := l.Grid()
	if err != nil {
		t.Fatalf("Grid() error: %v", err)
	}
	if g2.Len() != g.Len() || g2.Rows() != g.Rows() {
		t.Error("Grid() did not reconstruct the snapshot")
	}
}

func TestBoardJSONRoundTrip(t *testing.T) {
	b := testBoard()
	off := 2
	b.Items[0].Hints = []ColumnHint{{Columns: 4, ColSpan: 2, ColOffset: &off}}

	data, err := MarshalBoard(b)
	if err != nil {
		t.Fatalf("MarshalBoard() error: %v", err)
	}
	got, err := UnmarshalBoard(data)
	if err != nil {
		t.Fatalf("UnmarshalBoard() error: %v", err)
	}

	if got.Name != b.Name || got.Columns != b.Columns || len(got.Items) != len(b.Items) {
		t.Errorf("round trip changed the board: %+v", got)
	}
	h := got.Items[0].Hints[0]
	if h.ColOffset == nil || *h.ColOffset != 2 {
		t.Errorf("round trip lost the offset hint: %+v", h)
	}
}

func TestUnmarshalBoardRejectsInvalid(t *testing.T) {
	if _, err := UnmarshalBoard([]byte("{not json")); errors.GetCode(err) != errors.ErrCodeInvalidBoard {
		t.Errorf("malformed JSON code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidBoard)
	}
	// Structurally valid JSON still has to pass validation.
	if _, err := UnmarshalBoard([]byte(`{"name":"","columns":4,"items":[]}`)); err == nil {
		t.Error("UnmarshalBoard() should validate the decoded board")
	}
}

func TestBoardFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	b := testBoard()

	if err := WriteBoardFile(b, path); err != nil {
		t.Fatalf("WriteBoardFile() error: %v", err)
	}
	got, err := ReadBoardFile(path)
	if err != nil {
		t.Fatalf("ReadBoardFile() error: %v", err)
	}
	if got.Name != b.Name || len(got.Items) != len(b.Items) {
		t.Errorf("file round trip changed the board: %+v", got)
	}

	if _, err := ReadBoardFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ReadBoardFile() of a missing file should error")
	}
}

func TestWriteBoardIndented(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBoard(testBoard(), &buf); err != nil {
		t.Fatalf("WriteBoard() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"name\"") {
		t.Error("WriteBoard() output should be indented")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	b := testBoard()
	g, err := layout.InterpretItems(b.LayoutItems(), b.Columns)
	if err != nil {
		t.Fatalf("InterpretItems() error: %v", err)
	}
	l := LayoutFromGrid(g)

	path := filepath.Join(t.TempDir(), "board.layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if got.Columns != l.Columns || got.Rows != l.Rows || len(got.Placements) != len(l.Placements) {
		t.Errorf("layout round trip = %+v, want %+v", got, l)
	}
}
