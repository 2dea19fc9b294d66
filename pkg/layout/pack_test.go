package layout

import (
	"testing"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

func intPtr(v int) *int { return &v }

// checkRects compares the grid's canonical rect order against want.
func checkRects(t *testing.T, g *grid.Grid, want []grid.Rect) {
	t.Helper()
	got := g.Rects()
	if len(got) != len(want) {
		t.Fatalf("grid has %d rects, want %d: %v", len(got), len(want), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("rect %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInterpretItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		columns int
		want    []grid.Rect
	}{
		{
			name:    "empty item list",
			items:   nil,
			columns: 4,
			want:    nil,
		},
		{
			name: "row fills left to right then wraps",
			items: []Item{
				{ID: "a", ColSpan: 2},
				{ID: "b"},
				{ID: "c"},
			},
			columns: 3,
			want: []grid.Rect{
				{ID: "a", X: 0, Y: 0, W: 2, H: 1},
				{ID: "b", X: 2, Y: 0, W: 1, H: 1},
				{ID: "c", X: 0, Y: 1, W: 1, H: 1},
			},
		},
		{
			name: "shorter column is filled before opening a new row",
			items: []Item{
				{ID: "tall", RowSpan: 2},
				{ID: "b"},
				{ID: "c"},
			},
			columns: 2,
			want: []grid.Rect{
				{ID: "tall", X: 0, Y: 0, W: 1, H: 2},
				{ID: "b", X: 1, Y: 0, W: 1, H: 1},
				{ID: "c", X: 1, Y: 1, W: 1, H: 1},
			},
		},
		{
			name: "offset hint pins the column",
			items: []Item{
				{ID: "a", Hints: map[int]Hint{4: {ColOffset: intPtr(2)}}},
				{ID: "b"},
			},
			columns: 4,
			want: []grid.Rect{
				{ID: "a", X: 2, Y: 0, W: 1, H: 1},
				{ID: "b", X: 3, Y: 0, W: 1, H: 1},
			},
		},
		{
			name: "oversized offset hint clamps to the right edge",
			items: []Item{
				{ID: "a", ColSpan: 2, Hints: map[int]Hint{4: {ColOffset: intPtr(9)}}},
			},
			columns: 4,
			want: []grid.Rect{
				{ID: "a", X: 2, Y: 0, W: 2, H: 1},
			},
		},
		{
			name: "negative offset hint clamps to zero",
			items: []Item{
				{ID: "a", Hints: map[int]Hint{3: {ColOffset: intPtr(-2)}}},
			},
			columns: 3,
			want: []grid.Rect{
				{ID: "a", X: 0, Y: 0, W: 1, H: 1},
			},
		},
		{
			name: "span wider than the grid clamps to the column count",
			items: []Item{
				{ID: "a", ColSpan: 10},
			},
			columns: 3,
			want: []grid.Rect{
				{ID: "a", X: 0, Y: 0, W: 3, H: 1},
			},
		},
		{
			name: "hint spans override scalar defaults",
			items: []Item{
				{ID: "a", ColSpan: 1, Hints: map[int]Hint{6: {ColSpan: 3, RowSpan: 2}}},
			},
			columns: 6,
			want: []grid.Rect{
				{ID: "a", X: 0, Y: 0, W: 3, H: 2},
			},
		},
		{
			name: "nearest smaller hint applies at larger column counts",
			items: []Item{
				{ID: "a", ColSpan: 1, Hints: map[int]Hint{6: {ColSpan: 3}}},
			},
			columns: 8,
			want: []grid.Rect{
				{ID: "a", X: 0, Y: 0, W: 3, H: 1},
			},
		},
		{
			name: "offset hints do not inherit across column counts",
			items: []Item{
				{ID: "a", Hints: map[int]Hint{4: {ColOffset: intPtr(3)}}},
				{ID: "b"},
			},
			columns: 6,
			want: []grid.Rect{
				{ID: "a", X: 0, Y: 0, W: 1, H: 1},
				{ID: "b", X: 1, Y: 0, W: 1, H: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := InterpretItems(tt.items, tt.columns)
			if err != nil {
				t.Fatalf("InterpretItems() error: %v", err)
			}
			checkRects(t, g, tt.want)
		})
	}
}

func TestInterpretItemsRowMajorResult(t *testing.T) {
	// Pinned offsets place the later item before the earlier one in reading
	// order; the returned grid is still canonicalized row-major.
	items := []Item{
		{ID: "second", Hints: map[int]Hint{4: {ColOffset: intPtr(2)}}},
		{ID: "first", Hints: map[int]Hint{4: {ColOffset: intPtr(0)}}},
	}
	g, err := InterpretItems(items, 4)
	if err != nil {
		t.Fatalf("InterpretItems() error: %v", err)
	}

	got := g.Rects()
	if got[0].ID != "first" || got[1].ID != "second" {
		t.Errorf("Rects() order = [%s %s], want row-major [first second]", got[0].ID, got[1].ID)
	}
}

func TestInterpretItemsErrors(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		columns int
		code    errors.Code
	}{
		{
			name:    "zero columns",
			items:   []Item{{ID: "a"}},
			columns: 0,
			code:    errors.ErrCodeInvalidColumns,
		},
		{
			name:    "negative columns",
			items:   []Item{{ID: "a"}},
			columns: -3,
			code:    errors.ErrCodeInvalidColumns,
		},
		{
			name:    "empty item ID",
			items:   []Item{{ID: ""}},
			columns: 4,
			code:    errors.ErrCodeInvalidInput,
		},
		{
			name:    "duplicate item IDs",
			items:   []Item{{ID: "a"}, {ID: "a"}},
			columns: 4,
			code:    errors.ErrCodeGridOverlap,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InterpretItems(tt.items, tt.columns)
			if err == nil {
				t.Fatal("InterpretItems() expected error, got nil")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("error code = %s, want %s", got, tt.code)
			}
		})
	}
}
