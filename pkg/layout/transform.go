package layout

import (
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// TransformItems is the inverse of [InterpretItems]: given the original
// ordered item list and a new grid (typically the committed result of an
// engine operation), it rewrites each item's hint for the grid's column
// count to match the grid exactly. Hints recorded for other column counts
// are left untouched, so an edit made at one breakpoint never perturbs the
// layouts authored for others.
//
// Offset hints are pinned only up to the first index at which the grid's
// row-major order diverges from the original item order. Items at or after
// the divergence point changed their relative order, so their offsets are
// cleared and the next pack reflows them.
//
// Items absent from the grid are returned unchanged; the input slice and
// its hint maps are never mutated.
func TransformItems(items []Item, g *grid.Grid) []Item {
	columns := g.Columns()
	sorted := g.SortedRects()

	// Rank of each grid item in row-major reading order.
	rank := make(map[string]int, len(sorted))
	for i, r := range sorted {
		rank[r.ID] = i
	}

	divergence := orderDivergence(items, sorted)

	out := make([]Item, len(items))
	for i, it := range items {
		it = it.cloneHints()

		r, err := g.RectOf(it.ID)
		if err != nil {
			out[i] = it
			continue
		}

		if it.Hints == nil {
			it.Hints = make(map[int]Hint, 1)
		}
		h := it.Hints[columns]
		h.ColSpan = r.W
		h.RowSpan = r.H
		if rank[it.ID] < divergence {
			off := r.X
			h.ColOffset = &off
		} else {
			h.ColOffset = nil
		}
		it.Hints[columns] = h
		out[i] = it
	}
	return out
}

// orderDivergence returns the first row-major index at which the grid's
// reading order differs from the original item order, comparing only items
// present in both. Returns len(sorted) when the orders agree everywhere.
func orderDivergence(items []Item, sorted []grid.Rect) int {
	placed := make(map[string]bool, len(sorted))
	for _, r := range sorted {
		placed[r.ID] = true
	}

	var orig []string
	known := make(map[string]bool, len(items))
	for _, it := range items {
		if placed[it.ID] {
			orig = append(orig, it.ID)
			known[it.ID] = true
		}
	}

	j := 0
	for i, r := range sorted {
		if !known[r.ID] {
			// Present in the grid but not in the item list (e.g. freshly
			// inserted); it has no hint to pin and does not anchor order.
			continue
		}
		if j >= len(orig) || orig[j] != r.ID {
			return i
		}
		j++
	}
	return len(sorted)
}
