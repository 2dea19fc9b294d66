package layout

import (
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// InterpretItems packs an ordered item list onto a grid with the given
// column count and returns the resulting validated snapshot.
//
// The packer is a greedy left-to-right, top-to-bottom bin packer with
// per-column height tracking. Each item is placed at the leftmost offset
// (scanning from the previous item's ending column, wrapping to 0) whose
// placement row stays below the current maximum column height, so new items
// fill shorter columns before opening new rows. Items carrying an explicit
// offset hint for this column count are pinned to that offset instead of
// searched.
//
// When no offset fits in either scan the packer falls back to the running
// cursor (or 0 if the cursor would overflow). This can stack an item on a
// taller column than strictly necessary; the behavior is long-standing and
// kept for layout stability across versions.
func InterpretItems(items []Item, columns int) (*grid.Grid, error) {
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}

	heights := make([]int, columns)
	rects := make([]grid.Rect, 0, len(items))
	cursor := 0

	for _, it := range items {
		if err := errors.ValidateItemID(it.ID); err != nil {
			return nil, err
		}

		span := it.colSpan(columns)
		rows := it.rowSpan(columns)

		offset, pinned := it.colOffset(columns)
		if pinned {
			// Pinned offsets are trusted, only clamped into the grid so the
			// snapshot stays constructible.
			offset = min(max(offset, 0), columns-span)
		} else {
			offset = findColumnOffset(heights, cursor, span)
		}

		row := spanHeight(heights, offset, span)
		rects = append(rects, grid.Rect{ID: it.ID, X: offset, Y: row, W: span, H: rows})
		for c := offset; c < offset+span; c++ {
			heights[c] = row + rows
		}
		cursor = offset + span
	}

	// Canonical iteration order is row-major reading order, independent of
	// the input order.
	g, err := grid.New(rects, columns)
	if err != nil {
		return nil, err
	}
	return grid.New(g.SortedRects(), columns)
}

// findColumnOffset searches for the leftmost offset whose placement row
// stays below the current maximum column height. The scan starts at the
// running cursor, restarts from column 0, and falls back to the cursor
// (or 0 on overflow) when nothing fits.
func findColumnOffset(heights []int, cursor, span int) int {
	columns := len(heights)

	maxRow := 0
	for _, h := range heights {
		maxRow = max(maxRow, h)
	}

	for off := cursor; off+span <= columns; off++ {
		if spanHeight(heights, off, span) < maxRow {
			return off
		}
	}
	for off := 0; off+span <= columns; off++ {
		if spanHeight(heights, off, span) < maxRow {
			return off
		}
	}

	if cursor+span <= columns {
		return cursor
	}
	return 0
}

// spanHeight returns the placement row for a span starting at off: the
// maximum column height across the covered columns.
func spanHeight(heights []int, off, span int) int {
	row := 0
	for c := off; c < off+span; c++ {
		row = max(row, heights[c])
	}
	return row
}
