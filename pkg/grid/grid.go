// Package grid defines the authoritative grid model: a validated, immutable
// snapshot of non-overlapping rectangular items on a fixed-width,
// unbounded-height cell grid.
//
// A Grid is constructed with [New], which enforces the structural invariants:
//
//  1. every rect lies within the column bounds and has non-negative origin,
//  2. no two rects share a cell,
//  3. every rect has positive width and height.
//
// Violations reject the grid atomically; there is no partially built state.
// Once constructed a Grid is never mutated - the layout engine derives new
// snapshots instead of editing one in place, so snapshots can be shared
// freely across goroutines.
package grid

import (
	"slices"

	"github.com/matzehuels/dashgrid/pkg/errors"
)

// Grid is an immutable snapshot of placed rects plus the column count.
// The zero value is not usable - use New to create a validated instance.
type Grid struct {
	columns int
	rects   []Rect
	index   map[string]int // item ID -> index into rects
	rows    int
}

// New validates the rects against columns and returns an immutable Grid.
//
// Checks run in priority order and report the first violation found:
// bounds (ErrCodeGridBounds), overlap (ErrCodeGridOverlap), then size
// (ErrCodeGridSize). Duplicate item IDs are reported as overlaps since two
// rects with one identity necessarily claim the same logical slot.
//
// The input slice is copied; callers may reuse it after New returns.
func New(rects []Rect, columns int) (*Grid, error) {
	if columns < 1 {
		return nil, errors.New(errors.ErrCodeGridSize, "column count must be positive, got %d", columns)
	}

	for _, r := range rects {
		if r.X < 0 || r.Y < 0 || r.Right() > columns {
			return nil, errors.New(errors.ErrCodeGridBounds,
				"item %q at (%d,%d) size %dx%d exceeds grid of %d columns", r.ID, r.X, r.Y, r.W, r.H, columns)
		}
	}

	index := make(map[string]int, len(rects))
	for i, r := range rects {
		if prev, ok := index[r.ID]; ok {
			return nil, errors.New(errors.ErrCodeGridOverlap,
				"duplicate item ID %q (entries %d and %d)", r.ID, prev, i)
		}
		index[r.ID] = i
		for _, o := range rects[:i] {
			if r.Overlaps(o) {
				return nil, errors.New(errors.ErrCodeGridOverlap,
					"items %q and %q overlap", o.ID, r.ID)
			}
		}
	}

	for _, r := range rects {
		if r.W < 1 || r.H < 1 {
			return nil, errors.New(errors.ErrCodeGridSize,
				"item %q has non-positive size %dx%d", r.ID, r.W, r.H)
		}
	}

	g := &Grid{
		columns: columns,
		rects:   slices.Clone(rects),
		index:   index,
	}
	for _, r := range g.rects {
		g.rows = max(g.rows, r.Bottom())
	}
	return g, nil
}

// Columns returns the grid's column count.
func (g *Grid) Columns() int { return g.columns }

// Rows returns the derived row count: the maximum bottom edge over all
// items, 0 for an empty grid.
func (g *Grid) Rows() int { return g.rows }

// Len returns the number of placed items.
func (g *Grid) Len() int { return len(g.rects) }

// Rects returns a copy of the placed rects in insertion order.
func (g *Grid) Rects() []Rect {
	return slices.Clone(g.rects)
}

// SortedRects returns a copy of the placed rects in row-major reading order:
// ascending (Y, X). This is the canonical iteration order for packing and
// for determinism in displacement chains.
func (g *Grid) SortedRects() []Rect {
	rects := slices.Clone(g.rects)
	slices.SortStableFunc(rects, func(a, b Rect) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return rects
}

// ItemAt returns the ID of the item covering the given cell, if any.
func (g *Grid) ItemAt(p Position) (string, bool) {
	for _, r := range g.rects {
		if r.Contains(p) {
			return r.ID, true
		}
	}
	return "", false
}

// RectOf returns the rect for the given item ID.
// Fails with ErrCodeItemNotFound if the ID is not placed on the grid.
func (g *Grid) RectOf(id string) (Rect, error) {
	i, ok := g.index[id]
	if !ok {
		return Rect{}, errors.New(errors.ErrCodeItemNotFound, "no item %q in grid", id)
	}
	return g.rects[i], nil
}

// Has reports whether the item ID is placed on the grid.
func (g *Grid) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Overlapping returns the IDs of all items sharing at least one cell with
// area, excluding the ignore ID. The result is ordered row-major by the
// occupants' top-left cells so displacement chains are deterministic
// regardless of item insertion order.
func (g *Grid) Overlapping(area Rect, ignore string) []string {
	var hits []Rect
	for _, r := range g.rects {
		if r.ID == ignore {
			continue
		}
		if r.Overlaps(area) {
			hits = append(hits, r)
		}
	}
	slices.SortStableFunc(hits, func(a, b Rect) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	ids := make([]string, len(hits))
	for i, r := range hits {
		ids[i] = r.ID
	}
	return ids
}
