// Package board defines the canonical serialization format for dashboards:
// an ordered item list with per-column-count span hints, plus the concrete
// placements produced by packing. It is the interchange format for files,
// the HTTP API, caching, and storage.
//
// The format is human-readable and designed for round-trip fidelity:
// import → pack → transform → export → re-import produces identical
// results.
package board

import (
	"encoding/json"
	"slices"

	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
	"github.com/matzehuels/dashgrid/pkg/layout"
)

// Board is the serialized dashboard: a name, the authored column count, and
// the ordered item list (order = desired reading order).
type Board struct {
	ID      string `json:"id,omitempty" bson:"_id,omitempty"`
	Name    string `json:"name" bson:"name"`
	Columns int    `json:"columns" bson:"columns"`
	Items   []Item `json:"items" bson:"items"`
}

// Item is one dashboard item with optional per-column-count hints.
type Item struct {
	ID      string       `json:"id" bson:"id"`
	Title   string       `json:"title,omitempty" bson:"title,omitempty"`
	ColSpan int          `json:"col_span,omitempty" bson:"col_span,omitempty"`
	RowSpan int          `json:"row_span,omitempty" bson:"row_span,omitempty"`
	Hints   []ColumnHint `json:"hints,omitempty" bson:"hints,omitempty"`
}

// ColumnHint is a placement preference recorded for one column count.
// Hints are stored as a list rather than a map keyed by column count so the
// document encodes identically in JSON and BSON.
type ColumnHint struct {
	Columns   int  `json:"columns" bson:"columns"`
	ColSpan   int  `json:"col_span,omitempty" bson:"col_span,omitempty"`
	RowSpan   int  `json:"row_span,omitempty" bson:"row_span,omitempty"`
	ColOffset *int `json:"col_offset,omitempty" bson:"col_offset,omitempty"`
}

// Layout is the serialized packing result: the column count and the
// concrete placements in row-major reading order.
type Layout struct {
	Columns    int         `json:"columns" bson:"columns"`
	Rows       int         `json:"rows" bson:"rows"`
	Placements []grid.Rect `json:"placements" bson:"placements"`
}

// Validate checks the board's structural fields. It does not pack.
func (b Board) Validate() error {
	if err := errors.ValidateBoardName(b.Name); err != nil {
		return err
	}
	if err := errors.ValidateColumns(b.Columns); err != nil {
		return err
	}
	seen := make(map[string]bool, len(b.Items))
	for _, it := range b.Items {
		if err := errors.ValidateItemID(it.ID); err != nil {
			return err
		}
		if seen[it.ID] {
			return errors.New(errors.ErrCodeInvalidBoard, "duplicate item ID %q", it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

// LayoutItems converts the board's items to packing input for
// [layout.InterpretItems].
func (b Board) LayoutItems() []layout.Item {
	items := make([]layout.Item, len(b.Items))
	for i, it := range b.Items {
		items[i] = it.layoutItem()
	}
	return items
}

func (it Item) layoutItem() layout.Item {
	out := layout.Item{
		ID:      it.ID,
		ColSpan: it.ColSpan,
		RowSpan: it.RowSpan,
	}
	if len(it.Hints) > 0 {
		out.Hints = make(map[int]layout.Hint, len(it.Hints))
		for _, h := range it.Hints {
			hint := layout.Hint{ColSpan: h.ColSpan, RowSpan: h.RowSpan}
			if h.ColOffset != nil {
				off := *h.ColOffset
				hint.ColOffset = &off
			}
			out.Hints[h.Columns] = hint
		}
	}
	return out
}

// ApplyItems writes rewritten packing items (from [layout.TransformItems])
// back onto the board, preserving titles and item order. Items the rewrite
// does not mention are left unchanged.
func (b Board) ApplyItems(items []layout.Item) Board {
	byID := make(map[string]layout.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	out := b
	out.Items = make([]Item, len(b.Items))
	for i, it := range b.Items {
		li, ok := byID[it.ID]
		if !ok {
			out.Items[i] = it
			continue
		}
		it.ColSpan = li.ColSpan
		it.RowSpan = li.RowSpan
		it.Hints = hintList(li.Hints)
		out.Items[i] = it
	}
	return out
}

// UpsertItem adds an item definition, or replaces the existing one with the
// same ID in place.
func (b Board) UpsertItem(it Item) Board {
	out := b
	out.Items = slices.Clone(b.Items)
	for i, existing := range out.Items {
		if existing.ID == it.ID {
			out.Items[i] = it
			return out
		}
	}
	out.Items = append(out.Items, it)
	return out
}

// RemoveItem removes the item definition with the given ID. Unknown IDs are
// a no-op.
func (b Board) RemoveItem(id string) Board {
	out := b
	out.Items = make([]Item, 0, len(b.Items))
	for _, it := range b.Items {
		if it.ID != id {
			out.Items = append(out.Items, it)
		}
	}
	return out
}

// hintList converts a sparse hint map to the serialized list form, ordered
// by ascending column count for deterministic output.
func hintList(hints map[int]layout.Hint) []ColumnHint {
	if len(hints) == 0 {
		return nil
	}
	keys := make([]int, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]ColumnHint, len(keys))
	for i, k := range keys {
		h := hints[k]
		ch := ColumnHint{Columns: k, ColSpan: h.ColSpan, RowSpan: h.RowSpan}
		if h.ColOffset != nil {
			off := *h.ColOffset
			ch.ColOffset = &off
		}
		out[i] = ch
	}
	return out
}

// LayoutFromGrid converts a grid snapshot to the serialized layout form.
func LayoutFromGrid(g *grid.Grid) Layout {
	return Layout{
		Columns:    g.Columns(),
		Rows:       g.Rows(),
		Placements: g.SortedRects(),
	}
}

// Grid reconstructs the validated grid snapshot from a serialized layout.
func (l Layout) Grid() (*grid.Grid, error) {
	return grid.New(l.Placements, l.Columns)
}

// MarshalBoard serializes a board to indented JSON.
func MarshalBoard(b Board) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// UnmarshalBoard deserializes JSON bytes to a board and validates it.
func UnmarshalBoard(data []byte) (Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return Board{}, errors.Wrap(errors.ErrCodeInvalidBoard, err, "decode board")
	}
	if err := b.Validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}
