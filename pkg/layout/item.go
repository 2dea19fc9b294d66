package layout

// Span floors shared process-wide. Items can never shrink below these,
// regardless of hints.
const (
	// MinColSpan is the minimum column span of any item.
	MinColSpan = 1
	// MinRowSpan is the minimum row span of any item.
	MinRowSpan = 1
)

// Hint is a per-column-count placement preference for one item. Zero span
// values mean "no preference"; a nil ColOffset means the packer chooses the
// column freely.
type Hint struct {
	ColSpan   int
	RowSpan   int
	ColOffset *int
}

// Item is the packing input: an identity plus optional sparse hints keyed by
// column count, with scalar fallbacks. The order of items passed to
// [InterpretItems] is the desired reading order.
type Item struct {
	ID string

	// ColSpan and RowSpan are the default spans used when no hint matches
	// the target column count. Zero falls back to the span floors.
	ColSpan int
	RowSpan int

	// Hints maps column counts to placement preferences. Lookup resolves
	// the exact column count first, then the nearest smaller key, then the
	// scalar defaults above.
	Hints map[int]Hint
}

// hintFor resolves the hint for the given column count: exact match first,
// else the nearest smaller key. Returns false if neither exists.
func (it Item) hintFor(columns int) (Hint, bool) {
	if h, ok := it.Hints[columns]; ok {
		return h, true
	}
	best := -1
	for k := range it.Hints {
		if k < columns && k > best {
			best = k
		}
	}
	if best < 0 {
		return Hint{}, false
	}
	return it.Hints[best], true
}

// colSpan resolves the effective column span at the given column count,
// clamped to the span floor and the grid width.
func (it Item) colSpan(columns int) int {
	span := it.ColSpan
	if h, ok := it.hintFor(columns); ok && h.ColSpan > 0 {
		span = h.ColSpan
	}
	span = max(span, MinColSpan)
	return min(span, columns)
}

// rowSpan resolves the effective row span at the given column count,
// clamped to the span floor.
func (it Item) rowSpan(columns int) int {
	span := it.RowSpan
	if h, ok := it.hintFor(columns); ok && h.RowSpan > 0 {
		span = h.RowSpan
	}
	return max(span, MinRowSpan)
}

// colOffset returns the explicit column offset for this exact column count.
// Offsets pin a specific breakpoint, so nearest-smaller resolution does not
// apply to them.
func (it Item) colOffset(columns int) (int, bool) {
	h, ok := it.Hints[columns]
	if !ok || h.ColOffset == nil {
		return 0, false
	}
	return *h.ColOffset, true
}

// cloneHints returns a copy of the item with an independent hints map, so
// rewrites never alias the caller's data.
func (it Item) cloneHints() Item {
	if it.Hints == nil {
		return it
	}
	hints := make(map[int]Hint, len(it.Hints))
	for k, v := range it.Hints {
		if v.ColOffset != nil {
			off := *v.ColOffset
			v.ColOffset = &off
		}
		hints[k] = v
	}
	it.Hints = hints
	return it
}
