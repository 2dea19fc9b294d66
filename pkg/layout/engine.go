package layout

import (
	"github.com/matzehuels/dashgrid/pkg/errors"
	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Engine wraps one immutable grid snapshot and computes layout shifts for
// interactive operations. Every operation fully evaluates its normalized
// path and returns a new snapshot plus a [Shift] without touching the
// committed snapshot; the caller either commits the result with [Engine.Commit]
// or discards it.
//
// Engine is not safe for concurrent use: the hosting application is
// expected to serialize gestures into sequential calls.
type Engine struct {
	grid *grid.Grid
	last Shift
}

// NewEngine creates an engine over a validated grid snapshot.
func NewEngine(g *grid.Grid) (*Engine, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "engine requires a grid snapshot")
	}
	return &Engine{grid: g, last: Shift{}}, nil
}

// Grid returns the committed snapshot.
func (e *Engine) Grid() *grid.Grid { return e.grid }

// Commit replaces the committed snapshot with g, typically the result of a
// preceding operation call. Passing nil is a no-op.
func (e *Engine) Commit(g *grid.Grid) {
	if g != nil {
		e.grid = g
	}
}

// LastShift returns the shift produced by the most recent operation call.
// Before any operation it returns an empty shift. Repeated calls without an
// intervening operation return equal results.
func (e *Engine) LastShift() Shift {
	return e.last.Clone()
}

// Move relocates an item along a drag path.
//
// The path must start at the item's current position. It is normalized to
// unit steps; each step pushes overlapping neighbors one conflict at a time
// in the step's direction (cascading displacement). A step whose cascade
// would push any item outside the grid is dropped together with all
// subsequent steps - earlier steps keep their effect and no error is
// returned.
//
// Fails with ErrCodeItemNotFound for an unknown ID, ErrCodeInvalidPath if
// the path does not start at the item, and ErrCodeOutOfBounds - before any
// mutation - if any normalized step would place the item outside the grid.
func (e *Engine) Move(id string, path []grid.Position) (*grid.Grid, Shift, error) {
	start, err := e.grid.RectOf(id)
	if err != nil {
		return nil, nil, err
	}
	if len(path) > 0 && path[0] != start.Pos() {
		return nil, nil, errors.New(errors.ErrCodeInvalidPath,
			"path must start at item %q position (%d,%d)", id, start.X, start.Y)
	}

	steps := NormalizePath(path)
	if len(steps) == 0 {
		e.last = Shift{}
		return e.grid, e.last.Clone(), nil
	}
	for _, s := range steps {
		if s.X < 0 || s.Y < 0 || s.X+start.W > e.grid.Columns() {
			return nil, nil, errors.New(errors.ErrCodeOutOfBounds,
				"step (%d,%d) would place item %q outside a %d-column grid", s.X, s.Y, id, e.grid.Columns())
		}
	}

	ws := newWorkspace(e.grid)
	rec := newShiftRecorder()
	for _, s := range steps {
		cur := ws.rects[id]
		target := cur
		target.X, target.Y = s.X, s.Y
		moved, ok := ws.displace(id, target, s.X-cur.X, s.Y-cur.Y)
		if !ok {
			break
		}
		rec.step(OpMove, ws.rects[id])
		for _, mid := range moved {
			if mid != id {
				rec.displacedMove(ws.rects[mid])
			}
		}
	}

	return e.conclude(ws, rec)
}

// Resize grows or shrinks an item by dragging its bottom-right corner along
// a path. The path must start at the corner cell (x+w-1, y+h-1); each unit
// step changes width or height by one. Growing displaces the occupants of
// the newly covered cells in the growth direction, with the same cascade
// and silent step rejection as Move. Shrinking never displaces.
//
// Fails with ErrCodeItemNotFound, ErrCodeInvalidPath, ErrCodeInvalidResize
// if any step would reduce width or height to zero, or ErrCodeOutOfBounds
// if any step would grow past the grid's columns. All failures happen
// before any mutation; the committed snapshot is never left half-resized.
func (e *Engine) Resize(id string, path []grid.Position) (*grid.Grid, Shift, error) {
	start, err := e.grid.RectOf(id)
	if err != nil {
		return nil, nil, err
	}
	corner := grid.Position{X: start.X + start.W - 1, Y: start.Y + start.H - 1}
	if len(path) > 0 && path[0] != corner {
		return nil, nil, errors.New(errors.ErrCodeInvalidPath,
			"path must start at item %q corner (%d,%d)", id, corner.X, corner.Y)
	}

	steps := NormalizePath(path)
	if len(steps) == 0 {
		e.last = Shift{}
		return e.grid, e.last.Clone(), nil
	}

	w, h := start.W, start.H
	prev := corner
	for _, s := range steps {
		w += s.X - prev.X
		h += s.Y - prev.Y
		prev = s
		if w < 1 || h < 1 {
			return nil, nil, errors.New(errors.ErrCodeInvalidResize,
				"resize would shrink item %q to %dx%d", id, w, h)
		}
		if start.X+w > e.grid.Columns() {
			return nil, nil, errors.New(errors.ErrCodeOutOfBounds,
				"resize to width %d would exceed a %d-column grid", w, e.grid.Columns())
		}
	}

	ws := newWorkspace(e.grid)
	rec := newShiftRecorder()
	prev = corner
	for _, s := range steps {
		dx, dy := s.X-prev.X, s.Y-prev.Y
		prev = s
		cur := ws.rects[id]
		target := cur
		target.W += dx
		target.H += dy
		moved, ok := ws.displace(id, target, dx, dy)
		if !ok {
			break
		}
		rec.step(OpResize, ws.rects[id])
		for _, mid := range moved {
			if mid != id {
				rec.displacedMove(ws.rects[mid])
			}
		}
	}

	return e.conclude(ws, rec)
}

// Insert places a new item of the given size at the first path position,
// displacing occupants downward, then interprets the remaining path
// positions as a move of the new item.
//
// Fails with ErrCodeInvalidSize for non-positive dimensions (before any
// other check), ErrCodeInvalidInput for an empty or already placed ID,
// ErrCodeInvalidPath for an empty path, and ErrCodeOutOfBounds if the
// insertion point plus size does not fit the grid or any later step would
// leave it. All failures happen before any mutation.
func (e *Engine) Insert(id string, w, h int, path []grid.Position) (*grid.Grid, Shift, error) {
	if w < 1 || h < 1 {
		return nil, nil, errors.New(errors.ErrCodeInvalidSize,
			"item size must be positive, got %dx%d", w, h)
	}
	if err := errors.ValidateItemID(id); err != nil {
		return nil, nil, err
	}
	if e.grid.Has(id) {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput, "item %q already placed", id)
	}
	if len(path) == 0 {
		return nil, nil, errors.New(errors.ErrCodeInvalidPath, "insertion path must contain the placement cell")
	}

	steps := NormalizePath(path)
	for _, s := range append([]grid.Position{path[0]}, steps...) {
		if s.X < 0 || s.Y < 0 || s.X+w > e.grid.Columns() {
			return nil, nil, errors.New(errors.ErrCodeOutOfBounds,
				"position (%d,%d) with size %dx%d exceeds a %d-column grid", s.X, s.Y, w, h, e.grid.Columns())
		}
	}

	ws := newWorkspace(e.grid)
	rec := newShiftRecorder()

	target := grid.Rect{ID: id, X: path[0].X, Y: path[0].Y, W: w, H: h}
	ws.order = append(ws.order, id)
	ws.rects[id] = target
	if moved, ok := ws.displace(id, target, 0, 1); ok {
		rec.step(OpMove, ws.rects[id])
		for _, mid := range moved {
			if mid != id {
				rec.displacedMove(ws.rects[mid])
			}
		}
	} else {
		// Downward displacement has unbounded room; a failure here means
		// the workspace invariants are broken.
		return nil, nil, errors.New(errors.ErrCodeInternal, "insertion displacement failed for item %q", id)
	}

	for _, s := range steps {
		cur := ws.rects[id]
		moved, ok := ws.displace(id, grid.Rect{ID: id, X: s.X, Y: s.Y, W: w, H: h}, s.X-cur.X, s.Y-cur.Y)
		if !ok {
			break
		}
		rec.step(OpMove, ws.rects[id])
		for _, mid := range moved {
			if mid != id {
				rec.displacedMove(ws.rects[mid])
			}
		}
	}

	return e.conclude(ws, rec)
}

// Remove deletes an item from the grid. Remaining items are left in place;
// compaction is a caller-level policy applied by re-packing.
// Fails with ErrCodeItemNotFound for an unknown ID.
func (e *Engine) Remove(id string) (*grid.Grid, Shift, error) {
	if !e.grid.Has(id) {
		return nil, nil, errors.New(errors.ErrCodeItemNotFound, "no item %q in grid", id)
	}

	rects := make([]grid.Rect, 0, e.grid.Len()-1)
	for _, r := range e.grid.Rects() {
		if r.ID != id {
			rects = append(rects, r)
		}
	}
	ng, err := grid.New(rects, e.grid.Columns())
	if err != nil {
		return nil, nil, err
	}
	e.last = Shift{}
	return ng, e.last.Clone(), nil
}

// conclude builds the result snapshot, records the shift as most recent,
// and returns both.
func (e *Engine) conclude(ws *workspace, rec *shiftRecorder) (*grid.Grid, Shift, error) {
	ng, err := ws.snapshot()
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "derived snapshot is invalid")
	}
	e.last = rec.finalize(e.grid)
	return ng, e.last.Clone(), nil
}
