package layout

import (
	"slices"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// workspace is the mutable scratch state of a single engine call: item
// rects keyed by ID plus the original insertion order for rebuilding the
// snapshot. All mutation during displacement happens here; the engine's
// committed snapshot is never touched.
type workspace struct {
	columns int
	order   []string
	rects   map[string]grid.Rect
}

func newWorkspace(g *grid.Grid) *workspace {
	ws := &workspace{
		columns: g.Columns(),
		rects:   make(map[string]grid.Rect, g.Len()),
	}
	for _, r := range g.Rects() {
		ws.order = append(ws.order, r.ID)
		ws.rects[r.ID] = r
	}
	return ws
}

// vacate is one pending displacement request: id must move out of area.
type vacate struct {
	id   string
	area grid.Rect
}

// displace applies one unit step: the primary item takes target, and every
// occupant of a claimed cell is pushed in the step direction (dx, dy), one
// conflict at a time, until free space is found. The chain is processed as
// an iterative worklist with a visited set keyed by item ID, so it
// terminates on any grid.
//
// Returns the IDs that moved (primary first) and true on success. If any
// pushed item would leave the grid, or the chain cannot settle without
// overlap, nothing is applied and false is returned: the step is rejected.
func (ws *workspace) displace(primary string, target grid.Rect, dx, dy int) ([]string, bool) {
	if target.X < 0 || target.Y < 0 || target.Right() > ws.columns {
		return nil, false
	}

	visited := map[string]bool{primary: true}
	proposed := map[string]grid.Rect{primary: target}
	order := []string{primary}

	queue := ws.vacateRequests(target, visited)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		if visited[v.id] {
			continue
		}
		visited[v.id] = true

		nr := pushClear(ws.rects[v.id], v.area, dx, dy)
		if nr.X < 0 || nr.Y < 0 || nr.Right() > ws.columns {
			return nil, false
		}
		proposed[v.id] = nr
		order = append(order, v.id)
		queue = append(queue, ws.vacateRequests(nr, visited)...)
	}

	if !ws.consistent(proposed) {
		return nil, false
	}
	for id, r := range proposed {
		ws.rects[id] = r
	}
	return order, true
}

// vacateRequests returns displacement requests for every unvisited item
// overlapping area, in row-major order of the occupants' top-left cells.
// The ordering makes cascades deterministic regardless of insertion order.
func (ws *workspace) vacateRequests(area grid.Rect, visited map[string]bool) []vacate {
	var hits []grid.Rect
	for _, id := range ws.order {
		if visited[id] {
			continue
		}
		if r := ws.rects[id]; r.Overlaps(area) {
			hits = append(hits, r)
		}
	}
	slices.SortStableFunc(hits, func(a, b grid.Rect) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	reqs := make([]vacate, len(hits))
	for i, r := range hits {
		reqs[i] = vacate{id: r.ID, area: area}
	}
	return reqs
}

// consistent reports whether the proposed rects settle without overlap
// against each other and the unmoved rest of the workspace.
func (ws *workspace) consistent(proposed map[string]grid.Rect) bool {
	effective := make([]grid.Rect, 0, len(ws.order))
	for _, id := range ws.order {
		if r, ok := proposed[id]; ok {
			effective = append(effective, r)
		} else {
			effective = append(effective, ws.rects[id])
		}
	}
	for i, a := range effective {
		for _, b := range effective[:i] {
			if a.Overlaps(b) {
				return false
			}
		}
	}
	return true
}

// snapshot rebuilds an immutable grid from the workspace in the original
// insertion order.
func (ws *workspace) snapshot() (*grid.Grid, error) {
	rects := make([]grid.Rect, len(ws.order))
	for i, id := range ws.order {
		rects[i] = ws.rects[id]
	}
	return grid.New(rects, ws.columns)
}

// pushClear moves r the minimal distance along (dx, dy) so it no longer
// overlaps area. Exactly one axis component is non-zero for a unit step.
func pushClear(r, area grid.Rect, dx, dy int) grid.Rect {
	switch {
	case dx > 0:
		r.X = area.Right()
	case dx < 0:
		r.X = area.X - r.W
	case dy > 0:
		r.Y = area.Bottom()
	case dy < 0:
		r.Y = area.Y - r.H
	}
	return r
}
