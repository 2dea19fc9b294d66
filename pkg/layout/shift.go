package layout

import (
	"slices"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// Op identifies the kind of a shift entry.
type Op string

// Shift entry kinds.
const (
	OpMove   Op = "move"
	OpResize Op = "resize"
)

// ShiftOp is one entry of a layout shift: the full target geometry of one
// item after the entry applies. MOVE entries carry a new position with the
// unchanged size; RESIZE entries carry the position with the new size.
type ShiftOp struct {
	Op Op     `json:"op" bson:"op"`
	ID string `json:"id" bson:"id"`
	X  int    `json:"x" bson:"x"`
	Y  int    `json:"y" bson:"y"`
	W  int    `json:"width" bson:"width"`
	H  int    `json:"height" bson:"height"`
}

// Rect returns the entry's target geometry as a grid rect.
func (o ShiftOp) Rect() grid.Rect {
	return grid.Rect{ID: o.ID, X: o.X, Y: o.Y, W: o.W, H: o.H}
}

// Shift is the ordered operation list produced by one engine call: the
// cumulative delta from the snapshot that existed before the call began. A
// rendering collaborator can replay it directly without re-diffing grids.
//
// The operated item contributes one entry per committed unit step (its
// trajectory); every displaced item contributes exactly one final-position
// entry, inserted at the point of first displacement with later positions
// overwriting earlier ones.
type Shift []ShiftOp

// shiftRecorder accumulates the operations performed during a single engine
// call into one coherent Shift.
type shiftRecorder struct {
	ops       []ShiftOp
	displaced map[string]int // item ID -> index into ops
}

func newShiftRecorder() *shiftRecorder {
	return &shiftRecorder{displaced: make(map[string]int)}
}

// step appends a trajectory entry for the operated item.
func (s *shiftRecorder) step(op Op, r grid.Rect) {
	s.ops = append(s.ops, ShiftOp{Op: op, ID: r.ID, X: r.X, Y: r.Y, W: r.W, H: r.H})
}

// displacedMove records the current position of a displaced item. A later
// displacement of the same item overwrites the earlier entry in place, so
// each displaced item keeps a single final-state entry.
func (s *shiftRecorder) displacedMove(r grid.Rect) {
	op := ShiftOp{Op: OpMove, ID: r.ID, X: r.X, Y: r.Y, W: r.W, H: r.H}
	if i, ok := s.displaced[r.ID]; ok {
		s.ops[i] = op
		return
	}
	s.displaced[r.ID] = len(s.ops)
	s.ops = append(s.ops, op)
}

// finalize drops displaced entries whose final geometry matches the base
// snapshot (items pushed away and back again net to nothing) and returns
// the shift.
func (s *shiftRecorder) finalize(base *grid.Grid) Shift {
	out := make(Shift, 0, len(s.ops))
	for i, op := range s.ops {
		if j, ok := s.displaced[op.ID]; ok && j == i {
			if orig, err := base.RectOf(op.ID); err == nil && orig == op.Rect() {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}

// Clone returns an independent copy of the shift.
func (s Shift) Clone() Shift {
	return slices.Clone(s)
}
