// Package layout implements the grid layout engine: packing an ordered item
// list onto a column grid, normalizing drag paths into unit steps, and the
// transactional move/resize/insert/remove operations with cascading
// displacement.
//
// The package is split along the data flow:
//
//   - [InterpretItems] and [TransformItems] convert between ordered item
//     lists (with per-column-count span hints) and concrete [grid.Grid]
//     snapshots.
//   - [NormalizePath] collapses raw drag or keyboard waypoints into a
//     minimal, cycle-free sequence of single-cell steps.
//   - [Engine] wraps one immutable grid snapshot and derives new snapshots
//     plus a [Shift] per operation; the caller decides whether to commit.
//
// All functions are synchronous and allocate no shared mutable state; the
// caller is responsible for serializing concurrent gestures into sequential
// engine calls.
package layout
