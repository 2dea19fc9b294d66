package layout

import (
	"slices"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

// NormalizePath collapses a raw waypoint sequence (a continuous drag or
// discrete keyboard jumps) into the minimal sequence of single-cell steps
// reaching the same net destination. The first waypoint is the start cell
// and is not part of the returned steps.
//
// Normalization rules:
//
//   - consecutive duplicate waypoints collapse to one;
//   - gaps between waypoints are filled with unit steps, X axis first, so
//     every consecutive pair differs by exactly one cell in one axis;
//   - revisiting any previously accepted cell splices out the loop, keeping
//     the shortest prefix that reaches the revisited cell;
//   - a path whose net displacement is zero normalizes to empty.
//
// The engine replays the result one unit move at a time, which keeps each
// displacement a single-cell conflict.
func NormalizePath(points []grid.Position) []grid.Position {
	if len(points) == 0 {
		return nil
	}

	accepted := []grid.Position{points[0]}
	for _, p := range points[1:] {
		last := accepted[len(accepted)-1]
		if p == last {
			continue
		}
		for _, step := range unitSteps(last, p) {
			if i := slices.Index(accepted, step); i >= 0 {
				accepted = accepted[:i+1]
			} else {
				accepted = append(accepted, step)
			}
		}
	}
	return slices.Clone(accepted[1:])
}

// unitSteps expands the straight or L-shaped route from one cell to
// another into the cells visited after leaving from, X axis first.
func unitSteps(from, to grid.Position) []grid.Position {
	steps := make([]grid.Position, 0, abs(to.X-from.X)+abs(to.Y-from.Y))
	x, y := from.X, from.Y
	for x != to.X {
		x += sign(to.X - x)
		steps = append(steps, grid.Position{X: x, Y: y})
	}
	for y != to.Y {
		y += sign(to.Y - y)
		steps = append(steps, grid.Position{X: x, Y: y})
	}
	return steps
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
