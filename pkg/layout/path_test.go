package layout

import (
	"slices"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name   string
		points []grid.Position
		want   []grid.Position
	}{
		{
			name:   "empty input",
			points: nil,
			want:   nil,
		},
		{
			name:   "single point has no steps",
			points: []grid.Position{{X: 3, Y: 2}},
			want:   nil,
		},
		{
			name:   "consecutive duplicates collapse",
			points: []grid.Position{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
			want:   []grid.Position{{X: 1, Y: 0}},
		},
		{
			name:   "adjacent waypoints pass through",
			points: []grid.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
			want:   []grid.Position{{X: 1, Y: 0}, {X: 1, Y: 1}},
		},
		{
			name:   "gaps fill with unit steps X axis first",
			points: []grid.Position{{X: 0, Y: 0}, {X: 2, Y: 1}},
			want:   []grid.Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}},
		},
		{
			name:   "negative direction",
			points: []grid.Position{{X: 2, Y: 2}, {X: 0, Y: 2}},
			want:   []grid.Position{{X: 1, Y: 2}, {X: 0, Y: 2}},
		},
		{
			name:   "revisit splices out the loop",
			points: []grid.Position{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
			want:   []grid.Position{{X: 1, Y: 0}},
		},
		{
			name:   "net zero displacement normalizes to empty",
			points: []grid.Position{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}},
			want:   nil,
		},
		{
			name:   "rectangle back to start is empty",
			points: []grid.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0}},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePath(tt.points)
			if len(got) != len(tt.want) {
				t.Fatalf("NormalizePath() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("NormalizePath()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNormalizePathUnitSteps(t *testing.T) {
	// Every consecutive pair of the result (including the implicit start)
	// must differ by exactly one cell in exactly one axis.
	points := []grid.Position{{X: 0, Y: 0}, {X: 3, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 4}}
	steps := NormalizePath(points)
	if len(steps) == 0 {
		t.Fatal("NormalizePath() returned no steps")
	}

	prev := points[0]
	for i, s := range steps {
		dx, dy := s.X-prev.X, s.Y-prev.Y
		if abs(dx)+abs(dy) != 1 {
			t.Errorf("step %d: (%d,%d) -> (%d,%d) is not a unit step", i, prev.X, prev.Y, s.X, s.Y)
		}
		prev = s
	}
	if last := steps[len(steps)-1]; last != (grid.Position{X: 1, Y: 4}) {
		t.Errorf("final step = %v, want {1 4}", last)
	}
}

func TestNormalizePathDoesNotAliasInput(t *testing.T) {
	points := []grid.Position{{X: 0, Y: 0}, {X: 2, Y: 0}}
	got := NormalizePath(points)
	want := slices.Clone(got)

	points[1] = grid.Position{X: 9, Y: 9}
	if !slices.Equal(got, want) {
		t.Error("NormalizePath result should not alias the input slice")
	}
}
