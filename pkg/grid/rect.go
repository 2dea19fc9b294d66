package grid

// Position is an integer cell coordinate on the grid. Columns (X) run left
// to right starting at 0; rows (Y) run top to bottom starting at 0. Rows are
// unbounded, columns are limited by the grid's column count.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Add returns the position translated by dx, dy.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Rect is a placed item: an identity plus an axis-aligned cell rectangle.
// X, Y address the top-left cell; W, H are the spans in cells and must be
// positive for the rect to be part of a valid grid.
type Rect struct {
	ID string `json:"id" bson:"id"`
	X  int    `json:"x" bson:"x"`
	Y  int    `json:"y" bson:"y"`
	W  int    `json:"width" bson:"width"`
	H  int    `json:"height" bson:"height"`
}

// Right returns the exclusive right edge (first column not covered).
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge (first row not covered).
func (r Rect) Bottom() int { return r.Y + r.H }

// Pos returns the top-left cell of the rect.
func (r Rect) Pos() Position { return Position{X: r.X, Y: r.Y} }

// Contains reports whether the rect covers the given cell.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Overlaps reports whether the two rects share at least one cell.
// Zero-sized rects never overlap anything.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}
