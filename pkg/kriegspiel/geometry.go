package kriegspiel

import "slices"

// CellID is the dense index y*Width+x of a board cell.
type CellID int

// InvalidCell marks an off-board reference or an unset cell slot.
const InvalidCell CellID = -1

// Position is a board coordinate, or a direction-relative offset when
// returned as part of a Ray.
type Position struct {
	X int
	Y int
}

// Size holds the board dimensions.
type Size struct {
	Width  int
	Height int
}

// ReferenceSize is the 50x40 board every built-in scenario is laid out for.
var ReferenceSize = Size{Width: 50, Height: 40}

// Cells returns the number of cells on the board.
func (s Size) Cells() int {
	return s.Width * s.Height
}

// Cell converts a coordinate to its CellID, or InvalidCell when off-board.
func (s Size) Cell(x, y int) CellID {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return InvalidCell
	}
	return CellID(y*s.Width + x)
}

// Pos converts a CellID back to its coordinate.
func (s Size) Pos(id CellID) Position {
	return Position{X: int(id) % s.Width, Y: int(id) / s.Width}
}

// Contains reports whether id addresses a cell on the board.
func (s Size) Contains(id CellID) bool {
	return id >= 0 && int(id) < s.Cells()
}

// CellDistance is Distance between two cells of this board.
func (s Size) CellDistance(a, b CellID) int {
	return Distance(s.Pos(a), s.Pos(b))
}

// Distance is the Chebyshev (king-move) distance.
func Distance(a, b Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Unbounded as the maxStep of RayCast walks until the board edge.
const Unbounded = -1

// PassFunc decides whether a ray passes through cell. The unit is nil for an
// empty cell. Returning false ends the ray before that cell.
type PassFunc func(u *Unit, cell CellID) bool

// Ray is one compass direction of a RayCast, listing the admitted cells in
// walking order together with their offsets from the origin.
type Ray struct {
	Dir     Position
	Cells   []CellID
	Offsets []Position
}

// compass lists the eight directions in scan order: x delta outer, y delta
// inner. Consumers that display rays rely on this order.
var compass = [8]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// RayCast walks outward from origin in each of the eight compass directions,
// visiting steps minStep..maxStep inclusive. A step that leaves the board or
// that pass rejects ends its direction. Directions that admitted no cell are
// omitted from the result.
//
// With minStep 0 the origin itself is tested once per direction, so callers
// that need a set must deduplicate.
func RayCast(gs *GameState, origin CellID, pass PassFunc, minStep, maxStep int) []Ray {
	if maxStep == Unbounded {
		maxStep = max(gs.Size.Width, gs.Size.Height)
	}
	start := gs.Size.Pos(origin)
	var rays []Ray
	for _, dir := range compass {
		var ray Ray
		for n := minStep; n <= maxStep; n++ {
			cell := gs.Size.Cell(start.X+n*dir.X, start.Y+n*dir.Y)
			if cell == InvalidCell || !pass(gs.Units[cell], cell) {
				break
			}
			ray.Cells = append(ray.Cells, cell)
			ray.Offsets = append(ray.Offsets, Position{X: n * dir.X, Y: n * dir.Y})
		}
		if len(ray.Cells) > 0 {
			ray.Dir = dir
			rays = append(rays, ray)
		}
	}
	return rays
}

// rayCells flattens rays into one slice, keeping walking order.
func rayCells(rays []Ray) []CellID {
	var cells []CellID
	for _, r := range rays {
		cells = append(cells, r.Cells...)
	}
	return cells
}

// CellSet is an unordered set of cells.
type CellSet map[CellID]bool

// Sorted returns the members in ascending order.
func (s CellSet) Sorted() []CellID {
	out := make([]CellID, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

func (s CellSet) addAll(cells []CellID) {
	for _, c := range cells {
		s[c] = true
	}
}
