// Package grid provides the cell grid that room shapes are carved into.
package grid

import "fmt"

// CellType describes what a single cell of a room grid is.
type CellType uint8

// Cell type constants.
const (
	Empty     CellType = iota // Fillable, not yet filled
	FloorMesh                 // Decided to be floor
	WallMesh                  // Decided to be wall
	Void                      // Outside the room, never fillable
	Custom                    // Inside the footprint, awaiting floor-style resolution
)

// String returns a human-readable cell type name.
func (t CellType) String() string {
	switch t {
	case Empty:
		return "Empty"
	case FloorMesh:
		return "Floor"
	case WallMesh:
		return "Wall"
	case Void:
		return "Void"
	case Custom:
		return "Custom"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Point is an integer cell coordinate or a cell-count size.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Add returns p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X + other.X, p.Y + other.Y}
}

// Sub returns p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X - other.X, p.Y - other.Y}
}

// Scale returns p * s.
func (p Point) Scale(s int) Point {
	return Point{p.X * s, p.Y * s}
}

// Swap returns the point with X and Y exchanged (a footprint rotated by 90 degrees).
func (p Point) Swap() Point {
	return Point{p.Y, p.X}
}

// Area returns X*Y, treating the point as a size.
func (p Point) Area() int {
	return p.X * p.Y
}

// String returns "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a row-major 2D array of cell states. Cell (x, y) lives at index y*Width+x.
// Width and Height never change after New.
type Grid struct {
	Width  int
	Height int
	Cells  []CellType
}

// New allocates a width x height grid filled with fill.
// Non-positive dimensions produce an empty grid.
func New(width, height int, fill CellType) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]CellType, width*height),
	}
	g.Fill(fill)
	return g
}

// Size returns the grid dimensions as a point.
func (g *Grid) Size() Point {
	return Point{g.Width, g.Height}
}

// Total returns the number of cells.
func (g *Grid) Total() int {
	return g.Width * g.Height
}

// Fill sets every cell to t.
func (g *Grid) Fill(t CellType) {
	for i := range g.Cells {
		g.Cells[i] = t
	}
}

// IsValid reports whether p lies inside [0,Width) x [0,Height).
func (g *Grid) IsValid(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// Index converts a coordinate to its slice index. Returns -1 if p is out of bounds.
func (g *Grid) Index(p Point) int {
	if !g.IsValid(p) {
		return -1
	}
	return p.Y*g.Width + p.X
}

// Coord converts a slice index back to a coordinate.
func (g *Grid) Coord(index int) Point {
	if g.Width == 0 {
		return Point{}
	}
	return Point{index % g.Width, index / g.Width}
}

// Get returns the state of p. Out-of-range reads return Void.
func (g *Grid) Get(p Point) CellType {
	if !g.IsValid(p) {
		return Void
	}
	return g.Cells[p.Y*g.Width+p.X]
}

// Set changes the state of p. Writes outside the grid are ignored and report false.
func (g *Grid) Set(p Point, t CellType) bool {
	if !g.IsValid(p) {
		return false
	}
	g.Cells[p.Y*g.Width+p.X] = t
	return true
}

// Is reports whether p is in bounds and has state t.
func (g *Grid) Is(p Point, t CellType) bool {
	return g.IsValid(p) && g.Cells[p.Y*g.Width+p.X] == t
}

// CountByType returns how many cells have state t.
func (g *Grid) CountByType(t CellType) int {
	n := 0
	for _, c := range g.Cells {
		if c == t {
			n++
		}
	}
	return n
}

// CellsOfType returns all cells with state t in row-major order.
func (g *Grid) CellsOfType(t CellType) []Point {
	var cells []Point
	for i, c := range g.Cells {
		if c == t {
			cells = append(cells, g.Coord(i))
		}
	}
	return cells
}

// Snapshot returns a copy of the cell states.
func (g *Grid) Snapshot() []CellType {
	out := make([]CellType, len(g.Cells))
	copy(out, g.Cells)
	return out
}

// Restore overwrites the cell states from a snapshot of the same grid.
func (g *Grid) Restore(snapshot []CellType) {
	if len(snapshot) != len(g.Cells) {
		return
	}
	copy(g.Cells, snapshot)
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{
		Width:  g.Width,
		Height: g.Height,
		Cells:  g.Snapshot(),
	}
}

// IsAreaAvailable reports whether the size.X x size.Y rectangle at origin is fully in bounds and Empty.
func (g *Grid) IsAreaAvailable(origin, size Point) bool {
	if size.X <= 0 || size.Y <= 0 {
		return false
	}
	for y := origin.Y; y < origin.Y+size.Y; y++ {
		for x := origin.X; x < origin.X+size.X; x++ {
			if !g.Is(Point{x, y}, Empty) {
				return false
			}
		}
	}
	return true
}

// FillRect sets every in-bounds cell of the rectangle to t and returns how many cells were written.
func (g *Grid) FillRect(origin, size Point, t CellType) int {
	n := 0
	for y := origin.Y; y < origin.Y+size.Y; y++ {
		for x := origin.X; x < origin.X+size.X; x++ {
			if g.Set(Point{x, y}, t) {
				n++
			}
		}
	}
	return n
}
