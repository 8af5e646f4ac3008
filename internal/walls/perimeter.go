// Package walls traces the outline of a room grid and places wall modules, corners and doorways along it.
//
// A perimeter cell is an inside cell with an outside neighbor. Perimeter cells are grouped by the
// direction they face and split into runs of consecutive cells; each run is packed with wall modules
// largest first, the 1-D counterpart of the floor tile packer.
package walls

import (
	"fmt"
	"sort"

	"github.com/Faultbox/roomgen/pkg/grid"
)

// OutsideRule says which cell states are outside the room.
type OutsideRule int

// Outside rules.
const (
	// OutsideEmpty treats Empty and WallMesh cells as outside. Void cells are reserved holes and get no walls.
	OutsideEmpty OutsideRule = iota
	// OutsideVoid treats Void and WallMesh cells as outside; Empty cells belong to the room.
	OutsideVoid
)

// String returns the rule name.
func (r OutsideRule) String() string {
	switch r {
	case OutsideEmpty:
		return "outside-empty"
	case OutsideVoid:
		return "outside-void"
	default:
		return fmt.Sprintf("OutsideRule(%d)", int(r))
	}
}

// Inside reports whether a cell in state c is part of the room.
func (r OutsideRule) Inside(c grid.CellType) bool {
	switch c {
	case grid.FloorMesh, grid.Custom:
		return true
	case grid.Empty:
		return r == OutsideVoid
	}
	return false
}

// Outside reports whether p lies outside the room. Cells off the grid are always outside.
func (r OutsideRule) Outside(g *grid.Grid, p grid.Point) bool {
	if !g.IsValid(p) {
		return true
	}
	switch g.Get(p) {
	case grid.WallMesh:
		return true
	case grid.Empty:
		return r == OutsideEmpty
	case grid.Void:
		return r == OutsideVoid
	}
	return false
}

// Perimeter holds the perimeter cells for each facing, indexed by grid.Direction, in row-major order.
// A cell appears once for every direction it needs a wall in.
type Perimeter [4][]grid.Point

// FindPerimeter scans g for inside cells with outside neighbors.
func FindPerimeter(g *grid.Grid, rule OutsideRule) Perimeter {
	var p Perimeter
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := grid.Point{X: x, Y: y}
			if !rule.Inside(g.Get(c)) {
				continue
			}
			for _, d := range grid.Directions {
				if rule.Outside(g, c.Neighbor(d)) {
					p[d] = append(p[d], c)
				}
			}
		}
	}
	return p
}

// Len returns the number of wall-facing cell sides.
func (p Perimeter) Len() int {
	n := 0
	for _, cells := range p {
		n += len(cells)
	}
	return n
}

// FillOrder is the order facings are walled in.
var FillOrder = [4]grid.Direction{grid.North, grid.South, grid.East, grid.West}

// Run is a maximal line of consecutive perimeter cells sharing a facing.
type Run struct {
	Facing grid.Direction
	Line   int // Row for north and south runs, column for east and west runs
	Start  int // First coordinate along the run axis
	Length int
}

// Cell returns the i-th cell of the run.
func (r Run) Cell(i int) grid.Point {
	return r.Facing.Compose(r.Start+i, r.Line)
}

// Cells returns every cell of the run in order.
func (r Run) Cells() []grid.Point {
	out := make([]grid.Point, r.Length)
	for i := range out {
		out[i] = r.Cell(i)
	}
	return out
}

// Contains reports whether the along-run interval [start, start+width) lies inside the run.
func (r Run) Contains(start, width int) bool {
	return width > 0 && start >= r.Start && start+width <= r.Start+r.Length
}

func (r Run) String() string {
	return fmt.Sprintf("%s line %d [%d,%d)", r.Facing, r.Line, r.Start, r.Start+r.Length)
}

// SplitRuns splits the cells facing one direction into runs. Cells for which skip returns true
// break the run they fall in. Runs come out ordered by line, then by position along the line.
func SplitRuns(cells []grid.Point, facing grid.Direction, skip func(grid.Point) bool) []Run {
	kept := make([]grid.Point, 0, len(cells))
	for _, c := range cells {
		if skip == nil || !skip(c) {
			kept = append(kept, c)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		li, lj := facing.Across(kept[i]), facing.Across(kept[j])
		if li != lj {
			return li < lj
		}
		return facing.Along(kept[i]) < facing.Along(kept[j])
	})

	var runs []Run
	for _, c := range kept {
		line, along := facing.Across(c), facing.Along(c)
		if n := len(runs); n > 0 {
			last := &runs[n-1]
			if last.Line == line && last.Start+last.Length == along {
				last.Length++
				continue
			}
		}
		runs = append(runs, Run{Facing: facing, Line: line, Start: along, Length: 1})
	}
	return runs
}

// Runs segments every facing of p in FillOrder.
func (p Perimeter) Runs(skip func(grid.Direction, grid.Point) bool) []Run {
	var out []Run
	for _, d := range FillOrder {
		facing := d
		var cellSkip func(grid.Point) bool
		if skip != nil {
			cellSkip = func(c grid.Point) bool { return skip(facing, c) }
		}
		out = append(out, SplitRuns(p[d], d, cellSkip)...)
	}
	return out
}

// Yaw returns the rotation in degrees of a piece facing d: north 0, east 90, south 180, west 270.
func Yaw(d grid.Direction) int {
	return int(d) * 90
}

// edgeCoord returns the room-space coordinate, across the run axis, of the cell edge a wall facing d sits on.
func edgeCoord(d grid.Direction, line int, cellSize float32) float32 {
	if d == grid.North || d == grid.East {
		return float32(line+1) * cellSize
	}
	return float32(line) * cellSize
}
