package grid

import "github.com/zyedidia/generic/mapset"

// FloodFill returns the 4-connected region of cells with state t that contains start.
// The result is empty if start is out of bounds or has a different state.
func (g *Grid) FloodFill(start Point, t CellType) []Point {
	visited := mapset.New[Point]()
	return g.floodFill(start, t, visited)
}

func (g *Grid) floodFill(start Point, t CellType, visited mapset.Set[Point]) []Point {
	var region []Point
	stack := []Point{start}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited.Has(current) || !g.Is(current, t) {
			continue
		}
		visited.Put(current)
		region = append(region, current)

		for _, d := range Directions {
			stack = append(stack, current.Neighbor(d))
		}
	}
	return region
}

// Regions labels every 4-connected region of cells with state t.
// Regions are ordered by their first cell in row-major order.
func (g *Grid) Regions(t CellType) [][]Point {
	visited := mapset.New[Point]()
	var regions [][]Point

	for i, c := range g.Cells {
		if c != t {
			continue
		}
		p := g.Coord(i)
		if visited.Has(p) {
			continue
		}
		regions = append(regions, g.floodFill(p, t, visited))
	}
	return regions
}

// KeepLargestRegion clears every region of state t except the largest one to state clear.
// Ties go to the region found first. Returns the number of regions removed and the kept size.
func (g *Grid) KeepLargestRegion(t, clear CellType) (removed, kept int) {
	regions := g.Regions(t)
	if len(regions) <= 1 {
		if len(regions) == 1 {
			kept = len(regions[0])
		}
		return 0, kept
	}

	largest := 0
	for i, r := range regions {
		if len(r) > len(regions[largest]) {
			largest = i
		}
	}

	for i, r := range regions {
		if i == largest {
			continue
		}
		for _, p := range r {
			g.Set(p, clear)
		}
	}
	return len(regions) - 1, len(regions[largest])
}

// CountNeighbors counts cells with state t in the square window of the given radius around p,
// excluding p itself. Out-of-bounds cells count as matching.
func (g *Grid) CountNeighbors(p Point, radius int, t CellType) int {
	count := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Point{p.X + dx, p.Y + dy}
			if !g.IsValid(n) || g.Get(n) == t {
				count++
			}
		}
	}
	return count
}

// Smooth runs cellular-automata passes over the grid. A cell of state occupied with fewer than 4
// occupied neighbors becomes vacant; any other cell with 5 or more becomes occupied. A cell with
// exactly 4 keeps its state. Each pass reads the previous pass only.
func (g *Grid) Smooth(passes int, occupied, vacant CellType) {
	next := make([]CellType, len(g.Cells))
	for pass := 0; pass < passes; pass++ {
		copy(next, g.Cells)
		for i, c := range g.Cells {
			n := g.CountNeighbors(g.Coord(i), 1, occupied)
			if c == occupied {
				if n < 4 {
					next[i] = vacant
				}
			} else if n >= 5 {
				next[i] = occupied
			}
		}
		copy(g.Cells, next)
	}
}
