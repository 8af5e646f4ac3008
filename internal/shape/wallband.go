package shape

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// IrregularWallParams configures variable-depth wall bands along the grid edges.
type IrregularWallParams struct {
	Enabled          bool
	Chance2Cell      float32
	Chance4Cell      float32
	MinSegmentLength int
	MaxSegmentLength int
}

// Normalized clamps the lengths and makes the two depth chances sum to 1.
// Both chances at zero fall back to an even split.
func (p IrregularWallParams) Normalized() IrregularWallParams {
	p.Chance2Cell = clamp01(p.Chance2Cell)
	p.Chance4Cell = clamp01(p.Chance4Cell)
	if total := p.Chance2Cell + p.Chance4Cell; total > 0 {
		p.Chance2Cell /= total
		p.Chance4Cell /= total
	} else {
		p.Chance2Cell, p.Chance4Cell = 0.5, 0.5
	}
	if p.MinSegmentLength < 2 {
		p.MinSegmentLength = 2
	}
	if p.MaxSegmentLength < p.MinSegmentLength {
		p.MaxSegmentLength = p.MinSegmentLength
	}
	return p
}

// bandOrder is the order grid edges draw their bands in.
var bandOrder = [4]grid.Direction{grid.North, grid.South, grid.East, grid.West}

// MarkIrregularWalls walks each grid edge in random-length segments and marks a 2 or 4 cell deep
// band inward from the edge as WallMesh, leaving floor cells alone. Returns the cells marked.
func MarkIrregularWalls(g *grid.Grid, r *rng.Stream, params IrregularWallParams) int {
	p := params.Normalized()
	marked := 0
	segments := 0

	for _, edge := range bandOrder {
		length := g.Width
		if edge == grid.East || edge == grid.West {
			length = g.Height
		}
		inward := edge.Opposite().Vector()

		for pos := 0; pos < length; {
			seg := r.RandRange(p.MinSegmentLength, p.MaxSegmentLength)
			if seg > length-pos {
				seg = length - pos
			}
			depth := 4
			if r.FRand() < p.Chance2Cell {
				depth = 2
			}

			for l := 0; l < seg; l++ {
				cell := edgeCell(g, edge, pos+l)
				for d := 0; d < depth; d++ {
					c := cell.Add(inward.Scale(d))
					if g.IsValid(c) && !g.Is(c, grid.FloorMesh) && !g.Is(c, grid.WallMesh) {
						g.Set(c, grid.WallMesh)
						marked++
					}
				}
			}
			pos += seg
			segments++
		}
	}

	logger.Named("shape").Debug("irregular wall bands",
		zap.Int("segments", segments),
		zap.Int("cells", marked))
	return marked
}

// edgeCell returns the cell at offset along the given grid edge.
func edgeCell(g *grid.Grid, edge grid.Direction, offset int) grid.Point {
	switch edge {
	case grid.North:
		return grid.Point{X: offset, Y: g.Height - 1}
	case grid.South:
		return grid.Point{X: offset, Y: 0}
	case grid.East:
		return grid.Point{X: g.Width - 1, Y: offset}
	default:
		return grid.Point{X: 0, Y: offset}
	}
}

// MarkStandardWalls turns every floor cell touching the outside into WallMesh, together with its
// Empty neighbors, giving a uniform 2-cell wall ring. Returns the boundary cells converted.
func MarkStandardWalls(g *grid.Grid) int {
	var boundary []grid.Point
	for _, p := range g.CellsOfType(grid.FloorMesh) {
		for _, d := range grid.Directions {
			n := p.Neighbor(d)
			if !g.IsValid(n) || g.Is(n, grid.Empty) {
				boundary = append(boundary, p)
				break
			}
		}
	}

	for _, p := range boundary {
		g.Set(p, grid.WallMesh)
		for _, d := range grid.Directions {
			n := p.Neighbor(d)
			if g.Is(n, grid.Empty) {
				g.Set(n, grid.WallMesh)
			}
		}
	}
	return len(boundary)
}
