// Package tiling fills floor and ceiling areas with non-overlapping rectangular tiles.
//
// Packing runs in fixed phases over a target rectangle of the grid:
//
//  1. forced-empty rectangles are marked Void so nothing covers them
//  2. forced placements are put down where they fit
//  3. greedy passes, one footprint size at a time from 4x4 down to 1x1, scanning row-major
//  4. gap fill with whatever fits, filler tiles included
//
// Only Empty cells are fillable. Covered cells become FloorMesh.
package tiling

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/math"
	"github.com/Faultbox/roomgen/pkg/placement"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// Passes are the greedy footprint sizes in the order they are tried.
var Passes = []grid.Point{
	{X: 4, Y: 4},
	{X: 4, Y: 2}, {X: 2, Y: 4},
	{X: 2, Y: 2},
	{X: 2, Y: 1}, {X: 1, Y: 2},
	{X: 1, Y: 1},
}

// Job is one fill request.
type Job struct {
	Region      grid.Rect // Cells to fill; an empty rect means the whole grid
	Tiles       []catalog.MeshPlacementInfo
	Forced      []catalog.ForcedPlacement
	ForcedEmpty []grid.Rect
}

// JobFromFloor builds a whole-grid job from a floor style.
func JobFromFloor(style *catalog.FloorStyle) Job {
	if style == nil {
		return Job{}
	}
	return Job{Tiles: style.Tiles, Forced: style.ForcedPlacements, ForcedEmpty: style.ForcedEmpty}
}

// Packer places tiles for one output kind at one height.
type Packer struct {
	Rand     *rng.Stream
	CellSize float32
	Z        float32        // Height of the placed tiles
	Kind     placement.Kind // Floor or Ceiling
}

// Fill packs job.Region of g and returns the records in placement order.
func (p *Packer) Fill(g *grid.Grid, job Job) ([]placement.Record, Stats) {
	log := logger.Named("tiling")
	region := g.Bounds()
	if !job.Region.Empty() {
		region = g.Clip(job.Region)
	}

	var stats Stats
	var out []placement.Record
	before := countEmpty(g, region)

	stats.ForcedEmpty = p.forceEmpty(g, region, job.ForcedEmpty)

	for _, fp := range job.Forced {
		rec, ok := p.placeForced(g, region, fp)
		if !ok {
			stats.ForcedSkipped++
			log.Warn("forced placement does not fit, skipped",
				zap.String("mesh", fp.Tile.Mesh),
				zap.Stringer("cell", fp.Cell),
				zap.Int("rotation", fp.Rotation))
			continue
		}
		stats.Forced++
		out = append(out, rec)
	}

	regular := make([]catalog.MeshPlacementInfo, 0, len(job.Tiles))
	for _, t := range job.Tiles {
		if !t.Filler {
			regular = append(regular, t)
		}
	}
	for _, size := range Passes {
		recs := p.fillSize(g, region, regular, size)
		for _, r := range recs {
			stats.count(classify(r.Footprint.Area()))
		}
		out = append(out, recs...)
	}

	gaps := p.fillGaps(g, region, job.Tiles)
	stats.Filler += len(gaps)
	out = append(out, gaps...)

	stats.Remaining = countEmpty(g, region)
	log.Info("tiles placed",
		zap.Stringer("kind", p.Kind),
		zap.Int("total", stats.Total()),
		zap.Int("forced", stats.Forced),
		zap.Int("large", stats.Large),
		zap.Int("medium", stats.Medium),
		zap.Int("small", stats.Small),
		zap.Int("filler", stats.Filler),
		zap.Int("empty_before", before),
		zap.Int("empty_after", stats.Remaining))
	return out, stats
}

// FillMask packs only the cells whose state is in fillable, whatever their position.
// Cells outside the mask are hidden from the packer and put back afterwards, so irregular
// footprints keep their shape. Mask cells left uncovered revert to their original state.
func (p *Packer) FillMask(g *grid.Grid, fillable []grid.CellType, job Job) ([]placement.Record, Stats) {
	original := g.Snapshot()
	inMask := func(c grid.CellType) bool {
		for _, f := range fillable {
			if c == f {
				return true
			}
		}
		return false
	}

	for i, c := range g.Cells {
		switch {
		case inMask(c):
			g.Cells[i] = grid.Empty
		case c == grid.Empty:
			g.Cells[i] = grid.Void
		}
	}

	records, stats := p.Fill(g, job)

	for i, was := range original {
		if !inMask(was) || g.Cells[i] == grid.Empty {
			g.Cells[i] = was
		}
	}
	return records, stats
}

// forceEmpty marks the Empty cells of each rect inside region as Void and returns how many it marked.
func (p *Packer) forceEmpty(g *grid.Grid, region grid.Rect, rects []grid.Rect) int {
	marked := 0
	for _, r := range rects {
		region.Intersect(r).Each(func(c grid.Point) {
			if g.Is(c, grid.Empty) {
				g.Set(c, grid.Void)
				marked++
			}
		})
	}
	return marked
}

func (p *Packer) placeForced(g *grid.Grid, region grid.Rect, fp catalog.ForcedPlacement) (placement.Record, bool) {
	rot := math.NormalizeYaw(fp.Rotation)
	size := catalog.RotatedFootprint(fp.Tile.Footprint, rot)
	if !region.ContainsRect(grid.Rect{Min: fp.Cell, Size: size}) || !g.IsAreaAvailable(fp.Cell, size) {
		return placement.Record{}, false
	}
	return p.place(g, fp.Tile.Mesh, fp.Cell, size, rot), true
}

// fillSize runs one greedy pass for a single footprint size.
func (p *Packer) fillSize(g *grid.Grid, region grid.Rect, tiles []catalog.MeshPlacementInfo, size grid.Point) []placement.Record {
	matches, weights := matching(tiles, size)
	if len(matches) == 0 {
		return nil
	}

	var out []placement.Record
	far := region.Max()
	for y := region.Min.Y; y+size.Y-1 <= far.Y; y++ {
		for x := region.Min.X; x+size.X-1 <= far.X; x++ {
			origin := grid.Point{X: x, Y: y}
			if !g.IsAreaAvailable(origin, size) {
				continue
			}
			tile := matches[p.Rand.WeightedIndex(weights)]
			rots := tile.ValidRotations(size)
			rot := rots[p.Rand.Intn(len(rots))]
			out = append(out, p.place(g, tile.Mesh, origin, size, rot))
		}
	}
	return out
}

// fillGaps tries every footprint the pool can produce, largest first, at each remaining Empty cell.
func (p *Packer) fillGaps(g *grid.Grid, region grid.Rect, tiles []catalog.MeshPlacementInfo) []placement.Record {
	sizes := footprints(tiles)
	if len(sizes) == 0 {
		return nil
	}

	var out []placement.Record
	region.Each(func(origin grid.Point) {
		if !g.Is(origin, grid.Empty) {
			return
		}
		for _, size := range sizes {
			if !region.ContainsRect(grid.Rect{Min: origin, Size: size}) || !g.IsAreaAvailable(origin, size) {
				continue
			}
			matches, weights := matching(tiles, size)
			tile := matches[p.Rand.WeightedIndex(weights)]
			rots := tile.ValidRotations(size)
			out = append(out, p.place(g, tile.Mesh, origin, size, rots[p.Rand.Intn(len(rots))]))
			return
		}
	})
	return out
}

// place marks the footprint covered and builds its record, centered on the footprint.
func (p *Packer) place(g *grid.Grid, mesh string, origin, size grid.Point, rot int) placement.Record {
	g.FillRect(origin, size, grid.FloorMesh)
	return placement.Record{
		Kind:      p.Kind,
		Mesh:      mesh,
		Cell:      origin,
		Footprint: size,
		Rotation:  rot,
		Transform: math.Transform{
			Position: math.Vec3{
				X: (float32(origin.X) + float32(size.X)/2) * p.CellSize,
				Y: (float32(origin.Y) + float32(size.Y)/2) * p.CellSize,
				Z: p.Z,
			},
			Yaw: float32(rot),
		},
	}
}

// matching returns the tiles that can cover size exactly, with their weights.
func matching(tiles []catalog.MeshPlacementInfo, size grid.Point) ([]catalog.MeshPlacementInfo, []float32) {
	var out []catalog.MeshPlacementInfo
	var weights []float32
	for _, t := range tiles {
		if t.Matches(size) {
			out = append(out, t)
			weights = append(weights, t.Weight)
		}
	}
	return out, weights
}

// footprints lists every distinct rotated footprint of tiles, largest area first, wider first on ties.
func footprints(tiles []catalog.MeshPlacementInfo) []grid.Point {
	seen := make(map[grid.Point]bool)
	var out []grid.Point
	for _, t := range tiles {
		for _, r := range t.Rotations() {
			fp := catalog.RotatedFootprint(t.Footprint, r)
			if !seen[fp] {
				seen[fp] = true
				out = append(out, fp)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Area() != out[j].Area() {
			return out[i].Area() > out[j].Area()
		}
		if out[i].X != out[j].X {
			return out[i].X > out[j].X
		}
		return out[i].Y > out[j].Y
	})
	return out
}

func countEmpty(g *grid.Grid, region grid.Rect) int {
	n := 0
	region.Each(func(c grid.Point) {
		if g.Is(c, grid.Empty) {
			n++
		}
	})
	return n
}
