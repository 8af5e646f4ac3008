package room

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/config"
	"github.com/Faultbox/roomgen/internal/shape"
	"github.com/Faultbox/roomgen/internal/tiling"
	"github.com/Faultbox/roomgen/internal/walls"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/placement"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// SetSeed sets the seed CreateGrid rewinds to. -1 picks a time-based seed, which is logged so the
// run can be reproduced.
func (g *Generator) SetSeed(seed int64) {
	if seed == -1 {
		seed = rng.TimeSeed()
		g.log().Info("using time-based seed", zap.Int64("seed", seed))
	}
	g.seed = seed
	g.rand.Reset(seed)
}

// SetCellSize sets the cell size used for rooms that do not set their own. Non-positive sizes are ignored.
func (g *Generator) SetCellSize(size float32) {
	if size > 0 {
		g.baseCellSize = size
	}
}

// SetRandomWalkParams stores the random-walk tuning, clamped into range.
func (g *Generator) SetRandomWalkParams(p shape.RandomWalkParams) {
	g.randomWalk = p.Clamped()
}

// SetIrregularWallParams stores the wall band tuning with its chances normalized.
func (g *Generator) SetIrregularWallParams(p shape.IrregularWallParams) {
	g.irregular = p.Normalized()
}

// SetChunkParams stores the chunk tuning with its chances normalized.
func (g *Generator) SetChunkParams(p shape.ChunkParams) {
	g.chunk = p.Normalized()
}

// SetProtrusionParams stores the protrusion tuning, clamped into range.
func (g *Generator) SetProtrusionParams(p shape.ProtrusionParams) {
	g.protrusion = p.Clamped()
}

// Configure applies every generation setting of cfg.
func (g *Generator) Configure(cfg *config.Config) {
	rw := cfg.RandomWalk
	g.SetRandomWalkParams(shape.RandomWalkParams{
		FillRatio:       rw.FillRatio,
		BranchChance:    rw.BranchChance,
		DirChangeChance: rw.DirChangeChance,
		MaxWalkers:      rw.MaxWalkers,
		SmoothingPasses: rw.SmoothingPasses,
		RemoveIslands:   rw.RemoveIslands,
		MarkWalls:       rw.MarkWalls,
	})
	iw := cfg.IrregularWalls
	g.SetIrregularWallParams(shape.IrregularWallParams{
		Enabled:          iw.Enabled,
		Chance2Cell:      iw.Chance2Cell,
		Chance4Cell:      iw.Chance4Cell,
		MinSegmentLength: iw.MinSegmentLength,
		MaxSegmentLength: iw.MaxSegmentLength,
	})
	ch := cfg.Chunk
	g.SetChunkParams(shape.ChunkParams{
		MinChunks:  ch.MinChunks,
		MaxChunks:  ch.MaxChunks,
		Chance2x2:  ch.Chance2x2,
		Chance4x4:  ch.Chance4x4,
		ChanceRect: ch.ChanceRect,
		MarkCustom: ch.MarkCustom,
	})
	pr := cfg.Protrusion
	g.SetProtrusionParams(shape.ProtrusionParams{
		BasePercentage: pr.BasePercentage,
		MinProtrusions: pr.MinProtrusions,
		MaxProtrusions: pr.MaxProtrusions,
		MinSize:        pr.MinSize,
		MaxSize:        pr.MaxSize,
	})
	g.SetCellSize(cfg.Grid.CellSize)
	g.SetSeed(cfg.Seed)
}

// RandomWalkParams returns the effective random-walk tuning.
func (g *Generator) RandomWalkParams() shape.RandomWalkParams { return g.randomWalk }

// IrregularWallParams returns the effective wall band tuning.
func (g *Generator) IrregularWallParams() shape.IrregularWallParams { return g.irregular }

// ChunkParams returns the effective chunk tuning.
func (g *Generator) ChunkParams() shape.ChunkParams { return g.chunk }

// ProtrusionParams returns the effective protrusion tuning.
func (g *Generator) ProtrusionParams() shape.ProtrusionParams { return g.protrusion }

// Seed returns the seed in use. It is never -1.
func (g *Generator) Seed() int64 { return g.seed }

// Kind returns the style of the initialized room.
func (g *Generator) Kind() shape.Kind { return g.kind }

// Grid returns the generator's grid. Callers must not modify it.
func (g *Generator) Grid() *grid.Grid { return g.grid }

// CellSize returns the world size of one cell for the current room.
func (g *Generator) CellSize() float32 { return g.cellSize }

// ShapeResult returns what the last CreateGrid produced.
func (g *Generator) ShapeResult() shape.Result { return g.shapeResult }

// FloorStats returns the statistics of the last floor pass.
func (g *Generator) FloorStats() tiling.Stats { return g.floorStats }

// WallStats returns the statistics of the last wall pass.
func (g *Generator) WallStats() walls.Stats { return g.wallStats }

// Doorways returns the cached doorway layout.
func (g *Generator) Doorways() []walls.Doorway { return g.doorways }

// Placements returns a copy of every record in placement order.
func (g *Generator) Placements() []placement.Record {
	return append([]placement.Record(nil), g.placements.Records...)
}

// Records returns the records of the given kinds in placement order.
func (g *Generator) Records(kinds ...placement.Kind) []placement.Record {
	return g.placements.OfKind(kinds...)
}
