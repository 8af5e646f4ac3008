package room

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/shape"
	"github.com/Faultbox/roomgen/internal/tiling"
	"github.com/Faultbox/roomgen/internal/walls"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/placement"
)

// strategy is the per-style behavior of a Generator. Nil hooks use the default implementation.
type strategy struct {
	shape func(*Generator) shape.Shape
	// rule decides which cells count as outside when tracing walls and sizing the ceiling.
	rule walls.OutsideRule
	// fillable lists the shape cell states the default floor pass covers.
	fillable func(*Generator) []grid.CellType
	floor    func(*Generator) (tiling.Stats, bool)
	ceiling  func(*Generator) (int, bool)
	// partialFloor lets a floor pass that placed nothing still succeed.
	partialFloor bool
}

var floorCells = func(*Generator) []grid.CellType { return []grid.CellType{grid.FloorMesh} }

// strategies is the dispatch table, one entry per room style.
var strategies = map[shape.Kind]strategy{
	shape.Uniform: {
		shape:    func(*Generator) shape.Shape { return shape.UniformShape{} },
		rule:     walls.OutsideEmpty,
		fillable: floorCells,
	},
	shape.RandomWalk: {
		shape: func(g *Generator) shape.Shape {
			return shape.RandomWalkShape{Params: g.randomWalk, Walls: g.irregular}
		},
		rule:         walls.OutsideEmpty,
		fillable:     floorCells,
		partialFloor: true,
	},
	shape.Chunk: {
		shape:    func(g *Generator) shape.Shape { return shape.ChunkAggregateShape{Params: g.chunk} },
		rule:     walls.OutsideVoid,
		fillable: func(g *Generator) []grid.CellType { return []grid.CellType{g.chunk.Mark()} },
	},
	shape.Protrusion: {
		shape:    func(g *Generator) shape.Shape { return shape.ProtrusionShape{Params: g.protrusion} },
		rule:     walls.OutsideEmpty,
		fillable: floorCells,
	},
	shape.Preset: {
		shape: func(g *Generator) shape.Shape {
			return shape.PresetRegionShape{Preset: g.room.Preset}
		},
		rule:    walls.OutsideVoid,
		floor:   (*Generator).presetFloor,
		ceiling: (*Generator).presetCeiling,
	},
}

// defaultFloor packs the room's floor style over the cells the shape left fillable.
func (g *Generator) defaultFloor() (tiling.Stats, bool) {
	style := g.room.Floor
	if style == nil {
		g.log().Error("floor style not assigned")
		return tiling.Stats{}, false
	}
	recs, stats := g.packer(placement.Floor, 0).FillMask(g.grid, g.strategy.fillable(g), tiling.JobFromFloor(style))
	g.placements.Add(recs...)
	return stats, true
}

// presetFloor packs each region with its own style, highest priority first, then fills what is left
// with the preset's default floor style, or the room's floor style when the preset names none.
func (g *Generator) presetFloor() (tiling.Stats, bool) {
	preset := g.room.Preset
	if preset == nil {
		g.log().Error("preset not assigned")
		return tiling.Stats{}, false
	}
	var total tiling.Stats
	p := g.packer(placement.Floor, 0)
	for _, region := range preset.SortedRegions() {
		style := g.floorStyle(region.FloorStyle)
		if style == nil {
			continue
		}
		job := tiling.JobFromFloor(style)
		job.Region = region.Rect()
		recs, stats := p.Fill(g.grid, job)
		g.placements.Add(recs...)
		total.Add(stats)
	}

	fallback := g.floorStyle(preset.DefaultFloorStyle)
	if fallback == nil {
		fallback = g.room.Floor
	}
	if fallback == nil {
		total.Remaining = g.grid.CountByType(grid.Empty)
		return total, true
	}
	recs, stats := p.Fill(g.grid, tiling.JobFromFloor(fallback))
	g.placements.Add(recs...)
	remaining := stats.Remaining
	total.Add(stats)
	total.Remaining = remaining
	return total, true
}

// defaultCeiling covers the room footprint with the room's ceiling style.
func (g *Generator) defaultCeiling() (int, bool) {
	style := g.room.Ceiling
	if style == nil {
		g.log().Error("ceiling style not assigned")
		return 0, false
	}
	recs, _ := g.packer(placement.Ceiling, style.Height).Fill(g.ceilingGrid(), tiling.Job{Tiles: style.Tiles})
	g.placements.Add(recs...)
	return len(recs), true
}

// presetCeiling mirrors presetFloor for ceiling styles. Each region's tiles hang at its style's height.
func (g *Generator) presetCeiling() (int, bool) {
	preset := g.room.Preset
	if preset == nil {
		g.log().Error("preset not assigned")
		return 0, false
	}
	scratch := g.ceilingGrid()
	placed := 0
	used := false
	for _, region := range preset.SortedRegions() {
		style := g.ceilingStyle(region.CeilingStyle)
		if style == nil {
			continue
		}
		used = true
		recs, _ := g.packer(placement.Ceiling, style.Height).Fill(scratch, tiling.Job{Region: region.Rect(), Tiles: style.Tiles})
		g.placements.Add(recs...)
		placed += len(recs)
	}

	fallback := g.ceilingStyle(preset.DefaultCeilingStyle)
	if fallback == nil {
		fallback = g.room.Ceiling
	}
	if fallback != nil {
		used = true
		recs, _ := g.packer(placement.Ceiling, fallback.Height).Fill(scratch, tiling.Job{Tiles: fallback.Tiles})
		g.placements.Add(recs...)
		placed += len(recs)
	}
	if !used {
		g.log().Error("no ceiling style for preset", zap.String("preset", preset.Name))
	}
	return placed, used
}

// ceilingGrid returns a scratch copy of the grid with the room footprint Empty and everything else Void.
func (g *Generator) ceilingGrid() *grid.Grid {
	scratch := g.grid.Clone()
	for i, c := range scratch.Cells {
		if g.strategy.rule.Inside(c) {
			scratch.Cells[i] = grid.Empty
		} else {
			scratch.Cells[i] = grid.Void
		}
	}
	return scratch
}

func (g *Generator) floorStyle(name string) *catalog.FloorStyle {
	if g.room.Styles == nil || name == "" {
		return nil
	}
	return g.room.Styles.FloorStyle(name)
}

func (g *Generator) ceilingStyle(name string) *catalog.CeilingStyle {
	if g.room.Styles == nil || name == "" {
		return nil
	}
	return g.room.Styles.CeilingStyle(name)
}
