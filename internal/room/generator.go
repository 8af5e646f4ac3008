// Package room builds one room at a time: shape, floor, doorways, walls, corners and ceiling.
//
// A Generator owns its grid and its random stream. Each phase clears its own previous output before
// running, so phases can be re-run in any order the caller likes; the documented order is
//
//	CreateGrid, GenerateFloor, GenerateDoorways, GenerateWalls, GenerateCorners, GenerateCeiling
//
// Phases report failure with a false return and a log line. Nothing here panics.
package room

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/internal/shape"
	"github.com/Faultbox/roomgen/internal/tiling"
	"github.com/Faultbox/roomgen/internal/walls"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/placement"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// DefaultCellSize is used when neither the room nor the caller sets a cell size.
const DefaultCellSize float32 = 100

// Errors returned by Initialize.
var (
	ErrNoRoomData   = errors.New("no room data")
	ErrInvalidSize  = errors.New("invalid grid size")
	ErrUnknownStyle = errors.New("unknown room style")
)

// Generator builds rooms from catalog data. It is not safe for concurrent use.
type Generator struct {
	room        *catalog.RoomData
	kind        shape.Kind
	strategy    strategy
	grid        *grid.Grid
	shapeCells  []grid.CellType // Grid as the shape left it, restored before each floor pass
	initialized bool

	rand         *rng.Stream
	seed         int64
	cellSize     float32
	baseCellSize float32 // Used when the room sets no cell size

	randomWalk shape.RandomWalkParams
	irregular  shape.IrregularWallParams
	chunk      shape.ChunkParams
	protrusion shape.ProtrusionParams

	shapeResult shape.Result
	floorStats  tiling.Stats
	wallStats   walls.Stats
	doorways    []walls.Doorway
	doorwaysSet bool // doorways holds a layout to replay

	placements placement.List
}

// New returns a generator with stock parameters and a time-based seed.
func New() *Generator {
	g := &Generator{
		rand:         rng.New(0),
		cellSize:     DefaultCellSize,
		baseCellSize: DefaultCellSize,
		randomWalk:   shape.DefaultRandomWalkParams(),
		irregular:    shape.IrregularWallParams{}.Normalized(),
		chunk:        shape.DefaultChunkParams().Normalized(),
		protrusion:   shape.DefaultProtrusionParams(),
	}
	g.SetSeed(-1)
	return g
}

func (g *Generator) log() *zap.Logger {
	return logger.Named("room")
}

// Initialize binds room data and allocates a size.X by size.Y grid. Previous output is discarded.
func (g *Generator) Initialize(rd *catalog.RoomData, size grid.Point) error {
	g.initialized = false
	if rd == nil {
		return ErrNoRoomData
	}
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, size.X, size.Y)
	}
	kind, err := shape.ParseKind(rd.Style)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnknownStyle, err)
	}
	strat, ok := strategies[kind]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStyle, kind)
	}

	g.room = rd
	g.kind = kind
	g.strategy = strat
	g.grid = grid.New(size.X, size.Y, grid.Empty)
	g.shapeCells = g.grid.Snapshot()
	g.shapeResult = shape.Result{}
	g.floorStats = tiling.Stats{}
	g.wallStats = walls.Stats{}
	g.ClearDoorwayLayout()
	g.ClearAll()
	g.cellSize = g.baseCellSize
	if rd.CellSize > 0 {
		g.cellSize = rd.CellSize
	}
	g.initialized = true

	g.log().Info("room initialized",
		zap.String("room", rd.Name),
		zap.Stringer("style", kind),
		zap.Stringer("size", size),
		zap.Float32("cell_size", g.cellSize))
	return nil
}

// ready logs and reports false when Initialize has not succeeded.
func (g *Generator) ready(op string) bool {
	if !g.initialized {
		g.log().Error("generator not initialized", zap.String("op", op))
		return false
	}
	return true
}

// CreateGrid rewinds the random stream to the seed and runs the style's shape over the grid.
// Every placement and the doorway layout are dropped, since they belong to the previous shape.
func (g *Generator) CreateGrid() bool {
	if !g.ready("create grid") {
		return false
	}
	g.rand.Reset(g.seed)
	g.ClearAll()
	g.ClearDoorwayLayout()

	g.shapeResult = g.strategy.shape(g).Generate(g.grid, g.rand)
	g.shapeCells = g.grid.Snapshot()

	g.log().Info("grid created",
		zap.Stringer("style", g.kind),
		zap.Int64("seed", g.seed),
		zap.Int("occupied", g.shapeResult.Occupied),
		zap.Float32("fill", g.shapeResult.FillRatio(g.grid)),
		zap.Int("chunks", len(g.shapeResult.Chunks)))
	return true
}

// GenerateFloor tiles the room footprint. It returns false when the floor style is missing, and when
// no tile at all was placed unless the style tolerates a partial fill.
func (g *Generator) GenerateFloor() bool {
	if !g.ready("generate floor") {
		return false
	}
	g.ClearFloor()

	floor := g.strategy.floor
	if floor == nil {
		floor = (*Generator).defaultFloor
	}
	stats, ok := floor(g)
	g.floorStats = stats
	if !ok {
		return false
	}
	if stats.Total() == 0 {
		g.log().Warn("no floor tiles placed", zap.Stringer("style", g.kind))
		return g.strategy.partialFloor
	}
	return true
}

// GenerateDoorways cuts the doorways. A cached layout is replayed with fresh transforms; otherwise a
// new layout is planned from the room's doorway plan and cached. It returns false when the plan
// asked for doorways and none could be placed.
func (g *Generator) GenerateDoorways() bool {
	if !g.ready("generate doorways") {
		return false
	}
	g.ClearDoorways()
	door := g.door()

	if !g.doorwaysSet {
		g.doorways = walls.PlanDoorways(g.grid, g.strategy.rule, g.room.Doorways, door, g.rand)
		g.doorwaysSet = true
	} else {
		g.log().Debug("replaying doorway layout", zap.Int("doorways", len(g.doorways)))
	}
	g.placements.Add(walls.DoorwayRecords(g.doorways, door, g.cellSize)...)

	wanted := g.room.Doorways.Count + len(g.room.Doorways.Manual)
	if wanted > 0 && len(g.doorways) == 0 {
		g.log().Warn("no doorway could be placed", zap.Int("wanted", wanted))
		return false
	}
	return true
}

// GenerateWalls packs wall modules along the perimeter, leaving the doorways open. Doorways are
// generated first when no layout exists yet. It returns false when the wall style is missing.
func (g *Generator) GenerateWalls() bool {
	if !g.ready("generate walls") {
		return false
	}
	g.ClearWalls()
	if g.room.Walls == nil {
		g.log().Error("wall style not assigned")
		return false
	}

	if !g.doorwaysSet {
		if !g.GenerateDoorways() {
			g.log().Warn("doorway generation failed, continuing with walls")
		}
	}

	recs, stats, err := g.wallBuilder().Build(g.grid, g.doorways, g.door().SideFill)
	g.wallStats = stats
	if err != nil {
		g.log().Error("wall generation aborted", zap.Error(err))
		return false
	}
	g.placements.Add(recs...)
	return true
}

// GenerateCorners places the corner pieces of the wall style.
func (g *Generator) GenerateCorners() bool {
	if !g.ready("generate corners") {
		return false
	}
	g.ClearCorners()
	recs, err := g.wallBuilder().Corners(g.grid)
	if err != nil {
		g.log().Error("corner generation aborted", zap.Error(err))
		return false
	}
	g.placements.Add(recs...)
	return true
}

// GenerateCeiling covers the room footprint with ceiling tiles. The grid is not modified.
func (g *Generator) GenerateCeiling() bool {
	if !g.ready("generate ceiling") {
		return false
	}
	g.ClearCeiling()

	ceiling := g.strategy.ceiling
	if ceiling == nil {
		ceiling = (*Generator).defaultCeiling
	}
	placed, ok := ceiling(g)
	if ok && placed == 0 {
		g.log().Warn("no ceiling tiles placed")
	}
	return ok
}

// ClearFloor removes floor records and puts the grid back the way the shape left it.
func (g *Generator) ClearFloor() int {
	if g.grid != nil && len(g.shapeCells) == len(g.grid.Cells) {
		g.grid.Restore(g.shapeCells)
	}
	return g.placements.Clear(placement.Floor)
}

// ClearWalls removes every wall layer.
func (g *Generator) ClearWalls() int {
	return g.placements.Clear(placement.WallBase, placement.WallMiddle, placement.WallTop)
}

// ClearCorners removes corner records.
func (g *Generator) ClearCorners() int {
	return g.placements.Clear(placement.Corner)
}

// ClearDoorways removes doorway records. The cached layout is kept.
func (g *Generator) ClearDoorways() int {
	return g.placements.Clear(placement.Doorway)
}

// ClearDoorwayLayout forgets the cached layout so the next GenerateDoorways plans a new one.
func (g *Generator) ClearDoorwayLayout() {
	g.doorways = nil
	g.doorwaysSet = false
}

// ClearCeiling removes ceiling records.
func (g *Generator) ClearCeiling() int {
	return g.placements.Clear(placement.Ceiling)
}

// ClearAll removes every record.
func (g *Generator) ClearAll() {
	g.placements.Records = nil
}

func (g *Generator) packer(kind placement.Kind, z float32) *tiling.Packer {
	return &tiling.Packer{Rand: g.rand, CellSize: g.cellSize, Z: z, Kind: kind}
}

func (g *Generator) wallBuilder() *walls.Builder {
	return &walls.Builder{Style: g.room.Walls, Rand: g.rand, CellSize: g.cellSize, Rule: g.strategy.rule}
}

func (g *Generator) door() *catalog.DoorData {
	if g.room.Door != nil {
		return g.room.Door
	}
	return catalog.DefaultDoor()
}
