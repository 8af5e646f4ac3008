package shape

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

const (
	// walkerDeadEnd is how many idle steps a boxed-in walker survives.
	walkerDeadEnd = 20
	// maxStuckSteps ends the walk after this many global steps without a new cell.
	maxStuckSteps = 100
)

// RandomWalkParams tunes the organic blob carver.
type RandomWalkParams struct {
	FillRatio       float32
	BranchChance    float32
	DirChangeChance float32
	MaxWalkers      int
	SmoothingPasses int
	RemoveIslands   bool
	MarkWalls       bool // Apply the standard wall mask when irregular walls are off
}

// DefaultRandomWalkParams returns the stock random-walk tuning.
func DefaultRandomWalkParams() RandomWalkParams {
	return RandomWalkParams{
		FillRatio:       0.6,
		BranchChance:    0.3,
		DirChangeChance: 0.4,
		MaxWalkers:      3,
		SmoothingPasses: 2,
		RemoveIslands:   true,
	}
}

// Clamped returns the params with every value forced into its legal range.
func (p RandomWalkParams) Clamped() RandomWalkParams {
	p.FillRatio = clampf(p.FillRatio, 0.1, 0.95)
	p.BranchChance = clamp01(p.BranchChance)
	p.DirChangeChance = clamp01(p.DirChangeChance)
	if p.MaxWalkers < 1 {
		p.MaxWalkers = 1
	}
	if p.SmoothingPasses < 0 {
		p.SmoothingPasses = 0
	}
	return p
}

// RandomWalkShape carves a blob with branching walkers, then cleans it up.
type RandomWalkShape struct {
	Params RandomWalkParams
	Walls  IrregularWallParams
}

// Kind implements Shape.
func (RandomWalkShape) Kind() Kind { return RandomWalk }

type walker struct {
	pos   grid.Point
	dir   grid.Direction
	steps int // Idle steps since the last move
}

// Generate implements Shape.
func (s RandomWalkShape) Generate(g *grid.Grid, r *rng.Stream) Result {
	log := logger.Named("shape")
	p := s.Params.Clamped()

	g.Fill(grid.Empty)
	filled := walk(g, r, p)
	log.Debug("random walk done", zap.Int("filled", filled))

	if p.RemoveIslands {
		removed, kept := g.KeepLargestRegion(grid.FloorMesh, grid.Empty)
		log.Debug("islands removed before smoothing", zap.Int("regions", removed), zap.Int("kept", kept))
	}
	if p.SmoothingPasses > 0 {
		g.Smooth(p.SmoothingPasses, grid.FloorMesh, grid.Empty)
	}
	if p.RemoveIslands {
		removed, kept := g.KeepLargestRegion(grid.FloorMesh, grid.Empty)
		log.Debug("islands removed after smoothing", zap.Int("regions", removed), zap.Int("kept", kept))
	}

	res := Result{Occupied: g.CountByType(grid.FloorMesh)}
	if res.Occupied < MinRoomCells {
		res.TooSmall = true
		log.Warn("random walk room is too small",
			zap.Int("cells", res.Occupied),
			zap.Int("min", MinRoomCells))
	}

	switch {
	case s.Walls.Enabled:
		MarkIrregularWalls(g, r, s.Walls)
	case p.MarkWalls:
		MarkStandardWalls(g)
	}

	log.Info("random walk shape",
		zap.Int("occupied", res.Occupied),
		zap.Int("total", g.Total()),
		zap.Float32("fill", res.FillRatio(g)))
	return res
}

// walk runs the walkers until the target fill is reached, every walker died or progress stalled.
// It returns the number of floor cells carved, the start cell included.
func walk(g *grid.Grid, r *rng.Stream, p RandomWalkParams) int {
	start := grid.Point{X: g.Width / 2, Y: g.Height / 2}
	if !g.Set(start, grid.FloorMesh) {
		return 0
	}

	walkers := []walker{{pos: start, dir: grid.Direction(r.RandRange(0, 3))}}
	target := int(math.Round(float64(g.Total()) * float64(p.FillRatio)))
	filled := 1
	stuck := 0

	for filled < target && len(walkers) > 0 && stuck < maxStuckSteps {
		progress := false

		// Newest first; branches appended this step wait for the next one.
		for i := len(walkers) - 1; i >= 0; i-- {
			moved, branch := stepWalker(g, r, p, &walkers[i], len(walkers))
			if moved {
				filled++
				progress = true
			}
			if branch != nil {
				walkers = append(walkers, *branch)
			}
		}

		alive := walkers[:0]
		for _, w := range walkers {
			if w.steps > walkerDeadEnd && len(validDirections(g, w.pos)) == 0 {
				continue
			}
			alive = append(alive, w)
		}
		walkers = alive

		if progress {
			stuck = 0
		} else {
			stuck++
		}
	}
	return filled
}

// stepWalker advances one walker. It may return a new walker branching off the moved one.
func stepWalker(g *grid.Grid, r *rng.Stream, p RandomWalkParams, w *walker, active int) (bool, *walker) {
	valid := validDirections(g, w.pos)
	if len(valid) == 0 {
		w.steps++
		return false, nil
	}

	dir := w.dir
	if r.Chance(p.DirChangeChance) || !containsDir(valid, w.dir) {
		dir = valid[r.Intn(len(valid))]
	}

	next := w.pos.Neighbor(dir)
	if !g.Is(next, grid.Empty) {
		w.steps++
		return false, nil
	}
	g.Set(next, grid.FloorMesh)
	w.pos = next
	w.dir = dir
	w.steps = 0

	if active < p.MaxWalkers && r.Chance(p.BranchChance) {
		return true, branchFrom(g, r, *w)
	}
	return true, nil
}

// branchFrom starts a walker at w's cell heading somewhere other than w, when possible.
func branchFrom(g *grid.Grid, r *rng.Stream, w walker) *walker {
	valid := validDirections(g, w.pos)
	if len(valid) == 0 {
		return nil
	}
	others := make([]grid.Direction, 0, len(valid))
	for _, d := range valid {
		if d != w.dir {
			others = append(others, d)
		}
	}
	if len(others) > 0 {
		valid = others
	}
	return &walker{pos: w.pos, dir: valid[r.Intn(len(valid))]}
}

// validDirections lists the directions whose neighbor is in bounds and Empty, in walker order.
func validDirections(g *grid.Grid, p grid.Point) []grid.Direction {
	var out []grid.Direction
	for _, d := range grid.Directions {
		if g.Is(p.Neighbor(d), grid.Empty) {
			out = append(out, d)
		}
	}
	return out
}

func containsDir(dirs []grid.Direction, d grid.Direction) bool {
	for _, x := range dirs {
		if x == d {
			return true
		}
	}
	return false
}
