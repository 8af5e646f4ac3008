package shape

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// ProtrusionParams tunes the base-room-plus-protrusions carver.
type ProtrusionParams struct {
	BasePercentage float32
	MinProtrusions int
	MaxProtrusions int
	MinSize        int
	MaxSize        int
}

// DefaultProtrusionParams returns the stock protrusion tuning.
func DefaultProtrusionParams() ProtrusionParams {
	return ProtrusionParams{
		BasePercentage: 0.6,
		MinProtrusions: 1,
		MaxProtrusions: 4,
		MinSize:        2,
		MaxSize:        4,
	}
}

// Clamped returns the params with counts and sizes floored at their minimums.
func (p ProtrusionParams) Clamped() ProtrusionParams {
	p.BasePercentage = clamp01(p.BasePercentage)
	if p.MinProtrusions < 0 {
		p.MinProtrusions = 0
	}
	if p.MaxProtrusions < p.MinProtrusions {
		p.MaxProtrusions = p.MinProtrusions
	}
	if p.MinSize < 1 {
		p.MinSize = 1
	}
	if p.MaxSize < p.MinSize {
		p.MaxSize = p.MinSize
	}
	return p
}

// ProtrusionShape marks a base rectangle at the grid origin and bolts rectangles onto its edges.
type ProtrusionShape struct {
	Params ProtrusionParams
}

// Kind implements Shape.
func (ProtrusionShape) Kind() Kind { return Protrusion }

// Generate implements Shape.
func (s ProtrusionShape) Generate(g *grid.Grid, r *rng.Stream) Result {
	log := logger.Named("shape")
	p := s.Params.Clamped()

	g.Fill(grid.Empty)

	base := grid.Rect{Size: grid.Point{
		X: max(4, int(float32(g.Width)*p.BasePercentage)),
		Y: max(4, int(float32(g.Height)*p.BasePercentage)),
	}}
	base = g.Clip(base)
	g.FillRect(base.Min, base.Size, grid.FloorMesh)

	count := r.RandRange(p.MinProtrusions, p.MaxProtrusions)
	added := []grid.Rect{base}
	for i := 0; i < count; i++ {
		if pr, ok := protrusion(g, r, p, base); ok {
			g.FillRect(pr.Min, pr.Size, grid.FloorMesh)
			added = append(added, pr)
		}
	}

	res := Result{Occupied: g.CountByType(grid.FloorMesh), Chunks: added}
	res.TooSmall = res.Occupied < MinRoomCells
	log.Info("protrusion shape",
		zap.Stringer("base", base.Size),
		zap.Int("protrusions", len(added)-1),
		zap.Int("rolled", count),
		zap.Int("occupied", res.Occupied))
	return res
}

// protrusion draws one rectangle sticking out of a random edge of base, clamped to the grid.
// It reports false when clamping left it thinner than MinSize.
func protrusion(g *grid.Grid, r *rng.Stream, p ProtrusionParams, base grid.Rect) (grid.Rect, bool) {
	edge := grid.Direction(r.RandRange(0, 3))
	width := r.RandRange(p.MinSize, p.MaxSize)
	depth := r.RandRange(p.MinSize, p.MaxSize)

	var start, size grid.Point
	switch edge {
	case grid.North:
		pos := r.RandRange(0, max(1, base.Size.X-width))
		start = grid.Point{X: base.Min.X + pos, Y: base.Min.Y + base.Size.Y}
		size = grid.Point{X: width, Y: depth}
	case grid.South:
		pos := r.RandRange(0, max(1, base.Size.X-width))
		start = grid.Point{X: base.Min.X + pos, Y: base.Min.Y - depth}
		size = grid.Point{X: width, Y: depth}
	case grid.East:
		pos := r.RandRange(0, max(1, base.Size.Y-width))
		start = grid.Point{X: base.Min.X + base.Size.X, Y: base.Min.Y + pos}
		size = grid.Point{X: depth, Y: width}
	default:
		pos := r.RandRange(0, max(1, base.Size.Y-width))
		start = grid.Point{X: base.Min.X - depth, Y: base.Min.Y + pos}
		size = grid.Point{X: depth, Y: width}
	}

	// Clamp the origin into the grid first, then trim the far side.
	start.X = min(max(start.X, 0), g.Width-1)
	start.Y = min(max(start.Y, 0), g.Height-1)
	size.X = min(size.X, g.Width-start.X)
	size.Y = min(size.Y, g.Height-start.Y)

	if size.X < p.MinSize || size.Y < p.MinSize {
		logger.Named("shape").Debug("protrusion too small after clamping",
			zap.Stringer("edge", edge),
			zap.Stringer("size", size))
		return grid.Rect{}, false
	}
	return grid.Rect{Min: start, Size: size}, true
}
