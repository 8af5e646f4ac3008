package shape

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// PresetRegionShape opens the whole grid for filling; the preset's regions drive the floor pass.
type PresetRegionShape struct {
	Preset *catalog.Preset
}

// Kind implements Shape.
func (PresetRegionShape) Kind() Kind { return Preset }

// Generate implements Shape. Result.Chunks holds the regions clipped to the grid, highest
// priority first; regions entirely outside the grid are dropped.
func (s PresetRegionShape) Generate(g *grid.Grid, _ *rng.Stream) Result {
	log := logger.Named("shape")
	g.Fill(grid.Empty)

	res := Result{Occupied: g.Total()}
	if s.Preset == nil {
		log.Warn("preset shape without a preset, grid left open")
		return res
	}

	for _, region := range s.Preset.SortedRegions() {
		rect := g.Clip(region.Rect())
		if rect.Empty() {
			log.Warn("preset region outside grid",
				zap.String("region", region.Name),
				zap.Stringer("start", region.Start),
				zap.Stringer("end", region.End))
			continue
		}
		if rect != region.Rect() {
			log.Debug("preset region clipped", zap.String("region", region.Name))
		}
		res.Chunks = append(res.Chunks, rect)
	}

	log.Info("preset shape",
		zap.String("preset", s.Preset.Name),
		zap.Int("regions", len(res.Chunks)))
	return res
}
