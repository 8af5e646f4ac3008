package room

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/shape"
	"github.com/Faultbox/roomgen/internal/tiling"
	"github.com/Faultbox/roomgen/internal/walls"
)

// Report summarizes a full Build.
type Report struct {
	Room      string          `yaml:"room"`
	Style     string          `yaml:"style"`
	Seed      int64           `yaml:"seed"`
	Width     int             `yaml:"width"`
	Height    int             `yaml:"height"`
	Occupied  int             `yaml:"occupied"`
	FillRatio float32         `yaml:"fill_ratio"`
	Chunks    int             `yaml:"chunks,omitempty"`
	TooSmall  bool            `yaml:"too_small,omitempty"`
	Floor     tiling.Stats    `yaml:"floor"`
	Walls     walls.Stats     `yaml:"walls"`
	Doorways  int             `yaml:"doorways"`
	Records   map[string]int  `yaml:"records"`
	Phases    map[string]bool `yaml:"phases"` // false marks a phase that failed
}

// Build runs every phase in the documented order and reports how each went.
// A failed phase is logged and the build carries on; only an uninitialized generator stops it.
func (g *Generator) Build() (Report, bool) {
	if !g.ready("build") {
		return Report{}, false
	}

	phases := []struct {
		name string
		run  func() bool
	}{
		{"shape", g.CreateGrid},
		{"floor", g.GenerateFloor},
		{"doorways", g.GenerateDoorways},
		{"walls", g.GenerateWalls},
		{"corners", g.GenerateCorners},
		{"ceiling", g.GenerateCeiling},
	}
	results := make(map[string]bool, len(phases))
	for _, p := range phases {
		results[p.name] = p.run()
		if !results[p.name] {
			g.log().Warn("phase failed", zap.String("phase", p.name))
		}
	}

	rep := g.report()
	rep.Phases = results
	g.log().Info("room built",
		zap.String("room", rep.Room),
		zap.Int64("seed", rep.Seed),
		zap.Int("records", len(g.placements.Records)))
	return rep, true
}

func (g *Generator) report() Report {
	records := make(map[string]int)
	for kind, n := range g.placements.CountByKind() {
		records[kind.String()] = n
	}
	rep := Report{
		Style:    g.kind.String(),
		Seed:     g.seed,
		Occupied: g.shapeResult.Occupied,
		Chunks:   len(g.shapeResult.Chunks),
		TooSmall: g.shapeResult.TooSmall,
		Floor:    g.floorStats,
		Walls:    g.wallStats,
		Doorways: len(g.doorways),
		Records:  records,
	}
	if g.room != nil {
		rep.Room = g.room.Name
	}
	if g.grid != nil {
		rep.Width, rep.Height = g.grid.Width, g.grid.Height
		rep.FillRatio = g.shapeResult.FillRatio(g.grid)
	}
	return rep
}

// StyleNames lists every room style by name.
func StyleNames() []string {
	out := make([]string, len(shape.Kinds))
	for i, k := range shape.Kinds {
		out[i] = k.String()
	}
	return out
}
