package shape

import (
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// UniformShape fills the whole grid with floor.
type UniformShape struct{}

// Kind implements Shape.
func (UniformShape) Kind() Kind { return Uniform }

// Generate implements Shape.
func (UniformShape) Generate(g *grid.Grid, _ *rng.Stream) Result {
	g.Fill(grid.FloorMesh)
	return Result{Occupied: g.Total()}
}
