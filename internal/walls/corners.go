package walls

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/math"
	"github.com/Faultbox/roomgen/pkg/placement"
)

// cornerSides returns the north/south and east/west facings that meet at a corner.
func cornerSides(id catalog.CornerID) (ns, ew grid.Direction) {
	switch id {
	case catalog.SouthEast:
		return grid.South, grid.East
	case catalog.NorthEast:
		return grid.North, grid.East
	case catalog.NorthWest:
		return grid.North, grid.West
	default:
		return grid.South, grid.West
	}
}

// Corners places one mesh per convex corner of the outline and one per concave corner.
// A convex corner is an inside cell walled on two perpendicular sides. A concave corner is an inside
// cell whose two perpendicular neighbors are inside but whose diagonal is outside. Concave corners use
// the Inner mesh turned by 90 degrees per corner identity, or the convex entry when Inner is unset.
func (b *Builder) Corners(g *grid.Grid) ([]placement.Record, error) {
	if b.Style == nil {
		return nil, ErrNoModules
	}
	log := logger.Named("corners")
	set := b.Style.Corners

	var out []placement.Record
	convex, concave, unset := 0, 0, 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := grid.Point{X: x, Y: y}
			if !b.Rule.Inside(g.Get(c)) {
				continue
			}
			for _, id := range catalog.Corners {
				ns, ew := cornerSides(id)
				a, e := c.Neighbor(ns), c.Neighbor(ew)

				var mesh catalog.CornerMesh
				switch {
				case b.Rule.Outside(g, a) && b.Rule.Outside(g, e):
					mesh = set.Get(id)
					convex++
				case b.Rule.Inside(g.Get(a)) && b.Rule.Inside(g.Get(e)) && b.Rule.Outside(g, a.Neighbor(ew)):
					mesh = set.Get(id)
					if set.Inner.Mesh != "" {
						mesh = set.Inner
						mesh.Rotation += float32(90 * int(id))
					}
					concave++
				default:
					continue
				}
				if mesh.Mesh == "" {
					unset++
					continue
				}
				out = append(out, b.cornerRecord(c, ns, ew, mesh))
			}
		}
	}

	if unset > 0 {
		log.Warn("corners without a mesh skipped", zap.Int("count", unset))
	}
	log.Info("corners placed",
		zap.Int("convex", convex),
		zap.Int("concave", concave),
		zap.Int("records", len(out)))
	return out, nil
}

// cornerRecord puts mesh on the lattice point of cell c where the ns and ew sides meet.
func (b *Builder) cornerRecord(c grid.Point, ns, ew grid.Direction, mesh catalog.CornerMesh) placement.Record {
	px, py := c.X, c.Y
	if ew == grid.East {
		px++
	}
	if ns == grid.North {
		py++
	}
	pos := math.Vec3{X: float32(px) * b.CellSize, Y: float32(py) * b.CellSize}
	rot := math.NormalizeYaw(int(mesh.Rotation))
	return placement.Record{
		Kind:      placement.Corner,
		Mesh:      mesh.Mesh,
		Cell:      c,
		Footprint: grid.Point{X: 1, Y: 1},
		Rotation:  rot,
		Facing:    ns,
		Transform: math.Transform{Position: pos.Add(mesh.Offset), Yaw: float32(rot)},
	}
}
