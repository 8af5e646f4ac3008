package catalog

import (
	"fmt"
	"strings"

	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/math"
)

// WallModule is one wall piece spanning Length cells along a wall run.
type WallModule struct {
	Name       string  `yaml:"name"`
	BaseMesh   string  `yaml:"base"`
	MiddleMesh string  `yaml:"middle,omitempty"`
	TopMesh    string  `yaml:"top,omitempty"`
	Length     int     `yaml:"length"`
	Weight     float32 `yaml:"weight,omitempty"`
}

// CornerID names one of the four corner orientations.
type CornerID int

// Corner identities.
const (
	SouthWest CornerID = iota
	SouthEast
	NorthEast
	NorthWest
)

// Corners lists the corner identities in table order.
var Corners = [4]CornerID{SouthWest, SouthEast, NorthEast, NorthWest}

// String returns the short corner name.
func (c CornerID) String() string {
	switch c {
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	case NorthEast:
		return "NE"
	case NorthWest:
		return "NW"
	default:
		return fmt.Sprintf("Corner(%d)", int(c))
	}
}

// CornerFor returns the corner between two perpendicular wall facings.
func CornerFor(a, b grid.Direction) (CornerID, bool) {
	has := func(d grid.Direction) bool { return a == d || b == d }
	switch {
	case has(grid.South) && has(grid.West):
		return SouthWest, true
	case has(grid.South) && has(grid.East):
		return SouthEast, true
	case has(grid.North) && has(grid.East):
		return NorthEast, true
	case has(grid.North) && has(grid.West):
		return NorthWest, true
	}
	return SouthWest, false
}

// CornerMesh is the fixed mesh, rotation and offset used for one corner identity.
type CornerMesh struct {
	Mesh     string    `yaml:"mesh"`
	Rotation float32   `yaml:"rotation"`
	Offset   math.Vec3 `yaml:"offset"`
}

// CornerSet is the designer offset table keyed by corner identity.
type CornerSet struct {
	SW CornerMesh `yaml:"sw"`
	SE CornerMesh `yaml:"se"`
	NE CornerMesh `yaml:"ne"`
	NW CornerMesh `yaml:"nw"`
	// Inner is used for concave corners of irregular rooms; falls back to the convex entry when empty.
	Inner CornerMesh `yaml:"inner,omitempty"`
}

// Get returns the entry for id.
func (s CornerSet) Get(id CornerID) CornerMesh {
	switch id {
	case SouthEast:
		return s.SE
	case NorthEast:
		return s.NE
	case NorthWest:
		return s.NW
	default:
		return s.SW
	}
}

// EdgeOffsets shifts wall modules along their run axis, per facing.
type EdgeOffsets struct {
	North float32 `yaml:"north"`
	South float32 `yaml:"south"`
	East  float32 `yaml:"east"`
	West  float32 `yaml:"west"`
}

// For returns the offset for walls facing d.
func (o EdgeOffsets) For(d grid.Direction) float32 {
	switch d {
	case grid.North:
		return o.North
	case grid.South:
		return o.South
	case grid.East:
		return o.East
	default:
		return o.West
	}
}

// ForcedWall pins a named module onto a perimeter cell before run packing.
type ForcedWall struct {
	Edge   grid.Direction `yaml:"edge"`
	Cell   grid.Point     `yaml:"cell"`
	Module string         `yaml:"module"`
}

// WallStyle is a wall module pool with its layering, offsets and corner table.
type WallStyle struct {
	Name         string       `yaml:"name"`
	Modules      []WallModule `yaml:"modules"`
	Offsets      EdgeOffsets  `yaml:"offsets"`
	MiddleLayers int          `yaml:"middle_layers"`
	LayerHeight  float32      `yaml:"layer_height"`
	Corners      CornerSet    `yaml:"corners"`
	ForcedWalls  []ForcedWall `yaml:"forced,omitempty"`
}

// Module returns the module named name.
func (w *WallStyle) Module(name string) (WallModule, bool) {
	for _, m := range w.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return WallModule{}, false
}

// SideFill says what happens to the doorway cells beside the frame.
type SideFill int

// Side fill behaviors.
const (
	SideFillNone  SideFill = iota // Leave an open gap
	SideFillWalls                 // Release the cells back to wall packing
	SideFillMesh                  // Place SideMesh on each side cell
)

// String returns the side fill name.
func (s SideFill) String() string {
	switch s {
	case SideFillNone:
		return "none"
	case SideFillWalls:
		return "walls"
	case SideFillMesh:
		return "mesh"
	default:
		return fmt.Sprintf("SideFill(%d)", int(s))
	}
}

// MarshalYAML writes the side fill name.
func (s SideFill) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML accepts a side fill name.
func (s *SideFill) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	switch strings.ToLower(name) {
	case "", "none":
		*s = SideFillNone
	case "walls", "wall":
		*s = SideFillWalls
	case "mesh":
		*s = SideFillMesh
	default:
		return fmt.Errorf("unknown side fill %q", name)
	}
	return nil
}

// DoorData describes the doorway frame and how wide the opening in the wall is.
type DoorData struct {
	FrameMesh  string    `yaml:"frame"`
	FrameWidth int       `yaml:"frame_width"` // Cells covered by the frame
	TotalWidth int       `yaml:"total_width"` // Cells removed from the wall run
	SideFill   SideFill  `yaml:"side_fill"`
	SideMesh   string    `yaml:"side_mesh,omitempty"`
	Offset     math.Vec3 `yaml:"offset"`
}

// ManualDoorway is a designer-placed doorway. Offset is measured along the edge's run axis.
type ManualDoorway struct {
	Edge   grid.Direction `yaml:"edge"`
	Offset int            `yaml:"offset"`
	Width  int            `yaml:"width,omitempty"` // 0 uses the door's total width
}

// DoorwayPlan says how many automatic doorways to cut and where designers forced others.
type DoorwayPlan struct {
	Count  int              `yaml:"count"`
	Edges  []grid.Direction `yaml:"edges,omitempty"` // Empty lets the generator pick
	Manual []ManualDoorway  `yaml:"manual,omitempty"`
}
