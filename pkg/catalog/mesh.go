// Package catalog describes the placeable pieces a room is built from and loads them from YAML.
package catalog

import (
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/math"
)

// allRotations is used when an entry does not restrict its rotations.
var allRotations = []int{0, 90, 180, 270}

// MeshPlacementInfo is one weighted floor or ceiling tile.
type MeshPlacementInfo struct {
	Mesh             string     `yaml:"mesh"`
	Footprint        grid.Point `yaml:"footprint"` // Cells covered at rotation 0
	Weight           float32    `yaml:"weight"`
	AllowedRotations []int      `yaml:"rotations,omitempty"` // Empty means all four
	Filler           bool       `yaml:"filler,omitempty"`    // Only used to plug leftover gaps
}

// Rotations returns the rotations the entry may be placed at.
func (m MeshPlacementInfo) Rotations() []int {
	if len(m.AllowedRotations) == 0 {
		return allRotations
	}
	return m.AllowedRotations
}

// RotatedFootprint returns the cells covered by footprint fp rotated by deg degrees.
func RotatedFootprint(fp grid.Point, deg int) grid.Point {
	if math.NormalizeYaw(deg)%180 == 90 {
		return fp.Swap()
	}
	return fp
}

// ValidRotations returns the allowed rotations that make the entry cover exactly target.
func (m MeshPlacementInfo) ValidRotations(target grid.Point) []int {
	var out []int
	for _, r := range m.Rotations() {
		if RotatedFootprint(m.Footprint, r) == target {
			out = append(out, r)
		}
	}
	return out
}

// Matches reports whether the entry can cover exactly target at some allowed rotation.
func (m MeshPlacementInfo) Matches(target grid.Point) bool {
	return len(m.ValidRotations(target)) > 0
}

// Area returns the footprint area in cells.
func (m MeshPlacementInfo) Area() int {
	return m.Footprint.Area()
}

// ForcedPlacement pins a tile to a cell before any greedy placement runs.
type ForcedPlacement struct {
	Cell     grid.Point        `yaml:"cell"`
	Tile     MeshPlacementInfo `yaml:"tile"`
	Rotation int               `yaml:"rotation"`
}

// FloorStyle is a floor tile pool plus designer overrides.
type FloorStyle struct {
	Name             string              `yaml:"name"`
	Tiles            []MeshPlacementInfo `yaml:"tiles"`
	ForcedPlacements []ForcedPlacement   `yaml:"forced,omitempty"`
	ForcedEmpty      []grid.Rect         `yaml:"forced_empty,omitempty"` // Reserved, never tiled
}

// CeilingStyle is a ceiling tile pool hung at a fixed height.
type CeilingStyle struct {
	Name   string              `yaml:"name"`
	Tiles  []MeshPlacementInfo `yaml:"tiles"`
	Height float32             `yaml:"height"`
}
