package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog errors.
var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrMissingStyle   = errors.New("missing style")
	ErrUnknownRoom    = errors.New("unknown room")
)

// LoadFile reads and validates a catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	c.fillNames()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Marshal encodes the catalog back to YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// fillNames copies map keys into empty Name fields.
func (c *Catalog) fillNames() {
	for k, v := range c.Floors {
		if v != nil && v.Name == "" {
			v.Name = k
		}
	}
	for k, v := range c.Walls {
		if v != nil && v.Name == "" {
			v.Name = k
		}
	}
	for k, v := range c.Ceilings {
		if v != nil && v.Name == "" {
			v.Name = k
		}
	}
	for k, v := range c.Presets {
		if v != nil && v.Name == "" {
			v.Name = k
		}
	}
	for k, v := range c.Rooms {
		if v != nil && v.Name == "" {
			v.Name = k
		}
	}
}

// Validate checks every style and that every room reference resolves.
func (c *Catalog) Validate() error {
	for name, f := range c.Floors {
		if f == nil {
			return fmt.Errorf("%w: floor style %q is empty", ErrInvalidCatalog, name)
		}
		if err := validateTiles(f.Tiles); err != nil {
			return fmt.Errorf("floor style %q: %w", name, err)
		}
		for i, fp := range f.ForcedPlacements {
			if err := validateTile(fp.Tile); err != nil {
				return fmt.Errorf("floor style %q forced %d: %w", name, i, err)
			}
			if fp.Rotation%90 != 0 {
				return fmt.Errorf("%w: floor style %q forced %d: rotation %d", ErrInvalidCatalog, name, i, fp.Rotation)
			}
		}
	}
	for name, w := range c.Walls {
		if w == nil {
			return fmt.Errorf("%w: wall style %q is empty", ErrInvalidCatalog, name)
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("wall style %q: %w", name, err)
		}
	}
	for name, cs := range c.Ceilings {
		if cs == nil {
			return fmt.Errorf("%w: ceiling style %q is empty", ErrInvalidCatalog, name)
		}
		if err := validateTiles(cs.Tiles); err != nil {
			return fmt.Errorf("ceiling style %q: %w", name, err)
		}
	}
	for name, p := range c.Presets {
		if p == nil {
			return fmt.Errorf("%w: preset %q is empty", ErrInvalidCatalog, name)
		}
		if err := c.validatePreset(p); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	for _, name := range c.RoomNames() {
		rd := c.Rooms[name]
		if rd == nil {
			return fmt.Errorf("%w: room %q is empty", ErrInvalidCatalog, name)
		}
		if rd.Door != nil {
			if err := rd.Door.Validate(); err != nil {
				return fmt.Errorf("room %q: %w", name, err)
			}
		}
		if err := c.resolve(&RoomData{
			Name:        name,
			FloorName:   rd.FloorName,
			WallName:    rd.WallName,
			CeilingName: rd.CeilingName,
			PresetName:  rd.PresetName,
		}); err != nil {
			return err
		}
	}
	return nil
}

func validateTiles(tiles []MeshPlacementInfo) error {
	for i, t := range tiles {
		if err := validateTile(t); err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
	}
	return nil
}

func validateTile(t MeshPlacementInfo) error {
	if t.Mesh == "" {
		return fmt.Errorf("%w: tile has no mesh", ErrInvalidCatalog)
	}
	if t.Footprint.X <= 0 || t.Footprint.Y <= 0 {
		return fmt.Errorf("%w: %s footprint %v", ErrInvalidCatalog, t.Mesh, t.Footprint)
	}
	if t.Weight < 0 {
		return fmt.Errorf("%w: %s negative weight", ErrInvalidCatalog, t.Mesh)
	}
	for _, r := range t.AllowedRotations {
		if r%90 != 0 {
			return fmt.Errorf("%w: %s rotation %d", ErrInvalidCatalog, t.Mesh, r)
		}
	}
	return nil
}

// Validate checks module lengths and forced wall references.
func (w *WallStyle) Validate() error {
	for i, m := range w.Modules {
		if m.BaseMesh == "" {
			return fmt.Errorf("%w: module %d has no base mesh", ErrInvalidCatalog, i)
		}
		if m.Length <= 0 {
			return fmt.Errorf("%w: module %q length %d", ErrInvalidCatalog, m.Name, m.Length)
		}
		if m.Weight < 0 {
			return fmt.Errorf("%w: module %q negative weight", ErrInvalidCatalog, m.Name)
		}
	}
	if w.MiddleLayers < 0 {
		return fmt.Errorf("%w: middle layers %d", ErrInvalidCatalog, w.MiddleLayers)
	}
	for _, fw := range w.ForcedWalls {
		if _, ok := w.Module(fw.Module); !ok {
			return fmt.Errorf("%w: forced wall module %q", ErrMissingStyle, fw.Module)
		}
	}
	return nil
}

// Validate checks the doorway widths.
func (d *DoorData) Validate() error {
	if d.FrameWidth <= 0 {
		return fmt.Errorf("%w: door frame width %d", ErrInvalidCatalog, d.FrameWidth)
	}
	if d.TotalWidth < d.FrameWidth {
		return fmt.Errorf("%w: door total width %d below frame width %d", ErrInvalidCatalog, d.TotalWidth, d.FrameWidth)
	}
	if d.SideFill == SideFillMesh && d.SideMesh == "" {
		return fmt.Errorf("%w: door side fill mesh not set", ErrInvalidCatalog)
	}
	return nil
}

func (c *Catalog) validatePreset(p *Preset) error {
	for _, r := range p.Regions {
		if r.FloorStyle != "" && c.FloorStyle(r.FloorStyle) == nil {
			return fmt.Errorf("%w: region %q floor style %q", ErrMissingStyle, r.Name, r.FloorStyle)
		}
		if r.CeilingStyle != "" && c.CeilingStyle(r.CeilingStyle) == nil {
			return fmt.Errorf("%w: region %q ceiling style %q", ErrMissingStyle, r.Name, r.CeilingStyle)
		}
	}
	if p.DefaultFloorStyle != "" && c.FloorStyle(p.DefaultFloorStyle) == nil {
		return fmt.Errorf("%w: default floor style %q", ErrMissingStyle, p.DefaultFloorStyle)
	}
	if p.DefaultCeilingStyle != "" && c.CeilingStyle(p.DefaultCeilingStyle) == nil {
		return fmt.Errorf("%w: default ceiling style %q", ErrMissingStyle, p.DefaultCeilingStyle)
	}
	return nil
}

// DefaultDoor is used by rooms that plan doorways without describing the door.
func DefaultDoor() *DoorData {
	return &DoorData{
		FrameMesh:  "door_frame",
		FrameWidth: 2,
		TotalWidth: 2,
		SideFill:   SideFillNone,
	}
}
