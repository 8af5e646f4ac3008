package catalog

import (
	"fmt"
	"sort"

	"github.com/Faultbox/roomgen/pkg/grid"
)

// Region is one prioritized rectangle of a preset layout. Start and End are inclusive.
type Region struct {
	Name         string     `yaml:"name"`
	Start        grid.Point `yaml:"start"`
	End          grid.Point `yaml:"end"`
	Priority     int        `yaml:"priority"`
	FloorStyle   string     `yaml:"floor,omitempty"`
	CeilingStyle string     `yaml:"ceiling,omitempty"`
}

// Rect returns the cells covered by the region.
func (r Region) Rect() grid.Rect {
	return grid.RectFromCorners(r.Start, r.End)
}

// Preset is a named layout of regions with their own floor and ceiling styles.
type Preset struct {
	Name                string   `yaml:"name"`
	Regions             []Region `yaml:"regions"`
	DefaultFloorStyle   string   `yaml:"default_floor,omitempty"`
	DefaultCeilingStyle string   `yaml:"default_ceiling,omitempty"`
}

// SortedRegions returns the regions by priority, highest first. Equal priorities keep file order.
func (p *Preset) SortedRegions() []Region {
	out := make([]Region, len(p.Regions))
	copy(out, p.Regions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// Provider resolves style references. Unknown names resolve to nil.
type Provider interface {
	FloorStyle(name string) *FloorStyle
	CeilingStyle(name string) *CeilingStyle
}

// RoomData is everything one room needs from the catalog. The name fields are what the file
// stores; the pointer fields are filled in by Catalog.Room.
type RoomData struct {
	Name        string      `yaml:"name"`
	Style       string      `yaml:"style"`
	CellSize    float32     `yaml:"cell_size"`
	FloorName   string      `yaml:"floor,omitempty"`
	WallName    string      `yaml:"walls,omitempty"`
	CeilingName string      `yaml:"ceiling,omitempty"`
	PresetName  string      `yaml:"preset,omitempty"`
	Door        *DoorData   `yaml:"door,omitempty"`
	Doorways    DoorwayPlan `yaml:"doorways"`

	Floor   *FloorStyle   `yaml:"-"`
	Walls   *WallStyle    `yaml:"-"`
	Ceiling *CeilingStyle `yaml:"-"`
	Preset  *Preset       `yaml:"-"`
	Styles  Provider      `yaml:"-"`
}

// Catalog is the full set of styles, presets and rooms loaded from one file.
type Catalog struct {
	Floors   map[string]*FloorStyle   `yaml:"floor_styles"`
	Walls    map[string]*WallStyle    `yaml:"wall_styles"`
	Ceilings map[string]*CeilingStyle `yaml:"ceiling_styles"`
	Presets  map[string]*Preset       `yaml:"presets"`
	Rooms    map[string]*RoomData     `yaml:"rooms"`
}

// FloorStyle returns the named floor style or nil.
func (c *Catalog) FloorStyle(name string) *FloorStyle {
	if c == nil || name == "" {
		return nil
	}
	return c.Floors[name]
}

// CeilingStyle returns the named ceiling style or nil.
func (c *Catalog) CeilingStyle(name string) *CeilingStyle {
	if c == nil || name == "" {
		return nil
	}
	return c.Ceilings[name]
}

// RoomNames returns the room names in sorted order.
func (c *Catalog) RoomNames() []string {
	names := make([]string, 0, len(c.Rooms))
	for name := range c.Rooms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Room returns a copy of the named room with its style references resolved.
func (c *Catalog) Room(name string) (*RoomData, error) {
	src, ok := c.Rooms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRoom, name)
	}
	rd := *src
	if rd.Name == "" {
		rd.Name = name
	}
	if err := c.resolve(&rd); err != nil {
		return nil, err
	}
	return &rd, nil
}

func (c *Catalog) resolve(rd *RoomData) error {
	rd.Styles = c
	if rd.FloorName != "" {
		if rd.Floor = c.FloorStyle(rd.FloorName); rd.Floor == nil {
			return fmt.Errorf("%w: room %q: floor style %q", ErrMissingStyle, rd.Name, rd.FloorName)
		}
	}
	if rd.WallName != "" {
		if rd.Walls = c.Walls[rd.WallName]; rd.Walls == nil {
			return fmt.Errorf("%w: room %q: wall style %q", ErrMissingStyle, rd.Name, rd.WallName)
		}
	}
	if rd.CeilingName != "" {
		if rd.Ceiling = c.CeilingStyle(rd.CeilingName); rd.Ceiling == nil {
			return fmt.Errorf("%w: room %q: ceiling style %q", ErrMissingStyle, rd.Name, rd.CeilingName)
		}
	}
	if rd.PresetName != "" {
		if rd.Preset = c.Presets[rd.PresetName]; rd.Preset == nil {
			return fmt.Errorf("%w: room %q: preset %q", ErrMissingStyle, rd.Name, rd.PresetName)
		}
	}
	return nil
}
