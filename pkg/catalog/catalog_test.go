package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/roomgen/pkg/grid"
)

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadFile(filepath.Join("testdata", "rooms.yaml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return c
}

func TestLoadFile(t *testing.T) {
	c := loadTestCatalog(t)

	if len(c.Floors) != 2 || len(c.Walls) != 1 || len(c.Ceilings) != 1 {
		t.Errorf("unexpected style counts: %d floors, %d walls, %d ceilings", len(c.Floors), len(c.Walls), len(c.Ceilings))
	}
	if c.Floors["stone"].Name != "stone" {
		t.Errorf("expected name filled from key, got %q", c.Floors["stone"].Name)
	}
	if got := c.RoomNames(); len(got) != 4 || got[0] != "annex" {
		t.Errorf("unexpected room names %v", got)
	}

	brick := c.Walls["brick"]
	if brick.Corners.NE.Rotation != 180 {
		t.Errorf("expected NE rotation 180, got %v", brick.Corners.NE.Rotation)
	}
	if m, ok := brick.Module("pair"); !ok || m.Length != 2 {
		t.Errorf("module lookup failed: %+v %v", m, ok)
	}
}

func TestRoomResolvesStyles(t *testing.T) {
	c := loadTestCatalog(t)

	rd, err := c.Room("cellar")
	if err != nil {
		t.Fatalf("Room: %v", err)
	}
	if rd.Floor == nil || rd.Walls == nil || rd.Ceiling == nil {
		t.Fatalf("styles not resolved: %+v", rd)
	}
	if rd.Door == nil || rd.Door.SideFill != SideFillMesh {
		t.Errorf("door not decoded: %+v", rd.Door)
	}
	if len(rd.Doorways.Manual) != 1 || rd.Doorways.Manual[0].Edge != grid.North {
		t.Errorf("manual doorway not decoded: %+v", rd.Doorways)
	}
	if rd.Styles.FloorStyle("wood") == nil {
		t.Error("provider should resolve wood")
	}
	if rd.Styles.FloorStyle("marble") != nil {
		t.Error("provider should return nil for unknown style")
	}

	chapel, err := c.Room("chapel")
	if err != nil {
		t.Fatalf("Room(chapel): %v", err)
	}
	regions := chapel.Preset.SortedRegions()
	if regions[0].Name != "dais" {
		t.Errorf("expected dais first, got %s", regions[0].Name)
	}
	if regions[0].Rect().Size != (grid.Point{X: 4, Y: 4}) {
		t.Errorf("inclusive region size wrong: %v", regions[0].Rect().Size)
	}
}

func TestRoomUnknown(t *testing.T) {
	c := loadTestCatalog(t)
	if _, err := c.Room("attic"); !errors.Is(err, ErrUnknownRoom) {
		t.Errorf("expected ErrUnknownRoom, got %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "bad yaml",
			yaml: "floor_styles: [",
			want: ErrInvalidCatalog,
		},
		{
			name: "zero footprint",
			yaml: "floor_styles:\n  a:\n    tiles:\n      - {mesh: m, footprint: {x: 0, y: 1}, weight: 1}\n",
			want: ErrInvalidCatalog,
		},
		{
			name: "odd rotation",
			yaml: "floor_styles:\n  a:\n    tiles:\n      - {mesh: m, footprint: {x: 1, y: 1}, weight: 1, rotations: [45]}\n",
			want: ErrInvalidCatalog,
		},
		{
			name: "zero length module",
			yaml: "wall_styles:\n  w:\n    modules:\n      - {name: a, base: b, length: 0}\n",
			want: ErrInvalidCatalog,
		},
		{
			name: "missing room style",
			yaml: "rooms:\n  r:\n    style: uniform\n    floor: nope\n",
			want: ErrMissingStyle,
		},
		{
			name: "door narrower than frame",
			yaml: "rooms:\n  r:\n    style: uniform\n    door: {frame: f, frame_width: 3, total_width: 2}\n",
			want: ErrInvalidCatalog,
		},
		{
			name: "unknown side fill",
			yaml: "rooms:\n  r:\n    door: {frame: f, frame_width: 1, total_width: 1, side_fill: bricks}\n",
			want: ErrInvalidCatalog,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestValidRotations(t *testing.T) {
	tests := []struct {
		name   string
		info   MeshPlacementInfo
		target grid.Point
		want   []int
	}{
		{"square any", MeshPlacementInfo{Footprint: grid.Point{X: 2, Y: 2}}, grid.Point{X: 2, Y: 2}, []int{0, 90, 180, 270}},
		{"rect exact", MeshPlacementInfo{Footprint: grid.Point{X: 4, Y: 2}}, grid.Point{X: 4, Y: 2}, []int{0, 180}},
		{"rect rotated", MeshPlacementInfo{Footprint: grid.Point{X: 4, Y: 2}}, grid.Point{X: 2, Y: 4}, []int{90, 270}},
		{"restricted", MeshPlacementInfo{Footprint: grid.Point{X: 2, Y: 1}, AllowedRotations: []int{0}}, grid.Point{X: 1, Y: 2}, nil},
		{"no match", MeshPlacementInfo{Footprint: grid.Point{X: 1, Y: 1}}, grid.Point{X: 2, Y: 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.ValidRotations(tt.target)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCornerFor(t *testing.T) {
	if id, ok := CornerFor(grid.North, grid.East); !ok || id != NorthEast {
		t.Errorf("N+E = %v %v", id, ok)
	}
	if id, ok := CornerFor(grid.West, grid.South); !ok || id != SouthWest {
		t.Errorf("W+S = %v %v", id, ok)
	}
	if _, ok := CornerFor(grid.North, grid.South); ok {
		t.Error("opposite facings are not a corner")
	}
}
