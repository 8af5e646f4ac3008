package preview

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/placement"
)

func TestASCII(t *testing.T) {
	g := grid.New(4, 3, grid.Void)
	g.FillRect(grid.Point{X: 0, Y: 0}, grid.Point{X: 3, Y: 2}, grid.FloorMesh)
	g.Set(grid.Point{X: 3, Y: 0}, grid.WallMesh)
	g.Set(grid.Point{X: 3, Y: 2}, grid.Custom)
	g.Set(grid.Point{X: 0, Y: 2}, grid.Empty)

	door := placement.Record{
		Kind:      placement.Doorway,
		Cell:      grid.Point{X: 1, Y: 0},
		Footprint: grid.Point{X: 1, Y: 1},
		Facing:    grid.South,
	}
	got := ASCII(g, []placement.Record{door})
	want := ".  c\n" +
		"### \n" +
		"#D#W\n"
	if got != want {
		t.Errorf("ASCII() =\n%q\nwant\n%q", got, want)
	}
}

func TestRender(t *testing.T) {
	g := grid.New(2, 2, grid.FloorMesh)
	g.Set(grid.Point{X: 1, Y: 1}, grid.Void)
	recs := []placement.Record{
		{Kind: placement.WallBase, Cell: grid.Point{X: 0, Y: 0}, Footprint: grid.Point{X: 1, Y: 1}, Facing: grid.South},
		{Kind: placement.Ceiling, Cell: grid.Point{X: 0, Y: 0}, Footprint: grid.Point{X: 2, Y: 2}},
	}

	img := Render(g, recs, 8)
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("image size %v, want 16x16", b)
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"void cell top right", 12, 4, ColorVoid},
		{"floor cell top left", 4, 4, ColorFloor},
		{"south wall band", 4, 15, ColorWallRec},
		{"above the wall band", 4, 10, ColorFloor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
				t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderDefaultScale(t *testing.T) {
	img := Render(grid.New(3, 1, grid.Empty), nil, 0)
	if b := img.Bounds(); b.Dx() != 3*DefaultPixelsPerCell || b.Dy() != DefaultPixelsPerCell {
		t.Errorf("image size %v", b)
	}
}

func TestRenderFloorOutline(t *testing.T) {
	g := grid.New(2, 1, grid.FloorMesh)
	rec := placement.Record{Kind: placement.Floor, Cell: grid.Point{X: 0, Y: 0}, Footprint: grid.Point{X: 2, Y: 1}}
	img := Render(g, []placement.Record{rec}, 4)

	if got := img.RGBAAt(0, 0); got != ColorOutline {
		t.Errorf("corner pixel = %v, want outline", got)
	}
	// The seam between the two cells is inside one tile, so it is not outlined.
	if got := img.RGBAAt(4, 2); got != ColorFloor {
		t.Errorf("seam pixel = %v, want floor", got)
	}
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "room.png")
	img := Render(grid.New(3, 2, grid.FloorMesh), nil, 5)
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 15 || b.Dy() != 10 {
		t.Errorf("decoded size %v", b)
	}
}
