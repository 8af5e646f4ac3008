// Package preview renders generated rooms for debugging: a text map of cell states and a PNG of the
// placed footprints.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/placement"
)

// DefaultPixelsPerCell is used when the caller passes a non-positive scale.
const DefaultPixelsPerCell = 16

// Glyphs used by ASCII, keyed by cell state.
var glyphs = map[grid.CellType]byte{
	grid.Empty:     '.',
	grid.FloorMesh: '#',
	grid.WallMesh:  'W',
	grid.Void:      ' ',
	grid.Custom:    'c',
}

// ASCII draws g one character per cell, north at the top. Doorway cells are drawn as 'D'.
func ASCII(g *grid.Grid, records []placement.Record) string {
	doors := make(map[grid.Point]bool)
	for _, r := range records {
		if r.Kind == placement.Doorway {
			r.Rect().Each(func(p grid.Point) { doors[p] = true })
		}
	}

	var sb strings.Builder
	sb.Grow((g.Width + 1) * g.Height)
	for y := g.Height - 1; y >= 0; y-- {
		for x := 0; x < g.Width; x++ {
			p := grid.Point{X: x, Y: y}
			if doors[p] {
				sb.WriteByte('D')
				continue
			}
			ch, ok := glyphs[g.Get(p)]
			if !ok {
				ch = '?'
			}
			sb.WriteByte(ch)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Palette colors. Cell states are the background; records are drawn over them.
var (
	ColorEmpty   = color.RGBA{R: 40, G: 40, B: 48, A: 255}
	ColorFloor   = color.RGBA{R: 170, G: 150, B: 110, A: 255}
	ColorWall    = color.RGBA{R: 90, G: 90, B: 100, A: 255}
	ColorVoid    = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	ColorCustom  = color.RGBA{R: 120, G: 160, B: 120, A: 255}
	ColorOutline = color.RGBA{R: 60, G: 45, B: 30, A: 255}
	ColorWallRec = color.RGBA{R: 200, G: 60, B: 50, A: 255}
	ColorDoor    = color.RGBA{R: 60, G: 140, B: 220, A: 255}
	ColorCorner  = color.RGBA{R: 240, G: 220, B: 60, A: 255}
)

func cellColor(t grid.CellType) color.RGBA {
	switch t {
	case grid.FloorMesh:
		return ColorFloor
	case grid.WallMesh:
		return ColorWall
	case grid.Void:
		return ColorVoid
	case grid.Custom:
		return ColorCustom
	default:
		return ColorEmpty
	}
}

// renderer draws a room into an RGBA image, scale pixels per cell. Image row 0 is the north edge.
type renderer struct {
	scale int
	img   *image.RGBA
	g     *grid.Grid
}

// Render draws the grid and the floor, wall, doorway and corner records. Ceiling records are skipped
// since they would hide the floor.
func Render(g *grid.Grid, records []placement.Record, pixelsPerCell int) *image.RGBA {
	if pixelsPerCell <= 0 {
		pixelsPerCell = DefaultPixelsPerCell
	}
	r := &renderer{
		scale: pixelsPerCell,
		img:   image.NewRGBA(image.Rect(0, 0, g.Width*pixelsPerCell, g.Height*pixelsPerCell)),
		g:     g,
	}

	for i, c := range g.Cells {
		r.fillCell(g.Coord(i), cellColor(c))
	}
	for _, rec := range records {
		switch rec.Kind {
		case placement.Floor:
			r.outline(rec.Rect(), ColorOutline)
		case placement.WallBase, placement.Doorway:
			r.wallStrip(rec)
		case placement.Corner:
			r.corner(rec)
		}
	}
	return r.img
}

// pixelRect converts a cell rectangle to image space, flipping Y so north is up.
func (r *renderer) pixelRect(rect grid.Rect) image.Rectangle {
	x0 := rect.Min.X * r.scale
	x1 := (rect.Min.X + rect.Size.X) * r.scale
	y0 := (r.g.Height - rect.Min.Y - rect.Size.Y) * r.scale
	y1 := (r.g.Height - rect.Min.Y) * r.scale
	return image.Rect(x0, y0, x1, y1).Intersect(r.img.Bounds())
}

func (r *renderer) fill(px image.Rectangle, c color.RGBA) {
	for y := px.Min.Y; y < px.Max.Y; y++ {
		for x := px.Min.X; x < px.Max.X; x++ {
			r.img.SetRGBA(x, y, c)
		}
	}
}

func (r *renderer) fillCell(p grid.Point, c color.RGBA) {
	r.fill(r.pixelRect(grid.Rect{Min: p, Size: grid.Point{X: 1, Y: 1}}), c)
}

// outline draws a one-pixel border around a footprint.
func (r *renderer) outline(rect grid.Rect, c color.RGBA) {
	px := r.pixelRect(rect)
	if px.Empty() {
		return
	}
	r.fill(image.Rect(px.Min.X, px.Min.Y, px.Max.X, px.Min.Y+1), c)
	r.fill(image.Rect(px.Min.X, px.Max.Y-1, px.Max.X, px.Max.Y), c)
	r.fill(image.Rect(px.Min.X, px.Min.Y, px.Min.X+1, px.Max.Y), c)
	r.fill(image.Rect(px.Max.X-1, px.Min.Y, px.Max.X, px.Max.Y), c)
}

// wallStrip paints a band along the cell edge a wall or doorway record faces.
func (r *renderer) wallStrip(rec placement.Record) {
	px := r.pixelRect(rec.Rect())
	if px.Empty() {
		return
	}
	c := ColorWallRec
	if rec.Kind == placement.Doorway {
		c = ColorDoor
	}
	band := max(1, r.scale/4)
	switch rec.Facing {
	case grid.North:
		px.Max.Y = px.Min.Y + band
	case grid.South:
		px.Min.Y = px.Max.Y - band
	case grid.East:
		px.Min.X = px.Max.X - band
	case grid.West:
		px.Max.X = px.Min.X + band
	}
	r.fill(px, c)
}

// corner marks the center of the cell a corner record belongs to.
func (r *renderer) corner(rec placement.Record) {
	px := r.pixelRect(grid.Rect{Min: rec.Cell, Size: grid.Point{X: 1, Y: 1}})
	if px.Empty() {
		return
	}
	cx, cy := (px.Min.X+px.Max.X)/2, (px.Min.Y+px.Max.Y)/2
	half := max(1, r.scale/6)
	r.fill(image.Rect(cx-half, cy-half, cx+half, cy+half).Intersect(px), ColorCorner)
}

// SavePNG encodes img to path, creating the parent directory when needed.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
