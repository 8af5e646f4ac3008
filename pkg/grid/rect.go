package grid

// Rect is an axis-aligned block of cells. Min is inclusive, Size is in cells.
type Rect struct {
	Min  Point `yaml:"min"`
	Size Point `yaml:"size"`
}

// RectFromCorners builds a rect from two inclusive corner cells in any order.
func RectFromCorners(a, b Point) Rect {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return Rect{Min: Point{minX, minY}, Size: Point{maxX - minX + 1, maxY - minY + 1}}
}

// Max returns the inclusive far corner.
func (r Rect) Max() Point {
	return Point{r.Min.X + r.Size.X - 1, r.Min.Y + r.Size.Y - 1}
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Size.Area()
}

// Empty reports whether the rect covers no cells.
func (r Rect) Empty() bool {
	return r.Size.X <= 0 || r.Size.Y <= 0
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y &&
		p.X < r.Min.X+r.Size.X && p.Y < r.Min.Y+r.Size.Y
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return false
	}
	return r.Contains(o.Min) && r.Contains(o.Max())
}

// Overlaps reports whether the two rects share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Min.X >= o.Min.X+o.Size.X ||
		r.Min.X+r.Size.X <= o.Min.X ||
		r.Min.Y >= o.Min.Y+o.Size.Y ||
		r.Min.Y+r.Size.Y <= o.Min.Y)
}

// IsAdjacentTo reports whether the rects touch along an edge without overlapping.
func (r Rect) IsAdjacentTo(o Rect) bool {
	sharesVertical := (r.Min.X+r.Size.X == o.Min.X || o.Min.X+o.Size.X == r.Min.X) &&
		!(r.Min.Y >= o.Min.Y+o.Size.Y || r.Min.Y+r.Size.Y <= o.Min.Y)
	sharesHorizontal := (r.Min.Y+r.Size.Y == o.Min.Y || o.Min.Y+o.Size.Y == r.Min.Y) &&
		!(r.Min.X >= o.Min.X+o.Size.X || r.Min.X+r.Size.X <= o.Min.X)
	return sharesVertical || sharesHorizontal
}

// Intersect returns the overlapping part of the two rects (possibly empty).
func (r Rect) Intersect(o Rect) Rect {
	minX := max(r.Min.X, o.Min.X)
	minY := max(r.Min.Y, o.Min.Y)
	maxX := min(r.Min.X+r.Size.X, o.Min.X+o.Size.X)
	maxY := min(r.Min.Y+r.Size.Y, o.Min.Y+o.Size.Y)
	if maxX <= minX || maxY <= minY {
		return Rect{Min: Point{minX, minY}}
	}
	return Rect{Min: Point{minX, minY}, Size: Point{maxX - minX, maxY - minY}}
}

// Bounds returns the rect covering the whole grid.
func (g *Grid) Bounds() Rect {
	return Rect{Size: g.Size()}
}

// Clip returns the part of r inside the grid.
func (g *Grid) Clip(r Rect) Rect {
	return r.Intersect(g.Bounds())
}

// Each calls fn for every cell of r in row-major order.
func (r Rect) Each(fn func(p Point)) {
	for y := r.Min.Y; y < r.Min.Y+r.Size.Y; y++ {
		for x := r.Min.X; x < r.Min.X+r.Size.X; x++ {
			fn(Point{x, y})
		}
	}
}
