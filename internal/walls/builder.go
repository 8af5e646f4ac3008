package walls

import (
	"errors"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/math"
	"github.com/Faultbox/roomgen/pkg/placement"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// ErrNoModules is returned when a wall style is missing or has no modules.
var ErrNoModules = errors.New("wall style has no modules")

// Segment is one wall module placed along a run.
type Segment struct {
	Facing grid.Direction
	Line   int
	Start  int
	Module catalog.WallModule
	Forced bool
}

// Origin returns the lowest cell the segment covers.
func (s Segment) Origin() grid.Point {
	return s.Facing.Compose(s.Start, s.Line)
}

// Footprint returns the cells covered: (length, 1) for north and south walls, (1, length) for east and west.
func (s Segment) Footprint() grid.Point {
	return s.Facing.Compose(s.Module.Length, 1)
}

// Cells returns the covered cells in run order.
func (s Segment) Cells() []grid.Point {
	out := make([]grid.Point, s.Module.Length)
	for i := range out {
		out[i] = s.Facing.Compose(s.Start+i, s.Line)
	}
	return out
}

// Stats counts what one wall build placed.
type Stats struct {
	Perimeter     int `yaml:"perimeter"` // Wall-facing cell sides found
	Runs          int `yaml:"runs"`
	Segments      int `yaml:"segments"` // Base modules, forced included
	Forced        int `yaml:"forced"`
	ForcedSkipped int `yaml:"forced_skipped"`
	Skipped       int `yaml:"skipped"`  // Perimeter cells no module fit
	Reserved      int `yaml:"reserved"` // Perimeter cells left open for doorways
	Layers        int `yaml:"layers"`   // Middle and top records
}

// Builder places wall modules around a grid's perimeter.
type Builder struct {
	Style    *catalog.WallStyle
	Rand     *rng.Stream
	CellSize float32
	Rule     OutsideRule
}

// edgeCell keys a perimeter cell side.
type edgeCell struct {
	facing grid.Direction
	cell   grid.Point
}

// Build walls in every perimeter run of g, leaving the cells reserved by doorways open.
// Records come out as all base modules (forced first), then the middle layers, then the top layer.
func (b *Builder) Build(g *grid.Grid, doorways []Doorway, fill catalog.SideFill) ([]placement.Record, Stats, error) {
	log := logger.Named("walls")
	var stats Stats
	if b.Style == nil || len(b.Style.Modules) == 0 {
		return nil, stats, ErrNoModules
	}

	perim := FindPerimeter(g, b.Rule)
	stats.Perimeter = perim.Len()
	if stats.Perimeter == 0 {
		log.Warn("no perimeter cells, no walls placed")
		return nil, stats, nil
	}

	onPerimeter := mapset.New[edgeCell]()
	for _, d := range grid.Directions {
		for _, c := range perim[d] {
			onPerimeter.Put(edgeCell{d, c})
		}
	}
	blocked := mapset.New[edgeCell]()
	for _, dw := range doorways {
		for _, c := range dw.Reserved(fill) {
			if onPerimeter.Has(edgeCell{dw.Edge, c}) {
				blocked.Put(edgeCell{dw.Edge, c})
				stats.Reserved++
			}
		}
	}

	var segments []Segment
	for _, fw := range b.Style.ForcedWalls {
		seg, ok := b.forced(fw, onPerimeter, blocked)
		if !ok {
			stats.ForcedSkipped++
			log.Warn("forced wall does not fit, skipped",
				zap.String("module", fw.Module),
				zap.Stringer("edge", fw.Edge),
				zap.Stringer("cell", fw.Cell))
			continue
		}
		for _, c := range seg.Cells() {
			blocked.Put(edgeCell{seg.Facing, c})
		}
		segments = append(segments, seg)
		stats.Forced++
	}

	pool := newModulePool(b.Style.Modules)
	runs := perim.Runs(func(d grid.Direction, c grid.Point) bool {
		return blocked.Has(edgeCell{d, c})
	})
	stats.Runs = len(runs)
	for _, run := range runs {
		segs, skipped := pool.pack(run.Cells(), run.Facing, b.Rand)
		for _, c := range skipped {
			log.Warn("no wall module fits, cell skipped",
				zap.Stringer("run", run),
				zap.Stringer("cell", c))
		}
		stats.Skipped += len(skipped)
		segments = append(segments, segs...)
	}
	stats.Segments = len(segments)

	out := make([]placement.Record, 0, len(segments)*(b.Style.MiddleLayers+2))
	for _, s := range segments {
		out = append(out, b.record(placement.WallBase, s.Module.BaseMesh, s, 0))
	}
	for i := 0; i < b.Style.MiddleLayers; i++ {
		z := b.Style.LayerHeight * float32(i+1)
		for _, s := range segments {
			if s.Module.MiddleMesh != "" {
				out = append(out, b.record(placement.WallMiddle, s.Module.MiddleMesh, s, z))
				stats.Layers++
			}
		}
	}
	top := b.Style.LayerHeight * float32(b.Style.MiddleLayers+1)
	for _, s := range segments {
		if s.Module.TopMesh != "" {
			out = append(out, b.record(placement.WallTop, s.Module.TopMesh, s, top))
			stats.Layers++
		}
	}

	log.Info("walls placed",
		zap.Stringer("rule", b.Rule),
		zap.Int("perimeter", stats.Perimeter),
		zap.Int("runs", stats.Runs),
		zap.Int("segments", stats.Segments),
		zap.Int("forced", stats.Forced),
		zap.Int("skipped", stats.Skipped),
		zap.Int("reserved", stats.Reserved),
		zap.Int("layers", stats.Layers))
	return out, stats, nil
}

// forced validates a designer-pinned module: every cell it spans must be a free perimeter side facing fw.Edge.
func (b *Builder) forced(fw catalog.ForcedWall, onPerimeter, blocked mapset.Set[edgeCell]) (Segment, bool) {
	m, ok := b.Style.Module(fw.Module)
	if !ok || !fw.Edge.Valid() {
		return Segment{}, false
	}
	seg := Segment{
		Facing: fw.Edge,
		Line:   fw.Edge.Across(fw.Cell),
		Start:  fw.Edge.Along(fw.Cell),
		Module: m,
		Forced: true,
	}
	for _, c := range seg.Cells() {
		key := edgeCell{fw.Edge, c}
		if !onPerimeter.Has(key) || blocked.Has(key) {
			return Segment{}, false
		}
	}
	return seg, true
}

// record builds the placement for one layer of a segment, centered over its span on the cell edge it faces.
func (b *Builder) record(kind placement.Kind, mesh string, s Segment, z float32) placement.Record {
	along := (float32(s.Start)+float32(s.Module.Length)/2)*b.CellSize + b.Style.Offsets.For(s.Facing)
	across := edgeCoord(s.Facing, s.Line, b.CellSize)

	pos := math.Vec3{X: along, Y: across, Z: z}
	if s.Facing == grid.East || s.Facing == grid.West {
		pos = math.Vec3{X: across, Y: along, Z: z}
	}
	yaw := Yaw(s.Facing)
	return placement.Record{
		Kind:      kind,
		Mesh:      mesh,
		Cell:      s.Origin(),
		Footprint: s.Footprint(),
		Rotation:  yaw,
		Facing:    s.Facing,
		Transform: math.Transform{Position: pos, Yaw: float32(yaw)},
	}
}

// modulePool groups modules by length, longest first.
type modulePool struct {
	lengths []int
	modules map[int][]catalog.WallModule
	weights map[int][]float32
}

func newModulePool(mods []catalog.WallModule) modulePool {
	p := modulePool{
		modules: make(map[int][]catalog.WallModule),
		weights: make(map[int][]float32),
	}
	for _, m := range mods {
		if m.Length <= 0 {
			continue
		}
		if _, ok := p.modules[m.Length]; !ok {
			p.lengths = append(p.lengths, m.Length)
		}
		p.modules[m.Length] = append(p.modules[m.Length], m)
		p.weights[m.Length] = append(p.weights[m.Length], m.Weight)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(p.lengths)))
	return p
}

// pack walks cells from the start, placing the longest module that fits the remaining cells and spans
// consecutive ones. A cell nothing fits is skipped so the walk always advances.
func (p modulePool) pack(cells []grid.Point, facing grid.Direction, r *rng.Stream) ([]Segment, []grid.Point) {
	var segs []Segment
	var skipped []grid.Point
	for i := 0; i < len(cells); {
		placed := false
		for _, length := range p.lengths {
			if length > len(cells)-i || !consecutive(cells[i:i+length], facing) {
				continue
			}
			choices := p.modules[length]
			m := choices[r.WeightedIndex(p.weights[length])]
			segs = append(segs, Segment{
				Facing: facing,
				Line:   facing.Across(cells[i]),
				Start:  facing.Along(cells[i]),
				Module: m,
			})
			i += length
			placed = true
			break
		}
		if !placed {
			skipped = append(skipped, cells[i])
			i++
		}
	}
	return segs, skipped
}

// consecutive reports whether cells share a line and step by one along the run axis.
func consecutive(cells []grid.Point, facing grid.Direction) bool {
	for i := 1; i < len(cells); i++ {
		if facing.Across(cells[i]) != facing.Across(cells[0]) || facing.Along(cells[i]) != facing.Along(cells[i-1])+1 {
			return false
		}
	}
	return true
}
