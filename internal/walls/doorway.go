package walls

import (
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/math"
	"github.com/Faultbox/roomgen/pkg/placement"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// Doorway is an opening cut into one wall run. The frame is centered in the opening;
// any cells left beside it are the sides.
type Doorway struct {
	Edge   grid.Direction `yaml:"edge"`
	Line   int            `yaml:"line"`
	Start  int            `yaml:"start"` // First cell along the run axis
	Width  int            `yaml:"width"` // Frame plus sides
	Frame  int            `yaml:"frame"`
	Manual bool           `yaml:"manual"`
}

// sides returns the side cell counts before and after the frame.
func (d Doorway) sides() (before, after int) {
	extra := d.Width - d.Frame
	before = extra / 2
	return before, extra - before
}

// Cell returns the i-th cell of the opening.
func (d Doorway) Cell(i int) grid.Point {
	return d.Edge.Compose(d.Start+i, d.Line)
}

// Cells returns every cell of the opening.
func (d Doorway) Cells() []grid.Point {
	out := make([]grid.Point, d.Width)
	for i := range out {
		out[i] = d.Cell(i)
	}
	return out
}

// Reserved returns the cells wall packing must leave open. With SideFillWalls only the frame is
// reserved and the sides go back to the wall run.
func (d Doorway) Reserved(fill catalog.SideFill) []grid.Point {
	if fill != catalog.SideFillWalls {
		return d.Cells()
	}
	before, _ := d.sides()
	out := make([]grid.Point, d.Frame)
	for i := range out {
		out[i] = d.Cell(before + i)
	}
	return out
}

// Overlaps reports whether both doorways cut the same run line and their intervals intersect.
func (d Doorway) Overlaps(o Doorway) bool {
	return d.Edge == o.Edge && d.Line == o.Line &&
		d.Start < o.Start+o.Width && o.Start < d.Start+d.Width
}

// PlanDoorways lays out a new set of doorways on g: manual ones first, each validated against the
// edge's runs, then Count automatic ones centered on the longest run of their edge. Doorways that
// overlap an earlier one on the same edge are skipped.
func PlanDoorways(g *grid.Grid, rule OutsideRule, plan catalog.DoorwayPlan, door *catalog.DoorData, r *rng.Stream) []Doorway {
	log := logger.Named("doorways")
	if door == nil {
		door = catalog.DefaultDoor()
	}
	perim := FindPerimeter(g, rule)
	var runs [4][]Run
	for _, d := range grid.Directions {
		runs[d] = SplitRuns(perim[d], d, nil)
	}

	var layout []Doorway
	accept := func(dw Doorway) bool {
		for _, other := range layout {
			if dw.Overlaps(other) {
				log.Warn("doorway overlaps another, skipped",
					zap.Stringer("edge", dw.Edge),
					zap.Int("start", dw.Start),
					zap.Int("width", dw.Width))
				return false
			}
		}
		layout = append(layout, dw)
		return true
	}

	for _, m := range plan.Manual {
		width := m.Width
		if width <= 0 {
			width = door.TotalWidth
		}
		run, ok := outermost(runs, m.Edge, m.Offset, width)
		if !ok {
			log.Warn("manual doorway outside edge bounds, skipped",
				zap.Stringer("edge", m.Edge),
				zap.Int("offset", m.Offset),
				zap.Int("width", width))
			continue
		}
		accept(Doorway{
			Edge:   m.Edge,
			Line:   run.Line,
			Start:  m.Offset,
			Width:  width,
			Frame:  min(door.FrameWidth, width),
			Manual: true,
		})
	}

	width := door.TotalWidth
	for i := 0; i < plan.Count; i++ {
		var edge grid.Direction
		if len(plan.Edges) > 0 {
			edge = plan.Edges[i%len(plan.Edges)]
		} else {
			edge = grid.Directions[r.Intn(len(grid.Directions))]
		}
		run, ok := longest(runs, edge)
		if !ok || run.Length < width || width <= 0 {
			log.Warn("no run long enough for a doorway",
				zap.Stringer("edge", edge),
				zap.Int("width", width))
			continue
		}
		accept(Doorway{
			Edge:  edge,
			Line:  run.Line,
			Start: run.Start + (run.Length-width)/2,
			Width: width,
			Frame: min(door.FrameWidth, width),
		})
	}

	log.Info("doorways planned", zap.Int("count", len(layout)))
	return layout
}

// outer reports whether line a lies further out than line b for walls facing d.
func outer(d grid.Direction, a, b int) bool {
	if d == grid.North || d == grid.East {
		return a > b
	}
	return a < b
}

// outermost finds the run facing edge that holds [start, start+width), preferring the one furthest out.
func outermost(runs [4][]Run, edge grid.Direction, start, width int) (Run, bool) {
	if !edge.Valid() {
		return Run{}, false
	}
	var best Run
	found := false
	for _, r := range runs[edge] {
		if r.Contains(start, width) && (!found || outer(edge, r.Line, best.Line)) {
			best, found = r, true
		}
	}
	return best, found
}

// longest returns the longest run facing edge; ties go to the outermost, then the first.
func longest(runs [4][]Run, edge grid.Direction) (Run, bool) {
	if !edge.Valid() {
		return Run{}, false
	}
	var best Run
	found := false
	for _, r := range runs[edge] {
		if !found || r.Length > best.Length || (r.Length == best.Length && outer(edge, r.Line, best.Line)) {
			best, found = r, true
		}
	}
	return best, found
}

// DoorwayRecords computes frame and side records for a layout. Only the layout is cached between
// runs; transforms are rebuilt here from the current cell size and door offset.
func DoorwayRecords(layout []Doorway, door *catalog.DoorData, cellSize float32) []placement.Record {
	if door == nil {
		door = catalog.DefaultDoor()
	}
	var out []placement.Record
	for _, dw := range layout {
		before, after := dw.sides()
		out = append(out, doorRecord(dw, door.FrameMesh, before, dw.Frame, cellSize, door.Offset))
		if door.SideFill != catalog.SideFillMesh {
			continue
		}
		for i := 0; i < before; i++ {
			out = append(out, doorRecord(dw, door.SideMesh, i, 1, cellSize, door.Offset))
		}
		for i := 0; i < after; i++ {
			out = append(out, doorRecord(dw, door.SideMesh, before+dw.Frame+i, 1, cellSize, door.Offset))
		}
	}
	return out
}

// doorRecord places mesh over width cells starting at cell index first of the opening.
func doorRecord(dw Doorway, mesh string, first, width int, cellSize float32, offset math.Vec3) placement.Record {
	along := (float32(dw.Start+first) + float32(width)/2) * cellSize
	across := edgeCoord(dw.Edge, dw.Line, cellSize)
	pos := math.Vec3{X: along, Y: across}
	if dw.Edge == grid.East || dw.Edge == grid.West {
		pos = math.Vec3{X: across, Y: along}
	}
	yaw := Yaw(dw.Edge)
	return placement.Record{
		Kind:      placement.Doorway,
		Mesh:      mesh,
		Cell:      dw.Cell(first),
		Footprint: dw.Edge.Compose(width, 1),
		Rotation:  yaw,
		Facing:    dw.Edge,
		Transform: math.Transform{Position: pos.Add(offset), Yaw: float32(yaw)},
	}
}
