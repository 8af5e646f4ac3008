package shape

import (
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/roomgen/internal/logger"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

// maxChunkAttempts caps the placement attempts for each chunk after the first.
const maxChunkAttempts = 20

// ChunkParams tunes the chunk aggregate carver.
type ChunkParams struct {
	MinChunks  int
	MaxChunks  int
	Chance2x2  float32
	Chance4x4  float32
	ChanceRect float32
	MarkCustom bool // Carve as Custom so a later pass resolves the floor style
}

// DefaultChunkParams returns the stock chunk tuning.
func DefaultChunkParams() ChunkParams {
	return ChunkParams{
		MinChunks:  3,
		MaxChunks:  8,
		Chance2x2:  0.4,
		Chance4x4:  0.3,
		ChanceRect: 0.3,
		MarkCustom: true,
	}
}

// Normalized floors the counts and makes the three size chances sum to 1.
// All chances at zero fall back to equal thirds.
func (p ChunkParams) Normalized() ChunkParams {
	if p.MinChunks < 1 {
		p.MinChunks = 1
	}
	if p.MaxChunks < p.MinChunks {
		p.MaxChunks = p.MinChunks
	}
	p.Chance2x2 = clamp01(p.Chance2x2)
	p.Chance4x4 = clamp01(p.Chance4x4)
	p.ChanceRect = clamp01(p.ChanceRect)
	if total := p.Chance2x2 + p.Chance4x4 + p.ChanceRect; total > 0 {
		p.Chance2x2 /= total
		p.Chance4x4 /= total
		p.ChanceRect /= total
	} else {
		p.Chance2x2, p.Chance4x4, p.ChanceRect = 1.0/3, 1.0/3, 1.0/3
	}
	return p
}

// Mark returns the cell state chunks are carved with.
func (p ChunkParams) Mark() grid.CellType {
	if p.MarkCustom {
		return grid.Custom
	}
	return grid.Empty
}

// ChunkAggregateShape grows a room out of edge-sharing rectangular chunks on a Void grid.
type ChunkAggregateShape struct {
	Params ChunkParams
}

// Kind implements Shape.
func (ChunkAggregateShape) Kind() Kind { return Chunk }

// Generate implements Shape.
func (s ChunkAggregateShape) Generate(g *grid.Grid, r *rng.Stream) Result {
	log := logger.Named("shape")
	p := s.Params.Normalized()
	mark := p.Mark()

	g.Fill(grid.Void)

	size := chunkSize(r, p)
	first := g.Clip(grid.Rect{
		Min:  grid.Point{X: (g.Width - size.X) / 2, Y: (g.Height - size.Y) / 2},
		Size: size,
	})
	if first.Empty() {
		log.Error("grid too small for a chunk", zap.Stringer("grid", g.Size()))
		return Result{}
	}
	chunks := []grid.Rect{first}
	g.FillRect(first.Min, first.Size, mark)

	target := r.RandRange(p.MinChunks, p.MaxChunks)
	for len(chunks) < target {
		placed := false
		for attempt := 0; attempt < maxChunkAttempts; attempt++ {
			size := chunkSize(r, p)
			candidates := adjacentPositions(g, chunks, size)
			if len(candidates) == 0 {
				continue
			}
			c := grid.Rect{Min: candidates[r.Intn(len(candidates))], Size: size}
			chunks = append(chunks, c)
			g.FillRect(c.Min, c.Size, mark)
			placed = true
			log.Debug("chunk placed", zap.Stringer("min", c.Min), zap.Stringer("size", c.Size), zap.Int("attempt", attempt))
			break
		}
		if !placed {
			log.Warn("no adjacent position for chunk, stopping early",
				zap.Int("placed", len(chunks)),
				zap.Int("target", target))
			break
		}
	}

	res := Result{Occupied: g.CountByType(mark), Chunks: chunks}
	res.TooSmall = res.Occupied < MinRoomCells
	log.Info("chunk shape",
		zap.Int("chunks", len(chunks)),
		zap.Int("target", target),
		zap.Int("occupied", res.Occupied))
	return res
}

// chunkSize draws 2x2, 4x4 or a 2x4 in either orientation.
func chunkSize(r *rng.Stream, p ChunkParams) grid.Point {
	roll := r.FRand()
	switch {
	case roll < p.Chance2x2:
		return grid.Point{X: 2, Y: 2}
	case roll < p.Chance2x2+p.Chance4x4:
		return grid.Point{X: 4, Y: 4}
	}
	if r.Chance(0.5) {
		return grid.Point{X: 2, Y: 4}
	}
	return grid.Point{X: 4, Y: 2}
}

// adjacentPositions lists the origins where a chunk of size fits in bounds, overlaps nothing and
// shares an edge with a placed chunk. Positions touching the newest chunk are preferred so
// consecutive chunks stay joined; older chunks are only searched when the newest is boxed in.
func adjacentPositions(g *grid.Grid, chunks []grid.Rect, size grid.Point) []grid.Point {
	if out := positionsAround(g, chunks, chunks[len(chunks)-1:], size); len(out) > 0 {
		return out
	}
	return positionsAround(g, chunks, chunks, size)
}

func positionsAround(g *grid.Grid, placed, anchors []grid.Rect, size grid.Point) []grid.Point {
	seen := mapset.New[grid.Point]()
	var out []grid.Point

	try := func(p grid.Point) {
		if seen.Has(p) {
			return
		}
		seen.Put(p)
		c := grid.Rect{Min: p, Size: size}
		if !g.Bounds().ContainsRect(c) {
			return
		}
		for _, other := range placed {
			if c.Overlaps(other) {
				return
			}
		}
		out = append(out, p)
	}

	for _, a := range anchors {
		lo, hi := a.Min, a.Max()
		for y := lo.Y - size.Y + 1; y <= hi.Y; y++ {
			try(grid.Point{X: hi.X + 1, Y: y})     // East
			try(grid.Point{X: lo.X - size.X, Y: y}) // West
		}
		for x := lo.X - size.X + 1; x <= hi.X; x++ {
			try(grid.Point{X: x, Y: hi.Y + 1})     // North
			try(grid.Point{X: x, Y: lo.Y - size.Y}) // South
		}
	}
	return out
}
