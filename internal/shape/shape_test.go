package shape

import (
	"math"
	"testing"

	"github.com/Faultbox/roomgen/pkg/catalog"
	"github.com/Faultbox/roomgen/pkg/grid"
	"github.com/Faultbox/roomgen/pkg/rng"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"uniform", Uniform, false},
		{"", Uniform, false},
		{"Random-Walk", RandomWalk, false},
		{"chunky", Chunk, false},
		{"protrusion", Protrusion, false},
		{"preset", Preset, false},
		{"spiral", Uniform, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
	for _, k := range Kinds {
		if back, err := ParseKind(k.String()); err != nil || back != k {
			t.Errorf("%v does not parse back: %v %v", k, back, err)
		}
	}
}

func TestUniformShape(t *testing.T) {
	g := grid.New(10, 10, grid.Void)
	res := UniformShape{}.Generate(g, rng.New(1))

	if res.Occupied != 100 {
		t.Errorf("expected 100 occupied, got %d", res.Occupied)
	}
	if n := g.CountByType(grid.FloorMesh); n != 100 {
		t.Errorf("expected 100 floor cells, got %d", n)
	}
}

func TestRandomWalkScenario(t *testing.T) {
	params := RandomWalkParams{
		FillRatio:       0.5,
		BranchChance:    0.3,
		DirChangeChance: 0.4,
		MaxWalkers:      3,
		SmoothingPasses: 0,
		RemoveIslands:   false,
	}

	run := func() (*grid.Grid, Result) {
		g := grid.New(20, 20, grid.Empty)
		res := RandomWalkShape{Params: params}.Generate(g, rng.New(42))
		return g, res
	}

	g1, res1 := run()
	g2, res2 := run()

	if res1.Occupied != res2.Occupied {
		t.Fatalf("occupied differs between runs: %d vs %d", res1.Occupied, res2.Occupied)
	}
	for i := range g1.Cells {
		if g1.Cells[i] != g2.Cells[i] {
			t.Fatalf("cell %v differs between runs", g1.Coord(i))
		}
	}

	if res1.Occupied > 200 {
		t.Errorf("walk overshot its target: %d > 200", res1.Occupied)
	}
	if res1.Occupied < 2 {
		t.Errorf("walk never moved: %d cells", res1.Occupied)
	}
	t.Logf("seed 42 carved %d of 200 target cells", res1.Occupied)

	// Walkers only step into neighbors, so the raw walk is already one piece.
	if regions := g1.Regions(grid.FloorMesh); len(regions) != 1 {
		t.Errorf("expected a single region, got %d", len(regions))
	}
}

func TestRandomWalkConnectivity(t *testing.T) {
	for seed := int64(1); seed <= 12; seed++ {
		g := grid.New(30, 30, grid.Empty)
		res := RandomWalkShape{Params: DefaultRandomWalkParams()}.Generate(g, rng.New(seed))

		regions := g.Regions(grid.FloorMesh)
		if res.Occupied > 0 && len(regions) != 1 {
			t.Errorf("seed %d: expected one component after island removal, got %d", seed, len(regions))
		}
		if res.TooSmall != (res.Occupied < MinRoomCells) {
			t.Errorf("seed %d: TooSmall=%v with %d cells", seed, res.TooSmall, res.Occupied)
		}
	}
}

func TestRandomWalkDifferentSeeds(t *testing.T) {
	a := grid.New(20, 20, grid.Empty)
	b := grid.New(20, 20, grid.Empty)
	RandomWalkShape{Params: DefaultRandomWalkParams()}.Generate(a, rng.New(1))
	RandomWalkShape{Params: DefaultRandomWalkParams()}.Generate(b, rng.New(2))

	same := true
	for i := range a.Cells {
		if a.Cells[i] != b.Cells[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical rooms")
	}
}

func TestRandomWalkParamsClamped(t *testing.T) {
	p := RandomWalkParams{FillRatio: 2, BranchChance: -1, DirChangeChance: 3, MaxWalkers: 0, SmoothingPasses: -4}.Clamped()
	if p.FillRatio != 0.95 || p.BranchChance != 0 || p.DirChangeChance != 1 || p.MaxWalkers != 1 || p.SmoothingPasses != 0 {
		t.Errorf("unexpected clamp result %+v", p)
	}
	if low := (RandomWalkParams{FillRatio: 0.01}).Clamped(); low.FillRatio != 0.1 {
		t.Errorf("expected fill ratio floor 0.1, got %v", low.FillRatio)
	}
}

func TestChunkScenario(t *testing.T) {
	params := ChunkParams{MinChunks: 3, MaxChunks: 3, Chance2x2: 1.0, MarkCustom: true}

	for seed := int64(1); seed <= 20; seed++ {
		g := grid.New(16, 16, grid.Empty)
		res := ChunkAggregateShape{Params: params}.Generate(g, rng.New(seed))

		if len(res.Chunks) != 3 {
			t.Fatalf("seed %d: expected 3 chunks, got %d", seed, len(res.Chunks))
		}
		if res.Occupied != 12 {
			t.Errorf("seed %d: expected 12 fillable cells, got %d", seed, res.Occupied)
		}
		if n := g.CountByType(grid.Void); n != 256-12 {
			t.Errorf("seed %d: expected %d void cells, got %d", seed, 256-12, n)
		}
		for i, c := range res.Chunks {
			if c.Size != (grid.Point{X: 2, Y: 2}) {
				t.Errorf("seed %d: chunk %d has size %v", seed, i, c.Size)
			}
			if i > 0 && !c.IsAdjacentTo(res.Chunks[i-1]) {
				t.Errorf("seed %d: chunk %d does not share an edge with chunk %d", seed, i, i-1)
			}
			for j := 0; j < i; j++ {
				if c.Overlaps(res.Chunks[j]) {
					t.Errorf("seed %d: chunks %d and %d overlap", seed, i, j)
				}
			}
		}
	}
}

func TestChunkMarkEmpty(t *testing.T) {
	g := grid.New(12, 12, grid.Empty)
	res := ChunkAggregateShape{Params: ChunkParams{MinChunks: 2, MaxChunks: 2, Chance4x4: 1}}.Generate(g, rng.New(3))

	if res.Occupied != 32 {
		t.Errorf("expected two 4x4 chunks (32 cells), got %d", res.Occupied)
	}
	if g.CountByType(grid.Custom) != 0 {
		t.Error("MarkCustom=false must not write Custom cells")
	}
	if len(g.Regions(grid.Empty)) != 1 {
		t.Error("chunks should form one connected footprint")
	}
}

func TestChunkStopsWhenBoxedIn(t *testing.T) {
	// A 4x4 grid holds exactly one 4x4 chunk.
	g := grid.New(4, 4, grid.Empty)
	res := ChunkAggregateShape{Params: ChunkParams{MinChunks: 5, MaxChunks: 5, Chance4x4: 1}}.Generate(g, rng.New(9))

	if len(res.Chunks) != 1 {
		t.Errorf("expected generation to stop at 1 chunk, got %d", len(res.Chunks))
	}
}

func sumsToOne(vals ...float32) bool {
	var total float64
	for _, v := range vals {
		total += float64(v)
	}
	return math.Abs(total-1) < 1e-5
}

func TestProbabilityNormalization(t *testing.T) {
	chunkInputs := []ChunkParams{
		{Chance2x2: 0.4, Chance4x4: 0.3, ChanceRect: 0.3},
		{Chance2x2: 5, Chance4x4: 5, ChanceRect: 5},
		{Chance2x2: 0.1},
		{Chance2x2: -1, Chance4x4: 0.2, ChanceRect: 0.2},
	}
	for _, in := range chunkInputs {
		p := in.Normalized()
		if !sumsToOne(p.Chance2x2, p.Chance4x4, p.ChanceRect) {
			t.Errorf("%+v normalized to %+v", in, p)
		}
	}

	zero := ChunkParams{}.Normalized()
	if math.Abs(float64(zero.Chance2x2)-1.0/3) > 1e-6 || math.Abs(float64(zero.ChanceRect)-1.0/3) > 1e-6 {
		t.Errorf("expected equal thirds, got %+v", zero)
	}
	if zero.MinChunks != 1 || zero.MaxChunks != 1 {
		t.Errorf("expected chunk counts floored at 1, got %d..%d", zero.MinChunks, zero.MaxChunks)
	}

	wallInputs := []IrregularWallParams{
		{Chance2Cell: 0.7, Chance4Cell: 0.7},
		{Chance2Cell: 1},
		{Chance2Cell: 3, Chance4Cell: -2},
	}
	for _, in := range wallInputs {
		p := in.Normalized()
		if !sumsToOne(p.Chance2Cell, p.Chance4Cell) {
			t.Errorf("%+v normalized to %+v", in, p)
		}
	}

	w := IrregularWallParams{MinSegmentLength: 0, MaxSegmentLength: 1}.Normalized()
	if w.Chance2Cell != 0.5 || w.Chance4Cell != 0.5 {
		t.Errorf("expected 50/50 fallback, got %v/%v", w.Chance2Cell, w.Chance4Cell)
	}
	if w.MinSegmentLength != 2 || w.MaxSegmentLength != 2 {
		t.Errorf("expected segment lengths floored at 2, got %d..%d", w.MinSegmentLength, w.MaxSegmentLength)
	}
}

func TestMarkIrregularWalls(t *testing.T) {
	g := grid.New(12, 10, grid.Empty)
	g.FillRect(grid.Point{X: 5, Y: 4}, grid.Point{X: 2, Y: 2}, grid.FloorMesh)

	marked := MarkIrregularWalls(g, rng.New(5), IrregularWallParams{Enabled: true, Chance2Cell: 1, MinSegmentLength: 2, MaxSegmentLength: 3})
	if marked == 0 {
		t.Fatal("expected wall cells to be marked")
	}

	// Depth is always 2 here, so both outer rings are wall and the interior is untouched.
	for i, c := range g.Cells {
		p := g.Coord(i)
		ring := min(p.X, p.Y, g.Width-1-p.X, g.Height-1-p.Y)
		switch {
		case ring < 2 && c != grid.WallMesh:
			t.Errorf("cell %v in ring %d is %v, want WallMesh", p, ring, c)
		case ring >= 2 && c == grid.WallMesh:
			t.Errorf("cell %v in ring %d should not be wall", p, ring)
		}
	}
	if g.CountByType(grid.FloorMesh) != 4 {
		t.Error("floor cells must survive wall marking")
	}
}

func TestMarkIrregularWallsEdgeOrder(t *testing.T) {
	params := IrregularWallParams{Enabled: true, Chance2Cell: 0.5, Chance4Cell: 0.5, MinSegmentLength: 2, MaxSegmentLength: 5}
	g := grid.New(16, 12, grid.Empty)
	MarkIrregularWalls(g, rng.New(11), params)

	// Replay the draws edge by edge: north, south, east, west.
	want := grid.New(16, 12, grid.Empty)
	r := rng.New(11)
	for _, edge := range []grid.Direction{grid.North, grid.South, grid.East, grid.West} {
		length := want.Width
		if edge == grid.East || edge == grid.West {
			length = want.Height
		}
		for pos := 0; pos < length; {
			seg := min(r.RandRange(params.MinSegmentLength, params.MaxSegmentLength), length-pos)
			depth := 4
			if r.FRand() < 0.5 {
				depth = 2
			}
			for l := 0; l < seg; l++ {
				cell := edgeCell(want, edge, pos+l)
				for d := 0; d < depth; d++ {
					if c := cell.Add(edge.Opposite().Vector().Scale(d)); want.IsValid(c) {
						want.Set(c, grid.WallMesh)
					}
				}
			}
			pos += seg
		}
	}

	for i := range g.Cells {
		if g.Cells[i] != want.Cells[i] {
			t.Fatalf("cell %v is %v, want %v", g.Coord(i), g.Cells[i], want.Cells[i])
		}
	}
}

func TestMarkStandardWalls(t *testing.T) {
	g := grid.New(6, 6, grid.Empty)
	g.FillRect(grid.Point{X: 1, Y: 1}, grid.Point{X: 4, Y: 4}, grid.FloorMesh)

	if n := MarkStandardWalls(g); n != 12 {
		t.Errorf("expected 12 boundary cells, got %d", n)
	}
	if n := g.CountByType(grid.FloorMesh); n != 4 {
		t.Errorf("expected 2x2 floor core, got %d", n)
	}
	// Outer ring minus the four corners, which touch no floor cell orthogonally.
	if n := g.CountByType(grid.Empty); n != 4 {
		t.Errorf("expected 4 untouched corner cells, got %d", n)
	}
}

func TestProtrusionShape(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		g := grid.New(20, 20, grid.Void)
		res := ProtrusionShape{Params: DefaultProtrusionParams()}.Generate(g, rng.New(seed))

		base := grid.Rect{Size: grid.Point{X: 12, Y: 12}}
		base.Each(func(p grid.Point) {
			if !g.Is(p, grid.FloorMesh) {
				t.Fatalf("seed %d: base cell %v not floor", seed, p)
			}
		})
		if res.Occupied < base.Area() {
			t.Errorf("seed %d: occupied %d below base area", seed, res.Occupied)
		}
		if len(g.Regions(grid.FloorMesh)) != 1 {
			t.Errorf("seed %d: protrusions must stay attached", seed)
		}
	}
}

func TestProtrusionBaseMinimum(t *testing.T) {
	g := grid.New(5, 5, grid.Empty)
	ProtrusionShape{Params: ProtrusionParams{BasePercentage: 0.1}}.Generate(g, rng.New(1))

	// max(4, 5*0.1) = 4
	if !g.Is(grid.Point{X: 3, Y: 3}, grid.FloorMesh) {
		t.Error("expected base of at least 4x4")
	}
}

func TestPresetRegionShape(t *testing.T) {
	preset := &catalog.Preset{
		Name: "hall",
		Regions: []catalog.Region{
			{Name: "low", Start: grid.Point{X: 0, Y: 0}, End: grid.Point{X: 3, Y: 3}, Priority: 1},
			{Name: "high", Start: grid.Point{X: 6, Y: 6}, End: grid.Point{X: 12, Y: 12}, Priority: 5},
			{Name: "gone", Start: grid.Point{X: 20, Y: 20}, End: grid.Point{X: 22, Y: 22}, Priority: 9},
		},
	}
	g := grid.New(10, 10, grid.Void)
	res := PresetRegionShape{Preset: preset}.Generate(g, rng.New(1))

	if g.CountByType(grid.Empty) != 100 {
		t.Error("preset grid should be fully open")
	}
	if len(res.Chunks) != 2 {
		t.Fatalf("expected 2 in-bounds regions, got %d", len(res.Chunks))
	}
	if res.Chunks[0].Min != (grid.Point{X: 6, Y: 6}) || res.Chunks[0].Size != (grid.Point{X: 4, Y: 4}) {
		t.Errorf("expected clipped high region first, got %+v", res.Chunks[0])
	}
}
