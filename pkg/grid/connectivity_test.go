package grid

import "testing"

func TestRegions(t *testing.T) {
	g := gridFromRows(
		"##..#",
		"#...#",
		"...##",
		"#....",
	)

	regions := g.Regions(FloorMesh)
	if len(regions) != 3 {
		t.Fatalf("expected 3 regions, got %d", len(regions))
	}

	total := 0
	for _, r := range regions {
		total += len(r)
	}
	if total != g.CountByType(FloorMesh) {
		t.Errorf("regions cover %d cells, grid has %d floor cells", total, g.CountByType(FloorMesh))
	}
}

func TestFloodFill_DiagonalNotConnected(t *testing.T) {
	g := gridFromRows(
		"#.",
		".#",
	)
	region := g.FloodFill(Point{0, 1}, FloorMesh)
	if len(region) != 1 {
		t.Errorf("expected diagonal cells to be separate, got region of %d", len(region))
	}
	if len(g.FloodFill(Point{1, 1}, FloorMesh)) != 0 {
		t.Error("flood fill from a non-matching cell should be empty")
	}
}

func TestKeepLargestRegion(t *testing.T) {
	g := gridFromRows(
		"###..",
		"###.#",
		"....#",
		"#....",
	)

	removed, kept := g.KeepLargestRegion(FloorMesh, Empty)
	if removed != 2 {
		t.Errorf("expected 2 regions removed, got %d", removed)
	}
	if kept != 6 {
		t.Errorf("expected largest region of 6, got %d", kept)
	}
	if n := len(g.Regions(FloorMesh)); n != 1 {
		t.Errorf("expected a single region afterwards, got %d", n)
	}
	if g.CountByType(FloorMesh) != 6 {
		t.Errorf("expected 6 floor cells, got %d", g.CountByType(FloorMesh))
	}
}

func TestCountNeighbors_OutOfBoundsCounts(t *testing.T) {
	g := New(3, 3, Empty)
	// Corner cell: 5 of the 8 window cells are outside the grid.
	if n := g.CountNeighbors(Point{0, 0}, 1, FloorMesh); n != 5 {
		t.Errorf("corner count = %d, want 5", n)
	}
	if n := g.CountNeighbors(Point{1, 1}, 1, FloorMesh); n != 0 {
		t.Errorf("center count = %d, want 0", n)
	}
}

func TestSmooth_Thresholds(t *testing.T) {
	// Center floor cell with exactly 4 floor neighbors keeps its state.
	g := gridFromRows(
		".......",
		".##....",
		".###...",
		".......",
		".......",
	)
	center := Point{2, 2}
	if n := g.CountNeighbors(center, 1, FloorMesh); n != 4 {
		t.Fatalf("fixture broken: center has %d neighbors", n)
	}
	g.Smooth(1, FloorMesh, Empty)
	if g.Get(center) != FloorMesh {
		t.Error("floor cell with 4 neighbors must stay floor")
	}

	// Empty cell with exactly 4 floor neighbors stays empty; with 5 it fills.
	g = gridFromRows(
		".......",
		".##....",
		".#.#...",
		".......",
		".......",
	)
	if g.CountNeighbors(Point{2, 2}, 1, FloorMesh) != 4 {
		t.Fatal("fixture broken")
	}
	g.Smooth(1, FloorMesh, Empty)
	if g.Get(Point{2, 2}) != Empty {
		t.Error("empty cell with 4 neighbors must stay empty")
	}

	g = gridFromRows(
		".......",
		".###...",
		".#.#...",
		".......",
		".......",
	)
	g.Smooth(1, FloorMesh, Empty)
	if g.Get(Point{2, 2}) != FloorMesh {
		t.Error("empty cell with 5 neighbors must become floor")
	}
}

func TestSmooth_IsolatedCellCleared(t *testing.T) {
	g := gridFromRows(
		".....",
		".....",
		"..#..",
		".....",
		".....",
	)
	g.Smooth(1, FloorMesh, Empty)
	if g.Get(Point{2, 2}) != Empty {
		t.Error("isolated floor cell should be cleared")
	}
}
