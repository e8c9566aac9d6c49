package query

import (
	"testing"

	"oceanroute/pkg/geo"
	"oceanroute/pkg/graph"
	"oceanroute/pkg/raster"
	"oceanroute/pkg/search"
)

func buildAllWater(rows, cols int) (raster.Raster, *graph.Graph) {
	g := raster.New(rows, cols)
	water := make([]bool, g.N())
	for i := range water {
		water[i] = true
	}
	return g, graph.Build(g, water)
}

func TestSnapPicksWaterAmongBracketingCells(t *testing.T) {
	_, gr := buildAllWater(10, 10)
	res := Snap(gr, 0.001, 0.001)
	if !res.OK {
		t.Fatal("expected a water snap on an all-water raster")
	}
}

func TestSnapFailsWhenAllBracketingCellsAreLand(t *testing.T) {
	g := raster.New(4, 4)
	allLand := make([]bool, g.N())
	gr := graph.Build(g, allLand)

	res := Snap(gr, 1, 1)
	if res.OK {
		t.Fatal("expected no water snap on an all-land raster")
	}
}

func TestFacadeSameSnapNodeSkipsSearch(t *testing.T) {
	_, gr := buildAllWater(10, 10)
	f := &Facade{Graph: gr}
	st := search.NewState(int(gr.NumNodes))

	// Two points inside the same cell snap to the same node.
	res, err := f.FindPath(0.0001, 0.0001, 0.0002, 0.0002, Dijkstra, st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Found {
		t.Fatal("expected a result for two points in the same cell")
	}
	if len(res.Features) != 1 || len(res.Features[0].Coordinates) != 2 {
		t.Fatalf("expected a single 2-point leg, got %+v", res.Features)
	}
}

func TestFacadeNoPathOnIsolatedLandIsland(t *testing.T) {
	g := raster.New(6, 6)
	water := make([]bool, g.N())
	for i := range water {
		water[i] = true
	}
	// Enclose the two water cells (3,3) and (4,3) with land. The edge
	// between them keeps (3,3) a water node in the graph, so it snaps
	// successfully (a water cell with no water neighbor has no edges and
	// counts as land), but nothing outside the pocket can reach it.
	for _, nb := range [][2]int{{2, 3}, {5, 3}, {3, 2}, {4, 2}, {3, 4}, {4, 4}} {
		water[g.Index(nb[0], nb[1])] = false
	}
	gr := graph.Build(g, water)
	f := &Facade{Graph: gr}
	st := search.NewState(int(gr.NumNodes))

	target := g.Coordinate(3, 3)
	other := g.Coordinate(0, 0)
	res, err := f.FindPath(other.LonDeg(), other.LatDeg(), target.LonDeg(), target.LatDeg(), Dijkstra, st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Found {
		t.Fatal("expected no path to a landlocked water cell")
	}
}

func TestSplitAntimeridianNoCrossingYieldsOneLine(t *testing.T) {
	coords := []geo.Coordinate{
		geo.NewCoordinate(10, 10),
		geo.NewCoordinate(20, 10),
		geo.NewCoordinate(30, 10),
	}
	lines := SplitAntimeridian(coords)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
}

func TestSplitAntimeridianCrossingYieldsTwoLines(t *testing.T) {
	coords := []geo.Coordinate{
		geo.NewCoordinate(170, 10),
		geo.NewCoordinate(-170, 10),
	}
	lines := SplitAntimeridian(coords)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines after antimeridian crossing, got %d", len(lines))
	}
	for _, line := range lines {
		for i := 1; i < len(line.Coordinates); i++ {
			delta := line.Coordinates[i].Lon - line.Coordinates[i-1].Lon
			if delta > 180*int32(geo.Factor) || delta < -180*int32(geo.Factor) {
				t.Fatalf("line segment still crosses the antimeridian: %+v", line.Coordinates)
			}
		}
	}
}
