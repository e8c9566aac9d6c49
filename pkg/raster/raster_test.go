package raster

import (
	"context"
	"testing"

	"oceanroute/pkg/coast"
	"oceanroute/pkg/geo"
)

func square(minLon, minLat, maxLon, maxLat float64) *coast.Ring {
	coords := []geo.Coordinate{
		geo.NewCoordinate(minLon, minLat),
		geo.NewCoordinate(maxLon, minLat),
		geo.NewCoordinate(maxLon, maxLat),
		geo.NewCoordinate(minLon, maxLat),
		geo.NewCoordinate(minLon, minLat),
	}
	r := &coast.Ring{Coordinates: coords, Leftmost: coords[0].Lon, Rightmost: coords[0].Lon}
	for _, c := range coords {
		if c.Lon < r.Leftmost {
			r.Leftmost = c.Lon
		}
		if c.Lon > r.Rightmost {
			r.Rightmost = c.Lon
		}
	}
	return r
}

func TestIsWaterInsideSquareIsLand(t *testing.T) {
	ring := square(-10, -10, 10, 10)
	p := geo.NewCoordinate(0, 0)
	if IsWater(p, []*coast.Ring{ring}) {
		t.Fatal("point inside square classified as water, want land")
	}
}

func TestIsWaterOutsideSquareIsWater(t *testing.T) {
	ring := square(-10, -10, 10, 10)
	p := geo.NewCoordinate(50, 50)
	if !IsWater(p, []*coast.Ring{ring}) {
		t.Fatal("point outside square classified as land, want water")
	}
}

func TestIsWaterOutsideLongitudeExtentIsWater(t *testing.T) {
	ring := square(-10, -10, 10, 10)
	// Same latitude band as the ring but far outside its lon extent:
	// the extent precondition should reject the ring without running
	// the ray test at all.
	p := geo.NewCoordinate(170, 0)
	if !IsWater(p, []*coast.Ring{ring}) {
		t.Fatal("point outside lon extent classified as land, want water")
	}
}

func TestIsWaterOnVertexIsLand(t *testing.T) {
	ring := square(-10, -10, 10, 10)
	p := geo.NewCoordinate(-10, -10)
	if IsWater(p, []*coast.Ring{ring}) {
		t.Fatal("point on vertex classified as water, want land")
	}
}

func TestIsWaterSouthPoleAlwaysLand(t *testing.T) {
	p := geo.NewCoordinate(0, -90)
	if IsWater(p, nil) {
		t.Fatal("south pole classified as water, want land (unconditional per spec)")
	}
}

func TestIsWaterNoRingsIsWater(t *testing.T) {
	p := geo.NewCoordinate(12, 34)
	if !IsWater(p, nil) {
		t.Fatal("point with no rings classified as land, want water (default)")
	}
}

func TestIsWaterRingContainingNorthPoleHandlesPoleBearing(t *testing.T) {
	// A ring wholly north of 80deg, wrapping the whole globe at that
	// latitude, containing the pole. This exercises the pole bearing
	// special case inside the ray test without producing a spurious
	// land classification at a point clearly outside it.
	ring := square(-180, 80, 180, 89)
	p := geo.NewCoordinate(0, 10)
	if !IsWater(p, []*coast.Ring{ring}) {
		t.Fatal("point far from polar ring classified as land, want water")
	}
}

func TestRasterCoordinateOrigin(t *testing.T) {
	g := New(180, 360)
	c := g.Coordinate(0, 0)
	if c.LonDeg() != -180 || c.LatDeg() != 90 {
		t.Fatalf("Coordinate(0,0) = (%v,%v), want (-180,90)", c.LonDeg(), c.LatDeg())
	}
}

func TestRasterEastNeighborWrapsAtAntimeridian(t *testing.T) {
	g := New(10, 10)
	idx, ok := g.EastNeighbor(9, 3)
	if !ok {
		t.Fatal("EastNeighbor should be valid mid-grid")
	}
	if wantIdx := g.Index(0, 3); idx != wantIdx {
		t.Fatalf("EastNeighbor(9,3) = %d, want %d (wraps to col 0)", idx, wantIdx)
	}
}

func TestRasterNorthSouthDoNotWrap(t *testing.T) {
	g := New(10, 10)
	if _, ok := g.NorthNeighbor(5, 0); ok {
		t.Fatal("NorthNeighbor at top row should be invalid (rows never wrap)")
	}
	if _, ok := g.SouthNeighbor(5, 9); ok {
		t.Fatal("SouthNeighbor at bottom row should be invalid (rows never wrap)")
	}
}

func TestClassifyMatchesSerialOnSmallRaster(t *testing.T) {
	ring := square(-10, -10, 10, 10)
	g := New(8, 8)
	rings := []*coast.Ring{ring}

	parallel, err := Classify(context.Background(), g, rings, 4)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}

	for i := 0; i < g.N(); i++ {
		want := IsWater(g.CoordinateAt(i), rings)
		if parallel[i] != want {
			t.Fatalf("node %d: parallel classify = %v, serial = %v", i, parallel[i], want)
		}
	}
}
