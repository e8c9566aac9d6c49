package geo

import (
	"math"
	"testing"
)

func TestDistanceZero(t *testing.T) {
	if d := Distance(103.8, 1.3, 103.8, 1.3); d != 0 {
		t.Fatalf("Distance(same point) = %d, want 0", d)
	}
}

func TestDistanceQuarterMeridian(t *testing.T) {
	// Equator to north pole is a quarter great circle: (pi/2) * R.
	d := Distance(0, 0, 0, 90)
	want := uint32(math.Round(math.Pi / 2 * EarthRadiusMeters))
	if diff := int64(d) - int64(want); diff > 10 || diff < -10 {
		t.Fatalf("Distance(equator, pole) = %d, want ~%d", d, want)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(10, 20, -50, 60)
	b := Distance(-50, 60, 10, 20)
	if a != b {
		t.Fatalf("Distance not symmetric: %d vs %d", a, b)
	}
}

func TestBearingNorthPole(t *testing.T) {
	p := Coordinate{Lon: 0, Lat: 90 * Factor}
	q := Coordinate{Lon: 42 * Factor, Lat: 10 * Factor}
	if got := Bearing(p, q); got != q.LonDeg() {
		t.Fatalf("Bearing(pole, q) = %v, want %v", got, q.LonDeg())
	}
}

func TestBearingDueNorth(t *testing.T) {
	p := Coordinate{Lon: 0, Lat: 0}
	q := Coordinate{Lon: 0, Lat: 10 * Factor}
	got := Bearing(p, q)
	if math.Abs(got-0) > 1e-9 {
		t.Fatalf("Bearing(due north) = %v, want 0", got)
	}
}

func TestEastOrWest(t *testing.T) {
	cases := []struct {
		c, d float64
		want int
	}{
		{0, 10, -1},
		{10, 0, 1},
		{0, 0, 0},
		{0, 180, 0},
		{0, -180, 0},
		{170, -170, -1}, // wraps: delta = -340 -> +20, so d is east of c
		{-170, 170, 1},
	}
	for _, c := range cases {
		if got := EastOrWest(c.c, c.d); got != c.want {
			t.Errorf("EastOrWest(%v, %v) = %d, want %d", c.c, c.d, got, c.want)
		}
	}
}

func TestCoordinateRoundTrip(t *testing.T) {
	c := NewCoordinate(103.851959, 1.290270)
	if math.Abs(c.LonDeg()-103.851959) > 1e-6 {
		t.Fatalf("LonDeg round-trip = %v", c.LonDeg())
	}
	if math.Abs(c.LatDeg()-1.290270) > 1e-6 {
		t.Fatalf("LatDeg round-trip = %v", c.LatDeg())
	}
}
