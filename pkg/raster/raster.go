// Package raster defines the regular lon/lat grid the base graph is
// built from, and the parallel spherical point-in-polygon land/water
// classifier.
package raster

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"oceanroute/pkg/coast"
	"oceanroute/pkg/geo"
)

// Raster is a fixed-size grid of R rows by C columns. Node i has
// linear index i = row*C + col. The grid is regular in degrees, not
// in metric distance: step longitude is 360/C, step latitude is
// 180/R, with the origin at the upper-left corner (lon=-180, lat=90).
type Raster struct {
	Rows int
	Cols int
}

// New builds a Raster descriptor for an R-row, C-column grid.
func New(rows, cols int) Raster {
	return Raster{Rows: rows, Cols: cols}
}

// N returns the total node count, R*C.
func (g Raster) N() int { return g.Rows * g.Cols }

// Index returns the linear index of (col,row).
func (g Raster) Index(col, row int) int { return row*g.Cols + col }

// ColRow returns the (col,row) of a linear index.
func (g Raster) ColRow(i int) (col, row int) { return i % g.Cols, i / g.Cols }

func (g Raster) stepLon() float64 { return 360.0 / float64(g.Cols) }
func (g Raster) stepLat() float64 { return 180.0 / float64(g.Rows) }

// Coordinate returns the fixed-point coordinate of grid cell (col,row):
// lon = step_lon*col - 180, lat = 90 - step_lat*row.
func (g Raster) Coordinate(col, row int) geo.Coordinate {
	lon := g.stepLon()*float64(col) - 180.0
	lat := 90.0 - g.stepLat()*float64(row)
	return geo.NewCoordinate(lon, lat)
}

// CoordinateAt is Coordinate specialized for a linear node index.
func (g Raster) CoordinateAt(i int) geo.Coordinate {
	col, row := g.ColRow(i)
	return g.Coordinate(col, row)
}

// EastNeighbor returns the node index immediately east of (col,row),
// wrapping modularly at the antimeridian. Returns ok=false if row
// itself is out of range (rows never wrap).
func (g Raster) EastNeighbor(col, row int) (idx int, ok bool) {
	if row < 0 || row >= g.Rows {
		return 0, false
	}
	nc := (col + 1) % g.Cols
	if nc < 0 {
		nc += g.Cols
	}
	return g.Index(nc, row), true
}

// WestNeighbor is EastNeighbor's mirror.
func (g Raster) WestNeighbor(col, row int) (idx int, ok bool) {
	if row < 0 || row >= g.Rows {
		return 0, false
	}
	nc := (col - 1 + g.Cols) % g.Cols
	return g.Index(nc, row), true
}

// NorthNeighbor returns the node directly above (col,row). Rows do
// not wrap: ok is false above the top row.
func (g Raster) NorthNeighbor(col, row int) (idx int, ok bool) {
	if row-1 < 0 {
		return 0, false
	}
	return g.Index(col, row-1), true
}

// SouthNeighbor is NorthNeighbor's mirror.
func (g Raster) SouthNeighbor(col, row int) (idx int, ok bool) {
	if row+1 >= g.Rows {
		return 0, false
	}
	return g.Index(col, row+1), true
}

// waterRef is the fixed ray-test reference point (§4.B "WATER"): the
// north pole, lat=+90, lon=0.
var waterRef = geo.NorthPole()

// IsWater decides land vs. water for coordinate x by spherical
// point-in-polygon ray casting against every ring.
//
// For each ring: skip it if x's longitude lies outside the ring's
// [leftmost,rightmost] extent. Otherwise walk each directed edge
// (a,b); purely meridional edges are skipped; x coinciding exactly
// with a vertex short-circuits to land; x lying on an edge's great
// circle short-circuits to land; otherwise the edge contributes to an
// east/west intersection parity count via the transformed-longitude
// (bearing) comparison against the fixed WATER reference point at the
// north pole. An odd total intersection count across a ring means x
// is inside it (land). The south pole is always land, independent of
// the rings.
func IsWater(x geo.Coordinate, rings []*coast.Ring) bool {
	if x.Lat == -90*geo.Factor {
		return false
	}

	for _, ring := range rings {
		if isLandInRing(x, ring) {
			return false
		}
	}
	return true
}

func isLandInRing(x geo.Coordinate, ring *coast.Ring) bool {
	if x.Lon < ring.Leftmost || x.Lon > ring.Rightmost {
		return false
	}

	intersections := 0
	coords := ring.Coordinates
	for i := 0; i < len(coords)-1; i++ {
		a := coords[i]
		b := coords[i+1]

		if a.Lon == b.Lon {
			continue
		}
		if x == a {
			return true
		}

		lo, hi := a.Lon, b.Lon
		if lo > hi {
			lo, hi = hi, lo
		}
		inInterval := x.Lon >= lo && x.Lon < hi
		if !inInterval && !(hi == 180*geo.Factor && x.Lon == hi) {
			continue
		}

		tAB := geo.Bearing(a, b)
		tAX := geo.Bearing(a, x)
		if tAX == tAB {
			return true
		}

		tAWater := geo.Bearing(a, waterRef)
		s1 := geo.EastOrWest(tAWater, tAB)
		s2 := geo.EastOrWest(tAX, tAB)
		if s1 == -s2 {
			intersections++
		}
	}

	return intersections%2 == 1
}

// Classify computes the land/water flag for every node in the raster
// in parallel, returning a []bool of length g.N() where true means
// water. Work is partitioned into contiguous row bands, one per
// errgroup worker; the classifier is pure and workers never
// communicate or share mutable state beyond the read-only rings.
func Classify(ctx context.Context, g Raster, rings []*coast.Ring, workers int) ([]bool, error) {
	if workers < 1 {
		workers = 1
	}
	n := g.N()
	water := make([]bool, n)

	grp, ctx := errgroup.WithContext(ctx)
	rowsPerWorker := (g.Rows + workers - 1) / workers

	for w := 0; w < workers; w++ {
		startRow := w * rowsPerWorker
		endRow := startRow + rowsPerWorker
		if endRow > g.Rows {
			endRow = g.Rows
		}
		if startRow >= endRow {
			continue
		}

		grp.Go(func() error {
			for row := startRow; row < endRow; row++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				for col := 0; col < g.Cols; col++ {
					i := g.Index(col, row)
					water[i] = IsWater(g.Coordinate(col, row), rings)
				}
			}
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, fmt.Errorf("raster: classify: %w", err)
	}
	return water, nil
}
