// Package query implements the query façade: snapping an
// arbitrary (lon,lat) point to the nearest water node, dispatching one
// of the four search variants, stitching the result into a geodesic
// polyline, and splitting that polyline across the antimeridian.
package query

import (
	"math"

	"oceanroute/pkg/geo"
	"oceanroute/pkg/graph"
)

// SnapResult is the outcome of resolving an arbitrary point to the
// nearest water raster node.
type SnapResult struct {
	Node uint32
	Dist uint32 // great-circle distance in meters from the query point
	OK   bool
}

// Snap resolves (lon,lat) to the nearest water node among the (up to)
// four raster cells bracketing it: the cells in the column/row pair
// directly below and above the point in each axis. Among those that
// are water, it returns the one of minimum great-circle distance.
// OK is false if none of the four bracketing cells is water, meaning
// the query point falls outside the domain this graph covers.
func Snap(g *graph.Graph, lonDeg, latDeg float64) SnapResult {
	rows, cols := g.Rows, g.Cols
	stepLon := 360.0 / float64(cols)
	stepLat := 180.0 / float64(rows)

	colF := (lonDeg + 180.0) / stepLon
	rowF := (90.0 - latDeg) / stepLat

	col0 := int(math.Floor(colF))
	row0 := int(math.Floor(rowF))

	best := SnapResult{}
	bestDist := math.Inf(1)

	for dc := 0; dc <= 1; dc++ {
		for dr := 0; dr <= 1; dr++ {
			col := mod(col0+dc, cols)
			row := row0 + dr
			if row < 0 || row >= rows {
				continue
			}
			idx := uint32(row*cols + col)
			if g.IsLand(idx) {
				continue
			}
			d := geo.Distance(lonDeg, latDeg, float64(g.NodeLon[idx])/geo.Factor, float64(g.NodeLat[idx])/geo.Factor)
			if float64(d) < bestDist {
				bestDist = float64(d)
				best = SnapResult{Node: idx, Dist: d, OK: true}
			}
		}
	}

	return best
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
