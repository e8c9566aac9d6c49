package overlay

import (
	"oceanroute/pkg/graph"
	"oceanroute/pkg/raster"
)

// ExpandRectangle grows a 1x1 rectangle seeded at (col,row) outward on
// all four sides, one side at a time, until each side hits a land
// cell, the raster edge, or a cell already claimed by an
// already-placed rectangle — matching the interactive rectangle
// picker's auto-expansion loop (original_source/create_shortcuts/src/
// main.rs). The picker UI itself remains an external collaborator;
// this is the pure geometry it calls into.
//
// Returns ok=false if the seed cell is land, or if expansion could not
// grow past a single row or column (a degenerate rectangle is useless
// as a shortcut region).
func ExpandRectangle(g raster.Raster, base *graph.Graph, placed []Rectangle, col, row int) (Rectangle, bool) {
	if base.IsLand(uint32(g.Index(col, row))) {
		return Rectangle{}, false
	}

	left, right, top, bottom := col, col, row, row
	leftDone, rightDone, topDone, bottomDone := false, false, false, false

	for !leftDone || !topDone || !rightDone || !bottomDone {
		if !leftDone {
			if left == 0 || !sideIsWater(g, base, left-1, left-1, top, bottom, false) ||
				collides(placed, Rectangle{left - 1, top, right, bottom}) {
				leftDone = true
			} else {
				left--
			}
		}
		if !topDone {
			if top == 0 || !sideIsWater(g, base, left, right, top-1, top-1, true) ||
				collides(placed, Rectangle{left, top - 1, right, bottom}) {
				topDone = true
			} else {
				top--
			}
		}
		if !rightDone {
			if right == g.Cols-1 || !sideIsWater(g, base, right+1, right+1, top, bottom, false) ||
				collides(placed, Rectangle{left, top, right + 1, bottom}) {
				rightDone = true
			} else {
				right++
			}
		}
		if !bottomDone {
			if bottom == g.Rows-1 || !sideIsWater(g, base, left, right, bottom+1, bottom+1, true) ||
				collides(placed, Rectangle{left, top, right, bottom + 1}) {
				bottomDone = true
			} else {
				bottom++
			}
		}
	}

	if left == right || top == bottom {
		return Rectangle{}, false
	}
	return Rectangle{Left: left, Top: top, Right: right, Bottom: bottom}, true
}

// sideIsWater reports whether every cell in the candidate strip
// [colLo,colHi] x [rowLo,rowHi] is water. horizontal selects whether
// the strip varies over columns (a prospective top/bottom edge) or
// rows (a prospective left/right edge).
func sideIsWater(g raster.Raster, base *graph.Graph, colLo, colHi, rowLo, rowHi int, horizontal bool) bool {
	if horizontal {
		for col := colLo; col <= colHi; col++ {
			if base.IsLand(uint32(g.Index(col, rowLo))) {
				return false
			}
		}
		return true
	}
	for row := rowLo; row <= rowHi; row++ {
		if base.IsLand(uint32(g.Index(colLo, row))) {
			return false
		}
	}
	return true
}

// collides reports whether candidate overlaps any already-placed
// rectangle (bounds are inclusive, so sharing a cell counts).
func collides(placed []Rectangle, candidate Rectangle) bool {
	for _, r := range placed {
		if candidate.Left <= r.Right && candidate.Right >= r.Left &&
			candidate.Top <= r.Bottom && candidate.Bottom >= r.Top {
			return true
		}
	}
	return false
}
