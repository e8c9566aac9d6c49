// Package overlay builds the shortcut overlay graph: an
// augmented copy of the base CSR graph with precomputed "shortcut"
// edges between the border cells of user-selected rectangles, plus
// the per-node rect_membership annotation the shortcut-aware A*
// variant uses to prune dense interior exploration.
package overlay

import (
	"fmt"
	"strconv"
	"strings"

	"oceanroute/pkg/raster"
)

// Rectangle is an axis-aligned selection in raster (column, row)
// coordinates: Left <= Right, Top <= Bottom, all inclusive bounds.
type Rectangle struct {
	Left, Top, Right, Bottom int
}

// Width and Height in cells (inclusive bounds).
func (r Rectangle) Width() int  { return r.Right - r.Left + 1 }
func (r Rectangle) Height() int { return r.Bottom - r.Top + 1 }

// Contains reports whether (col,row) lies within the rectangle's
// bounds, inclusive.
func (r Rectangle) Contains(col, row int) bool {
	return col >= r.Left && col <= r.Right && row >= r.Top && row <= r.Bottom
}

// OnBorder reports whether (col,row), already known to be inside r,
// lies on one of its four edges.
func (r Rectangle) OnBorder(col, row int) bool {
	return col == r.Left || col == r.Right || row == r.Top || row == r.Bottom
}

// BorderNodes returns the node indices of every cell on r's border, in
// a deterministic (unspecified but stable) order.
func BorderNodes(g raster.Raster, r Rectangle) []int {
	var nodes []int
	for col := r.Left; col <= r.Right; col++ {
		nodes = append(nodes, g.Index(col, r.Top))
		if r.Bottom != r.Top {
			nodes = append(nodes, g.Index(col, r.Bottom))
		}
	}
	for row := r.Top + 1; row < r.Bottom; row++ {
		nodes = append(nodes, g.Index(r.Left, row))
		if r.Right != r.Left {
			nodes = append(nodes, g.Index(r.Right, row))
		}
	}
	return nodes
}

// InteriorNodes returns every node index strictly inside r (excluding
// its border) — the cells rect_membership annotates.
func InteriorNodes(g raster.Raster, r Rectangle) []int {
	var nodes []int
	for row := r.Top + 1; row < r.Bottom; row++ {
		for col := r.Left + 1; col < r.Right; col++ {
			nodes = append(nodes, g.Index(col, row))
		}
	}
	return nodes
}

// ParseRectangles parses the rectangle text grammar:
//
//	rect := uint,uint,uint,uint   ; left,top,right,bottom
//	list := rect(';' rect)*
func ParseRectangles(s string) ([]Rectangle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	rects := make([]Rectangle, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		fields := strings.Split(p, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("overlay: malformed rectangle %q: want 4 comma-separated uints", p)
		}
		var vals [4]int
		for i, f := range fields {
			v, err := strconv.ParseUint(strings.TrimSpace(f), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("overlay: malformed rectangle %q: %w", p, err)
			}
			vals[i] = int(v)
		}
		rects = append(rects, Rectangle{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]})
	}
	return rects, nil
}
