// Package graph implements the CSR (compressed sparse row) base grid
// graph, its builder from a classified raster, and the
// binary archive codec for the coastline and graph archive files.
package graph

import "fmt"

// Graph is a CSR adjacency over the raster's node indices. Offsets has
// length NumNodes+1, with Offsets[N] equal to len(EdgeTo) (the
// sentinel entry). Node i's outgoing edges are the half-open range
// [Offsets[i], Offsets[i+1]) into EdgeTo/EdgeDist. A land node has
// Offsets[i] == Offsets[i+1] — no outgoing edges.
//
// Edges are undirected but stored at both endpoints, matching the
// raster builder which discovers each direction independently.
type Graph struct {
	NumNodes uint32
	Rows     int
	Cols     int

	Offsets  []uint32 // len NumNodes+1
	EdgeTo   []uint32 // len NumEdges
	EdgeDist []uint32 // len NumEdges, great-circle metres

	// NodeLon/NodeLat are the fixed-point (1e-7 degree) coordinates of
	// every node, in raster row-major order.
	NodeLon []int32
	NodeLat []int32
}

// EdgesFrom returns the half-open edge-index range for node u's
// outgoing edges.
func (g *Graph) EdgesFrom(u uint32) (start, end uint32) {
	return g.Offsets[u], g.Offsets[u+1]
}

// IsLand reports whether node u has no outgoing edges.
func (g *Graph) IsLand(u uint32) bool {
	return g.Offsets[u] == g.Offsets[u+1]
}

// ValidateCSR checks the CSR integrity invariants: Offsets
// is monotonically non-decreasing, the sentinel Offsets[N] equals
// len(edgeTo), and every destination index is in [0, numNodes).
func ValidateCSR(offsets []uint32, edgeTo []uint32, numNodes uint32) error {
	if uint32(len(offsets)) != numNodes+1 {
		return fmt.Errorf("graph: offsets length %d != numNodes+1 %d", len(offsets), numNodes+1)
	}
	numEdges := offsets[numNodes]
	if uint32(len(edgeTo)) != numEdges {
		return fmt.Errorf("graph: edgeTo length %d != offsets[N] %d", len(edgeTo), numEdges)
	}
	for i := uint32(1); i <= numNodes; i++ {
		if offsets[i] < offsets[i-1] {
			return fmt.Errorf("graph: offsets not monotonic at %d: %d < %d", i, offsets[i], offsets[i-1])
		}
	}
	for i, dest := range edgeTo {
		if dest >= numNodes {
			return fmt.Errorf("graph: edgeTo[%d]=%d >= numNodes=%d", i, dest, numNodes)
		}
	}
	return nil
}
