package search

import (
	"oceanroute/pkg/geo"
	"oceanroute/pkg/graph"
)

// AStar is Dijkstra with the priority key g(v) + h(v,t), where h is
// the great-circle distance from v to t. The heuristic is
// admissible and consistent on the sphere because every edge cost is
// itself a great-circle distance between the same pair of points, so
// A* still returns the optimal path; only the exploration order
// changes relative to plain Dijkstra. Termination is on popping t, as
// with Dijkstra.
func AStar(g *graph.Graph, st *State, s, t uint32) PathResult {
	const dir = 0

	targetCoord := geo.Coordinate{Lon: g.NodeLon[t], Lat: g.NodeLat[t]}
	h := func(v uint32) uint32 {
		return geo.DistanceCoord(geo.Coordinate{Lon: g.NodeLon[v], Lat: g.NodeLat[v]}, targetCoord)
	}

	st.relax(dir, s, 0, noNode, h(s))

	var pops uint32
	for st.PQ[dir].Len() > 0 {
		item := st.PQ[dir].Pop()
		pops++
		u := item.Node
		d := st.Dist[dir][u]

		// A stale entry carries a key computed from a distance that has
		// since been improved; detect it by comparing against the
		// current best g(u) rather than the popped key.
		if item.Dist != d+h(u) {
			continue
		}
		if u == t {
			return PathResult{
				Path:     reconstruct(st.Parent[dir], s, t),
				Distance: d,
				Found:    true,
				HeapPops: pops,
			}
		}

		start, end := g.EdgesFrom(u)
		for e := start; e < end; e++ {
			v := g.EdgeTo[e]
			nd := d + g.EdgeDist[e]
			if nd < st.Dist[dir][v] {
				st.relax(dir, v, nd, u, nd+h(v))
			}
		}
	}

	return PathResult{HeapPops: pops}
}
