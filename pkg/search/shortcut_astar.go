package search

import (
	"oceanroute/pkg/geo"
	"oceanroute/pkg/graph"
)

// ShortcutAStar is A* run over the shortcut overlay graph, with one
// additional pruning rule: when relaxing edge (u,v), if
// rectMembership[v] names a rectangle r and neither s nor t lies
// inside r, the relaxation is skipped. This forces the search to
// enter a rectangle only through its border cells and their shortcut
// edges, trading a bounded amount of suboptimality (at most the
// rectangle's diagonal) for avoiding dense interior exploration. s and
// t's own memberships are resolved once, at query start, per spec.
func ShortcutAStar(g *graph.Graph, rectMembership []int32, st *State, s, t uint32) PathResult {
	const dir = 0

	sRect := rectMembership[s]
	tRect := rectMembership[t]

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

			if r := rectMembership[v]; r >= 0 && r != sRect && r != tRect {
				continue
			}

			nd := d + g.EdgeDist[e]
			if nd < st.Dist[dir][v] {
				st.relax(dir, v, nd, u, nd+h(v))
			}
		}
	}

	return PathResult{HeapPops: pops}
}
