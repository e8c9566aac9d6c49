package search

import "oceanroute/pkg/graph"

// Dijkstra runs classical single-source Dijkstra from s to t over g
// using st as scratch (already Reset by the caller's façade). It
// terminates on *popping* t rather than on relaxing it, so the result
// is optimal even though the heap may still hold stale duplicate
// entries for already-finalized nodes.
func Dijkstra(g *graph.Graph, st *State, s, t uint32) PathResult {
	const dir = 0

	st.relax(dir, s, 0, noNode, 0)

	var pops uint32
	for st.PQ[dir].Len() > 0 {
		item := st.PQ[dir].Pop()
		pops++
		u := item.Node
		d := item.Dist

		// Stale heap entry: a better distance was already finalized.
		if d > st.Dist[dir][u] {
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
				st.relax(dir, v, nd, u, nd)
			}
		}
	}

	return PathResult{HeapPops: pops}
}
