package search

import "oceanroute/pkg/graph"

// BiDijkstra runs two Dijkstra frontiers, one from s (direction 0) and
// one from t (direction 1), alternating one pop per loop iteration
//. Each side relaxes only its own edges (the base graph is
// undirected, so the backward search reuses the same adjacency).
// After every successful relaxation of v, it checks whether the
// opposite side has already reached v and updates the running best
// "meeting" distance mu and meeting node m. The search stops once
// neither frontier's minimum can possibly improve mu, then
// reconstructs the path as (forward s..m) ++ (reverse of backward
// t..m).
func BiDijkstra(g *graph.Graph, st *State, s, t uint32) PathResult {
	st.relax(0, s, 0, noNode, 0)
	st.relax(1, t, 0, noNode, 0)

	mu := uint32(infDist)
	meet := noNode
	var pops uint32
	side := 0

	for {
		fwdMin := st.PQ[0].PeekDist()
		bwdMin := st.PQ[1].PeekDist()
		if fwdMin >= mu && bwdMin >= mu {
			break
		}

		// Alternate: one pop per loop, switching sides each time and
		// skipping a side whose queue is empty or already past mu.
		if side == 0 && fwdMin >= mu {
			side = 1
		} else if side == 1 && bwdMin >= mu {
			side = 0
		}
		pops++
		mu, meet = step(g, st, side, 1-side, mu, meet)
		side = 1 - side
	}

	if meet == noNode {
		return PathResult{HeapPops: pops}
	}

	fwdPath := reconstruct(st.Parent[0], s, meet)
	bwdPath := reconstruct(st.Parent[1], t, meet) // t..meet order
	full := make([]uint32, 0, len(fwdPath)+len(bwdPath)-1)
	full = append(full, fwdPath...)
	for i := len(bwdPath) - 2; i >= 0; i-- {
		full = append(full, bwdPath[i])
	}

	return PathResult{
		Path:     full,
		Distance: mu,
		Found:    true,
		HeapPops: pops,
	}
}

// step pops dir's frontier, relaxes its outgoing edges, and updates
// (mu, meet) whenever a relaxed or popped node has already been
// reached by the opposite direction opp.
func step(g *graph.Graph, st *State, dir, opp int, mu, meet uint32) (uint32, uint32) {
	item := st.PQ[dir].Pop()
	u := item.Node
	d := item.Dist
	if d > st.Dist[dir][u] {
		return mu, meet
	}

	if st.Dist[opp][u] != infDist {
		if cand := d + st.Dist[opp][u]; cand < mu {
			mu, meet = cand, u
		}
	}

	start, end := g.EdgesFrom(u)
	for e := start; e < end; e++ {
		v := g.EdgeTo[e]
		nd := d + g.EdgeDist[e]
		if nd < st.Dist[dir][v] {
			st.relax(dir, v, nd, u, nd)
			if st.Dist[opp][v] != infDist {
				if cand := nd + st.Dist[opp][v]; cand < mu {
					mu, meet = cand, v
				}
			}
		}
	}

	return mu, meet
}
