package overlay

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tidwall/rtree"
	"golang.org/x/sync/errgroup"

	"oceanroute/pkg/graph"
	"oceanroute/pkg/raster"
	"oceanroute/pkg/search"
)

// Result is the shortcut overlay's in-memory output: an augmented copy
// of the base graph plus the per-node rect_membership annotation and
// the rectangle list.
type Result struct {
	Graph          *graph.Graph
	Rects          []Rectangle
	RectMembership []int32 // len NumNodes; -1 = outside every rectangle
}

type shortcutEdge struct {
	from, to uint32
	dist     uint32
}

// Build augments base with shortcut edges for every rectangle in
// rects: for each rectangle, every pair of distinct border cells gets
// an undirected edge weighted by the shortest water-only path between
// them in the base graph, computed with bidirectional Dijkstra — more
// accurate than a straight-line estimate between the two border cells.
// Each rectangle's batch of border-pair searches runs on its own worker
// with a local
// search.State and a local edge buffer; a single mutex guards the
// final merge into the shared edge list, matching the car-router's
// merge-under-mutex parallel build pattern.
func Build(ctx context.Context, g raster.Raster, base *graph.Graph, rects []Rectangle, workers int) (*Result, error) {
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var allShortcuts []shortcutEdge

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(workers)

	for _, rect := range rects {
		rect := rect
		grp.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			local, err := shortcutsForRectangle(base, g, rect)
			if err != nil {
				return fmt.Errorf("overlay: rectangle %+v: %w", rect, err)
			}
			mu.Lock()
			allShortcuts = append(allShortcuts, local...)
			mu.Unlock()
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	membership := computeMembership(g, rects)
	merged := mergeGraph(base, allShortcuts)

	return &Result{
		Graph:          merged,
		Rects:          rects,
		RectMembership: membership,
	}, nil
}

// shortcutsForRectangle computes one undirected edge per distinct pair
// of border cells of rect, weighted by bidirectional Dijkstra over the
// base graph. Edges are emitted once per pair; the CSR merge step adds
// both directions.
func shortcutsForRectangle(base *graph.Graph, g raster.Raster, rect Rectangle) ([]shortcutEdge, error) {
	border := BorderNodes(g, rect)
	st := search.NewState(int(base.NumNodes))

	var edges []shortcutEdge
	for i := 0; i < len(border); i++ {
		for j := i + 1; j < len(border); j++ {
			s, t := uint32(border[i]), uint32(border[j])
			if base.IsLand(s) || base.IsLand(t) {
				continue
			}
			st.Reset()
			res := search.BiDijkstra(base, st, s, t)
			if !res.Found {
				continue
			}
			edges = append(edges, shortcutEdge{from: s, to: t, dist: res.Distance})
		}
	}
	return edges, nil
}

// computeMembership assigns every strictly-interior node of a
// rectangle its owning rectangle id, using an R-tree over the
// rectangles' raster bounding boxes so each node is resolved with a
// handful of range queries rather than a linear scan over all
// rectangles.
func computeMembership(g raster.Raster, rects []Rectangle) []int32 {
	membership := make([]int32, g.N())
	for i := range membership {
		membership[i] = -1
	}
	if len(rects) == 0 {
		return membership
	}

	var tr rtree.RTreeG[int]
	for id, r := range rects {
		min := [2]float64{float64(r.Left), float64(r.Top)}
		max := [2]float64{float64(r.Right), float64(r.Bottom)}
		tr.Insert(min, max, id)
	}

	for _, r := range rects {
		for _, i := range InteriorNodes(g, r) {
			col, row := g.ColRow(i)
			point := [2]float64{float64(col), float64(row)}
			tr.Search(point, point, func(min, max [2]float64, id int) bool {
				cand := rects[id]
				if cand.Contains(col, row) && !cand.OnBorder(col, row) {
					membership[i] = int32(id)
				}
				return true
			})
		}
	}
	return membership
}

// mergeGraph appends shortcuts symmetrically to base's adjacency and
// rebuilds the CSR, re-sorting by destination so the result is
// reproducible regardless of the parallel workers' completion order.
func mergeGraph(base *graph.Graph, shortcuts []shortcutEdge) *graph.Graph {
	type edge struct {
		from, to uint32
		dist     uint32
	}

	edges := make([]edge, 0, len(base.EdgeTo)+2*len(shortcuts))
	for u := uint32(0); u < base.NumNodes; u++ {
		start, end := base.EdgesFrom(u)
		for e := start; e < end; e++ {
			edges = append(edges, edge{from: u, to: base.EdgeTo[e], dist: base.EdgeDist[e]})
		}
	}
	for _, sc := range shortcuts {
		edges = append(edges, edge{from: sc.from, to: sc.to, dist: sc.dist})
		edges = append(edges, edge{from: sc.to, to: sc.from, dist: sc.dist})
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	numNodes := base.NumNodes
	offsets := make([]uint32, numNodes+1)
	edgeTo := make([]uint32, len(edges))
	edgeDist := make([]uint32, len(edges))
	for i, e := range edges {
		edgeTo[i] = e.to
		edgeDist[i] = e.dist
	}
	for _, e := range edges {
		offsets[e.from+1]++
	}
	for i := uint32(1); i <= numNodes; i++ {
		offsets[i] += offsets[i-1]
	}

	return &graph.Graph{
		NumNodes: numNodes,
		Rows:     base.Rows,
		Cols:     base.Cols,
		Offsets:  offsets,
		EdgeTo:   edgeTo,
		EdgeDist: edgeDist,
		NodeLon:  base.NodeLon,
		NodeLat:  base.NodeLat,
	}
}
