package query

import (
	"fmt"

	"oceanroute/pkg/geo"
	"oceanroute/pkg/graph"
	"oceanroute/pkg/search"
)

// Variant selects which of the four search algorithms a route request
// runs against.
type Variant int

const (
	Dijkstra Variant = iota
	BiDijkstra
	AStar
	ShortcutAStar
)

func (v Variant) String() string {
	switch v {
	case Dijkstra:
		return "dijkstra"
	case BiDijkstra:
		return "bidijkstra"
	case AStar:
		return "astar"
	case ShortcutAStar:
		return "shortcut_astar"
	default:
		return "unknown"
	}
}

// Result is the façade's output: one or more GeoJSON LineString
// features (already split across the antimeridian) sharing a single
// total distance, or Found=false for a graceful "no path"/"no snap"
// outcome.
type Result struct {
	Features []LineString
	Distance uint32
	Found    bool
	HeapPops uint32
}

// Facade answers find-path queries over a base or shortcut-overlay
// graph. RectMembership is nil for a plain base graph; ShortcutAStar
// requires it to be non-nil.
type Facade struct {
	Graph          *graph.Graph
	RectMembership []int32
}

// FindPath is the single query operation:
// find_path(lon1, lat1, lon2, lat2, variant, state).
//
// It snaps both endpoints to the nearest water node (step 1); if both
// ends snap to the same node, it returns a single-leg geodesic with no
// graph search (step 2); otherwise it runs the selected variant over
// st (step 3), stitches [user-end] + path + [user-start] into one
// polyline with total distance = graph distance + the two snap legs
// (step 4), and splits the result across the antimeridian (step 5).
func (f *Facade) FindPath(lon1, lat1, lon2, lat2 float64, variant Variant, st *search.State) (Result, error) {
	startSnap := Snap(f.Graph, lon1, lat1)
	endSnap := Snap(f.Graph, lon2, lat2)
	if !startSnap.OK || !endSnap.OK {
		return Result{}, nil
	}

	startPt := geo.NewCoordinate(lon1, lat1)
	endPt := geo.NewCoordinate(lon2, lat2)

	if startSnap.Node == endSnap.Node {
		return Result{
			Features: SplitAntimeridian([]geo.Coordinate{endPt, startPt}),
			Distance: startSnap.Dist + endSnap.Dist,
			Found:    true,
		}, nil
	}

	st.Reset()
	var res search.PathResult
	switch variant {
	case Dijkstra:
		res = search.Dijkstra(f.Graph, st, startSnap.Node, endSnap.Node)
	case BiDijkstra:
		res = search.BiDijkstra(f.Graph, st, startSnap.Node, endSnap.Node)
	case AStar:
		res = search.AStar(f.Graph, st, startSnap.Node, endSnap.Node)
	case ShortcutAStar:
		if f.RectMembership == nil {
			return Result{}, fmt.Errorf("query: ShortcutAStar requires a shortcut-overlay graph with rect_membership")
		}
		res = search.ShortcutAStar(f.Graph, f.RectMembership, st, startSnap.Node, endSnap.Node)
	default:
		return Result{}, fmt.Errorf("query: unknown search variant %d", variant)
	}

	if !res.Found {
		return Result{}, nil
	}

	// res.Path runs startSnap.Node..endSnap.Node; the output polyline
	// is [user-end] + path-in-snapped-to-end-order + [user-start],
	// i.e. end -> endSnap -> ... -> startSnap -> start.
	coords := make([]geo.Coordinate, 0, len(res.Path)+2)
	coords = append(coords, endPt)
	for i := len(res.Path) - 1; i >= 0; i-- {
		n := res.Path[i]
		coords = append(coords, geo.Coordinate{Lon: f.Graph.NodeLon[n], Lat: f.Graph.NodeLat[n]})
	}
	coords = append(coords, startPt)

	total := res.Distance + startSnap.Dist + endSnap.Dist

	return Result{
		Features: SplitAntimeridian(coords),
		Distance: total,
		Found:    true,
		HeapPops: res.HeapPops,
	}, nil
}
