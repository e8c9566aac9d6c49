package graph

import (
	"sort"

	"oceanroute/pkg/geo"
	"oceanroute/pkg/raster"
)

// Build constructs the base CSR graph from a classified raster.
// For every water node, it emits edges to its water neighbors
// at (col±1 mod C, row) and (col, row±1) when in range: column wrap is
// modular (antimeridian), row wrap is never performed. Each edge's
// distance is the great-circle distance between the endpoint
// coordinates. Land nodes (and water nodes whose neighbor is land)
// contribute no edge in that direction.
//
// Adjacency lists are sorted by destination after the build so that
// the resulting CSR is reproducible regardless of how the water flags
// were computed.
func Build(g raster.Raster, water []bool) *Graph {
	numNodes := uint32(g.N())

	nodeLon := make([]int32, numNodes)
	nodeLat := make([]int32, numNodes)
	for i := 0; i < g.N(); i++ {
		c := g.CoordinateAt(i)
		nodeLon[i] = c.Lon
		nodeLat[i] = c.Lat
	}

	type edge struct {
		from, to uint32
		dist     uint32
	}
	var edges []edge

	for i := 0; i < g.N(); i++ {
		if !water[i] {
			continue
		}
		col, row := g.ColRow(i)
		from := uint32(i)
		src := geo.Coordinate{Lon: nodeLon[i], Lat: nodeLat[i]}

		addIfWater := func(nidx int, ok bool) {
			if !ok || !water[nidx] {
				return
			}
			dst := geo.Coordinate{Lon: nodeLon[nidx], Lat: nodeLat[nidx]}
			edges = append(edges, edge{from: from, to: uint32(nidx), dist: geo.DistanceCoord(src, dst)})
		}

		addIfWater(g.EastNeighbor(col, row))
		addIfWater(g.WestNeighbor(col, row))
		addIfWater(g.NorthNeighbor(col, row))
		addIfWater(g.SouthNeighbor(col, row))
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})

	numEdges := uint32(len(edges))
	offsets := make([]uint32, numNodes+1)
	edgeTo := make([]uint32, numEdges)
	edgeDist := make([]uint32, numEdges)

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

	return &Graph{
		NumNodes: numNodes,
		Rows:     g.Rows,
		Cols:     g.Cols,
		Offsets:  offsets,
		EdgeTo:   edgeTo,
		EdgeDist: edgeDist,
		NodeLon:  nodeLon,
		NodeLat:  nodeLat,
	}
}
