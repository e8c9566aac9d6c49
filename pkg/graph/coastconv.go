package graph

import (
	"oceanroute/pkg/coast"
	"oceanroute/pkg/geo"
)

// ToCoastArchive flattens a set of assembled rings into their
// on-disk CoastArchive shape.
func ToCoastArchive(rings []*coast.Ring) *CoastArchive {
	a := &CoastArchive{
		RingOffsets: make([]uint32, len(rings)+1),
		Leftmost:    make([]int32, len(rings)),
		Rightmost:   make([]int32, len(rings)),
	}
	for i, r := range rings {
		a.RingOffsets[i+1] = a.RingOffsets[i] + uint32(len(r.Coordinates))
		a.Leftmost[i] = r.Leftmost
		a.Rightmost[i] = r.Rightmost
		for _, c := range r.Coordinates {
			a.Lon = append(a.Lon, c.Lon)
			a.Lat = append(a.Lat, c.Lat)
		}
	}
	return a
}

// FromCoastArchive reconstructs rings from a CoastArchive.
func FromCoastArchive(a *CoastArchive) []*coast.Ring {
	numRings := len(a.Leftmost)
	rings := make([]*coast.Ring, numRings)
	for i := 0; i < numRings; i++ {
		start, end := a.RingOffsets[i], a.RingOffsets[i+1]
		ring := &coast.Ring{
			Leftmost:    a.Leftmost[i],
			Rightmost:   a.Rightmost[i],
			Coordinates: make([]geo.Coordinate, end-start),
		}
		for k := start; k < end; k++ {
			ring.Coordinates[k-start] = geo.Coordinate{Lon: a.Lon[k], Lat: a.Lat[k]}
		}
		rings[i] = ring
	}
	return rings
}
