// Package coast reassembles fragmented coastline way segments into
// closed ring polygons. It depends only on pkg/geo and
// defines the "raw map input" external collaborator boundary
// as the Decoder interface: decoding a raw map file into way fragments
// and node coordinates is delegated to pkg/ingest or any other
// implementation.
package coast

import (
	"fmt"

	"oceanroute/pkg/geo"
)

// Ring is a closed coastline polygon: an ordered sequence of
// coordinates whose first equals its last, carrying the precomputed
// leftmost/rightmost longitude of its vertices. A Ring is never
// mutated after assembly.
type Ring struct {
	Coordinates []geo.Coordinate
	Leftmost    int32
	Rightmost   int32
}

// First returns the ring's first coordinate.
func (r *Ring) First() geo.Coordinate { return r.Coordinates[0] }

// Last returns the ring's last coordinate.
func (r *Ring) Last() geo.Coordinate { return r.Coordinates[len(r.Coordinates)-1] }

// Way is one fragment of coastline as decoded from the raw map: an
// ordered list of node coordinates, not yet known to close on itself.
type Way struct {
	Coordinates []geo.Coordinate
}

// Decoder is the external collaborator boundary: it streams
// coastline way fragments from whatever raw map format the build is
// fed. pkg/ingest provides a concrete OSM PBF implementation; any
// other source (GeoJSON, shapefile, a test fixture) need only satisfy
// this interface to be assembled into Rings.
type Decoder interface {
	// Ways returns every coastline way fragment, each already resolved
	// to coordinates (node-id lookups have happened inside the
	// decoder). Order is unspecified.
	Ways() ([]Way, error)
}

// ErrDanglingFragment is returned when a ring's last coordinate has no
// continuation way — malformed input.
type ErrDanglingFragment struct {
	At geo.Coordinate
}

func (e *ErrDanglingFragment) Error() string {
	return fmt.Sprintf("coast: no continuation fragment starting at %+v; coastline input is malformed", e.At)
}

// Assemble reassembles way fragments into closed Rings.
//
// It builds a hash map keyed by each way's first coordinate. Starting
// from an arbitrary unconsumed way, it repeatedly looks up the
// fragment whose first coordinate equals the current ring's last
// coordinate, appends it (consuming it from the map), and updates the
// running leftmost/rightmost extent. When the ring's first and last
// coordinates coincide, the ring is emitted and a new one is started
// from any remaining unconsumed fragment. Assembly terminates when the
// map is empty.
//
// Every input vertex appears in exactly one output ring. Assemble
// fails fatally (returns an *ErrDanglingFragment) if a
// ring's last coordinate has no registered continuation, since that
// indicates malformed input.
func Assemble(decoder Decoder) ([]*Ring, error) {
	ways, err := decoder.Ways()
	if err != nil {
		return nil, fmt.Errorf("coast: decode: %w", err)
	}

	byStart := make(map[geo.Coordinate]Way, len(ways))
	for _, w := range ways {
		if len(w.Coordinates) == 0 {
			continue
		}
		byStart[w.Coordinates[0]] = w
	}

	var rings []*Ring
	for len(byStart) > 0 {
		// Pick any remaining start.
		var start geo.Coordinate
		for k := range byStart {
			start = k
			break
		}
		w := byStart[start]
		delete(byStart, start)

		ring := &Ring{
			Coordinates: append([]geo.Coordinate(nil), w.Coordinates...),
			Leftmost:    w.Coordinates[0].Lon,
			Rightmost:   w.Coordinates[0].Lon,
		}
		extendExtent(ring, w.Coordinates)

		for ring.First() != ring.Last() {
			next, ok := byStart[ring.Last()]
			if !ok {
				return nil, &ErrDanglingFragment{At: ring.Last()}
			}
			delete(byStart, ring.Last())
			// Skip the duplicated join coordinate.
			ring.Coordinates = append(ring.Coordinates, next.Coordinates[1:]...)
			extendExtent(ring, next.Coordinates)
		}

		rings = append(rings, ring)
	}

	return rings, nil
}

func extendExtent(r *Ring, coords []geo.Coordinate) {
	for _, c := range coords {
		if c.Lon < r.Leftmost {
			r.Leftmost = c.Lon
		}
		if c.Lon > r.Rightmost {
			r.Rightmost = c.Lon
		}
	}
}
