// Package ingest provides the concrete decoder for the "raw map
// input" external collaborator boundary: it streams
// coastline way fragments out of an OSM PBF file, implementing
// pkg/coast.Decoder. Grounded on the car-router's pkg/osm/parser.go,
// generalized from car-accessible highway ways to natural=coastline
// ways.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"oceanroute/pkg/coast"
	"oceanroute/pkg/geo"
)

// BBox restricts ingestion to one geographic region, generalized from
// the car-router's bbox filter in pkg/osm/parser.go.
type BBox struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64
}

// IsZero reports whether the bounding box is unset (no filtering).
func (b BBox) IsZero() bool {
	return b.MinLat == 0 && b.MaxLat == 0 && b.MinLon == 0 && b.MaxLon == 0
}

// Contains reports whether (lon,lat) lies inside the bounding box.
func (b BBox) Contains(lonDeg, latDeg float64) bool {
	return latDeg >= b.MinLat && latDeg <= b.MaxLat && lonDeg >= b.MinLon && lonDeg <= b.MaxLon
}

// Options configures an OSMDecoder.
type Options struct {
	BBox BBox
}

// OSMDecoder implements pkg/coast.Decoder by scanning an OSM PBF file
// for natural=coastline ways in two passes, exactly as the car-router's
// parser scans for highway ways: pass one collects way
// node-id sequences and the set of referenced node ids; pass two
// (after seeking back to the start) resolves coordinates only for
// those referenced nodes.
type OSMDecoder struct {
	rs   io.ReadSeeker
	opts Options
}

// NewOSMDecoder wraps rs, which must support seeking back to the
// start for the decoder's second pass.
func NewOSMDecoder(rs io.ReadSeeker, opts Options) *OSMDecoder {
	return &OSMDecoder{rs: rs, opts: opts}
}

// Ways implements pkg/coast.Decoder.
func (d *OSMDecoder) Ways() ([]coast.Way, error) {
	ctx := context.Background()
	useBBox := !d.opts.BBox.IsZero()

	referenced := make(map[osm.NodeID]struct{})
	var wayNodeIDs [][]osm.NodeID

	scanner := osmpbf.New(ctx, d.rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		obj := scanner.Object()
		w, ok := obj.(*osm.Way)
		if !ok {
			continue
		}
		if w.Tags.Find("natural") != "coastline" {
			continue
		}
		if len(w.Nodes) < 2 {
			continue
		}

		ids := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		wayNodeIDs = append(wayNodeIDs, ids)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("ingest: pass 1 (coastline ways): %w", err)
	}
	scanner.Close()

	log.Printf("ingest: pass 1 complete: %d coastline ways, %d referenced nodes", len(wayNodeIDs), len(referenced))

	if _, err := d.rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("ingest: seek for pass 2: %w", err)
	}

	nodeLon := make(map[osm.NodeID]float64, len(referenced))
	nodeLat := make(map[osm.NodeID]float64, len(referenced))

	scanner = osmpbf.New(ctx, d.rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		obj := scanner.Object()
		n, ok := obj.(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; !needed {
			continue
		}
		nodeLon[n.ID] = n.Lon
		nodeLat[n.ID] = n.Lat
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("ingest: pass 2 (node coordinates): %w", err)
	}
	scanner.Close()

	log.Printf("ingest: pass 2 complete: %d node coordinates resolved", len(nodeLat))

	var ways []coast.Way
	var skipped, bboxFiltered int
	for _, ids := range wayNodeIDs {
		coords := make([]geo.Coordinate, 0, len(ids))
		ok, outside := true, false
		for _, id := range ids {
			lon, lonOK := nodeLon[id]
			lat, latOK := nodeLat[id]
			if !lonOK || !latOK {
				ok = false
				break
			}
			if useBBox && !d.opts.BBox.Contains(lon, lat) {
				ok, outside = false, true
				break
			}
			coords = append(coords, geo.NewCoordinate(lon, lat))
		}
		if !ok {
			if outside {
				bboxFiltered++
			} else {
				skipped++
			}
			continue
		}
		ways = append(ways, coast.Way{Coordinates: coords})
	}

	if skipped > 0 {
		log.Printf("ingest: skipped %d ways with unresolved node coordinates", skipped)
	}
	if bboxFiltered > 0 {
		log.Printf("ingest: filtered %d ways outside the bounding box", bboxFiltered)
	}
	log.Printf("ingest: built %d coastline way fragments", len(ways))

	return ways, nil
}
