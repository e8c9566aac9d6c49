package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"oceanroute/pkg/graph"
)

// geoJSONFeatureCollection and geoJSONFeature mirror the shape of
// pkg/query's route output, reused here to dump build artifacts for
// inspection rather than a query result.
type geoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   geoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

type geoJSONGeometry struct {
	Type        string  `json:"type"`
	Coordinates any     `json:"coordinates"`
}

func main() {
	coastPath := flag.String("coast", "", "Path to a coast archive to dump as coastlines.geojson")
	graphPath := flag.String("graph", "", "Path to a graph archive to dump its raster mask as raster.geojson")
	coastOut := flag.String("coast-out", "coastlines.geojson", "Output path for the coastline dump")
	rasterOut := flag.String("raster-out", "raster.geojson", "Output path for the raster mask dump")
	flag.Parse()

	if *coastPath == "" && *graphPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: visualize --coast coast.bin [--coast-out coastlines.geojson] | --graph graph.bin [--raster-out raster.geojson]")
		os.Exit(1)
	}

	if *coastPath != "" {
		if err := dumpCoastlines(*coastPath, *coastOut); err != nil {
			log.Fatalf("visualize: %v", err)
		}
	}
	if *graphPath != "" {
		if err := dumpRasterMask(*graphPath, *rasterOut); err != nil {
			log.Fatalf("visualize: %v", err)
		}
	}
}

// dumpCoastlines reads a coast archive and writes every ring as a
// GeoJSON LineString feature, grounded on the Rust extractor's
// Coasts::write_to_geojson.
func dumpCoastlines(path, out string) error {
	a, err := graph.ReadCoastArchive(path)
	if err != nil {
		return fmt.Errorf("read coast archive: %w", err)
	}
	rings := graph.FromCoastArchive(a)
	log.Printf("visualize: dumping %d coastline rings", len(rings))

	fc := geoJSONFeatureCollection{Type: "FeatureCollection"}
	for i, r := range rings {
		coords := make([][2]float64, len(r.Coordinates))
		for j, c := range r.Coordinates {
			coords[j] = [2]float64{c.LonDeg(), c.LatDeg()}
		}
		fc.Features = append(fc.Features, geoJSONFeature{
			Type:     "Feature",
			Geometry: geoJSONGeometry{Type: "LineString", Coordinates: coords},
			Properties: map[string]any{
				"ring_index": i,
				"num_points": len(r.Coordinates),
			},
		})
	}

	return writeJSON(out, fc)
}

// dumpRasterMask reads a built graph archive and writes every water
// node (a node with outgoing edges) as a GeoJSON Point feature tagged
// water=true. Land nodes are left out, so the complement of the dump
// against the raster's full Rows*Cols extent is the land mask.
func dumpRasterMask(path, out string) error {
	arc, err := graph.ReadGraphArchive(path)
	if err != nil {
		return fmt.Errorf("read graph archive: %w", err)
	}
	g := arc.Graph
	log.Printf("visualize: dumping raster mask for %d nodes (raster %dx%d)", g.NumNodes, g.Rows, g.Cols)

	fc := geoJSONFeatureCollection{Type: "FeatureCollection"}
	for i := 0; i < int(g.NumNodes); i++ {
		if g.IsLand(uint32(i)) {
			continue
		}
		fc.Features = append(fc.Features, geoJSONFeature{
			Type: "Feature",
			Geometry: geoJSONGeometry{
				Type:        "Point",
				Coordinates: [2]float64{float64(g.NodeLon[i]) / 1e7, float64(g.NodeLat[i]) / 1e7},
			},
			Properties: map[string]any{"water": true},
		})
	}

	return writeJSON(out, fc)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	log.Printf("visualize: wrote %s", path)
	return nil
}
