package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"oceanroute/pkg/coast"
	"oceanroute/pkg/graph"
	"oceanroute/pkg/ingest"
	"oceanroute/pkg/raster"
)

func main() {
	input := flag.String("input", "", "Path to .osm.pbf file containing natural=coastline ways")
	coastOut := flag.String("coast-out", "coast.bin", "Output path for the assembled coastline archive")
	graphOut := flag.String("graph-out", "graph.bin", "Output path for the base CSR graph archive")
	rows := flag.Int("rows", 4320, "Raster row count (latitude resolution)")
	cols := flag.Int("cols", 8640, "Raster column count (longitude resolution)")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel workers for raster classification")
	bbox := flag.String("bbox", "", "Bounding box filter: minLat,minLng,maxLat,maxLng")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: preprocess --input <coastline.osm.pbf> [--rows N --cols N --coast-out coast.bin --graph-out graph.bin]")
		os.Exit(1)
	}

	var opts ingest.Options
	if *bbox != "" {
		var minLat, minLng, maxLat, maxLng float64
		if _, err := fmt.Sscanf(*bbox, "%f,%f,%f,%f", &minLat, &minLng, &maxLat, &maxLng); err != nil {
			log.Fatalf("invalid bbox format (expected minLat,minLng,maxLat,maxLng): %v", err)
		}
		opts.BBox = ingest.BBox{MinLat: minLat, MaxLat: maxLat, MinLon: minLng, MaxLon: maxLng}
		log.Printf("preprocess: bounding box filter lat [%.4f, %.4f], lon [%.4f, %.4f]", minLat, maxLat, minLng, maxLng)
	}

	start := time.Now()

	log.Println("preprocess: opening coastline PBF file...")
	f, err := os.Open(*input)
	if err != nil {
		log.Fatalf("preprocess: failed to open input file: %v", err)
	}
	defer f.Close()

	log.Println("preprocess: decoding coastline ways and assembling closed rings...")
	decoder := ingest.NewOSMDecoder(f, opts)
	rings, err := coast.Assemble(decoder)
	if err != nil {
		log.Fatalf("preprocess: failed to assemble coastline rings: %v", err)
	}
	log.Printf("preprocess: assembled %d closed rings", len(rings))

	log.Printf("preprocess: writing coast archive to %s...", *coastOut)
	if err := graph.WriteCoastArchive(*coastOut, graph.ToCoastArchive(rings)); err != nil {
		log.Fatalf("preprocess: failed to write coast archive: %v", err)
	}

	log.Printf("preprocess: classifying %dx%d raster (%d workers)...", *cols, *rows, *workers)
	ras := raster.New(*rows, *cols)
	water, err := raster.Classify(context.Background(), ras, rings, *workers)
	if err != nil {
		log.Fatalf("preprocess: raster classification failed: %v", err)
	}

	var waterCount int
	for _, w := range water {
		if w {
			waterCount++
		}
	}
	log.Printf("preprocess: classified %d/%d cells as water (%.1f%%)", waterCount, ras.N(), float64(waterCount)/float64(ras.N())*100)

	log.Println("preprocess: building base CSR graph...")
	g := graph.Build(ras, water)
	log.Printf("preprocess: graph: %d nodes, %d edges", g.NumNodes, len(g.EdgeTo))

	if err := graph.ValidateCSR(g.Offsets, g.EdgeTo, g.NumNodes); err != nil {
		log.Fatalf("preprocess: built graph failed CSR validation: %v", err)
	}

	log.Printf("preprocess: writing graph archive to %s...", *graphOut)
	if err := graph.WriteGraphArchive(*graphOut, &graph.Archive{Graph: g}); err != nil {
		log.Fatalf("preprocess: failed to write graph archive: %v", err)
	}

	info, _ := os.Stat(*graphOut)
	elapsed := time.Since(start)
	log.Printf("preprocess: done in %s. graph archive: %s (%.1f MB)", elapsed.Round(time.Second), *graphOut, float64(info.Size())/(1024*1024))
}
