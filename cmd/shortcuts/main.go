package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"oceanroute/pkg/graph"
	"oceanroute/pkg/overlay"
	"oceanroute/pkg/raster"
)

func main() {
	input := flag.String("input", "graph.bin", "Path to the base graph archive")
	output := flag.String("output", "shortcuts.bin", "Output path for the shortcut-overlay graph archive")
	rectList := flag.String("rects", "", "Semicolon-separated rectangle list: left,top,right,bottom;...")
	workers := flag.Int("workers", runtime.NumCPU(), "Parallel workers for per-rectangle shortcut computation")
	flag.Parse()

	if *rectList == "" {
		fmt.Fprintln(os.Stderr, "Usage: shortcuts --input graph.bin --rects left,top,right,bottom;... [--output shortcuts.bin]")
		os.Exit(1)
	}

	rects, err := overlay.ParseRectangles(*rectList)
	if err != nil {
		log.Fatalf("shortcuts: invalid rectangle list: %v", err)
	}
	log.Printf("shortcuts: parsed %d rectangles", len(rects))

	start := time.Now()

	log.Printf("shortcuts: loading base graph archive from %s...", *input)
	arc, err := graph.ReadGraphArchive(*input)
	if err != nil {
		log.Fatalf("shortcuts: failed to read graph archive: %v", err)
	}
	base := arc.Graph
	ras := raster.New(base.Rows, base.Cols)
	log.Printf("shortcuts: base graph: %d nodes, %d edges, raster %dx%d", base.NumNodes, len(base.EdgeTo), ras.Rows, ras.Cols)

	log.Printf("shortcuts: building shortcut overlay (%d workers)...", *workers)
	result, err := overlay.Build(context.Background(), ras, base, rects, *workers)
	if err != nil {
		log.Fatalf("shortcuts: failed to build overlay: %v", err)
	}
	log.Printf("shortcuts: overlay graph: %d nodes, %d edges (base had %d)", result.Graph.NumNodes, len(result.Graph.EdgeTo), len(base.EdgeTo))

	rectLeft := make([]int32, len(result.Rects))
	rectTop := make([]int32, len(result.Rects))
	rectRight := make([]int32, len(result.Rects))
	rectBottom := make([]int32, len(result.Rects))
	for i, r := range result.Rects {
		rectLeft[i] = int32(r.Left)
		rectTop[i] = int32(r.Top)
		rectRight[i] = int32(r.Right)
		rectBottom[i] = int32(r.Bottom)
	}

	outArc := &graph.Archive{
		Graph:          result.Graph,
		HasOverlay:     true,
		RectLeft:       rectLeft,
		RectTop:        rectTop,
		RectRight:      rectRight,
		RectBottom:     rectBottom,
		RectMembership: result.RectMembership,
	}

	log.Printf("shortcuts: writing overlay archive to %s...", *output)
	if err := graph.WriteGraphArchive(*output, outArc); err != nil {
		log.Fatalf("shortcuts: failed to write overlay archive: %v", err)
	}

	info, _ := os.Stat(*output)
	elapsed := time.Since(start)
	log.Printf("shortcuts: done in %s. overlay archive: %s (%.1f MB)", elapsed.Round(time.Second), *output, float64(info.Size())/(1024*1024))
}
