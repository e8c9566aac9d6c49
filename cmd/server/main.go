package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"oceanroute/pkg/api"
	"oceanroute/pkg/graph"
	"oceanroute/pkg/query"
)

func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to the graph archive (base or shortcut-overlay)")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Printf("server: loading graph archive from %s...", *graphPath)
	arc, err := graph.ReadGraphArchive(*graphPath)
	if err != nil {
		log.Fatalf("server: failed to load graph archive: %v", err)
	}
	log.Printf("server: loaded %d nodes, %d edges, overlay=%v", arc.Graph.NumNodes, len(arc.Graph.EdgeTo), arc.HasOverlay)

	facade := &query.Facade{Graph: arc.Graph}
	if arc.HasOverlay {
		facade.RectMembership = arc.RectMembership
	}

	// Reclaim memory from load-time temporaries before serving.
	runtime.GC()
	debug.FreeOSMemory()

	loadTime := time.Since(start)
	log.Printf("server: ready in %s", loadTime.Round(time.Millisecond))

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		NumNodes:   arc.Graph.NumNodes,
		NumEdges:   len(arc.Graph.EdgeTo),
		HasOverlay: arc.HasOverlay,
	}

	handlers := api.NewHandlers(facade, stats)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("server: stopped: %v", err)
		os.Exit(1)
	}
}
