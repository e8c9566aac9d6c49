package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"time"

	"oceanroute/pkg/graph"
	"oceanroute/pkg/search"
)

// benchstat reproduces the original benchmark's cross-validation: run
// A* over N random water-node pairs, time it, then re-run Dijkstra over
// the same pairs and compare the two variants. A pair where only one
// variant finds a path aborts the run; distance differences are
// collected and reported as statistics, and any difference above 1 km
// is logged.
func main() {
	graphPath := flag.String("graph", "graph.bin", "Path to a base graph archive")
	n := flag.Int("n", 100, "Number of random water-node pairs to sample")
	seed := flag.Int64("seed", 1, "Random seed for reproducible sampling")
	flag.Parse()

	arc, err := graph.ReadGraphArchive(*graphPath)
	if err != nil {
		log.Fatalf("benchstat: failed to read graph archive: %v", err)
	}
	g := arc.Graph
	log.Printf("benchstat: loaded %d nodes, %d edges", g.NumNodes, len(g.EdgeTo))

	rng := rand.New(rand.NewSource(*seed))
	pairs := randomWaterNodePairs(rng, g, *n)
	if len(pairs) == 0 {
		log.Fatalf("benchstat: no pairs to sample (graph has no water nodes or -n < 1)")
	}

	st := search.NewState(int(g.NumNodes))

	log.Printf("benchstat: measuring A* over %d random pairs...", len(pairs))
	results := make([]search.PathResult, len(pairs))
	durations := make([]time.Duration, len(pairs))
	for i, p := range pairs {
		st.Reset()
		start := time.Now()
		results[i] = search.AStar(g, st, p[0], p[1])
		durations[i] = time.Since(start)
	}

	log.Printf("benchstat: validating against Dijkstra...")
	var differences []uint32
	for i, p := range pairs {
		st.Reset()
		dijk := search.Dijkstra(g, st, p[0], p[1])
		if dijk.Found != results[i].Found {
			log.Fatalf("benchstat: mismatch on pair %d: dijkstra.Found=%v astar.Found=%v", i, dijk.Found, results[i].Found)
		}
		if !dijk.Found {
			continue
		}
		diff := absDiff(dijk.Distance, results[i].Distance)
		differences = append(differences, diff)
		if diff > 1000 {
			log.Printf("benchstat: high diff %.3fkm on pair %d", float64(diff)/1000, i)
		}
	}

	reportDistanceDiffs(differences)
	reportTimings(durations)
	reportHeapPops(results)
}

func randomWaterNodePairs(rng *rand.Rand, g *graph.Graph, n int) [][2]uint32 {
	if len(g.EdgeTo) == 0 || n < 1 {
		return nil
	}
	randomWater := func() uint32 {
		for {
			if u := uint32(rng.Intn(int(g.NumNodes))); !g.IsLand(u) {
				return u
			}
		}
	}
	pairs := make([][2]uint32, n)
	for i := range pairs {
		pairs[i] = [2]uint32{randomWater(), randomWater()}
	}
	return pairs
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func reportDistanceDiffs(differences []uint32) {
	if len(differences) == 0 {
		fmt.Println("\nNo pairs with a path on both sides; no distance diffs to report.")
		return
	}
	sort.Slice(differences, func(i, j int) bool { return differences[i] < differences[j] })
	var total float64
	for _, d := range differences {
		total += float64(d) / 1000
	}
	median := float64(differences[len(differences)/2]) / 1000
	min := float64(differences[0]) / 1000
	max := float64(differences[len(differences)-1]) / 1000

	fmt.Println("\nDistance diffs (A* vs Dijkstra):")
	fmt.Printf("Average: %.3fkm\n", total/float64(len(differences)))
	fmt.Printf("Median:  %.3fkm\n", median)
	fmt.Printf("Min:     %.3fkm\n", min)
	fmt.Printf("Max:     %.3fkm\n", max)
}

func reportTimings(durations []time.Duration) {
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	var total float64
	for _, d := range durations {
		total += d.Seconds() * 1000
	}
	median := durations[len(durations)/2].Seconds() * 1000
	min := durations[0].Seconds() * 1000
	max := durations[len(durations)-1].Seconds() * 1000

	fmt.Printf("\nStatistics for %d random queries:\n", len(durations))
	fmt.Printf("Total:   %.3fms\n", total)
	fmt.Printf("Average: %.3fms\n", total/float64(len(durations)))
	fmt.Printf("Median:  %.3fms\n", median)
	fmt.Printf("Min:     %.3fms\n", min)
	fmt.Printf("Max:     %.3fms\n", max)
}

func reportHeapPops(results []search.PathResult) {
	pops := make([]uint32, len(results))
	for i, r := range results {
		pops[i] = r.HeapPops
	}
	sort.Slice(pops, func(i, j int) bool { return pops[i] < pops[j] })
	var total uint64
	for _, p := range pops {
		total += uint64(p)
	}
	median := pops[len(pops)/2]
	min := pops[0]
	max := pops[len(pops)-1]

	fmt.Println("\nHeap pops:")
	fmt.Printf("Average: %d\n", total/uint64(len(pops)))
	fmt.Printf("Median:  %d\n", median)
	fmt.Printf("Min:     %d\n", min)
	fmt.Printf("Max:     %d\n", max)
}
