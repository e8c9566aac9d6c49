package graph

import (
	"os"
	"path/filepath"
	"testing"

	"oceanroute/pkg/coast"
	"oceanroute/pkg/geo"
	"oceanroute/pkg/raster"
)

func TestGraphArchiveRoundTrip(t *testing.T) {
	g := raster.New(10, 10)
	water := make([]bool, g.N())
	for i := range water {
		water[i] = true
	}
	built := Build(g, water)

	path := filepath.Join(t.TempDir(), "graph.bin")
	if err := WriteGraphArchive(path, &Archive{Graph: built}); err != nil {
		t.Fatalf("WriteGraphArchive: %v", err)
	}

	loaded, err := ReadGraphArchive(path)
	if err != nil {
		t.Fatalf("ReadGraphArchive: %v", err)
	}

	lg := loaded.Graph
	if lg.NumNodes != built.NumNodes {
		t.Fatalf("NumNodes = %d, want %d", lg.NumNodes, built.NumNodes)
	}
	if len(lg.EdgeTo) != len(built.EdgeTo) {
		t.Fatalf("EdgeTo length = %d, want %d", len(lg.EdgeTo), len(built.EdgeTo))
	}
	for i := range built.Offsets {
		if lg.Offsets[i] != built.Offsets[i] {
			t.Fatalf("Offsets[%d] = %d, want %d", i, lg.Offsets[i], built.Offsets[i])
		}
	}
	for i := range built.EdgeTo {
		if lg.EdgeTo[i] != built.EdgeTo[i] || lg.EdgeDist[i] != built.EdgeDist[i] {
			t.Fatalf("edge %d mismatch after round trip", i)
		}
	}
	if loaded.HasOverlay {
		t.Fatal("plain base graph archive should not report HasOverlay")
	}
}

func TestGraphArchiveWithOverlayRoundTrip(t *testing.T) {
	g := raster.New(6, 6)
	water := make([]bool, g.N())
	for i := range water {
		water[i] = true
	}
	built := Build(g, water)

	membership := make([]int32, built.NumNodes)
	for i := range membership {
		membership[i] = -1
	}
	membership[7] = 0

	a := &Archive{
		Graph:          built,
		HasOverlay:     true,
		RectLeft:       []int32{1},
		RectTop:        []int32{1},
		RectRight:      []int32{3},
		RectBottom:     []int32{3},
		RectMembership: membership,
	}

	path := filepath.Join(t.TempDir(), "overlay.bin")
	if err := WriteGraphArchive(path, a); err != nil {
		t.Fatalf("WriteGraphArchive: %v", err)
	}
	loaded, err := ReadGraphArchive(path)
	if err != nil {
		t.Fatalf("ReadGraphArchive: %v", err)
	}
	if !loaded.HasOverlay {
		t.Fatal("expected HasOverlay = true")
	}
	if loaded.RectMembership[7] != 0 {
		t.Fatalf("RectMembership[7] = %d, want 0", loaded.RectMembership[7])
	}
	if loaded.RectMembership[0] != -1 {
		t.Fatalf("RectMembership[0] = %d, want -1", loaded.RectMembership[0])
	}
}

func TestGraphArchiveRejectsCorruptedCRC(t *testing.T) {
	g := raster.New(4, 4)
	water := make([]bool, g.N())
	for i := range water {
		water[i] = true
	}
	built := Build(g, water)

	path := filepath.Join(t.TempDir(), "corrupt.bin")
	if err := WriteGraphArchive(path, &Archive{Graph: built}); err != nil {
		t.Fatalf("WriteGraphArchive: %v", err)
	}

	// Flip a byte in the middle of the file, inside the payload.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)/2] ^= 0xFF
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadGraphArchive(path); err == nil {
		t.Fatal("expected CRC32 mismatch error for corrupted archive")
	}
}

func TestCoastArchiveRoundTrip(t *testing.T) {
	rings := []*coast.Ring{
		{
			Coordinates: []geo.Coordinate{
				{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 10, Lat: 10}, {Lon: 0, Lat: 0},
			},
			Leftmost: 0, Rightmost: 10,
		},
		{
			Coordinates: []geo.Coordinate{
				{Lon: 50, Lat: 50}, {Lon: 60, Lat: 50}, {Lon: 50, Lat: 50},
			},
			Leftmost: 50, Rightmost: 60,
		},
	}

	archive := ToCoastArchive(rings)
	path := filepath.Join(t.TempDir(), "coast.bin")
	if err := WriteCoastArchive(path, archive); err != nil {
		t.Fatalf("WriteCoastArchive: %v", err)
	}

	loaded, err := ReadCoastArchive(path)
	if err != nil {
		t.Fatalf("ReadCoastArchive: %v", err)
	}
	back := FromCoastArchive(loaded)
	if len(back) != len(rings) {
		t.Fatalf("got %d rings, want %d", len(back), len(rings))
	}
	for i := range rings {
		if len(back[i].Coordinates) != len(rings[i].Coordinates) {
			t.Fatalf("ring %d: %d coords, want %d", i, len(back[i].Coordinates), len(rings[i].Coordinates))
		}
		for j := range rings[i].Coordinates {
			if back[i].Coordinates[j] != rings[i].Coordinates[j] {
				t.Fatalf("ring %d coord %d mismatch: got %v want %v", i, j, back[i].Coordinates[j], rings[i].Coordinates[j])
			}
		}
		if back[i].Leftmost != rings[i].Leftmost || back[i].Rightmost != rings[i].Rightmost {
			t.Fatalf("ring %d extent mismatch", i)
		}
	}
}
