package graph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"
)

// Binary archive codec for the two persisted artifacts: the
// coast archive (assembled rings) and the graph archive (CSR arrays,
// raster dimensions, and an optional overlay extension). Both formats
// use the car-router's zero-copy unsafe.Slice I/O, a magic-bytes+version
// header, and a trailing CRC32 checksum, written to a temp file and
// atomically renamed into place.

const (
	coastMagic = "OCNCOAST"
	graphMagic = "OCNGRAPH"
	archiveVersion = uint32(1)

	maxArchiveNodes = 200_000_000
	maxArchiveEdges = 1_000_000_000
)

// --- Coast archive -----------------------------------------------------

// CoastArchive is the on-disk shape of an assembled ring set: every
// ring's coordinates flattened into parallel Lon/Lat arrays, indexed
// by a CSR-style RingOffsets array, alongside each ring's precomputed
// extent.
type CoastArchive struct {
	RingOffsets []uint32 // len numRings+1, indexes into Lon/Lat
	Lon         []int32
	Lat         []int32
	Leftmost    []int32 // len numRings
	Rightmost   []int32 // len numRings
}

type coastHeader struct {
	Magic       [8]byte
	Version     uint32
	NumRings    uint32
	NumCoords   uint32
}

// WriteCoastArchive serializes a CoastArchive to path.
func WriteCoastArchive(path string, a *CoastArchive) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("graph: create coast archive: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	numRings := uint32(len(a.Leftmost))
	hdr := coastHeader{
		Version:   archiveVersion,
		NumRings:  numRings,
		NumCoords: uint32(len(a.Lon)),
	}
	copy(hdr.Magic[:], coastMagic)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("graph: write coast header: %w", err)
	}

	for _, step := range []struct {
		name string
		fn   func() error
	}{
		{"RingOffsets", func() error { return writeUint32Slice(cw, a.RingOffsets) }},
		{"Lon", func() error { return writeInt32Slice(cw, a.Lon) }},
		{"Lat", func() error { return writeInt32Slice(cw, a.Lat) }},
		{"Leftmost", func() error { return writeInt32Slice(cw, a.Leftmost) }},
		{"Rightmost", func() error { return writeInt32Slice(cw, a.Rightmost) }},
	} {
		if err := step.fn(); err != nil {
			return fmt.Errorf("graph: write coast %s: %w", step.name, err)
		}
	}

	if err := binary.Write(f, binary.LittleEndian, cw.hash.Sum32()); err != nil {
		return fmt.Errorf("graph: write coast CRC32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("graph: close coast archive: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("graph: rename coast archive: %w", err)
	}
	return nil
}

// ReadCoastArchive deserializes a CoastArchive from path, validating
// the CRC32 trailer.
func ReadCoastArchive(path string) (*CoastArchive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: open coast archive: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr coastHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("graph: read coast header: %w", err)
	}
	if string(hdr.Magic[:]) != coastMagic {
		return nil, fmt.Errorf("graph: bad coast archive magic %q", hdr.Magic)
	}
	if hdr.Version != archiveVersion {
		return nil, fmt.Errorf("graph: unsupported coast archive version %d", hdr.Version)
	}

	a := &CoastArchive{}
	var err2 error
	if a.RingOffsets, err2 = readUint32Slice(cr, int(hdr.NumRings+1)); err2 != nil {
		return nil, fmt.Errorf("graph: read RingOffsets: %w", err2)
	}
	if a.Lon, err2 = readInt32Slice(cr, int(hdr.NumCoords)); err2 != nil {
		return nil, fmt.Errorf("graph: read Lon: %w", err2)
	}
	if a.Lat, err2 = readInt32Slice(cr, int(hdr.NumCoords)); err2 != nil {
		return nil, fmt.Errorf("graph: read Lat: %w", err2)
	}
	if a.Leftmost, err2 = readInt32Slice(cr, int(hdr.NumRings)); err2 != nil {
		return nil, fmt.Errorf("graph: read Leftmost: %w", err2)
	}
	if a.Rightmost, err2 = readInt32Slice(cr, int(hdr.NumRings)); err2 != nil {
		return nil, fmt.Errorf("graph: read Rightmost: %w", err2)
	}

	expected := cr.hash.Sum32()
	var stored uint32
	if err := binary.Read(f, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("graph: read coast CRC32: %w", err)
	}
	if stored != expected {
		return nil, fmt.Errorf("graph: coast archive CRC32 mismatch: stored=%08x computed=%08x", stored, expected)
	}

	return a, nil
}

// --- Graph archive ------------------------------------------------------

// Archive is the on-disk shape of a built graph: the CSR arrays, raster
// dimensions, node coordinates, and an optional shortcut-overlay
// extension (rectangle bounds and the per-node rect_membership
// annotation). HasOverlay is false for a plain base-graph archive.
type Archive struct {
	Graph *Graph

	HasOverlay     bool
	RectLeft       []int32
	RectTop        []int32
	RectRight      []int32
	RectBottom     []int32
	RectMembership []int32 // len NumNodes; -1 = outside every rectangle
}

type graphHeader struct {
	Magic      [8]byte
	Version    uint32
	NumNodes   uint32
	NumEdges   uint32
	Rows       uint32
	Cols       uint32
	HasOverlay uint32
	NumRects   uint32
}

// WriteGraphArchive serializes an Archive to path.
func WriteGraphArchive(path string, a *Archive) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("graph: create graph archive: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}
	g := a.Graph

	var hasOverlay uint32
	var numRects uint32
	if a.HasOverlay {
		hasOverlay = 1
		numRects = uint32(len(a.RectLeft))
	}

	hdr := graphHeader{
		Version:    archiveVersion,
		NumNodes:   g.NumNodes,
		NumEdges:   uint32(len(g.EdgeTo)),
		Rows:       uint32(g.Rows),
		Cols:       uint32(g.Cols),
		HasOverlay: hasOverlay,
		NumRects:   numRects,
	}
	copy(hdr.Magic[:], graphMagic)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("graph: write graph header: %w", err)
	}

	writers := []func() error{
		func() error { return writeUint32Slice(cw, g.Offsets) },
		func() error { return writeUint32Slice(cw, g.EdgeTo) },
		func() error { return writeUint32Slice(cw, g.EdgeDist) },
		func() error { return writeInt32Slice(cw, g.NodeLon) },
		func() error { return writeInt32Slice(cw, g.NodeLat) },
	}
	if a.HasOverlay {
		writers = append(writers,
			func() error { return writeInt32Slice(cw, a.RectLeft) },
			func() error { return writeInt32Slice(cw, a.RectTop) },
			func() error { return writeInt32Slice(cw, a.RectRight) },
			func() error { return writeInt32Slice(cw, a.RectBottom) },
			func() error { return writeInt32Slice(cw, a.RectMembership) },
		)
	}
	for i, wr := range writers {
		if err := wr(); err != nil {
			return fmt.Errorf("graph: write graph archive field %d: %w", i, err)
		}
	}

	if err := binary.Write(f, binary.LittleEndian, cw.hash.Sum32()); err != nil {
		return fmt.Errorf("graph: write graph CRC32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("graph: close graph archive: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("graph: rename graph archive: %w", err)
	}
	return nil
}

// ReadGraphArchive deserializes an Archive from path, validating the
// CRC32 trailer and the base graph's CSR invariants.
func ReadGraphArchive(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("graph: open graph archive: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr graphHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("graph: read graph header: %w", err)
	}
	if string(hdr.Magic[:]) != graphMagic {
		return nil, fmt.Errorf("graph: bad graph archive magic %q", hdr.Magic)
	}
	if hdr.Version != archiveVersion {
		return nil, fmt.Errorf("graph: unsupported graph archive version %d", hdr.Version)
	}
	if hdr.NumNodes > maxArchiveNodes || hdr.NumEdges > maxArchiveEdges {
		return nil, fmt.Errorf("graph: archive size exceeds limits (nodes=%d edges=%d)", hdr.NumNodes, hdr.NumEdges)
	}

	g := &Graph{NumNodes: hdr.NumNodes, Rows: int(hdr.Rows), Cols: int(hdr.Cols)}
	var err2 error
	if g.Offsets, err2 = readUint32Slice(cr, int(hdr.NumNodes+1)); err2 != nil {
		return nil, fmt.Errorf("graph: read Offsets: %w", err2)
	}
	if g.EdgeTo, err2 = readUint32Slice(cr, int(hdr.NumEdges)); err2 != nil {
		return nil, fmt.Errorf("graph: read EdgeTo: %w", err2)
	}
	if g.EdgeDist, err2 = readUint32Slice(cr, int(hdr.NumEdges)); err2 != nil {
		return nil, fmt.Errorf("graph: read EdgeDist: %w", err2)
	}
	if g.NodeLon, err2 = readInt32Slice(cr, int(hdr.NumNodes)); err2 != nil {
		return nil, fmt.Errorf("graph: read NodeLon: %w", err2)
	}
	if g.NodeLat, err2 = readInt32Slice(cr, int(hdr.NumNodes)); err2 != nil {
		return nil, fmt.Errorf("graph: read NodeLat: %w", err2)
	}

	a := &Archive{Graph: g}
	if hdr.HasOverlay == 1 {
		a.HasOverlay = true
		if a.RectLeft, err2 = readInt32Slice(cr, int(hdr.NumRects)); err2 != nil {
			return nil, fmt.Errorf("graph: read RectLeft: %w", err2)
		}
		if a.RectTop, err2 = readInt32Slice(cr, int(hdr.NumRects)); err2 != nil {
			return nil, fmt.Errorf("graph: read RectTop: %w", err2)
		}
		if a.RectRight, err2 = readInt32Slice(cr, int(hdr.NumRects)); err2 != nil {
			return nil, fmt.Errorf("graph: read RectRight: %w", err2)
		}
		if a.RectBottom, err2 = readInt32Slice(cr, int(hdr.NumRects)); err2 != nil {
			return nil, fmt.Errorf("graph: read RectBottom: %w", err2)
		}
		if a.RectMembership, err2 = readInt32Slice(cr, int(hdr.NumNodes)); err2 != nil {
			return nil, fmt.Errorf("graph: read RectMembership: %w", err2)
		}
	}

	expected := cr.hash.Sum32()
	var stored uint32
	if err := binary.Read(f, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("graph: read graph CRC32: %w", err)
	}
	if stored != expected {
		return nil, fmt.Errorf("graph: graph archive CRC32 mismatch: stored=%08x computed=%08x", stored, expected)
	}

	if err := ValidateCSR(g.Offsets, g.EdgeTo, g.NumNodes); err != nil {
		return nil, fmt.Errorf("graph: archive failed CSR validation: %w", err)
	}

	return a, nil
}

// --- zero-copy I/O helpers (grounded on the car-router's graph/binary.go) --

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeInt32Slice(w io.Writer, s []int32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readInt32Slice(r io.Reader, n int) ([]int32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]int32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
