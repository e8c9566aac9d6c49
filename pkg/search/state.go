package search

// State is the single reusable search scratch value shared by every search variant: two
// distance vectors and two parent vectors, all sized N and allocated
// once, plus two priority queues that start small and grow as needed. Index 0 is the forward/only direction;
// index 1 is the backward direction, used only by bidirectional
// search but always allocated. Reset clears it between queries via a
// touched-node list rather than a full O(N) sweep, matching the
// teacher's QueryState.Reset in pkg/routing/dijkstra.go. A State must
// not be used by two concurrent searches.
type State struct {
	n int

	Dist   [2][]uint32
	Parent [2][]uint32
	PQ     [2]MinHeap

	touched [2][]uint32
}

// NewState allocates a State for a graph of n nodes.
func NewState(n int) *State {
	s := &State{n: n}
	for d := 0; d < 2; d++ {
		s.Dist[d] = make([]uint32, n)
		s.Parent[d] = make([]uint32, n)
		for i := range s.Dist[d] {
			s.Dist[d][i] = infDist
			s.Parent[d][i] = noNode
		}
		s.PQ[d] = NewMinHeap(256)
		s.touched[d] = make([]uint32, 0, 1024)
	}
	return s
}

// Reset overwrites every touched distance/parent cell with the
// unreached sentinel and clears both queues.
func (s *State) Reset() {
	for d := 0; d < 2; d++ {
		for _, node := range s.touched[d] {
			s.Dist[d][node] = infDist
			s.Parent[d][node] = noNode
		}
		s.touched[d] = s.touched[d][:0]
		s.PQ[d].Reset()
	}
}

// touch records that dir's distance at node has just left the
// sentinel state, so Reset knows to revert it.
func (s *State) touch(dir int, node uint32) {
	if s.Dist[dir][node] == infDist {
		s.touched[dir] = append(s.touched[dir], node)
	}
}

// relax sets dir's distance/parent at node and pushes it onto dir's
// queue with priority key. Callers are responsible for the
// "newDist < current" comparison before calling relax.
func (s *State) relax(dir int, node uint32, dist uint32, parent uint32, key uint32) {
	s.touch(dir, node)
	s.Dist[dir][node] = dist
	s.Parent[dir][node] = parent
	s.PQ[dir].Push(node, key)
}
