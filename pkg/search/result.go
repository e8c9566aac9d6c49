package search

// PathResult is the common output contract for every search variant
//: either both Path and Distance are present (a route was
// found) or neither is — "no path" is an explicit optional result, not
// a sentinel error. Path lists node indices from s to t in traversal
// order (already un-reversed for the caller). HeapPops counts pop
// operations for instrumentation.
type PathResult struct {
	Path     []uint32
	Distance uint32
	Found    bool
	HeapPops uint32
}

// reconstruct walks parent pointers from t back to s and reverses the
// result into s..t order.
func reconstruct(parent []uint32, s, t uint32) []uint32 {
	var rev []uint32
	for n := t; ; {
		rev = append(rev, n)
		if n == s {
			break
		}
		p := parent[n]
		if p == noNode {
			break
		}
		n = p
	}
	path := make([]uint32, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}
