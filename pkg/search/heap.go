// Package search implements the shared preallocated search state and
// the four shortest-path variants, all operating on
// a base or shortcut-overlay CSR graph.
package search

import "math"

// infDist is the "unreached" sentinel used throughout search state.
const infDist = math.MaxUint32

// noNode is the "no predecessor" sentinel.
const noNode = ^uint32(0)

// PQItem is a priority-queue entry: a node and its current tentative
// distance.
type PQItem struct {
	Node uint32
	Dist uint32
}

// less orders two items by (Dist, Node) — smaller distance first, with
// a deterministic ascending-node-id tie-break.
func less(a, b PQItem) bool {
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Node < b.Node
}

// MinHeap is a concrete binary min-heap, avoiding the interface-boxing
// overhead of container/heap (grounded on the car-router's
// pkg/routing/dijkstra.go MinHeap).
type MinHeap struct {
	items []PQItem
}

// NewMinHeap returns an empty heap with capacity preallocated.
func NewMinHeap(capacity int) MinHeap {
	return MinHeap{items: make([]PQItem, 0, capacity)}
}

func (h *MinHeap) Len() int { return len(h.items) }

func (h *MinHeap) Push(node, dist uint32) {
	h.items = append(h.items, PQItem{Node: node, Dist: dist})
	h.siftUp(len(h.items) - 1)
}

// Pop removes and returns the minimum item. Must not be called on an
// empty heap.
func (h *MinHeap) Pop() PQItem {
	n := len(h.items)
	item := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return item
}

// PeekDist returns the minimum distance currently in the heap, or
// infDist if the heap is empty.
func (h *MinHeap) PeekDist() uint32 {
	if len(h.items) == 0 {
		return infDist
	}
	return h.items[0].Dist
}

func (h *MinHeap) Reset() {
	h.items = h.items[:0]
}

func (h *MinHeap) siftUp(i int) {
	item := h.items[i]
	for i > 0 {
		parent := (i - 1) / 2
		if !less(item, h.items[parent]) {
			break
		}
		h.items[i] = h.items[parent]
		i = parent
	}
	h.items[i] = item
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	item := h.items[i]
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && less(h.items[right], h.items[left]) {
			smallest = right
		}
		if !less(h.items[smallest], item) {
			break
		}
		h.items[i] = h.items[smallest]
		i = smallest
	}
	h.items[i] = item
}
