package bnb

import "container/heap"

// Discipline selects the ordering used by a Queue, matching spec.md §4.1.
type Discipline int

const (
	// DFS orders deepest-first, ties broken by best bound.
	DFS Discipline = iota
	// BFS orders shallowest-first, ties broken by best bound.
	BFS
	// BestFirst orders best-bound-first, ties broken by deeper level.
	BestFirst
	// DFSFlow is identical to DFS but the discipline used by PFSSP
	// callback variants that also rely on PeekMinLB/PopMinLB/FilterByLB.
	DFSFlow
)

func (d Discipline) String() string {
	switch d {
	case DFS:
		return "DFS"
	case BFS:
		return "BFS"
	case BestFirst:
		return "BestFirst"
	case DFSFlow:
		return "DFSFlow"
	default:
		return "Unknown"
	}
}

// Valid reports whether d is one of the defined disciplines, used by
// Config.Validate to fail fast on an unknown value (spec.md §7).
func (d Discipline) Valid() bool {
	switch d {
	case DFS, BFS, BestFirst, DFSFlow:
		return true
	default:
		return false
	}
}

// entry is one (priority, node) pair held by the heap.
type entry struct {
	a, b  float64 // priority tuple components
	index int64   // tie-break: Node's stable index
	node  *Node
}

// less implements the tuple comparison (a, b) with the node's stable
// index as a final deterministic tie-break (spec.md §4.1).
func (e entry) less(o entry) bool {
	if e.a != o.a {
		return e.a < o.a
	}
	if e.b != o.b {
		return e.b < o.b
	}
	return e.index < o.index
}

type entryHeap []entry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is a min-heap of (priority, Node) pairs ordered by a Discipline.
// Enqueue and Dequeue are O(log n); PeekMinLB, PopMinLB and FilterByLB
// scan the whole queue and are O(n).
type Queue struct {
	discipline Discipline
	heap       entryHeap
}

// NewQueue builds an empty Queue for the given discipline.
func NewQueue(discipline Discipline) *Queue {
	q := &Queue{discipline: discipline}
	heap.Init(&q.heap)
	return q
}

func (q *Queue) priorityKey(n *Node) (float64, float64) {
	switch q.discipline {
	case BFS:
		return float64(n.Level), n.Lb
	case BestFirst:
		return n.Lb, -float64(n.Level)
	default: // DFS, DFSFlow
		return -float64(n.Level), n.Lb
	}
}

// Enqueue pushes a node using the discipline's priority key.
func (q *Queue) Enqueue(n *Node) {
	a, b := q.priorityKey(n)
	heap.Push(&q.heap, entry{a: a, b: b, index: n.index, node: n})
}

// Dequeue pops and returns the minimum-priority node, or nil if empty.
func (q *Queue) Dequeue() *Node {
	if q.heap.Len() == 0 {
		return nil
	}
	e := heap.Pop(&q.heap).(entry)
	return e.node
}

// PeekMinLB returns, without removing it, the node whose Lb is smallest
// across the whole queue (used to refresh the global bound).
func (q *Queue) PeekMinLB() *Node {
	if len(q.heap) == 0 {
		return nil
	}
	best := q.heap[0]
	for _, e := range q.heap[1:] {
		if e.node.Lb < best.node.Lb {
			best = e
		}
	}
	return best.node
}

// PopMinLB removes and returns the node whose Lb is smallest across the
// whole queue (used by restart strategies).
func (q *Queue) PopMinLB() *Node {
	if len(q.heap) == 0 {
		return nil
	}
	bestIdx := 0
	for i, e := range q.heap {
		if e.node.Lb < q.heap[bestIdx].node.Lb {
			bestIdx = i
		}
	}
	e := heap.Remove(&q.heap, bestIdx).(entry)
	return e.node
}

// FilterByLB removes every entry with node.Lb >= maxLb and rebuilds the
// heap invariant. O(n).
func (q *Queue) FilterByLB(maxLb float64) {
	kept := q.heap[:0]
	for _, e := range q.heap {
		if e.node.Lb < maxLb {
			kept = append(kept, e)
		}
	}
	q.heap = kept
	heap.Init(&q.heap)
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.heap = q.heap[:0]
}

// Len reports the number of queued nodes.
func (q *Queue) Len() int { return len(q.heap) }

// NotEmpty reports whether the queue has at least one node.
func (q *Queue) NotEmpty() bool { return len(q.heap) > 0 }

// Nodes returns the nodes currently queued, in arbitrary heap order. Used
// by callback variants (e.g. PFSSP restart policies) that need to scan
// the whole queue without popping it.
func (q *Queue) Nodes() []*Node {
	out := make([]*Node, len(q.heap))
	for i, e := range q.heap {
		out[i] = e.node
	}
	return out
}
