package search

import (
	"container/heap"

	"github.com/pvera/gridpath/pathfind/grid"
)

// entry pairs a frontier state with the bookkeeping the individual strategies
// attach to it: DLS tracks depth, UCS tracks g, A* tracks g and f. The seq
// counter makes priority ordering stable across equal keys.
type entry struct {
	state grid.State
	depth int
	g     float64
	f     float64
	seq   int
}

// frontier is the one abstraction the expansion loops share. BFS, DFS, and
// the priority strategies differ only in which implementation they drive.
type frontier interface {
	push(e entry)
	pop() entry
	size() int
}

// stackFrontier is the LIFO frontier used by DFS and DLS.
type stackFrontier []entry

func (s *stackFrontier) push(e entry) { *s = append(*s, e) }

func (s *stackFrontier) pop() entry {
	old := *s
	n := len(old)
	e := old[n-1]
	*s = old[:n-1]
	return e
}

func (s *stackFrontier) size() int { return len(*s) }

// queueFrontier is the FIFO frontier used by BFS and both halves of BDS.
type queueFrontier []entry

func (q *queueFrontier) push(e entry) { *q = append(*q, e) }

func (q *queueFrontier) pop() entry {
	e := (*q)[0]
	*q = (*q)[1:]
	return e
}

func (q *queueFrontier) size() int { return len(*q) }

// heapFrontier is the priority frontier used by UCS and A*. Ordering is
// supplied at construction; ties fall back to insertion order, which keeps
// expansion deterministic and therefore keeps traces reproducible.
type heapFrontier struct {
	items heapItems
	seq   int
}

type heapItems struct {
	entries []entry
	less    func(a, b entry) bool
}

func (h heapItems) Len() int           { return len(h.entries) }
func (h heapItems) Less(i, j int) bool { return h.less(h.entries[i], h.entries[j]) }
func (h heapItems) Swap(i, j int)      { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *heapItems) Push(x any) {
	h.entries = append(h.entries, x.(entry))
}

func (h *heapItems) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	h.entries = old[:n-1]
	return e
}

func (h *heapFrontier) push(e entry) {
	e.seq = h.seq
	h.seq++
	heap.Push(&h.items, e)
}

func (h *heapFrontier) pop() entry {
	return heap.Pop(&h.items).(entry)
}

func (h *heapFrontier) size() int { return len(h.items.entries) }

// newCostFrontier orders by accumulated cost g ascending, then insertion
// order. Used by UCS.
func newCostFrontier() *heapFrontier {
	return &heapFrontier{items: heapItems{
		less: func(a, b entry) bool {
			if a.g != b.g {
				return a.g < b.g
			}
			return a.seq < b.seq
		},
	}}
}

// newAStarFrontier orders by f ascending, then g, then insertion order.
func newAStarFrontier() *heapFrontier {
	return &heapFrontier{items: heapItems{
		less: func(a, b entry) bool {
			if a.f != b.f {
				return a.f < b.f
			}
			if a.g != b.g {
				return a.g < b.g
			}
			return a.seq < b.seq
		},
	}}
}
