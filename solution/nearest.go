package solution

import "container/heap"

// rankCost pairs a route rank with its travel cost to/from some job, for
// use in the bounded max-heap below.
type rankCost struct {
	rank int
	cost int64
}

// boundedMaxHeap keeps the k smallest-cost rankCost entries seen so far:
// a max-heap on cost, capped at size k, so pushing a new smaller entry
// evicts the current worst of the k kept. This is the same "keep a
// bounded heap of the best candidates" shape dijkstra.Dijkstra uses for
// its lazy-decrease-key priority queue, applied here to top-k selection
// instead of shortest-path relaxation.
type boundedMaxHeap struct {
	items []rankCost
	k     int
}

func (h boundedMaxHeap) Len() int            { return len(h.items) }
func (h boundedMaxHeap) Less(i, j int) bool {
	if h.items[i].cost != h.items[j].cost {
		return h.items[i].cost > h.items[j].cost
	}

	return h.items[i].rank > h.items[j].rank
}
func (h boundedMaxHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *boundedMaxHeap) Push(x interface{}) { h.items = append(h.items, x.(rankCost)) }
func (h *boundedMaxHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]

	return item
}

func (h *boundedMaxHeap) offer(rc rankCost) {
	if h.Len() < h.k {
		heap.Push(h, rc)
		return
	}
	if h.Len() > 0 && rc.cost < h.items[0].cost {
		heap.Pop(h)
		heap.Push(h, rc)
	}
}

// nearestKRanks returns, in ascending-cost order, the ranks of the k
// route stops with lowest cost(rank). len(costs) is the route length;
// ties are broken by rank. k<=0 returns nil.
func nearestKRanks(costs []int64, k int) []int {
	if k <= 0 || len(costs) == 0 {
		return nil
	}
	if k > len(costs) {
		k = len(costs)
	}

	h := &boundedMaxHeap{k: k}
	for rank, c := range costs {
		h.offer(rankCost{rank: rank, cost: c})
	}

	out := make([]int, h.Len())
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(h).(rankCost).rank
	}

	return out
}
