package astar

// openQueue is a min-heap of *node ordered by F, then by seq (first entry
// into the open set). Each node tracks its own heap index so an improved
// node can be re-sifted with heap.Fix instead of pushed twice.
type openQueue []*node

// Len returns the number of queued nodes.
func (q openQueue) Len() int { return len(q) }

// Less orders by F ascending; equal F falls back to insertion order.
func (q openQueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}

	return q[i].seq < q[j].seq
}

// Swap swaps two nodes and updates their heap indices.
func (q openQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

// Push appends x, which must be a *node. Called by heap.Push.
func (q *openQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

// Pop removes the last element. Called by heap.Pop.
func (q *openQueue) Pop() any {
	old := *q
	last := len(old) - 1
	n := old[last]
	old[last] = nil
	n.index = -1
	*q = old[:last]

	return n
}
