package dijkstra

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/grid"
)

// Distances computes the exact cheapest cost from source to every cell of
// g reachable under the A* engine's move model (orthogonal 10, diagonal 14,
// same diagonal gating).
//
// Returns:
//
//   - dist: cost per reached cell. Cells never reached are absent.
//   - prev: predecessor per reached cell if ReturnPath is set (nil otherwise).
//     The source has no entry.
//   - err:  ErrNilGrid, ErrSourceNotFound or ErrSourceIsWall.
//
// Complexity:
//
//   - Time:  O(N log N), N = cells in g.
//   - Space: O(N), plus up to 8N stale heap entries (lazy decrease-key).
func Distances(g grid.Reader, source grid.Coord, opts ...Option) (map[grid.Coord]int, map[grid.Coord]grid.Coord, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return nil, nil, ErrNilGrid
	}
	c, ok := g.Get(source.X, source.Y)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
	}
	if c.Kind == grid.Wall {
		return nil, nil, fmt.Errorf("%w: %s", ErrSourceIsWall, source)
	}

	r := &runner{
		g:       g,
		options: cfg,
		dist:    make(map[grid.Coord]int, g.Len()),
		visited: make(map[grid.Coord]bool, g.Len()),
		pq:      make(nodePQ, 0, g.Len()),
	}
	if cfg.ReturnPath {
		r.prev = make(map[grid.Coord]grid.Coord, g.Len())
	}
	r.init(source)
	r.process()

	return r.dist, r.prev, nil
}

// ShortestPath returns the cheapest path from source to target (source
// excluded, target included) and its cost. ErrUnreachable is returned
// when target cannot be reached.
func ShortestPath(g grid.Reader, source, target grid.Coord, opts ...Option) ([]grid.Coord, int, error) {
	dist, prev, err := Distances(g, source, append(opts, WithReturnPath())...)
	if err != nil {
		return nil, 0, err
	}
	cost, ok := dist[target]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s → %s", ErrUnreachable, source, target)
	}

	var path []grid.Coord
	for at := target; at != source; at = prev[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, cost, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       grid.Reader               // read-only input
	options Options                   // diagonal policy, cap, ReturnPath
	dist    map[grid.Coord]int        // best known cost per cell
	prev    map[grid.Coord]grid.Coord // predecessor per cell, nil unless ReturnPath
	visited map[grid.Coord]bool       // finalized cells
	pq      nodePQ                    // min-heap with lazy decrease-key
}

// init seeds the heap with the source at distance 0.
func (r *runner) init(source grid.Coord) {
	r.dist[source] = 0
	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{at: source, dist: 0})
}

// process pops cells in order of distance until the heap is empty or the
// next distance exceeds MaxDistance.
func (r *runner) process() {
	var buf [8]step
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		if r.visited[item.at] {
			continue
		}
		if item.dist > r.options.MaxDistance {
			break
		}
		r.visited[item.at] = true

		for _, s := range r.moves(item.at, buf[:0]) {
			r.relax(item.at, s)
		}
	}
}

// relax improves the distance of s.to through u when strictly shorter.
func (r *runner) relax(u grid.Coord, s step) {
	if r.visited[s.to] {
		return
	}
	newDist := r.dist[u] + s.cost
	if newDist > r.options.MaxDistance {
		return
	}
	if old, ok := r.dist[s.to]; ok && newDist >= old {
		return
	}
	r.dist[s.to] = newDist
	if r.prev != nil {
		r.prev[s.to] = u
	}
	heap.Push(&r.pq, &nodeItem{at: s.to, dist: newDist})
}

// moves appends the legal steps from at in the engine's neighbor order.
func (r *runner) moves(at grid.Coord, dst []step) []step {
	for _, d := range grid.Conn8.Offsets() {
		to := at.Add(d[0], d[1])
		if !r.walkable(to) {
			continue
		}
		diagonal := d[0] != 0 && d[1] != 0
		if diagonal && !r.options.DiagonalThroughWalls &&
			(!r.walkable(at.Add(d[0], 0)) || !r.walkable(at.Add(0, d[1]))) {
			continue
		}
		cost := astar.CostStraight
		if diagonal {
			cost = astar.CostDiagonal
		}
		dst = append(dst, step{to: to, cost: cost})
	}

	return dst
}

func (r *runner) walkable(c grid.Coord) bool {
	cell, ok := r.g.Get(c.X, c.Y)
	return ok && cell.Kind != grid.Wall
}

// nodeItem is a heap entry: a cell and the distance it was pushed with.
type nodeItem struct {
	at   grid.Coord
	dist int
}

// nodePQ is a min-heap of *nodeItem ordered by dist. Outdated entries stay
// in the heap and are skipped when popped.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool { return pq[i].dist < pq[j].dist }

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap. Called by heap.Push.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
