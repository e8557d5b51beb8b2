package astar

import (
	"container/heap"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/gridpath/grid"
)

// Search runs one search on a fresh Engine. See Engine.Search.
func Search(start, end grid.Coord, g grid.Reader, opts ...Option) (Result, error) {
	return NewEngine().Search(start, end, g, opts...)
}

// Engine owns the working maps of the search and reuses them across calls.
// Calls on one Engine are serialized; use one Engine per concurrent caller
// to search in parallel.
type Engine struct {
	mu sync.Mutex
	r  runner
}

// NewEngine returns an Engine with empty working maps.
func NewEngine() *Engine {
	return &Engine{r: runner{
		byKey:  make(map[grid.Coord]int),
		open:   make(map[grid.Coord]*node),
		closed: make(map[grid.Coord]struct{}),
	}}
}

// Search looks for a path from start to end over g.
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. start and end must be present in g (ErrNotFound).
//  3. start and end must differ (ErrSameCell).
//
// The kinds recorded at start and end in g are not consulted; the end is
// recognised by its coordinate. g is only read.
//
// Returns a Result with OK == true and the path on success, or
// Result{OK: false} together with ErrNilGrid, ErrNotFound, ErrSameCell or
// ErrUnreachable.
func (e *Engine) Search(start, end grid.Coord, g grid.Reader, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if g == nil {
		return Result{}, ErrNilGrid
	}
	if _, ok := g.Get(start.X, start.Y); !ok {
		return Result{}, fmt.Errorf("%w: start %s", ErrNotFound, start)
	}
	if _, ok := g.Get(end.X, end.Y); !ok {
		return Result{}, fmt.Errorf("%w: end %s", ErrNotFound, end)
	}
	if start == end {
		return Result{}, fmt.Errorf("%w: %s", ErrSameCell, start)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	began := time.Now()
	e.r.init(g, start, end, cfg)
	last := e.r.process()
	elapsed := time.Since(began)
	expanded := len(e.r.closed)

	if last < 0 {
		e.r.log(start, end, false, 0, expanded, elapsed)
		return Result{}, fmt.Errorf("%w: %s → %s", ErrUnreachable, start, end)
	}
	path := e.r.path(last)
	e.r.log(start, end, true, len(path), expanded, elapsed)

	return Result{OK: true, Path: path, Elapsed: elapsed, Expanded: expanded}, nil
}

// SearchAsync runs Search on its own goroutine. The returned channel
// delivers exactly one Outcome and is then closed. A panic inside the
// search is reported as ErrInternal instead of crashing the process.
func (e *Engine) SearchAsync(start, end grid.Coord, g grid.Reader, opts ...Option) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		defer close(ch)
		ch <- e.safeSearch(start, end, g, opts...)
	}()

	return ch
}

func (e *Engine) safeSearch(start, end grid.Coord, g grid.Reader, opts ...Option) (out Outcome) {
	defer func() {
		if p := recover(); p != nil {
			out = Outcome{Err: fmt.Errorf("%w: %v", ErrInternal, p)}
		}
	}()
	out.Result, out.Err = e.Search(start, end, g, opts...)

	return out
}

// node is the per-call search state of one cell.
type node struct {
	id      int        // arena index
	at      grid.Coord // position
	kind    grid.Kind  // kind copied from the snapshot
	g, h, f int        // cost so far, heuristic, total
	parent  int        // arena index of the parent, -1 for none
	seq     int        // order of first insertion into the open set
	index   int        // position in the heap, -1 when not queued
}

func (n *node) step() Step {
	return Step{Coord: n.at, G: n.g, H: n.h, F: n.f}
}

// runner holds the mutable state for a single search execution.
type runner struct {
	opts   Options
	end    grid.Coord
	start  int                     // arena index of the dedicated start node
	nodes  []node                  // arena; never grows during process
	byKey  map[grid.Coord]int      // coordinate → arena index of the snapshot node
	open   map[grid.Coord]*node    // frontier
	closed map[grid.Coord]struct{} // finalized coordinates
	queue  openQueue               // heap over open
	seq    int
}

// init rebuilds the arena from g and clears the open and closed sets.
func (r *runner) init(g grid.Reader, start, end grid.Coord, opts Options) {
	r.opts = opts
	r.end = end
	r.seq = 0
	clear(r.byKey)
	clear(r.open)
	clear(r.closed)
	r.queue = r.queue[:0]

	if cap(r.nodes) < g.Len()+1 {
		r.nodes = make([]node, 0, g.Len()+1)
	}
	r.nodes = r.nodes[:0]
	g.Range(func(c grid.Cell) bool {
		r.byKey[c.Coord] = len(r.nodes)
		r.nodes = append(r.nodes, node{id: len(r.nodes), at: c.Coord, kind: c.Kind, parent: -1, index: -1})
		return true
	})

	// The start node is a fresh copy; the snapshot node at the same
	// coordinate is never expanded because start is closed first.
	r.start = len(r.nodes)
	r.nodes = append(r.nodes, node{id: r.start, at: start, kind: grid.Start, parent: -1, index: -1})
}

// process expands nodes until the end is generated as a neighbor (its arena
// index is returned) or the frontier is exhausted (-1).
func (r *runner) process() int {
	var buf [8]int
	for cur := r.start; cur >= 0; cur = r.next() {
		n := &r.nodes[cur]
		candidates := r.neighbors(n.at, buf[:0])

		delete(r.open, n.at)
		r.closed[n.at] = struct{}{}
		r.opts.OnExpand(n.at)

		for _, ci := range candidates {
			c := &r.nodes[ci]
			if _, done := r.closed[c.at]; done {
				continue
			}
			if c.at == r.end {
				c.parent = cur
				c.g, c.h, c.f = r.costs(c.at, cur)
				return ci
			}
			r.relax(c, cur)
		}
	}

	return -1
}

// relax evaluates c as reached from the node at arena index from.
// A node with a non-zero F keeps its parent and costs unless the new F is
// strictly lower (or equal, with TieRelax). c is queued either way.
func (r *runner) relax(c *node, from int) {
	g, h, f := r.costs(c.at, from)
	better := c.f == 0 || f < c.f || (r.opts.TieRelax && f == c.f)
	if better {
		c.parent = from
		c.g, c.h, c.f = g, h, f
	}

	if _, queued := r.open[c.at]; !queued {
		c.seq = r.seq
		r.seq++
		r.open[c.at] = c
		heap.Push(&r.queue, c)
		r.opts.OnOpen(c.step())
		return
	}
	if better {
		heap.Fix(&r.queue, c.index)
		r.opts.OnOpen(c.step())
	}
}

// costs returns G, H and F for the cell at reached from arena index from.
func (r *runner) costs(at grid.Coord, from int) (g, h, f int) {
	p := &r.nodes[from]
	dx, dy := at.X-p.at.X, at.Y-p.at.Y
	step := CostDiagonal
	if dx*dx+dy*dy == 1 {
		step = CostStraight
	}
	g = p.g + step
	h = abs(r.end.X-at.X) + abs(r.end.Y-at.Y)

	return g, h, g + h
}

// next pops the open node with the lowest F, or returns -1 when none is left.
func (r *runner) next() int {
	if r.queue.Len() == 0 {
		return -1
	}

	return heap.Pop(&r.queue).(*node).id
}

// path walks parents from last back to the start node. The start node is
// excluded and last is included; the result runs start → end.
func (r *runner) path(last int) []Step {
	var steps []Step
	for i := last; r.nodes[i].parent >= 0; i = r.nodes[i].parent {
		steps = append(steps, r.nodes[i].step())
	}
	for i, j := 0, len(steps)-1; i < j; i, j = i+1, j-1 {
		steps[i], steps[j] = steps[j], steps[i]
	}

	return steps
}

func (r *runner) log(start, end grid.Coord, ok bool, pathLen, expanded int, elapsed time.Duration) {
	if r.opts.Logger == nil {
		return
	}
	r.opts.Logger.Debug("search finished",
		slog.String("start", start.String()),
		slog.String("end", end.String()),
		slog.Bool("ok", ok),
		slog.Int("path_len", pathLen),
		slog.Int("expanded", expanded),
		slog.Bool("diagonal_through_walls", r.opts.DiagonalThroughWalls),
		slog.Duration("elapsed", elapsed),
	)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
