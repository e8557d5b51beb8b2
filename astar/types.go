package astar

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors returned by the search engine. Every failure is also
// reported as Result.OK == false.
var (
	// ErrNilGrid indicates that a nil grid.Reader was passed.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrNotFound indicates that the start or end coordinate is absent from the grid.
	ErrNotFound = errors.New("astar: start or end not found in grid")

	// ErrSameCell indicates start == end, a precondition violation of the NotFound class.
	ErrSameCell = fmt.Errorf("%w: start and end are the same cell", ErrNotFound)

	// ErrUnreachable indicates the frontier was exhausted without reaching the end.
	ErrUnreachable = errors.New("astar: end is unreachable")

	// ErrInternal indicates that an asynchronous search panicked.
	ErrInternal = errors.New("astar: internal error")
)

// Movement costs: orthogonal = 10, diagonal = 14 (≈10√2).
const (
	CostStraight = 10
	CostDiagonal = 14
)

// Options configures a single search.
//
// DiagonalThroughWalls: when false (default) a diagonal step is taken only
// if both flanking orthogonal cells exist and are not walls.
//
// TieRelax: when true, a re-derivation with an equal F also replaces the
// node's parent and costs. Default false: only a strictly lower F does.
type Options struct {
	DiagonalThroughWalls bool                // allowDiagonalThroughWalls
	TieRelax             bool                // overwrite on equal F
	OnOpen               func(Step)          // called when a node enters or is improved in the open set
	OnExpand             func(at grid.Coord) // called when a node moves to the closed set
	Logger               *slog.Logger        // nil disables logging
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// DefaultOptions returns gated diagonals, strict relaxation, no-op hooks and no logger.
func DefaultOptions() Options {
	return Options{
		DiagonalThroughWalls: false,
		TieRelax:             false,
		OnOpen:               func(Step) {},
		OnExpand:             func(grid.Coord) {},
	}
}

// WithDiagonalThroughWalls sets the diagonal movement policy.
func WithDiagonalThroughWalls(allow bool) Option {
	return func(o *Options) {
		o.DiagonalThroughWalls = allow
	}
}

// WithTieRelax makes equal-F re-derivations overwrite the previous parent.
func WithTieRelax() Option {
	return func(o *Options) {
		o.TieRelax = true
	}
}

// WithOnOpen registers a callback for open-set insertions and improvements.
func WithOnOpen(fn func(Step)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnOpen = fn
		}
	}
}

// WithOnExpand registers a callback run when a node is finalized.
func WithOnExpand(fn func(at grid.Coord)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithLogger routes a debug record for every finished search to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Step is one cell of a returned path with its cost triple.
type Step struct {
	grid.Coord
	G int `json:"g"`
	H int `json:"h"`
	F int `json:"f"`
}

// Result is the outcome of a search. On success Path runs from the cell
// after start up to and including the end cell. On failure only OK is set.
type Result struct {
	OK       bool
	Path     []Step
	Elapsed  time.Duration
	Expanded int // nodes moved to the closed set
}

// Coords returns the coordinates of the path.
func (r Result) Coords() []grid.Coord {
	out := make([]grid.Coord, len(r.Path))
	for i, s := range r.Path {
		out[i] = s.Coord
	}

	return out
}

// Cost returns the G value of the end cell, or 0 without a path.
func (r Result) Cost() int {
	if len(r.Path) == 0 {
		return 0
	}

	return r.Path[len(r.Path)-1].G
}

// ElapsedMillis returns Elapsed in whole milliseconds.
func (r Result) ElapsedMillis() int64 {
	return r.Elapsed.Milliseconds()
}

// Outcome pairs a Result with its error for asynchronous delivery.
type Outcome struct {
	Result Result
	Err    error
}
