package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors returned by the Dijkstra implementation.
var (
	// ErrNilGrid indicates that a nil grid.Reader was passed.
	ErrNilGrid = errors.New("dijkstra: grid is nil")

	// ErrSourceNotFound indicates that the source cell is absent from the grid.
	ErrSourceNotFound = errors.New("dijkstra: source cell not found in grid")

	// ErrSourceIsWall indicates that the source cell is a wall.
	ErrSourceIsWall = errors.New("dijkstra: source cell is a wall")

	// ErrUnreachable indicates that the target cannot be reached from the source.
	ErrUnreachable = errors.New("dijkstra: target is unreachable")

	// ErrBadMaxDistance indicates that MaxDistance was set to a negative value,
	// which is not meaningful for a distance threshold.
	ErrBadMaxDistance = errors.New("dijkstra: MaxDistance must be non-negative")
)

// Options configures a Dijkstra run.
//
// DiagonalThroughWalls: same diagonal policy as the A* engine.
// ReturnPath: if true, return the predecessor map; otherwise prev map is nil.
// MaxDistance: cells farther than this are not explored. Must be ≥ 0.
type Options struct {
	DiagonalThroughWalls bool
	ReturnPath           bool
	MaxDistance          int
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// WithDiagonalThroughWalls sets the diagonal movement policy.
func WithDiagonalThroughWalls(allow bool) Option {
	return func(o *Options) {
		o.DiagonalThroughWalls = allow
	}
}

// WithReturnPath enables generation of the predecessor map in the result.
func WithReturnPath() Option {
	return func(o *Options) {
		o.ReturnPath = true
	}
}

// WithMaxDistance caps the explored distance.
// Negative values panic with ErrBadMaxDistance.
func WithMaxDistance(limit int) Option {
	return func(o *Options) {
		if limit < 0 {
			panic(ErrBadMaxDistance.Error())
		}
		o.MaxDistance = limit
	}
}

// DefaultOptions returns gated diagonals, no predecessor map and no cap.
func DefaultOptions() Options {
	return Options{
		DiagonalThroughWalls: false,
		ReturnPath:           false,
		MaxDistance:          math.MaxInt,
	}
}

// step is one candidate move from a cell.
type step struct {
	to   grid.Coord
	cost int
}
