// Package grid defines the cell kinds, coordinate keys, cells and
// connectivity options used by the grid model and the search engine.
package grid

import (
	"fmt"
)

// Kind classifies a cell for the search engine.
type Kind int

const (
	// Open is walkable terrain.
	Open Kind = iota + 1
	// Wall blocks movement.
	Wall
	// Start marks the cell a search begins from.
	Start
	// End marks the cell a search is looking for.
	End
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case Open:
		return "open"
	case Wall:
		return "wall"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the four declared kinds.
func (k Kind) Valid() bool {
	return k >= Open && k <= End
}

// Walkable reports whether a cell of kind k can be stepped on.
// Start and End cells are walkable; only walls block.
func (k Kind) Walkable() bool {
	return k.Valid() && k != Wall
}

// Coord is a position in grid units. It is comparable and serves as the
// identity key of a cell in every map of this module.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Key derives the identity key of the cell at (x,y).
func Key(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// Add returns c shifted by (dx,dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// String formats c as "x,y".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Cell is one grid position together with its kind.
// Payload is opaque presentation data; the engine never reads it.
type Cell struct {
	Coord
	Kind    Kind
	Payload any
}

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Offsets returns the neighbor offsets for conn, orthogonal first.
func (conn Connectivity) Offsets() [][2]int {
	if conn == Conn8 {
		return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}, {-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	}

	return [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
}

// Reader is the read-only view of a grid consumed by the search engine.
// Get reports absent for coordinates outside the grid.
// Range visits every cell until fn returns false.
type Reader interface {
	Get(x, y int) (Cell, bool)
	Len() int
	Range(fn func(Cell) bool)
}
