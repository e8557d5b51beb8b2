package grid

import (
	"fmt"
	"sync"
)

// Grid is a sparse mapping from coordinate keys to cells covering a
// Width×Height rectangle. It is safe for concurrent use: editors may mutate
// it while a search runs over a Snapshot.
type Grid struct {
	mu            sync.RWMutex
	width, height int
	cells         map[Coord]Cell
}

// MaxCells bounds Width×Height of any grid.
const MaxCells = 1 << 20

// CheckSize reports whether a width×height grid may be built.
// Returns ErrEmptyGrid if either dimension is below one and ErrTooLarge if
// the cell count exceeds MaxCells. The product is never computed unchecked.
func CheckSize(width, height int) error {
	if width < 1 || height < 1 {
		return ErrEmptyGrid
	}
	if width > MaxCells/height {
		return fmt.Errorf("%w: %dx%d, limit %d cells", ErrTooLarge, width, height, MaxCells)
	}

	return nil
}

// New constructs a width×height grid of Open cells.
// Returns ErrEmptyGrid or ErrTooLarge (see CheckSize) before allocating.
// Complexity: O(W×H) time and memory.
func New(width, height int) (*Grid, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	g := &Grid{
		width:  width,
		height: height,
		cells:  make(map[Coord]Cell, width*height),
	}
	g.fill(Open)

	return g, nil
}

// From2D constructs a grid from rows of kinds, rows[y][x].
// Returns ErrEmptyGrid if there are no rows or no columns,
// ErrNonRectangular if any row length differs, ErrBadKind for undeclared kinds.
func From2D(rows [][]Kind) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	if err := CheckSize(w, h); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g := &Grid{width: w, height: h, cells: make(map[Coord]Cell, w*h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k := rows[y][x]
			if !k.Valid() {
				return nil, fmt.Errorf("%w: %d at %d,%d", ErrBadKind, int(k), x, y)
			}
			c := Key(x, y)
			g.cells[c] = Cell{Coord: c, Kind: k}
		}
	}

	return g, nil
}

func (g *Grid) fill(k Kind) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := Key(x, y)
			g.cells[c] = Cell{Coord: c, Kind: k}
		}
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at (x,y). The second result is false outside the
// grid; there is no wrapping or clamping.
func (g *Grid) Get(x, y int) (Cell, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.cells[Key(x, y)]

	return c, ok
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.cells)
}

// Range visits cells in row-major order until fn returns false.
// fn must not mutate g.
func (g *Grid) Range(fn func(Cell) bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !fn(g.cells[Key(x, y)]) {
				return
			}
		}
	}
}

// Set overwrites the kind of the cell at (x,y), keeping its payload.
// It does not enforce Start/End uniqueness; use SetStart and SetEnd for that.
func (g *Grid) Set(x, y int, k Kind) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrBadKind, int(k))
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.setLocked(x, y, k)
}

func (g *Grid) setLocked(x, y int, k Kind) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: %d,%d", ErrOutOfBounds, x, y)
	}
	c := g.cells[Key(x, y)]
	c.Kind = k
	g.cells[c.Coord] = c

	return nil
}

// SetPayload attaches presentation data to the cell at (x,y).
func (g *Grid) SetPayload(x, y int, payload any) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: %d,%d", ErrOutOfBounds, x, y)
	}
	c := g.cells[Key(x, y)]
	c.Payload = payload
	g.cells[c.Coord] = c

	return nil
}

// ToggleWall flips the cell at (x,y) between Open and Wall and returns the
// new kind. Start and End cells are left alone with ErrProtectedCell.
func (g *Grid) ToggleWall(x, y int) (Kind, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: %d,%d", ErrOutOfBounds, x, y)
	}
	c := g.cells[Key(x, y)]
	switch c.Kind {
	case Wall:
		c.Kind = Open
	case Open:
		c.Kind = Wall
	default:
		return c.Kind, fmt.Errorf("%w: %s at %s", ErrProtectedCell, c.Kind, c.Coord)
	}
	g.cells[c.Coord] = c

	return c.Kind, nil
}

// SetStart makes (x,y) the only Start cell. A previous Start becomes Open.
func (g *Grid) SetStart(x, y int) error {
	return g.relocate(x, y, Start)
}

// SetEnd makes (x,y) the only End cell. A previous End becomes Open.
func (g *Grid) SetEnd(x, y int) error {
	return g.relocate(x, y, End)
}

func (g *Grid) relocate(x, y int, k Kind) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: %d,%d", ErrOutOfBounds, x, y)
	}
	for c, cell := range g.cells {
		if cell.Kind == k {
			cell.Kind = Open
			g.cells[c] = cell
		}
	}

	return g.setLocked(x, y, k)
}

// Start returns the first Start cell in row-major order.
func (g *Grid) Start() (Cell, bool) { return g.first(Start) }

// End returns the first End cell in row-major order.
func (g *Grid) End() (Cell, bool) { return g.first(End) }

func (g *Grid) first(k Kind) (Cell, bool) {
	var found Cell
	ok := false
	g.Range(func(c Cell) bool {
		if c.Kind == k {
			found, ok = c, true
			return false
		}
		return true
	})

	return found, ok
}

// Count returns how many cells have kind k.
func (g *Grid) Count(k Kind) int {
	n := 0
	g.Range(func(c Cell) bool {
		if c.Kind == k {
			n++
		}
		return true
	})

	return n
}

// Reset turns every cell back into Open, dropping payloads.
func (g *Grid) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fill(Open)
}

// Snapshot returns a deep copy of the cell set. Later mutations of g are
// not visible through the snapshot.
// Complexity: O(W×H).
func (g *Grid) Snapshot() Snapshot {
	g.mu.RLock()
	defer g.mu.RUnlock()
	s := make(Snapshot, len(g.cells))
	for c, cell := range g.cells {
		s[c] = cell
	}

	return s
}

// Snapshot is an immutable-by-convention copy of a grid's cells.
type Snapshot map[Coord]Cell

// Get returns the cell at (x,y), or false when absent.
func (s Snapshot) Get(x, y int) (Cell, bool) {
	c, ok := s[Key(x, y)]
	return c, ok
}

// Len returns the number of cells.
func (s Snapshot) Len() int { return len(s) }

// Range visits cells in unspecified order until fn returns false.
func (s Snapshot) Range(fn func(Cell) bool) {
	for _, c := range s {
		if !fn(c) {
			return
		}
	}
}
