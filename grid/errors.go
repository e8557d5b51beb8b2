package grid

import "errors"

var (
	// ErrEmptyGrid indicates a grid with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrBadGlyph indicates an unknown rune in a text layout.
	ErrBadGlyph = errors.New("grid: unknown layout glyph")
	// ErrBadKind indicates a value that is not one of the declared kinds.
	ErrBadKind = errors.New("grid: invalid cell kind")
	// ErrProtectedCell indicates an attempt to toggle a Start or End cell into a wall.
	ErrProtectedCell = errors.New("grid: start and end cells cannot become walls")
	// ErrTooLarge indicates dimensions whose cell count exceeds MaxCells.
	ErrTooLarge = errors.New("grid: grid exceeds the maximum cell count")
	// ErrTooManyWalls indicates more walls were requested than open cells exist.
	ErrTooManyWalls = errors.New("grid: wall count exceeds open cells")
)
