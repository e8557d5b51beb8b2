package grid

import (
	"fmt"
	"math/rand"
)

// Generate builds a width×height grid with Start at the top-left corner,
// End at the bottom-right corner, and walls random walls on Open cells.
// A nil rng uses a fixed seed of 1.
//
// Returns ErrEmptyGrid or ErrTooLarge for bad dimensions, ErrTooManyWalls
// if walls exceeds the number of Open cells left after placing Start and End.
// All checks run before the grid is allocated.
// Complexity: O(W×H).
func Generate(width, height, walls int, rng *rand.Rand) (*Grid, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	if width*height < 2 {
		return nil, fmt.Errorf("%w: need room for start and end, got %dx%d", ErrEmptyGrid, width, height)
	}
	free := width*height - 2
	if walls < 0 || walls > free {
		return nil, fmt.Errorf("%w: %d requested, %d available", ErrTooManyWalls, walls, free)
	}
	g, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	start, end := Key(0, 0), Key(width-1, height-1)
	g.cells[start] = Cell{Coord: start, Kind: Start}
	g.cells[end] = Cell{Coord: end, Kind: End}

	// Partial Fisher-Yates: open[:walls] becomes the wall set.
	open := make([]Coord, 0, free)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if c := Key(x, y); c != start && c != end {
				open = append(open, c)
			}
		}
	}
	for i := 0; i < walls; i++ {
		j := i + rng.Intn(len(open)-i)
		open[i], open[j] = open[j], open[i]
		g.cells[open[i]] = Cell{Coord: open[i], Kind: Wall}
	}

	return g, nil
}
