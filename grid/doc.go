// Package grid models the board of the pathfinding demonstrator as a
// sparse mapping from integer coordinates to cells.
//
// What:
//
//   - Grid holds the authoritative, mutable cell set (Open, Wall, Start, End).
//   - Snapshot is a deep copy handed to the search engine through Reader.
//   - Parse/String convert to and from a text layout of ".#SE" glyphs.
//   - Generate places Start, End and random walls.
//   - Regions and Connected report walkable connectivity under Conn4 or Conn8.
//
// Why:
//
//   - The search engine must never observe edits made while it runs, so it
//     reads a Snapshot; editors keep mutating the Grid concurrently.
//   - Coordinates are the identity keys in every map, in this package and in astar.
//
// Complexity:
//
//   - New, From2D, Parse, Snapshot, Generate: O(W×H) time and memory.
//   - Get, Set, ToggleWall:                    O(1).
//   - SetStart, SetEnd, Start, End, Count:     O(W×H).
//   - Regions, Connected:                      O(W×H×d), d = 4 or 8.
//
// Errors:
//
//   - ErrEmptyGrid:      no rows or no columns.
//   - ErrTooLarge:       more than MaxCells cells.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrOutOfBounds:    coordinate outside the grid.
//   - ErrBadGlyph:       unknown rune in a text layout.
//   - ErrBadKind:        value outside Open..End.
//   - ErrProtectedCell:  ToggleWall on a Start or End cell.
//   - ErrTooManyWalls:   Generate asked for more walls than open cells.
package grid
