// Package dijkstra computes exact cheapest costs on a grid under the same
// move model as the A* engine.
//
// The A* engine uses a Manhattan heuristic that overestimates once diagonal
// steps are allowed, so its paths are valid but not always the cheapest.
// This package gives the reference answer for the same board: every cell is
// expanded in order of true distance and no heuristic is involved.
//
// Move model:
//
//   - Orthogonal steps cost astar.CostStraight, diagonal steps astar.CostDiagonal.
//   - Walls and absent cells are never entered.
//   - A diagonal step needs both flanking orthogonal cells to be open unless
//     WithDiagonalThroughWalls(true) is set.
//
// Performance and complexity:
//
//   - Time:  O(N log N), N = cells in the grid.
//   - Space: O(N) for the distance and predecessor maps, plus stale heap
//     entries under the lazy decrease-key strategy.
//
// Errors (sentinel):
//
//   - ErrNilGrid        if the grid reader is nil.
//   - ErrSourceNotFound if the source cell is absent.
//   - ErrSourceIsWall   if the source cell is a wall.
//   - ErrUnreachable    from ShortestPath when the target cannot be reached.
//   - ErrBadMaxDistance (via panic) for a negative WithMaxDistance.
package dijkstra
