// Package astar implements a heuristic best-first (A*) search over a
// rectangular grid snapshot with 8-connectivity and corner-gated diagonals.
//
// Overview:
//
//   - Orthogonal steps cost 10, diagonal steps cost 14 (≈10√2).
//   - The heuristic is the unscaled Manhattan distance |dx|+|dy| to the end.
//     With diagonal moves it is not admissible, so a returned path is a
//     valid path but not necessarily the cheapest one.
//   - A diagonal step is gated: both orthogonal cells flanking it must exist
//     and not be walls, unless DiagonalThroughWalls is set.
//   - The end is detected as soon as it is generated as a neighbor of the
//     node under expansion.
//   - A node's parent and costs change only when a strictly lower F is found
//     (first-found-cheaper-wins). WithTieRelax also accepts equal F.
//
// Neighbor order (fixed, deterministic):
//
//	up (0,-1), right (1,0), down (0,1), left (-1,0),
//	(-1,-1), (1,-1), (1,1), (-1,1)
//
// Open-set order: lowest F first; among equal F, the node that entered the
// open set earliest.
//
// Performance and complexity:
//
//   - Time:  O(N log N), N = cells in the snapshot.
//   - Each cell is expanded at most once (closed set).
//   - Each expansion evaluates at most 8 neighbors; each open-set insertion
//     or improvement costs O(log N) on the binary heap.
//   - Space: O(N) for the node arena, open/closed maps and the heap.
//
// Memory model:
//
//   - Nodes live in a per-call arena slice; parents are arena indices. The
//     search tree holds no pointers back into the caller's grid and is
//     reused by the next call on the same Engine.
//   - The grid is only read. Pass grid.(*Grid).Snapshot() when the board is
//     edited concurrently with the search.
//
// Errors (sentinel):
//
//   - ErrNilGrid     if the grid reader is nil.
//   - ErrNotFound    if start or end is absent from the grid.
//   - ErrSameCell    if start equals end (wraps ErrNotFound).
//   - ErrUnreachable if the open set empties before the end is discovered.
//   - ErrInternal    if an asynchronous search panicked.
//
// Every failure also yields Result{OK: false} with no path.
package astar
