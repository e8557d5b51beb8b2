package astar

import "github.com/katalvlaran/gridpath/grid"

// move is a neighbor offset; diagonal moves carry the two orthogonal
// offsets that flank them.
type move struct {
	dx, dy   int
	diagonal bool
	flanks   [2][2]int
}

// moves lists the candidate offsets in expansion order.
var moves = [8]move{
	{dx: 0, dy: -1},
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: -1, dy: 0},
	{dx: -1, dy: -1, diagonal: true, flanks: [2][2]int{{0, -1}, {-1, 0}}},
	{dx: 1, dy: -1, diagonal: true, flanks: [2][2]int{{0, -1}, {1, 0}}},
	{dx: 1, dy: 1, diagonal: true, flanks: [2][2]int{{1, 0}, {0, 1}}},
	{dx: -1, dy: 1, diagonal: true, flanks: [2][2]int{{0, 1}, {-1, 0}}},
}

// neighbors appends to dst the arena indices of the walkable cells around
// at, in expansion order. Closed cells are not filtered here.
func (r *runner) neighbors(at grid.Coord, dst []int) []int {
	for _, m := range moves {
		i, ok := r.walkable(at.Add(m.dx, m.dy))
		if !ok {
			continue
		}
		if m.diagonal && !r.opts.DiagonalThroughWalls {
			if _, ok := r.walkable(at.Add(m.flanks[0][0], m.flanks[0][1])); !ok {
				continue
			}
			if _, ok := r.walkable(at.Add(m.flanks[1][0], m.flanks[1][1])); !ok {
				continue
			}
		}
		dst = append(dst, i)
	}

	return dst
}

// walkable returns the arena index of the cell at c when it exists and is
// not a wall. Start and End cells are walkable.
func (r *runner) walkable(c grid.Coord) (int, bool) {
	i, ok := r.byKey[c]
	if !ok || r.nodes[i].kind == grid.Wall {
		return 0, false
	}

	return i, true
}
