package grid

import "sort"

// Regions finds all contiguous regions of walkable cells (anything but
// Wall) in r according to conn. Seeds are taken in row-major order and each
// region lists its cells in BFS discovery order.
//
// Diagonal steps under Conn8 ignore corner gating, so Conn8 regions are the
// most permissive notion of reachability and Conn4 regions the strictest.
//
// Time:   O(N·d), where N = r.Len() and d = 4 or 8.
// Memory: O(N) for visited flags and output.
func Regions(r Reader, conn Connectivity) [][]Coord {
	seeds := make([]Coord, 0, r.Len())
	r.Range(func(c Cell) bool {
		if c.Kind.Walkable() {
			seeds = append(seeds, c.Coord)
		}
		return true
	})
	sortRowMajor(seeds)

	seen := make(map[Coord]bool, len(seeds))
	var comps [][]Coord
	for _, s := range seeds {
		if seen[s] {
			continue
		}
		seen[s] = true
		comp := collect(r, s, conn, seen)
		comps = append(comps, comp)
	}

	return comps
}

// Connected reports whether b is reachable from a through walkable cells
// under conn. Both endpoints must be present and walkable.
func Connected(r Reader, a, b Coord, conn Connectivity) bool {
	ca, okA := r.Get(a.X, a.Y)
	cb, okB := r.Get(b.X, b.Y)
	if !okA || !okB || !ca.Kind.Walkable() || !cb.Kind.Walkable() {
		return false
	}
	seen := map[Coord]bool{a: true}
	for _, c := range collect(r, a, conn, seen) {
		if c == b {
			return true
		}
	}

	return false
}

// collect runs a BFS from src, marking seen, and returns the visited cells.
func collect(r Reader, src Coord, conn Connectivity, seen map[Coord]bool) []Coord {
	offsets := conn.Offsets()
	queue := []Coord{src}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, d := range offsets {
			v := u.Add(d[0], d[1])
			if seen[v] {
				continue
			}
			cell, ok := r.Get(v.X, v.Y)
			if !ok || !cell.Kind.Walkable() {
				continue
			}
			seen[v] = true
			queue = append(queue, v)
		}
	}

	return queue
}

// sortRowMajor orders coordinates by Y then X.
func sortRowMajor(cs []Coord) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Y != cs[j].Y {
			return cs[i].Y < cs[j].Y
		}
		return cs[i].X < cs[j].X
	})
}
