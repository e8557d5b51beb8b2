package astar_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/grid"
)

// BenchmarkSearch_Open measures a corner-to-corner search on an empty 100×100 board.
func BenchmarkSearch_Open(b *testing.B) {
	g, err := grid.New(100, 100)
	if err != nil {
		b.Fatal(err)
	}
	snap := g.Snapshot()
	eng := astar.NewEngine()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eng.Search(grid.Key(0, 0), grid.Key(99, 99), snap)
	}
}

// BenchmarkSearch_Random measures searches on a 30×20 board with 100 walls,
// the default interactive size.
func BenchmarkSearch_Random(b *testing.B) {
	g, err := grid.Generate(30, 20, 100, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatal(err)
	}
	snap := g.Snapshot()
	s, _ := g.Start()
	e, _ := g.End()
	eng := astar.NewEngine()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = eng.Search(s.Coord, e.Coord, snap, astar.WithDiagonalThroughWalls(true))
	}
}

// BenchmarkSearch_FreshEngine measures the package-level Search, which
// allocates its working maps on every call.
func BenchmarkSearch_FreshEngine(b *testing.B) {
	g, err := grid.Generate(30, 20, 100, rand.New(rand.NewSource(1)))
	if err != nil {
		b.Fatal(err)
	}
	snap := g.Snapshot()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.Search(grid.Key(0, 0), grid.Key(29, 19), snap)
	}
}
