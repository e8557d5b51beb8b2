// Package gridpath is a grid pathfinding demonstrator built around an A*
// search engine.
//
// The module is organized as:
//
//	grid/      the board: cells, kinds, layouts, random generation, regions
//	astar/     the search engine with its diagonal policy and async entry point
//	dijkstra/  exact cheapest costs under the same move model, for comparison
//	config/    YAML configuration with defaults and validation
//	server/    HTTP and WebSocket API over the engine
//	tui/       interactive terminal board with an animated path reveal
//	cmd/       the gridpath command line
//	examples/  runnable diagonal policy comparison
//
// Quick start:
//
//	g, _ := grid.Parse("S.#\n..#\n..E")
//	start, _ := g.Start()
//	end, _ := g.End()
//	res, err := astar.Search(start.Coord, end.Coord, g.Snapshot())
//
// Movement costs 10 per orthogonal step and 14 per diagonal step. The
// heuristic is the Manhattan distance, so returned paths are valid but not
// guaranteed cheapest when diagonals are enabled; dijkstra gives the exact
// figure.
package gridpath
