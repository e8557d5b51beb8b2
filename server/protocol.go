package server

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/grid"
)

// errBadRequest marks request errors that map to 400 Bad Request.
var errBadRequest = errors.New("server: bad request")

// SearchRequest is the body of POST /api/search and of every WebSocket
// message. Start and End default to the S and E cells of Layout; a missing
// AllowDiagonalThroughWalls falls back to the server configuration.
type SearchRequest struct {
	Layout                    string      `json:"layout"`
	Start                     *grid.Coord `json:"start,omitempty"`
	End                       *grid.Coord `json:"end,omitempty"`
	AllowDiagonalThroughWalls *bool       `json:"allowDiagonalThroughWalls,omitempty"`
	TieRelax                  bool        `json:"tieRelax,omitempty"`
	Optimal                   bool        `json:"optimal,omitempty"`
}

// SearchResponse reports a search outcome. Error is set whenever OK is false.
type SearchResponse struct {
	OK          bool         `json:"ok"`
	Path        []astar.Step `json:"path"`
	TimeMs      int64        `json:"timeMs"`
	Expanded    int          `json:"expanded"`
	OptimalCost *int         `json:"optimalCost,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// RandomResponse is the body returned by GET /api/random.
type RandomResponse struct {
	Layout string `json:"layout"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Seed   int64  `json:"seed"`
}

// search resolves req against its layout and runs it on eng. Malformed
// requests return an error wrapping errBadRequest; engine failures are
// reported in the response with OK == false.
func search(eng *astar.Engine, req SearchRequest, allowDefault bool) (SearchResponse, error) {
	g, err := grid.Parse(req.Layout)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	start, end := req.Start, req.End
	if start == nil {
		c, ok := g.Start()
		if !ok {
			return SearchResponse{}, fmt.Errorf("%w: no start given and layout has no S cell", errBadRequest)
		}
		start = &c.Coord
	}
	if end == nil {
		c, ok := g.End()
		if !ok {
			return SearchResponse{}, fmt.Errorf("%w: no end given and layout has no E cell", errBadRequest)
		}
		end = &c.Coord
	}

	allow := allowDefault
	if req.AllowDiagonalThroughWalls != nil {
		allow = *req.AllowDiagonalThroughWalls
	}
	opts := []astar.Option{astar.WithDiagonalThroughWalls(allow)}
	if req.TieRelax {
		opts = append(opts, astar.WithTieRelax())
	}

	snap := g.Snapshot()
	res, err := eng.Search(*start, *end, snap, opts...)
	if err != nil {
		return SearchResponse{Path: []astar.Step{}, Error: err.Error()}, nil
	}

	resp := SearchResponse{
		OK:       true,
		Path:     res.Path,
		TimeMs:   res.ElapsedMillis(),
		Expanded: res.Expanded,
	}
	if req.Optimal {
		if _, cost, err := dijkstra.ShortestPath(snap, *start, *end, dijkstra.WithDiagonalThroughWalls(allow)); err == nil {
			resp.OptimalCost = &cost
		}
	}

	return resp, nil
}
