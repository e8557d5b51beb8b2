package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/dijkstra"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/ctxlog"
)

var solveCmd = &cobra.Command{
	Use:   "solve [file|glob|-]...",
	Short: "Find the path between S and E on one or more boards",
	Long: `Reads boards and prints each with its path drawn as 'o'.

Arguments are layout files, doublestar globs such as 'boards/**/*.txt', or '-'
for standard input. Without arguments the config layout is used, or standard
input when the config has none.

Exits non-zero when any board has no path.`,
	RunE: runSolve,
}

var (
	solveDiagonal bool
	solveJSON     bool
	solveTieRelax bool
	solveOptimal  bool
)

func init() {
	solveCmd.Flags().BoolVar(&solveDiagonal, "diagonal-through-walls", false, "Allow diagonal steps past wall corners (overrides config)")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "Print one JSON report per board")
	solveCmd.Flags().BoolVar(&solveTieRelax, "tie-relax", false, "Let equal-cost re-derivations replace a cell's parent")
	solveCmd.Flags().BoolVar(&solveOptimal, "optimal", false, "Also report the exact cheapest cost for comparison")
}

// board is one named layout to solve.
type board struct {
	name   string
	layout string
}

// solveReport is the JSON form of one solved board.
type solveReport struct {
	Board       string       `json:"board"`
	OK          bool         `json:"ok"`
	Path        []astar.Step `json:"path"`
	Cost        int          `json:"cost"`
	OptimalCost *int         `json:"optimalCost,omitempty"`
	Expanded    int          `json:"expanded"`
	TimeMs      int64        `json:"timeMs"`
	Error       string       `json:"error,omitempty"`
}

func runSolve(cmd *cobra.Command, args []string) error {
	logger := ctxlog.FromContext(cmd.Context())

	boards, err := collectBoards(cmd.InOrStdin(), args, settings.Layout)
	if err != nil {
		return err
	}

	allow := settings.AllowDiagonalThroughWalls
	if cmd.Flags().Changed("diagonal-through-walls") {
		allow = solveDiagonal
	}
	opts := []astar.Option{astar.WithDiagonalThroughWalls(allow), astar.WithLogger(logger)}
	if solveTieRelax {
		opts = append(opts, astar.WithTieRelax())
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	eng := astar.NewEngine()
	var failed []error
	for i, b := range boards {
		g, res, err := solveBoard(eng, b, opts)
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", b.name, err))
		}
		var best *int
		if solveOptimal && err == nil {
			best = optimalCost(g, allow)
		}

		if solveJSON {
			report := solveReport{Board: b.name, OK: res.OK, Path: res.Path, Cost: res.Cost(),
				OptimalCost: best, Expanded: res.Expanded, TimeMs: res.ElapsedMillis()}
			if report.Path == nil {
				report.Path = []astar.Step{}
			}
			if err != nil {
				report.Error = err.Error()
			}
			if encErr := enc.Encode(report); encErr != nil {
				return encErr
			}
			continue
		}

		if len(boards) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", b.name)
		}
		if g != nil {
			fmt.Fprint(out, overlay(g, res.Path))
		}
		if errors.Is(err, astar.ErrUnreachable) {
			fmt.Fprintf(out, "no path: %v\n", err)
			continue
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "path: %d steps, cost %d, expanded %d, %dms\n",
			len(res.Path), res.Cost(), res.Expanded, res.ElapsedMillis())
		if best != nil {
			fmt.Fprintf(out, "optimal cost %d\n", *best)
		}
	}

	return errors.Join(failed...)
}

// solveBoard parses b and searches from its S to its E cell.
func solveBoard(eng *astar.Engine, b board, opts []astar.Option) (*grid.Grid, astar.Result, error) {
	g, err := grid.Parse(b.layout)
	if err != nil {
		return nil, astar.Result{}, err
	}
	start, ok := g.Start()
	if !ok {
		return g, astar.Result{}, errors.New("layout has no start cell 'S'")
	}
	end, ok := g.End()
	if !ok {
		return g, astar.Result{}, errors.New("layout has no end cell 'E'")
	}

	res, err := eng.Search(start.Coord, end.Coord, g.Snapshot(), opts...)

	return g, res, err
}

// optimalCost returns the exact cheapest S to E cost on g, or nil when
// E cannot be reached.
func optimalCost(g *grid.Grid, allow bool) *int {
	start, _ := g.Start()
	end, _ := g.End()
	_, cost, err := dijkstra.ShortestPath(g.Snapshot(), start.Coord, end.Coord, dijkstra.WithDiagonalThroughWalls(allow))
	if err != nil {
		return nil
	}

	return &cost
}

// collectBoards resolves the solve arguments into layouts.
func collectBoards(stdin io.Reader, args []string, fallback string) ([]board, error) {
	if len(args) == 0 {
		if fallback != "" {
			return []board{{name: "config", layout: fallback}}, nil
		}
		args = []string{"-"}
	}

	var boards []board
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			boards = append(boards, board{name: "stdin", layout: string(data)})
			continue
		}

		paths := []string{arg}
		if strings.ContainsAny(arg, "*?[{") {
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no boards match %q", arg)
			}
			paths = matches
		}
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				return nil, fmt.Errorf("reading board: %w", err)
			}
			boards = append(boards, board{name: p, layout: string(data)})
		}
	}

	return boards, nil
}

// overlay renders g with the path cells drawn as 'o'. S and E keep their glyphs.
func overlay(g *grid.Grid, path []astar.Step) string {
	rows := strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")
	cells := make([][]rune, len(rows))
	for y, row := range rows {
		cells[y] = []rune(row)
	}
	for _, s := range path {
		if c, ok := g.Get(s.X, s.Y); ok && c.Kind == grid.Open {
			cells[s.Y][s.X] = 'o'
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}

	return b.String()
}
