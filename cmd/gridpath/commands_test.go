package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/grid"
)

const wallColumn = "S.#..\n..#..\n..#..\n..#..\n....E\n"

// resetFlags restores every flag to its default between executions.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the CLI with args and stdin and returns its stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	return out.String(), err
}

func writeBoard(t *testing.T, dir, name, layout string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(layout), 0o600))

	return path
}

// TestRootCommand tests that the root command is properly configured
func TestRootCommand(t *testing.T) {
	require.NotNil(t, rootCmd)
	assert.Equal(t, "gridpath", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
		assert.NotNil(t, c.RunE, "%s should have RunE", c.Name())
	}
	for _, want := range []string{"solve", "generate", "play", "serve", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
}

func TestSolve_Stdin(t *testing.T) {
	out, err := execute(t, wallColumn, "solve")
	require.NoError(t, err)

	want := "S.#..\no.#..\no.#..\no.#..\n.oooE\npath: 7 steps, cost 74, expanded 12, "
	assert.True(t, strings.HasPrefix(out, want), "got:\n%s", out)
}

func TestSolve_DiagonalThroughWalls(t *testing.T) {
	out, err := execute(t, wallColumn, "solve", "-", "--diagonal-through-walls")
	require.NoError(t, err)
	assert.Contains(t, out, "path: 6 steps, cost 68")
}

func TestSolve_JSON(t *testing.T) {
	out, err := execute(t, wallColumn, "solve", "--json", "--tie-relax")
	require.NoError(t, err)

	var report solveReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.OK)
	assert.Equal(t, "stdin", report.Board)
	assert.Equal(t, 74, report.Cost)
	require.Len(t, report.Path, 7)
	assert.Equal(t, astar.Step{Coord: grid.Key(1, 1), G: 14, H: 6, F: 20}, report.Path[0])
}

// TestSolve_Glob solves every board under a directory tree and fails
// because one of them is blocked.
func TestSolve_Glob(t *testing.T) {
	dir := t.TempDir()
	writeBoard(t, dir, "a.txt", wallColumn)
	writeBoard(t, dir, "nested/b.txt", "S#\n#E\n")
	writeBoard(t, dir, "ignored.yaml", "not a board")

	out, err := execute(t, "", "solve", filepath.Join(dir, "**", "*.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, astar.ErrUnreachable)
	assert.Contains(t, err.Error(), "b.txt")

	assert.Contains(t, out, "== "+filepath.Join(dir, "a.txt")+" ==")
	assert.Contains(t, out, "path: 7 steps, cost 74")
	assert.Contains(t, out, "== "+filepath.Join(dir, "nested", "b.txt")+" ==")
	assert.Contains(t, out, "no path:")

	_, err = execute(t, "", "solve", filepath.Join(dir, "*.none"))
	assert.ErrorContains(t, err, "no boards match")
}

func TestSolve_Errors(t *testing.T) {
	_, err := execute(t, "S.x\n..E\n", "solve")
	assert.ErrorIs(t, err, grid.ErrBadGlyph)

	_, err = execute(t, "S..\n...\n", "solve")
	assert.ErrorContains(t, err, "no end cell")

	_, err = execute(t, "", "solve", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestSolve_Optimal reports the exact cost next to a heuristic route that
// overshoots it.
func TestSolve_Optimal(t *testing.T) {
	const board = "S..#\n....\n.##.\n.#.#\n...E\n"

	out, err := execute(t, board, "solve", "--optimal", "--diagonal-through-walls")
	require.NoError(t, err)
	assert.Contains(t, out, "path: 5 steps, cost 66, expanded 13")
	assert.Contains(t, out, "optimal cost 64\n")

	out, err = execute(t, board, "solve", "--optimal", "--json", "--diagonal-through-walls")
	require.NoError(t, err)
	var report solveReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.OptimalCost)
	assert.Equal(t, 64, *report.OptimalCost)
	assert.Equal(t, 66, report.Cost)

	out, err = execute(t, board, "solve")
	require.NoError(t, err)
	assert.NotContains(t, out, "optimal")
}

// TestSolve_ConfigLayout takes the board and diagonal policy from a config file.
func TestSolve_ConfigLayout(t *testing.T) {
	dir := t.TempDir()
	cfg := writeBoard(t, dir, "gridpath.yaml", `
allow_diagonal_through_walls: true
layout: |
  S.#..
  ..#..
  ..#..
  ..#..
  ....E
`)

	out, err := execute(t, "", "--config", cfg, "solve")
	require.NoError(t, err)
	assert.Contains(t, out, "cost 68")

	out, err = execute(t, "", "--config", cfg, "solve", "--diagonal-through-walls=false")
	require.NoError(t, err)
	assert.Contains(t, out, "cost 74")
}

func TestGenerate(t *testing.T) {
	a, err := execute(t, "", "generate", "--width", "6", "--height", "4", "--walls", "5", "--seed", "9")
	require.NoError(t, err)
	b, err := execute(t, "", "generate", "--width", "6", "--height", "4", "--walls", "5", "--seed", "9")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	g, err := grid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Width())
	assert.Equal(t, 4, g.Height())
	assert.Equal(t, 5, g.Count(grid.Wall))

	def, err := execute(t, "", "generate")
	require.NoError(t, err)
	g, err = grid.Parse(def)
	require.NoError(t, err)
	assert.Equal(t, 30, g.Width())
	assert.Equal(t, 100, g.Count(grid.Wall))

	_, err = execute(t, "", "generate", "--width", "2", "--height", "2", "--walls", "3")
	assert.ErrorIs(t, err, grid.ErrTooManyWalls)

	_, err = execute(t, "", "generate", "--width", "4611686018427387904", "--height", "2")
	assert.ErrorIs(t, err, grid.ErrTooLarge)
}

func TestVersionAndGlobals(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "gridpath "+Version+"\n", out)

	_, err = execute(t, "", "--log-level", "chatty", "version")
	assert.ErrorContains(t, err, "log_level")

	_, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "version")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
