package config_test

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/grid"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gridpath.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
	assert.Equal(t, 100, cfg.Walls)
	assert.Equal(t, 50*time.Millisecond, cfg.StepInterval)
	assert.False(t, cfg.AllowDiagonalThroughWalls)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.NoError(t, cfg.Validate())

	loaded, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

// TestLoad_Merge verifies that file values override defaults field by field.
func TestLoad_Merge(t *testing.T) {
	path := writeFile(t, `
width: 12
seed: 7
allow_diagonal_through_walls: true
step_interval: 120ms
server:
  addr: 127.0.0.1:9000
`)
	got, err := config.Load(path)
	require.NoError(t, err)

	want := config.Default()
	want.Width = 12
	want.Seed = 7
	want.AllowDiagonalThroughWalls = true
	want.StepInterval = 120 * time.Millisecond
	want.Server.Addr = "127.0.0.1:9000"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = config.Load(writeFile(t, "width: [1, 2\n"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "walls: 10000\n"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		msg    string
	}{
		{"tiny board", func(c *config.Config) { c.Width, c.Height = 1, 1 }, "at least two cells"},
		{"huge board", func(c *config.Config) { c.Width, c.Height = 3000, 3000 }, "maximum cell count"},
		{"overflowing board", func(c *config.Config) { c.Width, c.Height = 1<<62, 2 }, "maximum cell count"},
		{"zero width", func(c *config.Config) { c.Width = 0 }, "at least one row"},
		{"negative walls", func(c *config.Config) { c.Walls = -1 }, "walls -1"},
		{"too many walls", func(c *config.Config) { c.Walls = 599 }, "walls 599"},
		{"bad layout", func(c *config.Config) { c.Layout = "S?E" }, "layout"},
		{"negative interval", func(c *config.Config) { c.StepInterval = -time.Second }, "step_interval"},
		{"bad level", func(c *config.Config) { c.LogLevel = "chatty" }, "log_level"},
		{"bad format", func(c *config.Config) { c.LogFormat = "xml" }, "log_format"},
		{"no addr", func(c *config.Config) { c.Server.Addr = "" }, "server.addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	// A valid layout lifts the width/height/walls checks.
	cfg := config.Default()
	cfg.Width, cfg.Walls = 0, -5
	cfg.Layout = "S.\n.E\n"
	assert.NoError(t, cfg.Validate())
}

func TestBoard(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 11
	a, err := cfg.Board(cfg.Rand())
	require.NoError(t, err)
	b, err := cfg.Board(cfg.Rand())
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
	assert.Equal(t, 100, a.Count(grid.Wall))

	cfg.Layout = "S#\n.E\n"
	g, err := cfg.Board(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, "S#\n.E\n", g.String())
}
