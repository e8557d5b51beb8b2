package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/grid"
)

const wallColumn = "S.#..\n..#..\n..#..\n..#..\n....E\n"

// newTestApp returns an app on a simulation screen whose background
// events are delivered to the returned channel instead of the screen.
func newTestApp(t *testing.T, layout string) (*App, tcell.SimulationScreen, chan tcell.Event) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	screen.SetSize(80, 24)
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Layout = layout
	cfg.Walls = 5
	cfg.Seed = 3
	app, err := New(screen, cfg, nil)
	require.NoError(t, err)

	events := make(chan tcell.Event, 4)
	app.post = func(ev tcell.Event) { events <- ev }

	return app, screen, events
}

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

// await feeds the next posted event back into the app.
func await(t *testing.T, app *App, events chan tcell.Event) {
	t.Helper()
	select {
	case ev := <-events:
		assert.True(t, app.HandleEvent(ev))
	case <-time.After(5 * time.Second):
		t.Fatal("search did not report back")
	}
}

func glyphAt(screen tcell.SimulationScreen, c grid.Coord) rune {
	r, _, _, _ := screen.GetContent(c.X*cellWidth, c.Y)
	return r
}

func TestDraw_Board(t *testing.T) {
	app, screen, _ := newTestApp(t, wallColumn)
	app.Draw()

	assert.Equal(t, glyphStart, glyphAt(screen, grid.Key(0, 0)))
	assert.Equal(t, glyphOpen, glyphAt(screen, grid.Key(1, 0)))
	assert.Equal(t, glyphWall, glyphAt(screen, grid.Key(2, 3)))
	assert.Equal(t, glyphEnd, glyphAt(screen, grid.Key(4, 4)))

	_, _, style, _ := screen.GetContent(0, 0)
	_, _, attrs := style.Decompose()
	assert.NotZero(t, attrs&tcell.AttrReverse, "cursor starts on the start cell")
}

func TestHandleEvent_CursorAndWalls(t *testing.T) {
	app, _, _ := newTestApp(t, wallColumn)

	app.HandleEvent(key(tcell.KeyLeft))
	assert.Equal(t, grid.Key(0, 0), app.cursor, "cursor stays on the board")

	app.HandleEvent(runeKey('l'))
	app.HandleEvent(key(tcell.KeyDown))
	app.HandleEvent(runeKey('j'))
	app.HandleEvent(runeKey('k'))
	assert.Equal(t, grid.Key(1, 1), app.cursor)

	app.HandleEvent(runeKey(' '))
	c, _ := app.Board().Get(1, 1)
	assert.Equal(t, grid.Wall, c.Kind)
	app.HandleEvent(runeKey(' '))
	c, _ = app.Board().Get(1, 1)
	assert.Equal(t, grid.Open, c.Kind)

	// Start and End cannot be toggled.
	app.cursor = grid.Key(0, 0)
	app.HandleEvent(runeKey(' '))
	c, _ = app.Board().Get(0, 0)
	assert.Equal(t, grid.Start, c.Kind)
	assert.Contains(t, app.status, "cannot become walls")
}

func TestHandleEvent_PlaceEndpoints(t *testing.T) {
	app, _, _ := newTestApp(t, wallColumn)

	app.cursor = grid.Key(1, 1)
	app.HandleEvent(runeKey('s'))
	app.cursor = grid.Key(3, 0)
	app.HandleEvent(runeKey('e'))

	s, _ := app.Board().Start()
	e, _ := app.Board().End()
	assert.Equal(t, grid.Key(1, 1), s.Coord)
	assert.Equal(t, grid.Key(3, 0), e.Coord)
	assert.Equal(t, 1, app.Board().Count(grid.Start))
	assert.Equal(t, 1, app.Board().Count(grid.End))
}

func TestHandleEvent_Mouse(t *testing.T) {
	app, _, _ := newTestApp(t, wallColumn)

	press := tcell.NewEventMouse(4*cellWidth+1, 1, tcell.Button1, tcell.ModNone)
	app.HandleEvent(press)
	app.HandleEvent(press) // held, not a new click
	c, _ := app.Board().Get(4, 1)
	assert.Equal(t, grid.Wall, c.Kind)
	assert.Equal(t, grid.Key(4, 1), app.cursor)

	app.HandleEvent(tcell.NewEventMouse(4*cellWidth, 1, tcell.ButtonNone, tcell.ModNone))
	app.HandleEvent(press)
	c, _ = app.Board().Get(4, 1)
	assert.Equal(t, grid.Open, c.Kind)

	// Clicks outside the board are ignored.
	app.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(70, 20, tcell.Button1, tcell.ModNone))
	assert.Equal(t, grid.Key(4, 1), app.cursor)
}

// TestSearch_Animation runs a search and reveals the path step by step.
func TestSearch_Animation(t *testing.T) {
	app, screen, events := newTestApp(t, wallColumn)

	app.HandleEvent(key(tcell.KeyEnter))
	assert.True(t, app.searching)
	app.HandleEvent(runeKey(' ')) // ignored while searching
	await(t, app, events)

	require.False(t, app.searching)
	require.Len(t, app.path, 7)
	assert.Equal(t, 0, app.shown)
	assert.Contains(t, app.status, "cost 74")
	assert.True(t, app.explored[grid.Key(0, 1)])

	for i := 0; i < 7; i++ {
		assert.True(t, app.Tick())
	}
	assert.False(t, app.Tick())

	app.Draw()
	for _, s := range app.path[:len(app.path)-1] {
		assert.Equal(t, glyphPath, glyphAt(screen, s.Coord), "cell %s", s.Coord)
	}
	assert.Equal(t, glyphEnd, glyphAt(screen, grid.Key(4, 4)))

	app.HandleEvent(runeKey('c'))
	assert.Empty(t, app.path)
	assert.Empty(t, app.explored)
}

func TestSearch_DiagonalPolicy(t *testing.T) {
	app, _, events := newTestApp(t, wallColumn)

	app.HandleEvent(runeKey('d'))
	assert.True(t, app.allowDiag)
	app.HandleEvent(key(tcell.KeyEnter))
	await(t, app, events)

	assert.Len(t, app.path, 6)
	assert.Contains(t, app.status, "through walls")
}

// TestSearch_PolicyLockedWhileRunning ignores policy and clear keys until
// the running search reports back, so the status names the policy it ran with.
func TestSearch_PolicyLockedWhileRunning(t *testing.T) {
	app, _, events := newTestApp(t, wallColumn)

	app.HandleEvent(key(tcell.KeyEnter))
	require.True(t, app.searching)
	app.HandleEvent(runeKey('d'))
	app.HandleEvent(runeKey('c'))
	assert.False(t, app.allowDiag)
	assert.Equal(t, "searching...", app.status)
	await(t, app, events)

	assert.Len(t, app.path, 7)
	assert.Contains(t, app.status, "(gated)")

	app.HandleEvent(runeKey('d'))
	assert.True(t, app.allowDiag)
}

// TestRun_Cancel stops the loop on context cancellation while the screen
// keeps producing events.
func TestRun_Cancel(t *testing.T) {
	app, screen, _ := newTestApp(t, wallColumn)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- app.Run(ctx) }()

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	cancel()
	for i := 0; i < 8; i++ {
		screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	}

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestSearch_NoPath(t *testing.T) {
	app, _, events := newTestApp(t, "S#\n#E\n")

	app.HandleEvent(key(tcell.KeyEnter))
	await(t, app, events)
	assert.Empty(t, app.path)
	assert.Equal(t, "no path (gated)", app.status)
}

func TestRegenerate(t *testing.T) {
	app, _, _ := newTestApp(t, wallColumn)

	app.HandleEvent(runeKey('r'))
	assert.Equal(t, 5, app.Board().Count(grid.Wall))
	assert.Equal(t, 5, app.Board().Width())
	assert.Equal(t, grid.Key(0, 0), app.cursor)
}

func TestHandleEvent_Quit(t *testing.T) {
	app, _, _ := newTestApp(t, wallColumn)

	assert.True(t, app.HandleEvent(runeKey('x')))
	assert.False(t, app.HandleEvent(runeKey('q')))
	assert.False(t, app.HandleEvent(key(tcell.KeyEscape)))
	assert.False(t, app.HandleEvent(key(tcell.KeyCtrlC)))
}
