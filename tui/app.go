// Package tui is the terminal demonstrator: it draws the board, lets the
// user edit walls and endpoints, runs searches in the background and
// reveals the resulting path one cell at a time.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/gridpath/astar"
	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/ctxlog"
)

// cellWidth is the number of terminal columns used per board cell.
const cellWidth = 2

// searchDone is the payload of the interrupt posted when a search finishes.
type searchDone struct {
	out      astar.Outcome
	explored []grid.Coord
}

// App holds the board, the cursor and the animation state.
type App struct {
	screen tcell.Screen
	post   func(tcell.Event)
	cfg    config.Config
	logger *slog.Logger
	rng    *rand.Rand
	engine *astar.Engine

	board     *grid.Grid
	cursor    grid.Coord
	allowDiag bool
	searching bool

	path     []astar.Step
	shown    int // revealed prefix of path
	explored map[grid.Coord]bool
	status   string
	buttons  tcell.ButtonMask
}

// New builds the initial board from cfg and binds the app to screen. The
// screen must already be initialised by the caller.
func New(screen tcell.Screen, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = ctxlog.Discard()
	}
	rng := cfg.Rand()
	board, err := cfg.Board(rng)
	if err != nil {
		return nil, fmt.Errorf("building board: %w", err)
	}

	a := &App{
		screen:    screen,
		cfg:       cfg,
		logger:    logger,
		rng:       rng,
		engine:    astar.NewEngine(),
		board:     board,
		allowDiag: cfg.AllowDiagonalThroughWalls,
		explored:  make(map[grid.Coord]bool),
		status:    "enter: search  space: wall  s/e: start/end  d: diagonals  r: new board  q: quit",
	}
	a.post = func(ev tcell.Event) { _ = screen.PostEvent(ev) }
	if s, ok := board.Start(); ok {
		a.cursor = s.Coord
	}

	return a, nil
}

// Board returns the board being edited.
func (a *App) Board() *grid.Grid { return a.board }

// Run processes input and animation until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.HideCursor()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	interval := a.cfg.StepInterval
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
			a.Draw()
		case <-ticker.C:
			if a.Tick() {
				a.Draw()
			}
		}
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
		if done, ok := ev.Data().(searchDone); ok {
			a.finish(done)
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}

	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		a.move(0, -1)
	case tcell.KeyDown:
		a.move(0, 1)
	case tcell.KeyLeft:
		a.move(-1, 0)
	case tcell.KeyRight:
		a.move(1, 0)
	case tcell.KeyEnter:
		a.Search()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			a.move(0, -1)
		case 'j':
			a.move(0, 1)
		case 'h':
			a.move(-1, 0)
		case 'l':
			a.move(1, 0)
		case ' ':
			a.toggle(a.cursor)
		case 's':
			a.place(a.board.SetStart, "start")
		case 'e':
			a.place(a.board.SetEnd, "end")
		case 'd':
			a.toggleDiagonals()
		case 'c':
			if !a.searching {
				a.clearPath()
				a.status = "path cleared"
			}
		case 'r':
			a.regenerate()
		}
	}

	return true
}

// handleMouse toggles a wall on the press edge of the primary button.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0
	wasPressed := a.buttons&tcell.Button1 != 0
	a.buttons = ev.Buttons()
	if !pressed || wasPressed {
		return
	}

	x, y := ev.Position()
	at := grid.Key(x/cellWidth, y)
	if !a.board.InBounds(at.X, at.Y) {
		return
	}
	a.cursor = at
	a.toggle(at)
}

func (a *App) move(dx, dy int) {
	next := a.cursor.Add(dx, dy)
	if a.board.InBounds(next.X, next.Y) {
		a.cursor = next
	}
}

func (a *App) toggleDiagonals() {
	if a.searching {
		return
	}
	a.allowDiag = !a.allowDiag
	a.clearPath()
	a.status = "diagonals: " + a.policy()
}

func (a *App) toggle(at grid.Coord) {
	if a.searching {
		return
	}
	kind, err := a.board.ToggleWall(at.X, at.Y)
	if err != nil {
		a.status = err.Error()
		return
	}
	a.clearPath()
	a.status = fmt.Sprintf("%s is now %s", at, kind)
}

func (a *App) place(set func(x, y int) error, what string) {
	if a.searching {
		return
	}
	if err := set(a.cursor.X, a.cursor.Y); err != nil {
		a.status = err.Error()
		return
	}
	a.clearPath()
	a.status = fmt.Sprintf("%s moved to %s", what, a.cursor)
}

func (a *App) regenerate() {
	if a.searching {
		return
	}
	w, h := a.board.Width(), a.board.Height()
	walls := min(a.cfg.Walls, w*h-2)
	board, err := grid.Generate(w, h, walls, a.rng)
	if err != nil {
		a.status = err.Error()
		return
	}
	a.board = board
	a.clearPath()
	if s, ok := board.Start(); ok {
		a.cursor = s.Coord
	}
	a.status = fmt.Sprintf("new board with %d walls", walls)
}

// Search starts a background search between the board's Start and End
// cells. It is a no-op while another search is running.
func (a *App) Search() {
	if a.searching {
		return
	}
	start, okS := a.board.Start()
	end, okE := a.board.End()
	if !okS || !okE {
		a.status = "place both a start (s) and an end (e) first"
		return
	}

	a.clearPath()
	a.searching = true
	a.status = "searching..."

	var explored []grid.Coord
	ch := a.engine.SearchAsync(start.Coord, end.Coord, a.board.Snapshot(),
		astar.WithDiagonalThroughWalls(a.allowDiag),
		astar.WithOnExpand(func(at grid.Coord) { explored = append(explored, at) }),
		astar.WithLogger(a.logger),
	)
	go func() {
		out := <-ch
		a.post(tcell.NewEventInterrupt(searchDone{out: out, explored: explored}))
	}()
}

func (a *App) finish(done searchDone) {
	a.searching = false
	for _, at := range done.explored {
		a.explored[at] = true
	}

	res, err := done.out.Result, done.out.Err
	switch {
	case errors.Is(err, astar.ErrUnreachable):
		a.status = "no path (" + a.policy() + ")"
	case err != nil:
		a.status = err.Error()
	default:
		a.path = res.Path
		a.shown = 0
		if a.cfg.StepInterval <= 0 {
			a.shown = len(a.path)
		}
		a.status = fmt.Sprintf("path %d steps  cost %d  expanded %d  %dms  (%s)",
			len(res.Path), res.Cost(), res.Expanded, res.ElapsedMillis(), a.policy())
	}
	a.logger.Info("search finished", slog.Bool("ok", res.OK), slog.Int("path_len", len(res.Path)))
}

// Tick reveals the next path cell. It reports whether anything changed.
func (a *App) Tick() bool {
	if a.shown >= len(a.path) {
		return false
	}
	a.shown++

	return true
}

func (a *App) clearPath() {
	a.path = nil
	a.shown = 0
	clear(a.explored)
}

func (a *App) policy() string {
	if a.allowDiag {
		return "through walls"
	}
	return "gated"
}
