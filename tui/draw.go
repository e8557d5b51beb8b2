package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/katalvlaran/gridpath/grid"
)

// Glyphs drawn in the first column of every cell.
const (
	glyphOpen     = '.'
	glyphWall     = '#'
	glyphStart    = 'S'
	glyphEnd      = 'E'
	glyphPath     = 'o'
	glyphExplored = ':'
)

var (
	styleBase     = tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorSilver)
	styleStart    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
	styleEnd      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorRed).Bold(true)
	stylePath     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleExplored = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan).Background(tcell.ColorBlack)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Draw renders the board, the revealed path, the cursor and the status line.
func (a *App) Draw() {
	a.screen.Clear()

	onPath := make(map[grid.Coord]bool, a.shown)
	for _, s := range a.path[:a.shown] {
		onPath[s.Coord] = true
	}

	a.board.Range(func(c grid.Cell) bool {
		glyph, style := a.look(c, onPath)
		if c.Coord == a.cursor {
			style = style.Reverse(true)
		}
		x := c.X * cellWidth
		a.screen.SetContent(x, c.Y, glyph, nil, style)
		for i := 1; i < cellWidth; i++ {
			a.screen.SetContent(x+i, c.Y, ' ', nil, style)
		}
		return true
	})

	a.text(0, a.board.Height()+1, a.status)
	a.screen.Show()
}

// look picks the glyph and style of a cell. End points win over the path,
// the path over explored marks.
func (a *App) look(c grid.Cell, onPath map[grid.Coord]bool) (rune, tcell.Style) {
	switch {
	case c.Kind == grid.Start:
		return glyphStart, styleStart
	case c.Kind == grid.End:
		return glyphEnd, styleEnd
	case c.Kind == grid.Wall:
		return glyphWall, styleWall
	case onPath[c.Coord]:
		return glyphPath, stylePath
	case a.explored[c.Coord]:
		return glyphExplored, styleExplored
	default:
		return glyphOpen, styleBase
	}
}

func (a *App) text(x, y int, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, styleStatus)
		x++
	}
}
