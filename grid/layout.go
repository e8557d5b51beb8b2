package grid

import (
	"fmt"
	"strings"
)

// Layout glyphs used by Parse and String.
const (
	GlyphOpen  = '.'
	GlyphWall  = '#'
	GlyphStart = 'S'
	GlyphEnd   = 'E'
)

// Glyph returns the layout rune for k.
func (k Kind) Glyph() rune {
	switch k {
	case Wall:
		return GlyphWall
	case Start:
		return GlyphStart
	case End:
		return GlyphEnd
	default:
		return GlyphOpen
	}
}

// KindOf maps a layout rune back to its kind.
func KindOf(r rune) (Kind, bool) {
	switch r {
	case GlyphOpen:
		return Open, true
	case GlyphWall:
		return Wall, true
	case GlyphStart:
		return Start, true
	case GlyphEnd:
		return End, true
	}

	return 0, false
}

// Parse builds a grid from a text layout, one row per line:
//
//	S..#
//	.#..
//	...E
//
// Blank lines and leading/trailing whitespace on each line are ignored.
// Returns ErrEmptyGrid, ErrNonRectangular, or ErrBadGlyph.
func Parse(text string) (*Grid, error) {
	var rows [][]Kind
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]Kind, 0, len(line))
		for col, r := range []rune(line) {
			k, ok := KindOf(r)
			if !ok {
				return nil, fmt.Errorf("%w: %q at line %d column %d", ErrBadGlyph, r, lineNo+1, col+1)
			}
			row = append(row, k)
		}
		rows = append(rows, row)
	}

	return From2D(rows)
}

// String renders g as a text layout accepted by Parse.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.width + 1) * g.height)
	g.Range(func(c Cell) bool {
		b.WriteRune(c.Kind.Glyph())
		if c.X == g.width-1 {
			b.WriteByte('\n')
		}
		return true
	})

	return b.String()
}
