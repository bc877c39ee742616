package render

import (
	"strings"

	"github.com/pvera/gridpath/pathfind/grid"
)

// Overlay selects what to draw on top of the base map. Path cells are drawn
// as '*', expanded cells not on the path as '+'. Start and goal always keep
// their own markers.
type Overlay struct {
	Path  []grid.State
	Trace []grid.State
}

// ASCIILines renders the grid as map-file lines with the overlay applied.
func ASCIILines(g *grid.Grid, o Overlay) []string {
	rows := make([][]rune, g.Height())
	for r, line := range g.Layout() {
		rows[r] = []rune(line)
	}

	mark := func(states []grid.State, marker rune) {
		for _, s := range states {
			if s == g.Start() || s == g.Goal() {
				continue
			}
			rows[s.Row][s.Col] = marker
		}
	}

	// Path wins over trace on cells in both.
	mark(o.Trace, '+')
	mark(o.Path, '*')

	lines := make([]string, len(rows))
	for r, row := range rows {
		lines[r] = string(row)
	}
	return lines
}

// ASCII renders the grid as a single newline-joined string.
func ASCII(g *grid.Grid, o Overlay) string {
	return strings.Join(ASCIILines(g, o), "\n")
}
