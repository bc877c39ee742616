package search

import (
	"testing"

	"github.com/pvera/gridpath/pathfind/grid"
)

// mustGrid builds a grid from a compact rune layout.
// O=obstacle, S=start, G=goal, R=road, M=mud, W=water, anything else free.
func mustGrid(t *testing.T, layout []string) *grid.Grid {
	t.Helper()

	cells := make([][]grid.CellType, len(layout))
	for r, row := range layout {
		cells[r] = make([]grid.CellType, len(row))
		for c, ch := range row {
			switch ch {
			case 'O':
				cells[r][c] = grid.Obstacle
			case 'S':
				cells[r][c] = grid.Start
			case 'G':
				cells[r][c] = grid.Goal
			case 'R':
				cells[r][c] = grid.Road
			case 'M':
				cells[r][c] = grid.Mud
			case 'W':
				cells[r][c] = grid.Water
			default:
				cells[r][c] = grid.Free
			}
		}
	}

	g, err := grid.New(cells)
	if err != nil {
		t.Fatalf("grid.New() failed: %v", err)
	}
	return g
}

// corridorLayout is the 3x5 reference map: start (1,1), goal (1,3),
// shortest path 2 edges.
var corridorLayout = []string{
	"OOOOO",
	"OSFGO",
	"OOOOO",
}

// boxedLayout traps the start behind obstacles on all four sides.
var boxedLayout = []string{
	"OOOOO",
	"OSOFG",
	"OOOOO",
}

// mazeLayout is a small open map with an interior wall; shortest path from
// (1,1) to (3,5) is 6 edges.
var mazeLayout = []string{
	"OOOOOOO",
	"OSFFFFO",
	"OFOOOFO",
	"OFFFFGO",
	"OOOOOOO",
}

// checkPathValid asserts the spec path invariants: endpoints are start and
// goal and every consecutive pair is a single passable step.
func checkPathValid(t *testing.T, g *grid.Grid, path []grid.State) {
	t.Helper()

	if len(path) == 0 {
		t.Fatal("Expected non-empty path")
	}
	if path[0] != g.Start() {
		t.Errorf("Path starts at %v, expected start %v", path[0], g.Start())
	}
	if path[len(path)-1] != g.Goal() {
		t.Errorf("Path ends at %v, expected goal %v", path[len(path)-1], g.Goal())
	}

	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]
		dr := prev.Row - cur.Row
		if dr < 0 {
			dr = -dr
		}
		dc := prev.Col - cur.Col
		if dc < 0 {
			dc = -dc
		}
		if dr+dc != 1 {
			t.Errorf("Path step %d: %v -> %v is not a single move", i, prev, cur)
		}
		if !g.Passable(cur) {
			t.Errorf("Path step %d: %v is not passable", i, cur)
		}
	}
}
