package grid

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is the sentinel all grid validation failures wrap.
var ErrInvalidGrid = errors.New("invalid grid")

// Grid is an immutable rectangular grid world. Construct one with New; a
// zero-value Grid is not usable.
type Grid struct {
	height int
	width  int
	cells  [][]CellType
	start  State
	goal   State
}

// New builds a Grid from a cell matrix. The matrix must be non-empty and
// rectangular and contain exactly one Start and exactly one Goal cell.
// The cells are copied, so the caller may reuse the input.
func New(cells [][]CellType) (*Grid, error) {
	height := len(cells)
	if height == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}
	width := len(cells[0])

	copied := make([][]CellType, height)
	var start, goal *State
	for r, row := range cells {
		if len(row) != width {
			return nil, fmt.Errorf("%w: non-rectangular grid at row %d: expected width %d, got %d",
				ErrInvalidGrid, r, width, len(row))
		}
		copied[r] = make([]CellType, width)
		copy(copied[r], row)

		for c, cell := range row {
			switch cell {
			case Start:
				if start != nil {
					return nil, fmt.Errorf("%w: duplicate start at (%d,%d)", ErrInvalidGrid, r, c)
				}
				start = &State{Row: r, Col: c}
			case Goal:
				if goal != nil {
					return nil, fmt.Errorf("%w: duplicate goal at (%d,%d)", ErrInvalidGrid, r, c)
				}
				goal = &State{Row: r, Col: c}
			}
		}
	}

	if start == nil {
		return nil, fmt.Errorf("%w: missing start cell", ErrInvalidGrid)
	}
	if goal == nil {
		return nil, fmt.Errorf("%w: missing goal cell", ErrInvalidGrid)
	}

	return &Grid{
		height: height,
		width:  width,
		cells:  copied,
		start:  *start,
		goal:   *goal,
	}, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Start returns the unique start state.
func (g *Grid) Start() State { return g.start }

// Goal returns the unique goal state.
func (g *Grid) Goal() State { return g.goal }

// At returns the cell type at s. The caller must ensure s is in bounds.
func (g *Grid) At(s State) CellType {
	return g.cells[s.Row][s.Col]
}

// InBounds reports whether s lies inside the grid.
func (g *Grid) InBounds(s State) bool {
	return s.Row >= 0 && s.Row < g.height && s.Col >= 0 && s.Col < g.width
}

// Passable reports whether s is in bounds and not an obstacle.
func (g *Grid) Passable(s State) bool {
	return g.InBounds(s) && g.cells[s.Row][s.Col].Passable()
}

// IsGoal reports whether s is the goal state.
func (g *Grid) IsGoal(s State) bool {
	return s == g.goal
}

// Neighbors returns the valid successors of s in the fixed order up, down,
// left, right. Each step carries the cost of entering the successor cell.
func (g *Grid) Neighbors(s State) []Step {
	steps := make([]Step, 0, 4)
	for _, d := range deltas {
		next := State{Row: s.Row + d.dr, Col: s.Col + d.dc}
		if g.Passable(next) {
			steps = append(steps, Step{To: next, Cost: g.At(next).StepCost()})
		}
	}
	return steps
}

// Manhattan returns the Manhattan distance from s to the goal. It never
// overestimates the true remaining cost under 4-directional movement with a
// minimum step cost of 1, which makes it an admissible A* heuristic here.
func (g *Grid) Manhattan(s State) float64 {
	dr := s.Row - g.goal.Row
	if dr < 0 {
		dr = -dr
	}
	dc := s.Col - g.goal.Col
	if dc < 0 {
		dc = -dc
	}
	return float64(dr + dc)
}

// Validate re-checks the construction invariants. Grids built with New always
// pass; search entry points call this to fail fast on a hand-built or
// zero-value Grid instead of misbehaving.
func (g *Grid) Validate() error {
	if g == nil || g.height == 0 || g.width == 0 || len(g.cells) != g.height {
		return fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}
	for r, row := range g.cells {
		if len(row) != g.width {
			return fmt.Errorf("%w: non-rectangular grid at row %d", ErrInvalidGrid, r)
		}
	}
	if !g.InBounds(g.start) || g.cells[g.start.Row][g.start.Col] != Start {
		return fmt.Errorf("%w: start %v does not mark a start cell", ErrInvalidGrid, g.start)
	}
	if !g.InBounds(g.goal) || g.cells[g.goal.Row][g.goal.Col] != Goal {
		return fmt.Errorf("%w: goal %v does not mark a goal cell", ErrInvalidGrid, g.goal)
	}
	if g.start == g.goal {
		return fmt.Errorf("%w: start and goal coincide at %v", ErrInvalidGrid, g.start)
	}
	return nil
}

// Layout renders the grid back into its canonical map-file lines, one string
// per row.
func (g *Grid) Layout() []string {
	lines := make([]string, g.height)
	for r, row := range g.cells {
		runes := make([]rune, g.width)
		for c, cell := range row {
			runes[c] = cell.Rune()
		}
		lines[r] = string(runes)
	}
	return lines
}

// Cells returns a deep copy of the cell matrix, for renderers that need to
// overlay paths without touching the original.
func (g *Grid) Cells() [][]CellType {
	out := make([][]CellType, g.height)
	for r, row := range g.cells {
		out[r] = make([]CellType, g.width)
		copy(out[r], row)
	}
	return out
}
