package grid

import "fmt"

// CellType classifies a single grid cell.
type CellType uint8

const (
	Free CellType = iota
	Obstacle
	Start
	Goal

	// Terrain variants. All are passable free cells; they only differ in the
	// cost of stepping onto them, which matters to UCS and A*.
	Road
	Mud
	Water
)

// Step costs for the terrain variants. Every other passable cell costs
// CostDefault per edge.
const (
	CostDefault = 1.0
	CostRoad    = 1.0
	CostMud     = 5.0
	CostWater   = 10.0
)

// String returns the cell type name.
func (c CellType) String() string {
	switch c {
	case Free:
		return "free"
	case Obstacle:
		return "obstacle"
	case Start:
		return "start"
	case Goal:
		return "goal"
	case Road:
		return "road"
	case Mud:
		return "mud"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

// Rune returns the canonical map-file character for the cell type. ParseCell
// is its inverse.
func (c CellType) Rune() rune {
	switch c {
	case Obstacle:
		return 'O'
	case Start:
		return 'S'
	case Goal:
		return 'G'
	case Road:
		return 'R'
	case Mud:
		return 'M'
	case Water:
		return 'W'
	default:
		return 'F'
	}
}

// ParseCell maps a map-file character to its cell type. Unknown characters
// are treated as free cells.
func ParseCell(r rune) CellType {
	switch r {
	case 'O':
		return Obstacle
	case 'S':
		return Start
	case 'G':
		return Goal
	case 'R':
		return Road
	case 'M':
		return Mud
	case 'W':
		return Water
	default:
		return Free
	}
}

// Passable reports whether a cell of this type can be entered.
func (c CellType) Passable() bool {
	return c != Obstacle
}

// StepCost returns the cost of stepping onto a cell of this type.
func (c CellType) StepCost() float64 {
	switch c {
	case Road:
		return CostRoad
	case Mud:
		return CostMud
	case Water:
		return CostWater
	default:
		return CostDefault
	}
}

// State is a grid cell position. States are value types with structural
// equality, so they can be used directly as map keys.
type State struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the state as "(row,col)".
func (s State) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// Step is a single valid transition: the successor state and the cost of
// taking the edge into it.
type Step struct {
	To   State
	Cost float64
}

// deltas is the fixed successor order: up, down, left, right.
// Tie-breaking across all algorithms depends on this order staying fixed.
var deltas = [4]struct{ dr, dc int }{
	{-1, 0}, // up
	{1, 0},  // down
	{0, -1}, // left
	{0, 1},  // right
}
