// Package grid provides the immutable grid-world state space used by the
// search algorithms.
//
// The grid package implements:
//   - State: an integer (row, col) position, the unit of search
//   - CellType: the cell classification (free, obstacle, start, goal, terrain)
//   - Grid: a validated, rectangular, read-only grid with exactly one start
//     and one goal
//   - The transition function: 4-directional movement with per-cell step costs
//
// Coordinate System:
//
// Row 0 is the top row, column 0 is the leftmost column. Moving up decreases
// the row, moving down increases it.
//
// Determinism:
//
// Neighbors are always produced in the fixed order up, down, left, right.
// Every search algorithm inherits its tie-breaking among equal-length paths
// from this order, so it must never change.
//
// Concurrency:
//
// A Grid is immutable after construction and safe to share across any number
// of concurrent search runs without locking.
package grid
