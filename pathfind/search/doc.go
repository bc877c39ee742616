// Package search implements the six grid search strategies and their shared
// instrumentation model.
//
// Every algorithm satisfies the same contract:
//
//	type Func func(*grid.Grid, Options) (*Result, error)
//
// An algorithm never mutates the grid, runs synchronously to completion, and
// returns a Result carrying the path (when found), cost, expansion count, the
// peak frontier size, and the ordered expansion trace that replay tooling
// visualizes. Two calls with identical inputs produce identical Results,
// including trace order.
//
// Algorithms:
//   - BFS: FIFO frontier, optimal in edge count on unit-cost grids
//   - DFS: LIFO frontier, complete but not optimal
//   - DLS: DFS bounded by Options.DepthLimit
//   - UCS: priority frontier by accumulated cost g
//   - A*: priority frontier by f = g + Manhattan distance to goal
//   - BDS: two FIFO frontiers meeting in the middle, BFS-equivalent
//
// A failed search (Found=false) is a valid outcome, not an error. Errors are
// reserved for the conditions in the taxonomy: an invalid grid, an invalid
// parameter (negative depth limit, negative step cost), or an unknown
// algorithm name at registry lookup.
package search
