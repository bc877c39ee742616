package search

import (
	"errors"

	"github.com/pvera/gridpath/pathfind/grid"
)

var (
	// ErrInvalidParameter reports an algorithm option that fails validation,
	// such as a negative depth limit.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownAlgorithm reports a registry lookup for a name that was
	// never registered.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// Options carries algorithm-specific parameters. Algorithms ignore fields
// they do not use, so the same Options value can be passed to every entry in
// the registry.
type Options struct {
	// DepthLimit bounds DLS: states deeper than this many edges from the
	// start are not expanded. Must be >= 0.
	DepthLimit int `json:"depth_limit"`
}

// Func is the unified algorithm contract. Implementations are pure: they do
// not mutate the grid, hold no state between calls, and are deterministic
// given identical inputs.
type Func func(g *grid.Grid, opts Options) (*Result, error)

// Result is the immutable outcome of one search run.
type Result struct {
	// Found reports whether a path from start to goal was discovered.
	// A false value is a valid outcome, not an error.
	Found bool `json:"found"`

	// Path is the full route from start to goal inclusive. Empty when no
	// path was found.
	Path []grid.State `json:"path"`

	// Cost is the accumulated path cost. On unit-cost grids this equals
	// len(Path)-1. Meaningful only when Found is true; zero otherwise.
	Cost float64 `json:"cost"`

	// Expanded counts states dequeued from the frontier and processed.
	Expanded int `json:"expanded"`

	// FrontierMax is the largest size the frontier reached during the run.
	FrontierMax int `json:"frontier_max"`

	// Trace lists every expanded state in expansion order. Replay tooling
	// visualizes this verbatim.
	Trace []grid.State `json:"trace"`
}

// PathLen returns the number of edges in the path, or 0 when no path was
// found.
func (r *Result) PathLen() int {
	if !r.Found || len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

// failure builds the standard not-found result.
func failure(expanded, frontierMax int, trace []grid.State) *Result {
	return &Result{
		Found:       false,
		Path:        []grid.State{},
		Expanded:    expanded,
		FrontierMax: frontierMax,
		Trace:       trace,
	}
}

// reconstructPath walks the predecessor tree from end back to root and
// reverses it. The root must map to itself in parent.
func reconstructPath(parent map[grid.State]grid.State, root, end grid.State) []grid.State {
	path := []grid.State{end}
	for cur := end; cur != root; {
		cur = parent[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
