package search

import (
	"fmt"

	"github.com/pvera/gridpath/pathfind/grid"
)

// DLS performs depth-limited search: DFS that never expands a state lying
// more than Options.DepthLimit edges from the start. States at the limit are
// leaves. If the goal lies deeper than the limit the search reports
// Found=false, which is the expected outcome rather than an error.
//
// Depth is tracked per frontier entry, and a state already seen at some depth
// is re-pushed when rediscovered at a shallower one, so a path within the
// limit is not missed just because a deeper route reached the state first.
func DLS(g *grid.Grid, opts Options) (*Result, error) {
	if opts.DepthLimit < 0 {
		return nil, fmt.Errorf("%w: depth limit must be non-negative, got %d",
			ErrInvalidParameter, opts.DepthLimit)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	start := g.Start()
	stack := stackFrontier{{state: start, depth: 0}}
	parent := map[grid.State]grid.State{start: start}

	// Shallowest depth each state has been discovered at.
	bestDepth := map[grid.State]int{start: 0}

	expanded := 0
	frontierMax := 1
	trace := []grid.State{}

	for stack.size() > 0 {
		if n := stack.size(); n > frontierMax {
			frontierMax = n
		}
		e := stack.pop()
		cur := e.state

		expanded++
		trace = append(trace, cur)

		if g.IsGoal(cur) {
			path := reconstructPath(parent, start, cur)
			return &Result{
				Found:       true,
				Path:        path,
				Cost:        float64(len(path) - 1),
				Expanded:    expanded,
				FrontierMax: frontierMax,
				Trace:       trace,
			}, nil
		}

		if e.depth >= opts.DepthLimit {
			continue
		}

		for _, step := range g.Neighbors(cur) {
			nd := e.depth + 1
			if prev, seen := bestDepth[step.To]; !seen || nd < prev {
				bestDepth[step.To] = nd
				parent[step.To] = cur
				stack.push(entry{state: step.To, depth: nd})
			}
		}
	}

	return failure(expanded, frontierMax, trace), nil
}
