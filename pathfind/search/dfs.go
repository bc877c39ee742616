package search

import "github.com/pvera/gridpath/pathfind/grid"

// DFS performs depth-first search with an explicit stack, so the search depth
// is bounded by the frontier rather than the call stack. States are marked
// discovered when pushed. DFS is complete on a finite grid but not optimal:
// the returned path and cost may exceed what BFS finds on the same map.
func DFS(g *grid.Grid, opts Options) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	start := g.Start()
	stack := stackFrontier{{state: start}}
	parent := map[grid.State]grid.State{start: start}

	expanded := 0
	frontierMax := 1
	trace := []grid.State{}

	for stack.size() > 0 {
		if n := stack.size(); n > frontierMax {
			frontierMax = n
		}
		cur := stack.pop().state

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

		for _, step := range g.Neighbors(cur) {
			if _, seen := parent[step.To]; !seen {
				parent[step.To] = cur
				stack.push(entry{state: step.To})
			}
		}
	}

	return failure(expanded, frontierMax, trace), nil
}
