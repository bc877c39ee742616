package search

import "github.com/pvera/gridpath/pathfind/grid"

// BFS performs breadth-first search. States are marked discovered when
// enqueued, so each state enters the frontier at most once and the first path
// found to the goal is shortest in edge count. Cost equals the number of path
// edges regardless of terrain.
func BFS(g *grid.Grid, opts Options) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	start := g.Start()
	q := queueFrontier{{state: start}}

	// parent doubles as the discovered set; the start maps to itself.
	parent := map[grid.State]grid.State{start: start}

	expanded := 0
	frontierMax := 1
	trace := []grid.State{}

	for q.size() > 0 {
		if n := q.size(); n > frontierMax {
			frontierMax = n
		}
		cur := q.pop().state

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
				q.push(entry{state: step.To})
			}
		}
	}

	return failure(expanded, frontierMax, trace), nil
}
