package search

import (
	"fmt"

	"github.com/pvera/gridpath/pathfind/grid"
)

// UCS performs uniform-cost search: the frontier is ordered by accumulated
// path cost g ascending, ties broken by insertion order. A state may be
// re-inserted when a cheaper path to it is found; stale frontier entries are
// skipped on pop, so each state is expanded at most once, with its minimal
// cost. On a grid where every edge costs 1 this degenerates to BFS and
// produces the same path length.
func UCS(g *grid.Grid, opts Options) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	start := g.Start()
	pq := newCostFrontier()
	pq.push(entry{state: start, g: 0})

	gCost := map[grid.State]float64{start: 0}
	parent := map[grid.State]grid.State{start: start}

	expanded := 0
	frontierMax := 1
	trace := []grid.State{}

	for pq.size() > 0 {
		if n := pq.size(); n > frontierMax {
			frontierMax = n
		}
		e := pq.pop()
		cur := e.state

		// Skip stale entries superseded by a cheaper relaxation.
		if best, ok := gCost[cur]; !ok || e.g != best {
			continue
		}

		expanded++
		trace = append(trace, cur)

		if g.IsGoal(cur) {
			path := reconstructPath(parent, start, cur)
			return &Result{
				Found:       true,
				Path:        path,
				Cost:        gCost[cur],
				Expanded:    expanded,
				FrontierMax: frontierMax,
				Trace:       trace,
			}, nil
		}

		for _, step := range g.Neighbors(cur) {
			if step.Cost < 0 {
				return nil, fmt.Errorf("%w: negative step cost %v at %v",
					ErrInvalidParameter, step.Cost, step.To)
			}
			newG := e.g + step.Cost
			if old, seen := gCost[step.To]; !seen || newG < old {
				gCost[step.To] = newG
				parent[step.To] = cur
				pq.push(entry{state: step.To, g: newG})
			}
		}
	}

	return failure(expanded, frontierMax, trace), nil
}
