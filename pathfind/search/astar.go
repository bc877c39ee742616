package search

import (
	"fmt"

	"github.com/pvera/gridpath/pathfind/grid"
)

// AStar performs A* search with the Manhattan-distance heuristic. The
// frontier is ordered by f = g + h ascending, ties broken by g and then
// insertion order. Relaxation and stale-entry handling follow UCS.
//
// Manhattan distance never overestimates the true remaining cost under
// 4-directional movement with a minimum step cost of 1, so the heuristic is
// admissible and A* returns the same cost UCS does, usually while expanding
// fewer states.
func AStar(g *grid.Grid, opts Options) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	start := g.Start()
	pq := newAStarFrontier()
	pq.push(entry{state: start, g: 0, f: g.Manhattan(start)})

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
				pq.push(entry{state: step.To, g: newG, f: newG + g.Manhattan(step.To)})
			}
		}
	}

	return failure(expanded, frontierMax, trace), nil
}
