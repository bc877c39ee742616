package search

import "github.com/pvera/gridpath/pathfind/grid"

// BDS performs bidirectional breadth-first search: one FIFO frontier grows
// forward from the start, a second grows backward from the goal. Because
// 4-directional movement is symmetric, the backward transition function is
// the forward one.
//
// Expansion strictly alternates, one state per side per round, forward side
// first. The searches meet when one side discovers a state the other side has
// already discovered; the full path is the forward root-to-meeting path
// joined with the reversed backward path, dropping the duplicated meeting
// state. Like BFS, the result is optimal in edge count; cost counts edges
// and ignores terrain.
func BDS(g *grid.Grid, opts Options) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	start, goal := g.Start(), g.Goal()

	qf := queueFrontier{{state: start}}
	qb := queueFrontier{{state: goal}}

	// Each side's parent map doubles as its discovered set.
	parentF := map[grid.State]grid.State{start: start}
	parentB := map[grid.State]grid.State{goal: goal}

	expanded := 0
	frontierMax := 2
	trace := []grid.State{}

	// expand pops one state from q, records it, and links undiscovered
	// neighbors into parentThis. It reports a meeting state as soon as a
	// neighbor turns out to be discovered by the other side.
	expand := func(q *queueFrontier, parentThis, parentOther map[grid.State]grid.State) (grid.State, bool) {
		cur := q.pop().state
		expanded++
		trace = append(trace, cur)

		for _, step := range g.Neighbors(cur) {
			if _, seen := parentThis[step.To]; seen {
				continue
			}
			parentThis[step.To] = cur
			if _, seen := parentOther[step.To]; seen {
				return step.To, true
			}
			q.push(entry{state: step.To})
		}
		return grid.State{}, false
	}

	join := func(meet grid.State) *Result {
		full := reconstructPath(parentF, start, meet) // start -> meet
		back := reconstructPath(parentB, goal, meet)  // goal -> meet
		for i, j := 0, len(back)-1; i < j; i, j = i+1, j-1 {
			back[i], back[j] = back[j], back[i]
		}
		full = append(full, back[1:]...) // skip the duplicated meeting state
		return &Result{
			Found:       true,
			Path:        full,
			Cost:        float64(len(full) - 1),
			Expanded:    expanded,
			FrontierMax: frontierMax,
			Trace:       trace,
		}
	}

	for qf.size() > 0 && qb.size() > 0 {
		if n := qf.size() + qb.size(); n > frontierMax {
			frontierMax = n
		}

		if meet, ok := expand(&qf, parentF, parentB); ok {
			return join(meet), nil
		}
		// Forward side exhausted means the start's component is fully
		// explored with no meeting: no path can exist.
		if qf.size() == 0 {
			break
		}
		if meet, ok := expand(&qb, parentB, parentF); ok {
			return join(meet), nil
		}
	}

	// One side exhausted without meeting: no path exists.
	return failure(expanded, frontierMax, trace), nil
}
