// Command analyze prints quick, human-readable heuristics about map files in
// the project's assets/maps directory. It summarizes dimensions, terrain
// breakdown, obstacle density, how many cells are reachable from the start,
// and the shortest path to the goal.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/mapstore"
	"github.com/pvera/gridpath/pathfind/search"
)

func main() {
	mapDir := "assets/maps"
	if len(os.Args) > 1 {
		mapDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(mapDir, "*.txt"))
	if err != nil {
		fmt.Printf("Error finding map files: %v\n", err)
		os.Exit(1)
	}

	if len(files) == 0 {
		fmt.Printf("No map files found in %s\n", mapDir)
		os.Exit(1)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analyzeMap(file)
	}
}

func analyzeMap(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	g, err := mapstore.ParseText(string(data))
	if err != nil {
		fmt.Printf("Error parsing map: %v\n", err)
		return
	}

	fmt.Printf("Grid Size: %d x %d\n", g.Height(), g.Width())
	fmt.Printf("Start: %v\n", g.Start())
	fmt.Printf("Goal: %v\n", g.Goal())

	// Terrain breakdown
	counts := make(map[grid.CellType]int)
	for _, row := range g.Cells() {
		for _, cell := range row {
			counts[cell]++
		}
	}

	total := g.Height() * g.Width()
	obstacles := counts[grid.Obstacle]
	fmt.Printf("Obstacles: %d (%.0f%% of %d cells)\n",
		obstacles, float64(obstacles)/float64(total)*100, total)
	if counts[grid.Road]+counts[grid.Mud]+counts[grid.Water] > 0 {
		fmt.Printf("Terrain: %d road, %d mud, %d water\n",
			counts[grid.Road], counts[grid.Mud], counts[grid.Water])
	}

	// Reachability from start
	reachable := countReachable(g)
	passable := total - obstacles
	fmt.Printf("Reachable from start: %d of %d passable cells\n", reachable, passable)
	if reachable < passable {
		fmt.Printf("WARNING: %d passable cells are cut off from the start\n", passable-reachable)
	}

	// Shortest path to goal
	result, err := search.BFS(g, search.Options{})
	if err != nil {
		fmt.Printf("Error running search: %v\n", err)
		return
	}

	if result.Found {
		fmt.Printf("Shortest path: %d edges (%d states expanded)\n",
			result.PathLen(), result.Expanded)
	} else {
		fmt.Printf("WARNING: goal is unreachable from start\n")
	}
}

// countReachable flood-fills from the start and counts visited cells.
func countReachable(g *grid.Grid) int {
	visited := map[grid.State]bool{g.Start(): true}
	queue := []grid.State{g.Start()}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, step := range g.Neighbors(cur) {
			if !visited[step.To] {
				visited[step.To] = true
				queue = append(queue, step.To)
			}
		}
	}

	return len(visited)
}
