// Command validate provides a small CLI that validates map text files in the
// ../assets/maps directory. It checks:
//   - Non-empty, rectangular layouts
//   - Allowed characters (O, S, G, F, R, M, W)
//   - Exactly one start (S) and one goal (G)
//   - Connectivity: the goal is reachable from the start via passable cells
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateMap loads and validates a single map text file. It performs
// structural checks, character validation, and reachability analysis for
// the goal.
func validateMap(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	// Split into layout lines, dropping blank ones and trailing CR
	var layout []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		layout = append(layout, line)
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Layout is empty")
		return result
	}

	gridWidth := -1
	startCount := 0
	goalCount := 0
	obstacleCount := 0
	validChars := map[rune]bool{
		'O': true, // Obstacle
		'S': true, // Start
		'G': true, // Goal
		'F': true, // Free
		'R': true, // Road
		'M': true, // Mud
		'W': true, // Water
	}

	for i, row := range layout {
		if gridWidth == -1 {
			gridWidth = len(row)
		} else if len(row) != gridWidth {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent grid width at row %d: expected %d, got %d", i+1, gridWidth, len(row)))
		}

		for j, char := range row {
			if !validChars[char] {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character '%c' at position [%d,%d]", char, i+1, j+1))
			}
			switch char {
			case 'S':
				startCount++
			case 'G':
				goalCount++
			case 'O':
				obstacleCount++
			}
		}
	}

	if startCount != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Must have exactly 1 start (S) cell, got %d", startCount))
	}

	if goalCount != 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Must have exactly 1 goal (G) cell, got %d", goalCount))
	}

	// Connectivity validation - check the goal is reachable from the start
	if result.Valid {
		reachabilityResult := validateConnectivity(layout)
		if !reachabilityResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, reachabilityResult.Errors...)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", len(layout), gridWidth))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Obstacles: %d", obstacleCount))
	}

	return result
}

// validateConnectivity ensures the goal is reachable from the start using
// 4-directional movement over passable cells (anything but O). It returns an
// aggregated ValidationResult.
func validateConnectivity(layout []string) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if len(layout) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Cannot validate connectivity: empty layout")
		return result
	}

	height := len(layout)
	width := len(layout[0])

	// Find start and goal
	var start, goal []int

	for y := 0; y < height; y++ {
		for x := 0; x < width && x < len(layout[y]); x++ {
			switch layout[y][x] {
			case 'S':
				start = []int{x, y}
			case 'G':
				goal = []int{x, y}
			}
		}
	}

	if start == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "No start position found for connectivity test")
		return result
	}

	if goal == nil {
		result.Valid = false
		result.Errors = append(result.Errors, "No goal position found for connectivity test")
		return result
	}

	// Helper function to check if a cell is passable
	isPassable := func(x, y int) bool {
		if x < 0 || y < 0 || y >= height || x >= width || x >= len(layout[y]) {
			return false
		}
		return layout[y][x] != 'O'
	}

	// Flood fill from the start to find all reachable cells
	visited := make(map[string]bool)
	queue := [][]int{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		x, y := current[0], current[1]
		key := fmt.Sprintf("%d,%d", x, y)

		if visited[key] {
			continue
		}
		visited[key] = true

		// Check all 4 directions
		directions := [][]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
		for _, dir := range directions {
			nx, ny := x+dir[0], y+dir[1]
			nkey := fmt.Sprintf("%d,%d", nx, ny)

			if !visited[nkey] && isPassable(nx, ny) {
				queue = append(queue, []int{nx, ny})
			}
		}
	}

	goalKey := fmt.Sprintf("%d,%d", goal[0], goal[1])
	if !visited[goalKey] {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Connectivity failure: goal at (%d,%d) unreachable from start", goal[0], goal[1]))
	} else {
		result.Errors = append(result.Errors, "✓ Connectivity: goal reachable from start")
	}

	return result
}

// main scans ../assets/maps for *.txt files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	mapDir := "../assets/maps"
	if len(os.Args) > 1 {
		mapDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(mapDir, "*.txt"))
	if err != nil {
		fmt.Printf("Error finding map files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateMap(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All maps are valid!")
	} else {
		fmt.Println("❌ Some maps have errors")
		os.Exit(1)
	}
}
