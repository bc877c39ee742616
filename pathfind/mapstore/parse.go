package mapstore

import (
	"fmt"
	"strings"

	"github.com/pvera/gridpath/pathfind/grid"
)

// Parse builds a grid from map-file lines. Blank lines are dropped; the
// remaining lines must be equally long and contain exactly one 'S' and one
// 'G'. Validation failures wrap grid.ErrInvalidGrid.
func Parse(lines []string) (*grid.Grid, error) {
	rows := make([][]grid.CellType, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := make([]grid.CellType, 0, len(line))
		for _, r := range line {
			row = append(row, grid.ParseCell(r))
		}
		rows = append(rows, row)
	}

	g, err := grid.New(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}
	return g, nil
}

// ParseText is Parse over a whole file's contents.
func ParseText(data string) (*grid.Grid, error) {
	return Parse(strings.Split(data, "\n"))
}
