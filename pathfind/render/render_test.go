package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/pvera/gridpath/pathfind/grid"
	"github.com/pvera/gridpath/pathfind/mapstore"
	"github.com/pvera/gridpath/pathfind/search"
)

func mustGrid(t *testing.T, lines []string) *grid.Grid {
	t.Helper()

	g, err := mapstore.Parse(lines)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return g
}

func TestASCIIBareMap(t *testing.T) {
	g := mustGrid(t, []string{"OOOOO", "OSFGO", "OOOOO"})

	got := ASCII(g, Overlay{})
	want := "OOOOO\nOSFGO\nOOOOO"
	if got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestASCIIPathOverlay(t *testing.T) {
	g := mustGrid(t, []string{"OOOOO", "OSFGO", "OOOOO"})

	res, err := search.BFS(g, search.Options{})
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}

	lines := ASCIILines(g, Overlay{Path: res.Path, Trace: res.Trace})
	// The intermediate cell is on the path; start and goal keep their markers.
	if lines[1] != "OS*GO" {
		t.Errorf("Expected middle row 'OS*GO', got %q", lines[1])
	}
}

func TestASCIITraceOverlay(t *testing.T) {
	g := mustGrid(t, []string{
		"SFG",
		"FFF",
	})

	res, err := search.BFS(g, search.Options{})
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}

	lines := ASCIILines(g, Overlay{Path: res.Path, Trace: res.Trace})

	// Path cells must show '*' and never '+', even though every path cell is
	// also in the trace.
	for _, s := range res.Path {
		if s == g.Start() || s == g.Goal() {
			continue
		}
		if lines[s.Row][s.Col] != '*' {
			t.Errorf("Path cell %v rendered as %q", s, lines[s.Row][s.Col])
		}
	}
}

func TestPNGDimensionsAndColors(t *testing.T) {
	g := mustGrid(t, []string{"OOOOO", "OSFGO", "OOOOO"})

	res, err := search.BFS(g, search.Options{})
	if err != nil {
		t.Fatalf("BFS failed: %v", err)
	}

	var buf bytes.Buffer
	if err := PNG(&buf, g, Overlay{Path: res.Path}); err != nil {
		t.Fatalf("PNG failed: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("Decoding PNG failed: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != g.Width()*CellSize || bounds.Dy() != g.Height()*CellSize {
		t.Errorf("Expected %dx%d image, got %dx%d",
			g.Width()*CellSize, g.Height()*CellSize, bounds.Dx(), bounds.Dy())
	}

	// Sample the center of a few cells.
	sample := func(row, col int) (r, gr, b uint32) {
		r, gr, b, _ = img.At(col*CellSize+CellSize/2, row*CellSize+CellSize/2).RGBA()
		return r >> 8, gr >> 8, b >> 8
	}

	if r, gr, b := sample(0, 0); r != uint32(colorObstacle.R) || gr != uint32(colorObstacle.G) || b != uint32(colorObstacle.B) {
		t.Errorf("Obstacle cell rendered as (%d,%d,%d)", r, gr, b)
	}
	if r, gr, b := sample(1, 2); r != uint32(colorPath.R) || gr != uint32(colorPath.G) || b != uint32(colorPath.B) {
		t.Errorf("Path cell rendered as (%d,%d,%d)", r, gr, b)
	}
	if r, gr, b := sample(1, 1); r != uint32(colorStart.R) || gr != uint32(colorStart.G) || b != uint32(colorStart.B) {
		t.Errorf("Start cell rendered as (%d,%d,%d)", r, gr, b)
	}
}
