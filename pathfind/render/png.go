package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/pvera/gridpath/pathfind/grid"
)

// CellSize is the pixel width and height of one grid cell in PNG output.
const CellSize = 16

var (
	colorFree     = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf5, A: 0xff}
	colorObstacle = color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	colorStart    = color.RGBA{R: 0x2e, G: 0xb8, B: 0x4c, A: 0xff}
	colorGoal     = color.RGBA{R: 0xd9, G: 0x3a, B: 0x3a, A: 0xff}
	colorRoad     = color.RGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	colorMud      = color.RGBA{R: 0x9b, G: 0x6b, B: 0x3c, A: 0xff}
	colorWater    = color.RGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 0xff}
	colorPath     = color.RGBA{R: 0xf0, G: 0xc0, B: 0x30, A: 0xff}
	colorTrace    = color.RGBA{R: 0xbf, G: 0xd8, B: 0xf2, A: 0xff}
)

func cellColor(c grid.CellType) color.RGBA {
	switch c {
	case grid.Obstacle:
		return colorObstacle
	case grid.Start:
		return colorStart
	case grid.Goal:
		return colorGoal
	case grid.Road:
		return colorRoad
	case grid.Mud:
		return colorMud
	case grid.Water:
		return colorWater
	default:
		return colorFree
	}
}

// PNG draws the grid with the overlay and encodes it to w. Each cell becomes
// a CellSize square; start and goal keep their colors even when on the path.
func PNG(w io.Writer, g *grid.Grid, o Overlay) error {
	img := image.NewRGBA(image.Rect(0, 0, g.Width()*CellSize, g.Height()*CellSize))

	fill := make([][]color.RGBA, g.Height())
	for r, row := range g.Cells() {
		fill[r] = make([]color.RGBA, g.Width())
		for c, cell := range row {
			fill[r][c] = cellColor(cell)
		}
	}

	paint := func(states []grid.State, col color.RGBA) {
		for _, s := range states {
			if s == g.Start() || s == g.Goal() {
				continue
			}
			fill[s.Row][s.Col] = col
		}
	}
	paint(o.Trace, colorTrace)
	paint(o.Path, colorPath)

	for r := 0; r < g.Height(); r++ {
		for c := 0; c < g.Width(); c++ {
			for y := r * CellSize; y < (r+1)*CellSize; y++ {
				for x := c * CellSize; x < (c+1)*CellSize; x++ {
					img.SetRGBA(x, y, fill[r][c])
				}
			}
		}
	}

	return png.Encode(w, img)
}
