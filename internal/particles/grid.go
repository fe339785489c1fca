package particles

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// grid buckets particle indices into square cells no smaller than the
// connection threshold, so every partner of a particle lies in its own or an
// adjacent cell. Coordinates outside the field are clamped into the border
// cells.
type grid struct {
	cell       float64
	cols, rows int
	cells      [][]int
}

// reset sizes the grid for n particles. Cells grow past the threshold when
// needed so the grid never holds more cells than particles.
func (g *grid) reset(size r2.Vec, threshold float64, n int) {
	cell := threshold
	if area := size.X * size.Y; n > 0 && area > 0 {
		cell = max(cell, math.Sqrt(area/float64(n)))
	}
	g.cell = cell
	g.cols = max(1, int(math.Ceil(size.X/cell)))
	g.rows = max(1, int(math.Ceil(size.Y/cell)))
	// ceil rounding can still overshoot n
	for n > 0 && g.cols*g.rows > n {
		g.cell *= 1.1
		g.cols = max(1, int(math.Ceil(size.X/g.cell)))
		g.rows = max(1, int(math.Ceil(size.Y/g.cell)))
	}

	cells := g.cols * g.rows
	if cap(g.cells) < cells {
		g.cells = make([][]int, cells)
	}
	g.cells = g.cells[:cells]
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func (g *grid) cellOf(p r2.Vec) (int, int) {
	cx := min(max(int(math.Floor(p.X/g.cell)), 0), g.cols-1)
	cy := min(max(int(math.Floor(p.Y/g.cell)), 0), g.rows-1)
	return cx, cy
}

func (g *grid) insert(idx int, p r2.Vec) {
	cx, cy := g.cellOf(p)
	k := cy*g.cols + cx
	g.cells[k] = append(g.cells[k], idx)
}

func (g *grid) at(cx, cy int) []int {
	if cx < 0 || cx >= g.cols || cy < 0 || cy >= g.rows {
		return nil
	}
	return g.cells[cy*g.cols+cx]
}
