package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	glyphParticle      = '•'
	glyphParticleLarge = '●'
	glyphHorizontal    = '─'
	glyphVertical      = '│'
	glyphRising        = '╱'
	glyphFalling       = '╲'
)

type cell struct {
	r, g, b  float64 // composited over the background, 0-255
	glyph    rune
	particle bool
}

// Canvas rasterizes particle draws into terminal cells. One cell covers
// cellW x cellH field units, so the field keeps pixel-like proportions.
type Canvas struct {
	cols, rows   int
	cellW, cellH float64
	background   color.RGBA
	cells        []cell
}

func NewCanvas(cols, rows int, cellW, cellH float64, background color.RGBA) *Canvas {
	c := &Canvas{cellW: cellW, cellH: cellH, background: background}
	c.Resize(cols, rows)
	return c
}

func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 0), max(rows, 0)
	c.cells = make([]cell, c.cols*c.rows)
	c.Clear()
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

// FieldSize is the canvas extent in field units.
func (c *Canvas) FieldSize() (int, int) {
	return fieldSize(c.cols, c.rows, c.cellW, c.cellH)
}

func fieldSize(cols, rows int, cellW, cellH float64) (int, int) {
	return int(float64(cols) * cellW), int(float64(rows) * cellH)
}

func (c *Canvas) Clear() {
	bg := c.background
	for i := range c.cells {
		c.cells[i] = cell{r: float64(bg.R), g: float64(bg.G), b: float64(bg.B)}
	}
}

func (c *Canvas) FillCircle(center r2.Vec, radius float64, hue color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	x, y := c.cellOf(center)
	cl := c.at(x, y)
	if cl == nil {
		return
	}
	cl.blend(hue, alpha)
	cl.particle = true
	cl.glyph = glyphParticle
	if radius >= 2 {
		cl.glyph = glyphParticleLarge
	}
}

// StrokeLine walks the cells between the endpoints. Cells holding a particle
// keep their particle glyph.
func (c *Canvas) StrokeLine(from, to r2.Vec, width float64, hue color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	fx, fy := from.X/c.cellW, from.Y/c.cellH
	dx, dy := to.X/c.cellW-fx, to.Y/c.cellH-fy
	glyph := lineGlyph(dx, dy)

	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	prevX, prevY := -1, -1
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x, y := int(math.Floor(fx+dx*t)), int(math.Floor(fy+dy*t))
		if x == prevX && y == prevY {
			continue
		}
		prevX, prevY = x, y

		cl := c.at(x, y)
		if cl == nil {
			continue
		}
		cl.blend(hue, alpha)
		if !cl.particle {
			cl.glyph = glyph
		}
	}
}

// Flush copies the canvas to the screen and shows it.
func (c *Canvas) Flush(screen tcell.Screen) {
	bg := tcell.NewRGBColor(int32(c.background.R), int32(c.background.G), int32(c.background.B))
	base := tcell.StyleDefault.Background(bg)

	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			cl := &c.cells[y*c.cols+x]
			if cl.glyph == 0 {
				screen.SetContent(x, y, ' ', nil, base)
				continue
			}
			fg := tcell.NewRGBColor(int32(cl.r+0.5), int32(cl.g+0.5), int32(cl.b+0.5))
			screen.SetContent(x, y, cl.glyph, nil, base.Foreground(fg))
		}
	}
	screen.Show()
}

func (c *Canvas) cellOf(p r2.Vec) (int, int) {
	return int(math.Floor(p.X / c.cellW)), int(math.Floor(p.Y / c.cellH))
}

func (c *Canvas) at(x, y int) *cell {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return nil
	}
	return &c.cells[y*c.cols+x]
}

// blend composites hue over the cell colour with source-over alpha.
func (cl *cell) blend(hue color.RGBA, alpha float64) {
	a := math.Min(alpha, 1)
	cl.r = cl.r*(1-a) + float64(hue.R)*a
	cl.g = cl.g*(1-a) + float64(hue.G)*a
	cl.b = cl.b*(1-a) + float64(hue.B)*a
}

// lineGlyph picks a box-drawing glyph from the direction in cell space.
// Screen y grows downward.
func lineGlyph(dx, dy float64) rune {
	ax, ay := math.Abs(dx), math.Abs(dy)
	switch {
	case ay <= ax*0.4:
		return glyphHorizontal
	case ax <= ay*0.4:
		return glyphVertical
	case (dx > 0) == (dy > 0):
		return glyphFalling
	default:
		return glyphRising
	}
}
