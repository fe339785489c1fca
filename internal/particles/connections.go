package particles

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Connection is a pair of particles closer than the connection threshold.
// I < J always holds.
type Connection struct {
	I, J     int
	Distance float64
	Alpha    float64
}

// EachConnection calls fn once for every unordered pair of particles closer
// than the connection threshold. Visiting order is unspecified.
func (f *Field) EachConnection(fn func(Connection)) {
	if f.settings.GridAbove > 0 && len(f.particles) > f.settings.GridAbove {
		f.eachGridPair(fn)
		return
	}
	f.eachPair(fn)
}

// RenderConnections strokes every connection with a positive alpha and
// returns how many lines were drawn.
func (f *Field) RenderConnections(s Surface) int {
	drawn := 0
	f.EachConnection(func(c Connection) {
		if c.Alpha <= 0 {
			return
		}
		s.StrokeLine(f.particles[c.I].Pos, f.particles[c.J].Pos, f.settings.LineWidth, f.settings.Hue, c.Alpha)
		drawn++
	})
	return drawn
}

// eachPair is the all-pairs scan. Squared distances are compared first so the
// square root only runs for pairs that connect.
func (f *Field) eachPair(fn func(Connection)) {
	ps := f.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			f.visit(i, j, fn)
		}
	}
}

func (f *Field) eachGridPair(fn func(Connection)) {
	g := &f.grid
	g.reset(f.size, f.settings.ConnectionThreshold, len(f.particles))
	for i := range f.particles {
		g.insert(i, f.particles[i].Pos)
	}

	for i := range f.particles {
		cx, cy := g.cellOf(f.particles[i].Pos)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				for _, j := range g.at(cx+dx, cy+dy) {
					if j > i {
						f.visit(i, j, fn)
					}
				}
			}
		}
	}
}

func (f *Field) visit(i, j int, fn func(Connection)) {
	limit := f.settings.ConnectionThreshold
	d := r2.Sub(f.particles[i].Pos, f.particles[j].Pos)
	d2 := d.X*d.X + d.Y*d.Y
	if d2 >= limit*limit {
		return
	}
	dist := math.Sqrt(d2)
	fn(Connection{I: i, J: j, Distance: dist, Alpha: f.settings.ConnectionAlpha(dist)})
}
