package particles

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

type Particle struct {
	Pos     r2.Vec
	Vel     r2.Vec
	Radius  float64
	Opacity float64
}

// Update moves the particle one step inside bounds. A velocity component is
// reflected when the step would carry its coordinate outside [0, bound]; the
// position is never clamped.
func (p *Particle) Update(bounds r2.Vec) {
	p.Vel.X = reflect(p.Pos.X, p.Vel.X, bounds.X)
	p.Vel.Y = reflect(p.Pos.Y, p.Vel.Y, bounds.Y)
	p.Pos = r2.Add(p.Pos, p.Vel)
}

func (p *Particle) Render(s Surface, hue color.RGBA) {
	if p.Opacity <= 0 {
		return
	}
	s.FillCircle(p.Pos, p.Radius, hue, p.Opacity)
}

func reflect(pos, vel, bound float64) float64 {
	next := pos + vel
	if next < 0 || next > bound {
		return -vel
	}
	return vel
}
