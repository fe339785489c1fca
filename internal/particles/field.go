package particles

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Settings controls population and the connection pass.
type Settings struct {
	Count int

	RadiusMin, RadiusMax   float64
	SpeedMax               float64
	OpacityMin, OpacityMax float64

	ConnectionThreshold    float64
	ConnectionAlphaBase    float64
	ConnectionAlphaFalloff float64
	LineWidth              float64
	// GridAbove switches the connection pass to the uniform grid once the
	// particle count exceeds it. Zero or negative keeps the all-pairs scan.
	GridAbove int

	Hue color.RGBA
}

// ConnectionAlpha is the stroke alpha for two particles d apart. It falls
// linearly with distance and may go negative; negative means no stroke.
func (s Settings) ConnectionAlpha(d float64) float64 {
	return s.ConnectionAlphaBase - d/s.ConnectionAlphaFalloff
}

// Field owns the particle population and the surface dimensions it lives in.
// It is not safe for concurrent use; Loop serializes access.
type Field struct {
	settings  Settings
	src       Source
	size      r2.Vec
	particles []Particle
	grid      grid
}

// NewField creates a field of the given size populated to the target count.
func NewField(settings Settings, src Source, width, height float64) *Field {
	f := &Field{
		settings: settings,
		src:      src,
		size:     r2.Vec{X: math.Max(width, 0), Y: math.Max(height, 0)},
	}
	f.Populate(settings.Count)
	return f
}

func (f *Field) Settings() Settings { return f.settings }
func (f *Field) Size() r2.Vec       { return f.size }
func (f *Field) Len() int           { return len(f.particles) }

// Particles returns the live population. Callers must not retain or modify it.
func (f *Field) Particles() []Particle { return f.particles }

// Populate appends count new particles placed uniformly within the field.
func (f *Field) Populate(count int) {
	f.particles = f.spawn(f.particles, count)
}

// Resize discards the population and repopulates to the target count at the
// new size. Positions are not rescaled.
func (f *Field) Resize(width, height float64) {
	f.size = r2.Vec{X: math.Max(width, 0), Y: math.Max(height, 0)}
	f.particles = f.spawn(make([]Particle, 0, f.settings.Count), f.settings.Count)
}

// Update advances every particle one step.
func (f *Field) Update() {
	for i := range f.particles {
		f.particles[i].Update(f.size)
	}
}

func (f *Field) spawn(dst []Particle, count int) []Particle {
	s := f.settings
	for i := 0; i < count; i++ {
		dst = append(dst, Particle{
			Pos: r2.Vec{
				X: f.src.Float64() * f.size.X,
				Y: f.src.Float64() * f.size.Y,
			},
			Radius: between(f.src, s.RadiusMin, s.RadiusMax),
			Vel: r2.Vec{
				X: between(f.src, -s.SpeedMax, s.SpeedMax),
				Y: between(f.src, -s.SpeedMax, s.SpeedMax),
			},
			Opacity: between(f.src, s.OpacityMin, s.OpacityMax),
		})
	}
	return dst
}
