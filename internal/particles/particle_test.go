package particles

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestParticleUpdate(t *testing.T) {
	bounds := r2.Vec{X: 800, Y: 600}

	tests := []struct {
		name    string
		pos     r2.Vec
		vel     r2.Vec
		wantPos r2.Vec
		wantVel r2.Vec
	}{
		{"Interior drift", r2.Vec{X: 400, Y: 300}, r2.Vec{X: 0.5, Y: -0.25}, r2.Vec{X: 400.5, Y: 299.75}, r2.Vec{X: 0.5, Y: -0.25}},
		{"Left edge", r2.Vec{X: 0, Y: 300}, r2.Vec{X: -0.5, Y: 0}, r2.Vec{X: 0.5, Y: 300}, r2.Vec{X: 0.5, Y: 0}},
		{"Right edge", r2.Vec{X: 800, Y: 300}, r2.Vec{X: 0.5, Y: 0}, r2.Vec{X: 799.5, Y: 300}, r2.Vec{X: -0.5, Y: 0}},
		{"Top edge", r2.Vec{X: 10, Y: 0.25}, r2.Vec{X: 0, Y: -0.5}, r2.Vec{X: 10, Y: 0.75}, r2.Vec{X: 0, Y: 0.5}},
		{"Bottom edge", r2.Vec{X: 10, Y: 599.75}, r2.Vec{X: 0, Y: 0.5}, r2.Vec{X: 10, Y: 599.25}, r2.Vec{X: 0, Y: -0.5}},
		{"Corner", r2.Vec{X: 0, Y: 600}, r2.Vec{X: -0.5, Y: 0.5}, r2.Vec{X: 0.5, Y: 599.5}, r2.Vec{X: 0.5, Y: -0.5}},
		{"Landing on edge", r2.Vec{X: 0.5, Y: 300}, r2.Vec{X: -0.5, Y: 0}, r2.Vec{X: 0, Y: 300}, r2.Vec{X: -0.5, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{Pos: tt.pos, Vel: tt.vel, Radius: 2, Opacity: 0.5}
			p.Update(bounds)
			if p.Pos != tt.wantPos {
				t.Errorf("Pos = %v, want %v", p.Pos, tt.wantPos)
			}
			if p.Vel != tt.wantVel {
				t.Errorf("Vel = %v, want %v", p.Vel, tt.wantVel)
			}
		})
	}
}

func TestParticleDriftStaysBounded(t *testing.T) {
	f := NewField(testSettings(), seeded(7), 320, 240)
	size := f.Size()

	for step := 0; step < 5000; step++ {
		f.Update()
		for i, p := range f.Particles() {
			if p.Pos.X < -p.Radius || p.Pos.X > size.X+p.Radius ||
				p.Pos.Y < -p.Radius || p.Pos.Y > size.Y+p.Radius {
				t.Fatalf("step %d: particle %d at %v escaped %v", step, i, p.Pos, size)
			}
		}
	}
}

func TestParticleSpeedIsConserved(t *testing.T) {
	f := NewField(testSettings(), seeded(11), 200, 150)

	speeds := make([]float64, f.Len())
	for i, p := range f.Particles() {
		speeds[i] = r2.Norm(p.Vel)
	}

	for step := 0; step < 2000; step++ {
		f.Update()
	}

	for i, p := range f.Particles() {
		if got := r2.Norm(p.Vel); math.Abs(got-speeds[i]) > 1e-12 {
			t.Errorf("particle %d speed changed from %g to %g", i, speeds[i], got)
		}
	}
}

func TestParticleRender(t *testing.T) {
	p := Particle{Pos: r2.Vec{X: 3, Y: 4}, Radius: 2.5, Opacity: 0.4}
	var s recordingSurface
	p.Render(&s, testHue)

	if len(s.ops) != 1 {
		t.Fatalf("got %d draw calls, want 1", len(s.ops))
	}
	op := s.ops[0]
	if op.kind != "circle" || op.from != p.Pos || op.size != 2.5 || op.alpha != 0.4 || op.hue != testHue {
		t.Errorf("unexpected draw %+v", op)
	}

	// render never mutates the particle
	if p.Pos != (r2.Vec{X: 3, Y: 4}) || p.Radius != 2.5 || p.Opacity != 0.4 {
		t.Errorf("particle mutated by Render: %+v", p)
	}
}

func TestZeroSizeSurfaceIsStable(t *testing.T) {
	f := NewField(testSettings(), seeded(3), 0, 0)
	for step := 0; step < 100; step++ {
		f.Update()
	}
	for i, p := range f.Particles() {
		if math.Abs(p.Pos.X) > p.Radius || math.Abs(p.Pos.Y) > p.Radius {
			t.Errorf("particle %d drifted to %v on a zero-size surface", i, p.Pos)
		}
	}
}
