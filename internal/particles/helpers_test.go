package particles

import (
	"image/color"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

var testHue = color.RGBA{R: 0, G: 217, B: 255, A: 255}

func testSettings() Settings {
	return Settings{
		Count:                  60,
		RadiusMin:              1,
		RadiusMax:              3,
		SpeedMax:               0.75,
		OpacityMin:             0.2,
		OpacityMax:             0.7,
		ConnectionThreshold:    100,
		ConnectionAlphaBase:    0.2,
		ConnectionAlphaFalloff: 500,
		LineWidth:              1,
		GridAbove:              200,
		Hue:                    testHue,
	}
}

func seeded(seed uint64) Source {
	return rand.New(rand.NewSource(seed))
}

// fixedField builds a field holding exactly the given particles.
func fixedField(t *testing.T, s Settings, width, height float64, ps ...Particle) *Field {
	t.Helper()
	s.Count = 0
	f := NewField(s, seeded(1), width, height)
	f.particles = append(f.particles, ps...)
	f.settings.Count = len(ps)
	return f
}

type drawOp struct {
	kind     string // "clear", "circle", "line"
	from, to r2.Vec
	size     float64 // radius or line width
	alpha    float64
	hue      color.RGBA
}

// recordingSurface keeps every draw call in order.
type recordingSurface struct {
	ops []drawOp
}

func (r *recordingSurface) Clear() {
	r.ops = append(r.ops, drawOp{kind: "clear"})
}

func (r *recordingSurface) FillCircle(center r2.Vec, radius float64, hue color.RGBA, alpha float64) {
	r.ops = append(r.ops, drawOp{kind: "circle", from: center, size: radius, hue: hue, alpha: alpha})
}

func (r *recordingSurface) StrokeLine(from, to r2.Vec, width float64, hue color.RGBA, alpha float64) {
	r.ops = append(r.ops, drawOp{kind: "line", from: from, to: to, size: width, hue: hue, alpha: alpha})
}

func (r *recordingSurface) count(kind string) int {
	n := 0
	for _, op := range r.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}
