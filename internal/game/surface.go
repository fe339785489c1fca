package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/spatial/r2"
)

// screenSurface draws onto the ebiten screen image for one frame.
type screenSurface struct {
	img        *ebiten.Image
	background color.RGBA
}

func (s screenSurface) Clear() {
	s.img.Fill(s.background)
}

func (s screenSurface) FillCircle(center r2.Vec, radius float64, hue color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.DrawFilledCircle(s.img, float32(center.X), float32(center.Y), float32(radius), withAlpha(hue, alpha), true)
}

func (s screenSurface) StrokeLine(from, to r2.Vec, width float64, hue color.RGBA, alpha float64) {
	if alpha <= 0 {
		return
	}
	vector.StrokeLine(s.img, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), withAlpha(hue, alpha), true)
}
