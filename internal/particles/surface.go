package particles

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Surface is the drawing target a Loop renders into. Alpha is in [0, 1];
// callers never issue draws with alpha <= 0.
type Surface interface {
	Clear()
	FillCircle(center r2.Vec, radius float64, hue color.RGBA, alpha float64)
	StrokeLine(from, to r2.Vec, width float64, hue color.RGBA, alpha float64)
}
