package game

import (
	"fmt"
	"image/color"
	"time"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha returns hue with a non-premultiplied alpha in [0, 1].
func withAlpha(hue color.RGBA, alpha float64) color.NRGBA {
	return color.NRGBA{R: hue.R, G: hue.G, B: hue.B, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
