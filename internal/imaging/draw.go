package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a hex color such as "#FF0000" or "#f00". An empty or
// malformed string yields fallback.
func ParseColor(hex string, fallback color.NRGBA) color.NRGBA {
	if hex == "" {
		return fallback
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// DrawCircle strokes a circle of radius r centered on (cx, cy) into img.
//
// Pixels whose distance from the center lies within thickness/2 of r are
// painted, so a thickness of 2 paints a band three pixels wide on the axes.
// A non-positive thickness fills the disc instead. Anything outside img's
// bounds is clipped.
func DrawCircle(img *image.NRGBA, cx, cy, r, thickness int, c color.NRGBA) {
	if r < 0 {
		return
	}
	half := float64(thickness) / 2
	reach := r + thickness/2 + 1
	if thickness <= 0 {
		reach = r
	}

	area := image.Rect(cx-reach, cy-reach, cx+reach+1, cy+reach+1).Intersect(img.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			if thickness <= 0 {
				if d > float64(r) {
					continue
				}
			} else if math.Abs(d-float64(r)) > half {
				continue
			}
			img.SetNRGBA(x, y, c)
		}
	}
}
