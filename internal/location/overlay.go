package location

import (
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/iris-locator-mcp/internal/detection"
	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
)

// OverlayStyle controls how Render draws candidates.
type OverlayStyle struct {
	// BoundaryColor and MarkerColor are hex colors such as "#FF0000".
	BoundaryColor string `json:"boundary_color"`
	MarkerColor   string `json:"marker_color"`

	// Thickness is the stroke width of both circles. Negative fills them.
	Thickness int `json:"thickness"`

	// MarkerRadius is the radius of the center marker.
	MarkerRadius int `json:"marker_radius"`
}

var (
	defaultBoundary = color.NRGBA{R: 255, A: 255}
	defaultMarker   = color.NRGBA{R: 255, G: 255, A: 255}
)

// DefaultOverlayStyle draws a red boundary and a yellow center marker of
// radius 3, both 2 pixels thick.
func DefaultOverlayStyle() OverlayStyle {
	return OverlayStyle{
		BoundaryColor: "#FF0000",
		MarkerColor:   "#FFFF00",
		Thickness:     2,
		MarkerRadius:  3,
	}
}

// Render copies gray into a display-ready image and draws each candidate on
// it: the boundary circle, then a small marker at the center. Centers and
// radii are rounded to whole pixels. Zero-valued style fields take their
// DefaultOverlayStyle value, and unparseable colors fall back to red and
// yellow.
func Render(gray image.Image, candidates []detection.Circle, style OverlayStyle) *image.NRGBA {
	def := DefaultOverlayStyle()
	if style.Thickness == 0 {
		style.Thickness = def.Thickness
	}
	if style.MarkerRadius == 0 {
		style.MarkerRadius = def.MarkerRadius
	}
	boundary := imaging.ParseColor(style.BoundaryColor, defaultBoundary)
	marker := imaging.ParseColor(style.MarkerColor, defaultMarker)

	out := imaging.ToDisplay(gray)
	for _, c := range candidates {
		cx := int(math.Round(c.X))
		cy := int(math.Round(c.Y))
		imaging.DrawCircle(out, cx, cy, int(math.Round(c.Radius)), style.Thickness, boundary)
		imaging.DrawCircle(out, cx, cy, style.MarkerRadius, style.Thickness, marker)
	}
	return out
}
