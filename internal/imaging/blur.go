package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// GaussianBlur smooths g with a Gaussian kernel of the given radius. A
// non-positive radius returns an unmodified copy.
func GaussianBlur(g *image.Gray, radius float64) *image.Gray {
	if radius <= 0 {
		return CloneGray(g)
	}
	return CloneGray(blur.Gaussian(g, radius))
}
