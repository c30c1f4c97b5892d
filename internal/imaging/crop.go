package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Crop extracts the region (x1,y1)-(x2,y2) of img, (x2,y2) exclusive. The
// result is a new image whose bounds start at (0,0).
func Crop(img image.Image, x1, y1, x2, y2 int) (image.Image, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	// Single-channel images keep their depth so the normalizer can pass
	// them straight through.
	if g, ok := img.(*image.Gray); ok {
		return CloneGray(g.SubImage(image.Rect(x1, y1, x2, y2))), nil
	}
	return imaging.Crop(img, image.Rect(x1, y1, x2, y2)), nil
}

// NamedRegion resolves a region name to a rectangle inside bounds. Besides
// quadrants and halves, "left-eye"/"right-eye" select the left or right half
// of a two-eye capture.
func NamedRegion(bounds image.Rectangle, region string) (image.Rectangle, error) {
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half", "left-eye":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half", "right-eye":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		// Center 50% of the image
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return image.Rectangle{}, fmt.Errorf("unknown region: %s", region)
	}

	return image.Rect(x1, y1, x2, y2).Add(bounds.Min), nil
}

// Downscale shrinks img so that its height is at most maxHeight, keeping the
// aspect ratio. It returns the (possibly unchanged) image and the factor that
// maps coordinates in the result back to img.
//
// Hough voting cost grows with pixel count, so large captures are worth
// shrinking before localization.
func Downscale(img image.Image, maxHeight int) (image.Image, float64) {
	h := img.Bounds().Dy()
	if maxHeight <= 0 || h <= maxHeight {
		return img, 1
	}

	scaled := imaging.Resize(img, 0, maxHeight, imaging.Linear)
	return scaled, float64(h) / float64(scaled.Bounds().Dy())
}
