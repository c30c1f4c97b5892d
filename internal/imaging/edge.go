package imaging

import (
	"image"
	"math"
)

// Default thresholds for the standalone edge preview.
const (
	DefaultEdgeLow  = 80
	DefaultEdgeHigh = 100
)

var (
	tan22 = math.Tan(22.5 * math.Pi / 180)
	tan67 = math.Tan(67.5 * math.Pi / 180)
)

// Sobel computes horizontal and vertical 3x3 Sobel derivatives of g.
//
// The returned slices are indexed y*width+x over g's bounds. Border pixels
// replicate their nearest neighbour, so a uniform image has zero gradient
// everywhere, including at the edges.
func Sobel(g *image.Gray) (dx, dy []int, width, height int) {
	src := CloneGray(g)
	width, height = src.Rect.Dx(), src.Rect.Dy()
	dx = make([]int, width*height)
	dy = make([]int, width*height)

	at := func(x, y int) int {
		return int(src.Pix[clamp(y, 0, height-1)*width+clamp(x, 0, width-1)])
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			dx[i] = (at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x-1, y) + at(x-1, y+1))
			dy[i] = (at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1)) -
				(at(x-1, y-1) + 2*at(x, y-1) + at(x+1, y-1))
		}
	}
	return dx, dy, width, height
}

// Canny produces a binary edge map (0 or 255) of g.
//
// Thresholds apply to the L1 gradient magnitude |dx|+|dy| of a 3x3 Sobel
// operator, so they live on the same scale as the common OpenCV defaults
// (e.g. 80/100 for a preview, 5/100 for a binarized eye). A reversed pair is
// swapped.
//
// Parameters:
//   - g: Grayscale source. It is not modified; any bounds are accepted.
//   - low: Magnitudes at or below this are never edges.
//   - high: Magnitudes above this always start an edge chain.
//
// Returns:
//   - *image.Gray: Zero-origin edge map of g's size, 255 on edges and 0
//     elsewhere.
//
// # Algorithm
//
//  1. Gradient computation: Sobel X and Y, L1 magnitude
//  2. Non-maximum suppression: keep a pixel only if it is a local maximum
//     along its quantized gradient direction (0, 45, 90 or 135 degrees)
//  3. Hysteresis: pixels above high are edges; pixels above low are edges
//     only when 8-connected to a chain that reaches a strong pixel
//
// No smoothing is applied; blur beforehand if the input is noisy.
func Canny(g *image.Gray, low, high float64) *image.Gray {
	if low > high {
		low, high = high, low
	}

	dx, dy, width, height := Sobel(g)
	out := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return out
	}

	mag := make([]int, width*height)
	for i := range mag {
		mag[i] = abs(dx[i]) + abs(dy[i])
	}
	magAt := func(x, y int) int {
		if x < 0 || y < 0 || x >= width || y >= height {
			return 0
		}
		return mag[y*width+x]
	}

	const (
		none = iota
		weak
		strong
	)
	state := make([]uint8, width*height)
	var stack []int

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			m := mag[i]
			if float64(m) <= low {
				continue
			}

			ax := float64(abs(dx[i]))
			ay := float64(abs(dy[i]))

			var keep bool
			switch {
			case ay <= ax*tan22:
				keep = m > magAt(x-1, y) && m >= magAt(x+1, y)
			case ay >= ax*tan67:
				keep = m > magAt(x, y-1) && m >= magAt(x, y+1)
			default:
				s := 1
				if (dx[i] < 0) != (dy[i] < 0) {
					s = -1
				}
				keep = m > magAt(x-s, y-1) && m > magAt(x+s, y+1)
			}
			if !keep {
				continue
			}

			if float64(m) > high {
				state[i] = strong
				out.Pix[i] = 255
				stack = append(stack, i)
			} else {
				state[i] = weak
			}
		}
	}

	// Grow strong edges through connected weak pixels.
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%width, i/width
		for ny := y - 1; ny <= y+1; ny++ {
			for nx := x - 1; nx <= x+1; nx++ {
				if nx < 0 || ny < 0 || nx >= width || ny >= height {
					continue
				}
				j := ny*width + nx
				if state[j] == weak && out.Pix[j] == 0 {
					out.Pix[j] = 255
					stack = append(stack, j)
				}
			}
		}
	}

	return out
}

// EdgeDetect normalizes img to grayscale, runs Canny and returns the edge
// map as a display-ready, base64-encoded PNG.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - thresholdLow, thresholdHigh: Canny thresholds. DefaultEdgeLow and
//     DefaultEdgeHigh give the standard preview.
//
// Returns:
//   - *ImageResult: The edge map as base64 PNG.
//   - error: Non-nil if PNG encoding fails.
//
// The edge map itself is single-channel; it is expanded to four channels
// only for display, which is why the encoded result goes through ToDisplay.
func EdgeDetect(img image.Image, thresholdLow, thresholdHigh float64) (*ImageResult, error) {
	edges := Canny(CloneGray(img), thresholdLow, thresholdHigh)
	return EncodeImage(ToDisplay(edges))
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
