package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/histogram"
	"gonum.org/v1/gonum/stat"
)

// ThresholdPolicy selects how a binarization level is picked from an
// image's histogram.
type ThresholdPolicy string

const (
	// ThresholdOtsu picks the level that maximizes the between-class
	// variance of the two resulting pixel populations. It suits bimodal
	// histograms.
	ThresholdOtsu ThresholdPolicy = "otsu"

	// ThresholdTriangle draws a line from the histogram peak to the far end
	// of its longer tail and picks the bin furthest below that line. It
	// suits histograms dominated by one large peak.
	ThresholdTriangle ThresholdPolicy = "triangle"
)

// Valid reports whether p names a known policy.
func (p ThresholdPolicy) Valid() bool {
	return p == ThresholdOtsu || p == ThresholdTriangle
}

// Class weights closer than this to 0 or 1 leave one side empty.
const otsuEpsilon = 1.19209290e-07

// Histogram returns the 256-bin intensity histogram of g.
func Histogram(g *image.Gray) []int {
	// A gray pixel v expands to RGBA{v, v, v, 255}, so the red channel
	// histogram is the intensity histogram.
	return histogram.NewRGBAHistogram(g).R.Bins
}

// HistogramStats returns the mean and standard deviation of the intensity
// distribution described by hist. Both are 0 when fewer than two samples
// are present.
func HistogramStats(hist []int) (mean, stddev float64) {
	levels := make([]float64, len(hist))
	weights := make([]float64, len(hist))
	var total float64
	for i, n := range hist {
		levels[i] = float64(i)
		weights[i] = float64(n)
		total += float64(n)
	}
	if total < 2 {
		return 0, 0
	}
	mean, stddev = stat.MeanStdDev(levels, weights)
	if math.IsNaN(stddev) {
		stddev = 0
	}
	return mean, stddev
}

// OtsuLevel returns the Otsu threshold for hist.
func OtsuLevel(hist []int) uint8 {
	var n, sum float64
	for i, c := range hist {
		n += float64(c)
		sum += float64(i) * float64(c)
	}
	if n == 0 {
		return 0
	}
	mu := sum / n

	var mu1, q1, maxSigma float64
	level := 0
	for i, c := range hist {
		p := float64(c) / n
		mu1 *= q1
		q1 += p
		q2 := 1 - q1
		if math.Min(q1, q2) < otsuEpsilon || math.Max(q1, q2) > 1-otsuEpsilon {
			continue
		}
		mu1 = (mu1 + float64(i)*p) / q1
		mu2 := (mu - q1*mu1) / q2
		sigma := q1 * q2 * (mu1 - mu2) * (mu1 - mu2)
		if sigma > maxSigma {
			maxSigma = sigma
			level = i
		}
	}
	return uint8(level)
}

// TriangleLevel returns the triangle threshold for hist.
func TriangleLevel(hist []int) uint8 {
	const bins = 256
	h := make([]int, bins)
	copy(h, hist)

	left, right := 0, 0
	for i := 0; i < bins; i++ {
		if h[i] > 0 {
			left = i
			break
		}
	}
	if left > 0 {
		left--
	}
	for i := bins - 1; i > 0; i-- {
		if h[i] > 0 {
			right = i
			break
		}
	}
	if right < bins-1 {
		right++
	}

	peak, peakAt := 0, 0
	for i := 0; i < bins; i++ {
		if h[i] > peak {
			peak = h[i]
			peakAt = i
		}
	}

	// Always walk the longer tail from the left.
	flipped := false
	if peakAt-left < right-peakAt {
		flipped = true
		for i, j := 0, bins-1; i < j; i, j = i+1, j-1 {
			h[i], h[j] = h[j], h[i]
		}
		left = bins - 1 - right
		peakAt = bins - 1 - peakAt
	}

	level := left
	a, b := peak, left-peakAt
	best := 0
	for i := left + 1; i <= peakAt; i++ {
		if d := a*i + b*h[i]; d > best {
			best = d
			level = i
		}
	}
	level--

	if flipped {
		level = bins - 1 - level
	}
	return uint8(clamp(level, 0, bins-1))
}

// AutoThreshold picks a level for g with policy and binarizes g with it.
func AutoThreshold(g *image.Gray, policy ThresholdPolicy) (*image.Gray, uint8, error) {
	hist := Histogram(g)

	var level uint8
	switch policy {
	case ThresholdOtsu:
		level = OtsuLevel(hist)
	case ThresholdTriangle:
		level = TriangleLevel(hist)
	default:
		return nil, 0, fmt.Errorf("unknown threshold policy: %q", policy)
	}
	return Binarize(g, level), level, nil
}

// Binarize maps pixels strictly above level to 255 and the rest to 0.
func Binarize(g *image.Gray, level uint8) *image.Gray {
	out := CloneGray(g)
	for i, v := range out.Pix {
		if v > level {
			out.Pix[i] = 255
		} else {
			out.Pix[i] = 0
		}
	}
	return out
}
