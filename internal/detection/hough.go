package detection

import (
	"image"
	"math"
	"sort"

	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
)

// Circle is a circle found by HoughCircles.
type Circle struct {
	// X and Y locate the center in pixels of the searched image. They fall
	// on accumulator cell centers, so with DP 2 they are multiples of 1.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Radius is the mean distance of the supporting edge pixels.
	Radius float64 `json:"radius"`

	// Votes is the accumulator count at the center.
	Votes int `json:"votes"`

	// Support is the number of edge pixels averaged into Radius.
	Support int `json:"support"`
}

// CirclesResult contains all circles found in an image.
type CirclesResult struct {
	// Circles is sorted by accumulator votes, highest first.
	Circles []Circle `json:"circles"`

	// Count is the number of circles found.
	Count int `json:"count"`
}

// HoughParams tunes HoughCircles. The fields follow the conventions of
// OpenCV's HOUGH_GRADIENT method so that values tuned there carry over.
type HoughParams struct {
	// DP is the inverse accumulator resolution: 2 means the accumulator has
	// half the width and height of the image. Values below 1 mean 1.
	DP float64

	// MinDist is the minimum distance between accepted centers. Zero means
	// an eighth of the image height.
	MinDist float64

	// Param1 is the upper Canny threshold applied internally. The lower one
	// is half of it.
	Param1 float64

	// Param2 is the vote threshold. A center needs more than Param2
	// accumulator votes and more than Param2 edge pixels at its radius.
	Param2 float64

	// MinRadius and MaxRadius bound the radius search. A MaxRadius of zero
	// or less means the larger image dimension.
	MinRadius int
	MaxRadius int

	// BandWidth widens the radius estimate to a band of this many pixels
	// around the best radius bin. Neighbouring bins holding at least half as
	// many edge pixels are pooled into the mean, so the inner and outer edge
	// of a thick boundary band average out to its middle. Zero uses the best
	// bin alone.
	BandWidth float64
}

type edgePoint struct {
	x, y int
}

type centerCandidate struct {
	votes  int
	ax, ay int
}

// HoughCircles finds circles in src with the gradient Hough transform.
//
// Parameters:
//   - src: Grayscale image to search. It is not modified; any bounds are
//     accepted and results are relative to src's top-left corner.
//   - p: Search settings. See HoughParams for the meaning and defaults of
//     each field.
//
// Returns:
//   - []Circle: Accepted circles in descending vote order. Nil when nothing
//     is found, the image is empty, or MinRadius exceeds MaxRadius.
//
// # Algorithm
//
//  1. Edges: Canny at Param1/2 and Param1, plus Sobel gradients
//  2. Voting: every edge pixel walks along its gradient in both directions
//     from MinRadius to MaxRadius, adding one vote per accumulator cell
//     it crosses
//  3. Centers: cells with more than Param2 votes that are local maxima of
//     their 4-neighbourhood, strongest first
//  4. Radius: for each center at least MinDist from every accepted one,
//     edge distances are binned and the densest bin (count over radius)
//     gives the radius if it holds more than Param2 pixels; with a
//     BandWidth, strong neighbouring bins are pooled into the mean
//
// The result is deterministic: ties keep raster order.
func HoughCircles(src *image.Gray, p HoughParams) []Circle {
	g := imaging.CloneGray(src)
	w, h := g.Rect.Dx(), g.Rect.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	dp := math.Max(p.DP, 1)
	minR := float64(max(p.MinRadius, 0))
	maxR := float64(p.MaxRadius)
	if p.MaxRadius <= 0 {
		maxR = float64(max(w, h))
	}
	if minR > maxR {
		return nil
	}
	minDist := p.MinDist
	if minDist <= 0 {
		minDist = float64(h) / 8
	}

	edges := imaging.Canny(g, math.Max(1, p.Param1/2), p.Param1)
	dx, dy, _, _ := imaging.Sobel(g)

	idp := 1 / dp
	cols := int(math.Ceil(float64(w) * idp))
	rows := int(math.Ceil(float64(h) * idp))
	acc := make([]int, cols*rows)

	var points []edgePoint
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if edges.Pix[i] == 0 {
				continue
			}
			vx, vy := float64(dx[i]), float64(dy[i])
			if vx == 0 && vy == 0 {
				continue
			}
			mag := math.Hypot(vx, vy)
			ux, uy := vx/mag, vy/mag
			points = append(points, edgePoint{x, y})

			for _, sgn := range [2]float64{1, -1} {
				last := -1
				for r := minR; r <= maxR; r += dp * 0.5 {
					ax := int(math.Floor((float64(x) + 0.5 + sgn*r*ux) * idp))
					ay := int(math.Floor((float64(y) + 0.5 + sgn*r*uy) * idp))
					if ax < 0 || ay < 0 || ax >= cols || ay >= rows {
						break
					}
					if cell := ay*cols + ax; cell != last {
						acc[cell]++
						last = cell
					}
				}
			}
		}
	}

	cell := func(x, y int) int {
		if x < 0 || y < 0 || x >= cols || y >= rows {
			return 0
		}
		return acc[y*cols+x]
	}

	var centers []centerCandidate
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := acc[y*cols+x]
			if float64(v) <= p.Param2 {
				continue
			}
			if v > cell(x-1, y) && v >= cell(x+1, y) && v > cell(x, y-1) && v >= cell(x, y+1) {
				centers = append(centers, centerCandidate{votes: v, ax: x, ay: y})
			}
		}
	}
	sort.SliceStable(centers, func(i, j int) bool {
		return centers[i].votes > centers[j].votes
	})

	binWidth := math.Max(dp, 1)
	bins := int((maxR-minR)/binWidth) + 1
	counts := make([]int, bins)
	sums := make([]float64, bins)

	var circles []Circle
	minDist2 := minDist * minDist
	for _, c := range centers {
		cx := (float64(c.ax) + 0.5) * dp
		cy := (float64(c.ay) + 0.5) * dp
		if tooClose(circles, cx, cy, minDist2) {
			continue
		}

		clear(counts)
		clear(sums)
		found := false
		for _, pt := range points {
			d := math.Hypot(float64(pt.x)+0.5-cx, float64(pt.y)+0.5-cy)
			if d < minR || d > maxR {
				continue
			}
			b := min(int((d-minR)/binWidth), bins-1)
			counts[b]++
			sums[b] += d
			found = true
		}
		if !found {
			continue
		}

		best, bestScore := -1, 0.0
		for b, n := range counts {
			if n == 0 {
				continue
			}
			score := float64(n) / math.Max(sums[b]/float64(n), 1)
			if score > bestScore {
				best, bestScore = b, score
			}
		}
		if best < 0 || float64(counts[best]) <= p.Param2 {
			continue
		}

		n, sum := counts[best], sums[best]
		if p.BandWidth > 0 {
			reach := int(math.Ceil(p.BandWidth / binWidth))
			for b := max(0, best-reach); b < min(bins, best+reach+1); b++ {
				if b != best && 2*counts[b] >= counts[best] {
					n += counts[b]
					sum += sums[b]
				}
			}
		}

		circles = append(circles, Circle{
			X:       cx,
			Y:       cy,
			Radius:  sum / float64(n),
			Votes:   c.votes,
			Support: n,
		})
	}
	return circles
}

// DetectCircles normalizes img to grayscale and runs HoughCircles on it.
func DetectCircles(img image.Image, p HoughParams) *CirclesResult {
	circles := HoughCircles(imaging.CloneGray(img), p)
	if circles == nil {
		circles = []Circle{}
	}
	return &CirclesResult{Circles: circles, Count: len(circles)}
}

func tooClose(circles []Circle, x, y, minDist2 float64) bool {
	for _, c := range circles {
		dx, dy := c.X-x, c.Y-y
		if dx*dx+dy*dy < minDist2 {
			return true
		}
	}
	return false
}
