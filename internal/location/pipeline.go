package location

import (
	"errors"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/iris-locator-mcp/internal/detection"
	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
)

// Result is the outcome of one pipeline run.
type Result struct {
	// Candidates are the detected circles, strongest first, in the pixel
	// coordinates of Gray.
	Candidates []detection.Circle `json:"candidates"`

	// Overlay is Gray with every candidate drawn in DefaultOverlayStyle.
	Overlay *image.NRGBA `json:"-"`

	// Gray is the grayscale image the pipeline ran on.
	Gray *image.Gray `json:"-"`

	Diagnostics Diagnostics `json:"diagnostics"`
}

// Diagnostics describes how a run went.
type Diagnostics struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id"`

	// Backend is the name of the backend that ran the image operations.
	Backend string `json:"backend"`

	// Threshold is the binarization level picked for the gradient image.
	Threshold uint8 `json:"threshold"`

	// GradientMean and GradientStdDev summarize the gradient histogram.
	GradientMean   float64 `json:"gradient_mean"`
	GradientStdDev float64 `json:"gradient_stddev"`

	// EdgePixels counts non-zero pixels handed to the circle search.
	EdgePixels int `json:"edge_pixels"`

	// Dropped counts circles removed during enumeration.
	Dropped int `json:"dropped"`

	ElapsedMS float64 `json:"elapsed_ms"`
}

// Locate runs the localization pipeline on src with p.
//
// Parameters:
//   - src: Eye image of any supported layout. It is normalized to grayscale
//     first and is never modified.
//   - p: Pipeline parameters, usually a preset from a PresetSet with
//     per-call overrides applied.
//
// Returns:
//   - *Result: Candidates in the order the circle search produced them, the
//     overlay drawn in DefaultOverlayStyle, the grayscale working image and
//     run diagnostics. An image without circles yields an empty, non-nil
//     candidate list.
//   - error: Non-nil only when the run could not start.
//
// The image operations run on the Active backend.
//
// # Errors
//
//   - Returns an error if src is nil
//   - Returns an error wrapping ErrInvalidParams if p does not validate
//   - Returns an error if the backend rejects the threshold policy
func Locate(src image.Image, p Params) (*Result, error) {
	if src == nil {
		return nil, errors.New("no source image")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	backend := Active()

	gray := imaging.CloneGray(imaging.ToGray(src))

	work := gray
	if p.BlurRadius > 0 {
		work = imaging.GaussianBlur(work, p.BlurRadius)
	}

	shape := p.KernelShape
	if shape == "" {
		shape = imaging.ShapeRect
	}
	gradient := backend.MorphGradient(work, p.KernelSize, shape)
	mean, stddev := imaging.HistogramStats(imaging.Histogram(gradient))

	binary, level, err := backend.Threshold(gradient, p.Threshold)
	if err != nil {
		return nil, fmt.Errorf("threshold failed: %w", err)
	}

	edges := binary
	if p.Canny != nil {
		edges = backend.Canny(binary, p.Canny.Low, p.Canny.High)
	}

	raw := backend.HoughCircles(edges, p.Hough())

	maxRadius := float64(p.MaxRadius)
	if p.MaxRadius <= 0 {
		maxRadius = float64(max(gray.Rect.Dx(), gray.Rect.Dy()))
	}
	candidates := Enumerate(raw, float64(p.MinRadius), maxRadius)

	return &Result{
		Candidates: candidates,
		Overlay:    Render(gray, candidates, DefaultOverlayStyle()),
		Gray:       gray,
		Diagnostics: Diagnostics{
			RunID:          uuid.NewString(),
			Backend:        backend.Name(),
			Threshold:      level,
			GradientMean:   mean,
			GradientStdDev: stddev,
			EdgePixels:     countEdges(edges),
			Dropped:        len(raw) - len(candidates),
			ElapsedMS:      float64(time.Since(start).Microseconds()) / 1000,
		},
	}, nil
}

// Enumerate walks raw circles in order and returns those that can be drawn.
// The first entry with a non-finite coordinate or radius ends the walk;
// entries before it are kept. Entries whose radius falls outside
// [minRadius, maxRadius] are skipped.
func Enumerate(raw []detection.Circle, minRadius, maxRadius float64) []detection.Circle {
	out := make([]detection.Circle, 0, len(raw))
	for _, c := range raw {
		if !finite(c.X) || !finite(c.Y) || !finite(c.Radius) {
			break
		}
		if c.Radius < minRadius || c.Radius > maxRadius {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Scale maps candidates found on a resized image back to the original by
// multiplying coordinates and radii by mult and adding offset.
func Scale(candidates []detection.Circle, mult float64, offset image.Point) []detection.Circle {
	out := make([]detection.Circle, len(candidates))
	for i, c := range candidates {
		c.X = c.X*mult + float64(offset.X)
		c.Y = c.Y*mult + float64(offset.Y)
		c.Radius *= mult
		out[i] = c
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func countEdges(g *image.Gray) int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
