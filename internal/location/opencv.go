//go:build opencv

package location

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/iris-locator-mcp/internal/detection"
	"github.com/ironsheep/iris-locator-mcp/internal/imaging"
)

// OpenCVBackend is the name of the gocv backend.
const OpenCVBackend = "opencv"

func init() {
	Register(OpenCVBackend, func() (Backend, error) { return opencvBackend{}, nil })
}

// opencvBackend delegates to OpenCV through gocv. Results follow OpenCV's
// own border handling, so they can differ from the native backend by a
// pixel or two.
type opencvBackend struct{}

func (opencvBackend) Name() string { return OpenCVBackend }

func (opencvBackend) MorphGradient(g *image.Gray, size int, shape imaging.StructuringShape) *image.Gray {
	if size < 1 {
		size = 1
	}
	src, err := gocv.ImageGrayToMatGray(imaging.CloneGray(g))
	if err != nil {
		return imaging.MorphGradient(g, size, shape)
	}
	defer src.Close()

	morphShape := gocv.MorphRect
	if shape == imaging.ShapeEllipse {
		morphShape = gocv.MorphEllipse
	}
	kernel := gocv.GetStructuringElement(morphShape, image.Point{X: size, Y: size})
	defer kernel.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	if err := gocv.MorphologyEx(src, &dst, gocv.MorphGradient, kernel); err != nil {
		return imaging.MorphGradient(g, size, shape)
	}
	return matToGray(dst, g)
}

func (opencvBackend) Threshold(g *image.Gray, policy imaging.ThresholdPolicy) (*image.Gray, uint8, error) {
	var mode gocv.ThresholdType
	switch policy {
	case imaging.ThresholdOtsu:
		mode = gocv.ThresholdOtsu
	case imaging.ThresholdTriangle:
		mode = gocv.ThresholdTriangle
	default:
		return nil, 0, fmt.Errorf("unknown threshold policy: %q", policy)
	}

	src, err := gocv.ImageGrayToMatGray(imaging.CloneGray(g))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to convert image: %w", err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	level := gocv.Threshold(src, &dst, 0, 255, gocv.ThresholdBinary|mode)
	return matToGray(dst, g), uint8(level), nil
}

func (opencvBackend) Canny(g *image.Gray, low, high float64) *image.Gray {
	src, err := gocv.ImageGrayToMatGray(imaging.CloneGray(g))
	if err != nil {
		return imaging.Canny(g, low, high)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Canny(src, &dst, float32(low), float32(high))
	return matToGray(dst, g)
}

func (opencvBackend) HoughCircles(g *image.Gray, p detection.HoughParams) []detection.Circle {
	src, err := gocv.ImageGrayToMatGray(imaging.CloneGray(g))
	if err != nil {
		return detection.HoughCircles(g, p)
	}
	defer src.Close()

	minDist := p.MinDist
	if minDist <= 0 {
		minDist = float64(g.Rect.Dy()) / 8
	}

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(src, &circles, gocv.HoughGradient,
		p.DP, minDist, p.Param1, p.Param2, p.MinRadius, p.MaxRadius)

	out := make([]detection.Circle, 0, circles.Cols())
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		if len(v) < 3 {
			break
		}
		out = append(out, detection.Circle{X: float64(v[0]), Y: float64(v[1]), Radius: float64(v[2])})
	}
	return out
}

// matToGray converts a single-channel Mat back to *image.Gray. A failed
// conversion yields an all-zero image of fallback's size.
func matToGray(m gocv.Mat, fallback *image.Gray) *image.Gray {
	img, err := m.ToImage()
	if err != nil {
		return image.NewGray(image.Rect(0, 0, fallback.Rect.Dx(), fallback.Rect.Dy()))
	}
	return imaging.CloneGray(img)
}
