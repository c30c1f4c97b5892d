package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// GrayModel selects how a color pixel is reduced to a single intensity.
type GrayModel int

const (
	// GrayLuma weights channels with ITU-R BT.601 coefficients
	// (0.299*R + 0.587*G + 0.114*B), the conventional RGB to GRAY conversion.
	GrayLuma GrayModel = iota

	// GrayLightness uses CIE L* (0-100) scaled to 0-255. It tracks perceived
	// brightness more closely on strongly tinted eye images.
	GrayLightness
)

// ChannelDepth reports the number of interleaved channels carried by img's
// concrete type, or 0 when the layout is not one the normalizer supports.
func ChannelDepth(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr:
		return 3
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64,
		*image.NYCbCrA, *image.Paletted, *image.CMYK:
		return 4
	default:
		return 0
	}
}

// ToGray converts a 3- or 4-channel image to a single-channel *image.Gray
// with the same bounds, using BT.601 luma.
//
// Parameters:
//   - img: Source image. Nil is returned as nil.
//
// Returns:
//   - image.Image: A new *image.Gray with img's bounds, each pixel the
//     rounded 0.299R + 0.587G + 0.114B of the straight (non-premultiplied)
//     color; or img itself when no conversion applies.
//
// When the conversion does not apply to img's layout (it is already
// single-channel, or its type is unsupported) img itself is returned. This is
// the normalizer's recoverable fallback: callers never see an error.
func ToGray(img image.Image) image.Image {
	return ToGrayWithModel(img, GrayLuma)
}

// ToGrayWithModel is ToGray with an explicit intensity model.
func ToGrayWithModel(img image.Image, model GrayModel) image.Image {
	if img == nil {
		return nil
	}
	depth := ChannelDepth(img)
	if depth != 3 && depth != 4 {
		return img
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return img
	}

	dst := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.At(x, y)
			var v uint8
			switch model {
			case GrayLightness:
				v = lightness(c)
			default:
				v = luma(c)
			}
			dst.Pix[dst.PixOffset(x, y)] = v
		}
	}
	return dst
}

// luma returns the rounded BT.601 luminance of c's straight (non
// premultiplied) channels. Alpha is ignored.
func luma(c color.Color) uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint8((299*uint32(n.R) + 587*uint32(n.G) + 114*uint32(n.B) + 500) / 1000)
}

// lightness returns CIE L* of c scaled to 0-255. Fully transparent pixels
// carry no color and map to 0.
func lightness(c color.Color) uint8 {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return 0
	}
	l, _, _ := cf.Lab()
	return clampUint8(math.Round(l * 255))
}

// CloneGray returns a compact single-channel working copy of img with bounds
// starting at (0,0) and Stride equal to the width.
//
// Color images go through ToGray. Single-channel and unsupported layouts are
// converted with the standard library's gray color model, which is exact for
// *image.Gray. The input is never aliased.
func CloneGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	if g, ok := ToGray(img).(*image.Gray); ok {
		for y := 0; y < h; y++ {
			off := g.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*w:(y+1)*w], g.Pix[off:off+w])
		}
		return dst
	}

	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}

// clampUint8 rounds toward zero after clamping v into [0, 255].
func clampUint8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
