// Package imaging provides the low-level raster operations behind eye-image
// localization.
//
// This package implements the per-pixel building blocks the localization
// pipeline is assembled from: loading images, grayscale normalization,
// morphological filtering, automatic thresholding, Canny edge extraction and
// conversion to a display-ready format. All operations work with standard Go
// image.Image types and use a coordinate system where (0,0) is at the top-left
// corner, X increases rightward, and Y increases downward.
//
// # Working Buffers
//
// Operations never modify their input. Functions that produce a grayscale
// raster return a fresh *image.Gray whose bounds start at (0,0) and whose
// Stride equals its width, so callers can index Pix directly as y*width+x.
// Use CloneGray to obtain such a working copy from any image.
//
// # Channel Depth
//
// ChannelDepth classifies an image by the number of interleaved channels its
// concrete type carries:
//   - 1: *image.Gray, *image.Gray16
//   - 3: *image.YCbCr
//   - 4: *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64,
//     *image.NYCbCrA, *image.Paletted, *image.CMYK
//   - 0: anything else, which the normalizer treats as unsupported
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Only the image source can fail in a way callers must handle: load errors
// wrap ErrLoad. Grayscale conversion of an unsupported layout is not an error;
// ToGray returns the input unchanged instead.
package imaging
