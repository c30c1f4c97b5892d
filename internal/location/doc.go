// Package location finds pupil and iris boundary candidates in eye images.
//
// The pipeline runs on a private grayscale working copy:
//
//  1. Optional Gaussian pre-blur (Params.BlurRadius)
//  2. Morphological gradient with a KernelSize structuring element
//  3. Automatic threshold (Otsu or triangle) and binarization
//  4. Optional Canny edge pass on the binary image (Params.Canny)
//  5. Circular Hough transform
//  6. Candidate enumeration: non-finite entries end the list, radii outside
//     the requested range are dropped
//
// Locate returns the ordered candidates together with an overlay rendered by
// Render. Finding no circle is a normal outcome, not an error.
//
// # Presets
//
// Three parameter sets are built in (see Presets): "otsu-canny", "triangle"
// and "triangle-wide". A YAML file can override or extend them:
//
//	presets:
//	  triangle:
//	    min_radius: 20
//	    max_radius: 80
//	  tight:
//	    kernel_size: 5
//	    threshold: otsu
//	    dp: 1
//	    param1: 100
//	    param2: 30
//	    max_radius: 60
//
// # Backends
//
// The image operations behind the pipeline come from a Backend. The pure Go
// backend "native" is always registered. Building with the opencv tag adds
// "opencv", backed by gocv. Init selects the process-wide backend and
// Teardown releases it; both are idempotent. Locate falls back to "native"
// when Init was never called.
package location
