// Package detection finds circles in grayscale images with the gradient
// Hough transform.
//
// # Algorithm Overview
//
// HoughCircles follows OpenCV's HOUGH_GRADIENT method:
//
//  1. Edge Detection: Canny edges and Sobel gradients of the input
//  2. Center Voting: each edge pixel votes along its gradient direction into
//     an accumulator that may be coarser than the image (see HoughParams.DP)
//  3. Center Selection: accumulator peaks above the vote threshold, strongest
//     first, suppressed when closer than MinDist to an accepted center
//  4. Radius Estimation: the densest shell of edge pixels around each center
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// Centers and radii are fractional. A pixel (x, y) is treated as the unit
// square whose center is (x+0.5, y+0.5).
//
// # Performance Considerations
//
// Voting cost grows with the number of edge pixels times the radius range
// divided by DP. For large captures, crop or downscale first, or raise DP.
//
// # Limitations
//
// The transform works best on clean, closed boundaries. Partial arcs (an
// eyelid covering the top of the iris) still vote, but their centers
// collect fewer votes and radii skew toward the visible part.
package detection
