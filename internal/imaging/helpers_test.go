package imaging

import (
	"image"
	"image/color"
)

// createInMemoryImage creates a solid color RGBA image.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createGray creates a uniform grayscale image.
func createGray(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// createDiskGray draws a filled disk of value fg on a bg background.
func createDiskGray(width, height, cx, cy, r int, fg, bg uint8) *image.Gray {
	img := createGray(width, height, bg)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				img.Pix[y*width+x] = fg
			}
		}
	}
	return img
}

// createEdgeTestImage creates a white image with a black square in the middle.
func createEdgeTestImage(width, height int) *image.RGBA {
	img := createInMemoryImage(width, height, color.White)
	for y := height / 4; y < height*3/4; y++ {
		for x := width / 4; x < width*3/4; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

// countNonZero counts pixels above zero.
func countNonZero(g *image.Gray) int {
	n := 0
	for _, v := range g.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
