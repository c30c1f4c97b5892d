package location

import (
	"image"
	"testing"
)

// createDiskGray draws a filled disk of value fg on a bg background.
func createDiskGray(width, height, cx, cy, r int, fg, bg uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := bg
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) <= r*r {
				v = fg
			}
			img.Pix[y*width+x] = v
		}
	}
	return img
}

// createUniformGray creates a grayscale image with every pixel set to v.
func createUniformGray(width, height int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// useBackend selects name for the duration of the test.
func useBackend(t *testing.T, name string) {
	t.Helper()
	if err := Init(name); err != nil {
		t.Fatalf("Init(%q) failed: %v", name, err)
	}
	t.Cleanup(func() {
		if err := Teardown(); err != nil {
			t.Errorf("Teardown failed: %v", err)
		}
	})
}

// mustPreset returns the named built-in preset.
func mustPreset(t *testing.T, name string) Params {
	t.Helper()
	p, err := NewPresetSet().Get(name)
	if err != nil {
		t.Fatalf("preset %q: %v", name, err)
	}
	return p
}
