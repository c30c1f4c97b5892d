package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestChannelDepth(t *testing.T) {
	rect := image.Rect(0, 0, 4, 4)
	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", image.NewGray(rect), 1},
		{"gray16", image.NewGray16(rect), 1},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), 3},
		{"rgba", image.NewRGBA(rect), 4},
		{"nrgba", image.NewNRGBA(rect), 4},
		{"rgba64", image.NewRGBA64(rect), 4},
		{"cmyk", image.NewCMYK(rect), 4},
		{"paletted", image.NewPaletted(rect, color.Palette{color.Black, color.White}), 4},
		{"alpha", image.NewAlpha(rect), 0},
		{"uniform", image.NewUniform(color.White), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChannelDepth(tt.img); got != tt.want {
				t.Errorf("ChannelDepth(%T): got %d, want %d", tt.img, got, tt.want)
			}
		})
	}
}

func TestToGray_MultiChannel(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"rgba", createInMemoryImage(37, 21, color.RGBA{200, 100, 50, 255})},
		{"nrgba", image.NewNRGBA(image.Rect(0, 0, 12, 9))},
		{"ycbcr", image.NewYCbCr(image.Rect(0, 0, 16, 8), image.YCbCrSubsampleRatio444)},
		{"offset bounds", image.NewRGBA(image.Rect(5, 7, 25, 19))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ToGray(tt.img)
			if ChannelDepth(out) != 1 {
				t.Fatalf("output channel depth: got %d (%T), want 1", ChannelDepth(out), out)
			}
			if out.Bounds() != tt.img.Bounds() {
				t.Errorf("bounds: got %v, want %v", out.Bounds(), tt.img.Bounds())
			}
		})
	}
}

func TestToGray_Luma(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want uint8
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0},
		{"red", color.RGBA{255, 0, 0, 255}, 76},
		{"green", color.RGBA{0, 255, 0, 255}, 150},
		{"blue", color.RGBA{0, 0, 255, 255}, 29},
		{"mid gray", color.RGBA{128, 128, 128, 255}, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := ToGray(createInMemoryImage(2, 2, tt.c)).(*image.Gray)
			if got := out.GrayAt(1, 1).Y; got != tt.want {
				t.Errorf("gray value: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToGray_PassThrough(t *testing.T) {
	gray := createGray(10, 10, 42)
	if out := ToGray(gray); out != image.Image(gray) {
		t.Error("single-channel input should be returned unchanged")
	}

	alpha := image.NewAlpha(image.Rect(0, 0, 10, 10))
	if out := ToGray(alpha); out != image.Image(alpha) {
		t.Error("unsupported input should be returned unchanged")
	}

	if ToGray(nil) != nil {
		t.Error("nil input should stay nil")
	}
}

func TestToGrayWithModel_Lightness(t *testing.T) {
	white := ToGrayWithModel(createInMemoryImage(2, 2, color.White), GrayLightness).(*image.Gray)
	if got := white.GrayAt(0, 0).Y; got < 254 {
		t.Errorf("white lightness: got %d, want 255", got)
	}

	black := ToGrayWithModel(createInMemoryImage(2, 2, color.Black), GrayLightness).(*image.Gray)
	if got := black.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("black lightness: got %d, want 0", got)
	}

	transparent := ToGrayWithModel(image.NewNRGBA(image.Rect(0, 0, 2, 2)), GrayLightness).(*image.Gray)
	if got := transparent.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("transparent lightness: got %d, want 0", got)
	}
}

func TestCloneGray(t *testing.T) {
	src := image.NewGray(image.Rect(3, 4, 13, 9))
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}

	clone := CloneGray(src)
	if clone.Rect != image.Rect(0, 0, 10, 5) {
		t.Fatalf("clone bounds: got %v, want (0,0)-(10,5)", clone.Rect)
	}
	if clone.Stride != 10 {
		t.Errorf("clone stride: got %d, want 10", clone.Stride)
	}
	if clone.GrayAt(0, 0).Y != src.GrayAt(3, 4).Y || clone.GrayAt(9, 4).Y != src.GrayAt(12, 8).Y {
		t.Error("clone pixels do not match source")
	}

	clone.Pix[0] = 99
	if src.Pix[0] == 99 {
		t.Error("CloneGray must not alias its input")
	}
}

func TestCloneGray_Unsupported(t *testing.T) {
	alpha := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range alpha.Pix {
		alpha.Pix[i] = 255
	}
	clone := CloneGray(alpha)
	if clone.Rect.Dx() != 4 || clone.Rect.Dy() != 4 {
		t.Errorf("clone size: got %v", clone.Rect)
	}
}
