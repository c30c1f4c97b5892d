package imaging

import (
	"bytes"
	"testing"
)

func TestMorphGradient_Uniform(t *testing.T) {
	for _, shape := range []StructuringShape{ShapeRect, ShapeEllipse} {
		t.Run(string(shape), func(t *testing.T) {
			out := MorphGradient(createGray(30, 20, 90), 9, shape)
			if n := countNonZero(out); n != 0 {
				t.Errorf("uniform image should have zero gradient, got %d non-zero pixels", n)
			}
		})
	}
}

func TestMorphGradient_RectBand(t *testing.T) {
	g := createDiskGray(100, 100, 50, 50, 30, 20, 220)
	out := MorphGradient(g, 3, ShapeRect)

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"center", 50, 50, 0},
		{"background corner", 2, 2, 0},
		{"boundary left", 20, 50, 200},
		{"boundary just outside", 19, 50, 200},
		{"two pixels outside", 18, 50, 0},
		{"two pixels inside", 22, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := out.GrayAt(tt.x, tt.y).Y; got != tt.want {
				t.Errorf("gradient at (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMorphGradient_KernelWidensBand(t *testing.T) {
	g := createDiskGray(100, 100, 50, 50, 30, 20, 220)
	narrow := countNonZero(MorphGradient(g, 3, ShapeRect))
	wide := countNonZero(MorphGradient(g, 9, ShapeRect))
	if wide <= narrow {
		t.Errorf("9x9 band (%d px) should be wider than 3x3 band (%d px)", wide, narrow)
	}
}

func TestMorphGradient_SizeOne(t *testing.T) {
	g := createDiskGray(40, 40, 20, 20, 10, 0, 255)
	if n := countNonZero(MorphGradient(g, 1, ShapeRect)); n != 0 {
		t.Errorf("1x1 element should give zero gradient, got %d non-zero pixels", n)
	}
	if n := countNonZero(MorphGradient(g, 0, ShapeRect)); n != 0 {
		t.Errorf("size 0 should behave as 1, got %d non-zero pixels", n)
	}
}

func TestMorphGradient_Ellipse(t *testing.T) {
	g := createDiskGray(100, 100, 50, 50, 30, 20, 220)
	out := MorphGradient(g, 5, ShapeEllipse)
	if out.GrayAt(50, 50).Y != 0 {
		t.Error("disk center should have zero gradient")
	}
	if countNonZero(out) == 0 {
		t.Error("disk boundary should produce a gradient band")
	}
}

func TestMorphGradient_DoesNotMutateInput(t *testing.T) {
	g := createDiskGray(50, 50, 25, 25, 10, 0, 255)
	before := append([]uint8(nil), g.Pix...)
	MorphGradient(g, 9, ShapeRect)
	if !bytes.Equal(before, g.Pix) {
		t.Error("MorphGradient modified its input")
	}
}
