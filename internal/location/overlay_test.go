package location

import (
	"image/color"
	"testing"

	"github.com/ironsheep/iris-locator-mcp/internal/detection"
)

var (
	red    = color.NRGBA{255, 0, 0, 255}
	yellow = color.NRGBA{255, 255, 0, 255}
)

func TestRender_Empty(t *testing.T) {
	g := createDiskGray(30, 20, 10, 10, 4, 0, 180)
	out := Render(g, nil, DefaultOverlayStyle())

	if out.Rect != g.Rect {
		t.Fatalf("bounds: got %v, want %v", out.Rect, g.Rect)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 30; x++ {
			v := g.GrayAt(x, y).Y
			if got := out.NRGBAAt(x, y); got != (color.NRGBA{v, v, v, 255}) {
				t.Fatalf("pixel (%d,%d): got %v, want gray %d", x, y, got, v)
			}
		}
	}
}

func TestRender_Candidate(t *testing.T) {
	g := createUniformGray(100, 100, 50)
	cands := []detection.Circle{{X: 49.6, Y: 50.4, Radius: 20.2}}

	out := Render(g, cands, DefaultOverlayStyle())

	if got := out.NRGBAAt(70, 50); got != red {
		t.Errorf("boundary pixel: got %v, want red", got)
	}
	if got := out.NRGBAAt(50, 30); got != red {
		t.Errorf("boundary pixel: got %v, want red", got)
	}
	if got := out.NRGBAAt(53, 50); got != yellow {
		t.Errorf("marker pixel: got %v, want yellow", got)
	}
	if got := out.NRGBAAt(50, 50); got != (color.NRGBA{50, 50, 50, 255}) {
		t.Errorf("center pixel should be untouched, got %v", got)
	}
	if got := out.NRGBAAt(60, 50); got != (color.NRGBA{50, 50, 50, 255}) {
		t.Errorf("pixel between marker and boundary should be untouched, got %v", got)
	}
	if g.GrayAt(70, 50).Y != 50 {
		t.Error("Render modified its input")
	}
}

func TestRender_Style(t *testing.T) {
	g := createUniformGray(60, 60, 0)
	cands := []detection.Circle{{X: 30, Y: 30, Radius: 15}}
	blue := color.NRGBA{0, 0, 255, 255}

	out := Render(g, cands, OverlayStyle{BoundaryColor: "#0000FF", MarkerColor: "not-a-color"})
	if got := out.NRGBAAt(45, 30); got != blue {
		t.Errorf("boundary pixel: got %v, want blue", got)
	}
	if got := out.NRGBAAt(33, 30); got != yellow {
		t.Errorf("bad marker color should fall back to yellow, got %v", got)
	}
}

func TestRender_ClipsOutside(t *testing.T) {
	g := createUniformGray(20, 20, 10)
	cands := []detection.Circle{{X: 18, Y: 18, Radius: 40}, {X: -50, Y: -50, Radius: 5}}

	// Must not panic.
	out := Render(g, cands, DefaultOverlayStyle())
	if out.Rect.Dx() != 20 || out.Rect.Dy() != 20 {
		t.Errorf("bounds changed: %v", out.Rect)
	}
}
