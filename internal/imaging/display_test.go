package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
	"path/filepath"
	"testing"
)

func TestToDisplay(t *testing.T) {
	g := createDiskGray(20, 10, 5, 5, 2, 0, 200)
	sub := g.SubImage(image.Rect(2, 2, 12, 8))

	out := ToDisplay(sub)
	if out.Rect != image.Rect(0, 0, 10, 6) {
		t.Fatalf("bounds: got %v, want (0,0)-(10,6)", out.Rect)
	}
	if len(out.Pix) != 10*6*4 {
		t.Errorf("buffer: got %d bytes, want %d", len(out.Pix), 10*6*4)
	}

	px := out.NRGBAAt(0, 0)
	if px.R != 200 || px.G != 200 || px.B != 200 || px.A != 255 {
		t.Errorf("background pixel: got %v, want gray 200 opaque", px)
	}
	if out.NRGBAAt(3, 3).R != 0 {
		t.Error("disk center should stay black")
	}
}

func TestEncodeImage(t *testing.T) {
	res, err := EncodeImage(createGray(30, 20, 7))
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if res.Width != 30 || res.Height != 20 || res.MimeType != "image/png" {
		t.Errorf("unexpected result header: %+v", res)
	}

	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("decoding base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if img.Bounds().Dx() != 30 {
		t.Errorf("decoded width: got %d, want 30", img.Bounds().Dx())
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.png")
	if err := Save(ToDisplay(createGray(8, 8, 50)), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cache := NewImageCache()
	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("loading saved image: %v", err)
	}
	if img.Bounds().Dx() != 8 {
		t.Errorf("width: got %d, want 8", img.Bounds().Dx())
	}

	if err := Save(createGray(2, 2, 0), filepath.Join(t.TempDir(), "x.unknownext")); err == nil {
		t.Error("unsupported extension should fail")
	}
}
