package cli

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"
)

func solidImage(w, h int, r, g, b uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = 255
	}
	return img
}

// gradientImage gives every pixel a distinct-ish colour so equalization has work to do.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(40 + x*3), G: uint8(90 + y*2), B: uint8(60 + (x+y)%50), A: 255})
		}
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := gradientImage(24, 16)
	for _, ext := range []string{".bmp", ".png", ".tif", ".ppm"} {
		path := filepath.Join(dir, "img"+ext)
		if err := SaveImage(path, src); err != nil {
			t.Fatalf("SaveImage(%s): %v", ext, err)
		}
		img, format, err := LoadImage(path)
		if err != nil {
			t.Fatalf("LoadImage(%s): %v", ext, err)
		}
		if format == "" || format == "unknown" {
			t.Fatalf("%s: format %q", ext, format)
		}
		if !img.Bounds().Eq(src.Bounds()) {
			t.Fatalf("%s: bounds %v; want %v", ext, img.Bounds(), src.Bounds())
		}
		// lossless formats keep every sample
		for _, p := range []image.Point{image.Pt(0, 0), image.Pt(23, 15), image.Pt(7, 9)} {
			want := src.NRGBAAt(p.X, p.Y)
			got := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA)
			if got != want {
				t.Fatalf("%s: pixel %v = %v; want %v", ext, p, got, want)
			}
		}
	}
}

func TestSaveGrayBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.bmp")
	g := image.NewGray(image.Rect(0, 0, 5, 3))
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 10)
	}
	if err := SaveImage(path, g); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	img, _, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if y := color.GrayModel.Convert(img.At(4, 2)).(color.Gray).Y; y != 140 {
		t.Fatalf("gray sample = %d; want 140", y)
	}
}

func TestLoadImageMissing(t *testing.T) {
	if _, _, err := LoadImage(filepath.Join(t.TempDir(), "nope.bmp")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDownscale(t *testing.T) {
	src := solidImage(200, 100, 1, 2, 3)
	if got := Downscale(src, 0); got != image.Image(src) {
		t.Fatalf("maxDim 0 should return the input")
	}
	if got := Downscale(src, 400); got != image.Image(src) {
		t.Fatalf("image that fits should be returned as is")
	}
	small := Downscale(src, 50)
	if b := small.Bounds(); b.Dx() != 50 || b.Dy() != 25 {
		t.Fatalf("downscaled bounds %v; want 50x25", b)
	}
}

func TestGetImageInfoImage(t *testing.T) {
	info, err := GetImageInfoImage(image.NewGray(image.Rect(0, 0, 3, 2)))
	if err != nil {
		t.Fatalf("GetImageInfoImage: %v", err)
	}
	if info != "Model: gray, Width: 3, Height: 2" {
		t.Fatalf("info = %q", info)
	}
	if _, err := GetImageInfoImage(nil); err == nil {
		t.Fatalf("expected error for nil image")
	}
}
