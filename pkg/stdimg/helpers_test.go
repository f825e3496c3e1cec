package stdimg

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"testing"
)

func makeSolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

// makeGray builds a w-wide plane from row-major samples.
func makeGray(w int, samples ...uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, len(samples)/w))
	copy(img.Pix, samples)
	return img
}

func makeNoiseNRGBA(w, h int, seed int64) *image.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(rng.Intn(256))
		img.Pix[i+1] = uint8(rng.Intn(256))
		img.Pix[i+2] = uint8(rng.Intn(256))
		img.Pix[i+3] = 255
	}
	return img
}

// saveTestOutput writes img for manual inspection when HISTEQ_SAVE_TEST_OUTPUT=1.
func saveTestOutput(t *testing.T, name string, img image.Image) {
	t.Helper()
	if os.Getenv("HISTEQ_SAVE_TEST_OUTPUT") != "1" {
		return
	}
	f, err := os.Create(name)
	if err != nil {
		t.Logf("could not save %s: %v", name, err)
		return
	}
	defer f.Close()
	png.Encode(f, img)
}
