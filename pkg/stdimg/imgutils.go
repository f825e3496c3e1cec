package stdimg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrInvalidDimensions is returned when an image has zero width or height.
	ErrInvalidDimensions = errors.New("image has zero width or height")
	// ErrShapeMismatch is returned when channels of one image disagree on bounds.
	ErrShapeMismatch = errors.New("channel bounds mismatch")
)

// ToNRGBA converts any image.Image to *image.NRGBA (non-premultiplied RGBA).
// The result never aliases src.
func ToNRGBA(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	if n, ok := src.(*image.NRGBA); ok {
		return CloneNRGBA(n)
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	if g, ok := src.(*image.Gray); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				v := g.Pix[g.PixOffset(x, y)]
				i := out.PixOffset(x, y)
				out.Pix[i+0] = v
				out.Pix[i+1] = v
				out.Pix[i+2] = v
				out.Pix[i+3] = 255
			}
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// At().RGBA() is premultiplied; the NRGBA model undoes it
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			i := out.PixOffset(x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
		}
	}
	return out
}

// CloneNRGBA returns a copy of the provided image.NRGBA
func CloneNRGBA(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	w := src.Rect.Dx() * 4
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		i, j := src.PixOffset(src.Rect.Min.X, y), out.PixOffset(src.Rect.Min.X, y)
		copy(out.Pix[j:j+w], src.Pix[i:i+w])
	}
	return out
}

func cloneGray(src *image.Gray) *image.Gray {
	out := image.NewGray(src.Rect)
	w := src.Rect.Dx()
	for y := src.Rect.Min.Y; y < src.Rect.Max.Y; y++ {
		i, j := src.PixOffset(src.Rect.Min.X, y), out.PixOffset(src.Rect.Min.X, y)
		copy(out.Pix[j:j+w], src.Pix[i:i+w])
	}
	return out
}

// checkBounds fails fast on images that every histogram computation would divide by.
func checkBounds(r image.Rectangle) error {
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidDimensions, r)
	}
	return nil
}

// SplitChannels copies the R, G and B samples of src into three independent planes.
func SplitChannels(src *image.NRGBA) (r, g, b *image.Gray) {
	bounds := src.Bounds()
	r = image.NewGray(bounds)
	g = image.NewGray(bounds)
	b = image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := src.PixOffset(x, y)
			j := r.PixOffset(x, y)
			r.Pix[j] = src.Pix[i+0]
			g.Pix[j] = src.Pix[i+1]
			b.Pix[j] = src.Pix[i+2]
		}
	}
	return r, g, b
}

// MergeChannels rebuilds an RGB image from three planes. Alpha is copied from
// alpha when it is non-nil, otherwise the result is opaque.
func MergeChannels(r, g, b *image.Gray, alpha *image.NRGBA) (*image.NRGBA, error) {
	bounds := r.Bounds()
	if !g.Bounds().Eq(bounds) || !b.Bounds().Eq(bounds) {
		return nil, fmt.Errorf("%w: r=%v g=%v b=%v", ErrShapeMismatch, bounds, g.Bounds(), b.Bounds())
	}
	if alpha != nil && !alpha.Bounds().Eq(bounds) {
		return nil, fmt.Errorf("%w: rgb=%v alpha=%v", ErrShapeMismatch, bounds, alpha.Bounds())
	}
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = r.Pix[r.PixOffset(x, y)]
			out.Pix[i+1] = g.Pix[g.PixOffset(x, y)]
			out.Pix[i+2] = b.Pix[b.PixOffset(x, y)]
			if alpha != nil {
				out.Pix[i+3] = alpha.Pix[alpha.PixOffset(x, y)+3]
			} else {
				out.Pix[i+3] = 255
			}
		}
	}
	return out, nil
}

// clampFloatToUint8 ensures v in [0,255]
func clampFloatToUint8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
