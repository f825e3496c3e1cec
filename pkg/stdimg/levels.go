package stdimg

import (
	"fmt"
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RescaleMode selects how normalized [0,1] samples become 8-bit values.
type RescaleMode int

const (
	// RescaleNormalize stretches the extremes over all three channels to the
	// full [0,255] range.
	RescaleNormalize RescaleMode = iota
	// RescaleScale multiplies by 255 and rounds.
	RescaleScale
)

func (m RescaleMode) String() string {
	switch m {
	case RescaleScale:
		return "scale"
	default:
		return "normalize"
	}
}

// ParseRescaleMode accepts "normalize" (or empty) and "scale".
func ParseRescaleMode(s string) (RescaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normalize":
		return RescaleNormalize, nil
	case "scale":
		return RescaleScale, nil
	default:
		return RescaleNormalize, fmt.Errorf("unknown rescale mode %q (want normalize or scale)", s)
	}
}

// RGBImage is a float RGB image with components in [0,1], row-major.
type RGBImage struct {
	Rect  image.Rectangle
	Pix   []colorful.Color
	Alpha []uint8
}

// extremes returns the smallest and largest component over all pixels.
func (m *RGBImage) extremes() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, c := range m.Pix {
		lo = math.Min(lo, math.Min(c.R, math.Min(c.G, c.B)))
		hi = math.Max(hi, math.Max(c.R, math.Max(c.G, c.B)))
	}
	return lo, hi
}

// NRGBA quantizes the image to 8 bits per channel. A flat image (all
// components equal) is scaled even when mode is RescaleNormalize.
func (m *RGBImage) NRGBA(mode RescaleMode) *image.NRGBA {
	out := image.NewNRGBA(m.Rect)
	offset, gain := 0.0, 255.0
	if mode == RescaleNormalize {
		if lo, hi := m.extremes(); hi > lo {
			offset, gain = lo, 255/(hi-lo)
		}
	}
	q := func(v float64) uint8 {
		return uint8(clampFloatToUint8(math.Round((v - offset) * gain)))
	}
	w := m.Rect.Dx()
	for k, c := range m.Pix {
		i := out.PixOffset(m.Rect.Min.X+k%w, m.Rect.Min.Y+k/w)
		out.Pix[i+0] = q(c.R)
		out.Pix[i+1] = q(c.G)
		out.Pix[i+2] = q(c.B)
		if k < len(m.Alpha) {
			out.Pix[i+3] = m.Alpha[k]
		} else {
			out.Pix[i+3] = 255
		}
	}
	return out
}
