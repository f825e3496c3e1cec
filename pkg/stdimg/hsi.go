package stdimg

import (
	"fmt"
	"image"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSI<->RGB conversions operate on 0..1 floats; hue is in radians.

const (
	twoThirdsPi  = 2 * math.Pi / 3
	fourThirdsPi = 4 * math.Pi / 3
	twoPi        = 2 * math.Pi

	// substituted for R+G+B when it is zero
	sumEpsilon = 1e-10
)

// IntensityFormula selects how the I component is derived from R, G and B.
type IntensityFormula int

const (
	// IntensityMean is the canonical (R+G+B)/3.
	IntensityMean IntensityFormula = iota
	// IntensityLegacy is (R+2G)/3, kept for parity with results produced by
	// earlier versions of this tool.
	IntensityLegacy
)

func (f IntensityFormula) String() string {
	switch f {
	case IntensityLegacy:
		return "legacy"
	default:
		return "mean"
	}
}

// ParseIntensityFormula accepts "mean" (or empty) and "legacy".
func ParseIntensityFormula(s string) (IntensityFormula, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mean", "canonical":
		return IntensityMean, nil
	case "legacy":
		return IntensityLegacy, nil
	default:
		return IntensityMean, fmt.Errorf("unknown intensity formula %q (want mean or legacy)", s)
	}
}

// HSI is one pixel in hue-saturation-intensity space.
type HSI struct {
	H float64 // [0, 2π)
	S float64 // [0, 1]
	I float64 // [0, 1]
}

// RGBToHSI converts a normalized RGB triple. Achromatic input (R=G=B, black
// included) yields H=0 and S=0.
func RGBToHSI(c colorful.Color, f IntensityFormula) HSI {
	r, g, b := c.R, c.G, c.B
	var p HSI
	if f == IntensityLegacy {
		p.I = (r + 2*g) / 3
	} else {
		p.I = (r + g + b) / 3
	}

	lo := math.Min(r, math.Min(g, b))
	hi := math.Max(r, math.Max(g, b))
	if hi == lo {
		return p
	}

	sum := r + g + b
	if sum == 0 {
		sum = sumEpsilon
	}
	p.S = 1 - 3*lo/sum
	if p.S == 0 {
		return p
	}

	num := 0.5 * ((r - g) + (r - b))
	den := math.Sqrt((r-g)*(r-g) + (r-b)*(g-b))
	theta := 0.0
	if den != 0 {
		// rounding can push the ratio just outside acos's domain
		theta = math.Acos(math.Max(-1, math.Min(1, num/den)))
	}
	if b <= g {
		p.H = theta
	} else {
		p.H = twoPi - theta
	}
	return p
}

// sector is one of the three 120° hue ranges used when converting back to RGB.
type sector int

const (
	sectorRG sector = iota // [0, 2π/3)
	sectorGB               // [2π/3, 4π/3)
	sectorBR               // [4π/3, 2π]
)

// hueSector expects h already normalized to [0, 2π].
func hueSector(h float64) sector {
	switch {
	case h < twoThirdsPi:
		return sectorRG
	case h < fourThirdsPi:
		return sectorGB
	default:
		return sectorBR
	}
}

// normalizeHue maps NaN and infinities to 0 and wraps anything outside [0, 2π].
func normalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	if h >= 0 && h <= twoPi {
		return h
	}
	h = math.Mod(h, twoPi)
	if h < 0 {
		h += twoPi
	}
	return h
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// sectorSpan computes the boosted component of a sector; h is relative to the sector start.
func sectorSpan(h, s, i float64) float64 {
	return i * (1 + s*math.Cos(h)/math.Cos(math.Pi/3-h))
}

// HSIToRGB converts back to RGB; every component of the result is clamped to [0,1].
func HSIToRGB(p HSI) colorful.Color {
	h := normalizeHue(p.H)
	s := finite(p.S)
	i := finite(p.I)
	var c colorful.Color
	switch hueSector(h) {
	case sectorRG:
		c.B = i * (1 - s)
		c.R = sectorSpan(h, s, i)
		c.G = 3*i - (c.R + c.B)
	case sectorGB:
		c.R = i * (1 - s)
		c.G = sectorSpan(h-twoThirdsPi, s, i)
		c.B = 3*i - (c.R + c.G)
	case sectorBR:
		c.G = i * (1 - s)
		c.B = sectorSpan(h-fourThirdsPi, s, i)
		c.R = 3*i - (c.G + c.B)
	}
	return c.Clamped()
}

// HSIImage holds the three HSI planes of an image in row-major order, plus
// the source alpha so it survives the round trip.
type HSIImage struct {
	Rect    image.Rectangle
	H, S, I []float64
	Alpha   []uint8
}

// NewHSIImage converts every pixel of src.
func NewHSIImage(src *image.NRGBA, f IntensityFormula) (*HSIImage, error) {
	b := src.Bounds()
	if err := checkBounds(b); err != nil {
		return nil, err
	}
	n := b.Dx() * b.Dy()
	m := &HSIImage{
		Rect:  b,
		H:     make([]float64, n),
		S:     make([]float64, n),
		I:     make([]float64, n),
		Alpha: make([]uint8, n),
	}
	k := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := src.PixOffset(x, y)
			p := RGBToHSI(colorful.Color{
				R: float64(src.Pix[i+0]) / 255,
				G: float64(src.Pix[i+1]) / 255,
				B: float64(src.Pix[i+2]) / 255,
			}, f)
			m.H[k], m.S[k], m.I[k] = p.H, p.S, p.I
			m.Alpha[k] = src.Pix[i+3]
			k++
		}
	}
	return m, nil
}

// At returns the HSI pixel at (x, y).
func (m *HSIImage) At(x, y int) HSI {
	k := (y-m.Rect.Min.Y)*m.Rect.Dx() + (x - m.Rect.Min.X)
	return HSI{H: m.H[k], S: m.S[k], I: m.I[k]}
}

// EqualizeIntensity quantizes I to 0..255, equalizes it and scales it back
// to [0,1]. H and S are untouched.
func (m *HSIImage) EqualizeIntensity() error {
	// a fresh Gray over Rect has Stride == Dx, so its Pix order matches m.I
	plane := image.NewGray(m.Rect)
	for k, v := range m.I {
		plane.Pix[k] = uint8(clampFloatToUint8(math.Round(finite(v) * 255)))
	}
	eq, err := EqualizeGray(plane)
	if err != nil {
		return err
	}
	for k, v := range eq.Pix {
		m.I[k] = float64(v) / 255
	}
	return nil
}

// RGB converts every pixel back to normalized RGB.
func (m *HSIImage) RGB() *RGBImage {
	out := &RGBImage{
		Rect:  m.Rect,
		Pix:   make([]colorful.Color, len(m.I)),
		Alpha: append([]uint8(nil), m.Alpha...),
	}
	for k := range m.I {
		out.Pix[k] = HSIToRGB(HSI{H: m.H[k], S: m.S[k], I: m.I[k]})
	}
	return out
}

// HSIOptions configure EqualizeHSI.
type HSIOptions struct {
	Intensity IntensityFormula
	Rescale   RescaleMode
}

// EqualizeHSI converts src to HSI, equalizes the intensity plane only and
// converts back to 8-bit RGB using opts.Rescale.
func EqualizeHSI(src *image.NRGBA, opts HSIOptions) (*image.NRGBA, error) {
	m, err := NewHSIImage(src, opts.Intensity)
	if err != nil {
		return nil, err
	}
	if err := m.EqualizeIntensity(); err != nil {
		return nil, err
	}
	return m.RGB().NRGBA(opts.Rescale), nil
}
