package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// HistogramBackground is the fill of images produced by RenderHistogramImage.
var HistogramBackground = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

// Levels is the number of intensity levels of an 8-bit channel.
const Levels = 256

// Histogram holds the occurrence count of every intensity level of one channel.
type Histogram [Levels]int

// MeanHistogram is a histogram whose buckets were averaged over several channels.
type MeanHistogram [Levels]float64

// CDF is the normalized cumulative histogram; every entry is in [0,1].
type CDF [Levels]float64

// LUT maps an input intensity level to its equalized level.
type LUT [Levels]uint8

// BuildHistogram counts every sample of ch.
func BuildHistogram(ch *image.Gray) Histogram {
	var h Histogram
	b := ch.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := ch.PixOffset(b.Min.X, y)
		for _, v := range ch.Pix[i : i+b.Dx()] {
			h[v]++
		}
	}
	return h
}

// Total returns the number of samples the histogram summarizes.
func (h *Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c
	}
	return n
}

// CDF accumulates the histogram and normalizes it by total.
func (h *Histogram) CDF(total int) (CDF, error) {
	if total <= 0 {
		return CDF{}, fmt.Errorf("%w: total pixel count %d", ErrInvalidDimensions, total)
	}
	var c CDF
	count := 0
	for k, n := range h {
		count += n
		c[k] = math.Min(float64(count)/float64(total), 1)
	}
	return c, nil
}

// BuildMeanHistogram counts the samples of all three planes into one histogram
// and divides every bucket by 3.
func BuildMeanHistogram(r, g, b *image.Gray) (MeanHistogram, error) {
	bounds := r.Bounds()
	if !g.Bounds().Eq(bounds) || !b.Bounds().Eq(bounds) {
		return MeanHistogram{}, fmt.Errorf("%w: r=%v g=%v b=%v", ErrShapeMismatch, bounds, g.Bounds(), b.Bounds())
	}
	var sum Histogram
	for _, p := range []*image.Gray{r, g, b} {
		h := BuildHistogram(p)
		for k, n := range h {
			sum[k] += n
		}
	}
	var m MeanHistogram
	for k, n := range sum {
		m[k] = float64(n) / 3
	}
	return m, nil
}

// CDF accumulates the averaged buckets and normalizes by total, the pixel
// count of a single channel.
func (m *MeanHistogram) CDF(total int) (CDF, error) {
	if total <= 0 {
		return CDF{}, fmt.Errorf("%w: total pixel count %d", ErrInvalidDimensions, total)
	}
	var c CDF
	count := 0.0
	for k, n := range m {
		count += n
		c[k] = math.Min(count/float64(total), 1)
	}
	return c, nil
}

// LUT scales the CDF to [0, Levels-1], rounding half away from zero.
func (c *CDF) LUT() LUT {
	var m LUT
	for k, v := range c {
		m[k] = uint8(clampFloatToUint8(math.Round(v * (Levels - 1))))
	}
	return m
}

// EqualizationMap derives the equalization lookup table of h.
func EqualizationMap(h Histogram, total int) (LUT, error) {
	c, err := h.CDF(total)
	if err != nil {
		return LUT{}, err
	}
	return c.LUT(), nil
}

// Apply returns a new plane with every sample of src replaced by m[sample].
func (m *LUT) Apply(src *image.Gray) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := src.PixOffset(b.Min.X, y)
		j := out.PixOffset(b.Min.X, y)
		for x, v := range src.Pix[i : i+b.Dx()] {
			out.Pix[j+x] = m[v]
		}
	}
	return out
}

// ComputeHistogram computes per-channel histograms with `bins` bins (e.g., 256).
// Returns three slices for R, G, B counts.
func ComputeHistogram(src *image.NRGBA, bins int) ([]int, []int, []int) {
	if src == nil {
		return nil, nil, nil
	}
	if bins <= 0 || bins > Levels {
		bins = Levels
	}
	r, g, b := SplitChannels(src)
	rebin := func(h Histogram) []int {
		out := make([]int, bins)
		for v, n := range h {
			out[v*bins/Levels] += n
		}
		return out
	}
	return rebin(BuildHistogram(r)), rebin(BuildHistogram(g)), rebin(BuildHistogram(b))
}

// RenderHistogramImage renders an overlaid histogram image for the given histograms.
// histR/G/B slices share one length (the bin count). width/height choose the output size.
func RenderHistogramImage(histR, histG, histB []int, width, height int) *image.NRGBA {
	if width <= 0 {
		width = 512
	}
	if height <= 0 {
		height = 120
	}
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = HistogramBackground.R
		out.Pix[i+1] = HistogramBackground.G
		out.Pix[i+2] = HistogramBackground.B
		out.Pix[i+3] = HistogramBackground.A
	}
	series := []struct {
		hist []int
		ch   int
	}{{histR, 0}, {histG, 1}, {histB, 2}}
	maxv := 1
	bins := 0
	for _, s := range series {
		if len(s.hist) > bins {
			bins = len(s.hist)
		}
		for _, v := range s.hist {
			if v > maxv {
				maxv = v
			}
		}
	}
	if bins == 0 {
		return out
	}
	// each series clears the other two channels of its bars, so overlaps mix toward black
	for _, s := range series {
		for x := 0; x < width; x++ {
			bin := x * bins / width
			if bin >= len(s.hist) {
				continue
			}
			bh := int(math.Round(float64(s.hist[bin]) / float64(maxv) * float64(height-1)))
			for y := 0; y < bh; y++ {
				i := out.PixOffset(x, height-1-y)
				for c := 0; c < 3; c++ {
					if c != s.ch {
						out.Pix[i+c] = 0
					}
				}
			}
		}
	}
	return out
}
