package stdimg

import (
	"image"

	"golang.org/x/sync/errgroup"
)

// Luma weights (ITU-R BT.601).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Grayscale reduces src to one luma plane. The weighted sum is truncated, not rounded.
func Grayscale(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := src.PixOffset(x, y)
			lum := lumaR*float64(src.Pix[i+0]) + lumaG*float64(src.Pix[i+1]) + lumaB*float64(src.Pix[i+2])
			out.Pix[out.PixOffset(x, y)] = uint8(clampFloatToUint8(lum))
		}
	}
	return out
}

// EqualizeGray applies histogram equalization to a single plane and returns
// a new plane with the same bounds.
func EqualizeGray(src *image.Gray) (*image.Gray, error) {
	b := src.Bounds()
	if err := checkBounds(b); err != nil {
		return nil, err
	}
	lut, err := EqualizationMap(BuildHistogram(src), b.Dx()*b.Dy())
	if err != nil {
		return nil, err
	}
	return lut.Apply(src), nil
}

// EqualizeChannels equalizes R, G and B independently; each channel gets its
// own histogram and map. Alpha is preserved.
func EqualizeChannels(src *image.NRGBA) (*image.NRGBA, error) {
	if err := checkBounds(src.Bounds()); err != nil {
		return nil, err
	}
	r, g, b := SplitChannels(src)
	planes := [3]*image.Gray{r, g, b}
	var eg errgroup.Group
	for i := range planes {
		eg.Go(func() error {
			out, err := EqualizeGray(planes[i])
			if err != nil {
				return err
			}
			planes[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return MergeChannels(planes[0], planes[1], planes[2], src)
}

// EqualizeAverage derives one map from the histogram averaged over R, G and B
// and applies it to each channel, so equal samples map to equal outputs
// whatever channel they are in.
func EqualizeAverage(src *image.NRGBA) (*image.NRGBA, error) {
	bounds := src.Bounds()
	if err := checkBounds(bounds); err != nil {
		return nil, err
	}
	lut, err := AverageEqualizationMap(src)
	if err != nil {
		return nil, err
	}
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i, j := src.PixOffset(x, y), out.PixOffset(x, y)
			out.Pix[j+0] = lut[src.Pix[i+0]]
			out.Pix[j+1] = lut[src.Pix[i+1]]
			out.Pix[j+2] = lut[src.Pix[i+2]]
			out.Pix[j+3] = src.Pix[i+3]
		}
	}
	return out, nil
}

// AverageEqualizationMap returns the shared map used by EqualizeAverage.
func AverageEqualizationMap(src *image.NRGBA) (LUT, error) {
	bounds := src.Bounds()
	if err := checkBounds(bounds); err != nil {
		return LUT{}, err
	}
	mean, err := BuildMeanHistogram(SplitChannels(src))
	if err != nil {
		return LUT{}, err
	}
	cdf, err := mean.CDF(bounds.Dx() * bounds.Dy())
	if err != nil {
		return LUT{}, err
	}
	return cdf.LUT(), nil
}
