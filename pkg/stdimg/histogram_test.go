package stdimg

import (
	"errors"
	"image"
	"testing"
)

func TestBuildHistogramSumsToPixelCount(t *testing.T) {
	src := makeNoiseNRGBA(37, 23, 7)
	r, _, _ := SplitChannels(src)
	h := BuildHistogram(r)
	if got, want := h.Total(), 37*23; got != want {
		t.Fatalf("histogram total = %d; want %d", got, want)
	}
}

func TestBuildHistogramOffsetOrigin(t *testing.T) {
	// sub-images keep the parent's stride and a non-zero origin
	parent := makeGray(4,
		1, 1, 1, 1,
		1, 9, 9, 1,
		1, 9, 9, 1,
		1, 1, 1, 1,
	)
	sub := parent.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	h := BuildHistogram(sub)
	if h[9] != 4 || h.Total() != 4 {
		t.Fatalf("sub-image histogram: h[9]=%d total=%d; want 4 and 4", h[9], h.Total())
	}
}

func TestEqualizationMapMonotonic(t *testing.T) {
	src := makeNoiseNRGBA(64, 64, 42)
	g := Grayscale(src)
	lut, err := EqualizationMap(BuildHistogram(g), 64*64)
	if err != nil {
		t.Fatalf("EqualizationMap: %v", err)
	}
	for k := 0; k < Levels-1; k++ {
		if lut[k] > lut[k+1] {
			t.Fatalf("map decreases at %d: %d > %d", k, lut[k], lut[k+1])
		}
	}
	if lut[Levels-1] != 255 {
		t.Fatalf("map[255] = %d; want 255", lut[Levels-1])
	}
}

func TestCDFConstantChannel(t *testing.T) {
	const v = 77
	g := makeGray(3, v, v, v, v, v, v)
	h := BuildHistogram(g)
	cdf, err := h.CDF(6)
	if err != nil {
		t.Fatalf("CDF: %v", err)
	}
	for k := 0; k < v; k++ {
		if cdf[k] != 0 {
			t.Fatalf("cdf[%d] = %v; want 0", k, cdf[k])
		}
	}
	if cdf[v] != 1 {
		t.Fatalf("cdf[%d] = %v; want 1", v, cdf[v])
	}

	out, err := EqualizeGray(g)
	if err != nil {
		t.Fatalf("EqualizeGray: %v", err)
	}
	for i, p := range out.Pix {
		if p != out.Pix[0] {
			t.Fatalf("pixel %d = %d; want constant %d", i, p, out.Pix[0])
		}
	}
	if out.Pix[0] != 255 {
		t.Fatalf("constant channel maps to %d; want 255", out.Pix[0])
	}
}

func TestCDFZeroTotal(t *testing.T) {
	var h Histogram
	if _, err := h.CDF(0); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("CDF(0) error = %v; want ErrInvalidDimensions", err)
	}
	var m MeanHistogram
	if _, err := m.CDF(0); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("MeanHistogram.CDF(0) error = %v; want ErrInvalidDimensions", err)
	}
}

func TestMeanHistogramShapeMismatch(t *testing.T) {
	a := image.NewGray(image.Rect(0, 0, 2, 2))
	b := image.NewGray(image.Rect(0, 0, 3, 2))
	if _, err := BuildMeanHistogram(a, a, b); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("error = %v; want ErrShapeMismatch", err)
	}
}

func TestComputeHistogramRebins(t *testing.T) {
	src := makeNoiseNRGBA(16, 16, 3)
	r, g, b := ComputeHistogram(src, 16)
	for name, h := range map[string][]int{"r": r, "g": g, "b": b} {
		if len(h) != 16 {
			t.Fatalf("%s: %d bins; want 16", name, len(h))
		}
		sum := 0
		for _, n := range h {
			sum += n
		}
		if sum != 256 {
			t.Fatalf("%s: bins sum to %d; want 256", name, sum)
		}
	}
}

func BenchmarkEqualizeGray(b *testing.B) {
	g := Grayscale(makeNoiseNRGBA(512, 512, 1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = EqualizeGray(g)
	}
}
