package stdimg

import (
	"fmt"
	"image"
	"strconv"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// ApplyCommand applies one registered command to img and returns a new image.
// The source is never modified. See Commands for names and arguments.
func ApplyCommand(img image.Image, commandName string, args []string) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	switch commandName {
	case "grayscale":
		if len(args) != 0 {
			return nil, fmt.Errorf("grayscale takes no args")
		}
		if g, ok := img.(*image.Gray); ok {
			return cloneGray(g), nil
		}
		return Grayscale(ToNRGBA(img)), nil

	case "equalize":
		if len(args) != 0 {
			return nil, fmt.Errorf("equalize takes no args")
		}
		out, err := EqualizeGray(toGray(img))
		if err != nil {
			return nil, err
		}
		return out, nil

	case "equalizeChannels":
		if len(args) != 0 {
			return nil, fmt.Errorf("equalizeChannels takes no args")
		}
		out, err := EqualizeChannels(ToNRGBA(img))
		if err != nil {
			return nil, err
		}
		return out, nil

	case "equalizeAverage":
		if len(args) != 0 {
			return nil, fmt.Errorf("equalizeAverage takes no args")
		}
		out, err := EqualizeAverage(ToNRGBA(img))
		if err != nil {
			return nil, err
		}
		return out, nil

	case "equalizeHSI":
		// equalizeHSI [intensity] [rescale]
		if len(args) > 2 {
			return nil, fmt.Errorf("equalizeHSI takes at most 2 args: intensity rescale")
		}
		var opts HSIOptions
		if len(args) >= 1 && args[0] != "" {
			f, err := ParseIntensityFormula(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid intensity: %w", err)
			}
			opts.Intensity = f
		}
		if len(args) >= 2 && args[1] != "" {
			m, err := ParseRescaleMode(args[1])
			if err != nil {
				return nil, fmt.Errorf("invalid rescale: %w", err)
			}
			opts.Rescale = m
		}
		out, err := EqualizeHSI(ToNRGBA(img), opts)
		if err != nil {
			return nil, err
		}
		return out, nil

	case "histogram":
		// optional arg: bins
		bins := Levels
		if len(args) > 0 && args[0] != "" {
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, fmt.Errorf("invalid bins: %w", err)
			}
			if v > 0 {
				bins = v
			}
		}
		rHist, gHist, bHist := ComputeHistogram(ToNRGBA(img), bins)
		return RenderHistogramImage(rHist, gHist, bHist, 512, 120), nil

	default:
		return nil, fmt.Errorf("unsupported command: %s", commandName)
	}
}

// toGray returns img itself when it already is a single plane, its luma otherwise.
func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	return Grayscale(ToNRGBA(img))
}
