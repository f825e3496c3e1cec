package cli

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"github.com/spakin/netpbm"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// LoadImage reads an image from disk, applying any EXIF orientation. The
// returned format is derived from the extension ("bmp", "png", ...).
// BMP, TIFF, PNG, JPEG, GIF and PNM inputs are understood.
func LoadImage(path string) (image.Image, string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", err
	}
	return img, formatFromPath(path), nil
}

func formatFromPath(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".tif", ".tiff":
		return "tiff"
	case ".pbm", ".pgm", ".ppm", ".pnm", ".pam":
		return "pnm"
	case "":
		return "unknown"
	default:
		return strings.TrimPrefix(ext, ".")
	}
}

// Downscale shrinks img so its longest side is at most maxDim, keeping the
// aspect ratio. Images that already fit, or maxDim <= 0, are returned as is.
func Downscale(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
}

// SaveImage saves an image.Image to disk using format inferred from the filename extension.
// Supports .bmp, .tif/.tiff, .png, .jpg/.jpeg, .gif and .pgm/.ppm/.pnm; anything else is PNG.
func SaveImage(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".bmp":
		return bmp.Encode(f, img)
	case ".tif", ".tiff":
		return tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 92})
	case ".gif":
		return gif.Encode(f, img, nil)
	case ".pgm":
		return netpbm.Encode(f, img, &netpbm.EncodeOptions{Format: netpbm.PGM, MaxValue: 255})
	case ".ppm", ".pnm":
		return netpbm.Encode(f, img, &netpbm.EncodeOptions{Format: netpbm.PPM, MaxValue: 255})
	default:
		// default to PNG
		return png.Encode(f, img)
	}
}

// GetImageInfoImage returns a short info string for an image.Image
func GetImageInfoImage(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("nil image")
	}
	b := img.Bounds()
	model := "unknown"
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		model = "gray"
	case *image.Paletted:
		model = "paletted"
	case *image.YCbCr:
		model = "ycbcr"
	case *image.NRGBA, *image.NRGBA64, *image.RGBA, *image.RGBA64:
		model = "rgba"
	}
	return fmt.Sprintf("Model: %s, Width: %d, Height: %d", model, b.Dx(), b.Dy()), nil
}
