package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Fepozopo/histeq/pkg/stdimg"
)

// Step is one engine command with its arguments.
type Step struct {
	Command string
	Args    []string
}

// Variant is a named pipeline whose result is written as <id>_<Suffix><ext>.
type Variant struct {
	Suffix string
	Steps  []Step
}

// DefaultVariants are written in this order for every image.
var DefaultVariants = []string{"gray", "eq", "1", "2", "3"}

// variantCommands maps a variant suffix to its pipeline of commands.
// equalizeHSI arguments are filled in from the Config.
var variantCommands = map[string][]string{
	"gray": {"grayscale"},
	"eq":   {"grayscale", "equalize"},
	"1":    {"equalizeChannels"},
	"2":    {"equalizeAverage"},
	"3":    {"equalizeHSI"},
}

// Pipelines resolves the configured variant names into runnable pipelines.
func (c Config) Pipelines() ([]Variant, error) {
	out := make([]Variant, 0, len(c.Variants))
	for _, name := range c.Variants {
		cmds, ok := variantCommands[name]
		if !ok {
			return nil, fmt.Errorf("unknown variant %q", name)
		}
		v := Variant{Suffix: name}
		for _, cmd := range cmds {
			s := Step{Command: cmd}
			if cmd == "equalizeHSI" {
				s.Args = []string{c.Intensity.String(), c.Rescale.String()}
			}
			v.Steps = append(v.Steps, s)
		}
		out = append(out, v)
	}
	return out, nil
}

// Run applies every step in order.
func (v Variant) Run(img image.Image) (image.Image, error) {
	cur := img
	for _, s := range v.Steps {
		next, err := stdimg.ApplyCommand(cur, s.Command, s.Args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Command, err)
		}
		cur = next
	}
	return cur, nil
}

// OutputPath is where variant v of image id is written.
func (c Config) OutputPath(id string, v Variant) string {
	return filepath.Join(c.OutputDirOrDefault(), id+"_"+v.Suffix+c.OutExtOrDefault())
}

// InputPath is where image id is read from.
func (c Config) InputPath(id string) string {
	return filepath.Join(c.InputDir, id+c.Ext)
}

// BatchResult lists the files written for one image.
type BatchResult struct {
	ID      string
	Outputs []string
}

// RunBatch processes every configured image with at most cfg.Workers images
// in flight. The first failure cancels the remaining images and is returned;
// results are ordered like cfg.ImageIDs().
func RunBatch(parent context.Context, cfg Config) ([]BatchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	variants, err := cfg.Pipelines()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDirOrDefault(), 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	ids := cfg.ImageIDs()
	results := make([]BatchResult, len(ids))
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(cfg.Workers)
	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ProcessImage(cfg, id, variants)
			if err != nil {
				return fmt.Errorf("image %s: %w", id, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// ProcessImage loads one image and writes every variant (and the chart, when
// enabled) for it.
func ProcessImage(cfg Config, id string, variants []Variant) (BatchResult, error) {
	res := BatchResult{ID: id}
	in := cfg.InputPath(id)
	img, format, err := LoadImage(in)
	if err != nil {
		return res, fmt.Errorf("load %s: %w", in, err)
	}
	img = Downscale(img, cfg.MaxDim)
	debugf("loaded %s (%s, %dx%d)", in, format, img.Bounds().Dx(), img.Bounds().Dy())

	for _, v := range variants {
		out, err := v.Run(img)
		if err != nil {
			return res, fmt.Errorf("variant %s: %w", v.Suffix, err)
		}
		path := cfg.OutputPath(id, v)
		if err := SaveImage(path, out); err != nil {
			return res, fmt.Errorf("save %s: %w", path, err)
		}
		debugf("wrote %s", path)
		res.Outputs = append(res.Outputs, path)
	}

	if cfg.Charts {
		path, err := writeChart(cfg, id, img)
		if err != nil {
			return res, err
		}
		res.Outputs = append(res.Outputs, path)
	}
	return res, nil
}

func writeChart(cfg Config, id string, img image.Image) (path string, err error) {
	gray := stdimg.Grayscale(stdimg.ToNRGBA(img))
	eq, err := stdimg.EqualizeGray(gray)
	if err != nil {
		return "", err
	}
	path = filepath.Join(cfg.OutputDirOrDefault(), id+"_hist.png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := WriteHistogramChart(f, "Image "+id, stdimg.BuildHistogram(gray), stdimg.BuildHistogram(eq)); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	debugf("wrote %s", path)
	return path, nil
}
