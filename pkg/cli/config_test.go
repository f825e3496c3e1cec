package cli

import (
	"strings"
	"testing"

	"github.com/Fepozopo/histeq/pkg/stdimg"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv(envMap(nil))
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.InputDir != "images" || cfg.Ext != ".bmp" || cfg.First != 1 || cfg.Last != 20 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.OutputDirOrDefault() != "images" || cfg.OutExtOrDefault() != ".bmp" {
		t.Fatalf("output defaults: dir=%q ext=%q", cfg.OutputDirOrDefault(), cfg.OutExtOrDefault())
	}
	if got := strings.Join(cfg.Variants, ","); got != "gray,eq,1,2,3" {
		t.Fatalf("variants = %s", got)
	}
	if cfg.Intensity != stdimg.IntensityMean || cfg.Rescale != stdimg.RescaleNormalize {
		t.Fatalf("HSI defaults: %v %v", cfg.Intensity, cfg.Rescale)
	}
	ids := cfg.ImageIDs()
	if len(ids) != 20 || ids[0] != "1" || ids[19] != "20" {
		t.Fatalf("ids = %v", ids)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestConfigFromEnv(t *testing.T) {
	cfg, err := ConfigFromEnv(envMap(map[string]string{
		"HISTEQ_INPUT_DIR":  "in",
		"HISTEQ_OUTPUT_DIR": "out",
		"HISTEQ_EXT":        "PNG",
		"HISTEQ_OUT_EXT":    ".tif",
		"HISTEQ_IDS":        "a, b,,c",
		"HISTEQ_VARIANTS":   "eq,3",
		"HISTEQ_INTENSITY":  "legacy",
		"HISTEQ_RESCALE":    "scale",
		"HISTEQ_WORKERS":    "3",
		"HISTEQ_MAX_DIM":    "640",
		"HISTEQ_CHARTS":     "yes",
		"HISTEQ_DEBUG":      "0",
	}))
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.InputDir != "in" || cfg.OutputDir != "out" || cfg.Ext != ".png" || cfg.OutExt != ".tif" {
		t.Fatalf("paths: %+v", cfg)
	}
	if got := strings.Join(cfg.ImageIDs(), ","); got != "a,b,c" {
		t.Fatalf("ids = %s", got)
	}
	if cfg.Intensity != stdimg.IntensityLegacy || cfg.Rescale != stdimg.RescaleScale {
		t.Fatalf("HSI options: %v %v", cfg.Intensity, cfg.Rescale)
	}
	if cfg.Workers != 3 || cfg.MaxDim != 640 || !cfg.Charts || cfg.Debug {
		t.Fatalf("numeric/bool settings: %+v", cfg)
	}
}

func TestConfigFromEnvErrors(t *testing.T) {
	cases := map[string]string{
		"HISTEQ_FIRST":     "one",
		"HISTEQ_WORKERS":   "0",
		"HISTEQ_VARIANTS":  "eq,4",
		"HISTEQ_INTENSITY": "luma",
		"HISTEQ_RESCALE":   "stretch",
		"HISTEQ_CHARTS":    "maybe",
	}
	for k, v := range cases {
		_, err := ConfigFromEnv(envMap(map[string]string{k: v}))
		if err == nil {
			t.Fatalf("%s=%s: expected error", k, v)
		}
		if !strings.Contains(err.Error(), k) {
			t.Fatalf("%s=%s: error %q does not name the variable", k, v, err)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.First, cfg.Last = 5, 2
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for empty range")
	}
	cfg.IDs = []string{"x"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("explicit ids should override range: %v", err)
	}
	if err := cfg.Set("NOPE", "1"); err == nil {
		t.Fatalf("expected error for unknown setting")
	}
}
