package cli

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Fepozopo/histeq/pkg/stdimg"
)

// EnvPrefix is prepended to every setting name when read from the environment.
const EnvPrefix = "HISTEQ_"

// Config drives a batch run. Zero values are not meaningful; start from
// DefaultConfig or LoadConfig.
type Config struct {
	InputDir  string
	OutputDir string // empty means InputDir
	Ext       string
	OutExt    string // empty means Ext
	First     int
	Last      int
	IDs       []string // overrides First..Last when non-empty
	Variants  []string
	Intensity stdimg.IntensityFormula
	Rescale   stdimg.RescaleMode
	Workers   int
	MaxDim    int
	Charts    bool
	Debug     bool
}

// DefaultConfig mirrors the classic layout: images/1.bmp .. images/20.bmp,
// outputs next to the inputs.
func DefaultConfig() Config {
	return Config{
		InputDir: "images",
		Ext:      ".bmp",
		First:    1,
		Last:     20,
		Variants: append([]string(nil), DefaultVariants...),
		Workers:  runtime.NumCPU(),
	}
}

// Settings lists the names accepted by Set, without EnvPrefix.
var Settings = []string{
	"INPUT_DIR", "OUTPUT_DIR", "EXT", "OUT_EXT", "FIRST", "LAST", "IDS",
	"VARIANTS", "INTENSITY", "RESCALE", "WORKERS", "MAX_DIM", "CHARTS", "DEBUG",
}

// LoadConfig reads an optional .env file, then HISTEQ_* variables, on top of
// DefaultConfig.
func LoadConfig() (Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from getenv. Unset or empty variables keep
// their defaults.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	for _, name := range Settings {
		v := getenv(EnvPrefix + name)
		if v == "" {
			continue
		}
		if err := cfg.Set(name, v); err != nil {
			return cfg, fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
	}
	return cfg, nil
}

// Set assigns one setting from its textual form.
func (c *Config) Set(name, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToUpper(name) {
	case "INPUT_DIR":
		c.InputDir = value
	case "OUTPUT_DIR":
		c.OutputDir = value
	case "EXT":
		c.Ext = normalizeExt(value)
	case "OUT_EXT":
		c.OutExt = normalizeExt(value)
	case "FIRST":
		return setInt(&c.First, value, 0)
	case "LAST":
		return setInt(&c.Last, value, 0)
	case "IDS":
		c.IDs = splitList(value)
	case "VARIANTS":
		vs := splitList(value)
		for _, v := range vs {
			if _, ok := variantCommands[v]; !ok {
				return fmt.Errorf("unknown variant %q (want one of %s)", v, strings.Join(DefaultVariants, ","))
			}
		}
		if len(vs) == 0 {
			return fmt.Errorf("no variants given")
		}
		c.Variants = vs
	case "INTENSITY":
		f, err := stdimg.ParseIntensityFormula(value)
		if err != nil {
			return err
		}
		c.Intensity = f
	case "RESCALE":
		m, err := stdimg.ParseRescaleMode(value)
		if err != nil {
			return err
		}
		c.Rescale = m
	case "WORKERS":
		return setInt(&c.Workers, value, 1)
	case "MAX_DIM":
		return setInt(&c.MaxDim, value, 0)
	case "CHARTS":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		c.Charts = b
	case "DEBUG":
		b, err := parseBool(value)
		if err != nil {
			return err
		}
		c.Debug = b
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return nil
}

// Validate checks cross-field constraints that Set cannot see.
func (c Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory is empty")
	}
	if c.Ext == "" {
		return fmt.Errorf("input extension is empty")
	}
	if len(c.IDs) == 0 && c.Last < c.First {
		return fmt.Errorf("empty id range %d..%d", c.First, c.Last)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}

// ImageIDs returns the explicit id list, or First..Last.
func (c Config) ImageIDs() []string {
	if len(c.IDs) > 0 {
		return append([]string(nil), c.IDs...)
	}
	var ids []string
	for i := c.First; i <= c.Last; i++ {
		ids = append(ids, strconv.Itoa(i))
	}
	return ids
}

// OutputDirOrDefault resolves an empty OutputDir to InputDir.
func (c Config) OutputDirOrDefault() string {
	if c.OutputDir == "" {
		return c.InputDir
	}
	return c.OutputDir
}

// OutExtOrDefault resolves an empty OutExt to Ext.
func (c Config) OutExtOrDefault() string {
	if c.OutExt == "" {
		return c.Ext
	}
	return c.OutExt
}

func setInt(dst *int, s string, lo int) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("expected integer, got %q", s)
	}
	if v < lo {
		return fmt.Errorf("%d is below minimum %d", v, lo)
	}
	*dst = v
	return nil
}

func normalizeExt(s string) string {
	if s == "" || strings.HasPrefix(s, ".") {
		return strings.ToLower(s)
	}
	return "." + strings.ToLower(s)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBool(s string) (bool, error) {
	v, err := parseBoolLikeToString(s)
	if err != nil {
		return false, err
	}
	return v == "true", nil
}

var debugEnabled bool

// SetDebug toggles debugf output.
func SetDebug(on bool) { debugEnabled = on }

func debugf(format string, args ...interface{}) {
	if debugEnabled {
		fmt.Fprintf(os.Stderr, "histeq: "+format+"\n", args...)
	}
}
