package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/Fepozopo/histeq/pkg/stdimg"
)

// ErrUsage is returned when the command line cannot be understood; usage has
// already been printed.
var ErrUsage = errors.New("usage error")

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: histeq <command> [args]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  batch    [-in dir] [-out dir] [-ext .bmp] [-out-ext .png] [-first 1] [-last 20] [-ids a,b]")
	fmt.Fprintln(w, "           [-variants gray,eq,1,2,3] [-intensity mean|legacy] [-rescale normalize|scale]")
	fmt.Fprintln(w, "           [-workers n] [-max-dim px] [-charts]")
	fmt.Fprintln(w, "  apply    -in input -out output <command> [args...]")
	fmt.Fprintln(w, "  commands list engine commands and their parameters")
	fmt.Fprintln(w, "  version  print the version")
	fmt.Fprintln(w, "Settings are also read from HISTEQ_* environment variables and an optional .env file.")
}

// Run executes one subcommand. args excludes the program name.
func Run(args []string) error {
	return RunContext(context.Background(), args, os.Stdout, os.Stderr)
}

// RunContext is Run with explicit context and output streams.
func RunContext(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		usage(stderr)
		return ErrUsage
	}
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	SetDebug(cfg.Debug)
	if minVer := os.Getenv(EnvPrefix + "MIN_VERSION"); minVer != "" {
		if err := CheckMinVersion(minVer); err != nil {
			return err
		}
	}

	switch args[0] {
	case "batch":
		return runBatch(ctx, cfg, args[1:], stdout, stderr)
	case "apply":
		return runApply(args[1:], stdout, stderr)
	case "commands":
		return runCommands(stdout)
	case "version":
		fmt.Fprintln(stdout, VersionString())
		return nil
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		usage(stderr)
		return ErrUsage
	}
}

func runBatch(ctx context.Context, cfg Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(stderr)
	for _, f := range []struct{ flag, setting, usage string }{
		{"in", "INPUT_DIR", "input directory"},
		{"out", "OUTPUT_DIR", "output directory (default: input directory)"},
		{"ext", "EXT", "input extension"},
		{"out-ext", "OUT_EXT", "output extension (default: input extension)"},
		{"first", "FIRST", "first numeric id"},
		{"last", "LAST", "last numeric id"},
		{"ids", "IDS", "comma-separated ids, overrides -first/-last"},
		{"variants", "VARIANTS", "comma-separated variants: gray,eq,1,2,3"},
		{"intensity", "INTENSITY", "HSI intensity formula: mean or legacy"},
		{"rescale", "RESCALE", "HSI output conversion: normalize or scale"},
		{"workers", "WORKERS", "images processed concurrently"},
		{"max-dim", "MAX_DIM", "downscale longest side to this many pixels (0 = off)"},
	} {
		setting := f.setting
		fs.Func(f.flag, f.usage, func(v string) error { return cfg.Set(setting, v) })
	}
	fs.BoolFunc("charts", "write <id>_hist.png before/after histogram charts", func(v string) error {
		return cfg.Set("CHARTS", v)
	})
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("batch: unexpected arguments %v", fs.Args())
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	results, err := RunBatch(ctx, cfg)
	if err != nil {
		return err
	}
	n := 0
	for _, r := range results {
		n += len(r.Outputs)
	}
	fmt.Fprintf(stdout, "processed %d images, wrote %d files to %s\n", len(results), n, cfg.OutputDirOrDefault())
	return nil
}

func runApply(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inPath := fs.String("in", "", "input image")
	outPath := fs.String("out", "", "output image (format from extension)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" || fs.NArg() < 1 {
		return errors.New("apply: -in, -out and a command are required")
	}
	name := fs.Arg(0)
	cmdArgs, err := NormalizeArgs(name, fs.Args()[1:])
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	img, format, err := LoadImage(*inPath)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", *inPath, err)
	}
	debugf("loaded %s (%s)", *inPath, format)
	out, err := stdimg.ApplyCommand(img, name, cmdArgs)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := SaveImage(*outPath, out); err != nil {
		return fmt.Errorf("failed to save %s: %w", *outPath, err)
	}
	if info, ierr := GetImageInfoImage(out); ierr == nil {
		fmt.Fprintf(stdout, "%s -> %s (%s)\n", *inPath, *outPath, info)
	}
	return nil
}

func runCommands(stdout io.Writer) error {
	store := NewMetaStoreFromStdimg(stdimg.Commands)
	for _, c := range store.Commands {
		tip, _, err := store.GetCommandHelp(c.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s\n  usage: %s\n  %s\n", c.Name, c.Usage, strings.ReplaceAll(tip, "\n", "\n  "))
	}
	return nil
}
