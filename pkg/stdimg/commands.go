// Package stdimg: authoritative registry of engine commands.
//
// This file mirrors the commands implemented in ApplyCommand in
// pkg/stdimg/engine.go. Keep this list up-to-date when you add or
// modify commands so callers (CLI, docs, help text) can read a single
// source of truth.

package stdimg

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string", "enum"
	Required    bool
	Default     string // textual default (for help only)
	Description string
	Options     []string // accepted values when Type == "enum"
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the authoritative list of commands implemented by the engine.
// Keep this synchronized with ApplyCommand in pkg/stdimg/engine.go.
var Commands = []CommandSpec{
	{
		Name:        "grayscale",
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Convert to luma (0.299 R + 0.587 G + 0.114 B).",
	},
	{
		Name:        "equalize",
		Args:        []ArgSpec{},
		Usage:       "equalize",
		Description: "Equalize a single-channel image (colour input is converted to luma first).",
	},
	{
		Name:        "equalizeChannels",
		Args:        []ArgSpec{},
		Usage:       "equalizeChannels",
		Description: "Equalize R, G and B independently.",
	},
	{
		Name:        "equalizeAverage",
		Args:        []ArgSpec{},
		Usage:       "equalizeAverage",
		Description: "Equalize R, G and B with one map built from their averaged histogram.",
	},
	{
		Name: "equalizeHSI",
		Args: []ArgSpec{
			{Name: "intensity", Type: "enum", Default: "mean", Description: "intensity formula", Options: []string{"mean", "legacy"}},
			{Name: "rescale", Type: "enum", Default: "normalize", Description: "8-bit conversion of the result", Options: []string{"normalize", "scale"}},
		},
		Usage:       "equalizeHSI [intensity] [rescale]",
		Description: "Equalize the intensity channel in HSI space.",
	},
	{
		Name:        "histogram",
		Args:        []ArgSpec{{Name: "bins", Type: "int", Default: "256", Description: "number of bins (1..256)"}},
		Usage:       "histogram [bins]",
		Description: "Render an overlaid R/G/B histogram image.",
	},
}

// LookupCommand returns the registered spec for name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}
