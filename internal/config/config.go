// Package config holds runtime configuration: defaults, CLI flag binding,
// the optional YAML config file, and validation. Defaults are 5-digit frame
// numbers, TSV output, and one worker.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// --- Enum types for validated string fields ---

// OutputFormat selects the result file encoding.
type OutputFormat string

const (
	FormatTSV  OutputFormat = "tsv"  // "<frame>\t<sharpness>" per line, no header (default).
	FormatCSV  OutputFormat = "csv"  // Header row plus comma-separated records.
	FormatJSON OutputFormat = "json" // Array of {frame, sharpness, file} objects.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Backend names a sharpness operator backend. Availability is decided by
// the sharpness package at run time; "gocv" needs the gocv build tag.
type Backend string

const (
	BackendBild Backend = "bild" // Pure Go (default).
	BackendGocv Backend = "gocv" // OpenCV via cgo.
)

// DefaultFrameDigits is the width of the frame-number field produced by
// `ffmpeg -i <video> frame%05d.png`.
const DefaultFrameDigits = 5

// maxFrameDigits keeps every field value inside uint64.
const maxFrameDigits = 19

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid with a YAML file, then with CLI flags.
type Config struct {
	// Paths (set from positional args).
	InputDir   string `yaml:"-"`
	OutputFile string `yaml:"-"`

	// Analysis.
	FrameDigits int     `yaml:"digits"`  // Default: 5.
	Backend     Backend `yaml:"backend"` // Default: "bild".
	Workers     int     `yaml:"workers"` // Default: 1. 0 means one per CPU.

	// Output.
	Format    OutputFormat `yaml:"format"` // Default: "tsv".
	ChartFile string       `yaml:"chart"`  // Optional sharpness chart (.png, .svg, .pdf).

	// Display and logging.
	Verbose      bool      `yaml:"verbose"`
	Quiet        bool      `yaml:"quiet"`
	ShowProgress bool      `yaml:"progress"` // Default: true (only drawn on a TTY).
	ColorMode    ColorMode `yaml:"color"`    // Default: "auto".
	LogFile      string    `yaml:"log"`      // Optional log file path.

	// Invocation-only settings.
	CheckOnly  bool   `yaml:"-"` // Run --check diagnostics and exit.
	ConfigFile string `yaml:"-"` // --config path.
}

// DefaultConfig returns the settings used when no file or flag overrides them.
func DefaultConfig() Config {
	return Config{
		FrameDigits:  DefaultFrameDigits,
		Backend:      BackendBild,
		Workers:      1,
		Format:       FormatTSV,
		ShowProgress: true,
		ColorMode:    ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks numeric ranges and enum fields. Outside CheckOnly mode it
// also requires both positional paths.
func (c *Config) Validate() error {
	if c.FrameDigits < 1 || c.FrameDigits > maxFrameDigits {
		return fmt.Errorf("invalid digits %d (use 1-%d)", c.FrameDigits, maxFrameDigits)
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid workers %d (use 0 for one per CPU, or a positive count)", c.Workers)
	}

	switch c.Format {
	case FormatTSV, FormatCSV, FormatJSON:
		// valid
	default:
		return errors.New("invalid format (use 'tsv', 'csv' or 'json')")
	}

	switch c.Backend {
	case BackendBild, BackendGocv:
		// valid
	default:
		return errors.New("invalid backend (use 'bild' or 'gocv')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Verbose && c.Quiet {
		return errors.New("--verbose and --quiet are mutually exclusive")
	}

	if c.CheckOnly {
		return nil
	}
	if c.InputDir == "" || c.OutputFile == "" {
		return errors.New("need exactly frames_directory and result_file")
	}
	return nil
}

// EffectiveWorkers resolves Workers=0 to the CPU count.
func (c *Config) EffectiveWorkers() int {
	if c.Workers == 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}

// OutputInsideInput reports whether the result file would be written into
// the frames directory itself, where the next run would try to analyze it
// as a frame. Both arguments must be absolute, symlink-resolved paths.
func OutputInsideInput(inputAbs, outputAbs string) bool {
	return filepath.Dir(outputAbs) == inputAbs
}
