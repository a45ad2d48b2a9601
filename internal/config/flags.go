package config

// This file binds CLI flags onto a Config. Flags are grouped into analysis,
// output, display, and utility. Negated flags (e.g. --no-progress) are
// applied after parsing so Config defaults hold unless set.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// FlagState holds boolean flags that are applied to the Config after
// parsing. They either invert a default (noProgress -> ShowProgress=false)
// or pick an enum value (noColor -> ColorNever).
type FlagState struct {
	noProgress bool
	forceColor bool
	noColor    bool
}

// BindFlags registers every autofocus flag on fs, writing into cfg. Call
// [FlagState.Apply] after fs has been parsed.
func BindFlags(fs *pflag.FlagSet, cfg *Config) *FlagState {
	var st FlagState
	defineAnalysisFlags(fs, cfg)
	defineOutputFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &st)
	defineUtilityFlags(fs, cfg)
	return &st
}

// defineAnalysisFlags registers --digits, --backend, -w/--workers.
func defineAnalysisFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.FrameDigits, "digits", cfg.FrameDigits, "Width of the frame-number field before the extension")
	fs.Var(&backendValue{&cfg.Backend}, "backend", "Sharpness backend: bild | gocv")
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Frames analyzed in parallel (0 = one per CPU)")
}

// defineOutputFlags registers --format and --chart.
func defineOutputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&formatValue{&cfg.Format}, "format", "Result format: tsv | csv | json")
	fs.StringVar(&cfg.ChartFile, "chart", cfg.ChartFile, "Also render a sharpness chart to this path (.png, .svg, .pdf)")
}

// defineDisplayFlags registers progress, color, verbosity and --log.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, st *FlagState) {
	fs.BoolVar(&cfg.ShowProgress, "progress", cfg.ShowProgress, "Draw a progress bar when stderr is a terminal")
	fs.BoolVar(&st.noProgress, "no-progress", false, "Do not draw a progress bar")
	fs.BoolVar(&st.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&st.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log every analyzed frame")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "Only log errors")
	fs.StringVarP(&cfg.LogFile, "log", "l", cfg.LogFile, "Append logs to file")
}

// defineUtilityFlags registers -c/--check and --config.
func defineUtilityFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "Run diagnostics (decoders, backends, self-test) and exit")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Read settings from a YAML file; flags take precedence")
}

// Apply copies negated and override flag values into cfg.
func (st *FlagState) Apply(cfg *Config) {
	if st.noProgress {
		cfg.ShowProgress = false
	}
	if st.noColor {
		cfg.ColorMode = ColorNever
	} else if st.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// SetPositional sets InputDir and OutputFile from the positional args when
// not in CheckOnly mode.
func SetPositional(cfg *Config, args []string) error {
	if cfg.CheckOnly {
		return nil
	}
	if len(args) != 2 {
		return fmt.Errorf("need exactly frames_directory and result_file (got %d args)", len(args))
	}
	cfg.InputDir = NormalizeDirArg(args[0])
	cfg.OutputFile = args[1]
	return nil
}

// pflag.Value adapters so enum types can be used with fs.Var.

type formatValue struct{ p *OutputFormat }

func (f *formatValue) String() string { return string(*f.p) }
func (f *formatValue) Type() string   { return "format" }
func (f *formatValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "tsv":
		*f.p = FormatTSV
	case "csv":
		*f.p = FormatCSV
	case "json":
		*f.p = FormatJSON
	default:
		return fmt.Errorf("invalid format %q (use 'tsv', 'csv' or 'json')", s)
	}
	return nil
}

type backendValue struct{ p *Backend }

func (b *backendValue) String() string { return string(*b.p) }
func (b *backendValue) Type() string   { return "backend" }
func (b *backendValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "bild":
		*b.p = BackendBild
	case "gocv", "opencv":
		*b.p = BackendGocv
	default:
		return fmt.Errorf("invalid backend %q (use 'bild' or 'gocv')", s)
	}
	return nil
}
