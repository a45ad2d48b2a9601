package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/backmassage/autofocus/internal/errs"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/data/frames", "/data/frames"},
		{"single trailing slash", "/data/frames/", "/data/frames"},
		{"multiple trailing slashes", "/data/frames///", "/data/frames"},
		{"root path", "/", "/"},
		{"relative path", "frames", "frames"},
		{"relative with slash", "frames/", "frames"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.FrameDigits != 5 {
		t.Errorf("FrameDigits = %d, want 5", cfg.FrameDigits)
	}
	if cfg.Format != FormatTSV {
		t.Errorf("Format = %q, want tsv", cfg.Format)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1 (sequential)", cfg.Workers)
	}
	if cfg.Backend != BackendBild {
		t.Errorf("Backend = %q, want bild", cfg.Backend)
	}
}

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.InputDir = "frames"
	cfg.OutputFile = "result.txt"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults with paths", func(*Config) {}, false},
		{"digits zero", func(c *Config) { c.FrameDigits = 0 }, true},
		{"digits max", func(c *Config) { c.FrameDigits = 19 }, false},
		{"digits overflow uint64", func(c *Config) { c.FrameDigits = 20 }, true},
		{"workers zero means NumCPU", func(c *Config) { c.Workers = 0 }, false},
		{"workers negative", func(c *Config) { c.Workers = -2 }, true},
		{"format csv", func(c *Config) { c.Format = FormatCSV }, false},
		{"format unknown", func(c *Config) { c.Format = "xml" }, true},
		{"backend gocv", func(c *Config) { c.Backend = BackendGocv }, false},
		{"backend unknown", func(c *Config) { c.Backend = "cuda" }, true},
		{"color unknown", func(c *Config) { c.ColorMode = "rainbow" }, true},
		{"verbose and quiet", func(c *Config) { c.Verbose, c.Quiet = true, true }, true},
		{"missing input", func(c *Config) { c.InputDir = "" }, true},
		{"missing output", func(c *Config) { c.OutputFile = "" }, true},
		{"check needs no paths", func(c *Config) { c.InputDir, c.OutputFile, c.CheckOnly = "", "", true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEffectiveWorkers(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.EffectiveWorkers(); got != 1 {
		t.Errorf("EffectiveWorkers() = %d, want 1", got)
	}
	cfg.Workers = 0
	if got := cfg.EffectiveWorkers(); got < 1 {
		t.Errorf("EffectiveWorkers() with 0 = %d, want >= 1", got)
	}
}

func TestOutputInsideInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		want   bool
	}{
		{"sibling", "/data/frames", "/data/result.txt", false},
		{"inside", "/data/frames", "/data/frames/result.txt", true},
		{"nested deeper", "/data/frames", "/data/frames/out/result.txt", false},
		{"prefix lookalike", "/data/frames", "/data/frames2/result.txt", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputInsideInput(tt.input, tt.output); got != tt.want {
				t.Errorf("OutputInsideInput(%q, %q) = %v, want %v", tt.input, tt.output, got, tt.want)
			}
		})
	}
}

// --- flags ---

func parse(t *testing.T, args ...string) (Config, *pflag.FlagSet, error) {
	t.Helper()
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("autofocus", pflag.ContinueOnError)
	st := BindFlags(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, fs, err
	}
	if err := ApplyFile(fs, &cfg); err != nil {
		return cfg, fs, err
	}
	st.Apply(&cfg)
	if err := SetPositional(&cfg, fs.Args()); err != nil {
		return cfg, fs, err
	}
	return cfg, fs, nil
}

func TestBindFlags_Defaults(t *testing.T) {
	cfg, _, err := parse(t, "frames/", "out.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InputDir != "frames" || cfg.OutputFile != "out.tsv" {
		t.Errorf("paths = %q, %q", cfg.InputDir, cfg.OutputFile)
	}
	if cfg.FrameDigits != 5 || cfg.Format != FormatTSV || !cfg.ShowProgress || cfg.ColorMode != ColorAuto {
		t.Errorf("defaults changed by parsing: %+v", cfg)
	}
}

func TestBindFlags_Overrides(t *testing.T) {
	cfg, _, err := parse(t,
		"--digits", "4", "--format", "JSON", "-w", "3", "--backend", "opencv",
		"--chart", "s.svg", "--no-progress", "--no-color", "-v", "-l", "run.log",
		"in", "out.json")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameDigits != 4 {
		t.Errorf("FrameDigits = %d, want 4", cfg.FrameDigits)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.Backend != BackendGocv {
		t.Errorf("Backend = %q, want gocv", cfg.Backend)
	}
	if cfg.ChartFile != "s.svg" || cfg.LogFile != "run.log" {
		t.Errorf("ChartFile/LogFile = %q/%q", cfg.ChartFile, cfg.LogFile)
	}
	if cfg.ShowProgress {
		t.Error("ShowProgress should be false with --no-progress")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if !cfg.Verbose {
		t.Error("Verbose should be set by -v")
	}
}

func TestBindFlags_InvalidEnum(t *testing.T) {
	if _, _, err := parse(t, "--format", "xml", "in", "out"); err == nil {
		t.Error("expected error for --format xml")
	}
	if _, _, err := parse(t, "--backend", "cuda", "in", "out"); err == nil {
		t.Error("expected error for --backend cuda")
	}
}

func TestSetPositional(t *testing.T) {
	tests := []struct {
		name    string
		check   bool
		args    []string
		wantErr bool
	}{
		{"two args", false, []string{"in", "out"}, false},
		{"one arg", false, []string{"in"}, true},
		{"three args", false, []string{"a", "b", "c"}, true},
		{"check ignores args", true, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = tt.check
			err := SetPositional(&cfg, tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("SetPositional error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// --- YAML file ---

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "autofocus.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "digits: 6\nformat: csv\nworkers: 2\nchart: chart.png\ncolor: never\n")
	cfg := DefaultConfig()
	if err := LoadFile(path, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.FrameDigits != 6 || cfg.Format != FormatCSV || cfg.Workers != 2 ||
		cfg.ChartFile != "chart.png" || cfg.ColorMode != ColorNever {
		t.Errorf("file not applied: %+v", cfg)
	}
	if !cfg.ShowProgress {
		t.Error("keys absent from the file must keep their value")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"unknown key", func(t *testing.T) string { return writeConfig(t, "sharpen: true\n") }},
		{"bad type", func(t *testing.T) string { return writeConfig(t, "digits: five\n") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := LoadFile(tt.path(t), &cfg)
			if !errors.Is(err, errs.ErrConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestApplyFile_FlagsWin(t *testing.T) {
	path := writeConfig(t, "digits: 6\nformat: csv\nworkers: 4\n")
	cfg, _, err := parse(t, "--config", path, "--format", "json", "in", "out")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FrameDigits != 6 {
		t.Errorf("FrameDigits = %d, want 6 from file", cfg.FrameDigits)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4 from file", cfg.Workers)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %q, want json from flag", cfg.Format)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", cfg.ConfigFile, path)
	}
}
