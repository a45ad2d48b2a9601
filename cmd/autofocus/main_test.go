package main

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_ArgCount(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"none", nil},
		{"one", []string{"frames"}},
		{"three", []string{"a", "b", "c"}},
		{"check with args", []string{"--check", "frames"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			var ue usageError
			if !errors.As(err, &ue) {
				t.Errorf("expected usage error, got %v", err)
			}
		})
	}
}

func TestRoot_Version(t *testing.T) {
	out, err := execute(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, version) {
		t.Errorf("version output = %q", out)
	}
}

func TestRoot_InvalidFlagValue(t *testing.T) {
	if _, err := execute(t, "--digits", "0", "in", "out"); err == nil {
		t.Error("expected validation error for --digits 0")
	}
}

func TestRoot_Analyze(t *testing.T) {
	dir := t.TempDir()
	if err := imaging.Save(imaging.New(8, 8, color.NRGBA{10, 20, 30, 255}), filepath.Join(dir, "frame00007.png")); err != nil {
		t.Fatal(err)
	}
	result := filepath.Join(t.TempDir(), "result.txt")

	if _, err := execute(t, "-q", "--no-color", "--no-progress", dir, result); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(result)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "7\t0\n" {
		t.Errorf("result = %q, want %q", b, "7\t0\n")
	}
}

func TestRoot_AnalyzeFailureIsReported(t *testing.T) {
	result := filepath.Join(t.TempDir(), "result.txt")
	_, err := execute(t, "-q", "--no-color", filepath.Join(t.TempDir(), "missing"), result)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported failure, got %v", err)
	}
	if _, err := os.Stat(result); !os.IsNotExist(err) {
		t.Error("result file must not exist after a failed run")
	}
}

func TestRoot_Check(t *testing.T) {
	if _, err := execute(t, "--check", "-q", "--no-color"); err != nil {
		t.Errorf("--check failed: %v", err)
	}
}
