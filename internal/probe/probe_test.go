package probe

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()

	jpgPath := filepath.Join(dir, "frame00004.jpg")
	f, err := os.Create(jpgPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, 24, 16)), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	gray16 := image.NewGray16(image.Rect(0, 0, 4, 3))
	gray16.SetGray16(1, 1, color.Gray16{Y: 40000})

	tests := []struct {
		name     string
		path     string
		format   string
		res      string
		channels int
		depth    int
	}{
		{"gray png", writePNG(t, dir, "frame00001.png", image.NewGray(image.Rect(0, 0, 8, 6))), "png", "8x6", 1, 8},
		{"16-bit gray png", writePNG(t, dir, "frame00002.png", gray16), "png", "4x3", 1, 16},
		{"rgba png", writePNG(t, dir, "frame00003.png", image.NewNRGBA(image.Rect(0, 0, 5, 5))), "png", "5x5", 4, 8},
		{"jpeg", jpgPath, "jpeg", "24x16", 3, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Probe(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if r.Format != tt.format {
				t.Errorf("Format = %q, want %q", r.Format, tt.format)
			}
			if r.Resolution() != tt.res {
				t.Errorf("Resolution() = %q, want %q", r.Resolution(), tt.res)
			}
			if r.Channels != tt.channels || r.BitDepth != tt.depth {
				t.Errorf("channels/depth = %d/%d, want %d/%d", r.Channels, r.BitDepth, tt.channels, tt.depth)
			}
			if r.IsHighBitDepth() != (tt.depth > 8) {
				t.Errorf("IsHighBitDepth() = %v for depth %d", r.IsHighBitDepth(), tt.depth)
			}
		})
	}
}

func TestProbe_Errors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "frame00001.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{garbage, filepath.Join(dir, "missing.png")} {
		if _, err := Probe(path); err == nil {
			t.Errorf("Probe(%q) should fail", path)
		}
	}
}

func TestResult_Resolution(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want string
	}{
		{"full hd", Result{Width: 1920, Height: 1080}, "1920x1080"},
		{"zero width", Result{Height: 1080}, "unknown"},
		{"negative", Result{Width: -1, Height: 5}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Resolution(); got != tt.want {
				t.Errorf("Resolution() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResult_SameGeometry(t *testing.T) {
	a := &Result{Width: 10, Height: 20}
	if !a.SameGeometry(&Result{Width: 10, Height: 20, Format: "jpeg"}) {
		t.Error("equal dimensions should match")
	}
	if a.SameGeometry(&Result{Width: 20, Height: 10}) {
		t.Error("swapped dimensions should not match")
	}
}
