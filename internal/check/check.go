// Package check provides system diagnostics (--check mode): image decoder
// round-trips, sharpness backend availability, a scoring self-test and a
// collection pass over generated frame files.
package check

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/backmassage/autofocus/internal/config"
	"github.com/backmassage/autofocus/internal/frame"
	"github.com/backmassage/autofocus/internal/naming"
	"github.com/backmassage/autofocus/internal/pipeline"
	"github.com/backmassage/autofocus/internal/sharpness"
	"github.com/backmassage/autofocus/internal/term"
)

// Sentinel errors reported by the individual checks.
var (
	ErrBackendUnavailable = errors.New("configured sharpness backend is not compiled in")
	ErrSelfTestFailed     = errors.New("sharp test image did not outscore its blurred copy")
	ErrCollectFailed      = errors.New("generated frames were not collected in frame order")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// decoderFormats are the encodings exercised by checkDecoders.
var decoderFormats = []imaging.Format{
	imaging.PNG,
	imaging.JPEG,
	imaging.GIF,
	imaging.BMP,
	imaging.TIFF,
}

// RunCheck runs every diagnostic and reports whether all passed. Failures
// are logged; it never stops early.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== System Check ===")
	log.Debug(cfg.Verbose, "Color output: %v", term.Enabled())

	ok := checkDecoders(log)
	if err := checkBackends(cfg, log); err != nil {
		ok = false
	}
	if err := checkSelfTest(cfg, log); err != nil {
		ok = false
	}
	if err := checkCollect(cfg, log); err != nil {
		ok = false
	}

	if ok {
		log.Success("All checks passed")
	} else {
		log.Error("Some checks failed")
	}
	return ok
}

// checkDecoders encodes a small image in each supported format and decodes
// it back.
func checkDecoders(log Logger) bool {
	src := testPattern(8, 8)
	ok := true
	var working []string
	for _, f := range decoderFormats {
		if err := roundTrip(src, f); err != nil {
			log.Error("%s decoder: %v", f, err)
			ok = false
			continue
		}
		working = append(working, f.String())
	}
	if len(working) > 0 {
		log.Success("Decoders: %s", strings.Join(working, ", "))
	}
	return ok
}

func roundTrip(src image.Image, f imaging.Format) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, src, f); err != nil {
		return err
	}
	img, err := imaging.Decode(&buf)
	if err != nil {
		return err
	}
	if img.Bounds().Dx() != src.Bounds().Dx() || img.Bounds().Dy() != src.Bounds().Dy() {
		return errors.New("decoded size differs from source")
	}
	return nil
}

// checkBackends lists compiled-in backends and verifies the configured one.
func checkBackends(cfg *config.Config, log Logger) error {
	log.Info("Sharpness backends: %s", strings.Join(sharpness.Backends(), ", "))
	if _, err := sharpness.NewOperators(string(cfg.Backend)); err != nil {
		log.Error("Backend %s: %v", cfg.Backend, err)
		return ErrBackendUnavailable
	}
	log.Success("Backend %s available", cfg.Backend)
	return nil
}

// checkSelfTest scores a checkerboard and a blurred copy; the sharp one must
// win.
func checkSelfTest(cfg *config.Config, log Logger) error {
	ops, err := sharpness.NewOperators(string(cfg.Backend))
	if err != nil {
		ops = sharpness.DefaultOperators()
	}
	a := sharpness.NewAnalyzer(ops)

	sharp := testPattern(64, 64)
	hi, err := a.ScoreImage(sharp)
	if err != nil {
		log.Error("Self-test: %v", err)
		return err
	}
	lo, err := a.ScoreImage(imaging.Blur(sharp, 3))
	if err != nil {
		log.Error("Self-test: %v", err)
		return err
	}
	log.Debug(cfg.Verbose, "Self-test scores: sharp=%v blurred=%v", hi, lo)
	if hi <= lo {
		log.Error("Self-test (%s): sharp=%v blurred=%v", a.Backend(), hi, lo)
		return ErrSelfTestFailed
	}
	log.Success("Self-test (%s): sharp=%v > blurred=%v", a.Backend(), hi, lo)
	return nil
}

// checkCollect writes blurred and sharp frames under generated names, out of
// order, and collects them back. Numbers must round-trip in frame order.
func checkCollect(cfg *config.Config, log Logger) error {
	dir, err := os.MkdirTemp("", "autofocus-check-")
	if err != nil {
		log.Error("Collect: %v", err)
		return err
	}
	defer os.RemoveAll(dir)

	sharp := testPattern(32, 32)
	numbers := []uint64{3, 1, 2}
	for i, n := range numbers {
		img := image.Image(sharp)
		if i > 0 {
			img = imaging.Blur(sharp, float64(i))
		}
		name := naming.FrameName("frame", n, cfg.FrameDigits, ".png")
		if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
			log.Error("Collect: %v", err)
			return err
		}
	}

	ops, err := sharpness.NewOperators(string(cfg.Backend))
	if err != nil {
		ops = sharpness.DefaultOperators()
	}
	frames, err := pipeline.Collect(context.Background(), dir, pipeline.CollectOptions{
		Digits:   cfg.FrameDigits,
		Workers:  cfg.EffectiveWorkers(),
		Analyzer: sharpness.NewAnalyzer(ops),
	})
	if err != nil {
		log.Error("Collect: %v", err)
		return err
	}
	if len(frames) != len(numbers) || !frame.IsSorted(frames) || frames[0].Number != 1 {
		log.Error("Collect: got %s", describe(frames))
		return ErrCollectFailed
	}
	log.Debug(cfg.Verbose, "Collected: %s", describe(frames))
	log.Success("Collect: %d generated frames in order", len(frames))
	return nil
}

func describe(frames []frame.Info) string {
	parts := make([]string, len(frames))
	for i, f := range frames {
		parts[i] = fmt.Sprintf("%d=%v", f.Number, f.Sharpness)
	}
	return strings.Join(parts, " ")
}

// testPattern is a black and white checkerboard with 8-pixel cells.
func testPattern(w, h int) *image.NRGBA {
	img := imaging.New(w, h, color.NRGBA{0, 0, 0, 255})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/8+y/8)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img
}
