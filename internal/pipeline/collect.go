package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/autofocus/internal/errs"
	"github.com/backmassage/autofocus/internal/frame"
	"github.com/backmassage/autofocus/internal/logging"
	"github.com/backmassage/autofocus/internal/naming"
)

// Scorer computes the sharpness of one image file.
type Scorer interface {
	Score(path string) (float64, error)
}

// CollectOptions configures Collect.
type CollectOptions struct {
	Digits   int             // Width of the frame-number field.
	Workers  int             // Files analyzed concurrently; <= 1 is sequential.
	Analyzer Scorer          // Required.
	Progress io.Writer       // Progress bar destination; nil draws nothing.
	Refresh  time.Duration   // Minimum time between bar redraws.
	Log      *logging.Logger // Optional per-frame debug output.
	Verbose  bool
}

// Collect analyzes every entry of dir and returns the results sorted by
// frame number. The first failure aborts the whole collection.
func Collect(ctx context.Context, dir string, opts CollectOptions) ([]frame.Info, error) {
	fi, err := os.Stat(dir)
	if err != nil {
		return nil, errs.InvalidDirectory(dir, err)
	}
	if !fi.IsDir() {
		return nil, errs.InvalidDirectory(dir, nil)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.InvalidDirectory(dir, err)
	}

	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = filepath.Join(dir, e.Name())
	}

	bar := newBar(opts.Progress, opts.Refresh, len(paths))
	defer bar.finish()

	var frames []frame.Info
	if opts.Workers > 1 {
		frames, err = collectParallel(ctx, paths, opts, bar)
	} else {
		frames, err = collectSequential(ctx, paths, opts, bar)
	}
	if err != nil {
		return nil, err
	}

	frame.SortByNumber(frames)
	return frames, nil
}

func collectSequential(ctx context.Context, paths []string, opts CollectOptions, bar *progress) ([]frame.Info, error) {
	frames := make([]frame.Info, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, err := analyzeOne(path, opts)
		if err != nil {
			return nil, err
		}
		frames = append(frames, info)
		bar.add()
	}
	return frames, nil
}

// collectParallel fills a slice indexed by entry position so the stable sort
// that follows sees the same order as the sequential path.
func collectParallel(ctx context.Context, paths []string, opts CollectOptions, bar *progress) ([]frame.Info, error) {
	frames := make([]frame.Info, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, path := range paths {
		if gctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, err := analyzeOne(path, opts)
			if err != nil {
				return err
			}
			frames[i] = info
			bar.add()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// analyzeOne parses the frame number before decoding so name errors fail
// without touching pixels.
func analyzeOne(path string, opts CollectOptions) (frame.Info, error) {
	n, err := naming.ParseFrameNumber(path, opts.Digits)
	if err != nil {
		return frame.Info{}, err
	}
	score, err := opts.Analyzer.Score(path)
	if err != nil {
		return frame.Info{}, err
	}
	if opts.Log != nil {
		opts.Log.Debug(opts.Verbose, "frame %d: %s -> %v", n, filepath.Base(path), score)
	}
	return frame.Info{Number: n, Sharpness: score, Path: path}, nil
}

// progress wraps an optional progress bar; the zero value draws nothing.
type progress struct {
	bar *progressbar.ProgressBar
}

func newBar(w io.Writer, refresh time.Duration, total int) *progress {
	if w == nil || total == 0 {
		return &progress{}
	}
	return &progress{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Analyzing frames"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionThrottle(refresh),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetWidth(30),
	)}
}

func (p *progress) add() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
