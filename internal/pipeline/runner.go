package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/backmassage/autofocus/internal/config"
	"github.com/backmassage/autofocus/internal/display"
	"github.com/backmassage/autofocus/internal/errs"
	"github.com/backmassage/autofocus/internal/frame"
	"github.com/backmassage/autofocus/internal/logging"
	"github.com/backmassage/autofocus/internal/probe"
	"github.com/backmassage/autofocus/internal/report"
	"github.com/backmassage/autofocus/internal/sharpness"
	"github.com/backmassage/autofocus/internal/term"
)

// Run is the top-level entry point: collect every frame in cfg.InputDir,
// write the result file, optionally render a chart, and log a summary.
// Nothing is written when collection fails.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats
	start := time.Now()

	ops, err := sharpness.NewOperators(string(cfg.Backend))
	if err != nil {
		return stats, errs.New(errs.KindConfig, "", "unusable backend", err)
	}
	analyzer := sharpness.NewAnalyzer(ops)

	logRunHeader(cfg, log, analyzer.Backend())

	frames, err := Collect(ctx, cfg.InputDir, CollectOptions{
		Digits:   cfg.FrameDigits,
		Workers:  cfg.EffectiveWorkers(),
		Analyzer: analyzer,
		Progress: progressWriter(cfg),
		Refresh:  progressRefresh,
		Log:      log,
		Verbose:  cfg.Verbose,
	})
	if err != nil {
		return stats, err
	}
	stats.Frames = len(frames)
	stats.Analysis = time.Since(start)
	logFrameGeometry(log, frames)

	if err := report.WriteFile(cfg.OutputFile, frames, report.Format(cfg.Format)); err != nil {
		return stats, err
	}
	if fi, err := os.Stat(cfg.OutputFile); err == nil {
		stats.OutputBytes = fi.Size()
	}

	if cfg.ChartFile != "" {
		if len(frames) == 0 {
			log.Warn("No frames analyzed, skipping chart %s", cfg.ChartFile)
		} else if err := report.WriteChart(cfg.ChartFile, frames); err != nil {
			return stats, err
		} else {
			stats.Chart = true
		}
	}

	if sum, ok := report.Summarize(frames); ok {
		stats.Best = sum.Best
		stats.HasBest = true
		logSummary(log, sum)
	} else {
		log.Warn("No frames found in %s", cfg.InputDir)
	}
	stats.Elapsed = time.Since(start)

	log.Success("Wrote %d frame(s) to %s (%s) in %s, %s",
		stats.Frames, cfg.OutputFile, display.FormatBytes(stats.OutputBytes),
		display.FormatElapsed(stats.Elapsed), display.FormatRate(stats.Frames, stats.Analysis))
	if stats.Chart {
		log.Info("Chart: %s", cfg.ChartFile)
	}
	return stats, nil
}

const progressRefresh = 100 * time.Millisecond

// progressWriter returns stderr when a bar should be drawn.
func progressWriter(cfg *config.Config) io.Writer {
	if !cfg.ShowProgress || cfg.Quiet || cfg.Verbose || !term.IsTerminal(os.Stderr) {
		return nil
	}
	return os.Stderr
}

func logRunHeader(cfg *config.Config, log *logging.Logger, backend string) {
	log.Info("Frames: %s", cfg.InputDir)
	log.Info("Result: %s (%s)", cfg.OutputFile, cfg.Format)
	workers := fmt.Sprint(cfg.EffectiveWorkers())
	if cfg.Workers == 0 {
		workers += " (one per CPU)"
	}
	log.Debug(cfg.Verbose, "Backend: %s, workers: %s, digits: %d", backend, workers, cfg.FrameDigits)
}

// logFrameGeometry probes the first and last frame headers. Probe failures
// are only logged; the frames already decoded once.
func logFrameGeometry(log *logging.Logger, frames []frame.Info) {
	if len(frames) == 0 {
		return
	}
	first, err := probe.Probe(frames[0].Path)
	if err != nil {
		log.Warn("Cannot probe %s: %v", frames[0].Path, err)
		return
	}
	log.Info("Frames: %s %s, %d-bit", first.Resolution(), first.Format, first.BitDepth)
	if first.IsHighBitDepth() {
		log.Warn("Frames have %d-bit samples; scores are computed on 8-bit data", first.BitDepth)
	}
	if len(frames) == 1 {
		return
	}
	last, err := probe.Probe(frames[len(frames)-1].Path)
	if err != nil {
		log.Warn("Cannot probe %s: %v", frames[len(frames)-1].Path, err)
		return
	}
	if !first.SameGeometry(last) {
		log.Warn("Frame sizes differ (%s vs %s); scores are not comparable across sizes",
			first.Resolution(), last.Resolution())
	}
}

func logSummary(log *logging.Logger, s report.Summary) {
	log.Info("Sharpest frame: %d (%s)", s.Best.Number, report.FormatScore(s.Best.Sharpness))
	log.Info("Blurriest frame: %d (%s)", s.Worst.Number, report.FormatScore(s.Worst.Sharpness))
	log.Info("Mean sharpness: %.2f (stddev %.2f)", s.Mean, s.StdDev)
}
