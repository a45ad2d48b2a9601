// Command autofocus scores every frame image in a directory for sharpness
// and writes one "<frame>\t<sharpness>" line per frame, ordered by frame
// number.
//
//	autofocus [flags] <frames_directory> <result_file>
//
// With --check it runs system diagnostics instead and takes no arguments.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/autofocus/internal/check"
	"github.com/backmassage/autofocus/internal/config"
	"github.com/backmassage/autofocus/internal/display"
	"github.com/backmassage/autofocus/internal/logging"
	"github.com/backmassage/autofocus/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

// errReported marks a failure that has already been logged.
var errReported = errors.New("reported")

// usageError is an argument error; the usage text is printed with it.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, errReported) {
			return 1
		}
		fmt.Fprintf(os.Stderr, "autofocus: %v\n", err)
		var ue usageError
		if errors.As(err, &ue) {
			fmt.Fprint(os.Stderr, cmd.UsageString())
		}
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	cfg := config.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "autofocus [flags] <frames_directory> <result_file>",
		Short: "Score video frames by sharpness",
		Long: "autofocus analyzes every image in frames_directory, named like frame00042.png,\n" +
			"and writes \"<frame>\\t<sharpness>\" lines sorted by frame number to result_file.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if cfg.CheckOnly {
				if len(args) != 0 {
					return usageError{fmt.Errorf("--check takes no arguments (got %d)", len(args))}
				}
				return nil
			}
			if err := cobra.ExactArgs(2)(nil, args); err != nil {
				return usageError{err}
			}
			return nil
		},
	}
	st := config.BindFlags(cmd.Flags(), &cfg)
	cmd.Flags().SortFlags = false

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		// Bootstrap: the logger doesn't exist yet, so errors are returned
		// and printed by run.
		if err := config.ApplyFile(cmd.Flags(), &cfg); err != nil {
			return err
		}
		st.Apply(&cfg)
		if err := config.SetPositional(&cfg, args); err != nil {
			return usageError{err}
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		log, err := logging.NewLogger(&cfg)
		if err != nil {
			return err
		}
		defer log.Close()

		// Logger available: all output goes through log from here on.
		if !cfg.Quiet {
			display.PrintBanner(os.Stdout)
		}

		if cfg.CheckOnly {
			if !check.RunCheck(&cfg, log) {
				return errReported
			}
			return nil
		}
		return analyze(cmd.Context(), &cfg, log)
	}
	return cmd
}

func analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	log.Info("=== autofocus v%s ===", version)
	warnOutputInsideInput(cfg, log)

	if _, err := pipeline.Run(ctx, cfg, log); err != nil {
		if ctx.Err() != nil {
			log.Warn("Interrupted, no result written")
			return errReported
		}
		log.Error("%v", err)
		return errReported
	}
	return nil
}

// warnOutputInsideInput flags a result file written into the frames
// directory: the next run would try to parse it as a frame.
func warnOutputInsideInput(cfg *config.Config, log *logging.Logger) {
	inputAbs, err := absPath(cfg.InputDir)
	if err != nil {
		return
	}
	outAbs, err := filepath.Abs(cfg.OutputFile)
	if err != nil {
		return
	}
	outDir, err := absPath(filepath.Dir(outAbs))
	if err != nil {
		return
	}
	if config.OutputInsideInput(inputAbs, filepath.Join(outDir, filepath.Base(outAbs))) {
		log.Warn("Result file %s is inside the frames directory; later runs will fail on it", cfg.OutputFile)
	}
}

// absPath returns the absolute, symlink-resolved path for safe comparison
// of input vs output locations.
func absPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
