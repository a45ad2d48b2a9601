// Package logging provides the leveled console logger used by every
// command. It is a thin layer over logrus: console and file sinks are logrus
// hooks, and a line formatter renders "2006-01-02 15:04:05 [LEVEL] message"
// with the level label colored through the term palette.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/backmassage/autofocus/internal/config"
	"github.com/backmassage/autofocus/internal/term"
)

const timeLayout = "2006-01-02 15:04:05"

// labelKey carries a custom level label (SUCCESS) on an Info entry.
const labelKey = "label"

// Logger provides leveled, optionally colored logging with optional file sink.
type Logger struct {
	mu   sync.Mutex
	log  *logrus.Logger
	file *os.File
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile for
// appending. Call Close when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	return newLogger(cfg, os.Stdout, os.Stderr)
}

// newLogger builds a Logger writing to the given console streams.
func newLogger(cfg *config.Config, stdout, stderr io.Writer) (*Logger, error) {
	lg := logrus.New()
	lg.SetOutput(io.Discard)
	lg.SetFormatter(&lineFormatter{})
	lg.SetLevel(logrus.DebugLevel)
	if cfg.Quiet {
		lg.SetLevel(logrus.ErrorLevel)
	}
	lg.AddHook(&consoleHook{stdout: stdout, stderr: stderr, formatter: &lineFormatter{color: true}})

	l := &Logger{log: lg}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		lg.AddHook(&writerHook{w: f, formatter: &lineFormatter{}})
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// Success logs at SUCCESS level (green). It is an Info entry with a label.
func (l *Logger) Success(format string, args ...interface{}) {
	l.log.WithField(labelKey, "SUCCESS").Infof(format, args...)
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log.Warnf(format, args...)
}

// Error logs at ERROR level (red) to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log.Errorf(format, args...)
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.log.Debugf(format, args...)
}

// --- hooks ---

// consoleHook sends errors to stderr and everything else to stdout.
type consoleHook struct {
	stdout, stderr io.Writer
	formatter      logrus.Formatter
}

func (h *consoleHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *consoleHook) Fire(e *logrus.Entry) error {
	line, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	out := h.stdout
	if e.Level <= logrus.ErrorLevel {
		out = h.stderr
	}
	_, err = out.Write(line)
	return err
}

// writerHook copies every entry, uncolored, to w.
type writerHook struct {
	w         io.Writer
	formatter logrus.Formatter
}

func (h *writerHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *writerHook) Fire(e *logrus.Entry) error {
	line, err := h.formatter.Format(e)
	if err != nil {
		return err
	}
	_, err = h.w.Write(line)
	return err
}

// --- formatter ---

// lineFormatter renders one entry per line. With color set, the bracketed
// level is painted when colors are enabled globally.
type lineFormatter struct {
	color bool
}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	label, paint := levelStyle(e)
	tag := "[" + label + "]"
	if f.color {
		tag = paint.Sprint(tag)
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "%s %s %s\n", e.Time.Format(timeLayout), tag, strings.TrimRight(e.Message, "\n"))
	return b.Bytes(), nil
}

func levelStyle(e *logrus.Entry) (string, *color.Color) {
	if label, ok := e.Data[labelKey].(string); ok && label == "SUCCESS" {
		return label, term.Green
	}
	switch e.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return "ERROR", term.Red
	case logrus.WarnLevel:
		return "WARN", term.Yellow
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG", term.Cyan
	default:
		return "INFO", term.Blue
	}
}
