// Package logging provides the component loggers used across thunkx.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "THUNKX_LOG_LEVEL"

var (
	mu      sync.Mutex
	base    *logrus.Logger
	loggers = make(map[string]*logrus.Entry)
)

// NewLogger returns the logger for a component. Loggers are cached per
// component and share one underlying logrus.Logger, so Configure affects
// every logger handed out before or after it.
func NewLogger(component string) *logrus.Entry {
	mu.Lock()
	defer mu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	if base == nil {
		base = logrus.New()
		apply(base, Config{})
	}
	entry := base.WithField("component", component)
	loggers[component] = entry
	return entry
}

// Configure reconfigures the shared logger.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()

	if base == nil {
		base = logrus.New()
	}
	apply(base, cfg)
}

// SetOutput redirects the shared logger, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if base == nil {
		base = logrus.New()
		apply(base, Config{})
	}
	base.SetOutput(w)
}

func apply(logger *logrus.Logger, cfg Config) {
	levelStr := "info"
	if env := os.Getenv(EnvLevel); env != "" {
		levelStr = env
	} else if cfg.Level != "" {
		levelStr = cfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetReportCaller(cfg.ReportCaller)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&TextFormatter{DisableTimestamp: cfg.DisableTimestamp})
	}

	logger.SetOutput(output(cfg.Output, level))
}

func output(mode string, level logrus.Level) io.Writer {
	switch mode {
	case "stderr":
		return os.Stderr
	case "discard":
		return io.Discard
	}
	// auto
	fd := os.Stderr.Fd()
	interactive := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	if level >= logrus.DebugLevel || !interactive {
		return os.Stderr
	}
	return io.Discard
}
