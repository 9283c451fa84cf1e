// Package debug is a category logger that stays silent until enabled.
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log categories
const (
	Gen    = "gen"
	Cursor = "cursor"
	Match  = "match"
	MIDI   = "midi"
	Config = "config"
	TUI    = "tui"
)

var (
	mu       sync.Mutex
	logger   *zap.SugaredLogger
	counters = make(map[string]int)
)

// Enable starts logging to debug.log inside dir, truncating any previous log
func Enable(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, "debug.log")
	if err := os.Truncate(path, 0); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("truncate %s: %w", path, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.Sampling = nil

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l.Sugar()
	logger.Debugw("=== Debug logging started ===", "category", "debug")
	return nil
}

// SetLogger routes logging to l, or disables it when l is nil
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		logger = nil
		return
	}
	logger = l.Sugar()
}

// Enabled reports whether messages are being written
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return logger != nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		_ = logger.Sync()
		logger = nil
	}
	clear(counters)
}

// Log writes a message to the debug log
func Log(category, format string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()

	if l == nil {
		return
	}
	l.Debugw(fmt.Sprintf(format, args...), "category", category)
}

// LogEvery logs only every N calls (use for high-frequency events)
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if n > 0 && count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}
