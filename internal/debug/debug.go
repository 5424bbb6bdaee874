// Package debug provides the opt-in debug log. The editor owns the terminal,
// so records go to a file that is truncated on each launch.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = discard()
	logFile *os.File
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init enables logging to path when enable is true. With enable false every
// logger handed out discards its output.
func Init(enable bool, path string) error {
	mu.Lock()
	defer mu.Unlock()

	closeLocked()
	enabled = enable
	if !enable {
		logger = discard()
		return nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = f
	logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Info("debug log started", "at", time.Now().Format(time.RFC3339))
	return nil
}

// Close closes the log file if one is open.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	logger = discard()
	enabled = false
}

func closeLocked() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

// Logger returns the current logger, scoped to component.
func Logger(component string) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger.With("component", component)
}

func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}
