// Package logger is the process-wide structured logger. Output goes to a file
// or stderr, never stdout, because the MCP server speaks JSON-RPC there.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	initDone   bool
	debug      bool
)

// DefaultLogPath returns the log file used when none is configured.
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), "splitbook.log")
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debug = enabled
	levelVar.Set(level())
}

func level() slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Init opens path for appending and routes all logging there. The special
// path "-" logs to stderr. Calling Init again is a no-op until Reset.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}
	if path == "-" {
		install(os.Stderr)
		return nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir %s: %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", path, err)
	}
	logFile = f
	install(f)
	slogLogger.Info("logger initialized", "path", path)
	return nil
}

func install(w io.Writer) {
	levelVar.Set(level())
	slogLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
	initDone = true
}

func ensureInit() {
	if initDone {
		return
	}
	path := DefaultLogPath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: open log file %s: %v\n", path, err)
		install(os.Stderr)
		return
	}
	logFile = f
	install(f)
}

func logf(lvl slog.Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if !slogLogger.Enabled(context.Background(), lvl) {
		return
	}
	slogLogger.Log(context.Background(), lvl, fmt.Sprintf(format, args...))
}

func Debug(format string, args ...any) { logf(slog.LevelDebug, format, args...) }

func Info(format string, args ...any) { logf(slog.LevelInfo, format, args...) }

func Warn(format string, args ...any) { logf(slog.LevelWarn, format, args...) }

func Error(format string, args ...any) { logf(slog.LevelError, format, args...) }

// ComponentLogger returns a logger with the component attribute attached.
//
//	log := logger.ComponentLogger("service")
//	log.Debug("split", "page", pageID, "node", nodeID)
func ComponentLogger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	return slogLogger.With(slog.String("component", component))
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
	initDone = false
}

// Reset drops all state so Init can run again. Used by tests.
func Reset() {
	Close()
	mu.Lock()
	defer mu.Unlock()
	debug = false
	levelVar = new(slog.LevelVar)
}
