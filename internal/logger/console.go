// Package logger provides the leveled console logger used by the trlgauge
// CLI. Output is timestamped, thread-safe, and colored when writing to a
// terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering.
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs progress to a writer with [HH:MM:SS] timestamps.
// Messages below the configured level are discarded. Color output is enabled
// automatically when the writer is a TTY.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w. An empty or invalid
// level defaults to "info". A nil writer discards everything.
func NewConsoleLogger(w io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether the writer is a TTY that supports colors.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// normalizeLogLevel lowercases and validates a level name, defaulting to
// "info".
func normalizeLogLevel(level string) string {
	l := strings.ToLower(strings.TrimSpace(level))
	switch l {
	case "trace", "debug", "info", "warn", "error":
		return l
	default:
		return "info"
	}
}

func levelValue(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog reports whether a message at the given level passes the filter.
func (l *ConsoleLogger) shouldLog(level string) bool {
	return levelValue(level) >= levelValue(l.logLevel)
}

// logf writes one timestamped line, applying the level's color when enabled.
func (l *ConsoleLogger) logf(level string, c *color.Color, format string, args ...interface{}) {
	if l.writer == nil || !l.shouldLog(level) {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	if l.colorOutput && c != nil {
		fmt.Fprintln(l.writer, c.Sprint(line))
		return
	}
	fmt.Fprintln(l.writer, line)
}

// Tracef logs at trace level.
func (l *ConsoleLogger) Tracef(format string, args ...interface{}) {
	l.logf("trace", color.New(color.FgHiBlack), format, args...)
}

// Debugf logs at debug level.
func (l *ConsoleLogger) Debugf(format string, args ...interface{}) {
	l.logf("debug", color.New(color.FgCyan), format, args...)
}

// Infof logs at info level.
func (l *ConsoleLogger) Infof(format string, args ...interface{}) {
	l.logf("info", nil, format, args...)
}

// Warnf logs at warn level.
func (l *ConsoleLogger) Warnf(format string, args ...interface{}) {
	l.logf("warn", color.New(color.FgYellow), format, args...)
}

// Errorf logs at error level.
func (l *ConsoleLogger) Errorf(format string, args ...interface{}) {
	l.logf("error", color.New(color.FgRed), format, args...)
}
