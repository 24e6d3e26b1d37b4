package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents logging verbosity levels.
type LogLevel int

// Log level constants.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelDebug
)

// ParseLogLevel parses a log level string. Unknown values map to error.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarn
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

// String returns the string representation of a log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

// Logger appends leveled lines to a log file.
type Logger struct {
	mu       sync.Mutex
	level    LogLevel
	out      io.WriteCloser
	filePath string
}

// NewLogger creates a logger writing to filePath. An "off" level or an empty
// path yields a logger that writes nothing.
func NewLogger(level LogLevel, filePath string) (*Logger, error) {
	logger := &Logger{
		level:    level,
		filePath: filePath,
	}

	if level == LogLevelOff || filePath == "" {
		return logger, nil
	}

	filePath = ExpandPath(filePath)

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, err
	}

	// #nosec G304 -- log file path is from validated config
	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	logger.out = f
	logger.filePath = filePath

	return logger, nil
}

// NewWriterLogger creates a logger that writes to w. Used by tests.
func NewWriterLogger(level LogLevel, w io.Writer) *Logger {
	return &Logger{level: level, out: nopCloser{w}}
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.out != nil {
		err := l.out.Close()
		l.out = nil
		return err
	}
	return nil
}

// SetLevel changes the log level.
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current log level.
func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Path returns the resolved log file path.
func (l *Logger) Path() string {
	return l.filePath
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LogLevelDebug, format, args...)
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LogLevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LogLevelError, format, args...)
}

// Writer returns an io.Writer that writes to the logger at the specified level.
func (l *Logger) Writer(level LogLevel) io.Writer {
	return &logWriter{logger: l, level: level}
}

func (l *Logger) log(level LogLevel, format string, args ...any) {
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level == LogLevelOff || level > l.level || l.out == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	levelStr := strings.ToUpper(level.String())
	msg := fmt.Sprintf(format, args...)

	_, _ = fmt.Fprintf(l.out, "%s [%s] %s\n", timestamp, levelStr, msg)
}

type logWriter struct {
	logger *Logger
	level  LogLevel
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.logger.log(w.level, "%s", strings.TrimSpace(string(p)))
	return len(p), nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NullLogger returns a logger that discards all output.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}
