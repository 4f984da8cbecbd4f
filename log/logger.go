package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

// LogLevel orders message severities. Messages below a logger's level
// are discarded.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError

	// LogLevelNone silences the logger entirely.
	LogLevelNone
)

// String returns the severity label used in log output.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	case LogLevelNone:
		return "NONE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// Logger is the printf-style logging surface the workflow packages
// write their decision trail to: routes chosen, grading counts, retry
// counts, provider failures.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// DefaultLogger writes levelled lines through the standard library's
// log package.
type DefaultLogger struct {
	logger *log.Logger
	level  LogLevel
}

// NewDefaultLogger creates a logger writing to stderr.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return NewCustomLogger(os.Stderr, level)
}

// NewCustomLogger creates a logger writing to out. Tests hand it a
// buffer.
func NewCustomLogger(out io.Writer, level LogLevel) *DefaultLogger {
	return &DefaultLogger{
		logger: log.New(out, "[durag] ", log.LstdFlags),
		level:  level,
	}
}

func (l *DefaultLogger) printf(severity LogLevel, format string, v ...any) {
	if l.level > severity {
		return
	}
	l.logger.Printf("["+severity.String()+"] "+format, v...)
}

func (l *DefaultLogger) Debug(format string, v ...any) {
	l.printf(LogLevelDebug, format, v...)
}

func (l *DefaultLogger) Info(format string, v ...any) {
	l.printf(LogLevelInfo, format, v...)
}

func (l *DefaultLogger) Warn(format string, v ...any) {
	l.printf(LogLevelWarn, format, v...)
}

func (l *DefaultLogger) Error(format string, v ...any) {
	l.printf(LogLevelError, format, v...)
}

// NoOpLogger discards everything. Tests use it to keep output quiet.
type NoOpLogger struct{}

func (l *NoOpLogger) Debug(format string, v ...any) {}
func (l *NoOpLogger) Info(format string, v ...any)  {}
func (l *NoOpLogger) Warn(format string, v ...any)  {}
func (l *NoOpLogger) Error(format string, v ...any) {}

var defaultLogger Logger = NewDefaultLogger(LogLevelInfo)

// SetDefaultLogger replaces the package-level logger.
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the package-level logger.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// SetLogLevel installs a stderr logger at the given level as the
// package-level logger.
func SetLogLevel(level LogLevel) {
	defaultLogger = NewDefaultLogger(level)
}

// Debug logs through the package-level logger.
func Debug(format string, v ...any) {
	defaultLogger.Debug(format, v...)
}

// Info logs through the package-level logger.
func Info(format string, v ...any) {
	defaultLogger.Info(format, v...)
}

// Warn logs through the package-level logger.
func Warn(format string, v ...any) {
	defaultLogger.Warn(format, v...)
}

// Error logs through the package-level logger.
func Error(format string, v ...any) {
	defaultLogger.Error(format, v...)
}
