package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
)

var (
	globalLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	verboseMode  bool
)

// Init initializes the global logger with verbose mode setting
func Init(verbose bool) {
	InitWithWriter(os.Stderr, verbose)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(w io.Writer, verbose bool) {
	verboseMode = verbose

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	globalLogger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}))
	slog.SetDefault(globalLogger)
}

// Debug logs debug messages only in verbose mode
func Debug(msg string, args ...any) {
	if verboseMode {
		globalLogger.Debug(msg, args...)
	}
}

// Info logs progress of the overlay and the authorization flow.
func Info(msg string, args ...any) {
	globalLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	globalLogger.Warn(msg, args...)
}

// Error always logs error messages regardless of verbose mode
func Error(msg string, args ...any) {
	globalLogger.Error(msg, args...)
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verboseMode
}

// Enabled reports whether the global logger emits records at level.
func Enabled(level slog.Level) bool {
	return globalLogger.Enabled(context.Background(), level)
}

var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(access_token|refresh_token|client_secret)["':=\s]*["']?([A-Za-z0-9\-._~+/]+=*)`),
	regexp.MustCompile(`(?i)(Bearer\s+)([A-Za-z0-9\-._~+/]+=*)`),
	regexp.MustCompile(`([?&](?:code|token|key|secret)=)([^&\s]+)`),
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		a.Value = slog.StringValue(Redact(a.Value.String()))
	}
	return a
}

// Redact masks OAuth material in s, keeping the key that introduced it.
func Redact(s string) string {
	for _, pattern := range sensitivePatterns {
		s = pattern.ReplaceAllString(s, "${1}[REDACTED]")
	}
	return s
}
