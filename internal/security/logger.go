package security

import (
	"context"
	"log/slog"

	"github.com/Godley/take-a-break/internal/logger"
)

// silentHandler discards all log messages when verbose mode is disabled
type silentHandler struct{}

func (h *silentHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (h *silentHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (h *silentHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *silentHandler) WithGroup(_ string) slog.Handler {
	return h
}

// SecureLogger records authentication and crypto events. Values are redacted
// by the global handler; details passed here go through logger.Redact as well
// so maps of arbitrary values cannot leak token material.
type SecureLogger struct {
	logger *slog.Logger
}

// NewSecureLogger writes through the process-wide slog default when verbose,
// and discards everything otherwise.
func NewSecureLogger(verbose bool) *SecureLogger {
	return NewSecureLoggerWithHandler(verbose, slog.Default().Handler())
}

func NewSecureLoggerWithHandler(verbose bool, h slog.Handler) *SecureLogger {
	if !verbose {
		h = &silentHandler{}
	}
	return &SecureLogger{logger: slog.New(h)}
}

func (sl *SecureLogger) Info(msg string, args ...any) {
	sl.logger.Info(msg, args...)
}

func (sl *SecureLogger) Warn(msg string, args ...any) {
	sl.logger.Warn(msg, args...)
}

func (sl *SecureLogger) Error(msg string, args ...any) {
	sl.logger.Error(msg, args...)
}

// LogSecurityEvent logs a security-related event with standard fields
func (sl *SecureLogger) LogSecurityEvent(event string, severity ErrorSeverity, details map[string]any) {
	attrs := append([]any{
		slog.String("event_type", "security"),
		slog.String("event", event),
		slog.String("severity", severity.String()),
	}, detailAttrs(details)...)

	switch severity {
	case SeverityCritical:
		sl.logger.Error("Security event", attrs...)
	case SeverityWarning:
		sl.logger.Warn("Security event", attrs...)
	default:
		sl.logger.Info("Security event", attrs...)
	}
}

// LogAuthEvent logs authentication-related events
func (sl *SecureLogger) LogAuthEvent(operation string, success bool, details map[string]any) {
	attrs := append([]any{
		slog.String("event_type", "authentication"),
		slog.String("operation", operation),
		slog.Bool("success", success),
	}, detailAttrs(details)...)

	if success {
		sl.logger.Info("Authentication event", attrs...)
	} else {
		sl.logger.Warn("Authentication event", attrs...)
	}
}

// LogCryptoEvent logs cryptographic operations
func (sl *SecureLogger) LogCryptoEvent(operation string, success bool, errMsg string) {
	attrs := []any{
		slog.String("event_type", "crypto"),
		slog.String("operation", operation),
		slog.Bool("success", success),
	}

	if errMsg != "" {
		attrs = append(attrs, slog.String("error", logger.Redact(errMsg)))
	}

	if success {
		sl.logger.Info("Crypto event", attrs...)
	} else {
		sl.logger.Error("Crypto event", attrs...)
	}
}

func detailAttrs(details map[string]any) []any {
	attrs := make([]any, 0, len(details))
	for k, v := range details {
		if s, ok := v.(string); ok {
			v = logger.Redact(s)
		}
		attrs = append(attrs, slog.Any(k, v))
	}
	return attrs
}
