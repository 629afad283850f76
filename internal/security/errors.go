package security

import (
	"errors"
	"fmt"
)

// ErrorSeverity represents the severity level of security events
type ErrorSeverity int

const (
	SeverityInfo ErrorSeverity = iota
	SeverityWarning
	SeverityCritical
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// CryptoError represents errors from cryptographic operations
type CryptoError struct {
	Operation string
	Message   string
	Err       error
}

func NewCryptoError(operation, message string) *CryptoError {
	return &CryptoError{
		Operation: operation,
		Message:   message,
	}
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("crypto %s failed: %s", e.Operation, e.Message)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

func (e *CryptoError) WithCause(err error) *CryptoError {
	e.Err = err
	return e
}

// TransportError is returned by the hardened HTTP transport when a request
// or response is refused.
type TransportError struct {
	Operation string
	Host      string
	Message   string
	Err       error
}

func NewTransportError(operation, host, message string) *TransportError {
	return &TransportError{
		Operation: operation,
		Host:      host,
		Message:   message,
	}
}

func (e *TransportError) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("transport %s refused for %s: %s", e.Operation, e.Host, e.Message)
	}
	return fmt.Sprintf("transport %s refused: %s", e.Operation, e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) WithCause(err error) *TransportError {
	e.Err = err
	return e
}

// IsCriticalError determines if an error requires immediate attention
func IsCriticalError(err error) bool {
	var cryptoErr *CryptoError
	var transportErr *TransportError
	return errors.As(err, &cryptoErr) || errors.As(err, &transportErr)
}
