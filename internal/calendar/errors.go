package calendar

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an authorization flow attempt stopped.
type ErrorKind int

const (
	ConfigMissing ErrorKind = iota + 1
	PromptFailure
	TokenExchangeFailure
	PersistenceFailure
	RemoteQueryFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigMissing:
		return "config_missing"
	case PromptFailure:
		return "prompt_failure"
	case TokenExchangeFailure:
		return "token_exchange_failure"
	case PersistenceFailure:
		return "persistence_failure"
	case RemoteQueryFailure:
		return "remote_query_failure"
	default:
		return "unknown"
	}
}

// ErrFlowAlreadyRan is returned when a Flow is started a second time.
var ErrFlowAlreadyRan = errors.New("authorization flow already ran")

// FlowError is the tagged failure of one pipeline stage.
type FlowError struct {
	Kind      ErrorKind
	Operation string
	Message   string
	Err       error
}

func NewFlowError(kind ErrorKind, operation, message string) *FlowError {
	return &FlowError{
		Kind:      kind,
		Operation: operation,
		Message:   message,
	}
}

func (e *FlowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", e.Kind, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Operation, e.Message)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

func (e *FlowError) WithCause(err error) *FlowError {
	e.Err = err
	return e
}

// KindOf reports the ErrorKind carried by err, or 0 when err is not a FlowError.
func KindOf(err error) ErrorKind {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Kind
	}
	return 0
}
