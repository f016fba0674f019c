package errors

import "github.com/pkg/errors"

// StackTracer is satisfied by any error carrying a pkg/errors stack trace.
// The logger checks for it when deciding whether to attach a stacktrace
// field.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

// ErrorTracer pairs a message with an underlying error whose stack trace is
// captured at the first wrap point, so store failures keep their origin all
// the way up to the logs.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates an ErrorTracer carrying only a message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError wraps err, reusing its stack trace when it already has one.
func TracerFromError(err error) *ErrorTracer {
	return NewTracer(err.Error()).Wrap(err)
}

// Wrap attaches err as the underlying error, capturing a stack trace here
// unless err already carries one.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	if _, ok := err.(StackTracer); ok {
		e.Err = err
	} else {
		e.Err = errors.WithStack(err)
	}
	return e
}

func (e *ErrorTracer) Error() string {
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// StackTrace exposes the underlying stack, nil when none was captured.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	if st, ok := e.Err.(StackTracer); ok {
		return st.StackTrace()
	}
	return nil
}
