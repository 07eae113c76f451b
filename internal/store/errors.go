package store

import "fmt"

// QueryError is returned by the read-query methods for both rejected
// arguments and failed statements.
type QueryError struct {
	Message string
	cause   error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.cause
}

// invalidArgf builds a QueryError for a rejected argument.
func invalidArgf(format string, args ...any) error {
	return &QueryError{Message: fmt.Sprintf(format, args...)}
}

// queryFailf wraps a statement failure in a QueryError.
func queryFailf(cause error, format string, args ...any) error {
	return &QueryError{
		Message: fmt.Sprintf(format, args...) + ": " + cause.Error(),
		cause:   cause,
	}
}
