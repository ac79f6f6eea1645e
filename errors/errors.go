// Package errors provides the error kinds shared by the blob store
// packages. Errors built here keep their cause reachable through
// errors.Is and errors.As.
package errors

import (
	"errors"
)

var (
	As     = errors.As
	Is     = errors.Is
	New    = errors.New
	Msg    = errors.New
	Unwrap = errors.Unwrap
)

type Unwrappable interface {
	error
	Unwrap() error
}

// Wrap annotates causeErr with a context message. The message is
// rendered as "<contextMessage>: <cause>".
func Wrap(contextMessage string, causeErr error) error {
	return &errorWrap{contextMessage, causeErr}
}

var _ Unwrappable = &errorWrap{}

type errorWrap struct {
	msg string
	err error
}

func (e errorWrap) Error() string {
	if e.msg != "" {
		if e.err != nil {
			return e.msg + ": " + e.err.Error()
		}
		return e.msg
	}
	if e.err != nil {
		return e.err.Error()
	}
	return "unknown error"
}

func (e errorWrap) Unwrap() error {
	return e.err
}

var ErrUnimplemented = Msg("unimplemented")
