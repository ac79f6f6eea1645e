// Package data holds errors about the shape of data handed to the
// store, e.g., an object URL whose name segment cannot be decoded.
package data

import (
	"github.com/timemore/blobstore/errors"
)

type Error interface {
	error
	DataError() Error
}

type malformedError struct {
	err error
}

var (
	_ Error              = &malformedError{}
	_ errors.Unwrappable = &malformedError{}
)

func (e *malformedError) DataError() Error { return e }

func (e *malformedError) Error() string {
	if e.err != nil {
		return "malformed: " + e.err.Error()
	}
	return "malformed"
}

func (e *malformedError) Unwrap() error { return e.err }

// Malformed wraps a decoding or parsing failure.
func Malformed(err error) error {
	return &malformedError{err}
}

// IsDataError reports whether err, or any error it wraps, is a data
// error.
func IsDataError(err error) bool {
	var d Error
	return errors.As(err, &d)
}
