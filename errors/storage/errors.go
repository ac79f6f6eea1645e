// Package storage holds the errors returned when the object-storage
// backend fails to complete a write or a delete.
package storage

import (
	"github.com/timemore/blobstore/errors"
)

// Operation names the remote call which failed.
type Operation string

const (
	OperationUpload Operation = "upload"
	OperationDelete Operation = "delete"
)

// Error is an abstract error type for all backend failures. The
// original cause is always reachable through errors.Unwrap.
type Error interface {
	error
	StorageError() Error
	Operation() Operation
	ObjectName() string
}

// Upload creates an error for a failed put of objectName.
func Upload(objectName string, causeErr error) Error {
	return &operationError{
		op:         OperationUpload,
		objectName: objectName,
		err:        causeErr,
	}
}

// Delete creates an error for a failed delete of objectName.
func Delete(objectName string, causeErr error) Error {
	return &operationError{
		op:         OperationDelete,
		objectName: objectName,
		err:        causeErr,
	}
}

type operationError struct {
	op         Operation
	objectName string
	err        error
}

var (
	_ Error              = &operationError{}
	_ errors.Unwrappable = &operationError{}
)

func (e *operationError) Error() string {
	var msg string
	switch e.op {
	case OperationUpload:
		msg = "error uploading object"
	case OperationDelete:
		msg = "failed to delete object from bucket"
	default:
		msg = "storage error"
	}
	if e.objectName != "" {
		msg += " " + e.objectName
	}
	if e.err != nil {
		return msg + ": " + e.err.Error()
	}
	return msg
}

func (e *operationError) Unwrap() error        { return e.err }
func (e *operationError) StorageError() Error  { return e }
func (e *operationError) Operation() Operation { return e.op }
func (e *operationError) ObjectName() string   { return e.objectName }

// IsUpload reports whether err is, or wraps, a failed upload.
func IsUpload(err error) bool {
	var e Error
	return errors.As(err, &e) && e.Operation() == OperationUpload
}

// IsDelete reports whether err is, or wraps, a failed delete.
func IsDelete(err error) bool {
	var e Error
	return errors.As(err, &e) && e.Operation() == OperationDelete
}
