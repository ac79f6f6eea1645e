package store

import (
	"io"
)

// File is an uploaded file. Its size and content type are passed to
// the storage client as declared, they are not recomputed.
type File interface {
	Filename() string
	ContentType() string
	Size() int64

	// Open returns the file content. The store closes it once the
	// upload finished, whatever the outcome.
	Open() (io.ReadCloser, error)
}
