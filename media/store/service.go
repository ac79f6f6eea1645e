package store

import (
	"context"
	"io"
)

type ServiceConfig any

// PutObjectInput describes a single object write.
type PutObjectInput struct {
	Namespace  string
	BucketName string
	ObjectName string

	Body          io.Reader
	ContentType   string
	ContentLength int64
}

// Service is the object-storage client the store delegates to. Both
// calls are synchronous; an error means the remote operation did not
// complete.
type Service interface {
	PutObject(ctx context.Context, input PutObjectInput) error
	DeleteObject(ctx context.Context, namespace, bucketName, objectName string) error
}
