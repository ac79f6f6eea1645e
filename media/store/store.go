// Package store uploads, replaces and deletes markdown documents and
// images in an object-storage bucket and hands out public URLs for
// them.
//
// The store itself keeps no state besides its configuration; the
// storage client selected by Config.StoreService does the work.
package store

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/timemore/blobstore/errors"
	storageerrs "github.com/timemore/blobstore/errors/storage"
	"github.com/timemore/blobstore/logger"
	"github.com/timemore/blobstore/media"
	"github.com/timemore/blobstore/metrics"
)

var log = logger.NewPkgLogger()

type Store struct {
	config        Config
	serviceClient Service
	newObjectID   func() string
}

// New creates a store backed by the storage client registered under
// config.StoreService.
func New(config Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if len(config.Modules) == 0 {
		return nil, errors.ArgMsg("config.Modules", "empty")
	}
	if config.StoreService == "" {
		return nil, errors.ArgMsg("config.StoreService", "empty")
	}

	modCfg := config.Modules[config.StoreService]
	if modCfg == nil {
		return nil, errors.ArgMsg("config.StoreService", config.StoreService+" not configured")
	}
	serviceClient, err := NewServiceClient(config.StoreService, modCfg)
	if err != nil {
		return nil, errors.ArgWrap("config.StoreService", config.StoreService+" initialization failed", err)
	}

	return NewWithService(config, serviceClient)
}

// NewWithService creates a store which uses serviceClient directly.
func NewWithService(config Config, serviceClient Service) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if serviceClient == nil {
		return nil, errors.ArgMsg("serviceClient", "missing")
	}

	return &Store{
		config:        config,
		serviceClient: serviceClient,
		newObjectID:   uuid.NewString,
	}, nil
}

// Config returns the configuration the store was created with.
func (mediaStore *Store) Config() Config { return mediaStore.config }

// UploadMarkdownContent stores content as a new markdown object and
// returns its URL. Each call creates a new object, even for identical
// content.
func (mediaStore *Store) UploadMarkdownContent(ctx context.Context, content string) (objectURL string, err error) {
	objectName := mediaStore.newObjectID() + media.MarkdownExtension
	if err = mediaStore.putMarkdown(ctx, objectName, content); err != nil {
		return "", err
	}
	return mediaStore.ObjectURL(objectName), nil
}

// UpdateMarkdownContent overwrites the object objectURL points to. The
// URL stays valid after the update.
func (mediaStore *Store) UpdateMarkdownContent(ctx context.Context, objectURL string, content string) error {
	objectName, err := mediaStore.ObjectName(objectURL)
	if err != nil {
		return err
	}
	return mediaStore.putMarkdown(ctx, objectName, content)
}

// UploadImage stores file under "<uuid>_<filename>" and returns its
// URL.
func (mediaStore *Store) UploadImage(ctx context.Context, file File) (objectURL string, err error) {
	if file == nil {
		return "", errors.ArgMsg("file", "missing")
	}

	objectName := mediaStore.newObjectID() + "_" + file.Filename()
	body, err := file.Open()
	if err != nil {
		return "", storageerrs.Upload(objectName, errors.Wrap("opening file", err))
	}

	err = mediaStore.putObject(ctx, objectName, body, file.ContentType(), file.Size())
	if err != nil {
		return "", err
	}
	return mediaStore.ObjectURL(objectName), nil
}

// DeleteFileObject deletes the object objectURL points to. Whether a
// missing object is an error depends on the storage client.
func (mediaStore *Store) DeleteFileObject(ctx context.Context, objectURL string) error {
	objectName, err := mediaStore.ObjectName(objectURL)
	if err != nil {
		return err
	}

	startTime := time.Now()
	err = mediaStore.serviceClient.DeleteObject(ctx,
		mediaStore.config.Namespace,
		mediaStore.config.BucketName,
		objectName)
	metrics.RecordObjectOperation(string(storageerrs.OperationDelete), time.Since(startTime), err == nil)
	if err != nil {
		log.Error().Err(err).Str("object_name", objectName).Msg("delete object")
		return storageerrs.Delete(objectName, err)
	}

	log.Debug().Str("object_name", objectName).Msg("object deleted")
	return nil
}

func (mediaStore *Store) putMarkdown(ctx context.Context, objectName string, content string) error {
	buf := []byte(content)
	return mediaStore.putObject(ctx, objectName,
		io.NopCloser(bytes.NewReader(buf)),
		media.MarkdownContentType,
		int64(len(buf)))
}

// putObject writes body to objectName and closes body before
// returning.
func (mediaStore *Store) putObject(
	ctx context.Context,
	objectName string,
	body io.ReadCloser,
	contentType string,
	contentLength int64,
) error {
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("object_name", objectName).Msg("closing upload body")
		}
	}()

	startTime := time.Now()
	err := mediaStore.serviceClient.PutObject(ctx, PutObjectInput{
		Namespace:     mediaStore.config.Namespace,
		BucketName:    mediaStore.config.BucketName,
		ObjectName:    objectName,
		Body:          body,
		ContentType:   contentType,
		ContentLength: contentLength,
	})
	metrics.RecordObjectOperation(string(storageerrs.OperationUpload), time.Since(startTime), err == nil)
	if err != nil {
		log.Error().Err(err).Str("object_name", objectName).Msg("put object")
		return storageerrs.Upload(objectName, err)
	}

	metrics.RecordObjectUpload(contentLength)
	log.Debug().
		Str("object_name", objectName).
		Str("content_type", contentType).
		Int64("content_length", contentLength).
		Msg("object uploaded")
	return nil
}
