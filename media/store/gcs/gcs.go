// Package gcs is the Google Cloud Storage client for the media store.
// GCS has no namespace; the namespace of a request is ignored.
package gcs

import (
	"context"
	"fmt"
	"io"
	"os"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/timemore/blobstore/errors"
	mediastore "github.com/timemore/blobstore/media/store"
)

type Config struct {
	CredentialFile string `env:"CREDENTIAL_FILE" yaml:"credential_file" json:"credential_file"`
}

const ServiceName = "gcs"

func init() {
	mediastore.RegisterModule(
		ServiceName,
		mediastore.Module{
			NewService: NewService,
			ServiceConfigSkeleton: func() mediastore.ServiceConfig {
				cfg := ConfigSkeleton()
				return &cfg
			},
		})
}

func ConfigSkeleton() Config { return Config{} }

func NewService(config mediastore.ServiceConfig) (mediastore.Service, error) {
	if config == nil {
		return nil, errors.ArgMsg("config", "missing")
	}

	conf, ok := config.(*Config)
	if !ok {
		return nil, errors.ArgMsg("config", "type invalid")
	}

	isExists, err := conf.IsAvailableCredentials()
	if err != nil {
		return nil, err
	}
	if !isExists {
		return nil, errors.ArgMsg("config.CredentialFile", "is a directory")
	}

	client, err := gcs.NewClient(context.Background(), option.WithCredentialsFile(conf.CredentialFile))
	if err != nil {
		return nil, errors.Wrap("gcs client initialization", err)
	}

	return &Service{client: clientAPI{client}}, nil
}

// objectAPI is the part of the GCS client the service uses.
type objectAPI interface {
	NewWriter(ctx context.Context, bucketName, objectName, contentType string) io.WriteCloser
	Delete(ctx context.Context, bucketName, objectName string) error
}

type clientAPI struct {
	client *gcs.Client
}

func (c clientAPI) NewWriter(ctx context.Context, bucketName, objectName, contentType string) io.WriteCloser {
	wc := c.client.Bucket(bucketName).Object(objectName).NewWriter(ctx)
	wc.ContentType = contentType
	return wc
}

func (c clientAPI) Delete(ctx context.Context, bucketName, objectName string) error {
	return c.client.Bucket(bucketName).Object(objectName).Delete(ctx)
}

type Service struct {
	client objectAPI
}

func (s *Service) PutObject(ctx context.Context, input mediastore.PutObjectInput) error {
	wc := s.client.NewWriter(ctx, input.BucketName, input.ObjectName, input.ContentType)
	if _, err := io.Copy(wc, input.Body); err != nil {
		_ = wc.Close()
		return errors.Wrap("copy file io.Copy", err)
	}
	// the upload is committed by Close
	if err := wc.Close(); err != nil {
		return errors.Wrap("writer.Close", err)
	}
	return nil
}

func (s *Service) DeleteObject(ctx context.Context, namespace, bucketName, objectName string) error {
	err := s.client.Delete(ctx, bucketName, objectName)
	if err != nil {
		return errors.Wrap(fmt.Sprintf("Object(%q).Delete", objectName), err)
	}
	return nil
}

var _ mediastore.Service = &Service{}

func (conf *Config) IsAvailableCredentials() (bool, error) {
	if conf.CredentialFile == "" {
		return false, errors.ArgMsg("config.CredentialFile", "empty")
	}
	inf, err := os.Stat(conf.CredentialFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, errors.ArgMsg("config.CredentialFile", "notExists")
		}

		return false, errors.Wrap("credential file not valid", err)
	}

	return !inf.IsDir(), nil
}
