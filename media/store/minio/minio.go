// Package minio is the client for S3-compatible servers, e.g., a MinIO
// instance used during development. The namespace of a request is
// ignored.
package minio

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/timemore/blobstore/errors"
	mediastore "github.com/timemore/blobstore/media/store"
)

type Config struct {
	Region          string `env:"REGION"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Endpoint        string `env:"ENDPOINT"`
	UseSSL          bool   `env:"USE_SSL"`
}

const ServiceName = "minio"

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
	if conf.Endpoint == "" {
		return nil, errors.ArgMsg("config.Endpoint", "empty")
	}
	if conf.AccessKeyID == "" || conf.SecretAccessKey == "" {
		return nil, errors.ArgMsg("config", "access key required")
	}

	minioClient, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: conf.UseSSL,
		Region: conf.Region,
	})
	if err != nil {
		return nil, errors.Wrap("minio client initialization", err)
	}

	return &Service{minioClient: minioClient}, nil
}

type Service struct {
	minioClient *minio.Client
}

func (s *Service) PutObject(ctx context.Context, input mediastore.PutObjectInput) error {
	_, err := s.minioClient.PutObject(ctx,
		input.BucketName,
		input.ObjectName,
		input.Body,
		input.ContentLength,
		minio.PutObjectOptions{ContentType: input.ContentType})
	if err != nil {
		return errors.Wrap("upload", err)
	}
	return nil
}

func (s *Service) DeleteObject(ctx context.Context, namespace, bucketName, objectName string) error {
	err := s.minioClient.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Wrap("remove object", err)
	}
	return nil
}

var _ mediastore.Service = &Service{}
