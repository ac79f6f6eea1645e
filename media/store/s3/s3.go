// Package s3 is the Amazon S3 client for the media store. S3 has no
// namespace; the namespace of a request is ignored.
package s3

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"

	"github.com/timemore/blobstore/errors"
	mediastore "github.com/timemore/blobstore/media/store"
)

type Config struct {
	Region          string `env:"REGION" yaml:"region" json:"region"`
	AccessKeyID     string `env:"ACCESS_KEY_ID" yaml:"access_key_id" json:"access_key_id"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY" yaml:"-" json:"-"`
	// Endpoint is only needed for S3-compatible services.
	Endpoint string `env:"ENDPOINT" yaml:"endpoint" json:"endpoint"`
}

const ServiceName = "s3"

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
	if conf == nil || conf.Region == "" {
		return nil, errors.ArgMsg("config.Region", "empty")
	}

	var creds *credentials.Credentials
	if conf.AccessKeyID != "" {
		creds = credentials.NewStaticCredentials(
			conf.AccessKeyID,
			conf.SecretAccessKey,
			"",
		)
	}

	awsConfig := &aws.Config{
		Region:      aws.String(conf.Region),
		Credentials: creds,
	}
	if conf.Endpoint != "" {
		awsConfig.Endpoint = aws.String(conf.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, errors.Wrap("AWS Session", err)
	}

	return &Service{client: awss3.New(sess)}, nil
}

// objectAPI is the part of the S3 client the service uses.
type objectAPI interface {
	PutObjectWithContext(ctx aws.Context, input *awss3.PutObjectInput, opts ...request.Option) (*awss3.PutObjectOutput, error)
	DeleteObjectWithContext(ctx aws.Context, input *awss3.DeleteObjectInput, opts ...request.Option) (*awss3.DeleteObjectOutput, error)
}

type Service struct {
	client objectAPI
}

func (s *Service) PutObject(ctx context.Context, input mediastore.PutObjectInput) error {
	// PutObject signs the payload and needs to seek it.
	body, ok := input.Body.(io.ReadSeeker)
	if !ok {
		buf, err := io.ReadAll(input.Body)
		if err != nil {
			return errors.Wrap("reading body", err)
		}
		body = bytes.NewReader(buf)
	}

	_, err := s.client.PutObjectWithContext(ctx, &awss3.PutObjectInput{
		Bucket:        aws.String(input.BucketName),
		Key:           aws.String(input.ObjectName),
		Body:          body,
		ContentType:   aws.String(input.ContentType),
		ContentLength: aws.Int64(input.ContentLength),
	})
	if err != nil {
		return errors.Wrap("upload", err)
	}
	return nil
}

func (s *Service) DeleteObject(ctx context.Context, namespace, bucketName, objectName string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &awss3.DeleteObjectInput{
		Bucket: aws.String(bucketName),
		Key:    aws.String(objectName),
	})
	if err != nil {
		return errors.Wrap("delete", err)
	}
	return nil
}

var _ mediastore.Service = &Service{}
