// Package local stores objects as files under
// <directory>/<namespace>/<bucket>/. It is meant for development and
// tests.
package local

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/timemore/blobstore/errors"
	mediastore "github.com/timemore/blobstore/media/store"
)

type Config struct {
	DirectoryPath string `env:"FOLDER_PATH" yaml:"folder_path" json:"folder_path"`
}

const ServiceName = "local"

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
	if conf.DirectoryPath == "" {
		return nil, errors.ArgMsg("config.DirectoryPath", "empty")
	}

	return &Service{
		directoryPath: conf.DirectoryPath,
	}, nil
}

type Service struct {
	directoryPath string
}

// createFile is replaced in tests.
var createFile = func(name string) (io.WriteCloser, error) {
	return os.Create(name)
}

// objectPath resolves the file of an object, refusing names which
// would land outside the bucket directory.
func (s *Service) objectPath(namespace, bucketName, objectName string) (string, error) {
	bucketDir := filepath.Join(s.directoryPath, namespace, bucketName)
	targetName := filepath.Join(bucketDir, objectName)
	if !strings.HasPrefix(targetName, bucketDir+string(filepath.Separator)) {
		return "", errors.ArgMsg("objectName", "outside of the bucket")
	}
	return targetName, nil
}

func (s *Service) PutObject(ctx context.Context, input mediastore.PutObjectInput) error {
	targetName, err := s.objectPath(input.Namespace, input.BucketName, input.ObjectName)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(targetName), 0755); err != nil {
		return errors.Wrap("create directory", err)
	}

	targetFile, err := createFile(targetName)
	if err != nil {
		return errors.Wrap("create file", err)
	}

	_, err = io.Copy(targetFile, input.Body)
	if err != nil {
		_ = targetFile.Close()
		return errors.Wrap("write content", err)
	}
	// a failed close may leave the object truncated
	if err = targetFile.Close(); err != nil {
		return errors.Wrap("close file", err)
	}

	return nil
}

func (s *Service) DeleteObject(ctx context.Context, namespace, bucketName, objectName string) error {
	targetName, err := s.objectPath(namespace, bucketName, objectName)
	if err != nil {
		return err
	}
	if err = os.Remove(targetName); err != nil {
		return errors.Wrap("remove file", err)
	}
	return nil
}

var _ mediastore.Service = &Service{}
