// Package oci is the Oracle Cloud Infrastructure Object Storage client
// for the media store.
package oci

import (
	"context"
	"io"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/objectstorage"

	"github.com/timemore/blobstore/errors"
	mediastore "github.com/timemore/blobstore/media/store"
)

type Config struct {
	// ConfigFile is an OCI CLI configuration file. When neither this nor
	// TenancyOCID is set, the SDK default locations are used.
	ConfigFile           string `env:"CONFIG_FILE" yaml:"config_file" json:"config_file"`
	Profile              string `env:"PROFILE" yaml:"profile" json:"profile"`
	PrivateKeyPassphrase string `env:"PRIVATE_KEY_PASSPHRASE" yaml:"-" json:"-"`

	TenancyOCID string `env:"TENANCY_OCID" yaml:"tenancy_ocid" json:"tenancy_ocid"`
	UserOCID    string `env:"USER_OCID" yaml:"user_ocid" json:"user_ocid"`
	Fingerprint string `env:"FINGERPRINT" yaml:"fingerprint" json:"fingerprint"`
	PrivateKey  string `env:"PRIVATE_KEY" yaml:"-" json:"-"`

	// Region overrides the region of the credentials.
	Region string `env:"REGION" yaml:"region" json:"region"`
}

const ServiceName = "oci"

const profileDefault = "DEFAULT"

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

func ConfigSkeleton() Config {
	return Config{
		Profile: profileDefault,
	}
}

func (conf *Config) configurationProvider() (common.ConfigurationProvider, error) {
	var passphrase *string
	if conf.PrivateKeyPassphrase != "" {
		passphrase = common.String(conf.PrivateKeyPassphrase)
	}

	if conf.TenancyOCID != "" {
		if conf.UserOCID == "" || conf.Fingerprint == "" || conf.PrivateKey == "" {
			return nil, errors.ArgMsg("config", "user OCID, fingerprint and private key are required with a tenancy OCID")
		}
		return common.NewRawConfigurationProvider(
			conf.TenancyOCID,
			conf.UserOCID,
			conf.Region,
			conf.Fingerprint,
			conf.PrivateKey,
			passphrase,
		), nil
	}

	if conf.ConfigFile != "" {
		profile := conf.Profile
		if profile == "" {
			profile = profileDefault
		}
		return common.ConfigurationProviderFromFileWithProfile(conf.ConfigFile, profile, conf.PrivateKeyPassphrase)
	}

	return common.DefaultConfigProvider(), nil
}

func NewService(config mediastore.ServiceConfig) (mediastore.Service, error) {
	if config == nil {
		return nil, errors.ArgMsg("config", "missing")
	}

	conf, ok := config.(*Config)
	if !ok {
		return nil, errors.ArgMsg("config", "type invalid")
	}

	provider, err := conf.configurationProvider()
	if err != nil {
		return nil, errors.Wrap("OCI configuration provider", err)
	}

	client, err := objectstorage.NewObjectStorageClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, errors.Wrap("OCI object storage client initialization", err)
	}
	if conf.Region != "" {
		client.SetRegion(conf.Region)
	}

	return &Service{client: client}, nil
}

// objectStorageAPI is the part of objectstorage.ObjectStorageClient the
// service uses.
type objectStorageAPI interface {
	PutObject(ctx context.Context, request objectstorage.PutObjectRequest) (objectstorage.PutObjectResponse, error)
	DeleteObject(ctx context.Context, request objectstorage.DeleteObjectRequest) (objectstorage.DeleteObjectResponse, error)
}

type Service struct {
	client objectStorageAPI
}

func (s *Service) PutObject(ctx context.Context, input mediastore.PutObjectInput) error {
	// the store owns the body and closes it
	_, err := s.client.PutObject(ctx, objectstorage.PutObjectRequest{
		NamespaceName: common.String(input.Namespace),
		BucketName:    common.String(input.BucketName),
		ObjectName:    common.String(input.ObjectName),
		PutObjectBody: io.NopCloser(input.Body),
		ContentType:   common.String(input.ContentType),
		ContentLength: common.Int64(input.ContentLength),
	})
	if err != nil {
		return errors.Wrap("OCI put object", err)
	}
	return nil
}

func (s *Service) DeleteObject(ctx context.Context, namespace, bucketName, objectName string) error {
	_, err := s.client.DeleteObject(ctx, objectstorage.DeleteObjectRequest{
		NamespaceName: common.String(namespace),
		BucketName:    common.String(bucketName),
		ObjectName:    common.String(objectName),
	})
	if err != nil {
		return errors.Wrap("OCI delete object", err)
	}
	return nil
}

var _ mediastore.Service = &Service{}
