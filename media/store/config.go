package store

import (
	"github.com/rez-go/stev"

	"github.com/timemore/blobstore/errors"
)

// EnvPrefixDefault is the prefix for the store environment variables,
// e.g., STORE_REGION, STORE_BUCKET_NAME.
const EnvPrefixDefault = "STORE_"

// Config holds the storage location every object is written to, and
// selects the storage client. It is read-only once the store has been
// created.
type Config struct {
	Region     string `env:"REGION" yaml:"region" json:"region"`
	Namespace  string `env:"NAMESPACE" yaml:"namespace" json:"namespace"`
	BucketName string `env:"BUCKET_NAME" yaml:"bucket_name" json:"bucket_name"`

	StoreService string `env:"SERVICE" yaml:"service" json:"service"`

	Modules map[string]any `env:",map,squash" yaml:",omitempty,flow"`
}

// ParseConfigFromEnv populate the configuration by looking up the environment variables.
func ParseConfigFromEnv(prefix string) (cfg Config, err error) {
	cfg = ConfigSkeleton()
	err = stev.LoadEnv(prefix, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigSkeleton returns a Config with a config skeleton for every
// registered storage client.
func ConfigSkeleton() Config {
	return Config{
		Modules: ModuleConfigSkeletons(),
	}
}

// Validate checks the fields which are required to build object URLs.
// Every empty field is reported in the returned argument error.
func (config Config) Validate() error {
	var fields []errors.EntityError
	if config.Region == "" {
		fields = append(fields, errors.EntMsg("Region", "empty"))
	}
	if config.Namespace == "" {
		fields = append(fields, errors.EntMsg("Namespace", "empty"))
	}
	if config.BucketName == "" {
		fields = append(fields, errors.EntMsg("BucketName", "empty"))
	}
	if len(fields) > 0 {
		return errors.ArgMsg("config", "incomplete", fields...)
	}
	return nil
}
