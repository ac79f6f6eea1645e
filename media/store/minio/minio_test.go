package minio

import (
	"testing"

	"github.com/timemore/blobstore/errors"
)

func TestNewServiceConfig(t *testing.T) {
	testCases := []struct {
		name   string
		config any
	}{
		{"nil", nil},
		{"by value", Config{}},
		{"no endpoint", &Config{AccessKeyID: "id", SecretAccessKey: "secret"}},
		{"no key", &Config{Endpoint: "localhost:9000"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewService(tc.config); !errors.IsArgumentError(err) {
				t.Errorf("expected argument error, got %v", err)
			}
		})
	}
}

func TestNewService(t *testing.T) {
	// the client is created lazily, no server is contacted
	svc, err := NewService(&Config{
		Endpoint:        "localhost:9000",
		AccessKeyID:     "minioadmin",
		SecretAccessKey: "minioadmin",
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	if svc == nil {
		t.Fatal("nil service")
	}
}
