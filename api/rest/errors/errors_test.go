package errors

import (
	"net/http"
	"testing"

	"github.com/timemore/blobstore/errors"
	"github.com/timemore/blobstore/errors/data"
	storageerrs "github.com/timemore/blobstore/errors/storage"
)

func TestResponse(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		statusCode int
		code       string
	}{
		{"argument", errors.ArgMsg("objectURL", "invalid URL format"), http.StatusBadRequest, "invalid_argument"},
		{"malformed", errors.Wrap("decoding", data.Malformed(errors.New("bad escape"))), http.StatusBadRequest, "malformed"},
		{"upload", storageerrs.Upload("abc.md", errors.New("timeout")), http.StatusBadGateway, "storage_failure"},
		{"delete", storageerrs.Delete("abc.md", errors.New("not found")), http.StatusBadGateway, "storage_failure"},
		{"backend rejected argument", storageerrs.Delete("../x", errors.ArgMsg("objectName", "outside")), http.StatusBadRequest, "invalid_argument"},
		{"unimplemented", errors.Wrap("gcs", errors.ErrUnimplemented), http.StatusNotImplemented, "unimplemented"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			statusCode, body := Response(tc.err)
			if statusCode != tc.statusCode {
				t.Errorf("status code = %d, want %d", statusCode, tc.statusCode)
			}
			if body == nil || body.Code != tc.code {
				t.Errorf("body = %+v, want code %q", body, tc.code)
			}
		})
	}
}

func TestResponseArgumentField(t *testing.T) {
	_, body := Response(errors.ArgMsg("objectURL", "invalid URL format"))
	if len(body.Fields) != 1 || body.Fields[0].Field != "objectURL" {
		t.Errorf("fields = %+v", body.Fields)
	}
}

func TestResponseEntityFields(t *testing.T) {
	err := errors.ArgMsg("config", "incomplete",
		errors.EntMsg("Region", "empty"),
		errors.EntMsg("BucketName", "empty"))

	statusCode, body := Response(err)
	if statusCode != http.StatusBadRequest {
		t.Fatalf("status code = %d", statusCode)
	}
	want := []string{"config.Region", "config.BucketName"}
	if len(body.Fields) != len(want) {
		t.Fatalf("fields = %+v", body.Fields)
	}
	for i, field := range body.Fields {
		if field.Field != want[i] || field.Description != "empty" {
			t.Errorf("field %d = %+v, want %s", i, field, want[i])
		}
	}
}

func TestResponseNil(t *testing.T) {
	statusCode, body := Response(nil)
	if statusCode != http.StatusOK || body != nil {
		t.Errorf("got %d, %+v", statusCode, body)
	}
}
