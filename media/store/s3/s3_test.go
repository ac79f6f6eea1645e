package s3

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	awss3 "github.com/aws/aws-sdk-go/service/s3"

	"github.com/timemore/blobstore/errors"
	mediastore "github.com/timemore/blobstore/media/store"
)

type fakeS3 struct {
	puts    []*awss3.PutObjectInput
	bodies  []string
	deletes []*awss3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *awss3.PutObjectInput, opts ...request.Option) (*awss3.PutObjectOutput, error) {
	body, _ := io.ReadAll(input.Body)
	f.puts = append(f.puts, input)
	f.bodies = append(f.bodies, string(body))
	return &awss3.PutObjectOutput{}, f.err
}

func (f *fakeS3) DeleteObjectWithContext(ctx aws.Context, input *awss3.DeleteObjectInput, opts ...request.Option) (*awss3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, input)
	return &awss3.DeleteObjectOutput{}, f.err
}

// onlyReader hides the Seek method of the underlying reader.
type onlyReader struct{ io.Reader }

func TestPutObjectBuffersNonSeekableBody(t *testing.T) {
	api := &fakeS3{}
	svc := &Service{client: api}

	err := svc.PutObject(context.Background(), mediastore.PutObjectInput{
		Namespace:     "ignored",
		BucketName:    "blog",
		ObjectName:    "abc_photo.png",
		Body:          onlyReader{strings.NewReader("png bytes")},
		ContentType:   "image/png",
		ContentLength: 9,
	})
	if err != nil {
		t.Fatalf("PutObject: %v", err)
	}
	in := api.puts[0]
	if aws.StringValue(in.Bucket) != "blog" || aws.StringValue(in.Key) != "abc_photo.png" {
		t.Errorf("unexpected location %s/%s", aws.StringValue(in.Bucket), aws.StringValue(in.Key))
	}
	if aws.StringValue(in.ContentType) != "image/png" || aws.Int64Value(in.ContentLength) != 9 {
		t.Errorf("unexpected metadata %s/%d", aws.StringValue(in.ContentType), aws.Int64Value(in.ContentLength))
	}
	if api.bodies[0] != "png bytes" {
		t.Errorf("body = %q", api.bodies[0])
	}
}

func TestDeleteObject(t *testing.T) {
	causeErr := errors.New("AccessDenied")
	api := &fakeS3{err: causeErr}
	svc := &Service{client: api}

	err := svc.DeleteObject(context.Background(), "ignored", "blog", "abc.md")
	if !errors.Is(err, causeErr) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if aws.StringValue(api.deletes[0].Key) != "abc.md" {
		t.Errorf("deleted %q", aws.StringValue(api.deletes[0].Key))
	}
}

func TestNewServiceRequiresRegion(t *testing.T) {
	cfg := ConfigSkeleton()
	if _, err := NewService(&cfg); !errors.IsArgumentError(err) {
		t.Errorf("expected argument error, got %v", err)
	}
}
