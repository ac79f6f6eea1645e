package objects_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/emicklei/go-restful/v3"

	"github.com/timemore/blobstore/api/rest"
	"github.com/timemore/blobstore/api/rest/objects"
	mediastore "github.com/timemore/blobstore/media/store"
)

type fakeService struct {
	mu        sync.Mutex
	puts      []mediastore.PutObjectInput
	bodies    []string
	deletes   []string
	putErr    error
	deleteErr error
}

func (s *fakeService) PutObject(ctx context.Context, input mediastore.PutObjectInput) error {
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts = append(s.puts, input)
	s.bodies = append(s.bodies, string(body))
	return s.putErr
}

func (s *fakeService) DeleteObject(ctx context.Context, namespace, bucketName, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, objectName)
	return s.deleteErr
}

const urlPrefix = "https://objectstorage.us-ashburn-1.oraclecloud.com/n/ns1/b/blog/o/"

func newContainer(t *testing.T, maxUploadSize int64) (*restful.Container, *fakeService, *mediastore.Store) {
	t.Helper()
	svc := &fakeService{}
	st, err := mediastore.NewWithService(mediastore.Config{
		Region:     "us-ashburn-1",
		Namespace:  "ns1",
		BucketName: "blog",
	}, svc)
	if err != nil {
		t.Fatalf("NewWithService: %v", err)
	}
	container := restful.NewContainer()
	container.Add(objects.NewWebService(st, maxUploadSize))
	return container, svc, st
}

func serve(container *restful.Container, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	container.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target string, body any) *http.Request {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func imageRequest(t *testing.T, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	partHeader.Set("Content-Type", contentType)
	part, err := mw.CreatePart(partHeader)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	_, _ = part.Write(content)
	if err = mw.Close(); err != nil {
		t.Fatalf("multipart close: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeURL(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp objects.ObjectURLResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.URL
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) rest.ErrorResponse {
	t.Helper()
	var resp rest.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

var pngContent = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

func TestUploadAndUpdateContent(t *testing.T) {
	container, svc, _ := newContainer(t, 0)

	rec := serve(container, jsonRequest(http.MethodPost, "/contents",
		objects.UploadContentRequest{Content: "# Hello"}))
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}
	objectURL := decodeURL(t, rec)
	if !strings.HasPrefix(objectURL, urlPrefix) || !strings.HasSuffix(objectURL, ".md") {
		t.Errorf("unexpected URL %q", objectURL)
	}

	rec = serve(container, jsonRequest(http.MethodPut, "/contents",
		objects.UpdateContentRequest{ObjectURL: objectURL, Content: "# Hello again"}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, body %s", rec.Code, rec.Body.String())
	}

	if len(svc.puts) != 2 {
		t.Fatalf("expected 2 puts, got %d", len(svc.puts))
	}
	if svc.puts[0].ObjectName != svc.puts[1].ObjectName {
		t.Errorf("update wrote %q instead of %q", svc.puts[1].ObjectName, svc.puts[0].ObjectName)
	}
	if svc.bodies[1] != "# Hello again" || svc.puts[1].ContentType != "text/markdown" {
		t.Errorf("unexpected update %q (%s)", svc.bodies[1], svc.puts[1].ContentType)
	}
}

func TestUpdateContentInvalidURL(t *testing.T) {
	container, svc, _ := newContainer(t, 0)

	rec := serve(container, jsonRequest(http.MethodPut, "/contents",
		objects.UpdateContentRequest{ObjectURL: "https://example.com/abc.md", Content: "x"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Code != "invalid_argument" {
		t.Errorf("error code = %q", resp.Code)
	}
	if len(svc.puts) != 0 {
		t.Errorf("expected no puts, got %d", len(svc.puts))
	}
}

func TestUpdateContentMissingURL(t *testing.T) {
	container, svc, _ := newContainer(t, 0)

	rec := serve(container, jsonRequest(http.MethodPut, "/contents",
		objects.UpdateContentRequest{Content: "x"}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeError(t, rec)
	if len(resp.Fields) != 1 || resp.Fields[0].Field != "body.object_url" || resp.Fields[0].Description != "empty" {
		t.Errorf("fields = %+v", resp.Fields)
	}
	if len(svc.puts) != 0 {
		t.Errorf("expected no puts, got %d", len(svc.puts))
	}
}

func TestUploadContentStorageFailure(t *testing.T) {
	container, svc, _ := newContainer(t, 0)
	svc.putErr = errors.New("service unavailable")

	rec := serve(container, jsonRequest(http.MethodPost, "/contents",
		objects.UploadContentRequest{Content: "# Hello"}))
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp := decodeError(t, rec); resp.Code != "storage_failure" {
		t.Errorf("error code = %q", resp.Code)
	}
}

func TestUploadImage(t *testing.T) {
	container, svc, _ := newContainer(t, 1<<20)

	rec := serve(container, imageRequest(t, "photo.png", "image/png", pngContent))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	objectURL := decodeURL(t, rec)
	if !strings.HasPrefix(objectURL, urlPrefix) || !strings.HasSuffix(objectURL, "_photo.png") {
		t.Errorf("unexpected URL %q", objectURL)
	}

	if len(svc.puts) != 1 {
		t.Fatalf("expected 1 put, got %d", len(svc.puts))
	}
	put := svc.puts[0]
	if put.ContentType != "image/png" || put.ContentLength != int64(len(pngContent)) {
		t.Errorf("metadata = %s/%d", put.ContentType, put.ContentLength)
	}
	if svc.bodies[0] != string(pngContent) {
		t.Errorf("body mismatch")
	}
}

func TestUploadImageRejected(t *testing.T) {
	container, svc, _ := newContainer(t, 1<<20)

	rec := serve(container, imageRequest(t, "notes.txt", "text/plain", []byte("hello")))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("disallowed type: status = %d", rec.Code)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("title", "no file")
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = serve(container, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file: status = %d", rec.Code)
	}

	if len(svc.puts) != 0 {
		t.Errorf("expected no puts, got %d", len(svc.puts))
	}
}

func TestUploadImageTooLarge(t *testing.T) {
	container, svc, _ := newContainer(t, 64)

	rec := serve(container, imageRequest(t, "big.png", "image/png", bytes.Repeat([]byte("x"), 1024)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(svc.puts) != 0 {
		t.Errorf("expected no puts, got %d", len(svc.puts))
	}
}

func TestDeleteObject(t *testing.T) {
	container, svc, st := newContainer(t, 0)
	objectURL := st.ObjectURL("abc_cover photo.png")

	req := httptest.NewRequest(http.MethodDelete, "/objects?object_url="+url.QueryEscape(objectURL), nil)
	rec := serve(container, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(svc.deletes) != 1 || svc.deletes[0] != "abc_cover photo.png" {
		t.Errorf("deletes = %v", svc.deletes)
	}
}

func TestDeleteObjectErrors(t *testing.T) {
	container, svc, st := newContainer(t, 0)

	rec := serve(container, httptest.NewRequest(http.MethodDelete, "/objects", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing object_url: status = %d", rec.Code)
	}
	if len(svc.deletes) != 0 {
		t.Errorf("expected no deletes, got %v", svc.deletes)
	}

	svc.deleteErr = errors.New("404 ObjectNotFound")
	req := httptest.NewRequest(http.MethodDelete, "/objects?object_url="+url.QueryEscape(st.ObjectURL("abc.md")), nil)
	rec = serve(container, req)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("backend failure: status = %d", rec.Code)
	}
}
