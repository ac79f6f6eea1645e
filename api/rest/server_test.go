package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emicklei/go-restful/v3"
)

func testWebService() *restful.WebService {
	ws := new(restful.WebService)
	ws.Path("/test").Produces(restful.MIME_JSON)
	ws.Route(ws.GET("/ok").To(func(req *restful.Request, resp *restful.Response) {
		RespondTo(resp).Success(map[string]string{"status": "ok"})
	}))
	ws.Route(ws.GET("/panic").To(func(req *restful.Request, resp *restful.Response) {
		panic("handler exploded")
	}))
	return ws
}

func TestServerRoutes(t *testing.T) {
	srv := NewServer(ServerConfig{ListenAddress: "127.0.0.1:0"}, testWebService())
	handler := srv.Container()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/ok", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ok: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/panic", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("panic: status = %d", rec.Code)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Code != "internal" {
		t.Errorf("panic: code = %q", errResp.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		t.Errorf("stats: status = %d, content type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "blobstore_http_requests_total") {
		t.Error("metrics: request counter missing")
	}
}

func TestServerNotAcceptingBeforeServe(t *testing.T) {
	srv := NewServer(ServerConfig{ListenAddress: "127.0.0.1:0"})
	if srv.IsAcceptingClients() {
		t.Error("accepting clients before Serve")
	}
	if srv.ServerName() == "" {
		t.Error("empty server name")
	}
}

func TestRecoverUnexpectedEOF(t *testing.T) {
	rec := httptest.NewRecorder()
	NewRecover().RecoverOnPanic(io.ErrUnexpectedEOF, rec)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestServerConfigFromEnv(t *testing.T) {
	t.Setenv("REST_TEST_LISTEN_ADDRESS", ":9090")
	cfg, err := ServerConfigFromEnv("REST_TEST")
	if err != nil {
		t.Fatalf("ServerConfigFromEnv: %v", err)
	}
	if cfg.ListenAddress != ":9090" {
		t.Errorf("listen address = %q", cfg.ListenAddress)
	}
	if cfg.MaxUploadSize != 10<<20 {
		t.Errorf("max upload size = %d", cfg.MaxUploadSize)
	}
}
