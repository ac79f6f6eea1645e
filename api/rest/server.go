package rest

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/kelseyhightower/envconfig"

	"github.com/timemore/blobstore/app"
	"github.com/timemore/blobstore/errors"
	"github.com/timemore/blobstore/metrics"
)

const ServerConfigEnvPrefixDefault = "REST"

type ServerConfig struct {
	ListenAddress string `split_words:"true" default:":8080"`
	// MaxUploadSize is the largest request body accepted, in bytes.
	MaxUploadSize int64 `split_words:"true" default:"10485760"`
	// ReadHeaderTimeout bounds how long a client may take to send
	// the request headers.
	ReadHeaderTimeout time.Duration `split_words:"true" default:"10s"`
}

func ServerConfigFromEnv(prefix string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return ServerConfig{}, errors.Wrap("config loading from environment variables", err)
	}
	return cfg, nil
}

// Server serves the registered web services plus /metrics and /stats.
type Server struct {
	config     ServerConfig
	container  *restful.Container
	httpServer *http.Server
	accepting  atomic.Bool
}

var _ app.ServiceServer = &Server{}

func NewServer(config ServerConfig, webServices ...*restful.WebService) *Server {
	container := restful.NewContainer()
	container.DoNotRecover(false)
	container.RecoverHandler(NewRecover().RecoverOnPanic)

	statsFilter := NewStatsFilter()
	container.Filter(NewRequestLoggingFilter().Filter)
	container.Filter(statsFilter.Filter)

	for _, ws := range webServices {
		container.Add(ws)
	}
	container.Handle("/metrics", metrics.Handler())
	container.Handle("/stats", http.HandlerFunc(statsFilter.StatsHandler))

	return &Server{
		config:    config,
		container: container,
		httpServer: &http.Server{
			Addr:              config.ListenAddress,
			Handler:           container,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
	}
}

// Container exposes the underlying container, e.g., to install the
// CORS filter.
func (srv *Server) Container() *restful.Container { return srv.container }

func (srv *Server) ServerName() string { return "REST server" }

func (srv *Server) Serve() error {
	srv.accepting.Store(true)
	err := srv.httpServer.ListenAndServe()
	srv.accepting.Store(false)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (srv *Server) Shutdown(ctx context.Context) error {
	srv.accepting.Store(false)
	return srv.httpServer.Shutdown(ctx)
}

func (srv *Server) IsAcceptingClients() bool { return srv.accepting.Load() }

func (srv *Server) IsHealthy() bool { return true }
