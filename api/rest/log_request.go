package rest

import (
	"time"

	"github.com/emicklei/go-restful/v3"

	"github.com/timemore/blobstore/logger"
	"github.com/timemore/blobstore/metrics"
)

var log = logger.NewPkgLogger()

// LogFilter logs every request once it has been served and records
// its latency.
type LogFilter struct {
	clock timer
}

type timer interface {
	Now() time.Time
	Since(time.Time) time.Duration
}

type realClock struct{}

func (rc *realClock) Now() time.Time {
	return time.Now()
}

func (rc *realClock) Since(t time.Time) time.Duration {
	return time.Since(t)
}

func NewRequestLoggingFilter() *LogFilter {
	return &LogFilter{
		clock: &realClock{},
	}
}

func (lf *LogFilter) Filter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	startTime := lf.clock.Now().UTC()
	chain.ProcessFilter(req, resp)
	latency := lf.clock.Since(startTime)

	// the route template keeps the metric labels bounded
	path := req.SelectedRoutePath()
	if path == "" {
		path = req.Request.URL.Path
	}
	statusCode := resp.StatusCode()
	metrics.RecordHTTPRequest(req.Request.Method, path, statusCode, latency)

	reqLog := log.WithRequest(req.Request)
	evt := reqLog.Info()
	if statusCode >= 500 {
		evt = reqLog.Error()
	}
	evt.Int("status_code", statusCode).
		Str("referer", req.Request.Referer()).
		Dur("latency", latency).
		Msg("request served")
}
