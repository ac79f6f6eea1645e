package rest

import (
	"encoding/json"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/thoas/stats"
)

// StatsFilter collects response counts and times for the /stats
// endpoint.
type StatsFilter struct {
	stats *stats.Stats
}

func NewStatsFilter() *StatsFilter {
	return &StatsFilter{
		stats: stats.New(),
	}
}

func (sf *StatsFilter) Filter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	beginning, recorder := sf.stats.Begin(resp.ResponseWriter)
	defer sf.stats.End(beginning, stats.WithRecorder(recorder))

	resp.ResponseWriter = recorder
	chain.ProcessFilter(req, resp)
}

func (sf *StatsFilter) StatsHandler(w http.ResponseWriter, r *http.Request) {
	b, err := json.Marshal(sf.stats.Data())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}
