package http

import (
	"net/http"

	"github.com/larsmk/riftline/internal/aggregator"
	"github.com/larsmk/riftline/internal/config"
	"github.com/larsmk/riftline/internal/metrics"
)

type Server struct {
	Aggregator     aggregator.Service
	Metrics        metrics.Metrics
	Counters       metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
