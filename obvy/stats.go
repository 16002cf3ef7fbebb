package scansion

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsInternal holds the prometheus collectors for one process.
// Each instance has its own registry so tests can build as many as they like.
type StatsInternal struct {
	Registry *prometheus.Registry

	Analyses      *prometheus.CounterVec
	AnalyzeTimer  prometheus.Histogram
	LinesAnalyzed prometheus.Counter
	WWWResponses  *prometheus.CounterVec
}

func NewStatsInternal() *StatsInternal {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &StatsInternal{
		Registry: reg,
		Analyses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scansion",
			Name:      "analyses_total",
			Help:      "Poems analyzed by language and dominant meter",
		}, []string{"language", "meter"}),
		AnalyzeTimer: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "scansion",
			Name:      "analyze_duration_seconds",
			Help:      "Time spent analyzing one poem, stress extraction included",
			Buckets:   prometheus.DefBuckets,
		}),
		LinesAnalyzed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "scansion",
			Name:      "lines_total",
			Help:      "Verse lines analyzed",
		}),
		WWWResponses: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scansion",
			Name:      "http_responses_total",
			Help:      "API responses by code and method",
		}, []string{"code", "method"}),
	}
}

// RecAnalysis counts one analyzed poem and its lines.
func (s *StatsInternal) RecAnalysis(lang, meter string, lines int) {
	s.Analyses.WithLabelValues(lang, meter).Inc()
	s.LinesAnalyzed.Add(float64(lines))
}

func (s *StatsInternal) RecAnalyzeTimer(seconds float64) {
	s.AnalyzeTimer.Observe(seconds)
}

func (s *StatsInternal) RecWWW(code, method string) {
	s.WWWResponses.WithLabelValues(code, method).Inc()
}

// Handler serves this registry only.
func (s *StatsInternal) Handler() http.Handler {
	return promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{Registry: s.Registry})
}
