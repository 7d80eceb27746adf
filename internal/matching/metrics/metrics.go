package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SearchesTotal      prometheus.Counter
	SearchDuration     prometheus.Histogram
	CandidatesReturned *prometheus.CounterVec
	Confirmations      *prometheus.CounterVec
	StoreReadFailures  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		SearchesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_match_searches_total",
			Help: "Total number of match searches performed",
		}),
		SearchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "reclaim_match_search_duration_seconds",
			Help:    "Duration of match searches including the candidate pool read",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CandidatesReturned: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reclaim_match_candidates_total",
			Help: "Total candidate matches returned, labeled by confidence",
		}, []string{"confidence"}),
		Confirmations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reclaim_match_confirmations_total",
			Help: "Total match confirmation attempts, labeled by outcome",
		}, []string{"outcome"}),
		StoreReadFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "reclaim_match_store_read_failures_total",
			Help: "Total storage read failures swallowed by the match finder",
		}),
	}
}

func (m *Metrics) ObserveSearch(start time.Time) {
	m.SearchesTotal.Inc()
	m.SearchDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementCandidates(confidence string) {
	m.CandidatesReturned.WithLabelValues(confidence).Inc()
}

func (m *Metrics) IncrementConfirmation(outcome string) {
	m.Confirmations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementStoreReadFailures() {
	m.StoreReadFailures.Inc()
}
