// Package metrics exposes the Prometheus collectors of the hiring pipeline.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds the pipeline counters.
type Metrics struct {
	RankingRequestsTotal *prometheus.CounterVec
	RankingDuration      *prometheus.HistogramVec
	CandidatesIssued     prometheus.Counter
	QuizSubmissionsTotal *prometheus.CounterVec
	EmailsTotal          *prometheus.CounterVec
}

// New creates and registers the collectors once per process.
//
// Metrics:
//   - recruiter_ranking_requests_total{provider,outcome}
//   - recruiter_ranking_duration_seconds{provider}
//   - recruiter_candidates_issued_total
//   - recruiter_quiz_submissions_total{outcome}
//   - recruiter_emails_total{kind,outcome}
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			RankingRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recruiter_ranking_requests_total",
					Help: "Total number of ranking calls to the hosted model",
				},
				[]string{"provider", "outcome"}, // "ok", "upstream_error", "malformed"
			),
			RankingDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "recruiter_ranking_duration_seconds",
					Help:    "Duration of ranking calls in seconds",
					Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
				},
				[]string{"provider"},
			),
			CandidatesIssued: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "recruiter_candidates_issued_total",
					Help: "Total number of shortlisted candidates issued credentials",
				},
			),
			QuizSubmissionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recruiter_quiz_submissions_total",
					Help: "Total number of graded quiz submissions",
				},
				[]string{"outcome"}, // "selected", "rejected", "already_processed"
			),
			EmailsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "recruiter_emails_total",
					Help: "Total number of outbound emails",
				},
				[]string{"kind", "outcome"},
			),
		}
	})
	return globalMetrics
}

func (m *Metrics) EmailResult(kind string, ok bool) {
	outcome := "sent"
	if !ok {
		outcome = "failed"
	}
	m.EmailsTotal.WithLabelValues(kind, outcome).Inc()
}
