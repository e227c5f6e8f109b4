package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	ExpiredChallengeTotal      = "expired_challenge_total"
	PublishEventFailure        = "publish_event_failure"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		ExpiredChallengeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ExpiredChallengeTotal,
			Help: "Count of challenges closed by the expiry sweep",
		}, []string{}),
		PublishEventFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PublishEventFailure,
			Help: "Count of events which could not be published",
		}, []string{"topic"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)
