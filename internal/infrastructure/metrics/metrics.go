// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studybuds_http_requests_total",
		Help: "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studybuds_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	PartnerScansTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studybuds_partner_scans_total",
		Help: "Partner searches by outcome (ok, incomplete, not_found, unavailable)",
	}, []string{"outcome"})

	PartnerCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "studybuds_partner_candidates",
		Help:    "Number of candidates returned per partner search",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})

	MatchTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studybuds_match_transitions_total",
		Help: "Match request state changes by resulting status",
	}, []string{"status"})

	MessagesSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studybuds_chat_messages_sent_total",
		Help: "Chat messages accepted for delivery",
	})

	ChatSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "studybuds_chat_subscribers",
		Help: "Live chat subscriptions",
	})

	SwipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studybuds_swipes_total",
		Help: "Feed swipes by direction",
	}, []string{"direction"})
)
