package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SourceFailures counts recovered failures per spot source.
	SourceFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musa_source_failures_total",
		Help: "Number of failed calls to a spot source.",
	}, []string{"source"})

	// SpotsReturned counts spots served per source.
	SpotsReturned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musa_spots_returned_total",
		Help: "Number of spots returned in responses, by source.",
	}, []string{"source"})

	// AICandidatesDropped counts AI candidates rejected by validation, by reason.
	AICandidatesDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "musa_ai_candidates_dropped_total",
		Help: "Number of AI generated spots discarded during validation.",
	}, []string{"reason"})

	// HTTPRequestDuration observes request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "musa_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
