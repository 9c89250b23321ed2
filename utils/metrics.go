package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricRemoteCallCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caseview",
		Name:      "remote_calls_total",
		Help:      "Number of calls made to remote services, by operation and outcome",
	}, []string{"operation", "outcome"})

	MetricRemoteCallLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "caseview",
		Name:      "remote_call_duration_seconds",
		Help:      "Latency of the calls made to remote services",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	MetricCatalogBuildCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caseview",
		Name:      "data_definition_catalog_builds_total",
		Help:      "Number of merged data definition catalog builds, by outcome",
	}, []string{"outcome"})

	MetricAttachmentScanCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "caseview",
		Name:      "attachment_scans_total",
		Help:      "Number of attachment virus scans, by status",
	}, []string{"status"})
)
