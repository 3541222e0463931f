package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// API
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests."},
		[]string{"handler", "method", "code"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms..~10s
		},
		[]string{"handler", "method"},
	)

	// Provider
	SendTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sms_send_total", Help: "Provider send outcomes."},
		[]string{"outcome"}, // sent | transport_error | rejected | duplicate
	)
	SendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sms_send_duration_seconds",
			Help:    "Provider send latency.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms..~40s
		},
	)
	BatchRecipients = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sms_batch_recipients",
			Help:    "Number of recipients per provider request.",
			Buckets: prometheus.LinearBuckets(0, 10, 11), // 0,10,...,100
		},
	)
)

const (
	OutcomeSent           = "sent"
	OutcomeTransportError = "transport_error"
	OutcomeRejected       = "rejected"
	OutcomeDuplicate      = "duplicate"
)

// MustRegister registers our collectors with the default registry, which
// already carries the Go and process collectors.
func MustRegister() {
	prometheus.MustRegister(
		HTTPRequests, HTTPDuration,
		SendTotal, SendDuration, BatchRecipients,
	)
}
