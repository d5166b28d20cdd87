// Package metrics holds the Prometheus collectors for picotts and an optional
// HTTP exporter serving them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "picotts"

var (
	// updatesTotal counts inbound Telegram updates by routed kind.
	updatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "updates_total",
			Help:      "Total number of handled Telegram updates",
		},
		[]string{"route"}, // command name, text, selection, ignored
	)

	// handlerErrorsTotal counts errors and panics caught at the update boundary.
	handlerErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handler_errors_total",
			Help:      "Total number of unhandled errors caught while processing updates",
		},
	)

	// providerRequestDuration is a histogram of ElevenLabs call duration.
	providerRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Duration of ElevenLabs API calls in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"op"},
	)

	// providerRequestsTotal counts ElevenLabs calls by outcome.
	providerRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total number of ElevenLabs API calls",
		},
		[]string{"op", "outcome"}, // outcome: success, credential, provider, transport, unknown
	)

	// voiceSelectionsTotal counts picker selections.
	voiceSelectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voice_selections_total",
			Help:      "Total number of voice picker selections",
		},
		[]string{"status"}, // status: accepted, rejected
	)

	allMetrics = []prometheus.Collector{
		updatesTotal,
		handlerErrorsTotal,
		providerRequestDuration,
		providerRequestsTotal,
		voiceSelectionsTotal,
	}
)

// ObserveUpdate records one routed update.
func ObserveUpdate(route string) {
	updatesTotal.WithLabelValues(route).Inc()
}

// ObserveHandlerError records an error caught at the update boundary.
func ObserveHandlerError() {
	handlerErrorsTotal.Inc()
}

// ObserveProviderRequest records one ElevenLabs call.
func ObserveProviderRequest(op, outcome string, d time.Duration) {
	providerRequestDuration.WithLabelValues(op).Observe(d.Seconds())
	providerRequestsTotal.WithLabelValues(op, outcome).Inc()
}

// ObserveVoiceSelection records an accepted or rejected picker selection.
func ObserveVoiceSelection(accepted bool) {
	status := "rejected"
	if accepted {
		status = "accepted"
	}
	voiceSelectionsTotal.WithLabelValues(status).Inc()
}
