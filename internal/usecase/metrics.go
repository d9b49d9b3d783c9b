package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess       = "success"
	outcomeMisconfigured = "misconfigured"
	outcomeNoPrompt      = "no_prompt"
	outcomeProviderError = "provider_error"

	statusSuccess = "success"
	statusError   = "error"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prompt_gateway_requests_total",
			Help: "Total number of completion requests by outcome.",
		},
		[]string{"outcome"},
	)
	providerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prompt_gateway_provider_request_duration_seconds",
			Help:    "Histogram of completion provider request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "status"},
	)
	promptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prompt_gateway_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10), // 8 .. 4096
		},
		[]string{"model"},
	)
)
