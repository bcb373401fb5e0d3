package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BuildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "llm_council_build_info",
			Help: "Build information of the llm-council CLI",
		},
		[]string{"version", "commit", "date"},
	)

	CouncilRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_council_runs_total",
		Help: "Total number of council runs",
	}, []string{"result"})

	StageDurations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_council_stage_durations_seconds",
		Help:    "Duration of each council stage",
		Buckets: prometheus.ExponentialBuckets(1, 1.8, 10), // ≈ 1s .. ~200s
	}, []string{"stage"})

	ModelInvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_council_model_invocations_total",
		Help: "Total number of model invocations",
	}, []string{"model", "result"})

	ModelInvocationDurations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "llm_council_model_invocation_durations_seconds",
		Help:    "Duration of individual model invocations",
		Buckets: prometheus.ExponentialBuckets(0.5, 1.8, 10), // ≈ 0.5s .. ~100s
	}, []string{"model"})

	InvocationsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "llm_council_invocations_inflight",
		Help: "Number of model invocations currently in flight",
	})

	APIErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_council_api_errors_total",
		Help: "Total number of OpenRouter API errors",
	}, []string{"operation"})

	ModelListFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_council_model_list_fetches_total",
		Help: "Total number of model list fetches from OpenRouter",
	}, []string{"result"})

	ConversationsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "llm_council_conversations_saved_total",
		Help: "Total number of conversations saved to disk",
	})
)
