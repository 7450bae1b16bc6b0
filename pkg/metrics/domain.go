package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rate_audit"

// Reference-rate lookup outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeCached   = "cached"
	OutcomeFixed    = "fixed"
	OutcomeError    = "error"
	OutcomeUnmapped = "unmapped"
)

const (
	categoryLabel = "category"
	outcomeLabel  = "outcome"
	seriesLabel   = "series"
	verdictLabel  = "verdict"
)

//nolint:gochecknoglobals
var (
	buildInfo = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "build_info",
		Help:      "Always 1, labelled with the running version.",
	}, []string{"version"})

	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "evaluations_total",
		Help:      "Loan evaluations by category and verdict.",
	}, []string{categoryLabel, verdictLabel})

	solverNotConverged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solver_not_converged_total",
		Help:      "Implied-rate solves that exhausted their iteration budget.",
	})

	referenceRateLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reference_rate_lookups_total",
		Help:      "Reference-rate lookups by category and outcome.",
	}, []string{categoryLabel, outcomeLabel})

	upstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "sgs_request_duration_seconds",
		Help:      "Latency of SGS series requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{seriesLabel})
)

// SetBuildInfo publishes the running version.
func SetBuildInfo(version string) {
	buildInfo.Reset()
	buildInfo.WithLabelValues(version).Set(1)
}

func ObserveEvaluation(category, verdict string) {
	evaluations.WithLabelValues(category, verdict).Inc()
}

func ObserveSolverNotConverged() {
	solverNotConverged.Inc()
}

func ObserveReferenceRateLookup(category, outcome string) {
	referenceRateLookups.WithLabelValues(category, outcome).Inc()
}

func ObserveUpstreamLatency(series string, d time.Duration) {
	upstreamLatency.WithLabelValues(series).Observe(d.Seconds())
}

func EvaluationsCount(category, verdict string) prometheus.Counter {
	return evaluations.WithLabelValues(category, verdict)
}

func SolverNotConvergedCount() prometheus.Counter {
	return solverNotConverged
}

func ReferenceRateLookupsCount(category, outcome string) prometheus.Counter {
	return referenceRateLookups.WithLabelValues(category, outcome)
}
