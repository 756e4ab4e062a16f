// Package metrics exposes prometheus instrumentation for engine runs. The
// engine components themselves record nothing; callers wrap invocations
// with the Record helpers so the components stay pure.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the application
type Registry struct {
	// Validation metrics
	ValidationRunsTotal *prometheus.CounterVec
	ValidationDuration  prometheus.Histogram
	DiagnosticsTotal    *prometheus.CounterVec

	// Risk metrics
	RiskAssessmentsTotal prometheus.Counter
	RiskComputeDuration  prometheus.Histogram
	ProjectRiskScore     prometheus.Gauge

	// Policy metrics
	PolicyEvaluationsTotal prometheus.Counter
	PolicyViolationsTotal  *prometheus.CounterVec

	// Resolver metrics
	ResolverRunsTotal prometheus.Counter
	ResolverDuration  prometheus.Histogram

	// Project metrics
	ProjectZones    prometheus.Gauge
	ProjectConduits prometheus.Gauge
	ProjectAssets   prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.ValidationRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "zonegraph_validation_runs_total",
			Help: "Total number of validation runs",
		},
		[]string{"outcome"},
	)
	r.ValidationDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zonegraph_validation_duration_seconds",
			Help:    "Validation run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
	r.DiagnosticsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "zonegraph_diagnostics_total",
			Help: "Total diagnostics emitted, by severity",
		},
		[]string{"severity"},
	)

	r.RiskAssessmentsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "zonegraph_risk_assessments_total",
			Help: "Total number of risk assessments computed",
		},
	)
	r.RiskComputeDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zonegraph_risk_compute_duration_seconds",
			Help:    "Risk assessment duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
	r.ProjectRiskScore = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "zonegraph_project_risk_score",
			Help: "Most recently computed project risk score (0-100)",
		},
	)

	r.PolicyEvaluationsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "zonegraph_policy_evaluations_total",
			Help: "Total number of policy evaluation runs",
		},
	)
	r.PolicyViolationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "zonegraph_policy_violations_total",
			Help: "Total policy violations found, by severity",
		},
		[]string{"severity"},
	)

	r.ResolverRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "zonegraph_resolver_runs_total",
			Help: "Total number of control resolution runs",
		},
	)
	r.ResolverDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "zonegraph_resolver_duration_seconds",
			Help:    "Control resolution duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)

	r.ProjectZones = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "zonegraph_project_zones",
			Help: "Zone count of the most recently loaded project",
		},
	)
	r.ProjectConduits = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "zonegraph_project_conduits",
			Help: "Conduit count of the most recently loaded project",
		},
	)
	r.ProjectAssets = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "zonegraph_project_assets",
			Help: "Asset count of the most recently loaded project",
		},
	)

	return r
}

// PrometheusRegistry returns the underlying prometheus registry for
// gathering or HTTP exposition by a caller that serves metrics
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordValidation records one validation run
func (r *Registry) RecordValidation(valid bool, errorCount, warningCount, infoCount int, duration time.Duration) {
	outcome := "valid"
	if !valid {
		outcome = "invalid"
	}
	r.ValidationRunsTotal.WithLabelValues(outcome).Inc()
	r.ValidationDuration.Observe(duration.Seconds())
	r.DiagnosticsTotal.WithLabelValues("error").Add(float64(errorCount))
	r.DiagnosticsTotal.WithLabelValues("warning").Add(float64(warningCount))
	r.DiagnosticsTotal.WithLabelValues("info").Add(float64(infoCount))
}

// RecordRiskAssessment records one risk assessment run
func (r *Registry) RecordRiskAssessment(score float64, duration time.Duration) {
	r.RiskAssessmentsTotal.Inc()
	r.RiskComputeDuration.Observe(duration.Seconds())
	r.ProjectRiskScore.Set(score)
}

// RecordPolicyEvaluation records one policy evaluation run
func (r *Registry) RecordPolicyEvaluation(violationsBySeverity map[string]int) {
	r.PolicyEvaluationsTotal.Inc()
	for severity, count := range violationsBySeverity {
		r.PolicyViolationsTotal.WithLabelValues(severity).Add(float64(count))
	}
}

// RecordResolverRun records one control resolution run
func (r *Registry) RecordResolverRun(duration time.Duration) {
	r.ResolverRunsTotal.Inc()
	r.ResolverDuration.Observe(duration.Seconds())
}

// SetProjectSize records the dimensions of the loaded project
func (r *Registry) SetProjectSize(zones, conduits, assets int) {
	r.ProjectZones.Set(float64(zones))
	r.ProjectConduits.Set(float64(conduits))
	r.ProjectAssets.Set(float64(assets))
}
