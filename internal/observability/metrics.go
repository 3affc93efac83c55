package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the risk service.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec // labels: model={enhanced,enhanced_outlook,simple}
	AssessmentDuration prometheus.Histogram
	RiskScore          prometheus.Histogram
	HazardPredictions  *prometheus.CounterVec // labels: hazard={wildfire,flood,severe_weather,earthquake,low_risk}

	// Upstream data source metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: source={openweather,usgs}, outcome={success,error,fallback}
	UpstreamDuration *prometheus.HistogramVec // labels: source={openweather,usgs}

	// Alert publishing metrics.
	AlertsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
	AlertsEnabled   prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_risk",
			Name:      "assessments_total",
			Help:      "Risk assessments served, by model variant.",
		}, []string{"model"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a full risk assessment including upstream fetches.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		RiskScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_risk",
			Name:      "risk_score",
			Help:      "Distribution of combined risk scores on the 0-10 scale.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		}),
		HazardPredictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_risk",
			Name:      "hazard_predictions_total",
			Help:      "Hazard predictions that cleared their inclusion threshold, by type.",
		}, []string{"hazard"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_risk",
			Name:      "upstream_requests_total",
			Help:      "Upstream data source requests by source and outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disaster_risk",
			Name:      "upstream_duration_seconds",
			Help:      "Upstream request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_risk",
			Name:      "alerts_published_total",
			Help:      "Alerts written to the alert topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_risk",
			Name:      "publish_errors_total",
			Help:      "Alert publish failures.",
		}),
		AlertsEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_risk",
			Name:      "alerts_enabled",
			Help:      "1 when alert publishing is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.RiskScore,
		m.HazardPredictions,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.AlertsPublished,
		m.PublishErrors,
		m.AlertsEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_risk", Name: "assessments_total"}, []string{"model"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "disaster_risk", Name: "assessment_duration_seconds"}),
		RiskScore:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "disaster_risk", Name: "risk_score"}),
		HazardPredictions:  prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_risk", Name: "hazard_predictions_total"}, []string{"hazard"}),
		UpstreamRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "disaster_risk", Name: "upstream_requests_total"}, []string{"source", "outcome"}),
		UpstreamDuration:   prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "disaster_risk", Name: "upstream_duration_seconds"}, []string{"source"}),
		AlertsPublished:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_risk", Name: "alerts_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "disaster_risk", Name: "publish_errors_total"}),
		AlertsEnabled:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "disaster_risk", Name: "alerts_enabled"}),
	}
}
