package domain

import "math"

// EnvironmentalReading holds the environmental inputs for one scoring call.
// Values outside physical ranges are not rejected; the scorers clamp instead,
// so out-of-range inputs degrade to 0 or saturate at 1.
type EnvironmentalReading struct {
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // percent, nominally 0-100
	WindSpeed   float64 `json:"wind_speed"`  // km/h
	Pressure    float64 `json:"pressure"`    // hPa
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Validate reports the first reading field that is NaN or infinite. Scoring
// must not begin on a reading that fails validation.
func (r EnvironmentalReading) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"temperature", r.Temperature},
		{"humidity", r.Humidity},
		{"wind_speed", r.WindSpeed},
		{"pressure", r.Pressure},
		{"latitude", r.Latitude},
		{"longitude", r.Longitude},
	}
	for _, f := range fields {
		if !isFinite(f.value) {
			return &InvalidInputError{Field: f.name, Value: f.value}
		}
	}
	return nil
}

// Hazard type tags carried on predictions.
const (
	HazardWildfire   = "wildfire"
	HazardFlood      = "flood"
	HazardStorm      = "severe_weather"
	HazardEarthquake = "earthquake"
	HazardLowRisk    = "low_risk"
)

// Severity tiers shared across all hazards.
const (
	SeverityMinimal  = "minimal"
	SeverityLow      = "low"
	SeverityModerate = "moderate"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Overall risk categories and confidence labels.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskCritical = "critical"

	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// FixedConfidence is the numeric confidence reported by the aggregate
// assessment paths, which predate the qualitative confidence estimator.
const FixedConfidence = 0.85

// HazardPrediction is one qualifying hazard in a prediction list. Instances
// are created fresh per call and never mutated after construction.
type HazardPrediction struct {
	Type               string   `json:"type"`
	Probability        float64  `json:"probability"` // [0,1], 3 decimals
	Severity           string   `json:"severity"`
	TimeWindow         string   `json:"time_window"`
	Factors            []string `json:"factors"`
	RecommendedActions []string `json:"recommended_actions"`
}

// RiskAssessment is the aggregate output of an assessment model. All risk
// scores are clamped to [0,10] and rounded to one decimal, and OverallRisk
// always matches RiskScore under the model's category boundaries.
type RiskAssessment struct {
	OverallRisk    string             `json:"overall_risk"`
	RiskScore      float64            `json:"risk_score"`
	FloodRisk      float64            `json:"flood_risk"`
	FireRisk       float64            `json:"fire_risk"`
	StormRisk      float64            `json:"storm_risk"`
	EarthquakeRisk float64            `json:"earthquake_risk"`
	Confidence     float64            `json:"confidence"`
	Predictions    []HazardPrediction `json:"predictions,omitempty"`
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// round1 and round3 round half away from zero, matching the wire format the
// dashboard expects (one decimal for 0-10 scores, three for probabilities).
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
