package domain

import "math"

// Assessor aggregates one reading into an overall risk assessment.
// VisibilityKm comes from the weather source rather than the reading itself;
// models that do not use visibility ignore it.
type Assessor interface {
	Assess(r EnvironmentalReading, visibilityKm float64) (RiskAssessment, error)
}

// baseRiskScore is the minimum baseline on the enhanced aggregation paths.
const baseRiskScore = 1.5

// EnhancedModel aggregates the hazard-scorer predictions. It has two call
// paths with deliberately different modifier semantics: Assess applies the
// humidity and visibility modifiers unconditionally, AssessOutlook applies a
// wider condition ladder only when no hazard cleared its inclusion threshold.
type EnhancedModel struct{}

// Assess produces the summary assessment for a reading. Condition modifiers
// (humidity, visibility) are always added on top of the combined prediction
// score. The earthquake display score falls back to a fixed 2.5 when no
// earthquake prediction is present.
func (EnhancedModel) Assess(r EnvironmentalReading, visibilityKm float64) (RiskAssessment, error) {
	preds, err := Predict(r)
	if err != nil {
		return RiskAssessment{}, err
	}
	hazards := hazardPredictions(preds)

	score := combinedScore(hazards)
	switch {
	case r.Humidity > 90:
		score += 1.0
	case r.Humidity > 80:
		score += 0.5
	}
	if visibilityKm < 5 {
		score += 0.5
	}
	score = round1(math.Min(score, 10))

	return RiskAssessment{
		OverallRisk:    enhancedCategory(score),
		RiskScore:      score,
		FloodRisk:      displayScore(hazards, HazardFlood, math.Max(1.5, r.Humidity/40)),
		FireRisk:       displayScore(hazards, HazardWildfire, math.Max(1.0, (100-r.Humidity)/40)),
		StormRisk:      displayScore(hazards, HazardStorm, math.Max(1.5, r.WindSpeed/10)),
		EarthquakeRisk: displayScore(hazards, HazardEarthquake, 2.5),
		Confidence:     FixedConfidence,
		Predictions:    preds,
	}, nil
}

// AssessOutlook produces the outlook assessment for a reading. The combined
// prediction score stands alone when any hazard qualified; otherwise the
// baseline is raised by a condition ladder (fog, saturation, temperature
// extremes). The earthquake display score falls back to a fresh uniform draw
// in [1,3] when no earthquake prediction is present.
func (EnhancedModel) AssessOutlook(r EnvironmentalReading, visibilityKm float64) (RiskAssessment, error) {
	preds, err := Predict(r)
	if err != nil {
		return RiskAssessment{}, err
	}
	hazards := hazardPredictions(preds)

	var score float64
	if len(hazards) > 0 {
		score = combinedScore(hazards)
	} else {
		score = baseRiskScore
		switch {
		case visibilityKm < 2:
			score += 1.5
		case visibilityKm < 5:
			score += 0.5
		}
		switch {
		case r.Humidity > 90:
			score += 1.0
		case r.Humidity > 80:
			score += 0.5
		}
		switch {
		case r.Temperature > 40 || r.Temperature < 0:
			score += 1.5
		case r.Temperature > 35 || r.Temperature < 5:
			score += 0.5
		}
	}
	score = round1(math.Min(score, 10))

	return RiskAssessment{
		OverallRisk:    enhancedCategory(score),
		RiskScore:      score,
		FloodRisk:      displayScore(hazards, HazardFlood, math.Max(1.5, r.Humidity/40)),
		FireRisk:       displayScore(hazards, HazardWildfire, math.Max(1.0, (100-r.Humidity)/40)),
		StormRisk:      displayScore(hazards, HazardStorm, math.Max(1.5, r.WindSpeed/10)),
		EarthquakeRisk: displayScore(hazards, HazardEarthquake, uniform(1, 3)),
		Confidence:     FixedConfidence,
		Predictions:    preds,
	}, nil
}

// SimpleModel is the legacy rule-based calculator. It never invokes the hazard
// scorers and uses its own, wider category boundaries (≥8/≥6/≥4). Kept as a
// separate named strategy because existing consumers depend on its scale.
type SimpleModel struct{}

// Assess applies fixed per-condition increments to a 3.0 baseline. Visibility
// is ignored.
func (SimpleModel) Assess(r EnvironmentalReading, _ float64) (RiskAssessment, error) {
	if err := r.Validate(); err != nil {
		return RiskAssessment{}, err
	}

	score := 3.0
	stormScore := 2.0
	fireScore := 2.0
	floodScore := 2.0

	switch {
	case r.Temperature > 35 || r.Temperature < 5:
		score += 2
	case r.Temperature > 30 || r.Temperature < 10:
		score += 1
	}

	switch {
	case r.WindSpeed > 20:
		stormScore = 8.0
		score += 2
	case r.WindSpeed > 15:
		stormScore = 6.0
		score += 1
	case r.WindSpeed > 10:
		stormScore = 4.0
	}

	switch {
	case r.Humidity < 30:
		fireScore = 7.0
		score += 1.5
	case r.Humidity < 50:
		fireScore = 4.0
	}

	switch {
	case r.Humidity > 80:
		floodScore = 6.0
		score += 1
	case r.Humidity > 70:
		floodScore = 4.0
	}

	if r.Pressure < 1000 {
		score += 1.5
		stormScore += 2
	}

	return RiskAssessment{
		OverallRisk:    simpleCategory(score),
		RiskScore:      math.Min(round1(score), 10),
		FloodRisk:      math.Min(round1(floodScore), 10),
		FireRisk:       math.Min(round1(fireScore), 10),
		StormRisk:      math.Min(round1(stormScore), 10),
		EarthquakeRisk: round1(uniform(1, 3)),
		Confidence:     FixedConfidence,
	}, nil
}

// combinedScore mixes the qualifying predictions' probabilities
// (max weighted 0.6, mean weighted 0.4) onto the 0-10 scale, floored at the
// baseline. Empty input yields the baseline.
func combinedScore(hazards []HazardPrediction) float64 {
	if len(hazards) == 0 {
		return baseRiskScore
	}
	maxProb, sum := 0.0, 0.0
	for _, p := range hazards {
		if p.Probability > maxProb {
			maxProb = p.Probability
		}
		sum += p.Probability
	}
	avgProb := sum / float64(len(hazards))
	return round1(math.Max(baseRiskScore, (maxProb*0.6+avgProb*0.4)*10))
}

// hazardPredictions strips the synthetic low_risk entry, leaving only hazards
// that actually cleared their thresholds.
func hazardPredictions(preds []HazardPrediction) []HazardPrediction {
	hazards := make([]HazardPrediction, 0, len(preds))
	for _, p := range preds {
		if p.Type != HazardLowRisk {
			hazards = append(hazards, p)
		}
	}
	return hazards
}

// displayScore maps a hazard's probability onto the 0-10 display scale, using
// the provided fallback when the hazard did not qualify.
func displayScore(hazards []HazardPrediction, hazardType string, fallback float64) float64 {
	for _, p := range hazards {
		if p.Type == hazardType {
			return math.Min(round1(p.Probability*10), 10)
		}
	}
	return math.Min(round1(fallback), 10)
}

func enhancedCategory(score float64) string {
	switch {
	case score >= 7:
		return RiskCritical
	case score >= 5:
		return RiskHigh
	case score >= 3:
		return RiskModerate
	default:
		return RiskLow
	}
}

func simpleCategory(score float64) string {
	switch {
	case score >= 8:
		return RiskCritical
	case score >= 6:
		return RiskHigh
	case score >= 4:
		return RiskModerate
	default:
		return RiskLow
	}
}
