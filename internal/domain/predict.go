package domain

// Inclusion thresholds: a hazard joins the prediction list only above these.
const (
	wildfireThreshold   = 0.1
	floodThreshold      = 0.1
	stormThreshold      = 0.15
	earthquakeThreshold = 0.05
)

// Fixed time-window estimates per hazard type.
const (
	wildfireWindow   = "24-72 hours"
	floodWindow      = "6-48 hours"
	stormWindow      = "3-24 hours"
	earthquakeWindow = "geological timescale"
	lowRiskWindow    = "current"
)

// Predict runs all hazard scorers against the reading and assembles the
// prediction list. Hazards below their inclusion threshold are omitted; when
// none qualify, a single synthetic low_risk entry is returned so callers
// always receive at least one prediction.
func Predict(r EnvironmentalReading) ([]HazardPrediction, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	preds := make([]HazardPrediction, 0, 4)

	wildfire := wildfireRisk(r)
	if !isFinite(wildfire) {
		return nil, &ComputationError{Hazard: HazardWildfire, Value: wildfire}
	}
	if wildfire > wildfireThreshold {
		preds = append(preds, HazardPrediction{
			Type:               HazardWildfire,
			Probability:        round3(wildfire),
			Severity:           SeverityLevel(wildfire),
			TimeWindow:         wildfireWindow,
			Factors:            wildfireFactors(r),
			RecommendedActions: wildfireActions(wildfire),
		})
	}

	flood := floodRisk(r)
	if !isFinite(flood) {
		return nil, &ComputationError{Hazard: HazardFlood, Value: flood}
	}
	if flood > floodThreshold {
		preds = append(preds, HazardPrediction{
			Type:               HazardFlood,
			Probability:        round3(flood),
			Severity:           SeverityLevel(flood),
			TimeWindow:         floodWindow,
			Factors:            floodFactors(r),
			RecommendedActions: floodActions(flood),
		})
	}

	storm := stormRisk(r)
	if !isFinite(storm) {
		return nil, &ComputationError{Hazard: HazardStorm, Value: storm}
	}
	if storm > stormThreshold {
		preds = append(preds, HazardPrediction{
			Type:               HazardStorm,
			Probability:        round3(storm),
			Severity:           SeverityLevel(storm),
			TimeWindow:         stormWindow,
			Factors:            stormFactors(r),
			RecommendedActions: stormActions(storm),
		})
	}

	earthquake := earthquakeRisk(r)
	if !isFinite(earthquake) {
		return nil, &ComputationError{Hazard: HazardEarthquake, Value: earthquake}
	}
	if earthquake > earthquakeThreshold {
		preds = append(preds, HazardPrediction{
			Type:               HazardEarthquake,
			Probability:        round3(earthquake),
			Severity:           SeverityLevel(earthquake),
			TimeWindow:         earthquakeWindow,
			Factors:            []string{"tectonic_activity", "geological_history", "seismic_patterns"},
			RecommendedActions: earthquakeActions(earthquake),
		})
	}

	if len(preds) == 0 {
		preds = append(preds, lowRiskPrediction())
	}

	return preds, nil
}

// lowRiskPrediction is the synthetic entry emitted when no hazard clears its
// inclusion threshold.
func lowRiskPrediction() HazardPrediction {
	return HazardPrediction{
		Type:               HazardLowRisk,
		Probability:        0.05,
		Severity:           SeverityMinimal,
		TimeWindow:         lowRiskWindow,
		Factors:            []string{"stable_conditions"},
		RecommendedActions: []string{"maintain_normal_vigilance", "monitor_weather_updates"},
	}
}

// ConfidenceLevel derives the qualitative confidence label from the maximum
// probability in a prediction list.
func ConfidenceLevel(preds []HazardPrediction) string {
	if len(preds) == 0 {
		return ConfidenceLow
	}
	maxProb := 0.0
	for _, p := range preds {
		if p.Probability > maxProb {
			maxProb = p.Probability
		}
	}
	switch {
	case maxProb >= 0.6:
		return ConfidenceHigh
	case maxProb >= 0.3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Contributing-factor tags come from simple threshold rules on the raw inputs,
// with a default tag when nothing triggers.

func wildfireFactors(r EnvironmentalReading) []string {
	var factors []string
	if r.Temperature > 30 {
		factors = append(factors, "high_temperature")
	}
	if r.Humidity < 30 {
		factors = append(factors, "low_humidity")
	}
	if r.WindSpeed > 15 {
		factors = append(factors, "strong_winds")
	}
	if len(factors) == 0 {
		factors = append(factors, "moderate_conditions")
	}
	return factors
}

func floodFactors(r EnvironmentalReading) []string {
	var factors []string
	if r.Humidity > 80 {
		factors = append(factors, "high_humidity")
	}
	if r.Pressure < 1005 {
		factors = append(factors, "low_pressure_system")
	}
	if r.Temperature > 25 {
		factors = append(factors, "thunderstorm_conditions")
	}
	if len(factors) == 0 {
		factors = append(factors, "stable_conditions")
	}
	return factors
}

func stormFactors(r EnvironmentalReading) []string {
	var factors []string
	if r.WindSpeed > 20 {
		factors = append(factors, "high_winds")
	}
	if r.Pressure < 1010 {
		factors = append(factors, "pressure_drop")
	}
	if r.Humidity > 75 {
		factors = append(factors, "moisture_buildup")
	}
	if len(factors) == 0 {
		factors = append(factors, "calm_conditions")
	}
	return factors
}

// Recommended actions are fixed ordered lists chosen by risk tier.

func wildfireActions(risk float64) []string {
	switch {
	case risk >= 0.6:
		return []string{"evacuate_high_risk_areas", "emergency_services_alert", "fire_suppression_ready"}
	case risk >= 0.3:
		return []string{"increase_fire_watch", "prepare_evacuation_routes", "limit_outdoor_activities"}
	default:
		return []string{"monitor_conditions", "maintain_fire_safety_measures"}
	}
}

func floodActions(risk float64) []string {
	switch {
	case risk >= 0.6:
		return []string{"evacuate_flood_zones", "sandbag_operations", "emergency_shelters_open"}
	case risk >= 0.3:
		return []string{"flood_watch_active", "secure_loose_items", "avoid_low_areas"}
	default:
		return []string{"monitor_water_levels", "check_drainage_systems"}
	}
}

func stormActions(risk float64) []string {
	switch {
	case risk >= 0.6:
		return []string{"severe_weather_warning", "seek_indoor_shelter", "avoid_travel"}
	case risk >= 0.3:
		return []string{"weather_watch", "secure_outdoor_items", "monitor_updates"}
	default:
		return []string{"normal_weather_precautions", "stay_informed"}
	}
}

func earthquakeActions(risk float64) []string {
	switch {
	case risk >= 0.4:
		return []string{"earthquake_preparedness_high", "secure_heavy_objects", "review_evacuation_plans"}
	case risk >= 0.2:
		return []string{"earthquake_awareness", "emergency_kit_ready", "building_inspections"}
	default:
		return []string{"basic_earthquake_preparedness", "know_safety_procedures"}
	}
}
