package domain

import (
	"math"
	"time"
)

// SeverityLevel maps a hazard probability to its severity tier. The mapping is
// shared by every hazard type.
func SeverityLevel(probability float64) string {
	switch {
	case probability >= 0.7:
		return SeverityCritical
	case probability >= 0.5:
		return SeverityHigh
	case probability >= 0.3:
		return SeverityModerate
	case probability >= 0.1:
		return SeverityLow
	default:
		return SeverityMinimal
	}
}

// wildfireRisk scores wildfire probability from heat, dryness, and wind, with
// latitude-band and fire-season multipliers.
func wildfireRisk(r EnvironmentalReading) float64 {
	tempFactor := math.Max(0, (r.Temperature-20)/30)
	humidityFactor := math.Max(0, (70-r.Humidity)/70)
	windFactor := math.Min(1, r.WindSpeed/25)

	latFactor := 1.0
	absLat := math.Abs(r.Latitude)
	switch {
	case absLat >= 30 && absLat <= 50:
		latFactor = 1.3
	case absLat < 10:
		latFactor = 0.7
	}

	seasonal := 1.0
	switch clock.Now().Month() {
	case time.June, time.July, time.August, time.September:
		seasonal = 1.4
	case time.December, time.January, time.February:
		seasonal = 0.6
	}

	base := tempFactor*0.3 + humidityFactor*0.4 + windFactor*0.3
	return clamp01(base*latFactor*seasonal + jitter(0.1))
}

// floodRisk scores flood probability from saturation, low pressure, and a
// temperature band, with coastal-latitude and wet-season multipliers.
func floodRisk(r EnvironmentalReading) float64 {
	humidityFactor := clamp01((r.Humidity - 50) / 40)
	pressureFactor := math.Max(0, (1020-r.Pressure)/20)

	tempFactor := 0.1
	if r.Temperature >= 5 && r.Temperature <= 35 {
		tempFactor = 0.3
	}

	coastal := 1.0
	if math.Abs(r.Latitude) < 45 {
		coastal = 1.2
	}

	seasonal := 0.8
	if m := clock.Now().Month(); m >= time.May && m <= time.October {
		seasonal = 1.3
	}

	base := humidityFactor*0.4 + pressureFactor*0.4 + tempFactor*0.2
	return clamp01(base*coastal*seasonal + jitter(0.08))
}

// stormRisk scores severe weather probability from wind, pressure deficit,
// moisture, and temperature instability. No geographic or seasonal multiplier.
func stormRisk(r EnvironmentalReading) float64 {
	windFactor := math.Min(1, r.WindSpeed/30)
	pressureFactor := math.Max(0, (1020-r.Pressure)/25)
	humidityFactor := clamp01((r.Humidity - 60) / 30)

	tempFactor := 0.2
	if r.Temperature >= 15 && r.Temperature <= 40 {
		tempFactor = 0.4
	}

	base := windFactor*0.35 + pressureFactor*0.35 + humidityFactor*0.2 + tempFactor*0.1
	return clamp01(base + jitter(0.1))
}

// seismicZone is a named lat/lon rectangle with an elevated base risk.
type seismicZone struct {
	name           string
	latMin, latMax float64
	lonMin, lonMax float64
	risk           float64
}

// seismicZones is the static geological lookup table. The rectangles are
// coarse; the engine does no seismic data ingestion.
var seismicZones = []seismicZone{
	{"california", 32, 42, -125, -114, 0.4},
	{"japan", 35, 45, 135, 145, 0.5},
	{"new_zealand", -45, -35, 165, 180, 0.3},
	{"turkey_greece", 36, 42, 25, 35, 0.25},
}

// seismicFloor is the global baseline earthquake probability outside all zones.
const seismicFloor = 0.02

// seismicBaseRisk returns the pre-jitter base risk for a coordinate: the
// maximum matching zone risk, or the global floor when no zone contains it.
func seismicBaseRisk(lat, lon float64) float64 {
	base := seismicFloor
	for _, z := range seismicZones {
		if lat >= z.latMin && lat <= z.latMax && lon >= z.lonMin && lon <= z.lonMax {
			base = math.Max(base, z.risk)
		}
	}
	return base
}

// earthquakeRisk scores earthquake probability from the zone table, a uniform
// fault-distance factor, and a small jitter.
func earthquakeRisk(r EnvironmentalReading) float64 {
	base := seismicBaseRisk(r.Latitude, r.Longitude)
	faultDistance := uniform(0.7, 1.3)
	return clamp01(base*faultDistance + jitter(0.02))
}
