package domain

// WeatherObservation is a current-conditions snapshot from the upstream
// weather provider, normalized to the units the scorers expect: Celsius,
// percent, km/h, hPa, km.
type WeatherObservation struct {
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	WindSpeed    float64 `json:"wind_speed"`
	Pressure     float64 `json:"pressure"`
	VisibilityKm float64 `json:"visibility"`
	Description  string  `json:"description"`
	City         string  `json:"city,omitempty"`
	// IsReal is false when the observation is a synthetic fallback rather
	// than live provider data.
	IsReal bool `json:"is_real"`
}

// Reading converts an observation at a coordinate into scorer input.
func (w WeatherObservation) Reading(lat, lon float64) EnvironmentalReading {
	return EnvironmentalReading{
		Temperature: w.Temperature,
		Humidity:    w.Humidity,
		WindSpeed:   w.WindSpeed,
		Pressure:    w.Pressure,
		Latitude:    lat,
		Longitude:   lon,
	}
}

// AirQuality is an air pollution snapshot. AQI uses the provider's 1-5 scale.
type AirQuality struct {
	AQI   int     `json:"aqi"`
	CO    float64 `json:"co"`
	NO2   float64 `json:"no2"`
	O3    float64 `json:"o3"`
	SO2   float64 `json:"so2"`
	PM25  float64 `json:"pm2_5"`
	PM10  float64 `json:"pm10"`
	Label string  `json:"label"`
}

// AQILabel names the provider's 1-5 air quality index.
func AQILabel(aqi int) string {
	switch aqi {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	case 5:
		return "Very Poor"
	default:
		return "Unknown"
	}
}
