package domain

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freezeEngine pins the clock to the given month and disables jitter for the
// duration of a test.
func freezeEngine(t *testing.T, month time.Month) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, month, 15, 12, 0, 0, 0, time.UTC)))
	SetDeterministic(true)
	t.Cleanup(func() {
		SetClock(nil)
		SetDeterministic(false)
	})
}

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		expected    string
	}{
		{"critical at threshold", 0.7, SeverityCritical},
		{"critical above", 0.95, SeverityCritical},
		{"high at threshold", 0.5, SeverityHigh},
		{"high just below critical", 0.6999, SeverityHigh},
		{"moderate at threshold", 0.3, SeverityModerate},
		{"moderate just below high", 0.4999, SeverityModerate},
		{"low at threshold", 0.1, SeverityLow},
		{"low just below moderate", 0.2999, SeverityLow},
		{"minimal just below low", 0.0999, SeverityMinimal},
		{"minimal at zero", 0, SeverityMinimal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SeverityLevel(tt.probability))
		})
	}
}

func TestSeverityLevelMonotonic(t *testing.T) {
	rank := map[string]int{
		SeverityMinimal:  0,
		SeverityLow:      1,
		SeverityModerate: 2,
		SeverityHigh:     3,
		SeverityCritical: 4,
	}

	prev := rank[SeverityLevel(0)]
	for p := 0.0; p <= 1.0; p += 0.001 {
		cur := rank[SeverityLevel(p)]
		require.GreaterOrEqual(t, cur, prev, "severity regressed at p=%f", p)
		prev = cur
	}
}

func TestSeismicBaseRisk(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected float64
	}{
		{"inside california", 36, -118, 0.4},
		{"inside japan", 40, 140, 0.5},
		{"inside new zealand", -40, 172, 0.3},
		{"inside turkey greece", 38, 30, 0.25},
		{"equator far from zones", 0, 0, seismicFloor},
		{"california lat but atlantic lon", 36, -40, seismicFloor},
		{"north pole", 90, 0, seismicFloor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, seismicBaseRisk(tt.lat, tt.lon))
		})
	}
}

func TestWildfireRiskSeasonalAndLatitude(t *testing.T) {
	reading := EnvironmentalReading{
		Temperature: 35,
		Humidity:    25,
		WindSpeed:   20,
		Pressure:    1010,
		Latitude:    38,
		Longitude:   -120,
	}

	t.Run("fire season raises risk over winter", func(t *testing.T) {
		freezeEngine(t, time.July)
		summer := wildfireRisk(reading)

		SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)))
		winter := wildfireRisk(reading)

		assert.Greater(t, summer, winter)
	})

	t.Run("tropical latitude dampens risk", func(t *testing.T) {
		freezeEngine(t, time.April)
		temperate := wildfireRisk(reading)

		tropical := reading
		tropical.Latitude = 5
		assert.Less(t, wildfireRisk(tropical), temperate)
	})
}

func TestStormRiskDrivenByWindAndPressure(t *testing.T) {
	freezeEngine(t, time.April)

	calm := EnvironmentalReading{Temperature: 20, Humidity: 50, WindSpeed: 2, Pressure: 1020}
	windy := EnvironmentalReading{Temperature: 20, Humidity: 85, WindSpeed: 45, Pressure: 990}

	assert.Less(t, stormRisk(calm), 0.15)
	assert.Greater(t, stormRisk(windy), 0.5)
}

func TestScorerBounds(t *testing.T) {
	// Randomized inputs plus the documented boundary values. Every scorer must
	// stay inside [0,1] even for physically impossible readings.
	t.Cleanup(func() { SetClock(nil) })
	r := rand.New(rand.NewSource(42))

	readings := []EnvironmentalReading{
		{Humidity: 0}, {Humidity: 100},
		{Pressure: 900}, {Pressure: 1100},
		{WindSpeed: 0}, {WindSpeed: 300},
		{Latitude: 90}, {Latitude: -90},
		{Longitude: 180}, {Longitude: -180},
		{Temperature: -60, Humidity: 150, WindSpeed: 500, Pressure: 800, Latitude: 90, Longitude: 180},
		{Temperature: 60, Humidity: -20, WindSpeed: 0, Pressure: 1200, Latitude: -90, Longitude: -180},
	}
	for i := 0; i < 500; i++ {
		readings = append(readings, EnvironmentalReading{
			Temperature: r.Float64()*120 - 50,
			Humidity:    r.Float64()*140 - 20,
			WindSpeed:   r.Float64() * 300,
			Pressure:    850 + r.Float64()*300,
			Latitude:    r.Float64()*180 - 90,
			Longitude:   r.Float64()*360 - 180,
		})
	}

	for _, month := range []time.Month{time.January, time.June, time.October} {
		SetClock(clockwork.NewFakeClockAt(time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC)))
		for _, reading := range readings {
			for name, score := range map[string]float64{
				"wildfire":   wildfireRisk(reading),
				"flood":      floodRisk(reading),
				"storm":      stormRisk(reading),
				"earthquake": earthquakeRisk(reading),
			} {
				require.False(t, math.IsNaN(score), "%s produced NaN for %+v", name, reading)
				require.GreaterOrEqual(t, score, 0.0, "%s below 0 for %+v", name, reading)
				require.LessOrEqual(t, score, 1.0, "%s above 1 for %+v", name, reading)
			}
		}
	}
}
