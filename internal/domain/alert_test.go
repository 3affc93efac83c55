package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertsFromSeismicEvents(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	t.Cleanup(func() { SetClock(nil) })

	t.Run("strong quake is high and immediate", func(t *testing.T) {
		alerts := AlertsFromSeismicEvents([]SeismicEvent{
			{ID: "us7000abcd", Magnitude: 5.5, Place: "10km NE of Ridgecrest, CA"},
		})
		require.Len(t, alerts, 1)

		alert := alerts[0]
		assert.Equal(t, "eq-us7000abcd", alert.ID)
		assert.Equal(t, "Earthquake Alert - M5.5", alert.Title)
		assert.Equal(t, "Earthquake detected: 10km NE of Ridgecrest, CA", alert.Description)
		assert.Equal(t, "High", alert.Severity)
		assert.Equal(t, "Immediate", alert.Urgency)
		assert.Equal(t, "Earthquake", alert.Event)
		assert.Equal(t, []string{"10km NE of Ridgecrest, CA"}, alert.Areas)
		assert.Equal(t, fixedTime, alert.Onset)
		assert.Equal(t, fixedTime.Add(6*time.Hour), alert.Expires)
	})

	t.Run("moderate quake is medium and expected", func(t *testing.T) {
		alerts := AlertsFromSeismicEvents([]SeismicEvent{
			{ID: "us7000wxyz", Magnitude: 3.2, Place: "offshore Honshu, Japan"},
		})
		require.Len(t, alerts, 1)
		assert.Equal(t, "Medium", alerts[0].Severity)
		assert.Equal(t, "Expected", alerts[0].Urgency)
	})

	t.Run("magnitude five is the high boundary", func(t *testing.T) {
		alerts := AlertsFromSeismicEvents([]SeismicEvent{{ID: "a", Magnitude: 5.0}})
		require.Len(t, alerts, 1)
		assert.Equal(t, "High", alerts[0].Severity)
	})

	t.Run("missing place leaves areas empty", func(t *testing.T) {
		alerts := AlertsFromSeismicEvents([]SeismicEvent{{ID: "b", Magnitude: 4.0}})
		require.Len(t, alerts, 1)
		assert.Empty(t, alerts[0].Areas)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, AlertsFromSeismicEvents(nil))
	})
}

func TestAlertFromAssessment(t *testing.T) {
	fixedTime := time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	t.Cleanup(func() { SetClock(nil) })

	t.Run("critical risk is immediate", func(t *testing.T) {
		alert := AlertFromAssessment(RiskAssessment{OverallRisk: RiskCritical, RiskScore: 8.5}, 34.05, -118.25)

		assert.Equal(t, "Critical", alert.Severity)
		assert.Equal(t, "Immediate", alert.Urgency)
		assert.Equal(t, "RiskAssessment", alert.Event)
		assert.Equal(t, "Disaster Risk Alert - score 8.5", alert.Title)
		assert.Contains(t, alert.Description, "34.0500, -118.2500")
		assert.Equal(t, fixedTime, alert.Onset)
		assert.Equal(t, fixedTime.Add(6*time.Hour), alert.Expires)
	})

	t.Run("high risk is expected", func(t *testing.T) {
		alert := AlertFromAssessment(RiskAssessment{OverallRisk: RiskHigh, RiskScore: 5.5}, 0, 0)
		assert.Equal(t, "High", alert.Severity)
		assert.Equal(t, "Expected", alert.Urgency)
	})
}

func TestRandomSourceControls(t *testing.T) {
	t.Run("deterministic mode suppresses jitter", func(t *testing.T) {
		SetDeterministic(true)
		t.Cleanup(func() { SetDeterministic(false) })

		for i := 0; i < 10; i++ {
			assert.Zero(t, jitter(0.1))
		}
		assert.Equal(t, 2.0, uniform(1, 3))
	})

	t.Run("seeded source is reproducible", func(t *testing.T) {
		SetRandSeed(1234)
		first := []float64{jitter(0.1), jitter(0.08), uniform(0.7, 1.3)}

		SetRandSeed(1234)
		second := []float64{jitter(0.1), jitter(0.08), uniform(0.7, 1.3)}

		assert.Equal(t, first, second)
	})

	t.Run("jitter stays inside its scale", func(t *testing.T) {
		SetRandSeed(99)
		for i := 0; i < 1000; i++ {
			j := jitter(0.1)
			assert.GreaterOrEqual(t, j, -0.1)
			assert.LessOrEqual(t, j, 0.1)
		}
	})
}
