package domain

import (
	"fmt"
	"time"
)

// SeismicEvent is a recent earthquake as reported by the seismic feed.
type SeismicEvent struct {
	ID        string    `json:"id"`
	Magnitude float64   `json:"magnitude"`
	Place     string    `json:"place"`
	Time      time.Time `json:"time"`
	Depth     float64   `json:"depth"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Tsunami   bool      `json:"tsunami"`
}

// Alert is a user-facing notification derived from a seismic event.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Urgency     string    `json:"urgency"`
	Event       string    `json:"event"`
	Areas       []string  `json:"areas"`
	Onset       time.Time `json:"onset"`
	Expires     time.Time `json:"expires"`
}

// alertTTL is how long an earthquake-derived alert stays active.
const alertTTL = 6 * time.Hour

// AlertFromAssessment builds an alert for a high or critical combined risk at
// a coordinate. Callers gate on the category before publishing.
func AlertFromAssessment(a RiskAssessment, lat, lon float64) Alert {
	now := clock.Now()
	severity, urgency := "High", "Expected"
	if a.OverallRisk == RiskCritical {
		severity, urgency = "Critical", "Immediate"
	}
	return Alert{
		ID:          fmt.Sprintf("risk-%d", now.UnixMilli()),
		Title:       fmt.Sprintf("Disaster Risk Alert - score %.1f", a.RiskScore),
		Description: fmt.Sprintf("Combined disaster risk is %s at %.4f, %.4f", a.OverallRisk, lat, lon),
		Severity:    severity,
		Urgency:     urgency,
		Event:       "RiskAssessment",
		Onset:       now,
		Expires:     now.Add(alertTTL),
	}
}

// AlertsFromSeismicEvents converts recent earthquakes into alerts. Magnitude
// 5.0 is the boundary between Medium/Expected and High/Immediate.
func AlertsFromSeismicEvents(events []SeismicEvent) []Alert {
	now := clock.Now()
	alerts := make([]Alert, 0, len(events))
	for _, e := range events {
		severity, urgency := "Medium", "Expected"
		if e.Magnitude >= 5.0 {
			severity, urgency = "High", "Immediate"
		}
		var areas []string
		if e.Place != "" {
			areas = []string{e.Place}
		}
		alerts = append(alerts, Alert{
			ID:          "eq-" + e.ID,
			Title:       fmt.Sprintf("Earthquake Alert - M%g", e.Magnitude),
			Description: fmt.Sprintf("Earthquake detected: %s", e.Place),
			Severity:    severity,
			Urgency:     urgency,
			Event:       "Earthquake",
			Areas:       areas,
			Onset:       now,
			Expires:     now.Add(alertTTL),
		})
	}
	return alerts
}
