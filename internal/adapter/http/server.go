// Package http exposes the risk assessment API plus health and metrics
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alertaid/disaster-risk-service/internal/domain"
	"github.com/alertaid/disaster-risk-service/internal/observability"
)

// Model version tags reported alongside assessments.
const (
	modelVersionSimple   = "RuleBased-v2.1"
	modelVersionEnhanced = "v2.1_enhanced"
)

// WeatherProvider supplies current conditions and air quality for a
// coordinate, with a synthetic fallback when the upstream is unavailable.
type WeatherProvider interface {
	Configured() bool
	Fallback() domain.WeatherObservation
	Current(ctx context.Context, lat, lon float64) (domain.WeatherObservation, error)
	AirQuality(ctx context.Context, lat, lon float64) (domain.AirQuality, error)
}

// QuakeProvider supplies recent seismic events near a coordinate.
type QuakeProvider interface {
	RecentEarthquakes(ctx context.Context, lat, lon float64) ([]domain.SeismicEvent, error)
}

// AlertPublisher pushes alerts to the alert topic.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []domain.Alert) error
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ReadinessFunc adapts a function to the ReadinessChecker interface.
type ReadinessFunc func(ctx context.Context) error

func (f ReadinessFunc) CheckReadiness(ctx context.Context) error { return f(ctx) }

// Server exposes the prediction, weather, earthquake, and alert routes.
type Server struct {
	httpServer *http.Server
	weather    WeatherProvider
	quakes     QuakeProvider
	publisher  AlertPublisher
	enhanced   domain.EnhancedModel
	simple     domain.SimpleModel
	metrics    *observability.Metrics
	clock      clockwork.Clock
	logger     *slog.Logger
}

// NewServer creates the API server. publisher may be nil when alert
// publishing is disabled.
func NewServer(
	addr string,
	weather WeatherProvider,
	quakes QuakeProvider,
	publisher AlertPublisher,
	ready ReadinessChecker,
	metrics *observability.Metrics,
	logger *slog.Logger,
) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      corsMiddleware(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		weather:   weather,
		quakes:    quakes,
		publisher: publisher,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/predict/disaster-risk", s.handlePredictRisk)
	mux.HandleFunc("POST /api/predict/disaster-risk", s.handlePredictRiskBody)
	mux.HandleFunc("POST /api/predict/disaster", s.handlePredictSimple)
	mux.HandleFunc("POST /api/predict/disaster-full", s.handlePredictFull)
	mux.HandleFunc("GET /api/weather/{lat}/{lon}", s.handleWeather)
	mux.HandleFunc("GET /api/weather/air-quality/{lat}/{lon}", s.handleAirQuality)
	mux.HandleFunc("GET /api/earthquakes", s.handleEarthquakes)
	mux.HandleFunc("GET /api/alerts", s.handleAlerts)
	mux.HandleFunc("GET /api/alerts/active", s.handleActiveAlerts)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handlePredictRisk serves the outlook assessment for a coordinate, fetching
// live weather or falling back to synthetic conditions.
func (s *Server) handlePredictRisk(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := queryCoords(w, r)
	if !ok {
		return
	}
	s.serveOutlook(w, r, lat, lon)
}

// handlePredictRiskBody is the POST form of the outlook endpoint, taking the
// coordinate from a JSON body instead of the query string.
func (s *Server) handlePredictRiskBody(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		writeError(w, http.StatusBadRequest, "invalid latitude")
		return
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		writeError(w, http.StatusBadRequest, "invalid longitude")
		return
	}
	s.serveOutlook(w, r, req.Latitude, req.Longitude)
}

func (s *Server) serveOutlook(w http.ResponseWriter, r *http.Request, lat, lon float64) {
	obs := s.fetchWeather(r.Context(), lat, lon)
	reading := obs.Reading(lat, lon)

	start := time.Now()
	result, err := s.enhanced.AssessOutlook(reading, obs.VisibilityKm)
	if err != nil {
		s.writeAssessError(w, err)
		return
	}
	s.recordAssessment("enhanced_outlook", result, start)
	s.publishHighRiskAlert(r.Context(), result, lat, lon)

	writeJSON(w, http.StatusOK, riskResponse{
		Success:         true,
		RiskAssessment:  result,
		ConfidenceLabel: domain.ConfidenceLevel(result.Predictions),
		WeatherData:     &obs,
		Location:        &location{Latitude: lat, Longitude: lon},
		ModelVersion:    modelVersionSimple,
		Timestamp:       s.clock.Now().UTC(),
	})
}

// handlePredictSimple serves the baseline model for caller-supplied readings.
func (s *Server) handlePredictSimple(w http.ResponseWriter, r *http.Request) {
	var reading domain.EnvironmentalReading
	if !decodeBody(w, r, &reading) {
		return
	}

	start := time.Now()
	result, err := s.simple.Assess(reading, 0)
	if err != nil {
		s.writeAssessError(w, err)
		return
	}
	s.recordAssessment("simple", result, start)

	writeJSON(w, http.StatusOK, riskResponse{
		Success:        true,
		RiskAssessment: result,
		ModelVersion:   modelVersionSimple,
		Timestamp:      s.clock.Now().UTC(),
	})
}

type fullPredictRequest struct {
	domain.EnvironmentalReading
	// VisibilityKm defaults to clear conditions when omitted.
	VisibilityKm *float64 `json:"visibility"`
}

// handlePredictFull serves the enhanced model with full prediction output for
// caller-supplied readings.
func (s *Server) handlePredictFull(w http.ResponseWriter, r *http.Request) {
	var req fullPredictRequest
	if !decodeBody(w, r, &req) {
		return
	}
	visibility := 10.0
	if req.VisibilityKm != nil {
		visibility = *req.VisibilityKm
	}

	start := time.Now()
	result, err := s.enhanced.Assess(req.EnvironmentalReading, visibility)
	if err != nil {
		s.writeAssessError(w, err)
		return
	}
	s.recordAssessment("enhanced", result, start)
	s.publishHighRiskAlert(r.Context(), result, req.Latitude, req.Longitude)

	writeJSON(w, http.StatusOK, riskResponse{
		Success:         true,
		RiskAssessment:  result,
		ConfidenceLabel: domain.ConfidenceLevel(result.Predictions),
		ModelVersion:    modelVersionEnhanced,
		Timestamp:       s.clock.Now().UTC(),
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := pathCoords(w, r)
	if !ok {
		return
	}

	obs := s.fetchWeather(r.Context(), lat, lon)
	writeJSON(w, http.StatusOK, weatherResponse{
		Success:   true,
		Weather:   obs,
		Location:  location{Latitude: lat, Longitude: lon},
		Timestamp: s.clock.Now().UTC(),
	})
}

func (s *Server) handleAirQuality(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := pathCoords(w, r)
	if !ok {
		return
	}
	if !s.weather.Configured() {
		writeError(w, http.StatusServiceUnavailable, "weather provider is not configured")
		return
	}

	start := time.Now()
	aq, err := s.weather.AirQuality(r.Context(), lat, lon)
	s.metrics.UpstreamDuration.WithLabelValues("openweather").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.UpstreamRequests.WithLabelValues("openweather", "error").Inc()
		s.logger.Error("air quality fetch failed", "error", err, "lat", lat, "lon", lon)
		writeError(w, http.StatusBadGateway, "air quality data unavailable")
		return
	}
	s.metrics.UpstreamRequests.WithLabelValues("openweather", "success").Inc()

	writeJSON(w, http.StatusOK, airQualityResponse{
		Success:    true,
		AirQuality: aq,
		Location:   location{Latitude: lat, Longitude: lon},
		Timestamp:  s.clock.Now().UTC(),
	})
}

func (s *Server) handleEarthquakes(w http.ResponseWriter, r *http.Request) {
	events, ok := s.fetchQuakes(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, earthquakesResponse{
		Success:     true,
		Count:       len(events),
		Earthquakes: events,
		Timestamp:   s.clock.Now().UTC(),
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	events, ok := s.fetchQuakes(w, r)
	if !ok {
		return
	}
	alerts := domain.AlertsFromSeismicEvents(events)
	writeJSON(w, http.StatusOK, alertsResponse{
		Success:   true,
		Count:     len(alerts),
		Alerts:    alerts,
		Timestamp: s.clock.Now().UTC(),
	})
}

func (s *Server) handleActiveAlerts(w http.ResponseWriter, r *http.Request) {
	events, ok := s.fetchQuakes(w, r)
	if !ok {
		return
	}
	now := s.clock.Now()
	active := make([]domain.Alert, 0)
	for _, a := range domain.AlertsFromSeismicEvents(events) {
		if a.Expires.After(now) {
			active = append(active, a)
		}
	}
	writeJSON(w, http.StatusOK, alertsResponse{
		Success:   true,
		Count:     len(active),
		Alerts:    active,
		Timestamp: now.UTC(),
	})
}

// fetchWeather returns live conditions, or the synthetic fallback when the
// provider is unconfigured or the upstream call fails.
func (s *Server) fetchWeather(ctx context.Context, lat, lon float64) domain.WeatherObservation {
	if !s.weather.Configured() {
		s.metrics.UpstreamRequests.WithLabelValues("openweather", "fallback").Inc()
		return s.weather.Fallback()
	}

	start := time.Now()
	obs, err := s.weather.Current(ctx, lat, lon)
	s.metrics.UpstreamDuration.WithLabelValues("openweather").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.UpstreamRequests.WithLabelValues("openweather", "fallback").Inc()
		s.logger.Warn("weather fetch failed, using fallback", "error", err, "lat", lat, "lon", lon)
		return s.weather.Fallback()
	}
	s.metrics.UpstreamRequests.WithLabelValues("openweather", "success").Inc()
	return obs
}

func (s *Server) fetchQuakes(w http.ResponseWriter, r *http.Request) ([]domain.SeismicEvent, bool) {
	lat, lon, ok := queryCoords(w, r)
	if !ok {
		return nil, false
	}

	start := time.Now()
	events, err := s.quakes.RecentEarthquakes(r.Context(), lat, lon)
	s.metrics.UpstreamDuration.WithLabelValues("usgs").Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.UpstreamRequests.WithLabelValues("usgs", "error").Inc()
		s.logger.Error("earthquake fetch failed", "error", err, "lat", lat, "lon", lon)
		writeError(w, http.StatusBadGateway, "earthquake data unavailable")
		return nil, false
	}
	s.metrics.UpstreamRequests.WithLabelValues("usgs", "success").Inc()
	return events, true
}

func (s *Server) recordAssessment(model string, result domain.RiskAssessment, start time.Time) {
	s.metrics.AssessmentsTotal.WithLabelValues(model).Inc()
	s.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	s.metrics.RiskScore.Observe(result.RiskScore)
	for _, p := range result.Predictions {
		s.metrics.HazardPredictions.WithLabelValues(p.Type).Inc()
	}
}

// publishHighRiskAlert pushes an alert when the combined risk is high or
// critical. Publish failures are logged, never surfaced to the caller.
func (s *Server) publishHighRiskAlert(ctx context.Context, result domain.RiskAssessment, lat, lon float64) {
	if s.publisher == nil {
		return
	}
	if result.OverallRisk != domain.RiskHigh && result.OverallRisk != domain.RiskCritical {
		return
	}

	alert := domain.AlertFromAssessment(result, lat, lon)
	if err := s.publisher.PublishAlerts(ctx, []domain.Alert{alert}); err != nil {
		s.metrics.PublishErrors.Inc()
		s.logger.Error("alert publish failed", "error", err, "alert_id", alert.ID)
		return
	}
	s.metrics.AlertsPublished.Inc()
}

func (s *Server) writeAssessError(w http.ResponseWriter, err error) {
	var invalid *domain.InvalidInputError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("assessment failed", "error", err)
	writeError(w, http.StatusInternalServerError, "assessment failed")
}

// Request parsing helpers.

func queryCoords(w http.ResponseWriter, r *http.Request) (lat, lon float64, ok bool) {
	return parseCoords(w, r.URL.Query().Get("lat"), r.URL.Query().Get("lon"))
}

func pathCoords(w http.ResponseWriter, r *http.Request) (lat, lon float64, ok bool) {
	return parseCoords(w, r.PathValue("lat"), r.PathValue("lon"))
}

func parseCoords(w http.ResponseWriter, latStr, lonStr string) (lat, lon float64, ok bool) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, http.StatusBadRequest, "invalid latitude")
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "invalid longitude")
		return 0, 0, false
	}
	return lat, lon, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// Response envelopes.

type location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type riskResponse struct {
	Success         bool                       `json:"success"`
	RiskAssessment  domain.RiskAssessment      `json:"risk_assessment"`
	ConfidenceLabel string                     `json:"confidence_level,omitempty"`
	WeatherData     *domain.WeatherObservation `json:"weather_data,omitempty"`
	Location        *location                  `json:"location,omitempty"`
	ModelVersion    string                     `json:"model_version"`
	Timestamp       time.Time                  `json:"timestamp"`
}

type weatherResponse struct {
	Success   bool                      `json:"success"`
	Weather   domain.WeatherObservation `json:"weather"`
	Location  location                  `json:"location"`
	Timestamp time.Time                 `json:"timestamp"`
}

type airQualityResponse struct {
	Success    bool              `json:"success"`
	AirQuality domain.AirQuality `json:"air_quality"`
	Location   location          `json:"location"`
	Timestamp  time.Time         `json:"timestamp"`
}

type earthquakesResponse struct {
	Success     bool                  `json:"success"`
	Count       int                   `json:"count"`
	Earthquakes []domain.SeismicEvent `json:"earthquakes"`
	Timestamp   time.Time             `json:"timestamp"`
}

type alertsResponse struct {
	Success   bool           `json:"success"`
	Count     int            `json:"count"`
	Alerts    []domain.Alert `json:"alerts"`
	Timestamp time.Time      `json:"timestamp"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}

// corsMiddleware allows browser dashboards on other origins to call the API.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
