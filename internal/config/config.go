package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// OpenWeather upstream. When the key is empty the weather adapter serves
	// fallback conditions instead of calling out.
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string
	OpenWeatherTimeout time.Duration

	// USGS earthquake feed.
	USGSBaseURL       string
	USGSTimeout       time.Duration
	QuakeRadiusKm     float64
	QuakeLookbackDays int
	QuakeMinMagnitude float64

	// Kafka alert publishing. Disabled unless brokers are configured.
	KafkaBrokers    []string
	KafkaAlertTopic string
	AlertsEnabled   bool

	Fallback FallbackWeather
}

// FallbackWeather is the synthetic reading served when the upstream weather
// provider is unavailable or unconfigured.
type FallbackWeather struct {
	Temperature  float64
	Humidity     float64
	WindSpeed    float64
	Pressure     float64
	VisibilityKm float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	owTimeout, err := parsePositiveDuration("OPENWEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	usgsTimeout, err := parsePositiveDuration("USGS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	quakeRadius, err := parsePositiveFloat("QUAKE_RADIUS_KM", 500)
	if err != nil {
		return nil, err
	}

	quakeDays, err := parsePositiveInt("QUAKE_LOOKBACK_DAYS", 7)
	if err != nil {
		return nil, err
	}

	quakeMinMag, err := parsePositiveFloat("QUAKE_MIN_MAGNITUDE", 2.5)
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	alertsEnabled := len(brokers) > 0
	if v := os.Getenv("ALERTS_ENABLED"); v != "" {
		alertsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherBaseURL: envOrDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org"),
		OpenWeatherTimeout: owTimeout,

		USGSBaseURL:       envOrDefault("USGS_BASE_URL", "https://earthquake.usgs.gov"),
		USGSTimeout:       usgsTimeout,
		QuakeRadiusKm:     quakeRadius,
		QuakeLookbackDays: quakeDays,
		QuakeMinMagnitude: quakeMinMag,

		KafkaBrokers:    brokers,
		KafkaAlertTopic: envOrDefault("KAFKA_ALERT_TOPIC", "disaster-alerts"),
		AlertsEnabled:   alertsEnabled,

		Fallback: FallbackWeather{
			Temperature:  25,
			Humidity:     60,
			WindSpeed:    10,
			Pressure:     1013,
			VisibilityKm: 10,
		},
	}

	if cfg.AlertsEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("ALERTS_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.AlertsEnabled && cfg.KafkaAlertTopic == "" {
		return nil, errors.New("KAFKA_ALERT_TOPIC is required when alerts are enabled")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parsePositiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive integer", key)
	}
	return n, nil
}

func parsePositiveFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive number", key)
	}
	return f, nil
}
