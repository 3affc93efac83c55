// Package openweather fetches current conditions and air quality from the
// OpenWeather API and normalizes them for the risk engine.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/alertaid/disaster-risk-service/internal/config"
	"github.com/alertaid/disaster-risk-service/internal/domain"
)

// Client calls the OpenWeather current weather and air pollution endpoints.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	fallback   config.FallbackWeather
	logger     *slog.Logger
}

// NewClient creates an OpenWeather client. An empty API key is allowed; the
// caller is expected to serve Fallback() instead of calling out.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     cfg.OpenWeatherAPIKey,
		baseURL:    cfg.OpenWeatherBaseURL,
		httpClient: &http.Client{Timeout: cfg.OpenWeatherTimeout},
		fallback:   cfg.Fallback,
		logger:     logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Fallback returns the synthetic observation served when live data is
// unavailable.
func (c *Client) Fallback() domain.WeatherObservation {
	return domain.WeatherObservation{
		Temperature:  c.fallback.Temperature,
		Humidity:     c.fallback.Humidity,
		WindSpeed:    c.fallback.WindSpeed,
		Pressure:     c.fallback.Pressure,
		VisibilityKm: c.fallback.VisibilityKm,
		Description:  "estimated conditions",
		IsReal:       false,
	}
}

// Current fetches live conditions for a coordinate. Wind is converted from
// m/s to km/h and visibility from meters to km.
func (c *Client) Current(ctx context.Context, lat, lon float64) (domain.WeatherObservation, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.6f", lat)},
		"lon":   {fmt.Sprintf("%.6f", lon)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}

	var resp weatherResponse
	if err := c.getJSON(ctx, "/data/2.5/weather", params, &resp); err != nil {
		return domain.WeatherObservation{}, err
	}

	obs := domain.WeatherObservation{
		Temperature:  resp.Main.Temp,
		Humidity:     resp.Main.Humidity,
		WindSpeed:    resp.Wind.Speed * 3.6,
		Pressure:     resp.Main.Pressure,
		VisibilityKm: float64(resp.Visibility) / 1000,
		City:         resp.Name,
		IsReal:       true,
	}
	if len(resp.Weather) > 0 {
		obs.Description = resp.Weather[0].Description
	}
	if resp.Visibility == 0 {
		// The field is omitted above 10km; treat absence as clear.
		obs.VisibilityKm = c.fallback.VisibilityKm
	}
	return obs, nil
}

// AirQuality fetches the air pollution snapshot for a coordinate.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (domain.AirQuality, error) {
	params := url.Values{
		"lat":   {fmt.Sprintf("%.6f", lat)},
		"lon":   {fmt.Sprintf("%.6f", lon)},
		"appid": {c.apiKey},
	}

	var resp airPollutionResponse
	if err := c.getJSON(ctx, "/data/2.5/air_pollution", params, &resp); err != nil {
		return domain.AirQuality{}, err
	}
	if len(resp.List) == 0 {
		return domain.AirQuality{}, fmt.Errorf("air pollution response has no entries")
	}

	entry := resp.List[0]
	return domain.AirQuality{
		AQI:   entry.Main.AQI,
		CO:    entry.Components.CO,
		NO2:   entry.Components.NO2,
		O3:    entry.Components.O3,
		SO2:   entry.Components.SO2,
		PM25:  entry.Components.PM25,
		PM10:  entry.Components.PM10,
		Label: domain.AQILabel(entry.Main.AQI),
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	fullURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openweather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// OpenWeather API response types.

type weatherResponse struct {
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"` // m/s
	} `json:"wind"`
	Visibility int `json:"visibility"` // meters
	Weather    []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Name string `json:"name"`
}

type airPollutionResponse struct {
	List []struct {
		Main struct {
			AQI int `json:"aqi"`
		} `json:"main"`
		Components struct {
			CO   float64 `json:"co"`
			NO2  float64 `json:"no2"`
			O3   float64 `json:"o3"`
			SO2  float64 `json:"so2"`
			PM25 float64 `json:"pm2_5"`
			PM10 float64 `json:"pm10"`
		} `json:"components"`
	} `json:"list"`
}
