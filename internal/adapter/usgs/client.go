// Package usgs queries the USGS earthquake catalog for recent seismic events
// near a coordinate.
package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/alertaid/disaster-risk-service/internal/config"
	"github.com/alertaid/disaster-risk-service/internal/domain"
)

// Client calls the USGS FDSN event service.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	radiusKm     float64
	lookbackDays int
	minMagnitude float64
	clock        clockwork.Clock
	logger       *slog.Logger
}

// NewClient creates a USGS catalog client with the configured search window.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	return &Client{
		baseURL:      cfg.USGSBaseURL,
		httpClient:   &http.Client{Timeout: cfg.USGSTimeout},
		radiusKm:     cfg.QuakeRadiusKm,
		lookbackDays: cfg.QuakeLookbackDays,
		minMagnitude: cfg.QuakeMinMagnitude,
		clock:        clockwork.NewRealClock(),
		logger:       logger,
	}
}

// RecentEarthquakes returns events within the configured radius of the
// coordinate over the configured lookback window, most recent first.
func (c *Client) RecentEarthquakes(ctx context.Context, lat, lon float64) ([]domain.SeismicEvent, error) {
	start := c.clock.Now().UTC().AddDate(0, 0, -c.lookbackDays)

	params := url.Values{
		"format":       {"geojson"},
		"latitude":     {fmt.Sprintf("%.6f", lat)},
		"longitude":    {fmt.Sprintf("%.6f", lon)},
		"maxradiuskm":  {strconv.FormatFloat(c.radiusKm, 'f', -1, 64)},
		"starttime":    {start.Format("2006-01-02")},
		"minmagnitude": {strconv.FormatFloat(c.minMagnitude, 'f', -1, 64)},
		"orderby":      {"time"},
	}

	fullURL := c.baseURL + "/fdsnws/event/1/query?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("usgs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var catalog response
	if err := json.NewDecoder(resp.Body).Decode(&catalog); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	events := make([]domain.SeismicEvent, 0, len(catalog.Features))
	for _, f := range catalog.Features {
		event := domain.SeismicEvent{
			ID:        f.ID,
			Magnitude: f.Properties.Mag,
			Place:     f.Properties.Place,
			Time:      time.UnixMilli(f.Properties.Time).UTC(),
			Tsunami:   f.Properties.Tsunami == 1,
		}
		if len(f.Geometry.Coordinates) >= 3 {
			event.Longitude = f.Geometry.Coordinates[0]
			event.Latitude = f.Geometry.Coordinates[1]
			event.Depth = f.Geometry.Coordinates[2]
		}
		events = append(events, event)
	}
	return events, nil
}

// USGS GeoJSON response types.

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string `json:"id"`
	Properties struct {
		Mag     float64 `json:"mag"`
		Place   string  `json:"place"`
		Time    int64   `json:"time"` // epoch milliseconds
		Tsunami int     `json:"tsunami"`
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
	} `json:"geometry"`
}
