package usgs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		radiusKm:     500,
		lookbackDays: 7,
		minMagnitude: 2.5,
		clock:        clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 12, 0, 0, 0, time.UTC)),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_RecentEarthquakes_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fdsnws/event/1/query", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "geojson", q.Get("format"))
		assert.Equal(t, "500", q.Get("maxradiuskm"))
		assert.Equal(t, "2.5", q.Get("minmagnitude"))
		assert.Equal(t, "2024-04-19", q.Get("starttime")) // 7 days before the frozen clock
		assert.Equal(t, "time", q.Get("orderby"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"features": [
				{
					"id": "us7000abcd",
					"properties": {"mag": 5.2, "place": "10km NE of Ridgecrest, CA", "time": 1714132800000, "tsunami": 0},
					"geometry": {"coordinates": [-117.6, 35.7, 8.3]}
				},
				{
					"id": "us7000wxyz",
					"properties": {"mag": 3.1, "place": "offshore Honshu, Japan", "time": 1714046400000, "tsunami": 1},
					"geometry": {"coordinates": [141.2, 38.1, 40.0]}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	events, err := c.RecentEarthquakes(context.Background(), 35.7, -117.6)
	require.NoError(t, err)
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "us7000abcd", first.ID)
	assert.Equal(t, 5.2, first.Magnitude)
	assert.Equal(t, "10km NE of Ridgecrest, CA", first.Place)
	assert.Equal(t, time.UnixMilli(1714132800000).UTC(), first.Time)
	assert.Equal(t, -117.6, first.Longitude)
	assert.Equal(t, 35.7, first.Latitude)
	assert.Equal(t, 8.3, first.Depth)
	assert.False(t, first.Tsunami)

	assert.True(t, events[1].Tsunami)
}

func TestClient_RecentEarthquakes_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"features": []}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	events, err := c.RecentEarthquakes(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_RecentEarthquakes_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("Bad Request: invalid parameter"))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.RecentEarthquakes(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestClient_RecentEarthquakes_MalformedGeometry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"features": [{"id": "x", "properties": {"mag": 4.0, "place": "", "time": 0, "tsunami": 0}, "geometry": {"coordinates": []}}]
		}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	events, err := c.RecentEarthquakes(context.Background(), 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Zero(t, events[0].Latitude)
	assert.Zero(t, events[0].Longitude)
}
