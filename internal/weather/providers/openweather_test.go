package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-epaper/internal/weather"
)

var fastBackoff = BackoffConfig{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}

const owmCurrent = `{
  "dt": 1709539200,
  "name": "Oslo",
  "sys": {"country": "NO", "sunrise": 1709532720, "sunset": 1709571600},
  "main": {"temp": -3.4, "humidity": 81, "pressure": 1012},
  "wind": {"speed": 4.1, "deg": 290},
  "weather": [{"id": 600, "main": "Snow", "description": "light snow"}]
}`

const owmForecast = `{
  "list": [
    {"dt": 1709550000, "main": {"temp": -2, "temp_min": -3, "temp_max": -1}, "weather": [{"id": 601}]},
    {"dt": 1709560800, "main": {"temp": 0.5, "temp_min": 0, "temp_max": 1}, "weather": [{"id": 804}]}
  ]
}`

func TestOpenWeatherFetchCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "Oslo,NO", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(owmCurrent))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "key", WithBaseURL(srv.URL), WithBackoff(fastBackoff))
	cur, err := p.FetchCurrent(context.Background(), weather.Location{City: "Oslo", Country: "NO"})
	require.NoError(t, err)

	assert.Equal(t, -3.4, cur.Temp)
	assert.Equal(t, 600, cur.Code)
	assert.Equal(t, "light snow", cur.Description)
	assert.Equal(t, "Oslo", cur.City)
	assert.Equal(t, "NO", cur.Country)
	require.NotNil(t, cur.WindDeg)
	assert.Equal(t, 290.0, *cur.WindDeg)
	assert.Equal(t, time.Unix(1709532720, 0).UTC(), cur.Sunrise)
}

func TestOpenWeatherFetchForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "59.9100", r.URL.Query().Get("lat"))
		assert.Empty(t, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(owmForecast))
	}))
	defer srv.Close()

	lat, lon := 59.91, 10.75
	p := NewOpenWeatherProvider(srv.Client(), "key", WithBaseURL(srv.URL), WithBackoff(fastBackoff))
	samples, err := p.FetchForecast(context.Background(), weather.Location{City: "Oslo", Lat: &lat, Lon: &lon})
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, weather.Sample{
		Time:    time.Unix(1709550000, 0).UTC(),
		Temp:    -2,
		TempMin: -3,
		TempMax: -1,
		Code:    601,
	}, samples[0])
	assert.Equal(t, 804, samples[1].Code)
}

func TestOpenWeatherMissingKey(t *testing.T) {
	p := NewOpenWeatherProvider(http.DefaultClient, "")
	_, err := p.FetchCurrent(context.Background(), weather.Location{City: "Oslo"})
	assert.ErrorIs(t, err, errMissingAPIKey)
}

func TestOpenWeatherRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(owmForecast))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "key", WithBaseURL(srv.URL), WithBackoff(fastBackoff))
	samples, err := p.FetchForecast(context.Background(), weather.Location{City: "Oslo"})
	require.NoError(t, err)
	assert.Len(t, samples, 2)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestOpenWeatherDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "bad", WithBaseURL(srv.URL), WithBackoff(fastBackoff))
	_, err := p.FetchCurrent(context.Background(), weather.Location{City: "Oslo"})
	assert.ErrorIs(t, err, errUnexpected)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestOpenWeatherMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"list": [`))
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider(srv.Client(), "key", WithBaseURL(srv.URL), WithBackoff(fastBackoff))
	_, err := p.FetchForecast(context.Background(), weather.Location{City: "Oslo"})
	assert.Error(t, err)
}
