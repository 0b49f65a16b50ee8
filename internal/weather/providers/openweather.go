package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-epaper/internal/weather"
)

var errMissingAPIKey = errors.New("openweather api key is not configured")

// OpenWeatherProvider implements current conditions and the 5 day / 3 hour
// forecast from OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  client
}

var (
	_ weather.CurrentProvider  = (*OpenWeatherProvider)(nil)
	_ weather.ForecastProvider = (*OpenWeatherProvider)(nil)
)

func NewOpenWeatherProvider(httpClient *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	o := buildOptions("https://api.openweathermap.org/data/2.5", opts)
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: o.baseURL,
		client:  newClient("openweather", HTTPClientConfig{Client: httpClient, Backoff: o.backoff}),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type owmCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

func (p *OpenWeatherProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Current, error) {
	q, err := p.query(loc)
	if err != nil {
		return weather.Current{}, err
	}

	var payload struct {
		Dt   int64  `json:"dt"`
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
			Sunrise int64  `json:"sunrise"`
			Sunset  int64  `json:"sunset"`
		} `json:"sys"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Wind struct {
			Speed float64  `json:"speed"`
			Deg   *float64 `json:"deg"`
		} `json:"wind"`
		Weather []owmCondition `json:"weather"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"/weather", q, &payload); err != nil {
		return weather.Current{}, err
	}
	if len(payload.Weather) == 0 {
		return weather.Current{}, fmt.Errorf("openweather: response has no weather condition")
	}

	ts := time.Unix(payload.Dt, 0).UTC()
	if payload.Dt == 0 {
		ts = time.Now().UTC()
	}

	return weather.Current{
		Time:        ts,
		Temp:        payload.Main.Temp,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
		WindDeg:     payload.Wind.Deg,
		Code:        payload.Weather[0].ID,
		Description: payload.Weather[0].Description,
		Sunrise:     time.Unix(payload.Sys.Sunrise, 0).UTC(),
		Sunset:      time.Unix(payload.Sys.Sunset, 0).UTC(),
		City:        payload.Name,
		Country:     payload.Sys.Country,
	}, nil
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc weather.Location) ([]weather.Sample, error) {
	q, err := p.query(loc)
	if err != nil {
		return nil, err
	}

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp    float64 `json:"temp"`
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Weather []owmCondition `json:"weather"`
		} `json:"list"`
	}
	if err := p.client.getJSON(ctx, p.baseURL+"/forecast", q, &payload); err != nil {
		return nil, err
	}

	samples := make([]weather.Sample, 0, len(payload.List))
	for i, item := range payload.List {
		if len(item.Weather) == 0 {
			return nil, fmt.Errorf("openweather: forecast entry %d has no weather condition", i)
		}
		samples = append(samples, weather.Sample{
			Time:    time.Unix(item.Dt, 0).UTC(),
			Temp:    item.Main.Temp,
			TempMin: item.Main.TempMin,
			TempMax: item.Main.TempMax,
			Code:    item.Weather[0].ID,
		})
	}
	return samples, nil
}

func (p *OpenWeatherProvider) query(loc weather.Location) (url.Values, error) {
	if p.apiKey == "" {
		return nil, errMissingAPIKey
	}
	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	if loc.HasCoordinates() {
		values.Set("lat", strconv.FormatFloat(*loc.Lat, 'f', 4, 64))
		values.Set("lon", strconv.FormatFloat(*loc.Lon, 'f', 4, 64))
		return values, nil
	}
	if loc.City == "" {
		return nil, fmt.Errorf("openweather: location needs a city or coordinates")
	}
	q := loc.City
	if loc.Country != "" {
		q = fmt.Sprintf("%s,%s", loc.City, loc.Country)
	}
	values.Set("q", q)
	return values, nil
}
