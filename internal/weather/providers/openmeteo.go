package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/weather-epaper/internal/weather"
)

var errNeedsCoordinates = errors.New("openmeteo requires latitude and longitude")

const meteoTimeLayout = "2006-01-02T15:04"

// OpenMeteoProvider is the keyless fallback. Hourly data is folded into
// 3-hour samples and WMO codes are translated to OpenWeather ids.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  client
	now     func() time.Time
}

var (
	_ weather.CurrentProvider  = (*OpenMeteoProvider)(nil)
	_ weather.ForecastProvider = (*OpenMeteoProvider)(nil)
)

func NewOpenMeteoProvider(httpClient *http.Client, opts ...Option) *OpenMeteoProvider {
	o := buildOptions("https://api.open-meteo.com/v1/forecast", opts)
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: o.baseURL,
		client:  newClient("openmeteo", HTTPClientConfig{Client: httpClient, Backoff: o.backoff}),
		now:     time.Now,
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type meteoPayload struct {
	CurrentWeather struct {
		Temperature   float64 `json:"temperature"`
		WindSpeed     float64 `json:"windspeed"`
		WindDirection float64 `json:"winddirection"`
		WeatherCode   int     `json:"weathercode"`
		Time          string  `json:"time"`
	} `json:"current_weather"`
	Hourly struct {
		Time        []string  `json:"time"`
		Temperature []float64 `json:"temperature_2m"`
		Humidity    []float64 `json:"relativehumidity_2m"`
		Pressure    []float64 `json:"surface_pressure"`
		WeatherCode []int     `json:"weathercode"`
	} `json:"hourly"`
	Daily struct {
		Sunrise []string `json:"sunrise"`
		Sunset  []string `json:"sunset"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) fetch(ctx context.Context, loc weather.Location) (meteoPayload, error) {
	var payload meteoPayload
	if !loc.HasCoordinates() {
		return payload, errNeedsCoordinates
	}

	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(*loc.Lat, 'f', 4, 64))
	values.Set("longitude", strconv.FormatFloat(*loc.Lon, 'f', 4, 64))
	values.Set("current_weather", "true")
	values.Set("hourly", "temperature_2m,relativehumidity_2m,surface_pressure,weathercode")
	values.Set("daily", "sunrise,sunset")
	values.Set("windspeed_unit", "ms")
	values.Set("timezone", "UTC")
	values.Set("forecast_days", "6")

	if err := p.client.getJSON(ctx, p.baseURL, values, &payload); err != nil {
		return payload, err
	}
	h := payload.Hourly
	if len(h.Temperature) != len(h.Time) || len(h.WeatherCode) != len(h.Time) {
		return payload, fmt.Errorf("openmeteo: hourly series have mismatched lengths")
	}
	return payload, nil
}

func (p *OpenMeteoProvider) FetchCurrent(ctx context.Context, loc weather.Location) (weather.Current, error) {
	payload, err := p.fetch(ctx, loc)
	if err != nil {
		return weather.Current{}, err
	}

	cw := payload.CurrentWeather
	ts, err := time.Parse(meteoTimeLayout, cw.Time)
	if err != nil {
		ts = p.now().UTC()
	}
	deg := cw.WindDirection
	code := wmoToOpenWeather(cw.WeatherCode)

	cur := weather.Current{
		Time:        ts,
		Temp:        cw.Temperature,
		WindSpeed:   cw.WindSpeed,
		WindDeg:     &deg,
		Code:        code,
		Description: wmoDescription(cw.WeatherCode),
		City:        loc.City,
		Country:     loc.Country,
	}

	// humidity and pressure only exist hourly; use the observation's hour
	hour := ts.Truncate(time.Hour).Format(meteoTimeLayout)
	for i, t := range payload.Hourly.Time {
		if t != hour {
			continue
		}
		if i < len(payload.Hourly.Humidity) {
			cur.Humidity = payload.Hourly.Humidity[i]
		}
		if i < len(payload.Hourly.Pressure) {
			cur.Pressure = payload.Hourly.Pressure[i]
		}
		break
	}

	if len(payload.Daily.Sunrise) > 0 && len(payload.Daily.Sunset) > 0 {
		cur.Sunrise, _ = time.Parse(meteoTimeLayout, payload.Daily.Sunrise[0])
		cur.Sunset, _ = time.Parse(meteoTimeLayout, payload.Daily.Sunset[0])
	}
	return cur, nil
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location) ([]weather.Sample, error) {
	payload, err := p.fetch(ctx, loc)
	if err != nil {
		return nil, err
	}
	return foldHourly(payload, p.now().UTC())
}

// foldHourly groups hourly values into 3-hour samples starting at the first
// slot boundary after now, like OpenWeather's forecast list.
func foldHourly(payload meteoPayload, now time.Time) ([]weather.Sample, error) {
	h := payload.Hourly
	first := now.Truncate(3 * time.Hour).Add(3 * time.Hour)

	var out []weather.Sample
	for i := 0; i < len(h.Time); i++ {
		ts, err := time.Parse(meteoTimeLayout, h.Time[i])
		if err != nil {
			return nil, fmt.Errorf("openmeteo: hourly time %q: %w", h.Time[i], err)
		}
		if ts.Before(first) || ts.Hour()%3 != 0 {
			continue
		}
		end := i + 3
		if end > len(h.Time) {
			end = len(h.Time)
		}
		s := weather.Sample{
			Time:    ts,
			Temp:    h.Temperature[i],
			TempMin: math.Inf(1),
			TempMax: math.Inf(-1),
			Code:    wmoToOpenWeather(h.WeatherCode[i]),
		}
		for _, t := range h.Temperature[i:end] {
			s.TempMin = math.Min(s.TempMin, t)
			s.TempMax = math.Max(s.TempMax, t)
		}
		out = append(out, s)
	}
	return out, nil
}

type wmoEntry struct {
	id          int
	description string
}

var wmoCodes = map[int]wmoEntry{
	0:  {800, "clear sky"},
	1:  {801, "mainly clear"},
	2:  {802, "partly cloudy"},
	3:  {804, "overcast"},
	45: {741, "fog"},
	48: {741, "depositing rime fog"},
	51: {300, "light drizzle"},
	53: {301, "drizzle"},
	55: {302, "dense drizzle"},
	56: {511, "freezing drizzle"},
	57: {511, "dense freezing drizzle"},
	61: {500, "light rain"},
	63: {501, "moderate rain"},
	65: {502, "heavy rain"},
	66: {511, "freezing rain"},
	67: {511, "heavy freezing rain"},
	71: {600, "light snow"},
	73: {601, "snow"},
	75: {602, "heavy snow"},
	77: {600, "snow grains"},
	80: {520, "light rain showers"},
	81: {521, "rain showers"},
	82: {522, "violent rain showers"},
	85: {620, "light snow showers"},
	86: {622, "heavy snow showers"},
	95: {211, "thunderstorm"},
	96: {202, "thunderstorm with hail"},
	99: {202, "thunderstorm with heavy hail"},
}

// wmoToOpenWeather returns 0 for codes with no equivalent; the icon table
// reports those as unknown.
func wmoToOpenWeather(code int) int {
	return wmoCodes[code].id
}

func wmoDescription(code int) string {
	if e, ok := wmoCodes[code]; ok {
		return e.description
	}
	return "unknown"
}
