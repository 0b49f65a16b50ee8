package weather

import (
	"context"
)

// Provider abstracts a weather data source (e.g. OpenWeatherMap, Open-Meteo).
type Provider interface {
	Name() string
}

// CurrentProvider returns the live observation for a location.
type CurrentProvider interface {
	Provider
	FetchCurrent(ctx context.Context, loc Location) (Current, error)
}

// ForecastProvider returns ordered 3-hour samples covering the next days.
type ForecastProvider interface {
	Provider
	FetchForecast(ctx context.Context, loc Location) ([]Sample, error)
}

// Resolver fills in missing coordinates for a location.
type Resolver interface {
	Resolve(ctx context.Context, loc Location) (Location, error)
}
