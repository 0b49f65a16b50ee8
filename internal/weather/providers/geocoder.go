package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-epaper/internal/weather"
)

// Geocoder resolves city names to coordinates through the Google geocoding
// API. Results are cached per location key.
type Geocoder struct {
	lookup func(geocoder.Address) (geocoder.Location, error)

	mu    sync.Mutex
	cache map[string][2]float64
}

var _ weather.Resolver = (*Geocoder)(nil)

// NewGeocoder configures the geocoding client. The library keeps the key in
// a package variable, so only one key can be active per process.
func NewGeocoder(apiKey string) *Geocoder {
	geocoder.ApiKey = apiKey
	return &Geocoder{
		lookup: geocoder.Geocoding,
		cache:  make(map[string][2]float64),
	}
}

func (g *Geocoder) Resolve(ctx context.Context, loc weather.Location) (weather.Location, error) {
	if loc.HasCoordinates() {
		return loc, nil
	}
	key := loc.Key()

	g.mu.Lock()
	c, ok := g.cache[key]
	g.mu.Unlock()
	if ok {
		return withCoordinates(loc, c[0], c[1]), nil
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		l, err := g.lookup(geocoder.Address{City: loc.City, Country: loc.Country})
		done <- result{l, err}
	}()

	select {
	case <-ctx.Done():
		return loc, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return loc, fmt.Errorf("geocode %s: %w", key, r.err)
		}
		g.mu.Lock()
		g.cache[key] = [2]float64{r.loc.Latitude, r.loc.Longitude}
		g.mu.Unlock()
		return withCoordinates(loc, r.loc.Latitude, r.loc.Longitude), nil
	}
}

func withCoordinates(loc weather.Location, lat, lon float64) weather.Location {
	loc.Lat, loc.Lon = &lat, &lon
	return loc
}
