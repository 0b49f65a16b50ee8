package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name       string
	current    Current
	currentErr error
	samples    []Sample
	sampleErr  error
	calls      int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchCurrent(ctx context.Context, loc Location) (Current, error) {
	return f.current, f.currentErr
}

func (f *fakeProvider) FetchForecast(ctx context.Context, loc Location) ([]Sample, error) {
	f.calls++
	return f.samples, f.sampleErr
}

type fakeResolver struct {
	lat, lon float64
	err      error
}

func (r fakeResolver) Resolve(ctx context.Context, loc Location) (Location, error) {
	if r.err != nil {
		return loc, r.err
	}
	loc.Lat, loc.Lon = &r.lat, &r.lon
	return loc, nil
}

func quietLogger() (*logrus.Entry, *test.Hook) {
	l, hook := test.NewNullLogger()
	return logrus.NewEntry(l), hook
}

func TestServiceFetch(t *testing.T) {
	p := &fakeProvider{name: "primary", current: Current{Temp: 7}, samples: synthetic(16)}
	log, _ := quietLogger()
	s := NewService([]CurrentProvider{p}, []ForecastProvider{p}, WithLogger(log))

	r, err := s.Fetch(context.Background(), Location{City: "Oslo", Country: "NO"})
	require.NoError(t, err)
	assert.Equal(t, 7.0, r.Current.Temp)
	assert.Len(t, r.Samples, 16)
	assert.NoError(t, r.ForecastErr)
}

func TestServiceForecastFallback(t *testing.T) {
	broken := &fakeProvider{name: "broken", sampleErr: errors.New("boom")}
	empty := &fakeProvider{name: "empty"}
	good := &fakeProvider{name: "good", current: Current{Temp: 1}, samples: synthetic(8)}
	log, hook := quietLogger()
	s := NewService([]CurrentProvider{good}, []ForecastProvider{broken, empty, good}, WithLogger(log))

	r, err := s.Fetch(context.Background(), Location{City: "Oslo"})
	require.NoError(t, err)
	assert.Len(t, r.Samples, 8)
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, empty.calls)
	assert.Len(t, hook.AllEntries(), 2, "one warning per failed provider")
}

func TestServiceForecastUnavailable(t *testing.T) {
	p := &fakeProvider{name: "p", current: Current{Temp: 3}, sampleErr: errors.New("timeout")}
	log, _ := quietLogger()
	s := NewService([]CurrentProvider{p}, []ForecastProvider{p}, WithLogger(log))

	r, err := s.Fetch(context.Background(), Location{City: "Oslo"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, r.Current.Temp)
	assert.ErrorIs(t, r.ForecastErr, ErrForecastUnavailable)
	assert.Empty(t, r.Samples)
}

func TestServiceCurrentFailureFails(t *testing.T) {
	a := &fakeProvider{name: "a", currentErr: errors.New("401")}
	b := &fakeProvider{name: "b", currentErr: errors.New("503")}
	log, _ := quietLogger()
	s := NewService([]CurrentProvider{a, b}, []ForecastProvider{a}, WithLogger(log))

	_, err := s.Fetch(context.Background(), Location{City: "Oslo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "503")
}

func TestServiceNoProviders(t *testing.T) {
	_, err := NewService(nil, nil).Fetch(context.Background(), Location{})
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestServiceResolvesCoordinates(t *testing.T) {
	p := &fakeProvider{name: "p", current: Current{Temp: 3}, samples: synthetic(8)}
	log, _ := quietLogger()
	s := NewService([]CurrentProvider{p}, []ForecastProvider{p},
		WithLogger(log), WithResolver(fakeResolver{lat: 59.9, lon: 10.7}))

	r, err := s.Fetch(context.Background(), Location{City: "Oslo", Country: "NO"})
	require.NoError(t, err)
	require.True(t, r.Location.HasCoordinates())
	assert.Equal(t, 59.9, *r.Location.Lat)
}

func TestServiceGeocodingFailureIsNotFatal(t *testing.T) {
	p := &fakeProvider{name: "p", current: Current{Temp: 3}, samples: synthetic(8)}
	log, hook := quietLogger()
	s := NewService([]CurrentProvider{p}, []ForecastProvider{p},
		WithLogger(log), WithResolver(fakeResolver{err: errors.New("quota")}))

	r, err := s.Fetch(context.Background(), Location{City: "Oslo"})
	require.NoError(t, err)
	assert.False(t, r.Location.HasCoordinates())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "Oslo:NO", Location{City: "Oslo", Country: "NO"}.Key())
	lat, lon := 59.91, 10.75
	assert.Equal(t, "59.9100:10.7500", Location{Lat: &lat, Lon: &lon}.Key())
}
