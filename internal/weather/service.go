package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	// ErrNoProviders is returned when the service has nothing to ask.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrForecastUnavailable marks a failed forecast retrieval. Callers skip
	// forecast rendering and keep the rest of the display update.
	ErrForecastUnavailable = errors.New("forecast unavailable")
)

// Report is one retrieval round.
type Report struct {
	Location Location
	Current  Current
	Samples  []Sample
	// ForecastErr wraps ErrForecastUnavailable when no provider returned a forecast.
	ForecastErr error
}

// Service fetches current conditions and the forecast, falling back through
// providers in order until one succeeds.
type Service struct {
	current  []CurrentProvider
	forecast []ForecastProvider
	resolver Resolver
	timeout  time.Duration
	log      *logrus.Entry
}

// Option customises a Service.
type Option func(*Service)

// WithResolver sets the geocoder used for locations without coordinates.
func WithResolver(r Resolver) Option {
	return func(s *Service) { s.resolver = r }
}

// WithTimeout bounds a whole Fetch call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *logrus.Entry) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a new Service. Providers are tried in the given order.
func NewService(current []CurrentProvider, forecast []ForecastProvider, opts ...Option) *Service {
	s := &Service{
		current:  current,
		forecast: forecast,
		timeout:  30 * time.Second,
		log:      logrus.WithField("component", "weather"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Fetch retrieves current conditions and forecast concurrently. A failed
// current observation fails the call; a failed forecast is reported in
// Report.ForecastErr only.
func (s *Service) Fetch(ctx context.Context, loc Location) (Report, error) {
	if len(s.current) == 0 {
		return Report{}, ErrNoProviders
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if s.resolver != nil && !loc.HasCoordinates() {
		resolved, err := s.resolver.Resolve(ctx, loc)
		if err != nil {
			s.log.WithError(err).Warnf("geocoding %s failed, using city name", loc.Key())
		} else {
			loc = resolved
		}
	}

	report := Report{Location: loc}
	var (
		wg          sync.WaitGroup
		currentErr  error
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		report.Current, currentErr = s.fetchCurrent(ctx, loc)
	}()
	go func() {
		defer wg.Done()
		report.Samples, forecastErr = s.fetchForecast(ctx, loc)
	}()
	wg.Wait()

	if currentErr != nil {
		return Report{}, currentErr
	}
	if forecastErr != nil {
		report.ForecastErr = fmt.Errorf("%w: %v", ErrForecastUnavailable, forecastErr)
	}
	return report, nil
}

func (s *Service) fetchCurrent(ctx context.Context, loc Location) (Current, error) {
	var errs []error
	for _, p := range s.current {
		cur, err := p.FetchCurrent(ctx, loc)
		if err != nil {
			s.log.WithError(err).Warnf("provider %s current weather failed for %s", p.Name(), loc.Key())
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		s.log.Debugf("provider %s: %s, %s is %.1f°C", p.Name(), cur.City, cur.Country, cur.Temp)
		return cur, nil
	}
	return Current{}, fmt.Errorf("current weather for %s: %w", loc.Key(), errors.Join(errs...))
}

func (s *Service) fetchForecast(ctx context.Context, loc Location) ([]Sample, error) {
	if len(s.forecast) == 0 {
		return nil, ErrNoProviders
	}
	var errs []error
	for _, p := range s.forecast {
		samples, err := p.FetchForecast(ctx, loc)
		if err == nil && len(samples) == 0 {
			err = ErrNoSamples
		}
		if err != nil {
			s.log.WithError(err).Warnf("provider %s forecast failed for %s", p.Name(), loc.Key())
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		s.log.Debugf("provider %s returned %d forecast samples", p.Name(), len(samples))
		return samples, nil
	}
	return nil, errors.Join(errs...)
}
