package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-epaper/internal/config"
	"github.com/i474232898/weather-epaper/internal/dashboard"
	"github.com/i474232898/weather-epaper/internal/epaper"
	"github.com/i474232898/weather-epaper/internal/icons"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/metrics"
	"github.com/i474232898/weather-epaper/internal/preview"
	"github.com/i474232898/weather-epaper/internal/store"
	"github.com/i474232898/weather-epaper/internal/weather"
	"github.com/i474232898/weather-epaper/internal/weather/providers"
)

// app holds the wired components shared by every command.
type app struct {
	cfg      *config.AppConfig
	variant  layout.Variant
	log      *logrus.Logger
	store    *store.MemoryStore
	registry *prometheus.Registry
	dash     *dashboard.Dashboard
	closers  []func() error
}

// newApp loads configuration and wires providers, icons, metrics, the frame
// store and the configured sinks. extra sinks are added after those.
func newApp(extra ...dashboard.Sink) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if variantFlag != "" {
		cfg.Variant = variantFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	v, err := cfg.SelectVariant()
	if err != nil {
		return nil, err
	}

	log := logrus.StandardLogger()
	log.SetLevel(cfg.ParseLogLevel())
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	a := &app{cfg: cfg, variant: v, log: log}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	service := newWeatherService(cfg, httpClient, log)

	table, err := icons.NewTable(v.IconSize)
	if err != nil {
		return nil, fmt.Errorf("build icon table: %w", err)
	}

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(a.registry)

	a.store = store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)

	var sinks []dashboard.Sink
	if cfg.PreviewFile != "" {
		sinks = append(sinks, preview.NewFileSink(cfg.PreviewFile, cfg.PreviewScale))
	}
	if cfg.EpaperDevice != "" {
		panel, err := epaper.Open(cfg.EpaperDevice, cfg.EpaperSPIPort, log.WithField("component", "epaper"))
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, panel)
		a.closers = append(a.closers, panel.Close)
	}
	sinks = append(sinks, extra...)

	a.dash = dashboard.New(
		dashboard.Config{
			Variant:     v,
			Location:    cfg.WeatherLocation(),
			Timezone:    cfg.Location,
			StrictIcons: cfg.StrictIcons,
		},
		service,
		table,
		dashboard.WithStore(a.store),
		dashboard.WithSinks(sinks...),
		dashboard.WithRecorder(rec),
		dashboard.WithLogger(log.WithField("component", "dashboard")),
	)

	log.WithFields(logrus.Fields{
		"variant":  v.Name,
		"location": cfg.WeatherLocation().Key(),
		"provider": cfg.ForecastProvider,
		"sinks":    len(sinks),
	}).Info("configured")
	return a, nil
}

// newWeatherService orders providers so that the configured forecast
// provider is asked first and the other one is the fallback.
func newWeatherService(cfg *config.AppConfig, httpClient *http.Client, log *logrus.Logger) *weather.Service {
	meteo := providers.NewOpenMeteoProvider(httpClient)

	var (
		current  []weather.CurrentProvider
		forecast []weather.ForecastProvider
	)
	if cfg.OpenWeatherAPIKey != "" {
		owm := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey)
		current = append(current, owm)
		forecast = append(forecast, owm)
	}
	current = append(current, meteo)
	if cfg.ForecastProvider == config.ProviderOpenMeteo {
		forecast = append([]weather.ForecastProvider{meteo}, forecast...)
	} else {
		forecast = append(forecast, meteo)
	}

	opts := []weather.Option{weather.WithLogger(log.WithField("component", "weather"))}
	if cfg.GeocoderAPIKey != "" {
		opts = append(opts, weather.WithResolver(providers.NewGeocoder(cfg.GeocoderAPIKey)))
	}
	return weather.NewService(current, forecast, opts...)
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}
