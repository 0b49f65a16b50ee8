package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/weather"
)

// Forecast provider names accepted in FORECAST_PROVIDER.
const (
	ProviderOpenWeather = "openweather"
	ProviderOpenMeteo   = "openmeteo"
)

type AppConfig struct {
	OpenWeatherAPIKey string `envconfig:"OPENWEATHER_API_KEY"`
	GeocoderAPIKey    string `envconfig:"GEOCODER_API_KEY"`

	// ForecastProvider is tried first; the other one is the fallback.
	ForecastProvider string `envconfig:"FORECAST_PROVIDER" default:"openweather" validate:"oneof=openweather openmeteo"`

	City    string   `envconfig:"WEATHER_LOCATION_CITY"`
	Country string   `envconfig:"WEATHER_LOCATION_COUNTRY"`
	Lat     *float64 `envconfig:"WEATHER_LOCATION_LAT" validate:"omitempty,gte=-90,lte=90"`
	Lon     *float64 `envconfig:"WEATHER_LOCATION_LON" validate:"omitempty,gte=-180,lte=180"`

	Variant     string `envconfig:"DISPLAY_VARIANT" default:"epd4in2" validate:"required"`
	LayoutFile  string `envconfig:"LAYOUT_FILE"`
	Timezone    string `envconfig:"TIMEZONE" default:"Local"`
	StrictIcons bool   `envconfig:"STRICT_ICONS" default:"false"`

	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"15m" validate:"gte=1m"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`

	// In-memory frame retention.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"96" validate:"gte=0"` // 0 = unlimited
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"24h" validate:"gte=0"`    // 0 = unlimited

	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn warning error"`

	PreviewScale int    `envconfig:"PREVIEW_SCALE" default:"2" validate:"gte=1,lte=8"`
	PreviewFile  string `envconfig:"PREVIEW_FILE"`

	EpaperDevice  string `envconfig:"EPAPER_DEVICE" validate:"omitempty,oneof=waveshare2in13v4"`
	EpaperSPIPort string `envconfig:"EPAPER_SPI_PORT"`

	// Resolved by Load.
	Location *time.Location            `ignored:"true"`
	Layouts  map[string]layout.Variant `ignored:"true"`
}

// Load reads configuration from the environment, after a .env file when one
// exists, and validates it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.LayoutFile != "" {
		cfg.Layouts, err = layout.LoadOverrides(cfg.LayoutFile)
		if err != nil {
			return nil, fmt.Errorf("invalid LAYOUT_FILE: %w", err)
		}
	}
	if _, err := cfg.SelectVariant(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if (c.Lat == nil) != (c.Lon == nil) {
		return errors.New("WEATHER_LOCATION_LAT and WEATHER_LOCATION_LON must be set together")
	}
	if c.City == "" && c.Lat == nil {
		return errors.New("either WEATHER_LOCATION_CITY or WEATHER_LOCATION_LAT/LON is required")
	}
	switch c.ForecastProvider {
	case ProviderOpenWeather:
		if c.OpenWeatherAPIKey == "" {
			return errors.New("OPENWEATHER_API_KEY is required for the openweather provider")
		}
	case ProviderOpenMeteo:
		if c.Lat == nil && c.GeocoderAPIKey == "" && c.OpenWeatherAPIKey == "" {
			return errors.New("openmeteo needs WEATHER_LOCATION_LAT/LON or GEOCODER_API_KEY to place a city")
		}
	}
	return nil
}

// SelectVariant returns the configured display layout.
func (c *AppConfig) SelectVariant() (layout.Variant, error) {
	v, err := layout.Lookup(c.Variant, c.Layouts)
	if err != nil {
		return layout.Variant{}, fmt.Errorf("invalid DISPLAY_VARIANT: %w", err)
	}
	return v, nil
}

// WeatherLocation is the place the display shows.
func (c *AppConfig) WeatherLocation() weather.Location {
	return weather.Location{City: c.City, Country: c.Country, Lat: c.Lat, Lon: c.Lon}
}

// ParseLogLevel returns the logrus level for LOG_LEVEL.
func (c *AppConfig) ParseLogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
