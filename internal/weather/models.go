package weather

import (
	"fmt"
	"time"
)

// Location represents a logical place for which we render weather.
// City/Country identify it; coordinates are optional and preferred when set.
type Location struct {
	City    string   `json:"city"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns a canonical string key for this location.
func (l Location) Key() string {
	if l.City == "" && l.HasCoordinates() {
		return fmt.Sprintf("%.4f:%.4f", *l.Lat, *l.Lon)
	}
	return l.City + ":" + l.Country
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Sample is one 3-hour forecast entry. Temperatures are in °C.
type Sample struct {
	Time    time.Time `json:"time"`
	Temp    float64   `json:"temp"`
	TempMin float64   `json:"tempMin"`
	TempMax float64   `json:"tempMax"`
	// Code is an OpenWeather condition id.
	Code int `json:"code"`
}

// Current is the live observation shown in the current-conditions panel.
type Current struct {
	Time        time.Time `json:"time"`
	Temp        float64   `json:"temp"`
	Humidity    float64   `json:"humidityPercent"`
	Pressure    float64   `json:"pressureHpa"`
	WindSpeed   float64   `json:"windSpeed"` // m/s
	WindDeg     *float64  `json:"windDeg,omitempty"`
	Code        int       `json:"code"`
	Description string    `json:"description"`
	Sunrise     time.Time `json:"sunrise"`
	Sunset      time.Time `json:"sunset"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
}

// DaySummary is the aggregate of one day's samples.
type DaySummary struct {
	Date    time.Time    `json:"date"`
	Weekday time.Weekday `json:"weekday"`
	Min     float64      `json:"min"`
	Max     float64      `json:"max"`
	// Code is the condition of the day's first sample.
	Code  int       `json:"code"`
	Temps []float64 `json:"temps"`
}

// Aggregation is everything the forecast renderer needs.
type Aggregation struct {
	Days []DaySummary `json:"days"`
	// Series is every sample's temperature in order, the curve's vertices.
	Series  []float64 `json:"series"`
	Current float64   `json:"current"`
	// Min and Max span all days and the current reading.
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
