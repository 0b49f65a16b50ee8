package weather

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	samplesPerDay = 8
	maxDays       = 4
)

var (
	// ErrNoSamples is returned when there is nothing to aggregate.
	ErrNoSamples = errors.New("no forecast samples")
	// ErrInvalidDays is returned for a non-positive day count.
	ErrInvalidDays = errors.New("days must be greater than zero")
)

// Aggregate splits samples into days of 8 entries and summarises at most
// min(days, 4) of them. Per-day bounds fold the samples' local min/max; the
// global bounds also include current so the "now" vertex is never clipped.
// A short final chunk is folded with what it has. Weekdays are taken in tz.
func Aggregate(samples []Sample, days int, current float64, tz *time.Location) (Aggregation, error) {
	if days <= 0 {
		return Aggregation{}, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}
	if len(samples) == 0 {
		return Aggregation{}, ErrNoSamples
	}
	if days > maxDays {
		days = maxDays
	}
	if tz == nil {
		tz = time.UTC
	}

	agg := Aggregation{
		Current: current,
		Min:     current,
		Max:     current,
		Series:  make([]float64, 0, days*samplesPerDay),
	}

	for day := 0; day < days; day++ {
		start := day * samplesPerDay
		if start >= len(samples) {
			break
		}
		end := start + samplesPerDay
		if end > len(samples) {
			end = len(samples)
		}
		chunk := samples[start:end]

		s := DaySummary{
			Min:   math.Inf(1),
			Max:   math.Inf(-1),
			Code:  chunk[0].Code,
			Temps: make([]float64, 0, len(chunk)),
		}
		first := chunk[0].Time.In(tz)
		s.Date = time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, tz)
		s.Weekday = first.Weekday()

		for _, smp := range chunk {
			s.Min = math.Min(s.Min, smp.TempMin)
			s.Max = math.Max(s.Max, smp.TempMax)
			s.Temps = append(s.Temps, smp.Temp)
			agg.Series = append(agg.Series, smp.Temp)
		}

		agg.Min = math.Min(agg.Min, s.Min)
		agg.Max = math.Max(agg.Max, s.Max)
		agg.Days = append(agg.Days, s)
	}

	return agg, nil
}

// IntBounds returns the global bounds widened to whole degrees.
func (a Aggregation) IntBounds() (int, int) {
	return int(math.Floor(a.Min)), int(math.Ceil(a.Max))
}
