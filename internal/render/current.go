package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/weather-epaper/internal/display"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/weather"
)

// DrawCurrent draws the current-conditions block: icon, temperature, a
// details column and sunrise/sunset times in tz. Which parts appear and where
// is decided by v.Current.
func DrawCurrent(s display.Surface, v layout.Variant, cur weather.Current, tz *time.Location, icons IconResolver, strict bool) ([]DayError, error) {
	p := v.Current
	var skipped []DayError

	if p.Icon && icons != nil {
		derr, err := drawIcon(s, planeOr(p.IconPlane), p.IconAt, icons, CurrentDay, cur.Code)
		if err != nil {
			return nil, err
		}
		if derr != nil {
			if strict {
				return nil, derr
			}
			skipped = append(skipped, *derr)
		}
	}

	format := p.TempFormat
	if format == "" {
		format = "%.1fC"
	}
	if err := s.DrawText(planeOr(p.TempPlane), p.TempAt, fontOr(p.TempFont, display.FontLarge), fmt.Sprintf(format, cur.Temp)); err != nil {
		return skipped, fmt.Errorf("temperature: %w", err)
	}

	if p.Details {
		if err := s.DrawText(display.Black, p.DetailsAt, fontOr(p.DetailsFont, display.FontSmall), Details(cur)); err != nil {
			return skipped, fmt.Errorf("details: %w", err)
		}
	}

	if p.Sun && !cur.Sunrise.IsZero() && !cur.Sunset.IsZero() {
		if err := s.DrawText(display.Black, p.SunAt, fontOr(p.SunFont, display.FontSmall), SunTimes(cur, tz)); err != nil {
			return skipped, fmt.Errorf("sunrise and sunset: %w", err)
		}
		if sun, ok := icons.(SunIcons); ok && p.SunIcons {
			if err := s.DrawBitmap(display.Black, p.SunriseIconAt, sun.Sunrise()); err != nil {
				return skipped, fmt.Errorf("sunrise icon: %w", err)
			}
			if err := s.DrawBitmap(display.Black, p.SunsetIconAt, sun.Sunset()); err != nil {
				return skipped, fmt.Errorf("sunset icon: %w", err)
			}
		}
	}
	return skipped, nil
}

// Details formats description, wind, humidity and pressure, one per line.
func Details(cur weather.Current) string {
	wind := fmt.Sprintf("%.1f km/h", weather.KilometresPerHour(cur.WindSpeed))
	if cur.WindDeg != nil {
		if dir, err := weather.CardinalDirection(*cur.WindDeg); err == nil {
			wind += " " + dir
		}
	}
	return strings.Join([]string{
		cur.Description,
		wind,
		fmt.Sprintf("%.0f%%", cur.Humidity),
		fmt.Sprintf("%.0f hPa", cur.Pressure),
	}, "\n")
}

// SunTimes formats sunrise and sunset as "HH:MM | HH:MM" in tz.
func SunTimes(cur weather.Current, tz *time.Location) string {
	if tz == nil {
		tz = time.UTC
	}
	rise, set := cur.Sunrise.In(tz), cur.Sunset.In(tz)
	return fmt.Sprintf("%2d:%02d | %2d:%02d", rise.Hour(), rise.Minute(), set.Hour(), set.Minute())
}
