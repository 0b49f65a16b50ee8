package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/i474232898/weather-epaper/internal/display"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/weather"
)

// Annotate places each day's weekday, min/max text and icon around the
// day's mid-day slot. A day whose icon cannot be resolved or remapped loses
// only its icon and is reported in the returned slice; with strict set the
// first such failure is returned as an error instead. Drawing failures are
// always returned.
func Annotate(s display.Surface, v layout.Variant, days []weather.DaySummary, icons IconResolver, strict bool) ([]DayError, error) {
	var skipped []DayError
	if len(days) > layout.MaxDays {
		days = days[:layout.MaxDays]
	}

	format := v.SummaryFormat
	if format == "" {
		format = "%.0f/%.0fC"
	}
	font := fontOr(v.SummaryFont, display.FontSmall)

	for i, day := range days {
		base := image.Pt(v.PosX(i, layout.SlotsPerDay/2), v.Height)

		if v.ShowWeekday {
			name := day.Weekday.String()[:3]
			if err := s.DrawText(planeOr(v.WeekdayPlane), base.Add(v.WeekdayOffset), display.FontMedium, name); err != nil {
				return skipped, fmt.Errorf("day %d weekday: %w", i, err)
			}
		}

		text := fmt.Sprintf(format, day.Min, day.Max)
		if err := s.DrawText(display.Black, base.Add(v.TextOffset), font, text); err != nil {
			return skipped, fmt.Errorf("day %d summary: %w", i, err)
		}

		if icons == nil {
			continue
		}
		derr, err := drawIcon(s, display.Black, v.ForecastIconRect(i).Min, icons, i, day.Code)
		if err != nil {
			return skipped, err
		}
		if derr != nil {
			if strict {
				return skipped, derr
			}
			skipped = append(skipped, *derr)
		}
	}
	return skipped, nil
}

// drawIcon resolves and blits one icon. Lookup and palette failures come back
// as a DayError; anything else the surface reports is a plain error.
func drawIcon(s display.Surface, p display.Plane, at image.Point, icons IconResolver, day, code int) (*DayError, error) {
	img, err := icons.Resolve(code)
	if err != nil {
		return &DayError{Day: day, Code: code, Err: err}, nil
	}
	if err := s.DrawBitmap(p, at, img); err != nil {
		if errors.Is(err, display.ErrUnknownColor) {
			return &DayError{Day: day, Code: code, Err: err}, nil
		}
		return nil, fmt.Errorf("icon %d at %v: %w", code, at, err)
	}
	return nil, nil
}
