package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/i474232898/weather-epaper/internal/display"
	"github.com/i474232898/weather-epaper/internal/layout"
	"github.com/i474232898/weather-epaper/internal/weather"
)

// Report describes what a forecast pass drew.
type Report struct {
	Range layout.Range
	// Gridlines lists the gridlines that landed on the panel.
	Gridlines []int
	// ClippedGridlines lists gridlines that fell outside the panel and were
	// left out. Ranges with a positive minimum push the top of the scale
	// above the first row.
	ClippedGridlines []int
	// ClippedSegments counts curve segments with no pixel on the panel.
	ClippedSegments int
	IconErrors      []DayError
}

// Clipped reports whether any part of the graph was left off the panel.
func (r Report) Clipped() bool {
	return len(r.ClippedGridlines) > 0 || r.ClippedSegments > 0
}

// DrawGraph draws the graph frame, the temperature curve from the current
// reading through the series, and the labelled gridlines. Parts that fall
// outside the surface are clipped and recorded in the report; any other
// drawing error aborts.
func DrawGraph(s display.Surface, v layout.Variant, agg weather.Aggregation) (Report, error) {
	lo, hi := agg.IntBounds()
	rep := Report{Range: v.Range(lo, hi)}
	r := rep.Range

	topLeft, bottomRight := v.GraphRect()
	if err := s.DrawRect(display.Black, topLeft, bottomRight); err != nil {
		return rep, fmt.Errorf("graph frame: %w", err)
	}

	curve := planeOr(v.CurvePlane)
	prev := agg.Current
	for i, temp := range agg.Series {
		from := image.Pt(v.HorizontalAnchor+v.PosX(0, i), v.Height+r.PosY(prev))
		to := image.Pt(v.HorizontalAnchor+v.PosX(0, i+1), v.Height+r.PosY(temp))
		prev = temp
		err := s.DrawLine(curve, from, to)
		if errors.Is(err, display.ErrOutOfBounds) {
			rep.ClippedSegments++
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("curve segment %d: %w", i, err)
		}
	}

	format := v.GridLabelFormat
	if format == "" {
		format = "%3dC"
	}
	bounds := s.Bounds()
	for _, g := range v.Gridlines(lo, hi) {
		y := v.Height + r.PosY(float64(g))
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			rep.ClippedGridlines = append(rep.ClippedGridlines, g)
			continue
		}
		err := s.DrawText(display.Black, image.Pt(0, y), display.FontSmall, fmt.Sprintf(format, g))
		if err != nil && !errors.Is(err, display.ErrOutOfBounds) {
			return rep, fmt.Errorf("gridline label %d: %w", g, err)
		}
		from := image.Pt(v.HorizontalAnchor+v.PosX(0, 0), y)
		to := image.Pt(v.HorizontalAnchor+v.PosX(layout.MaxDays-1, layout.SlotsPerDay), y)
		err = s.DrawLine(display.Black, from, to)
		if errors.Is(err, display.ErrOutOfBounds) {
			rep.ClippedGridlines = append(rep.ClippedGridlines, g)
			continue
		}
		if err != nil {
			return rep, fmt.Errorf("gridline %d: %w", g, err)
		}
		rep.Gridlines = append(rep.Gridlines, g)
	}
	return rep, nil
}

// DrawForecast draws the graph and the per-day annotations.
func DrawForecast(s display.Surface, v layout.Variant, agg weather.Aggregation, icons IconResolver, strict bool) (Report, error) {
	rep, err := DrawGraph(s, v, agg)
	if err != nil {
		return rep, err
	}
	rep.IconErrors, err = Annotate(s, v, agg.Days, icons, strict)
	return rep, err
}
