package layout

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-epaper/internal/display"
)

// ErrUnknownVariant is returned by Lookup for names with no configuration.
var ErrUnknownVariant = errors.New("unknown display variant")

var validate = validator.New()

// Variant is the full layout configuration of one physical display.
// Offsets are relative to the point (PosX(day, 4), Height).
type Variant struct {
	Name      string `yaml:"name" json:"name" validate:"required"`
	Width     int    `yaml:"width" json:"width" validate:"gt=0"`
	Height    int    `yaml:"height" json:"height" validate:"gt=0"`
	Chromatic bool   `yaml:"chromatic" json:"chromatic"`

	// Forecast is false for panels too small for the graph.
	Forecast             bool   `yaml:"forecast" json:"forecast"`
	GraphHeight          int    `yaml:"graph_height" json:"graph_height" validate:"required_if=Forecast true,gte=0"`
	HorizontalMultiplier int    `yaml:"horizontal_multiplier" json:"horizontal_multiplier" validate:"required_if=Forecast true,gte=0"`
	HorizontalAnchor     int    `yaml:"horizontal_anchor" json:"horizontal_anchor" validate:"gte=0"`
	VerticalAnchor       int    `yaml:"vertical_anchor" json:"vertical_anchor" validate:"gte=0"`
	GridlineMin          int    `yaml:"gridline_min" json:"gridline_min"`
	GridlineMax          int    `yaml:"gridline_max" json:"gridline_max" validate:"gtefield=GridlineMin"`
	GridlineStep         int    `yaml:"gridline_step" json:"gridline_step" validate:"required_if=Forecast true,gte=0"`
	GridLabelFormat      string `yaml:"grid_label_format" json:"grid_label_format"`

	IconSize      int          `yaml:"icon_size" json:"icon_size" validate:"gte=0"`
	IconOffset    image.Point  `yaml:"icon_offset" json:"icon_offset"`
	TextOffset    image.Point  `yaml:"text_offset" json:"text_offset"`
	WeekdayOffset image.Point  `yaml:"weekday_offset" json:"weekday_offset"`
	ShowWeekday   bool         `yaml:"show_weekday" json:"show_weekday"`
	SummaryFormat string       `yaml:"summary_format" json:"summary_format"`
	SummaryFont   display.Font `yaml:"summary_font" json:"summary_font"`

	CurvePlane   display.Plane `yaml:"curve_plane" json:"curve_plane" validate:"omitempty,oneof=black chromatic"`
	WeekdayPlane display.Plane `yaml:"weekday_plane" json:"weekday_plane" validate:"omitempty,oneof=black chromatic"`

	Current CurrentPanel `yaml:"current" json:"current"`
}

// CurrentPanel positions the current-conditions block. Coordinates are
// absolute.
type CurrentPanel struct {
	Icon      bool          `yaml:"icon" json:"icon"`
	IconAt    image.Point   `yaml:"icon_at" json:"icon_at"`
	IconPlane display.Plane `yaml:"icon_plane" json:"icon_plane" validate:"omitempty,oneof=black chromatic"`

	TempAt     image.Point   `yaml:"temp_at" json:"temp_at"`
	TempFont   display.Font  `yaml:"temp_font" json:"temp_font"`
	TempFormat string        `yaml:"temp_format" json:"temp_format"`
	TempPlane  display.Plane `yaml:"temp_plane" json:"temp_plane" validate:"omitempty,oneof=black chromatic"`

	Details     bool         `yaml:"details" json:"details"`
	DetailsAt   image.Point  `yaml:"details_at" json:"details_at"`
	DetailsFont display.Font `yaml:"details_font" json:"details_font"`

	Sun           bool         `yaml:"sun" json:"sun"`
	SunAt         image.Point  `yaml:"sun_at" json:"sun_at"`
	SunFont       display.Font `yaml:"sun_font" json:"sun_font"`
	SunIcons      bool         `yaml:"sun_icons" json:"sun_icons"`
	SunriseIconAt image.Point  `yaml:"sunrise_icon_at" json:"sunrise_icon_at"`
	SunsetIconAt  image.Point  `yaml:"sunset_icon_at" json:"sunset_icon_at"`
}

// PosX is PosX with this variant's multiplier.
func (v Variant) PosX(day, slot int) int {
	return PosX(day, slot, v.HorizontalMultiplier)
}

// Range builds the vertical mapping for the given global bounds, using the
// vertical anchor as base offset.
func (v Variant) Range(min, max int) Range {
	return NewRange(min, max, v.GraphHeight, v.VerticalAnchor)
}

// Gridlines returns the gridline temperatures drawn for the given bounds.
func (v Variant) Gridlines(min, max int) []int {
	return Gridlines(min, max, v.GridlineMin, v.GridlineMax, v.GridlineStep)
}

// GraphRect returns the inclusive corners of the graph frame.
func (v Variant) GraphRect() (image.Point, image.Point) {
	return image.Pt(0, v.Height-v.GraphHeight-v.VerticalAnchor),
		image.Pt(v.Width-1, v.Height-v.VerticalAnchor)
}

// DetailsLines is the row count of the current-conditions details block.
const DetailsLines = 4

// ForecastIconRect returns the area covered by the given day's forecast icon.
func (v Variant) ForecastIconRect(day int) image.Rectangle {
	at := image.Pt(v.PosX(day, SlotsPerDay/2), v.Height).Add(v.IconOffset)
	return image.Rect(at.X, at.Y, at.X+v.IconSize, at.Y+v.IconSize)
}

type region struct {
	name string
	rect image.Rectangle
}

// currentRegions returns the areas of the current-conditions panel that the
// forecast row must stay clear of. The details block is assumed to extend to
// the right edge.
func (v Variant) currentRegions() []region {
	p := v.Current
	var out []region
	if p.Icon && v.IconSize > 0 {
		out = append(out, region{"icon", image.Rect(p.IconAt.X, p.IconAt.Y, p.IconAt.X+v.IconSize, p.IconAt.Y+v.IconSize)})
	}
	if p.Details {
		f := p.DetailsFont
		if f == "" {
			f = display.FontSmall
		}
		h := DetailsLines * display.LineHeight(f)
		out = append(out, region{"details", image.Rect(p.DetailsAt.X, p.DetailsAt.Y, v.Width, p.DetailsAt.Y+h)})
	}
	return out
}

// Validate checks field constraints and that the graph fits on the panel.
// Forecast icons must lie on the panel and clear of the current-conditions
// icon and details.
func (v Variant) Validate() error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("variant %q: %w", v.Name, err)
	}
	if !v.Forecast {
		return nil
	}
	if v.Height-v.GraphHeight-v.VerticalAnchor < 0 {
		return fmt.Errorf("variant %q: graph height %d and anchor %d exceed panel height %d",
			v.Name, v.GraphHeight, v.VerticalAnchor, v.Height)
	}
	if right := v.HorizontalAnchor + v.PosX(MaxDays, 0); right >= v.Width {
		return fmt.Errorf("variant %q: curve ends at x=%d beyond panel width %d",
			v.Name, right, v.Width)
	}
	if v.IconSize == 0 {
		return nil
	}
	panel := image.Rect(0, 0, v.Width, v.Height)
	current := v.currentRegions()
	for day := 0; day < MaxDays; day++ {
		r := v.ForecastIconRect(day)
		if !r.In(panel) {
			return fmt.Errorf("variant %q: day %d icon %v lies off the panel", v.Name, day, r)
		}
		for _, c := range current {
			if r.Overlaps(c.rect) {
				return fmt.Errorf("variant %q: day %d icon %v overlaps the current %s %v", v.Name, day, r, c.name, c.rect)
			}
		}
	}
	return nil
}
