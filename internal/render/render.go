// Package render draws weather onto a display.Surface using a layout.Variant.
//
// Nothing here keeps state between calls; every function makes one ordered
// pass over the surface it is given.
package render

import (
	"fmt"
	"image"

	"github.com/i474232898/weather-epaper/internal/display"
)

// CurrentDay is the DayError.Day value for the current-conditions icon.
const CurrentDay = -1

// IconResolver maps a condition code to a two-colour bitmap.
type IconResolver interface {
	Resolve(code int) (image.Image, error)
}

// SunIcons is implemented by resolvers that also carry sunrise/sunset markers.
type SunIcons interface {
	Sunrise() image.Image
	Sunset() image.Image
}

// DayError records an icon that could not be drawn.
type DayError struct {
	Day  int
	Code int
	Err  error
}

func (e *DayError) Error() string {
	if e.Day == CurrentDay {
		return fmt.Sprintf("current conditions icon %d: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("day %d icon %d: %v", e.Day, e.Code, e.Err)
}

func (e *DayError) Unwrap() error { return e.Err }

func planeOr(p display.Plane) display.Plane {
	if p == "" {
		return display.Black
	}
	return p
}

func fontOr(f, def display.Font) display.Font {
	if f == "" {
		return def
	}
	return f
}
