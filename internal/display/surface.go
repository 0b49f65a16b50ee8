package display

import (
	"errors"
	"image"
)

var (
	// ErrOutOfBounds is returned when a primitive lands no pixel on the canvas.
	ErrOutOfBounds = errors.New("drawing out of bounds")

	// ErrUnknownColor is returned when a bitmap carries a colour outside the
	// two-colour icon palette.
	ErrUnknownColor = errors.New("unknown palette colour")

	// ErrUnknownFont is returned for font names that have no face.
	ErrUnknownFont = errors.New("unknown font")
)

// Plane selects which colour plane a primitive draws on.
type Plane string

const (
	Black     Plane = "black"
	Chromatic Plane = "chromatic"
)

// Font names a fixed-width face.
type Font string

const (
	FontSmall  Font = "small"
	FontMedium Font = "medium"
	FontLarge  Font = "large"
)

// Surface is everything the renderers need from a display.
//
// All coordinates are absolute pixel positions with the origin at the top-left
// corner. Text and bitmaps are anchored at their top-left corner.
type Surface interface {
	Bounds() image.Rectangle
	DrawLine(p Plane, from, to image.Point) error
	DrawRect(p Plane, min, max image.Point) error
	DrawText(p Plane, at image.Point, f Font, s string) error
	DrawBitmap(p Plane, at image.Point, src image.Image) error
}

var _ Surface = (*Canvas)(nil)
