package layout

import "math"

const (
	// SlotsPerDay is the number of 3-hour samples in a day.
	SlotsPerDay = 8
	// MaxDays is the longest forecast horizon drawn.
	MaxDays = 4
	// Margin pads the observed range in degrees on both sides.
	Margin = 5
)

// Range maps temperatures to vertical pixel coordinates.
type Range struct {
	Scale  int `json:"scale"`
	Offset int `json:"offset"`
}

// PosX returns the horizontal pixel coordinate of a slot, relative to the
// graph's horizontal anchor.
func PosX(day, slot, multiplier int) int {
	return (day*SlotsPerDay + slot) * multiplier
}

// Scale returns how many pixels one degree occupies so that the padded range
// fits into graphHeight. It is never below 1.
func Scale(min, max, graphHeight int) int {
	span := (max + Margin) - (min - Margin)
	if span <= 0 {
		return 1
	}
	s := graphHeight / span
	if s < 1 {
		return 1
	}
	return s
}

// NewRange derives the scale and offset for the given bounds. When min is
// negative the offset grows so the padded minimum still sits on the baseline.
func NewRange(min, max, graphHeight, baseOffset int) Range {
	s := Scale(min, max, graphHeight)
	off := baseOffset
	if min < 0 {
		off += absInt(min-Margin) * s
	}
	return Range{Scale: s, Offset: off}
}

// PosY returns the vertical coordinate of temp relative to the bottom edge of
// the canvas. Higher temperatures give smaller values.
func (r Range) PosY(temp float64) int {
	return -(int(math.Round(temp)) * r.Scale) - r.Offset
}

// Gridlines returns the multiples of step in [from, to] that fall inside the
// padded range [min-Margin, max+Margin].
func Gridlines(min, max, from, to, step int) []int {
	if step <= 0 {
		return nil
	}
	var out []int
	for t := from; t <= to; t += step {
		if t >= min-Margin && t <= max+Margin {
			out = append(out, t)
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
