package display

import (
	"fmt"
	"image"
	"image/color"
)

// Mask is a validated two-colour bitmap, origin at (0, 0).
type Mask struct {
	Rect image.Rectangle
	bits []bool
}

// On reports whether (x, y) is inked.
func (m *Mask) On(x, y int) bool {
	return m.bits[y*m.Rect.Dx()+x]
}

// Remap converts img into a Mask. Fully transparent pixels count as white.
// Any pixel that is not exactly white or black fails with ErrUnknownColor.
func Remap(img image.Image) (*Mask, error) {
	b := img.Bounds()
	m := &Mask{
		Rect: image.Rect(0, 0, b.Dx(), b.Dy()),
		bits: make([]bool, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			switch {
			case c.A == 0, c == paperColor:
			case c == inkColor:
				m.bits[(y-b.Min.Y)*b.Dx()+(x-b.Min.X)] = true
			default:
				return nil, fmt.Errorf("%w: %v at (%d,%d)", ErrUnknownColor, c, x, y)
			}
		}
	}
	return m, nil
}
