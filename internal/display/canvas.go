package display

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var (
	paperColor     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	inkColor       = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	chromaticColor = color.RGBA{R: 0xc8, G: 0x10, B: 0x10, A: 0xff}
)

// Canvas is a fixed-size e-paper frame made of one or two 1-bit planes.
// A set bit means ink. Canvas is not safe for concurrent use.
type Canvas struct {
	rect      image.Rectangle
	black     *plane
	chromatic *plane
}

// NewCanvas allocates a blank canvas. The chromatic plane only exists for
// dual-plane panels; draws aimed at it otherwise land on the black plane.
func NewCanvas(width, height int, chromatic bool) *Canvas {
	r := image.Rect(0, 0, width, height)
	c := &Canvas{
		rect:  r,
		black: newPlane(r),
	}
	if chromatic {
		c.chromatic = newPlane(r)
	}
	return c
}

func (c *Canvas) Bounds() image.Rectangle { return c.rect }

// Chromatic reports whether the canvas has a second colour plane.
func (c *Canvas) Chromatic() bool { return c.chromatic != nil }

// Ink reports whether the pixel at (x, y) is inked on plane p.
func (c *Canvas) Ink(p Plane, x, y int) bool {
	pl := c.plane(p)
	if !(image.Point{X: x, Y: y}).In(c.rect) {
		return false
	}
	return bool(pl.bits.BitAt(x, y))
}

// Clear resets every plane to paper.
func (c *Canvas) Clear() {
	c.black.clear()
	if c.chromatic != nil {
		c.chromatic.clear()
	}
}

// Clone returns an independent copy of the canvas.
func (c *Canvas) Clone() *Canvas {
	out := &Canvas{rect: c.rect, black: c.black.clone()}
	if c.chromatic != nil {
		out.chromatic = c.chromatic.clone()
	}
	return out
}

// Image composites the planes onto white paper: black ink first, chromatic
// ink on top.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(c.rect)
	for y := c.rect.Min.Y; y < c.rect.Max.Y; y++ {
		for x := c.rect.Min.X; x < c.rect.Max.X; x++ {
			px := paperColor
			if c.black.bits.BitAt(x, y) {
				px = inkColor
			}
			if c.chromatic != nil && c.chromatic.bits.BitAt(x, y) {
				px = chromaticColor
			}
			img.SetRGBA(x, y, px)
		}
	}
	return img
}

// DrawLine draws a one pixel wide line between two inclusive endpoints.
func (c *Canvas) DrawLine(p Plane, from, to image.Point) error {
	pl := c.plane(p)
	pl.reset()
	pl.line(from.X, from.Y, to.X, to.Y)
	if err := pl.result(); err != nil {
		return fmt.Errorf("line %v-%v: %w", from, to, err)
	}
	return nil
}

// DrawRect draws the outline of the rectangle spanned by two inclusive corners.
func (c *Canvas) DrawRect(p Plane, min, max image.Point) error {
	pl := c.plane(p)
	pl.reset()
	pl.line(min.X, min.Y, max.X, min.Y)
	pl.line(min.X, max.Y, max.X, max.Y)
	pl.line(min.X, min.Y, min.X, max.Y)
	pl.line(max.X, min.Y, max.X, max.Y)
	if err := pl.result(); err != nil {
		return fmt.Errorf("rectangle %v-%v: %w", min, max, err)
	}
	return nil
}

// DrawText writes s with its first line's top-left corner at at. Lines are
// separated by '\n'. Glyphs partly off the canvas are clipped; a string with
// no visible ink fails with ErrOutOfBounds.
func (c *Canvas) DrawText(p Plane, at image.Point, f Font, s string) error {
	fc, ok := faces[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFont, f)
	}
	pl := c.plane(p)
	pl.reset()
	y := at.Y
	for _, line := range strings.Split(s, "\n") {
		fc.drawLine(pl, at.X, y, line)
		y += fc.lineHeight()
	}
	if err := pl.result(); err != nil {
		return fmt.Errorf("text %q at %v: %w", s, at, err)
	}
	return nil
}

// DrawBitmap blits a strictly two-colour image: white pixels clear the plane
// and black pixels ink it. The image is validated before anything is drawn.
func (c *Canvas) DrawBitmap(p Plane, at image.Point, src image.Image) error {
	m, err := Remap(src)
	if err != nil {
		return err
	}
	pl := c.plane(p)
	pl.reset()
	for y := 0; y < m.Rect.Dy(); y++ {
		for x := 0; x < m.Rect.Dx(); x++ {
			if m.On(x, y) {
				pl.set(at.X+x, at.Y+y)
			} else {
				pl.unset(at.X+x, at.Y+y)
			}
		}
	}
	if err := pl.result(); err != nil {
		return fmt.Errorf("bitmap at %v: %w", at, err)
	}
	return nil
}

func (c *Canvas) plane(p Plane) *plane {
	if p == Chromatic && c.chromatic != nil {
		return c.chromatic
	}
	return c.black
}

// plane wraps one bit layer and counts what the last primitive touched.
type plane struct {
	bits    *image1bit.VerticalLSB
	drawn   int
	clipped int
}

func newPlane(r image.Rectangle) *plane {
	return &plane{bits: image1bit.NewVerticalLSB(r)}
}

func (p *plane) clone() *plane {
	out := newPlane(p.bits.Rect)
	copy(out.bits.Pix, p.bits.Pix)
	return out
}

func (p *plane) clear() {
	for i := range p.bits.Pix {
		p.bits.Pix[i] = 0
	}
}

func (p *plane) reset() {
	p.drawn = 0
	p.clipped = 0
}

func (p *plane) result() error {
	if p.drawn == 0 && p.clipped > 0 {
		return ErrOutOfBounds
	}
	return nil
}

func (p *plane) set(x, y int) {
	if !(image.Point{X: x, Y: y}).In(p.bits.Rect) {
		p.clipped++
		return
	}
	p.bits.SetBit(x, y, image1bit.On)
	p.drawn++
}

func (p *plane) unset(x, y int) {
	if !(image.Point{X: x, Y: y}).In(p.bits.Rect) {
		p.clipped++
		return
	}
	p.bits.SetBit(x, y, image1bit.Off)
	p.drawn++
}

func (p *plane) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	e := dx + dy
	for {
		p.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
